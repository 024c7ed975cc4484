package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
	"github.com/jhoicas/mypos-admin/internal/application/state"
	"github.com/jhoicas/mypos-admin/internal/application/subdomain"
	"github.com/jhoicas/mypos-admin/internal/infrastructure/api"
	"github.com/jhoicas/mypos-admin/internal/infrastructure/localstore"
	"github.com/jhoicas/mypos-admin/pkg/hostname"
	"github.com/jhoicas/mypos-admin/pkg/logger"
)

// ErrInvalidSubdomain el login se cortó antes de llamar al backend porque
// el subdominio actual no corresponde a una cuenta activa.
var ErrInvalidSubdomain = errors.New("subdominio inválido")

// Service orquesta login, logout y arranque de sesión.
type Service struct {
	api        *api.Client
	state      *state.AppState
	tokens     *localstore.TokenStore
	storage    *localstore.Store
	subdomains *subdomain.Service
	host       string
	log        *logger.Logger
}

// New construye el servicio de sesión.
func New(apiClient *api.Client, st *state.AppState, tokens *localstore.TokenStore, storage *localstore.Store, subs *subdomain.Service, host string, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{api: apiClient, state: st, tokens: tokens, storage: storage, subdomains: subs, host: host, log: log}
}

// Login ejecuta el flujo de inicio de sesión. En subdominio primero valida
// la cuenta: inválida corta con ErrInvalidSubdomain SIN llamar al endpoint
// de login. Con credenciales válidas persiste tokens y usuario y deja el
// estado listo para navegar al dashboard.
func (s *Service) Login(ctx context.Context, in dto.LoginRequest) (*dto.UserResponse, error) {
	if sub := hostname.Subdomain(s.host); sub != "" {
		if res := s.subdomains.Validate(ctx, sub); !res.IsValid {
			return nil, ErrInvalidSubdomain
		}
	}

	s.state.SetLoading(true)
	defer s.state.SetLoading(false)

	out, err := s.api.Login(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.SetTokens(out.AccessToken, out.RefreshToken); err != nil {
		s.log.Warn().Err(err).Msg("persistir tokens de login")
	}
	if raw, err := json.Marshal(out.User); err == nil {
		if err := s.storage.Set(localstore.KeyAuthUser, string(raw)); err != nil {
			s.log.Warn().Err(err).Msg("persistir authUser")
		}
	}
	if in.Remember {
		if err := s.storage.Set(localstore.KeyRememberedEmail, in.Email); err != nil {
			s.log.Warn().Err(err).Msg("persistir rememberedEmail")
		}
	} else {
		s.storage.Delete(localstore.KeyRememberedEmail)
	}

	user := out.User
	s.state.SetUser(&user)
	s.state.SetError("")
	return &user, nil
}

// Logout limpia tokens, usuario persistido y estado. Incluye el borrado de
// las claves legadas accessToken/refreshToken que versiones viejas del
// cliente dejaban escritas.
func (s *Service) Logout() {
	s.tokens.Clear()
	s.storage.Delete(localstore.KeyAuthUser)
	s.storage.Delete(localstore.KeySelectedStore)
	s.storage.Delete("accessToken")
	s.storage.Delete("refreshToken")
	s.state.Reset()
}

// RememberedEmail devuelve el email recordado ("" si no hay).
func (s *Service) RememberedEmail() string {
	v, _ := s.storage.Get(localstore.KeyRememberedEmail)
	return v
}

// Boot restaura la sesión al arrancar: con token guardado refresca el
// perfil y, encadenada a eso, la tienda por defecto. Las fallas no son
// fatales: la consola arranca deslogueada y los guards harán su trabajo.
func (s *Service) Boot(ctx context.Context) {
	if s.tokens.AccessToken() == "" && s.tokens.RefreshToken() == "" {
		return
	}

	user, err := s.api.Profile(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("perfil no disponible al arrancar")
		return
	}
	s.state.SetUser(user)

	// Secuenciado tras el perfil, como el encadenado de subscripciones del
	// front: primero quién soy, después mi tienda.
	stores, err := s.api.ListStores(ctx, dto.PageRequest{Limit: 1})
	if err != nil || len(stores.Items) == 0 {
		return
	}
	st := stores.Items[0]
	if v, ok := s.storage.Get(localstore.KeySelectedStore); ok {
		var sel dto.StoreResponse
		if json.Unmarshal([]byte(v), &sel) == nil && sel.ID != "" {
			st = sel
		}
	}
	s.state.SetStore(&st)
}

// SelectStore fija la tienda activa y la recuerda entre sesiones.
func (s *Service) SelectStore(st dto.StoreResponse) {
	if raw, err := json.Marshal(st); err == nil {
		if err := s.storage.Set(localstore.KeySelectedStore, string(raw)); err != nil {
			s.log.Warn().Err(err).Msg("persistir selectedStore")
		}
	}
	s.state.SetStore(&st)
}
