package subdomain

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
	"github.com/jhoicas/mypos-admin/internal/domain/apierror"
	"github.com/jhoicas/mypos-admin/internal/domain/entity"
	"github.com/jhoicas/mypos-admin/pkg/logger"
)

// DefaultTTL vigencia de cada entrada de caché.
const DefaultTTL = 5 * time.Minute

// Resolver es lo que el servicio necesita del backend.
type Resolver interface {
	GetSubdomain(ctx context.Context, name string) (*dto.SubdomainAccountResponse, error)
}

// Result resultado de validar un subdominio.
type Result struct {
	IsValid bool
	Account *dto.SubdomainAccountResponse
	Err     string
}

type cacheEntry struct {
	result  Result
	expires time.Time
}

// Service resuelve subdominios contra el backend con caché TTL por
// subdominio. Cachea tanto aciertos como fallas: un subdominio inexistente
// tampoco se consulta dos veces dentro de la ventana.
type Service struct {
	resolver Resolver
	ttl      time.Duration
	log      *logger.Logger

	mu      sync.Mutex
	cache   map[string]cacheEntry
	current *dto.SubdomainAccountResponse
	subs    []func(*dto.SubdomainAccountResponse)
	now     func() time.Time
}

// New construye el servicio con el TTL por defecto.
func New(resolver Resolver, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		resolver: resolver,
		ttl:      DefaultTTL,
		log:      log,
		cache:    map[string]cacheEntry{},
		now:      time.Now,
	}
}

// Validate resuelve el subdominio. Vacío es inválido sin tocar la red;
// con caché fresca responde de inmediato; si no, consulta GET subdomain/{s}
// y cachea el resultado (éxito o falla).
func (s *Service) Validate(ctx context.Context, sub string) Result {
	if sub == "" {
		return Result{IsValid: false}
	}

	s.mu.Lock()
	if e, ok := s.cache[sub]; ok && s.now().Before(e.expires) {
		s.mu.Unlock()
		return e.result
	}
	s.mu.Unlock()

	res := s.lookup(ctx, sub)

	s.mu.Lock()
	s.cache[sub] = cacheEntry{result: res, expires: s.now().Add(s.ttl)}
	s.current = res.Account
	subs := append([]func(*dto.SubdomainAccountResponse){}, s.subs...)
	s.mu.Unlock()

	for _, f := range subs {
		f(res.Account)
	}
	return res
}

func (s *Service) lookup(ctx context.Context, sub string) Result {
	account, err := s.resolver.GetSubdomain(ctx, sub)
	if err == nil {
		if account.Status != entity.AccountActive {
			return Result{IsValid: false, Account: account, Err: "La cuenta no está activa"}
		}
		return Result{IsValid: true, Account: account}
	}

	s.log.Debug().Err(err).Str("subdomain", sub).Msg("validación de subdominio falló")
	switch {
	case apierror.IsKind(err, apierror.KindNotFound):
		return Result{IsValid: false, Err: "El subdominio no existe"}
	case apierror.IsKind(err, apierror.KindForbidden):
		return Result{IsValid: false, Err: "La cuenta no está activa"}
	case apierror.IsKind(err, apierror.KindServer):
		return Result{IsValid: false, Err: "Error del servidor, intente más tarde"}
	default:
		return Result{IsValid: false, Err: "No se pudo validar el subdominio"}
	}
}

// Current devuelve la última cuenta de subdominio resuelta (nil si ninguna).
func (s *Service) Current() *dto.SubdomainAccountResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registra un callback para cambios de la cuenta actual.
func (s *Service) Subscribe(fn func(*dto.SubdomainAccountResponse)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// ClearCache vacía toda la caché (flujos de reintento manual).
func (s *Service) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = map[string]cacheEntry{}
}
