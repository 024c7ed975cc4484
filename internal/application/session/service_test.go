package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
	"github.com/jhoicas/mypos-admin/internal/application/guard"
	"github.com/jhoicas/mypos-admin/internal/application/session"
	"github.com/jhoicas/mypos-admin/internal/application/state"
	"github.com/jhoicas/mypos-admin/internal/application/subdomain"
	"github.com/jhoicas/mypos-admin/internal/infrastructure/api"
	"github.com/jhoicas/mypos-admin/internal/infrastructure/localstore"
	"github.com/jhoicas/mypos-admin/internal/infrastructure/transport"
	"github.com/jhoicas/mypos-admin/pkg/hostname"
	pkgjwt "github.com/jhoicas/mypos-admin/pkg/jwt"
)

// stack arma el cliente completo (storage, interceptor, api, estado, sesión)
// contra un backend de prueba, simulando el host del navegador.
type stack struct {
	storage *localstore.Store
	tokens  *localstore.TokenStore
	state   *state.AppState
	session *session.Service
}

func newStack(t *testing.T, baseURL, host string) *stack {
	t.Helper()
	storage, err := localstore.New(t.TempDir())
	require.NoError(t, err)
	tokens := localstore.NewTokenStore(storage)

	rt := transport.New(tokens, baseURL, hostname.Subdomain(host), nil)
	client := api.New(baseURL, rt, 5*time.Second, nil)
	subs := subdomain.New(client, nil)
	st := state.New(storage, nil)
	sess := session.New(client, st, tokens, storage, subs, host, nil)

	return &stack{storage: storage, tokens: tokens, state: st, session: sess}
}

// backend simula los endpoints que usa el flujo de sesión, contando las
// llamadas a login.
type backend struct {
	loginCalls int32
	subStatus  map[string]string // subdominio -> status; ausente = 404
}

func (b *backend) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/subdomain/", func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path[len("/subdomain/"):]
		status, ok := b.subStatus[name]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "el subdominio no existe", "data": nil})
			return
		}
		json.NewEncoder(w).Encode(dto.SubdomainAccountResponse{ID: "t-1", Name: "Acme POS", Subdomain: name, Status: status})
	})
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.loginCalls, 1)
		var in dto.LoginRequest
		json.NewDecoder(r.Body).Decode(&in)
		if in.Password != "owner12345" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "credenciales inválidas", "data": nil})
			return
		}
		json.NewEncoder(w).Encode(dto.LoginResponse{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			User:         dto.UserResponse{ID: "u-1", Email: in.Email, Name: "Dueño Acme", Role: "owner"},
		})
	})
	return httptest.NewServer(mux)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_ExitosoPersisteTokensYUsuario(t *testing.T) {
	b := &backend{subStatus: map[string]string{"acme": "active"}}
	srv := b.server(t)
	defer srv.Close()

	s := newStack(t, srv.URL, "acme.mypos.local")
	user, err := s.session.Login(context.Background(), dto.LoginRequest{
		Email: "owner@acme.test", Password: "owner12345", Remember: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "owner", user.Role)
	assert.Equal(t, "access-1", s.tokens.AccessToken())
	assert.Equal(t, "refresh-1", s.tokens.RefreshToken())
	assert.True(t, s.state.Get().Authenticated())

	raw, ok := s.storage.Get(localstore.KeyAuthUser)
	require.True(t, ok, "el usuario queda persistido en authUser")
	assert.Contains(t, raw, "owner@acme.test")

	assert.Equal(t, "owner@acme.test", s.session.RememberedEmail())
}

// En subdominio inválido el login corta ANTES de llamar al endpoint: cero
// llamadas a /auth/login.
func TestLogin_SubdominioInvalidoCortaSinLlamarLogin(t *testing.T) {
	b := &backend{subStatus: map[string]string{"acme": "active"}}
	srv := b.server(t)
	defer srv.Close()

	s := newStack(t, srv.URL, "fantasma.mypos.local")
	_, err := s.session.Login(context.Background(), dto.LoginRequest{
		Email: "owner@acme.test", Password: "owner12345",
	})

	assert.ErrorIs(t, err, session.ErrInvalidSubdomain)
	assert.Equal(t, int32(0), atomic.LoadInt32(&b.loginCalls), "el endpoint de login no debe tocarse")
	assert.Empty(t, s.tokens.AccessToken())
}

func TestLogin_CredencialesMalasNoDejanSesion(t *testing.T) {
	b := &backend{subStatus: map[string]string{"acme": "active"}}
	srv := b.server(t)
	defer srv.Close()

	s := newStack(t, srv.URL, "mypos.local")
	_, err := s.session.Login(context.Background(), dto.LoginRequest{
		Email: "owner@acme.test", Password: "password-malo",
	})

	require.Error(t, err)
	assert.Empty(t, s.tokens.AccessToken())
	assert.False(t, s.state.Get().Authenticated())
	assert.False(t, s.state.Loading(), "el flag de carga vuelve a false aunque falle")
}

func TestLogin_SinRememberBorraElEmailRecordado(t *testing.T) {
	b := &backend{subStatus: map[string]string{"acme": "active"}}
	srv := b.server(t)
	defer srv.Close()

	s := newStack(t, srv.URL, "mypos.local")
	require.NoError(t, s.storage.Set(localstore.KeyRememberedEmail, "viejo@acme.test"))

	_, err := s.session.Login(context.Background(), dto.LoginRequest{
		Email: "owner@acme.test", Password: "owner12345", Remember: false,
	})
	require.NoError(t, err)

	assert.Empty(t, s.session.RememberedEmail())
}

// Flujo completo: login en dominio principal deja la sesión lista y la
// navegación al dashboard pasa los guards sin redirecciones.
func TestLoginYNavegar_DashboardAccesible(t *testing.T) {
	access, err := pkgjwt.Generate("e2e-secret", pkgjwt.TypeAccess, "u-1", "owner@acme.test", "owner", "", "mypos-test", time.Hour)
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(dto.LoginResponse{
			AccessToken:  access,
			RefreshToken: "refresh-1",
			User:         dto.UserResponse{ID: "u-1", Email: "owner@acme.test", Role: "owner"},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := newStack(t, srv.URL, "mypos.local")
	_, err = s.session.Login(context.Background(), dto.LoginRequest{
		Email: "owner@acme.test", Password: "owner12345",
	})
	require.NoError(t, err)

	env := &guard.Env{
		Host:       "mypos.local",
		MainDomain: "mypos.local",
		State:      s.state,
		Tokens:     s.tokens,
	}
	nav := guard.NewNavigator(guard.DefaultRoutes(), env)
	res, err := nav.Navigate(context.Background(), guard.RouteDashboard)
	require.NoError(t, err)

	assert.Equal(t, guard.RouteDashboard, res.Route.Path)
	assert.Empty(t, res.Redirects)
}

// ──────────────────────────────────────────────────────────────────────────────
// Logout
// ──────────────────────────────────────────────────────────────────────────────

func TestLogout_LimpiaTokensEstadoYClavesLegadas(t *testing.T) {
	b := &backend{subStatus: map[string]string{"acme": "active"}}
	srv := b.server(t)
	defer srv.Close()

	s := newStack(t, srv.URL, "mypos.local")
	_, err := s.session.Login(context.Background(), dto.LoginRequest{
		Email: "owner@acme.test", Password: "owner12345",
	})
	require.NoError(t, err)

	// Claves que versiones viejas del cliente dejaban escritas.
	require.NoError(t, s.storage.Set("accessToken", "legado"))
	require.NoError(t, s.storage.Set("refreshToken", "legado"))

	s.session.Logout()

	assert.Empty(t, s.tokens.AccessToken())
	assert.Empty(t, s.tokens.RefreshToken())
	assert.False(t, s.state.Get().Authenticated())
	_, ok := s.storage.Get(localstore.KeyAuthUser)
	assert.False(t, ok)
	_, ok = s.storage.Get("accessToken")
	assert.False(t, ok, "la clave legada accessToken también se borra")
	_, ok = s.storage.Get("refreshToken")
	assert.False(t, ok)
}
