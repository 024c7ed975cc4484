package transport_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mypos-admin/internal/domain/apierror"
	"github.com/jhoicas/mypos-admin/internal/infrastructure/localstore"
	"github.com/jhoicas/mypos-admin/internal/infrastructure/transport"
	pkgjwt "github.com/jhoicas/mypos-admin/pkg/jwt"
)

const testSecret = "transport-test-secret"

func testToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.TypeAccess, "user-1", "owner@acme.test", "owner", "acme", "mypos-test", ttl)
	require.NoError(t, err)
	return tok
}

func newTokens(t *testing.T) *localstore.TokenStore {
	t.Helper()
	store, err := localstore.New(t.TempDir())
	require.NoError(t, err)
	return localstore.NewTokenStore(store)
}

// ──────────────────────────────────────────────────────────────────────────────
// Decoración de peticiones
// ──────────────────────────────────────────────────────────────────────────────

func TestRoundTrip_PeticionProtegidaLlevaBearerYHeaders(t *testing.T) {
	tokens := newTokens(t)
	require.NoError(t, tokens.SetTokens(testToken(t, time.Hour), "refresh-1"))

	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rt := transport.New(tokens, srv.URL, "acme", nil)
	client := &http.Client{Transport: rt}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/items", nil)
	req.Header.Set(transport.HeaderRequiresAuth, "true")
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Contains(t, got.Get("Authorization"), "Bearer ")
	assert.Equal(t, "acme", got.Get(transport.HeaderTenantSubdomain))
	assert.Equal(t, "user-1", got.Get(transport.HeaderUserID), "X-User-ID se deriva del token")
	assert.NotEmpty(t, got.Get(transport.HeaderRequestID))
	assert.Empty(t, got.Get(transport.HeaderRequiresAuth), "el marcador no viaja al backend")
}

func TestRoundTrip_EndpointDeAuthNuncaLlevaBearer(t *testing.T) {
	tokens := newTokens(t)
	require.NoError(t, tokens.SetTokens(testToken(t, time.Hour), "refresh-1"))

	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := &http.Client{Transport: transport.New(tokens, srv.URL, "", nil)}

	// POST normalmente sería protegido, pero auth/login queda siempre fuera.
	resp, err := client.Post(srv.URL+"/auth/login", "application/json", bytes.NewReader([]byte(`{}`)))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, got.Get("Authorization"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Protocolo de refresh: exactamente UN intento por 401, con reenvío del body.
// ──────────────────────────────────────────────────────────────────────────────

func TestRoundTrip_401DisparaUnRefreshYReintenta(t *testing.T) {
	tokens := newTokens(t)
	require.NoError(t, tokens.SetTokens(testToken(t, time.Hour), "refresh-viejo"))

	newAccess := testToken(t, time.Hour)
	var refreshCalls, apiCalls int32
	var retryAuth, retryBody string

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		var in map[string]string
		json.NewDecoder(r.Body).Decode(&in)
		assert.Equal(t, "refresh-viejo", in["refreshToken"])
		json.NewEncoder(w).Encode(map[string]string{
			"accessToken":  newAccess,
			"refreshToken": "refresh-nuevo",
		})
	})
	mux.HandleFunc("/items", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&apiCalls, 1)
		if n == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		retryAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		retryBody = string(b)
		w.WriteHeader(http.StatusCreated)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := &http.Client{Transport: transport.New(tokens, srv.URL, "acme", nil)}

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/items", bytes.NewReader([]byte(`{"name":"Harina"}`)))
	req.Header.Set(transport.HeaderRequiresAuth, "true")
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls), "exactamente un refresh")
	assert.Equal(t, int32(2), atomic.LoadInt32(&apiCalls), "petición original + un reintento")
	assert.Equal(t, "Bearer "+newAccess, retryAuth, "el reintento lleva el token nuevo")
	assert.Equal(t, `{"name":"Harina"}`, retryBody, "el body se reproduce completo en el reintento")

	// El par renovado queda persistido.
	assert.Equal(t, newAccess, tokens.AccessToken())
	assert.Equal(t, "refresh-nuevo", tokens.RefreshToken())
}

func TestRoundTrip_SinRefreshToken_CortaSinTocarLaRed(t *testing.T) {
	tokens := newTokens(t)
	require.NoError(t, tokens.SetTokens(testToken(t, time.Hour), ""))

	var refreshCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/items", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := &http.Client{Transport: transport.New(tokens, srv.URL, "", nil)}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/items", nil)
	req.Header.Set(transport.HeaderRequiresAuth, "true")
	_, err := client.Do(req)
	require.Error(t, err)

	e := apierror.As(err)
	require.NotNil(t, e, "el error debe ser el normalizado")
	assert.Equal(t, apierror.KindAuth, e.Kind)
	assert.Equal(t, "Authentication failed", e.Body.Message)
	assert.Equal(t, int32(0), atomic.LoadInt32(&refreshCalls), "sin refresh token no se llama al endpoint")
}

func TestRoundTrip_RefreshRechazado_LimpiaAmbosTokens(t *testing.T) {
	tokens := newTokens(t)
	require.NoError(t, tokens.SetTokens(testToken(t, time.Hour), "refresh-revocado"))

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/items", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := &http.Client{Transport: transport.New(tokens, srv.URL, "", nil)}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/items", nil)
	req.Header.Set(transport.HeaderRequiresAuth, "true")
	_, err := client.Do(req)
	require.Error(t, err)

	assert.True(t, apierror.IsKind(err, apierror.KindAuth))
	assert.Empty(t, tokens.AccessToken(), "refresh fallido limpia el access token")
	assert.Empty(t, tokens.RefreshToken(), "refresh fallido limpia el refresh token")
}

func TestRoundTrip_Segundo401SePropagaSinMasReintentos(t *testing.T) {
	tokens := newTokens(t)
	require.NoError(t, tokens.SetTokens(testToken(t, time.Hour), "refresh-1"))

	var apiCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"accessToken":  testToken(t, time.Hour),
			"refreshToken": "refresh-2",
		})
	})
	mux.HandleFunc("/items", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&apiCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := &http.Client{Transport: transport.New(tokens, srv.URL, "", nil)}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/items", nil)
	req.Header.Set(transport.HeaderRequiresAuth, "true")
	resp, err := client.Do(req)
	require.NoError(t, err, "el segundo 401 es respuesta, no error de transporte")
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int32(2), atomic.LoadInt32(&apiCalls), "nunca hay un tercer intento")
}

func TestRoundTrip_PeticionNoProtegidaIgnoraEl401(t *testing.T) {
	tokens := newTokens(t)

	var refreshCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
	})
	mux.HandleFunc("/subdomain/acme", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := &http.Client{Transport: transport.New(tokens, srv.URL, "", nil)}

	// GET sin marcador: no protegida, el 401 se devuelve tal cual.
	resp, err := client.Get(srv.URL + "/subdomain/acme")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int32(0), atomic.LoadInt32(&refreshCalls))
}

func TestRoundTrip_FallaDeRed_ErrorNormalizado(t *testing.T) {
	tokens := newTokens(t)
	client := &http.Client{Transport: transport.New(tokens, "http://127.0.0.1:1", "", nil)}

	_, err := client.Get("http://127.0.0.1:1/items")
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindNetwork), "falla de conexión debe normalizarse a KindNetwork")
}
