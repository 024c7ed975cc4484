package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mypos-admin/internal/domain/apierror"
	"github.com/jhoicas/mypos-admin/internal/infrastructure/localstore"
	"github.com/jhoicas/mypos-admin/pkg/jwt"
	"github.com/jhoicas/mypos-admin/pkg/logger"
)

// Headers propios de la plataforma.
const (
	HeaderRequiresAuth    = "X-Requires-Auth"     // marcador explícito de petición protegida
	HeaderTenantSubdomain = "X-Tenant-Subdomain"
	HeaderUserID          = "X-User-ID"
	HeaderRequestID       = "X-Request-ID"
)

// AuthTransport es el interceptor HTTP del cliente: adjunta headers
// estándar, el subdominio de tenant cuando aplica y el bearer token en
// peticiones protegidas. Ante un 401 en una petición protegida intenta UN
// refresh de token y reenvía la petición original exactamente una vez.
//
// Los endpoints de auth (auth/login, auth/refresh) nunca se tratan como
// protegidos ni reciben bearer token.
type AuthTransport struct {
	Base      http.RoundTripper      // transporte real; nil = http.DefaultTransport
	Tokens    *localstore.TokenStore // par authToken/refreshToken persistido
	APIBase   string                 // base del backend para el refresh directo
	Subdomain string                 // subdominio de tenant actual; "" en dominio principal
	Log       *logger.Logger

	// RefreshClient hace el POST auth/refresh por fuera del interceptor
	// (una petición interceptada aquí entraría en recursión).
	RefreshClient *http.Client
}

// New construye el interceptor con los valores por defecto sanos.
func New(tokens *localstore.TokenStore, apiBase, subdomain string, log *logger.Logger) *AuthTransport {
	return &AuthTransport{
		Base:          http.DefaultTransport,
		Tokens:        tokens,
		APIBase:       strings.TrimRight(apiBase, "/"),
		Subdomain:     subdomain,
		Log:           log,
		RefreshClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// RoundTrip implementa http.RoundTripper.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	protected := t.isProtected(req)

	out := req.Clone(req.Context())
	// El marcador no viaja al backend, es solo para el interceptor.
	out.Header.Del(HeaderRequiresAuth)

	t.decorate(out, protected)

	// Para poder reenviar tras un refresh necesitamos reproducir el body.
	if protected && out.Body != nil && out.GetBody == nil {
		if err := bufferBody(out); err != nil {
			return nil, apierror.Network(err)
		}
	}

	resp, err := t.base().RoundTrip(out)
	if err != nil {
		return nil, apierror.Network(err)
	}

	if !protected || resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// 401 en petición protegida: un único intento de refresh.
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	access, rerr := t.refresh(req.Context())
	if rerr != nil {
		return nil, rerr
	}

	retry := req.Clone(req.Context())
	retry.Header.Del(HeaderRequiresAuth)
	t.decorate(retry, true)
	retry.Header.Set("Authorization", "Bearer "+access)
	if out.GetBody != nil {
		body, err := out.GetBody()
		if err != nil {
			return nil, apierror.Network(err)
		}
		retry.Body = body
		retry.GetBody = out.GetBody
	}

	// Un segundo 401 se propaga como respuesta normal, sin más reintentos.
	resp, err = t.base().RoundTrip(retry)
	if err != nil {
		return nil, apierror.Network(err)
	}
	return resp, nil
}

// isProtected aplica la heurística del front histórico: marcador explícito,
// rutas /protected o /api/, o cualquier método distinto de GET. Los
// endpoints de auth quedan siempre fuera.
func (t *AuthTransport) isProtected(req *http.Request) bool {
	if isAuthEndpoint(req.URL.Path) {
		return false
	}
	if req.Header.Get(HeaderRequiresAuth) != "" {
		return true
	}
	p := req.URL.Path
	if strings.Contains(p, "/protected") || strings.Contains(p, "/api/") {
		return true
	}
	return req.Method != http.MethodGet
}

func isAuthEndpoint(path string) bool {
	return strings.Contains(path, "auth/login") || strings.Contains(path, "auth/refresh")
}

// decorate adjunta los headers estándar de la plataforma.
func (t *AuthTransport) decorate(req *http.Request, protected bool) {
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if req.Body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get(HeaderRequestID) == "" {
		req.Header.Set(HeaderRequestID, uuid.NewString())
	}
	if t.Subdomain != "" {
		req.Header.Set(HeaderTenantSubdomain, t.Subdomain)
	}
	if !protected {
		return
	}
	token := t.Tokens.AccessToken()
	if token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
	// X-User-ID se deriva del propio token; si no se puede decodificar la
	// petición sigue sin ese header (se loguea, no es fatal).
	claims, err := jwt.Inspect(token)
	if err != nil {
		t.log().Warn().Err(err).Msg("no se pudo decodificar el access token para X-User-ID")
		return
	}
	if claims.UserID != "" {
		req.Header.Set(HeaderUserID, claims.UserID)
	}
}

// refresh ejecuta el protocolo de refresh: sin refresh token guardado corta
// de inmediato sin tocar la red; con él hace POST {apiBase}/auth/refresh,
// persiste el par nuevo y devuelve el access token. Cualquier falla limpia
// ambos tokens y devuelve la falla de autenticación normalizada.
func (t *AuthTransport) refresh(ctx context.Context) (string, error) {
	refreshToken := t.Tokens.RefreshToken()
	if refreshToken == "" {
		return "", apierror.AuthFailed("Authentication failed")
	}

	payload, _ := json.Marshal(map[string]string{"refreshToken": refreshToken})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.APIBase+"/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		t.Tokens.Clear()
		return "", apierror.AuthFailed("Authentication failed")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if t.Subdomain != "" {
		req.Header.Set(HeaderTenantSubdomain, t.Subdomain)
	}

	resp, err := t.refreshClient().Do(req)
	if err != nil {
		t.log().Warn().Err(err).Msg("refresh de token falló (red)")
		t.Tokens.Clear()
		return "", apierror.AuthFailed("Authentication failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.log().Warn().Int("status", resp.StatusCode).Msg("refresh de token rechazado")
		t.Tokens.Clear()
		return "", apierror.AuthFailed("Authentication failed")
	}

	var body struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.AccessToken == "" {
		t.Tokens.Clear()
		return "", apierror.AuthFailed("Authentication failed")
	}

	if err := t.Tokens.SetTokens(body.AccessToken, body.RefreshToken); err != nil {
		// Persistencia fallida no invalida el token recién emitido.
		t.log().Warn().Err(err).Msg("no se pudieron persistir los tokens renovados")
	}
	return body.AccessToken, nil
}

func bufferBody(req *http.Request) error {
	data, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		return err
	}
	req.Body = io.NopCloser(bytes.NewReader(data))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	return nil
}

func (t *AuthTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *AuthTransport) refreshClient() *http.Client {
	if t.RefreshClient != nil {
		return t.RefreshClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func (t *AuthTransport) log() *logger.Logger {
	if t.Log != nil {
		return t.Log
	}
	return logger.Nop()
}
