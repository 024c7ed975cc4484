package mockapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
	"github.com/jhoicas/mypos-admin/internal/domain/apierror"
	"github.com/jhoicas/mypos-admin/internal/infrastructure/memory"
	"github.com/jhoicas/mypos-admin/internal/interfaces/mockapi"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret = "mockapi-test-secret"
	testIssuer = "mypos-test"

	// Credenciales sembradas por memory.Seed.
	adminEmail = "admin@mypos.local"
	adminPass  = "admin12345"
	ownerEmail = "owner@acme.test"
	ownerPass  = "owner12345"
	staffEmail = "staff@acme.test"
	staffPass  = "staff12345"
)

// buildTestApp arma la app Fiber completa sobre un DB sembrado.
func buildTestApp(t *testing.T, rl *mockapi.RateLimiter) *fiber.App {
	t.Helper()
	db := memory.NewDB()
	require.NoError(t, memory.Seed(db))

	app := fiber.New()
	mockapi.Router(app, mockapi.RouterDeps{
		Users:    memory.NewUserRepo(db),
		Tenants:  memory.NewTenantRepo(db),
		Stores:   memory.NewStoreRepo(db),
		Staff:    memory.NewStaffRepo(db),
		Catalog:  memory.NewCatalogRepo(db),
		Settings: memory.NewSettingRepo(db),
		Tokens: mockapi.TokenConfig{
			Secret:     testSecret,
			Issuer:     testIssuer,
			AccessTTL:  15 * time.Minute,
			RefreshTTL: time.Hour,
		},
		LoginRL: rl,
	})
	return app
}

// doJSON lanza una petición con body JSON y headers opcionales.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// login autentica contra la app y devuelve el par de tokens.
func login(t *testing.T, app *fiber.App, email, pass, sub string) dto.LoginResponse {
	t.Helper()
	headers := map[string]string{}
	if sub != "" {
		headers["X-Tenant-Subdomain"] = sub
	}
	resp := doJSON(t, app, http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Password: pass}, headers)
	require.Equal(t, http.StatusOK, resp.StatusCode, "login de %s debe funcionar", email)
	return decode[dto.LoginResponse](t, resp)
}

func bearer(tok string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + tok}
}

func tenantHeaders(tok string) map[string]string {
	return map[string]string{
		"Authorization":      "Bearer " + tok,
		"X-Tenant-Subdomain": "acme",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth: login, refresh y resolución de subdominios
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidasEmitenPar(t *testing.T) {
	app := buildTestApp(t, nil)
	out := login(t, app, ownerEmail, ownerPass, "acme")

	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, ownerEmail, out.User.Email)
	assert.Equal(t, "owner", out.User.Role)
}

func TestLogin_PasswordIncorrecto_Retorna401(t *testing.T) {
	app := buildTestApp(t, nil)
	resp := doJSON(t, app, http.MethodPost, "/auth/login",
		dto.LoginRequest{Email: ownerEmail, Password: "password-malo"}, nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decode[apierror.Body](t, resp)
	assert.False(t, body.Success)
	assert.Equal(t, "credenciales inválidas", body.Message)
}

func TestLogin_TenantInactivo_Retorna403(t *testing.T) {
	app := buildTestApp(t, nil)
	resp := doJSON(t, app, http.MethodPost, "/auth/login",
		dto.LoginRequest{Email: ownerEmail, Password: ownerPass},
		map[string]string{"X-Tenant-Subdomain": "globex"})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLogin_ValidacionDeCampos_Retorna400ConLista(t *testing.T) {
	app := buildTestApp(t, nil)
	resp := doJSON(t, app, http.MethodPost, "/auth/login",
		dto.LoginRequest{Email: "no-es-email", Password: "corta"}, nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[apierror.Body](t, resp)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Contains(t, body.Errors, "email: debe ser un email válido")
	assert.Contains(t, body.Errors, "password: mínimo 8")
}

func TestRefresh_RotaElPar(t *testing.T) {
	app := buildTestApp(t, nil)
	pair := login(t, app, ownerEmail, ownerPass, "acme")

	resp := doJSON(t, app, http.MethodPost, "/auth/refresh",
		dto.RefreshRequest{RefreshToken: pair.RefreshToken}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[dto.RefreshResponse](t, resp)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
}

// Un access token no sirve como refresh token: el tipo viaja en los claims.
func TestRefresh_AccessTokenRechazado(t *testing.T) {
	app := buildTestApp(t, nil)
	pair := login(t, app, ownerEmail, ownerPass, "acme")

	resp := doJSON(t, app, http.MethodPost, "/auth/refresh",
		dto.RefreshRequest{RefreshToken: pair.AccessToken}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSubdomain_ResolucionPublica(t *testing.T) {
	app := buildTestApp(t, nil)

	resp := doJSON(t, app, http.MethodGet, "/subdomain/acme", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	acc := decode[dto.SubdomainAccountResponse](t, resp)
	assert.Equal(t, "acme", acc.Subdomain)
	assert.Equal(t, "active", acc.Status)

	resp = doJSON(t, app, http.MethodGet, "/subdomain/globex", nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "cuenta inactiva responde 403")

	resp = doJSON(t, app, http.MethodGet, "/subdomain/fantasma", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLoginRateLimit_AgotadaLaCuotaRetorna429(t *testing.T) {
	app := buildTestApp(t, mockapi.NewRateLimiter(1, 2))

	body := dto.LoginRequest{Email: ownerEmail, Password: "password-malo"}
	for i := 0; i < 2; i++ {
		resp := doJSON(t, app, http.MethodPost, "/auth/login", body, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "dentro de la ráfaga pasa al handler")
	}
	resp := doJSON(t, app, http.MethodPost, "/auth/login", body, nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorización: middleware de auth y roles por ruta
// ──────────────────────────────────────────────────────────────────────────────

func TestProtegido_SinTokenRetorna401(t *testing.T) {
	app := buildTestApp(t, nil)
	resp := doJSON(t, app, http.MethodGet, "/profile", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPerfil_ConTokenDevuelveUsuario(t *testing.T) {
	app := buildTestApp(t, nil)
	pair := login(t, app, staffEmail, staffPass, "acme")

	resp := doJSON(t, app, http.MethodGet, "/profile", nil, bearer(pair.AccessToken))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	u := decode[dto.UserResponse](t, resp)
	assert.Equal(t, staffEmail, u.Email)
}

func TestTenants_SoloOperadorDePlataforma(t *testing.T) {
	app := buildTestApp(t, nil)
	admin := login(t, app, adminEmail, adminPass, "")
	owner := login(t, app, ownerEmail, ownerPass, "acme")

	resp := doJSON(t, app, http.MethodGet, "/tenants", nil, bearer(admin.AccessToken))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/tenants", nil, bearer(owner.AccessToken))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "owner no administra sub-accounts")
}

func TestCrearTienda_StaffProhibidoOwnerPermitido(t *testing.T) {
	app := buildTestApp(t, nil)
	owner := login(t, app, ownerEmail, ownerPass, "acme")
	staff := login(t, app, staffEmail, staffPass, "acme")

	in := dto.StoreRequest{Name: "Acme Norte", Code: "AC02"}

	resp := doJSON(t, app, http.MethodPost, "/tenants/stores", in, tenantHeaders(staff.AccessToken))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/tenants/stores", in, tenantHeaders(owner.AccessToken))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	s := decode[dto.StoreResponse](t, resp)
	assert.Equal(t, "Acme Norte", s.Name)
	assert.Equal(t, "active", s.Status, "sin status explícito la tienda nace activa")
}

func TestRutasDeTenant_SinHeaderDeSubdominio_Retorna400(t *testing.T) {
	app := buildTestApp(t, nil)
	owner := login(t, app, ownerEmail, ownerPass, "acme")

	resp := doJSON(t, app, http.MethodGet, "/tenants/stores", nil, bearer(owner.AccessToken))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tenants y configuración
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearTenant_DerivaSubdominioDelNombre(t *testing.T) {
	app := buildTestApp(t, nil)
	admin := login(t, app, adminEmail, adminPass, "")

	resp := doJSON(t, app, http.MethodPost, "/tenant/create",
		dto.CreateTenantRequest{Name: "Panadería El Sol", OwnerEmail: "sol@example.com"},
		bearer(admin.AccessToken))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	out := decode[dto.TenantResponse](t, resp)
	assert.Equal(t, "panaderia-el-sol", out.Subdomain, "el subdominio se deriva del nombre sin tildes")
	assert.Equal(t, "active", out.Status)
}

func TestCrearTenant_SubdominioDuplicado_Retorna409(t *testing.T) {
	app := buildTestApp(t, nil)
	admin := login(t, app, adminEmail, adminPass, "")

	resp := doJSON(t, app, http.MethodPost, "/tenant/create",
		dto.CreateTenantRequest{Name: "Otro Acme", Subdomain: "acme", OwnerEmail: "x@example.com"},
		bearer(admin.AccessToken))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSettings_LecturaYEscritura(t *testing.T) {
	app := buildTestApp(t, nil)
	owner := login(t, app, ownerEmail, ownerPass, "acme")
	staff := login(t, app, staffEmail, staffPass, "acme")

	resp := doJSON(t, app, http.MethodGet, "/tenants/settings/acme", nil, bearer(staff.AccessToken))
	require.Equal(t, http.StatusOK, resp.StatusCode, "cualquier autenticado puede leer la configuración")
	s := decode[dto.TenantSettingResponse](t, resp)
	assert.Equal(t, "COP", s.Currency)

	in := dto.TenantSettingRequest{
		BusinessName: "Acme POS SAS",
		Currency:     "USD",
		Timezone:     "America/Bogota",
	}
	resp = doJSON(t, app, http.MethodPut, "/tenants/settings/acme", in, bearer(staff.AccessToken))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo el owner escribe la configuración")

	resp = doJSON(t, app, http.MethodPut, "/tenants/settings/acme", in, bearer(owner.AccessToken))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	s = decode[dto.TenantSettingResponse](t, resp)
	assert.Equal(t, "USD", s.Currency)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogo_ListadoSembrado(t *testing.T) {
	app := buildTestApp(t, nil)
	staff := login(t, app, staffEmail, staffPass, "acme")

	resp := doJSON(t, app, http.MethodGet, "/catalog/materials", nil, tenantHeaders(staff.AccessToken))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.MaterialListResponse](t, resp)
	require.NotEmpty(t, out.Items)
	assert.Equal(t, "Harina de trigo", out.Items[0].Name)
}

func TestCategoria_NoSeBorraConMateriales(t *testing.T) {
	app := buildTestApp(t, nil)
	owner := login(t, app, ownerEmail, ownerPass, "acme")

	resp := doJSON(t, app, http.MethodGet, "/catalog/categories", nil, tenantHeaders(owner.AccessToken))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cats := decode[dto.CategoryListResponse](t, resp)
	require.NotEmpty(t, cats.Items)

	resp = doJSON(t, app, http.MethodDelete, "/catalog/categories/"+cats.Items[0].ID, nil, tenantHeaders(owner.AccessToken))
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "la categoría sembrada tiene materiales asociados")
}

func TestStaff_InvitarYActualizar(t *testing.T) {
	app := buildTestApp(t, nil)
	owner := login(t, app, ownerEmail, ownerPass, "acme")

	stores := decode[dto.StoreListResponse](t,
		doJSON(t, app, http.MethodGet, "/tenants/stores", nil, tenantHeaders(owner.AccessToken)))
	require.NotEmpty(t, stores.Items)
	storeID := stores.Items[0].ID

	resp := doJSON(t, app, http.MethodPost, "/tenants/stores/"+storeID+"/staff",
		dto.InviteStaffRequest{Email: "nuevo@acme.test", Role: "staff"},
		tenantHeaders(owner.AccessToken))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	m := decode[dto.StaffResponse](t, resp)
	assert.Equal(t, "pending", m.Status, "las invitaciones nacen pendientes")

	resp = doJSON(t, app, http.MethodPut, "/tenants/stores/"+storeID+"/staff/"+m.ID,
		dto.UpdateStaffRequest{Status: "active"},
		tenantHeaders(owner.AccessToken))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	m = decode[dto.StaffResponse](t, resp)
	assert.Equal(t, "active", m.Status)
}
