package subdomain_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
	"github.com/jhoicas/mypos-admin/internal/application/subdomain"
	"github.com/jhoicas/mypos-admin/internal/domain/apierror"
)

// fakeResolver simula el endpoint GET subdomain/{name} contando llamadas.
type fakeResolver struct {
	calls    int32
	accounts map[string]*dto.SubdomainAccountResponse
	err      error
}

func (f *fakeResolver) GetSubdomain(_ context.Context, name string) (*dto.SubdomainAccountResponse, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	if acc, ok := f.accounts[name]; ok {
		return acc, nil
	}
	return nil, apierror.FromResponse(404, nil)
}

func activeAcme() map[string]*dto.SubdomainAccountResponse {
	return map[string]*dto.SubdomainAccountResponse{
		"acme": {ID: "t-1", Name: "Acme POS", Subdomain: "acme", Status: "active"},
	}
}

func TestValidate_SubdominioActivo(t *testing.T) {
	r := &fakeResolver{accounts: activeAcme()}
	svc := subdomain.New(r, nil)

	res := svc.Validate(context.Background(), "acme")
	assert.True(t, res.IsValid)
	require.NotNil(t, res.Account)
	assert.Equal(t, "Acme POS", res.Account.Name)
	assert.Equal(t, res.Account, svc.Current())
}

func TestValidate_VacioEsInvalidoSinRed(t *testing.T) {
	r := &fakeResolver{accounts: activeAcme()}
	svc := subdomain.New(r, nil)

	res := svc.Validate(context.Background(), "")
	assert.False(t, res.IsValid)
	assert.Equal(t, int32(0), atomic.LoadInt32(&r.calls), "subdominio vacío no consulta el backend")
}

// Dos validaciones del mismo subdominio dentro de la ventana TTL deben
// producir UNA sola llamada de red.
func TestValidate_CacheDentroDelTTL(t *testing.T) {
	r := &fakeResolver{accounts: activeAcme()}
	svc := subdomain.New(r, nil)

	res1 := svc.Validate(context.Background(), "acme")
	res2 := svc.Validate(context.Background(), "acme")

	assert.True(t, res1.IsValid)
	assert.Equal(t, res1, res2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&r.calls), "la segunda validación sale de caché")
}

// La caché también guarda fallas: un subdominio inexistente tampoco se
// consulta dos veces dentro de la ventana.
func TestValidate_CacheaTambienLasFallas(t *testing.T) {
	r := &fakeResolver{accounts: activeAcme()}
	svc := subdomain.New(r, nil)

	res1 := svc.Validate(context.Background(), "no-existe")
	res2 := svc.Validate(context.Background(), "no-existe")

	assert.False(t, res1.IsValid)
	assert.Equal(t, "El subdominio no existe", res1.Err)
	assert.Equal(t, res1, res2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&r.calls))
}

func TestValidate_EntradaVencidaSeReconsulta(t *testing.T) {
	r := &fakeResolver{accounts: activeAcme()}
	svc := subdomain.New(r, nil)

	base := time.Now()
	svc.SetClock(func() time.Time { return base })
	svc.Validate(context.Background(), "acme")

	// Avanzamos el reloj más allá del TTL: la entrada expira.
	svc.SetClock(func() time.Time { return base.Add(subdomain.DefaultTTL + time.Second) })
	svc.Validate(context.Background(), "acme")

	assert.Equal(t, int32(2), atomic.LoadInt32(&r.calls), "entrada vencida debe reconsultarse")
}

func TestValidate_ClearCacheFuerzaReconsulta(t *testing.T) {
	r := &fakeResolver{accounts: activeAcme()}
	svc := subdomain.New(r, nil)

	svc.Validate(context.Background(), "acme")
	svc.ClearCache()
	svc.Validate(context.Background(), "acme")

	assert.Equal(t, int32(2), atomic.LoadInt32(&r.calls))
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeo de fallas del backend a mensajes de usuario
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_MensajesPorTipoDeFalla(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"no existe", apierror.FromResponse(404, nil), "El subdominio no existe"},
		{"cuenta inactiva", apierror.FromResponse(403, nil), "La cuenta no está activa"},
		{"error del servidor", apierror.FromResponse(500, nil), "Error del servidor, intente más tarde"},
		{"falla genérica", apierror.Network(nil), "No se pudo validar el subdominio"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := subdomain.New(&fakeResolver{err: tc.err}, nil)
			res := svc.Validate(context.Background(), "acme")
			assert.False(t, res.IsValid)
			assert.Equal(t, tc.want, res.Err)
		})
	}
}

func TestValidate_CuentaResueltaPeroInactiva(t *testing.T) {
	r := &fakeResolver{accounts: map[string]*dto.SubdomainAccountResponse{
		"globex": {ID: "t-2", Name: "Globex POS", Subdomain: "globex", Status: "inactive"},
	}}
	svc := subdomain.New(r, nil)

	res := svc.Validate(context.Background(), "globex")
	assert.False(t, res.IsValid)
	assert.Equal(t, "La cuenta no está activa", res.Err)
	assert.NotNil(t, res.Account, "la cuenta se devuelve aunque esté inactiva")
}

func TestSubscribe_NotificaCuentaResuelta(t *testing.T) {
	svc := subdomain.New(&fakeResolver{accounts: activeAcme()}, nil)

	var got *dto.SubdomainAccountResponse
	svc.Subscribe(func(acc *dto.SubdomainAccountResponse) { got = acc })

	svc.Validate(context.Background(), "acme")
	require.NotNil(t, got)
	assert.Equal(t, "acme", got.Subdomain)
}
