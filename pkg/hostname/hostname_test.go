package hostname_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/mypos-admin/pkg/hostname"
)

// ──────────────────────────────────────────────────────────────────────────────
// Detección de subdominio: tres o más etiquetas = subdominio de tenant;
// el puerto nunca cuenta como parte del host.
// ──────────────────────────────────────────────────────────────────────────────

func TestSubdomain_TablaDeHosts(t *testing.T) {
	cases := []struct {
		name string
		host string
		want string
	}{
		{"dominio principal", "mypos.local", ""},
		{"subdominio simple", "acme.mypos.local", "acme"},
		{"subdominio con puerto", "acme.mypos.local:4200", "acme"},
		{"dominio principal con puerto", "mypos.local:8087", ""},
		{"subdominio anidado toma la primera etiqueta", "tienda.acme.mypos.local", "tienda"},
		{"mayúsculas se normalizan", "ACME.mypos.local", "acme"},
		{"host vacío", "", ""},
		{"una sola etiqueta", "localhost", ""},
		{"etiqueta vacía no es subdominio", ".mypos.local", ""},
		{"etiquetas vacías intermedias", "acme..local", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, hostname.Subdomain(tc.host))
			assert.Equal(t, tc.want != "", hostname.IsSubdomain(tc.host))
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Slugify: base de la derivación de subdominios a partir del nombre del
// negocio. Debe sobrevivir tildes, eñes y símbolos.
// ──────────────────────────────────────────────────────────────────────────────

func TestSlugify_NombresDeNegocio(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Acme POS", "acme-pos"},
		{"Panadería La Eñe", "panaderia-la-ene"},
		{"  Café & Té  ", "cafe-te"},
		{"Tienda #1 (Centro)", "tienda-1-centro"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, hostname.Slugify(tc.in), "slug de %q", tc.in)
	}
}
