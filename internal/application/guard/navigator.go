package guard

import (
	"context"
	"fmt"
)

// Route una pantalla navegable con su cadena de guards.
type Route struct {
	Path   string
	Name   string
	Guards []Guard
}

// maxHops corta ciclos de redirección entre guards.
const maxHops = 5

// Navigator evalúa la cadena de guards de una ruta y sigue las
// redirecciones que éstos decidan, igual que el router del front.
type Navigator struct {
	routes map[string]Route
	env    *Env
}

// NewNavigator construye el navegador sobre la tabla de rutas.
func NewNavigator(routes []Route, env *Env) *Navigator {
	m := make(map[string]Route, len(routes))
	for _, r := range routes {
		m[r.Path] = r
	}
	return &Navigator{routes: m, env: env}
}

// Env expone el contexto de guards (para la capa de presentación).
func (n *Navigator) Env() *Env { return n.env }

// Navigation resultado de una navegación resuelta.
type Navigation struct {
	Route     Route    // ruta finalmente admitida
	Redirects []string // rutas intermedias visitadas (vacío si fue directa)
	ReturnURL string   // destino original si terminamos en /login
}

// Navigate intenta activar la ruta path. Si algún guard redirige, se evalúa
// la cadena de la ruta destino, hasta maxHops saltos.
func (n *Navigator) Navigate(ctx context.Context, path string) (*Navigation, error) {
	nav := &Navigation{}
	current := path
	for hop := 0; hop < maxHops; hop++ {
		route, ok := n.routes[current]
		if !ok {
			return nil, fmt.Errorf("ruta desconocida: %s", current)
		}
		decision := n.evaluate(ctx, route)
		if decision.Allow {
			nav.Route = route
			return nav, nil
		}
		if decision.ReturnURL != "" {
			nav.ReturnURL = decision.ReturnURL
		}
		nav.Redirects = append(nav.Redirects, decision.RedirectTo)
		current = decision.RedirectTo
	}
	return nil, fmt.Errorf("ciclo de redirecciones al navegar a %s", path)
}

// evaluate corre los guards de la ruta en orden; el primero que niega gana.
func (n *Navigator) evaluate(ctx context.Context, route Route) Decision {
	for _, g := range route.Guards {
		if d := g.Evaluate(ctx, n.env, route.Path); !d.Allow {
			n.env.log().Debug().
				Str("route", route.Path).
				Str("guard", g.Name).
				Str("redirect", d.RedirectTo).
				Str("reason", d.Reason).
				Msg("navegación denegada")
			return d
		}
	}
	return Allowed()
}
