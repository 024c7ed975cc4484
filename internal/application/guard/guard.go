package guard

import (
	"context"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
	"github.com/jhoicas/mypos-admin/internal/application/state"
	"github.com/jhoicas/mypos-admin/internal/application/subdomain"
	"github.com/jhoicas/mypos-admin/internal/infrastructure/localstore"
	"github.com/jhoicas/mypos-admin/pkg/hostname"
	"github.com/jhoicas/mypos-admin/pkg/jwt"
	"github.com/jhoicas/mypos-admin/pkg/logger"
)

// Rutas seguras a las que los guards redirigen.
const (
	RouteLogin          = "/login"
	RouteDashboard      = "/dashboard"
	RouteSubdomainError = "/subdomain-error"
)

// Decision resultado de evaluar un guard sobre una navegación.
type Decision struct {
	Allow      bool
	RedirectTo string // ruta destino cuando Allow es false
	ReturnURL  string // ruta original, para volver tras el login
	Reason     string
}

// Allowed decisión afirmativa.
func Allowed() Decision { return Decision{Allow: true} }

// Redirect decisión de redirección.
func Redirect(to, reason string) Decision {
	return Decision{Allow: false, RedirectTo: to, Reason: reason}
}

// Env es el contexto compartido que leen todos los guards: hostname
// simulado, estado de aplicación, tokens y el validador de subdominio.
type Env struct {
	Host       string // equivalente a window.location.hostname
	MainDomain string
	State      *state.AppState
	Tokens     *localstore.TokenStore
	Subdomains *subdomain.Service
	Refresher  TokenRefresher
	Log        *logger.Logger
}

// TokenRefresher refresh silencioso usado por el guard de autenticación.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error)
}

// OnSubdomain indica si el host actual es un subdominio de tenant.
func (e *Env) OnSubdomain() bool { return hostname.IsSubdomain(e.Host) }

// Subdomain devuelve el subdominio actual ("" en dominio principal).
func (e *Env) Subdomain() string { return hostname.Subdomain(e.Host) }

func (e *Env) log() *logger.Logger {
	if e.Log != nil {
		return e.Log
	}
	return logger.Nop()
}

// Guard evalúa una regla de acceso para una navegación. Nunca bloquea
// indefinidamente: las fallas se capturan y terminan en redirección segura.
type Guard struct {
	Name  string
	Check func(ctx context.Context, env *Env, targetPath string) Decision
}

// Evaluate corre el guard capturando pánicos: un guard roto redirige a
// /login en vez de tumbar la navegación.
func (g Guard) Evaluate(ctx context.Context, env *Env, targetPath string) (d Decision) {
	defer func() {
		if r := recover(); r != nil {
			env.log().Error().Interface("panic", r).Str("guard", g.Name).Msg("guard falló, redirigiendo a ruta segura")
			d = Redirect(RouteLogin, "error interno del guard")
		}
	}()
	return g.Check(ctx, env, targetPath)
}

// Auth exige sesión: token vigente permite el paso en forma síncrona, sin
// red. Sin token (o vencido) intenta un refresh silencioso; si tampoco se
// puede, redirige a /login.
func Auth() Guard {
	return Guard{Name: "auth", Check: func(ctx context.Context, env *Env, target string) Decision {
		if tokenValid(env.Tokens.AccessToken()) {
			return Allowed()
		}
		refresh := env.Tokens.RefreshToken()
		if refresh == "" {
			d := Redirect(RouteLogin, "sin sesión")
			d.ReturnURL = target
			return d
		}
		out, err := env.Refresher.Refresh(ctx, refresh)
		if err != nil || out.AccessToken == "" {
			env.log().Debug().Err(err).Msg("refresh silencioso falló")
			env.Tokens.Clear()
			d := Redirect(RouteLogin, "sesión vencida")
			d.ReturnURL = target
			return d
		}
		if err := env.Tokens.SetTokens(out.AccessToken, out.RefreshToken); err != nil {
			env.log().Warn().Err(err).Msg("persistir tokens renovados")
		}
		return Allowed()
	}}
}

// Login protege la pantalla de login: en subdominio primero valida la
// cuenta (inválida redirige a /subdomain-error); con sesión activa manda
// al dashboard; si no, permite entrar a loguearse.
func Login() Guard {
	return Guard{Name: "login", Check: func(ctx context.Context, env *Env, target string) Decision {
		if sub := env.Subdomain(); sub != "" {
			res := env.Subdomains.Validate(ctx, sub)
			if !res.IsValid {
				return Redirect(RouteSubdomainError, res.Err)
			}
		}
		if env.State.Get().Authenticated() && tokenValid(env.Tokens.AccessToken()) {
			return Redirect(RouteDashboard, "ya autenticado")
		}
		return Allowed()
	}}
}

// Subdomain admite solo en subdominio de tenant.
func Subdomain() Guard {
	return Guard{Name: "subdomain", Check: func(_ context.Context, env *Env, _ string) Decision {
		if env.OnSubdomain() {
			return Allowed()
		}
		return Redirect(RouteDashboard, "solo disponible en subdominio de tenant")
	}}
}

// NoSubdomain admite solo en el dominio principal.
func NoSubdomain() Guard {
	return Guard{Name: "no-subdomain", Check: func(_ context.Context, env *Env, _ string) Decision {
		if !env.OnSubdomain() {
			return Allowed()
		}
		return Redirect(RouteDashboard, "solo disponible en el dominio principal")
	}}
}

// Role es el guard de rol parametrizado: un único guard con el conjunto de
// roles permitidos y un nombre, configurado por ruta (reemplaza la vieja
// jerarquía Owner/Manager/Staff/AdminOnly). onDeny vacío redirige al
// dashboard.
func Role(name string, roles []string, onDeny string) Guard {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	if onDeny == "" {
		onDeny = RouteDashboard
	}
	return Guard{Name: name, Check: func(_ context.Context, env *Env, target string) Decision {
		user := env.State.User()
		if user == nil {
			d := Redirect(RouteLogin, "sin sesión")
			d.ReturnURL = target
			return d
		}
		if _, ok := allowed[user.Role]; ok {
			return Allowed()
		}
		return Redirect(onDeny, "rol sin permiso: "+user.Role)
	}}
}

// ConditionalOwner aplica el guard de owner solo en subdominio; en el
// dominio principal permite sin condiciones. Asimetría deliberada entre el
// contexto de operador de plataforma y el de tenant.
func ConditionalOwner() Guard {
	owner := Role("owner", []string{"owner"}, "")
	return Guard{Name: "conditional-owner", Check: func(ctx context.Context, env *Env, target string) Decision {
		if !env.OnSubdomain() {
			return Allowed()
		}
		return owner.Evaluate(ctx, env, target)
	}}
}

// tokenValid indica si el access token existe y no está vencido. Decodifica
// sin verificar firma: la validez real la decide el backend.
func tokenValid(token string) bool {
	if token == "" {
		return false
	}
	claims, err := jwt.Inspect(token)
	if err != nil {
		return false
	}
	return !claims.Expired(0)
}
