package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/mypos-admin/internal/application/guard"
	"github.com/jhoicas/mypos-admin/internal/application/session"
	"github.com/jhoicas/mypos-admin/internal/application/state"
	"github.com/jhoicas/mypos-admin/internal/application/subdomain"
	"github.com/jhoicas/mypos-admin/internal/domain/apierror"
	"github.com/jhoicas/mypos-admin/internal/infrastructure/api"
	"github.com/jhoicas/mypos-admin/internal/infrastructure/localstore"
	"github.com/jhoicas/mypos-admin/internal/infrastructure/transport"
	"github.com/jhoicas/mypos-admin/pkg/config"
	"github.com/jhoicas/mypos-admin/pkg/hostname"
	"github.com/jhoicas/mypos-admin/pkg/logger"
)

// App agrupa las dependencias de la consola de administración. Se arma una
// vez resuelto el host (flag --host), porque de él dependen el interceptor
// y los guards.
type App struct {
	Cfg        *config.Config
	Log        *logger.Logger
	Host       string
	Storage    *localstore.Store
	Tokens     *localstore.TokenStore
	State      *state.AppState
	API        *api.Client
	Subdomains *subdomain.Service
	Session    *session.Service
	Nav        *guard.Navigator
}

// NewApp construye la aplicación completa. host simula el hostname del
// navegador: el dominio principal o {tenant}.{dominio}.
func NewApp(cfg *config.Config, host string, log *logger.Logger) (*App, error) {
	if host == "" {
		host = cfg.API.MainDomain
	}
	if log == nil {
		log = logger.Nop()
	}

	storage, err := localstore.New(cfg.State.Dir)
	if err != nil {
		return nil, err
	}
	tokens := localstore.NewTokenStore(storage)
	sub := hostname.Subdomain(host)

	rt := transport.New(tokens, cfg.API.URL, sub, log)
	apiClient := api.New(cfg.API.URL, rt, cfg.API.Timeout, log)
	subs := subdomain.New(apiClient, log)
	st := state.New(storage, log)
	sess := session.New(apiClient, st, tokens, storage, subs, host, log)

	env := &guard.Env{
		Host:       host,
		MainDomain: cfg.API.MainDomain,
		State:      st,
		Tokens:     tokens,
		Subdomains: subs,
		Refresher:  apiClient,
		Log:        log,
	}
	nav := guard.NewNavigator(guard.DefaultRoutes(), env)

	return &App{
		Cfg:        cfg,
		Log:        log,
		Host:       host,
		Storage:    storage,
		Tokens:     tokens,
		State:      st,
		API:        apiClient,
		Subdomains: subs,
		Session:    sess,
		Nav:        nav,
	}, nil
}

// NavigateTo evalúa la cadena de guards de la ruta. Si los guards
// redirigen a otra pantalla el comando no corre y se informa el porqué.
func (a *App) NavigateTo(ctx context.Context, route string) error {
	nav, err := a.Nav.Navigate(ctx, route)
	if err != nil {
		return err
	}
	if nav.Route.Path == route {
		return nil
	}
	switch nav.Route.Path {
	case guard.RouteLogin:
		return fmt.Errorf("sesión requerida: ejecute `login` (destino pendiente: %s)", route)
	case guard.RouteSubdomainError:
		return fmt.Errorf("el subdominio %q no corresponde a una cuenta activa", hostname.Subdomain(a.Host))
	default:
		return fmt.Errorf("acceso denegado a %s (redirigido a %s)", route, nav.Route.Path)
	}
}

// Toast imprime un aviso efímero en stderr y lo registra en el estado,
// como el manejador global de errores del front.
func (a *App) Toast(msg string) {
	a.State.SetError(msg)
	fmt.Fprintln(os.Stderr, "⚠ "+msg)
}

// ReportError traduce un error a mensaje de usuario: los de validación
// muestran campo por campo, el resto su mensaje normalizado.
func (a *App) ReportError(err error) {
	if fields := apierror.Fields(err); len(fields) > 0 {
		a.Toast("Validation failed")
		for f, m := range fields {
			fmt.Fprintf(os.Stderr, "  - %s: %s\n", f, m)
		}
		return
	}
	if e := apierror.As(err); e != nil {
		a.Toast(e.Body.Message)
		return
	}
	a.Toast(err.Error())
}

// promptLine lee una línea de stdin con un prompt (para credenciales no
// pasadas por flag).
func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	r := bufio.NewReader(os.Stdin)
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
