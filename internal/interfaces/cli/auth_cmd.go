package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
	"github.com/jhoicas/mypos-admin/internal/application/guard"
	"github.com/jhoicas/mypos-admin/internal/application/session"
	"github.com/jhoicas/mypos-admin/pkg/hostname"
)

func newLoginCommand() *cobra.Command {
	var email, password string
	var remember bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión en la plataforma",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// La pantalla de login tiene su propio guard: valida el
			// subdominio y rebota a dashboard si ya hay sesión.
			nav, err := app.Nav.Navigate(ctx, guard.RouteLogin)
			if err != nil {
				return err
			}
			switch nav.Route.Path {
			case guard.RouteDashboard:
				fmt.Println("Ya hay una sesión activa.")
				return nil
			case guard.RouteSubdomainError:
				return fmt.Errorf("el subdominio %q no corresponde a una cuenta activa", hostname.Subdomain(app.Host))
			}

			if email == "" {
				if saved := app.Session.RememberedEmail(); saved != "" {
					email = saved
				} else if email, err = promptLine("Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptLine("Password: "); err != nil {
					return err
				}
			}

			user, err := app.Session.Login(ctx, dto.LoginRequest{
				Email:    email,
				Password: password,
				Remember: remember,
			})
			if err != nil {
				if errors.Is(err, session.ErrInvalidSubdomain) {
					return fmt.Errorf("el subdominio %q no corresponde a una cuenta activa", hostname.Subdomain(app.Host))
				}
				return err
			}

			fmt.Printf("Sesión iniciada: %s (%s)\n", user.Name, user.Role)
			// Equivalente al redirect post-login del front.
			if err := app.NavigateTo(ctx, guard.RouteDashboard); err == nil {
				fmt.Println("→ dashboard")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email de la cuenta")
	cmd.Flags().StringVar(&password, "password", "", "contraseña (si se omite se pide por stdin)")
	cmd.Flags().BoolVar(&remember, "remember", false, "recordar el email para próximos logins")
	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión y limpia el estado local",
		RunE: func(_ *cobra.Command, _ []string) error {
			app.Session.Logout()
			fmt.Println("Sesión cerrada.")
			return nil
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Muestra la sesión actual (dashboard)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteDashboard); err != nil {
				return err
			}
			app.Session.Boot(ctx)

			snap := app.State.Get()
			fmt.Printf("host:   %s\n", app.Host)
			if sub := hostname.Subdomain(app.Host); sub != "" {
				fmt.Printf("tenant: %s\n", sub)
			} else {
				fmt.Println("tenant: (dominio principal)")
			}
			if snap.User != nil {
				fmt.Printf("user:   %s <%s> rol=%s\n", snap.User.Name, snap.User.Email, snap.User.Role)
			} else {
				fmt.Println("user:   (sin sesión)")
			}
			if snap.Store != nil {
				fmt.Printf("store:  %s (%s)\n", snap.Store.Name, snap.Store.ID)
			}
			return nil
		},
	}
}
