package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/mypos-admin/pkg/config"
	"github.com/jhoicas/mypos-admin/pkg/logger"
)

var (
	flagHost    string
	flagConfig  string
	flagVerbose bool

	app *App
)

// NewRootCommand arma el árbol de comandos de la consola.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "mypos-admin",
		Short: "Consola de administración de la plataforma POS multi-tenant",
		Long: "Consola de administración de la plataforma POS.\n\n" +
			"El flag --host simula el hostname del navegador: con el dominio\n" +
			"principal (mypos.local) opera como plataforma; con un subdominio\n" +
			"(acme.mypos.local) opera dentro de ese tenant.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			paths := []string{"."}
			if flagConfig != "" {
				paths = []string{flagConfig}
			}
			cfg, err := config.Load(paths...)
			if err != nil {
				return err
			}
			level := "warn"
			if flagVerbose {
				level = "debug"
			}
			log := logger.New(logger.Config{Production: cfg.Production, Level: level})

			host := flagHost
			if host == "" {
				host = os.Getenv("MYPOS_HOST")
			}
			app, err = NewApp(cfg, host, log)
			return err
		},
	}

	root.PersistentFlags().StringVar(&flagHost, "host", "", "hostname simulado ({tenant}.dominio o dominio principal)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "directorio donde buscar config.json")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "logs de depuración")

	root.AddCommand(
		newLoginCommand(),
		newLogoutCommand(),
		newStatusCommand(),
		newProfileCommand(),
		newTenantCommand(),
		newStoreCommand(),
		newStaffCommand(),
		newCatalogCommand(),
		newConfigCommand(),
	)
	return root
}

// Execute corre la consola. Cualquier error no manejado termina en un
// toast y en el estado de aplicación, como el manejador global del front.
func Execute() int {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		if app != nil {
			app.ReportError(err)
		} else {
			fmt.Fprintln(os.Stderr, "⚠ "+err.Error())
		}
		return 1
	}
	return 0
}

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Muestra la configuración efectiva",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Printf("apiUrl:      %s\n", app.Cfg.API.URL)
			fmt.Printf("mainDomain:  %s\n", app.Cfg.API.MainDomain)
			fmt.Printf("production:  %v\n", app.Cfg.Production)
			fmt.Printf("host:        %s\n", app.Host)
			fmt.Printf("stateDir:    %s\n", app.Storage.Dir())
			return nil
		},
	}
}
