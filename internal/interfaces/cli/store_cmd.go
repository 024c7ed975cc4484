package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
	"github.com/jhoicas/mypos-admin/internal/application/guard"
)

func newStoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Tiendas del tenant actual",
	}
	cmd.AddCommand(
		newStoreListCommand(),
		newStoreCreateCommand(),
		newStoreUpdateCommand(),
		newStoreDeleteCommand(),
		newStoreSelectCommand(),
	)
	return cmd
}

func newStoreListCommand() *cobra.Command {
	var page dto.PageRequest

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista las tiendas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteStores); err != nil {
				return err
			}
			out, err := app.API.ListStores(ctx, page)
			if err != nil {
				return err
			}
			selected := ""
			if st := app.State.Store(); st != nil {
				selected = st.ID
			}
			for _, s := range out.Items {
				mark := " "
				if s.ID == selected {
					mark = "*"
				}
				fmt.Printf("%s %-24s  %-10s  %-10s  %s\n", mark, s.ID, s.Code, s.Status, s.Name)
			}
			fmt.Printf("total: %d\n", out.Page.Total)
			return nil
		},
	}
	cmd.Flags().IntVar(&page.Limit, "limit", 0, "tamaño de página")
	cmd.Flags().IntVar(&page.Offset, "offset", 0, "desplazamiento")
	return cmd
}

func storeRequestFlags(cmd *cobra.Command, in *dto.StoreRequest) {
	cmd.Flags().StringVar(&in.Name, "name", "", "nombre de la tienda")
	cmd.Flags().StringVar(&in.Code, "code", "", "código corto")
	cmd.Flags().StringVar(&in.Address, "address", "", "dirección")
	cmd.Flags().StringVar(&in.Status, "status", "", "active|inactive")
}

func newStoreCreateCommand() *cobra.Command {
	var in dto.StoreRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crea una tienda",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteStores); err != nil {
				return err
			}
			s, err := app.API.CreateStore(ctx, in)
			if err != nil {
				return err
			}
			fmt.Printf("Tienda creada: %s (%s)\n", s.Name, s.ID)
			return nil
		},
	}
	storeRequestFlags(cmd, &in)
	cmd.MarkFlagRequired("name")
	return cmd
}

func newStoreUpdateCommand() *cobra.Command {
	var in dto.StoreRequest

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edita una tienda",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteStores); err != nil {
				return err
			}
			s, err := app.API.UpdateStore(ctx, args[0], in)
			if err != nil {
				return err
			}
			fmt.Printf("Tienda actualizada: %s\n", s.Name)
			return nil
		},
	}
	storeRequestFlags(cmd, &in)
	cmd.MarkFlagRequired("name")
	return cmd
}

func newStoreDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Elimina una tienda",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteStores); err != nil {
				return err
			}
			if err := app.API.DeleteStore(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("Tienda eliminada.")
			return nil
		},
	}
}

// store select fija la tienda activa de la sesión, persistida entre
// ejecuciones como selectedStore.
func newStoreSelectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "select <id>",
		Short: "Fija la tienda activa de la sesión",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteStores); err != nil {
				return err
			}
			out, err := app.API.ListStores(ctx, dto.PageRequest{Limit: 100})
			if err != nil {
				return err
			}
			for _, s := range out.Items {
				if s.ID == args[0] {
					app.Session.SelectStore(s)
					fmt.Printf("Tienda activa: %s\n", s.Name)
					return nil
				}
			}
			return fmt.Errorf("la tienda %q no existe en este tenant", args[0])
		},
	}
}
