package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
	"github.com/jhoicas/mypos-admin/internal/application/guard"
)

func newStaffCommand() *cobra.Command {
	var storeID string

	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Personal de una tienda",
	}
	cmd.PersistentFlags().StringVar(&storeID, "store", "", "id de la tienda (por defecto la tienda activa)")

	// resolveStore usa el flag o cae a la tienda activa de la sesión.
	resolveStore := func() (string, error) {
		if storeID != "" {
			return storeID, nil
		}
		if st := app.State.Store(); st != nil {
			return st.ID, nil
		}
		return "", fmt.Errorf("no hay tienda activa: use --store o `store select`")
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista el personal de la tienda",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteStaff); err != nil {
				return err
			}
			id, err := resolveStore()
			if err != nil {
				return err
			}
			out, err := app.API.ListStaff(ctx, id, dto.PageRequest{})
			if err != nil {
				return err
			}
			for _, m := range out.Items {
				fmt.Printf("%-24s  %-28s  %-8s  %s\n", m.ID, m.Email, m.Role, m.Status)
			}
			fmt.Printf("total: %d\n", out.Page.Total)
			return nil
		},
	}

	var invite dto.InviteStaffRequest
	inviteCmd := &cobra.Command{
		Use:   "invite",
		Short: "Invita un usuario a la tienda (queda pendiente)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteStaff); err != nil {
				return err
			}
			id, err := resolveStore()
			if err != nil {
				return err
			}
			m, err := app.API.InviteStaff(ctx, id, invite)
			if err != nil {
				return err
			}
			fmt.Printf("Invitación enviada a %s (rol %s, estado %s)\n", m.Email, m.Role, m.Status)
			return nil
		},
	}
	inviteCmd.Flags().StringVar(&invite.Email, "email", "", "email del invitado")
	inviteCmd.Flags().StringVar(&invite.Name, "name", "", "nombre del invitado")
	inviteCmd.Flags().StringVar(&invite.Role, "role", "staff", "rol: staff|manager|admin|owner")
	inviteCmd.MarkFlagRequired("email")

	var update dto.UpdateStaffRequest
	updateCmd := &cobra.Command{
		Use:   "update <staffId>",
		Short: "Cambia rol o estado de una membresía",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteStaff); err != nil {
				return err
			}
			id, err := resolveStore()
			if err != nil {
				return err
			}
			m, err := app.API.UpdateStaff(ctx, id, args[0], update)
			if err != nil {
				return err
			}
			fmt.Printf("Membresía de %s: rol %s, estado %s\n", m.Email, m.Role, m.Status)
			return nil
		},
	}
	updateCmd.Flags().StringVar(&update.Role, "role", "", "nuevo rol")
	updateCmd.Flags().StringVar(&update.Status, "status", "", "nuevo estado")

	remove := &cobra.Command{
		Use:   "remove <staffId>",
		Short: "Quita una membresía de la tienda",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteStaff); err != nil {
				return err
			}
			id, err := resolveStore()
			if err != nil {
				return err
			}
			if err := app.API.RemoveStaff(ctx, id, args[0]); err != nil {
				return err
			}
			fmt.Println("Membresía eliminada.")
			return nil
		},
	}

	cmd.AddCommand(list, inviteCmd, updateCmd, remove)
	return cmd
}
