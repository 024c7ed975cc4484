package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
	"github.com/jhoicas/mypos-admin/internal/application/guard"
)

func newProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Perfil del usuario autenticado",
	}
	cmd.AddCommand(newProfileShowCommand(), newProfileUpdateCommand(), newProfilePasswordCommand())
	return cmd
}

func newProfileShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Muestra el perfil",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteProfile); err != nil {
				return err
			}
			u, err := app.API.Profile(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("nombre:  %s\n", u.Name)
			fmt.Printf("email:   %s\n", u.Email)
			fmt.Printf("rol:     %s\n", u.Role)
			if u.Mobile != "" {
				fmt.Printf("móvil:   %s\n", u.Mobile)
			}
			if u.Address != "" {
				fmt.Printf("dirección: %s\n", u.Address)
			}
			return nil
		},
	}
}

func newProfileUpdateCommand() *cobra.Command {
	var in dto.UpdateProfileRequest

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Actualiza nombre, móvil y dirección",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteProfile); err != nil {
				return err
			}
			u, err := app.API.UpdateProfile(ctx, in)
			if err != nil {
				return err
			}
			app.State.SetUser(u)
			fmt.Println("Perfil actualizado.")
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "nombre completo")
	cmd.Flags().StringVar(&in.Mobile, "mobile", "", "teléfono móvil")
	cmd.Flags().StringVar(&in.Address, "address", "", "dirección")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newProfilePasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "password",
		Short: "Cambia la contraseña (se pide por stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteProfile); err != nil {
				return err
			}
			current, err := promptLine("Contraseña actual: ")
			if err != nil {
				return err
			}
			next, err := promptLine("Contraseña nueva: ")
			if err != nil {
				return err
			}
			if err := app.API.ChangePassword(ctx, dto.ChangePasswordRequest{
				CurrentPassword: current,
				NewPassword:     next,
			}); err != nil {
				return err
			}
			fmt.Println("Contraseña actualizada.")
			return nil
		},
	}
}
