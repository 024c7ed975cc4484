package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
	"github.com/jhoicas/mypos-admin/internal/application/guard"
	"github.com/jhoicas/mypos-admin/pkg/hostname"
)

func newTenantCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Sub-accounts de la plataforma y su configuración",
	}
	cmd.AddCommand(
		newTenantListCommand(),
		newTenantCreateCommand(),
		newTenantCheckCommand(),
		newTenantSettingsCommand(),
	)
	return cmd
}

func newTenantListCommand() *cobra.Command {
	var page dto.PageRequest

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista los sub-accounts (solo dominio principal)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteTenants); err != nil {
				return err
			}
			out, err := app.API.ListTenants(ctx, page)
			if err != nil {
				return err
			}
			for _, t := range out.Items {
				fmt.Printf("%-24s  %-16s  %-10s  %s\n", t.ID, t.Subdomain, t.Status, t.Name)
			}
			fmt.Printf("total: %d\n", out.Page.Total)
			return nil
		},
	}
	cmd.Flags().IntVar(&page.Limit, "limit", 0, "tamaño de página")
	cmd.Flags().IntVar(&page.Offset, "offset", 0, "desplazamiento")
	return cmd
}

func newTenantCreateCommand() *cobra.Command {
	var in dto.CreateTenantRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Da de alta un sub-account (solo dominio principal)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteTenantCreate); err != nil {
				return err
			}
			t, err := app.API.CreateTenant(ctx, in)
			if err != nil {
				return err
			}
			fmt.Printf("Tenant creado: %s → %s.%s\n", t.Name, t.Subdomain, app.Cfg.API.MainDomain)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "nombre del negocio")
	cmd.Flags().StringVar(&in.Subdomain, "subdomain", "", "subdominio (si se omite se deriva del nombre)")
	cmd.Flags().StringVar(&in.OwnerEmail, "owner", "", "email del dueño")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("owner")
	return cmd
}

// tenant check consulta el endpoint público de resolución de subdominios,
// pasando por la caché del servicio.
func newTenantCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <subdominio>",
		Short: "Verifica si un subdominio corresponde a una cuenta activa",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := app.Subdomains.Validate(cmd.Context(), args[0])
			if !res.IsValid {
				if res.Err != "" {
					return fmt.Errorf("%s", res.Err)
				}
				return fmt.Errorf("el subdominio %q no es válido", args[0])
			}
			fmt.Printf("%s → %s (%s)\n", args[0], res.Account.Name, res.Account.Status)
			return nil
		},
	}
}

func newTenantSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Configuración del tenant actual",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Muestra la configuración vigente",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteSettings); err != nil {
				return err
			}
			s, err := app.API.TenantSettings(ctx, hostname.Subdomain(app.Host))
			if err != nil {
				return err
			}
			fmt.Printf("negocio:   %s\n", s.BusinessName)
			fmt.Printf("moneda:    %s\n", s.Currency)
			fmt.Printf("zona:      %s\n", s.Timezone)
			fmt.Printf("impuesto:  %s\n", s.TaxRate.String())
			if s.ReceiptFooter != "" {
				fmt.Printf("pie:       %s\n", s.ReceiptFooter)
			}
			return nil
		},
	}

	var in dto.TenantSettingRequest
	var taxRate string
	update := &cobra.Command{
		Use:   "update",
		Short: "Reemplaza la configuración del tenant",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteSettings); err != nil {
				return err
			}
			if taxRate != "" {
				rate, err := decimal.NewFromString(taxRate)
				if err != nil {
					return fmt.Errorf("taxRate inválido: %w", err)
				}
				in.TaxRate = rate
			}
			s, err := app.API.UpdateTenantSettings(ctx, hostname.Subdomain(app.Host), in)
			if err != nil {
				return err
			}
			fmt.Printf("Configuración de %s actualizada.\n", s.Subdomain)
			return nil
		},
	}
	update.Flags().StringVar(&in.BusinessName, "business-name", "", "razón social")
	update.Flags().StringVar(&in.Currency, "currency", "", "moneda ISO 4217 (COP, USD...)")
	update.Flags().StringVar(&in.Timezone, "timezone", "", "zona horaria IANA")
	update.Flags().StringVar(&taxRate, "tax-rate", "", "tasa de impuesto (0.19)")
	update.Flags().StringVar(&in.ReceiptFooter, "receipt-footer", "", "pie de recibo")
	update.MarkFlagRequired("business-name")
	update.MarkFlagRequired("currency")
	update.MarkFlagRequired("timezone")

	cmd.AddCommand(show, update)
	return cmd
}
