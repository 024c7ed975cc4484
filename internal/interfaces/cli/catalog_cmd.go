package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
	"github.com/jhoicas/mypos-admin/internal/application/guard"
)

func newCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catálogo del tenant: categorías y materiales",
	}
	cmd.AddCommand(newCategoryCommand(), newMaterialCommand())
	return cmd
}

func newCategoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Categorías de materiales",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista las categorías",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteCategories); err != nil {
				return err
			}
			out, err := app.API.ListCategories(ctx, dto.PageRequest{})
			if err != nil {
				return err
			}
			for _, c := range out.Items {
				fmt.Printf("%-24s  %-10s  %s\n", c.ID, c.Status, c.Name)
			}
			fmt.Printf("total: %d\n", out.Page.Total)
			return nil
		},
	}

	var in dto.CategoryRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Crea una categoría",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteCategories); err != nil {
				return err
			}
			c, err := app.API.CreateCategory(ctx, in)
			if err != nil {
				return err
			}
			fmt.Printf("Categoría creada: %s (%s)\n", c.Name, c.ID)
			return nil
		},
	}
	create.Flags().StringVar(&in.Name, "name", "", "nombre")
	create.Flags().StringVar(&in.Description, "description", "", "descripción")
	create.Flags().StringVar(&in.Status, "status", "", "active|inactive")
	create.MarkFlagRequired("name")

	var upd dto.CategoryRequest
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Edita una categoría",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteCategories); err != nil {
				return err
			}
			c, err := app.API.UpdateCategory(ctx, args[0], upd)
			if err != nil {
				return err
			}
			fmt.Printf("Categoría actualizada: %s\n", c.Name)
			return nil
		},
	}
	update.Flags().StringVar(&upd.Name, "name", "", "nombre")
	update.Flags().StringVar(&upd.Description, "description", "", "descripción")
	update.Flags().StringVar(&upd.Status, "status", "", "active|inactive")
	update.MarkFlagRequired("name")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Elimina una categoría sin materiales",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteCategories); err != nil {
				return err
			}
			if err := app.API.DeleteCategory(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("Categoría eliminada.")
			return nil
		},
	}

	cmd.AddCommand(list, create, update, del)
	return cmd
}

func newMaterialCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "material",
		Short: "Materiales del catálogo",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista los materiales",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteMaterials); err != nil {
				return err
			}
			out, err := app.API.ListMaterials(ctx, dto.PageRequest{})
			if err != nil {
				return err
			}
			for _, m := range out.Items {
				fmt.Printf("%-24s  %-12s  %8s %-4s  %s\n", m.ID, m.SKU, m.Price.String(), m.Unit, m.Name)
			}
			fmt.Printf("total: %d\n", out.Page.Total)
			return nil
		},
	}

	buildRequest := func(cmd *cobra.Command, in *dto.MaterialRequest, price, cost *string) {
		cmd.Flags().StringVar(&in.CategoryID, "category", "", "id de la categoría")
		cmd.Flags().StringVar(&in.Name, "name", "", "nombre")
		cmd.Flags().StringVar(&in.SKU, "sku", "", "código SKU")
		cmd.Flags().StringVar(&in.Unit, "unit", "un", "unidad (kg, un, lt...)")
		cmd.Flags().StringVar(price, "price", "0", "precio de venta")
		cmd.Flags().StringVar(cost, "cost", "0", "costo")
		cmd.Flags().StringVar(&in.Status, "status", "", "active|inactive")
	}
	parseAmounts := func(in *dto.MaterialRequest, price, cost string) error {
		p, err := decimal.NewFromString(price)
		if err != nil {
			return fmt.Errorf("price inválido: %w", err)
		}
		c, err := decimal.NewFromString(cost)
		if err != nil {
			return fmt.Errorf("cost inválido: %w", err)
		}
		in.Price, in.Cost = p, c
		return nil
	}

	var cIn dto.MaterialRequest
	var cPrice, cCost string
	create := &cobra.Command{
		Use:   "create",
		Short: "Crea un material",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteMaterials); err != nil {
				return err
			}
			if err := parseAmounts(&cIn, cPrice, cCost); err != nil {
				return err
			}
			m, err := app.API.CreateMaterial(ctx, cIn)
			if err != nil {
				return err
			}
			fmt.Printf("Material creado: %s (%s)\n", m.Name, m.ID)
			return nil
		},
	}
	buildRequest(create, &cIn, &cPrice, &cCost)
	create.MarkFlagRequired("category")
	create.MarkFlagRequired("name")

	var uIn dto.MaterialRequest
	var uPrice, uCost string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Edita un material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteMaterials); err != nil {
				return err
			}
			if err := parseAmounts(&uIn, uPrice, uCost); err != nil {
				return err
			}
			m, err := app.API.UpdateMaterial(ctx, args[0], uIn)
			if err != nil {
				return err
			}
			fmt.Printf("Material actualizado: %s\n", m.Name)
			return nil
		},
	}
	buildRequest(update, &uIn, &uPrice, &uCost)
	update.MarkFlagRequired("category")
	update.MarkFlagRequired("name")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Elimina un material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.NavigateTo(ctx, guard.RouteMaterials); err != nil {
				return err
			}
			if err := app.API.DeleteMaterial(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("Material eliminado.")
			return nil
		},
	}

	cmd.AddCommand(list, create, update, del)
	return cmd
}
