package main

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"shelflyfe/internal/controller"
	"shelflyfe/internal/models"
)

func ingredientsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ingredients",
		Aliases: []string{"ing"},
		Short:   "Manage the ingredient inventory",
	}
	cmd.AddCommand(
		ingredientsListCmd(a),
		ingredientsAddCmd(a),
		ingredientsUpdateCmd(a),
		ingredientsDeleteCmd(a),
		ingredientsExpiringCmd(a),
		ingredientsLowStockCmd(a),
	)
	return cmd
}

func ingredientsListCmd(a *app) *cobra.Command {
	var (
		search string
		sortBy string
		desc   bool
		page   int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ingredients with filtering, sorting and pagination",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := a.ingredients()
			if err := ctrl.Load(cmd.Context()); err != nil {
				return errors.New(ctrl.Err())
			}
			ctrl.SetSearchTerm(search)
			if sortBy != "" {
				ctrl.SetSort(sortBy)
				if desc {
					ctrl.SetSort(sortBy)
				}
			}
			ctrl.SetPage(page)
			printIngredients(ctrl.Visible())
			fmt.Printf("\nPage %d of %d (%d of %d ingredients)\n",
				ctrl.Page(), ctrl.TotalPages(), len(ctrl.Filtered()), len(ctrl.Records()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Substring match on name or SKU")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort key (name, sku, stock, price, threshold, orders, expiryDate)")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	return cmd
}

func ingredientsAddCmd(a *app) *cobra.Command {
	var draft models.IngredientDraft
	var unit string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an ingredient",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft.Unit, draft.CustomUnit = models.ClassifyMeasurement(unit)
			ctrl := a.ingredients()
			ctrl.SetDraft(draft)
			if err := ctrl.Add(cmd.Context()); err != nil {
				if err == controller.ErrInvalidDraft {
					printFieldErrors(ctrl.FieldErrors())
				}
				return makeErr(ctrl, err)
			}
			fmt.Printf("Added %s (%s)\n", draft.Name, draft.SKU)
			return nil
		},
	}
	bindDraftFlags(cmd, &draft, &unit)
	return cmd
}

func ingredientsUpdateCmd(a *app) *cobra.Command {
	var draft models.IngredientDraft
	var unit string
	cmd := &cobra.Command{
		Use:   "update <sku>",
		Short: "Update an ingredient by SKU",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := a.ingredients()
			if err := ctrl.Load(cmd.Context()); err != nil {
				return errors.New(ctrl.Err())
			}
			if !ctrl.Select(args[0]) {
				return fmt.Errorf("no ingredient with SKU %q", args[0])
			}
			merged := mergeDraft(ctrl.Draft(), draft, cmd, unit)
			ctrl.SetDraft(merged)
			if err := ctrl.Update(cmd.Context()); err != nil {
				if err == controller.ErrInvalidDraft {
					printFieldErrors(ctrl.FieldErrors())
				}
				return makeErr(ctrl, err)
			}
			fmt.Printf("Updated %s\n", args[0])
			return nil
		},
	}
	bindDraftFlags(cmd, &draft, &unit)
	return cmd
}

func ingredientsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <sku>",
		Short: "Delete an ingredient by SKU",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := a.ingredients()
			if err := ctrl.Remove(cmd.Context(), args[0]); err != nil {
				return makeErr(ctrl, err)
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

func ingredientsExpiringCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "expiring",
		Short: "List ingredients expiring within the store's warning window",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.client.ExpiringIngredients(cmd.Context())
			if err != nil {
				return err
			}
			printIngredients(list)
			return nil
		},
	}
}

func ingredientsLowStockCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "low-stock",
		Short: "List ingredients below their warning threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.client.LowStockIngredients(cmd.Context())
			if err != nil {
				return err
			}
			printIngredients(list)
			return nil
		},
	}
}

func bindDraftFlags(cmd *cobra.Command, draft *models.IngredientDraft, unit *string) {
	cmd.Flags().StringVar(&draft.Name, "name", "", "Ingredient name")
	cmd.Flags().StringVar(&draft.SKU, "sku", "", "Stock keeping unit")
	cmd.Flags().StringVar(&draft.Stock, "stock", "", "Stock amount")
	cmd.Flags().StringVar(&draft.Price, "price", "", "Unit price")
	cmd.Flags().StringVar(unit, "unit", string(models.UnitIndividual), "Measurement (individual, bags, bunches, cartons, kgs, or a custom label)")
	cmd.Flags().StringVar(&draft.ExpiryDate, "expiry", "", "Expiry date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&draft.Threshold, "threshold", "", "Low-stock warning threshold")
}

// mergeDraft overlays only the flags the user actually set onto the draft
// loaded from the selected ingredient.
func mergeDraft(base, flags models.IngredientDraft, cmd *cobra.Command, unit string) models.IngredientDraft {
	if cmd.Flags().Changed("name") {
		base.Name = flags.Name
	}
	if cmd.Flags().Changed("stock") {
		base.Stock = flags.Stock
	}
	if cmd.Flags().Changed("price") {
		base.Price = flags.Price
	}
	if cmd.Flags().Changed("unit") {
		base.Unit, base.CustomUnit = models.ClassifyMeasurement(unit)
	}
	if cmd.Flags().Changed("expiry") {
		base.ExpiryDate = flags.ExpiryDate
	}
	if cmd.Flags().Changed("threshold") {
		base.Threshold = flags.Threshold
	}
	return base
}

func printIngredients(list []models.Ingredient) {
	fmt.Printf("%-20s %-12s %8s %10s %12s %-12s %10s\n",
		"NAME", "SKU", "STOCK", "PRICE", "MEASUREMENT", "EXPIRES", "THRESHOLD")
	for _, ing := range list {
		fmt.Printf("%-20s %-12s %8d %10.2f %12s %-12s %10d\n",
			ing.Name, ing.SKU, ing.Stock, ing.Price, ing.Measurement(), ing.ExpiryDate, ing.Threshold)
	}
}

func printFieldErrors(errs models.FieldErrors) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Printf("  %s: %s\n", field, errs[field])
	}
}

// makeErr prefers the controller's surfaced message over the raw error.
func makeErr(ctrl interface{ Err() string }, err error) error {
	if msg := ctrl.Err(); msg != "" {
		return errors.New(msg)
	}
	return err
}
