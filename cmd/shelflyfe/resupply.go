package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"shelflyfe/internal/controller"
	"shelflyfe/internal/models"
)

func resupplyCmd(a *app) *cobra.Command {
	var (
		items    []string
		supplier string
	)
	cmd := &cobra.Command{
		Use:   "resupply",
		Short: "Stage and submit a resupply order",
		Long: `Stage resupply rows and submit them as one batch.

Each --item takes sku=amount for restocking an existing ingredient, or
sku=amount:name:price:expiry to introduce a new one. Nothing is sent
until every staged row validates; a failed submit keeps the rows staged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(items) == 0 {
				return controller.ErrNothingStaged
			}
			ctrl := a.resupply()

			ing := a.ingredients()
			if err := ing.Load(cmd.Context()); err != nil {
				return errors.New(ing.Err())
			}
			known := make([]string, 0, len(ing.Records()))
			existing := make(map[string]models.Ingredient, len(ing.Records()))
			for _, rec := range ing.Records() {
				known = append(known, rec.SKU)
				existing[strings.ToLower(rec.SKU)] = rec
			}
			ctrl.SetKnownSKUs(known)

			for _, raw := range items {
				draft, err := parseResupplyItem(raw, supplier, existing)
				if err != nil {
					return err
				}
				ctrl.SetDraft(draft)
				if err := ctrl.Stage(); err != nil {
					printFieldErrors(ctrl.FieldErrors())
					return errors.Wrapf(err, "item %q", raw)
				}
			}

			if err := ctrl.Confirm(cmd.Context()); err != nil {
				return makeErr(ctrl, err)
			}
			fmt.Printf("Resupply submitted: %d item(s)\n", len(items))
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&items, "item", "i", nil, "Resupply row, sku=amount or sku=amount:name:price:expiry (repeatable)")
	cmd.Flags().StringVar(&supplier, "supplier", "", "Supplier for every staged row")
	return cmd
}

// parseResupplyItem turns one --item value into a draft. Known SKUs reuse
// the existing ingredient's details; new SKUs must spell them out.
func parseResupplyItem(raw, supplier string, existing map[string]models.Ingredient) (models.ResupplyDraft, error) {
	draft := models.EmptyResupplyDraft()
	draft.Supplier = supplier

	sku, rest, ok := strings.Cut(raw, "=")
	if !ok {
		return draft, fmt.Errorf("item %q: want sku=amount", raw)
	}
	draft.SKU = sku

	parts := strings.SplitN(rest, ":", 4)
	draft.Stock = parts[0]
	if _, err := strconv.Atoi(parts[0]); err != nil {
		return draft, fmt.Errorf("item %q: amount %q is not a number", raw, parts[0])
	}

	if ing, ok := existing[strings.ToLower(sku)]; ok && len(parts) == 1 {
		draft.Name = ing.Name
		draft.Price = strconv.FormatFloat(ing.Price, 'f', -1, 64)
		draft.Unit = ing.Unit
		draft.CustomUnit = ing.CustomUnit
		draft.ExpiryDate = ing.ExpiryDate
		draft.Threshold = strconv.Itoa(ing.Threshold)
		return draft, nil
	}
	if len(parts) < 4 {
		return draft, fmt.Errorf("item %q: new SKU needs sku=amount:name:price:expiry", raw)
	}
	draft.Name = parts[1]
	draft.Price = parts[2]
	draft.ExpiryDate = parts[3]
	return draft, nil
}
