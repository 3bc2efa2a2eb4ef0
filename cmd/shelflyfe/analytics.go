package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"shelflyfe/internal/analytics"
)

func analyticsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Demand and waste reports over the current inventory",
	}
	cmd.AddCommand(analyticsDemandCmd(a), analyticsWasteCmd(a))
	return cmd
}

func analyticsDemandCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demand",
		Short: "Project next-period usage per ingredient from order trends",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := a.ingredients()
			if err := ctrl.Load(cmd.Context()); err != nil {
				return errors.New(ctrl.Err())
			}
			report := analytics.Demand(ctrl.Records())

			fmt.Printf("%-20s %-12s %10s %8s %10s %8s\n",
				"NAME", "SKU", "PROJECTED", "STOCK", "SHORTFALL", "REORDER")
			for _, f := range report.Forecasts {
				reorder := ""
				if f.Reorder {
					reorder = "yes"
				}
				fmt.Printf("%-20s %-12s %10.1f %8d %10.1f %8s\n",
					f.Name, f.SKU, f.ProjectedUsage, f.CurrentStock, f.Shortfall, reorder)
			}
			fmt.Printf("\nMean projected usage: %.1f\n", report.MeanProjected)
			if report.TopIngredient != "" {
				fmt.Printf("Highest demand: %s\n", report.TopIngredient)
			}
			fmt.Printf("At risk of shortfall: %d\n", report.AtRisk)
			return nil
		},
	}
}

func analyticsWasteCmd(a *app) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "waste",
		Short: "Estimate stock value at risk from upcoming expiry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := a.ingredients()
			if err := ctrl.Load(cmd.Context()); err != nil {
				return errors.New(ctrl.Err())
			}
			window := time.Duration(days) * 24 * time.Hour
			report := analytics.Waste(ctrl.Records(), time.Now(), window)

			fmt.Printf("Expiring within %d day(s): %d ingredient(s)\n", days, report.ExpiringCount)
			fmt.Printf("Stock value at risk:      %.2f\n", report.StockValueAtRisk)
			fmt.Printf("Potential savings:        %.2f\n", report.PotentialSavings)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "Expiry window in days")
	return cmd
}
