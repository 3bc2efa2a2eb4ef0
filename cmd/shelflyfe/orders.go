package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"shelflyfe/internal/models"
)

func menuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "List menu items grouped by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := a.orders()
			if err := ctrl.Load(cmd.Context()); err != nil {
				return makeErr(ctrl, err)
			}
			for _, category := range ctrl.Categories() {
				fmt.Printf("%s\n", category)
				for _, item := range ctrl.ItemsIn(category) {
					fmt.Printf("  %-28s %8.2f\n", item.Name, item.Price)
				}
			}
			return nil
		},
	}
}

func ordersCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "orders <id=count>...",
		Short: "Enter and submit dish orders for one category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts := make(map[string]int, len(args))
			for _, arg := range args {
				id, count, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("order %q: want id=count", arg)
				}
				n, err := strconv.Atoi(count)
				if err != nil {
					return fmt.Errorf("order %q: count %q is not a number", arg, count)
				}
				amounts[id] = n
			}

			ctrl := a.orders()
			if err := ctrl.Load(cmd.Context()); err != nil {
				return makeErr(ctrl, err)
			}
			ctrl.AddOrders(category, amounts)
			counts := ctrl.Counts()
			if err := ctrl.Submit(cmd.Context()); err != nil {
				return makeErr(ctrl, err)
			}
			fmt.Printf("Submitted %d order(s):\n", len(counts))
			printOrderCounts(counts)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Menu category the dish ids belong to")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func printOrderCounts(counts map[string]models.OrderCount) {
	for _, oc := range counts {
		fmt.Printf("  %-28s x%d\n", oc.Name, oc.Count)
	}
}
