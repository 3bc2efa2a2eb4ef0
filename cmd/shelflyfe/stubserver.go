package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shelflyfe/internal/stubstore"
)

func stubserverCmd(a *app) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "stubserver",
		Short: "Run the in-memory development store",
		Long: `Serve the store API from memory for local development and demos.
State is lost on exit. Prometheus metrics are exposed on /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := stubstore.NewServer()
			if seed {
				seedDemoData(srv)
			}
			zap.L().Info("stub store listening", zap.String("addr", a.cfg.Stub.Listen))
			return srv.Run(a.cfg.Stub.Listen)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "Preload demo ingredients and menu items")
	return cmd
}

func seedDemoData(srv *stubstore.Server) {
	srv.SeedIngredient("tomato-001", "Tomatoes", 40, 2.50, "kgs", 10, "2026-09-04")
	srv.SeedIngredient("basil-002", "Basil", 8, 1.20, "bunches", 12, "2026-08-30")
	srv.SeedIngredient("flour-003", "Flour", 120, 0.90, "bags", 20, "2027-01-15")
	srv.SeedIngredient("mozz-004", "Mozzarella", 25, 4.80, "kgs", 15, "2026-09-01")

	srv.SeedMenuItem("margherita", "Margherita Pizza", "Mains", 14.00)
	srv.SeedMenuItem("caprese", "Caprese Salad", "Starters", 9.50)
	srv.SeedMenuItem("focaccia", "Focaccia", "Sides", 6.00)
}
