// Package main provides the shelflyfe binary entry point.
// Shelflyfe is a back-of-house inventory console: it drives the remote
// ingredient store from the terminal, with filtering, sorting and
// pagination handled client-side.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shelflyfe/internal/api"
	"shelflyfe/internal/config"
	"shelflyfe/internal/controller"
)

const (
	Version = "0.1.0"
	appName = "shelflyfe"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the wiring shared by every subcommand. It is populated by
// the root command's PersistentPreRunE, after flags are parsed.
type app struct {
	cfg    *config.Config
	client *api.Client
}

func (a *app) ingredients() *controller.IngredientController {
	return controller.NewIngredientController(a.client)
}

func (a *app) resupply() *controller.ResupplyController {
	return controller.NewResupplyController(a.client)
}

func (a *app) orders() *controller.OrderEntryController {
	return controller.NewOrderEntryController(a.client)
}

func rootCmd() *cobra.Command {
	var configPath string
	a := &app{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Back-of-house inventory console",
		Long: `Shelflyfe manages restaurant ingredient inventory against a remote store.

It covers ingredient CRUD with validation, resupply orders, menu-driven
order entry and demand/waste analytics. All list operations filter, sort
and paginate locally; only confirmed store responses mutate state.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := setupLogger(cfg.Logger.Mode); err != nil {
				return err
			}
			a.cfg = cfg
			a.client = api.NewClient(cfg.Store.BaseURL, cfg.Store.Timeout())
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Config file path (YAML)")

	cmd.AddCommand(
		ingredientsCmd(a),
		resupplyCmd(a),
		menuCmd(a),
		ordersCmd(a),
		analyticsCmd(a),
		stubserverCmd(a),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	}
}

func setupLogger(mode string) error {
	var zcfg zap.Config
	if mode == "production" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	logger, err := zcfg.Build()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}
