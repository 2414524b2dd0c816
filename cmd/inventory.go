package cmd

import (
	"context"

	"github.com/ThomasCrouzet/apicem-inventory/internal/apicem"
	"github.com/ThomasCrouzet/apicem-inventory/internal/config"
	"github.com/ThomasCrouzet/apicem-inventory/internal/inventory"
	"github.com/ThomasCrouzet/apicem-inventory/internal/model"
	"github.com/ThomasCrouzet/apicem-inventory/internal/render"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// runInventory implements the Ansible inventory script protocol. Stdout
// always receives exactly one JSON document; problems are logged to stderr.
func runInventory(cmd *cobra.Command, args []string) error {
	inv := model.NewInventory()

	// --host is answered with an empty inventory: --list already returns
	// every host's variables under _meta.
	if listInventory {
		inv = listFromController(cmd.Context())
	}

	out, err := (&render.JSONRenderer{Indent: prettyOutput}).Render(inv)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func listFromController(ctx context.Context) *model.Inventory {
	cfg, logger, err := loadConfig()
	if err != nil {
		logger.Error().Err(err).Msg("loading config")
		return model.NewInventory()
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		for _, ve := range errs {
			logger.Error().Str("field", ve.Field).Str("hint", ve.Suggestion).Msg(ve.Message)
		}
		return model.NewInventory()
	}

	inv, err := newBuilder(cfg, logger).Build(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("controller query failed, returning empty inventory")
	}
	return inv
}

func newBuilder(cfg *config.Config, logger zerolog.Logger) *inventory.Builder {
	return &inventory.Builder{
		Client:         apicem.NewSession(cfg.Controller, logger),
		Scope:          cfg.Inventory.Scope,
		SanitizeGroups: cfg.Inventory.SanitizeGroups,
		Logger:         logger,
	}
}
