package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ThomasCrouzet/apicem-inventory/internal/apicem"
	"github.com/ThomasCrouzet/apicem-inventory/internal/config"
	"github.com/ThomasCrouzet/apicem-inventory/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var validateConnect bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate your apicem.yml configuration",
	Long: `Check that the controller address and credentials are set. With --connect
also log in to the controller to verify the credentials.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateConnect, "connect", false, "log in to the controller to test the credentials")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), "run 'apicem-inventory init' to create a config file"))
		return err
	}

	fmt.Fprintln(ui.Out, ui.Bold("Validating configuration..."))

	errs := cfg.Validate()
	for _, ve := range errs {
		ui.ValidationErr(ve.Field, ve.Message, ve.Suggestion)
	}
	failed := len(errs)
	passed := 0
	if failed == 0 {
		ui.ValidationOK("controller", cfg.Controller.BaseURL())
		passed++
		if cfg.Controller.Insecure {
			ui.Warn("TLS certificate verification is disabled")
		}
	}

	if validateConnect && failed == 0 {
		if checkLogin(cmd.Context(), cfg.Controller, logger) {
			passed++
		} else {
			failed++
		}
	}

	fmt.Fprintln(ui.Out)
	if failed == 0 {
		ui.Success(fmt.Sprintf("%d checks passed, 0 errors", passed))
		return nil
	}
	fmt.Fprintf(ui.Out, "%d checks passed, %d errors\n", passed, failed)
	return fmt.Errorf("%d validation errors", failed)
}

// checkLogin logs in to the controller and reports the outcome as a
// validation line.
func checkLogin(ctx context.Context, c config.Controller, logger zerolog.Logger) bool {
	session := apicem.NewSession(c, logger)
	if _, _, err := session.Login(ctx); err != nil {
		ui.ValidationErr("login", err.Error(), "check the credentials and that the controller is reachable")
		return false
	}
	defer func() { _ = session.Logoff(ctx) }()

	ui.ValidationOK("login", "service ticket issued (API "+session.Version()+")")
	return true
}
