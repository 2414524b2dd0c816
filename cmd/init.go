package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ThomasCrouzet/apicem-inventory/internal/config"
	"github.com/ThomasCrouzet/apicem-inventory/internal/ui"
	"github.com/ThomasCrouzet/apicem-inventory/internal/wizard"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var initSkipConnect bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an apicem.yml config file interactively",
	Long: `Detect controller settings from the environment and .env files and write
a config file through an interactive wizard. The password is never written;
keep it in APICEM_CONTROLLER_PASSWORD.

Once written, the file is read back and, when a password is available, used
to log in to the controller.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initSkipConnect, "skip-connect", false, "do not log in to the controller after writing the file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := "apicem.yml"
	if cfgFile != "" {
		configPath = cfgFile
	}

	if _, err := os.Stat(configPath); err == nil {
		if !confirmOverwrite(cmd.InOrStdin(), ui.Out, configPath) {
			fmt.Fprintln(ui.Out, "Aborted.")
			return nil
		}
	}

	detection := wizard.Detect(nil)
	answers, err := wizard.Run(detection)
	if err != nil {
		return fmt.Errorf("wizard: %w", err)
	}

	content, err := wizard.GenerateConfig(*answers)
	if err != nil {
		return fmt.Errorf("generating config: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	ui.Success(fmt.Sprintf("Created %s", configPath))

	_, logger, _ := loadConfig()
	if err := checkConfigFile(cmd.Context(), configPath, logger, !initSkipConnect); err != nil {
		fmt.Fprintln(ui.Out)
		fmt.Fprintf(ui.Out, "Fix the file, then run %s\n", ui.Bold("apicem-inventory validate --connect"))
		return err
	}

	fmt.Fprintln(ui.Out)
	fmt.Fprintf(ui.Out, "Next step: %s\n", ui.Bold("ansible-inventory -i apicem-inventory --list"))
	return nil
}

// confirmOverwrite asks before replacing an existing file. Anything but y/Y
// declines.
func confirmOverwrite(in io.Reader, out io.Writer, path string) bool {
	fmt.Fprintf(out, "%s already exists.\nOverwrite? [y/N] ", path)
	line, _ := bufio.NewReader(in).ReadString('\n')
	answer := strings.TrimSpace(line)
	return answer == "y" || answer == "Y"
}

// checkConfigFile reads path back together with the APICEM_* environment,
// validates it and, if connect is set and a password is known, logs in.
func checkConfigFile(ctx context.Context, path string, logger zerolog.Logger, connect bool) error {
	v := viper.New()
	v.SetConfigFile(path)
	config.BindEnv(v)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	cfg, err := config.LoadFrom(v)
	if err != nil {
		return err
	}

	var missingPassword bool
	var failed int
	for _, ve := range cfg.Validate() {
		if ve.Field == "controller.password" {
			missingPassword = true
			continue
		}
		ui.ValidationErr(ve.Field, ve.Message, ve.Suggestion)
		failed++
	}
	if failed > 0 {
		return fmt.Errorf("%d validation errors in %s", failed, path)
	}
	ui.ValidationOK("controller", cfg.Controller.BaseURL())

	switch {
	case missingPassword:
		ui.Warn("APICEM_CONTROLLER_PASSWORD is not set; add it to your environment or .env file")
	case connect:
		if !checkLogin(ctx, cfg.Controller, logger) {
			return fmt.Errorf("could not log in to %s", cfg.Controller.BaseURL())
		}
	}
	return nil
}
