package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ThomasCrouzet/apicem-inventory/internal/config"
	"github.com/ThomasCrouzet/apicem-inventory/internal/logging"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	envFile  string
	logLevel string

	listInventory bool
	hostName      string
	prettyOutput  bool
)

var rootCmd = &cobra.Command{
	Use:   "apicem-inventory",
	Short: "Ansible dynamic inventory backed by an APIC-EM controller",
	Long: `apicem-inventory queries an APIC-EM controller for locations and network
devices and prints an Ansible dynamic inventory. Locations become groups and
every reachable device becomes a host with its facts as host variables.

Use it directly as an inventory source:
  ansible-inventory -i apicem-inventory --list`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runInventory,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: apicem.yml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with APICEM_* variables")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.Flags().BoolVar(&listInventory, "list", false, "print the full inventory as JSON")
	rootCmd.Flags().StringVar(&hostName, "host", "", "print variables for one host (always empty, --list carries _meta)")
	rootCmd.Flags().BoolVar(&prettyOutput, "pretty", false, "indent the JSON output")
}

func initConfig() {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", envFile, err)
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("apicem")
		viper.SetConfigType("yml")
		viper.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(dir + "/apicem-inventory")
		}
		viper.AddConfigPath("/etc/apicem-inventory")
	}

	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		}
	}
}

// loadConfig reads the configuration and sets up logging.
func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, logging.Init(logLevel, "console"), err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, logging.Init(cfg.Log.Level, cfg.Log.Format), nil
}
