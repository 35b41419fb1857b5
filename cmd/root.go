// Package cmd provides command-line interface functionality for the connstring application.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"connstring/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "connstring",
	Short: "A database connection string normalizer",
	Long: `ConnString resolves user-supplied database connection strings into
well-formed http/https endpoints.

Missing components (scheme, host, port, path, query, fragment) are filled
from configurable defaults, so inputs as bare as "localhost:9200" resolve to
a complete address. Percent-escaped characters in the query and fragment are
preserved exactly.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "Log format (json, text)")

	// Bind flags to viper
	if err := viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-level flag: %v\n", err)
	}
	if err := viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-format flag: %v\n", err)
	}
}

func initConfig() {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Set config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Environment variables
	v.SetEnvPrefix("CONNSTR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read configuration
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
		// Config file not found; use defaults and environment
	}

	// Load configuration
	cfg = config.New(v)
}

func setDefaults(v *viper.Viper) {
	// Default endpoint components, applied to connection strings that omit them
	v.SetDefault("defaults.scheme", "http")
	v.SetDefault("defaults.host", "localhost")
	v.SetDefault("defaults.port", 9200)
	v.SetDefault("defaults.path", "/")
	v.SetDefault("defaults.query", "")
	v.SetDefault("defaults.fragment", "")

	// Client defaults
	v.SetDefault("client.api_path", "_sql")
	v.SetDefault("client.timeout", "30s")

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}
