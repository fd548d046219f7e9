package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	clihandler "github.com/apex/log/handlers/cli"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/dtbkit/fdt"
	"github.com/joshuapare/dtbkit/pkg/dtb"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	quiet   bool
	jsonOut bool
	yamlOut bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "dtbctl",
	Short: "Inspect Flattened Device Tree blobs",
	Long: `dtbctl decodes Flattened Device Tree (.dtb) files: it dumps the node
tree, prints the header and memory reservations, extracts RAM layout and
board identity, and checks the blob for structural problems.

Blobs are mapped copy-on-write; the file on disk is never modified.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch {
		case verbose:
			log.SetLevel(log.DebugLevel)
		case quiet:
			log.SetLevel(log.ErrorLevel)
		}
	},
}

func init() {
	log.SetHandler(clihandler.Default)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/dtbctl/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (per-token debug logs)")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&yamlOut, "yaml", false, "Output in YAML format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	viper.SetDefault("color", true)
	cobra.CheckErr(viper.BindEnv("color", "CLICOLOR"))

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(filepath.Join(home, ".config", "dtbctl"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("dtbctl")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

// Helper functions for output

// colorEnabled reports whether output may be colored: not disabled by flag
// or config, and stdout is a terminal.
func colorEnabled() bool {
	return !noColor && viper.GetBool("color") && !color.NoColor
}

// openTree opens a blob for a command.
func openTree(path string) (*fdt.Tree, error) {
	log.WithField("path", path).Debug("opening dtb")
	t, err := dtb.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open device tree")
	}
	return t, nil
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printYAML outputs data as YAML
func printYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// printStructured writes v as YAML or JSON when either flag is set and
// reports whether it did.
func printStructured(v interface{}) (bool, error) {
	switch {
	case yamlOut:
		return true, printYAML(v)
	case jsonOut:
		return true, printJSON(v)
	}
	return false, nil
}
