/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/karrick/tparse/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dynamic-rounding/dispatch"
	"dynamic-rounding/log"
	dynmath "dynamic-rounding/math"
)

var cfgFile string
var outputFormat string
var logFormat string
var showDebug bool
var suppressWarnings bool

const (
	OUTPUT_TABLE = "table"
	OUTPUT_YAML  = "yaml"
	OUTPUT_CSV   = "csv"
)

// constant table - format types, keep in sync with OUTPUT_xxx constants above
func getOutputFormats() []string {
	return []string{OUTPUT_TABLE, OUTPUT_YAML, OUTPUT_CSV}
}

// viper keys for the rounding defaults; the flags below bind to them
const (
	KEY_SINGLE_OFFSET  = "single-offset"
	KEY_TOP_OFFSET     = "top-offset"
	KEY_OTHER_OFFSET   = "other-offset"
	KEY_TOP_TIER_WIDTH = "top-tier-width"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dynround",
	Short: "Magnitude-adaptive rounding for numbers and datasets",
	Long: `dynround rounds numbers to a precision that follows their order of magnitude.

A single value keeps one significant digit (or a configurable fraction of one).
A dataset keeps an extra half digit for its largest values and rounds the rest
more coarsely, so totals stay recognizable while the noise goes away. Rounding
a value against a reference dataset gives the same result as rounding the whole
dataset, which keeps sorted views stable.`,
	Version:           dynmath.VERSION,
	PersistentPreRunE: validateFlags,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().SortFlags = false // also requires Flags().SortFlag = false
	rootCmd.Flags().SortFlags = false           // also requires PersistentFlags().SortFlag = false

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dynamic-rounding.yaml)")

	rootCmd.PersistentFlags().String(KEY_TOP_OFFSET, fmt.Sprint(dynmath.DEFAULT_TOP_OFFSET), "Offset for values in the top magnitude tier of a dataset")
	rootCmd.PersistentFlags().String(KEY_OTHER_OFFSET, fmt.Sprint(dynmath.DEFAULT_OTHER_OFFSET), "Offset for all other dataset values")
	rootCmd.PersistentFlags().String(KEY_TOP_TIER_WIDTH, fmt.Sprint(dynmath.DEFAULT_TOP_TIER_WIDTH), "Number of magnitudes, from the largest down, that form the top tier")
	for _, key := range []string{KEY_TOP_OFFSET, KEY_OTHER_OFFSET, KEY_TOP_TIER_WIDTH} {
		viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}

	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", fmt.Sprintf("Output format (%v)", strings.Join(getOutputFormats(), "|")))
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", fmt.Sprintf("Log format for stderr (%v|%v)", log.FORMAT_TEXT, log.FORMAT_JSON))
	rootCmd.PersistentFlags().BoolVar(&showDebug, "debug", false, "Display tracing/debug information to stderr")
	rootCmd.PersistentFlags().BoolVarP(&suppressWarnings, "quiet", "q", false, "Suppress warning and info level messages")
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		// Search config in home directory with name ".dynamic-rounding" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".dynamic-rounding")
	}

	viper.SetEnvPrefix("DYNROUND")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Infof("Using config file: %v", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		log.Errorf("Failed to read config file %v: %v", cfgFile, err)
	}
}

func parseInstant(s string, option string) (instant time.Time, err error) {
	now := time.Now()
	if s == "" || s == "now" {
		return now, nil
	}
	if strings.HasPrefix(s, "-") {
		instant, err = tparse.AddDuration(now, s)
		if err != nil {
			err = fmt.Errorf("error parsing %v (relative): %v", option, err)
		}
	} else {
		instant, err = tparse.Parse(time.RFC3339, s)
		if err != nil {
			err = fmt.Errorf("error parsing %v (absolute): %v", option, err)
		}
	}
	return
}

func validateFlags(cmd *cobra.Command, args []string) error {
	// check flag dependencies
	if suppressWarnings && showDebug {
		return fmt.Errorf("--quiet and --debug flags cannot be combined")
	}
	log.SetOutput(cmd.ErrOrStderr())
	log.SetupLogLevel(showDebug, suppressWarnings)
	if err := log.SetupFormat(viper.GetString("log-format")); err != nil {
		return err
	}

	// check output format
	outputFormat = viper.GetString("output")
	if outputFormat == "" {
		outputFormat = OUTPUT_TABLE
	} else {
		outputFormatValid := false
		for _, f := range getOutputFormats() {
			if outputFormat == f {
				outputFormatValid = true
				break
			}
		}
		if !outputFormatValid {
			return fmt.Errorf("--output format must be one of %v", getOutputFormats())
		}
	}

	// reject bad tuning parameters before reading any input
	_, err := newDispatcher().Params(viper.Get(KEY_TOP_OFFSET), viper.Get(KEY_OTHER_OFFSET), viper.Get(KEY_TOP_TIER_WIDTH))
	return err
}

// newDispatcher returns a dispatcher with the built-in defaults; commands
// pass every configured parameter explicitly so that bad values are reported.
func newDispatcher() *dispatch.Dispatcher {
	return dispatch.New(dispatch.StandardDefaults())
}

// tuningArgs returns the dataset tuning parameters in positional order.
func tuningArgs() []interface{} {
	return []interface{}{viper.Get(KEY_TOP_OFFSET), viper.Get(KEY_OTHER_OFFSET), viper.Get(KEY_TOP_TIER_WIDTH)}
}
