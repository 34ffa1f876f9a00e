/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appmodel "dynamic-rounding/app/model"
	dynmath "dynamic-rounding/math"
)

var valueCmd = &cobra.Command{
	Use:   "value <value> [<value>...]",
	Short: "Round values by their own order of magnitude",
	Long: `Round values by their own order of magnitude.

A value may be a plain number or formatted text such as "$1,234.56" or
"(500)". Text that is not a number is printed unchanged. Several values are
rounded as a series, each by its own magnitude, and printed as a one-column
dataset.`,
	Example: `  dynround value 87654321              # 90000000
  dynround value 87654321 --offset -1  # 88000000
  dynround value 4321 --offset -0.5    # 4500
  dynround value 87654321 4321 -o csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValue,
}

func init() {
	valueCmd.Flags().StringP("offset", "e", fmt.Sprint(dynmath.DEFAULT_SINGLE_OFFSET), "Offset: integer part shifts the rounding magnitude, fraction sets the step")
	viper.BindPFlag(KEY_SINGLE_OFFSET, valueCmd.Flags().Lookup("offset"))
	rootCmd.AddCommand(valueCmd)
}

func runValue(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return runValueSeries(cmd, args)
	}
	res, err := newDispatcher().Evaluate(args[0], viper.Get(KEY_SINGLE_OFFSET))
	if err != nil {
		return err
	}
	return writeValue(cmd.OutOrStdout(), outputFormat, res.Mode.String(), args[0], res.Value)
}

func runValueSeries(cmd *cobra.Command, args []string) error {
	values := make([]interface{}, len(args))
	for i, a := range args {
		values[i] = a
	}
	d, err := roundSingle(appmodel.FromColumn("value", values...), "", viper.Get(KEY_SINGLE_OFFSET))
	if err != nil {
		return err
	}
	return writeDataset(cmd.OutOrStdout(), outputFormat, d)
}
