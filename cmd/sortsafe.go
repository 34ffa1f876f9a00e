/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package cmd

import (
	"github.com/spf13/cobra"

	"dynamic-rounding/log"
	"dynamic-rounding/sources/file"
)

var sortsafeHeader bool

var sortsafeCmd = &cobra.Command{
	Use:   "sortsafe <value> <file.csv|file.yaml|->",
	Short: "Round one value against a reference dataset",
	Long: `Round one value the way it would be rounded as part of the reference dataset.

The result does not depend on the value's position in the dataset, so a
rounded column keeps its order when the rows are sorted or filtered.`,
	Example: `  dynround sortsafe 983321.11 costs.csv`,
	Args:    cobra.ExactArgs(2),
	RunE:    runSortsafe,
}

func init() {
	sortsafeCmd.Flags().BoolVar(&sortsafeHeader, "header", false, "First CSV record holds column names")
	rootCmd.AddCommand(sortsafeCmd)
}

func runSortsafe(cmd *cobra.Command, args []string) error {
	ref, err := file.Load(args[1], sortsafeHeader)
	if err != nil {
		return err
	}
	log.Tracef("Loaded reference dataset %v", ref)

	res, err := newDispatcher().Evaluate(append([]interface{}{args[0], ref}, tuningArgs()...)...)
	if err != nil {
		return err
	}
	return writeValue(cmd.OutOrStdout(), outputFormat, res.Mode.String(), args[0], res.Value)
}
