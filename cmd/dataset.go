/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appmodel "dynamic-rounding/app/model"
	"dynamic-rounding/log"
	dynmath "dynamic-rounding/math"
	"dynamic-rounding/sources/file"
)

var datasetHeader bool
var datasetColumn string
var datasetSingle bool
var datasetOffset string

var datasetCmd = &cobra.Command{
	Use:   "dataset <file.csv|file.yaml|->",
	Short: "Round every numeric cell of a dataset",
	Long: `Round every numeric cell of a dataset using the dataset's largest magnitude.

Values within --top-tier-width magnitudes of the largest value are rounded with
--top-offset, all others with --other-offset. Text, blanks and booleans are
copied unchanged. With --column only that column is rounded, using the column
alone as the reference.

With --single every value is rounded by its own magnitude with --offset (or
the configured single-offset), as the value command does.`,
	Example: `  dynround dataset costs.csv --header
  dynround dataset costs.yaml --column cost -o yaml
  dynround dataset costs.csv --column 2 --single --offset -0.5
  cat costs.csv | dynround dataset - --top-offset -1`,
	Args: cobra.ExactArgs(1),
	RunE: runDataset,
}

func init() {
	datasetCmd.Flags().SortFlags = false
	datasetCmd.Flags().BoolVar(&datasetHeader, "header", false, "First CSV record holds column names")
	datasetCmd.Flags().StringVarP(&datasetColumn, "column", "c", "", "Round only this column (name, or 1-based index)")
	datasetCmd.Flags().BoolVar(&datasetSingle, "single", false, "Round each value by its own magnitude instead of the dataset's")
	datasetCmd.Flags().StringVarP(&datasetOffset, "offset", "e", "", "Offset for --single (default: single-offset setting)")
	rootCmd.AddCommand(datasetCmd)
}

func runDataset(cmd *cobra.Command, args []string) error {
	d, err := file.Load(args[0], datasetHeader)
	if err != nil {
		return err
	}
	log.Tracef("Loaded dataset %v", d)

	var out *appmodel.Dataset
	if datasetSingle {
		offset := viper.Get(KEY_SINGLE_OFFSET)
		if cmd.Flags().Changed("offset") {
			offset = datasetOffset
		}
		out, err = roundSingle(d, datasetColumn, offset)
	} else if cmd.Flags().Changed("offset") {
		return fmt.Errorf("--offset applies to --single only; use --top-offset/--other-offset")
	} else {
		out, err = roundDataset(d, datasetColumn)
	}
	if err != nil {
		return err
	}
	return writeDataset(cmd.OutOrStdout(), outputFormat, out)
}

// roundDataset rounds d in dataset mode, or only the named column of it.
func roundDataset(d *appmodel.Dataset, column string) (*appmodel.Dataset, error) {
	if column == "" {
		res, err := newDispatcher().Evaluate(append([]interface{}{d}, tuningArgs()...)...)
		if err != nil {
			return nil, err
		}
		return d.WithRows(res.Rows), nil
	}

	col, err := columnIndex(d, column)
	if err != nil {
		return nil, err
	}
	targs := tuningArgs()
	p, err := newDispatcher().Params(targs[0], targs[1], targs[2])
	if err != nil {
		return nil, err
	}
	log.Tracef("Rounding column %d of %v with %+v", col+1, d, p)
	rows, err := dynmath.ColumnMode(d.Rows, col, p)
	if err != nil {
		return nil, err
	}
	return d.WithRows(rows), nil
}

// roundSingle rounds every value of d, or of only the named column, by its
// own magnitude.
func roundSingle(d *appmodel.Dataset, column string, rawOffset interface{}) (*appmodel.Dataset, error) {
	offset, err := newDispatcher().Offset(rawOffset)
	if err != nil {
		return nil, err
	}
	if _, err := dynmath.ResolveOffset(offset, "offset"); err != nil {
		return nil, err
	}
	cols := make([]int, 0, d.Width())
	if column == "" {
		for i := 0; i < d.Width(); i++ {
			cols = append(cols, i)
		}
	} else {
		col, err := columnIndex(d, column)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}

	log.Tracef("Rounding %d column(s) of %v in single value mode with offset %v", len(cols), d, offset)
	rows := d.Rows
	for _, col := range cols {
		if rows, err = dynmath.ColumnSingleMode(rows, col, offset); err != nil {
			return nil, err
		}
	}
	return d.WithRows(rows), nil
}

// columnIndex resolves a column name, or a 1-based index, to a 0-based index.
func columnIndex(d *appmodel.Dataset, column string) (int, error) {
	if i, ok := d.ColumnIndexByName(column); ok {
		return i, nil
	}
	n, err := strconv.Atoi(column)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("unknown column %q (columns: %v)", column, d.Columns)
	}
	if n > d.Width() {
		log.Warnf("Column %d is beyond the widest row (%d); nothing to round", n, d.Width())
	}
	return n - 1, nil
}
