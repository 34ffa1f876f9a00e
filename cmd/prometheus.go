/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package cmd

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/karrick/tparse/v2"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appmodel "dynamic-rounding/app/model"
	"dynamic-rounding/log"
	"dynamic-rounding/sources/prometheus"
)

var promUriString string
var promUri *url.URL
var queryTimeString string
var queryRange bool
var timeStartString string
var timeEndString string
var timeStepString string

var prometheusCmd = &cobra.Command{
	Use:   "prometheus <query>",
	Short: "Round the result of a Prometheus query",
	Long: `Run a PromQL query and round the result as a dataset.

An instant query yields one row per series. With --range, each series is
summarized over the time range (min, avg, median, max) and the summary is
rounded as a whole.`,
	Example: `  dynround prometheus -p http://localhost:9090 'sum by (service) (cost_dollars)'
  dynround prometheus -p http://localhost:9090 --range --start -1d --step 5m 'rate(http_requests_total[5m])'`,
	Args:    cobra.ExactArgs(1),
	PreRunE: validatePrometheusFlags,
	RunE:    runPrometheus,
}

func init() {
	prometheusCmd.Flags().SortFlags = false
	prometheusCmd.Flags().StringVarP(&promUriString, "prometheus-url", "p", "", "URI to Prometheus API")
	viper.BindPFlag("prometheus-url", prometheusCmd.Flags().Lookup("prometheus-url"))
	prometheusCmd.Flags().StringVar(&queryTimeString, "time", "now", "Evaluation time of an instant query, in RFC3339 or relative form")
	prometheusCmd.Flags().BoolVar(&queryRange, "range", false, "Run a range query and summarize each series")
	prometheusCmd.Flags().StringVar(&timeStartString, "start", "-1h", "Range start time, in RFC3339 or relative form")
	prometheusCmd.Flags().StringVar(&timeEndString, "end", "now", "Range end time, in RFC3339 or relative form")
	prometheusCmd.Flags().StringVar(&timeStepString, "step", "1m", "Range resolution, in relative form")
	rootCmd.AddCommand(prometheusCmd)
}

func parseRequiredUriFlag(uri **url.URL, text string, flag string) error {
	if text == "" {
		return fmt.Errorf("Required parameter %q not specified", flag)
	}
	var err error
	*uri, err = url.ParseRequestURI(text)
	if err != nil {
		return fmt.Errorf("Invalid URL for parameter %q: %v", flag, err)
	}
	return nil
}

// parseRange checks the --start/--end/--step flags.
func parseRange(start, end, step string) (r v1.Range, err error) {
	if r.Start, err = parseInstant(start, "--start"); err != nil {
		return
	}
	if r.End, err = parseInstant(end, "--end"); err != nil {
		return
	}
	if r.Step, err = tparse.AbsoluteDuration(r.Start, step); err != nil {
		err = fmt.Errorf("Could not parse time resolution: %v", err)
		return
	}
	if !r.Start.Before(r.End) {
		err = fmt.Errorf("Range start time must be earlier than end time")
	} else if r.Step < time.Second {
		err = fmt.Errorf("Range resolution must be at least 1 second (found %v)", r.Step)
	} else if r.End.Sub(r.Start)/r.Step < 1 {
		err = fmt.Errorf("Range & resolution should allow for at least 2 samples")
	}
	return
}

func validatePrometheusFlags(cmd *cobra.Command, args []string) error {
	return parseRequiredUriFlag(&promUri, viper.GetString("prometheus-url"), "-p/--prometheus-url")
}

func runPrometheus(cmd *cobra.Command, args []string) error {
	query := args[0]
	promApi, err := prometheus.CreateAPI(promUri)
	if err != nil {
		return err
	}

	var fetch func(ctx context.Context) (*appmodel.Dataset, v1.Warnings, error)
	if queryRange {
		r, err := parseRange(timeStartString, timeEndString, timeStepString)
		if err != nil {
			return err
		}
		fetch = func(ctx context.Context) (*appmodel.Dataset, v1.Warnings, error) {
			return prometheus.RangeDataset(ctx, promApi, query, r)
		}
	} else {
		ts, err := parseInstant(queryTimeString, "--time")
		if err != nil {
			return err
		}
		fetch = func(ctx context.Context) (*appmodel.Dataset, v1.Warnings, error) {
			return prometheus.InstantDataset(ctx, promApi, query, ts)
		}
	}

	var d *appmodel.Dataset
	// each source call applies prometheus.QUERY_TIMEOUT
	runner := func(update log.UpdateFunc) error {
		var err error
		d, _, err = fetch(context.Background())
		if err == nil {
			update(log.ProgressInfo{Series: len(d.Rows)})
		}
		return err
	}
	progressOut := cmd.ErrOrStderr()
	if log.IsQuiet() {
		progressOut = nil
	}
	if err := log.GoWithProgress(progressOut, "Querying Prometheus", runner); err != nil {
		return err
	}
	if len(d.Rows) == 0 {
		log.Warnf("Query %q returned no series", query)
	}

	out, err := roundDataset(d, "")
	if err != nil {
		return err
	}
	return writeDataset(cmd.OutOrStdout(), outputFormat, out)
}
