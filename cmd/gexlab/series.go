package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgnsrekt/gexlab/internal/chain"
	"github.com/dgnsrekt/gexlab/internal/gex"
	"github.com/dgnsrekt/gexlab/internal/render"
	"github.com/dgnsrekt/gexlab/internal/series"
)

func netGEXCmd() *cobra.Command {
	return seriesCmd(seriesSpec{
		use:    "netgex",
		short:  "Intraday near-spot Net GEX time series",
		name:   "netgex",
		yLabel: "Net Gamma Exposure",
		title: func() string {
			return fmt.Sprintf("Intraday Net GEX (+/-%.0f strike window)", cfg.NetGEX.StrikeWidth)
		},
		metric: func() series.Metric {
			params := cfg.NetGEXParams()
			return func(snap *chain.Snapshot) float64 {
				return gex.NetGEXNearSpot(snap, params)
			}
		},
	})
}

func dgiCmd() *cobra.Command {
	return seriesCmd(seriesSpec{
		use:    "dgi",
		short:  "Intraday directional gamma imbalance time series",
		name:   "dgi",
		yLabel: "Directional Gamma Imbalance",
		title: func() string {
			return "Intraday Directional Gamma Imbalance"
		},
		metric: func() series.Metric {
			minDelta, maxDelta := cfg.DGI.MinAbsDelta, cfg.DGI.MaxAbsDelta
			return func(snap *chain.Snapshot) float64 {
				return gex.DirectionalImbalance(snap, minDelta, maxDelta)
			}
		},
	})
}

type seriesSpec struct {
	use    string
	short  string
	name   string
	yLabel string
	title  func() string
	metric func() series.Metric
}

// seriesCmd builds the shared shape of the two time-series commands:
// discover snapshots, map each through the metric, render a line chart.
func seriesCmd(spec seriesSpec) *cobra.Command {
	var (
		symbol     string
		expiration string
		sampleDate string
		out        string
	)

	cmd := &cobra.Command{
		Use:   spec.use,
		Short: spec.short,
		RunE: func(cmd *cobra.Command, args []string) error {
			warnIfNotTradingDay(sampleDate, logger)

			loader := series.NewLoader(cfg.DataDir, cfg.Load.Workers, logger)
			points, err := loader.Load(cmd.Context(), series.Request{
				Symbol:     symbol,
				Expiration: expiration,
				SampleDate: sampleDate,
			}, spec.metric())
			if err != nil {
				return err
			}

			logger.Info("series computed",
				zap.String("metric", spec.name),
				zap.Int("points", len(points)),
			)
			fmt.Printf("%s: %d points from %s to %s\n",
				spec.name, len(points),
				points[0].Time.Format("15:04:05"),
				points[len(points)-1].Time.Format("15:04:05"),
			)

			if out == "" {
				out, err = chartPath(fmt.Sprintf("%s_%s_%s.png", spec.name, symbol, expiration))
				if err != nil {
					return err
				}
			}

			if err := render.SeriesLine(out, points, spec.title(), spec.yLabel); err != nil {
				return fmt.Errorf("rendering chart: %w", err)
			}
			logger.Info("chart written", zap.String("path", out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "trading symbol (required)")
	cmd.Flags().StringVarP(&expiration, "expiration", "e", "", "option expiration YYYY-MM-DD (required)")
	cmd.Flags().StringVarP(&sampleDate, "date", "d", "", "limit to snapshots captured on this date YYYY-MM-DD")
	cmd.Flags().StringVarP(&out, "out", "o", "", "chart output path (default under output directory)")
	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("expiration")

	return cmd
}
