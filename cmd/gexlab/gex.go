package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgnsrekt/gexlab/internal/chain"
	"github.com/dgnsrekt/gexlab/internal/gex"
	"github.com/dgnsrekt/gexlab/internal/render"
)

func gexCmd() *cobra.Command {
	var (
		symbol     string
		expiration string
		minStrike  float64
		maxStrike  float64
		out        string
	)

	cmd := &cobra.Command{
		Use:   "gex",
		Short: "Strike GEX profile from the latest snapshot",
		Long: `Aggregate gamma exposure by strike from the most recent snapshot
for a symbol/expiration, locate the zero-gamma level and render the
profile chart.

Examples:
  gexlab gex --symbol \$SPX --expiration 2025-12-24
  gexlab gex --symbol SPXW --expiration 2025-12-24 --min-strike 6500 --max-strike 7000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := chain.LatestSnapshot(cfg.DataDir, symbol, expiration)
			if err != nil {
				return err
			}
			logger.Info("using snapshot", zap.String("file", filepath.Base(path)))

			snap, err := chain.ReadSnapshot(path)
			if err != nil {
				return err
			}

			var rng gex.StrikeRange
			if cmd.Flags().Changed("min-strike") {
				rng.Min = &minStrike
			}
			if cmd.Flags().Changed("max-strike") {
				rng.Max = &maxStrike
			}

			exposures := gex.AggregateByStrike(snap, cfg.NetGEX.Multiplier, rng)
			if len(exposures) == 0 {
				return fmt.Errorf("no strikes in range for %s exp %s", symbol, expiration)
			}

			var totalCall, totalPut float64
			for _, e := range exposures {
				totalCall += e.Call
				totalPut += e.Put
			}

			fmt.Printf("Strike range: %.0f-%.0f\n", exposures[0].Strike, exposures[len(exposures)-1].Strike)
			fmt.Printf("Total Call Gamma Exposure: %.0f\n", totalCall)
			fmt.Printf("Total Put Gamma Exposure:  %.0f\n", totalPut)

			var zeroGamma *float64
			if level, ok := gex.ZeroGammaLevel(exposures); ok {
				zeroGamma = &level
				fmt.Printf("Zero Gamma Level: ~%.1f\n", level)
			}

			if out == "" {
				out, err = chartPath(fmt.Sprintf("gex_%s_%s.png", symbol, expiration))
				if err != nil {
					return err
				}
			}

			spot, _ := snap.Spot()
			title := fmt.Sprintf("%s Gamma Exposure (exp %s)", symbol, expiration)
			if err := render.GEXProfile(out, exposures, spot, zeroGamma, title); err != nil {
				return fmt.Errorf("rendering chart: %w", err)
			}
			logger.Info("chart written", zap.String("path", out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "trading symbol (required)")
	cmd.Flags().StringVarP(&expiration, "expiration", "e", "", "option expiration YYYY-MM-DD (required)")
	cmd.Flags().Float64Var(&minStrike, "min-strike", 0, "minimum strike to include")
	cmd.Flags().Float64Var(&maxStrike, "max-strike", 0, "maximum strike to include")
	cmd.Flags().StringVarP(&out, "out", "o", "", "chart output path (default under output directory)")
	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("expiration")

	return cmd
}
