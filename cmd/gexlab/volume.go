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

func volumeCmd() *cobra.Command {
	var (
		symbol     string
		expiration string
		side       string
		topN       int
		minStrike  float64
		maxStrike  float64
		out        string
	)

	cmd := &cobra.Command{
		Use:   "volume",
		Short: "Volume by strike from the latest snapshot",
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

			filter := gex.VolumeFilter{Side: gex.Side(side), TopN: topN}
			if cmd.Flags().Changed("min-strike") {
				filter.Range.Min = &minStrike
			}
			if cmd.Flags().Changed("max-strike") {
				filter.Range.Max = &maxStrike
			}

			volumes, err := gex.VolumeByStrike(snap, filter)
			if err != nil {
				return err
			}
			if len(volumes) == 0 {
				return fmt.Errorf("no volume data in range for %s exp %s", symbol, expiration)
			}

			if out == "" {
				out, err = chartPath(fmt.Sprintf("volume_%s_%s.png", symbol, expiration))
				if err != nil {
					return err
				}
			}

			spot, _ := snap.Spot()
			title := fmt.Sprintf("Volume by Strike - %s exp %s (%s)", symbol, expiration, filter.Side)
			if err := render.VolumeByStrike(out, volumes, spot, title); err != nil {
				return fmt.Errorf("rendering chart: %w", err)
			}
			logger.Info("chart written", zap.String("path", out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "trading symbol (required)")
	cmd.Flags().StringVarP(&expiration, "expiration", "e", "", "option expiration YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&side, "side", "ALL", "contract side: ALL, CALL or PUT")
	cmd.Flags().IntVar(&topN, "top", 0, "keep only the N highest-volume strikes")
	cmd.Flags().Float64Var(&minStrike, "min-strike", 0, "minimum strike to include")
	cmd.Flags().Float64Var(&maxStrike, "max-strike", 0, "maximum strike to include")
	cmd.Flags().StringVarP(&out, "out", "o", "", "chart output path (default under output directory)")
	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("expiration")

	return cmd
}
