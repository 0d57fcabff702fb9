package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgnsrekt/gexlab/internal/candle"
	"github.com/dgnsrekt/gexlab/internal/render"
)

func candlesCmd() *cobra.Command {
	var (
		symbol    string
		date      string
		interval  int
		startTime string
		endTime   string
		out       string
	)

	cmd := &cobra.Command{
		Use:   "candles",
		Short: "Candlestick price chart for one session",
		Long: `Render a candlestick chart with volume from an interval CSV file
named {symbol}_{interval}_min_{date}.csv.

Examples:
  gexlab candles --symbol SPX --date 2025-12-18
  gexlab candles --symbol ES --date 2025-12-18 --interval 1 --from 09:30 --to 16:00`,
		RunE: func(cmd *cobra.Command, args []string) error {
			warnIfNotTradingDay(date, logger)

			candles, err := candle.Load(cfg.DataDir, symbol, interval, date)
			if err != nil {
				return err
			}

			session, err := candle.FilterSession(candles, startTime, endTime)
			if err != nil {
				return err
			}
			if len(session) == 0 {
				return fmt.Errorf("no candles between %s and %s on %s", startTime, endTime, date)
			}
			logger.Info("candles loaded",
				zap.Int("total", len(candles)),
				zap.Int("in_session", len(session)),
			)

			if out == "" {
				out, err = chartPath(fmt.Sprintf("candles_%s_%s.png", symbol, date))
				if err != nil {
					return err
				}
			}

			title := fmt.Sprintf("%s %d-min Candles - %s", symbol, interval, date)
			if err := render.CandleChart(out, session, interval, title); err != nil {
				return fmt.Errorf("rendering chart: %w", err)
			}
			logger.Info("chart written", zap.String("path", out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "trading symbol (required)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "session date YYYY-MM-DD (required)")
	cmd.Flags().IntVarP(&interval, "interval", "i", 5, "candle interval in minutes")
	cmd.Flags().StringVar(&startTime, "from", "08:00", "session start HH:MM")
	cmd.Flags().StringVar(&endTime, "to", "15:00", "session end HH:MM")
	cmd.Flags().StringVarP(&out, "out", "o", "", "chart output path (default under output directory)")
	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}
