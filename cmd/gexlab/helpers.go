package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/scmhub/calendar"
	"go.uber.org/zap"
)

// warnIfNotTradingDay flags sample dates that fall on weekends or NYSE
// holidays; snapshots would not exist for those and an empty result is
// expected.
func warnIfNotTradingDay(date string, logger *zap.Logger) {
	if date == "" {
		return
	}

	nyse := calendar.XNYS()

	// NYSE operates in Eastern time
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		logger.Warn("failed to load America/New_York timezone, using UTC", zap.Error(err))
		loc = time.UTC
	}

	// Parse as noon in NYC timezone to ensure correct date matching
	t, err := time.ParseInLocation("2006-01-02 15:04:05", date+" 12:00:00", loc)
	if err != nil {
		logger.Warn("unparseable sample date", zap.String("date", date), zap.Error(err))
		return
	}
	if !nyse.IsBusinessDay(t) {
		logger.Warn("sample date is not an NYSE trading day", zap.String("date", date))
	}
}

// chartPath places a chart file under the configured output directory,
// creating the directory as needed.
func chartPath(name string) (string, error) {
	if err := os.MkdirAll(cfg.Output.Directory, 0750); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	return filepath.Join(cfg.Output.Directory, name), nil
}
