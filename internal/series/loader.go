// Package series assembles per-snapshot scalar metrics into an ordered
// time series.
package series

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dgnsrekt/gexlab/internal/chain"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNoValidData     = errors.New("no valid option chain data with timestamps found")
)

// Metric reduces one snapshot to a scalar (NetGEX, DGI, ...).
type Metric func(*chain.Snapshot) float64

// Point is one (capture time, metric) entry.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

type Series []Point

// Request filters snapshot discovery. Symbol and Expiration are
// required; SampleDate optionally pins discovery to one capture date.
type Request struct {
	Symbol     string
	Expiration string
	SampleDate string
}

// Loader discovers snapshot files and maps them through a Metric.
// Per-file failures are logged and skipped; a series shorter than the
// number of matched files is how partial failure is reported, the logs
// are the only way to tell a failed file from a short filename.
type Loader struct {
	dataDir string
	workers int
	logger  *zap.Logger
}

func NewLoader(dataDir string, workers int, logger *zap.Logger) *Loader {
	if workers < 1 {
		workers = 1
	}
	return &Loader{
		dataDir: dataDir,
		workers: workers,
		logger:  logger,
	}
}

// Load computes metric over every matching snapshot and returns the
// series in filename-sort order, which the naming convention makes
// chronological. Snapshots are independent, so files fan out over the
// worker pool and results are reassembled by file index.
func (l *Loader) Load(ctx context.Context, req Request, metric Metric) (Series, error) {
	if req.Symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", ErrInvalidArgument)
	}
	if req.Expiration == "" {
		return nil, fmt.Errorf("%w: expiration is required", ErrInvalidArgument)
	}

	files, err := chain.FindSnapshots(l.dataDir, req.Symbol, req.Expiration, req.SampleDate)
	if err != nil {
		return nil, err
	}

	points := make([]*Point, len(files))
	jobs := make(chan int, len(files))

	var wg sync.WaitGroup
	for w := 0; w < l.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				points[i] = l.processFile(files[i], metric)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(Series, 0, len(files))
	for _, p := range points {
		if p != nil {
			out = append(out, *p)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoValidData
	}
	return out, nil
}

func (l *Loader) processFile(path string, metric Metric) *Point {
	name := filepath.Base(path)

	ts, err := chain.ParseCaptureTime(path)
	if err != nil {
		if errors.Is(err, chain.ErrNameFormat) {
			// Not a snapshot of ours, nothing worth logging.
			return nil
		}
		l.logger.Warn("skipping snapshot", zap.String("file", name), zap.Error(err))
		return nil
	}

	snap, err := chain.ReadSnapshot(path)
	if err != nil {
		l.logger.Warn("skipping snapshot", zap.String("file", name), zap.Error(err))
		return nil
	}

	value := metric(snap)
	if math.IsNaN(value) || math.IsInf(value, 0) {
		// Corrupt numeric cells surface as NaN from the reader and
		// poison the sum; treat the file as unusable.
		l.logger.Warn("skipping snapshot",
			zap.String("file", name),
			zap.String("reason", "metric is not finite"),
		)
		return nil
	}

	return &Point{Time: ts, Value: value}
}
