package survey

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/skillwall/internal/show"
)

const (
	StatusFetching      = "Fetching CEID Exchange responses…"
	StatusDemo          = "Could not load sheet – using demo data."
	StatusOffline       = "Offline – using demo data."
	StatusUpdated       = "Responses updated"
	StatusRefreshFailed = "Auto-refresh failed."
)

// Update is the outcome of one load. Buckets is nil when a refresh failed
// and the previous buckets must be kept.
type Update struct {
	Buckets show.Buckets
	Rows    int
	Status  string
	Demo    bool
	Err     error
}

// Loader turns fetches into bucket updates.
type Loader struct {
	fetcher  Fetcher
	phases   []show.Phase
	cols     Columns
	interval time.Duration
	logger   *slog.Logger
}

// NewLoader builds a loader. A nil fetcher serves demo data only.
func NewLoader(f Fetcher, phases []show.Phase, cols Columns, interval time.Duration, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{fetcher: f, phases: phases, cols: cols, interval: interval, logger: logger}
}

func (l *Loader) demo(status string, err error) Update {
	rows := DemoRows()
	return Update{
		Buckets: BuildBuckets(l.phases, rows),
		Rows:    len(rows),
		Status:  status,
		Demo:    true,
		Err:     err,
	}
}

// Initial loads the sheet and always yields buckets: on failure it falls
// back to the demo rows.
func (l *Loader) Initial(ctx context.Context) Update {
	if l.fetcher == nil {
		return l.demo(StatusOffline, nil)
	}
	rows, err := l.load(ctx)
	if err != nil {
		l.logger.Error("survey load failed, using demo data", "error", err)
		return l.demo(StatusDemo, err)
	}
	l.logger.Info("survey loaded", "responses", len(rows))
	return Update{
		Buckets: BuildBuckets(l.phases, rows),
		Rows:    len(rows),
		Status:  fmt.Sprintf("Loaded %d responses", len(rows)),
	}
}

// Refresh reloads the sheet. On failure Buckets is nil so callers keep what
// they have.
func (l *Loader) Refresh(ctx context.Context) Update {
	if l.fetcher == nil {
		return Update{Status: StatusOffline}
	}
	rows, err := l.load(ctx)
	if err != nil {
		l.logger.Error("survey refresh failed", "error", err)
		return Update{Status: StatusRefreshFailed, Err: err}
	}
	l.logger.Info("survey refreshed", "responses", len(rows))
	return Update{
		Buckets: BuildBuckets(l.phases, rows),
		Rows:    len(rows),
		Status:  StatusUpdated,
	}
}

func (l *Loader) load(ctx context.Context) ([]Row, error) {
	text, err := l.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return ParseTSV(text, l.cols), nil
}

// Run sends the initial load and then one refresh per interval until ctx
// is done. It never closes out.
func (l *Loader) Run(ctx context.Context, out chan<- Update) {
	if !send(ctx, out, l.Initial(ctx)) {
		return
	}
	if l.interval <= 0 || l.fetcher == nil {
		return
	}
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !send(ctx, out, l.Refresh(ctx)) {
				return
			}
		}
	}
}

func send(ctx context.Context, out chan<- Update, u Update) bool {
	select {
	case out <- u:
		return true
	case <-ctx.Done():
		return false
	}
}
