package occupancy

import (
	"context"
	"fmt"
	"time"

	"parking-status-backend/internal/prediction"
	"parking-status-backend/internal/store"
)

// dayLayout matches the state_date.fecha column.
const dayLayout = "2006-01-02"

// Reporter produces occupancy reports on demand.
type Reporter struct {
	store       store.Store
	predictions prediction.Source
	loc         *time.Location
	now         func() time.Time
}

// NewReporter creates a reporter. "Today" is taken in loc; a nil loc means
// the local time zone.
func NewReporter(s store.Store, predictions prediction.Source, loc *time.Location) *Reporter {
	if loc == nil {
		loc = time.Local
	}
	return &Reporter{
		store:       s,
		predictions: predictions,
		loc:         loc,
		now:         time.Now,
	}
}

// WithClock replaces the wall clock, for tests.
func (r *Reporter) WithClock(now func() time.Time) *Reporter {
	r.now = now
	return r
}

// Today returns the current date in the reporter's time zone.
func (r *Reporter) Today() string {
	return r.now().In(r.loc).Format(dayLayout)
}

// Report checks the connection, loads today's latest state per space and the
// prediction, and aggregates them. It returns a *ConnectionError when the
// database is unreachable and a *QueryError when the query fails; no partial
// report is produced.
func (r *Reporter) Report(ctx context.Context) (*Report, error) {
	if err := r.store.Ping(ctx); err != nil {
		return nil, &ConnectionError{Err: err}
	}

	states, err := r.store.LatestStates(ctx, r.Today())
	if err != nil {
		return nil, &QueryError{Err: err}
	}

	text, err := r.predictions.Read()
	if err != nil {
		return nil, fmt.Errorf("prediction unavailable: %w", err)
	}

	return Build(states, text), nil
}
