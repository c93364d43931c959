package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Store defines the read operations the occupancy report needs.
type Store interface {
	Ping(ctx context.Context) error
	LatestStates(ctx context.Context, day string) ([]SpaceState, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Ping checks that a connection to the database can be established.
func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// latestStatesQuery joins state_date to its per-space MAX(hora_cambio) for the
// day. The outer filter on fecha keeps rows of other days sharing the same
// time of day out of the join. The verb takes the hora_cambio select expression.
const latestStatesQuery = `
SELECT
    sd.id AS id,
    sd.parking_spaces_id_sd AS space_id,
    sd.estado AS status,
    %s AS changed_at
FROM state_date sd
INNER JOIN (
    SELECT parking_spaces_id_sd, MAX(hora_cambio) AS max_hora_cambio
    FROM state_date
    WHERE fecha = ?
    GROUP BY parking_spaces_id_sd
) latest
ON sd.parking_spaces_id_sd = latest.parking_spaces_id_sd
AND sd.hora_cambio = latest.max_hora_cambio
WHERE sd.fecha = ?
ORDER BY sd.parking_spaces_id_sd, sd.id DESC`

// LatestStates returns one row per space that changed state on day (YYYY-MM-DD),
// ordered by space id. When several rows share the latest time, the one with
// the highest id wins.
func (s *gormStore) LatestStates(ctx context.Context, day string) ([]SpaceState, error) {
	var rows []SpaceState
	query := fmt.Sprintf(latestStatesQuery, changedAtColumn(s.db.Dialector.Name()))
	if err := s.db.WithContext(ctx).Raw(query, day, day).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query latest states for %s: %w", day, err)
	}

	states := make([]SpaceState, 0, len(rows))
	for i, r := range rows {
		// Rows come grouped by space with the highest id first.
		if i > 0 && rows[i-1].SpaceID == r.SpaceID {
			continue
		}
		r.ChangedAt = normalizeClock(r.ChangedAt)
		states = append(states, r)
	}
	return states, nil
}

// changedAtColumn reads hora_cambio as text. go-sqlite3 maps a declared TIME
// column to time.Time and yields a zero value for a bare clock.
func changedAtColumn(dialect string) string {
	if dialect == "mysql" {
		return "CAST(sd.hora_cambio AS CHAR)"
	}
	return "CAST(sd.hora_cambio AS TEXT)"
}

// normalizeClock drops an all-zero fractional part some drivers append to
// TIME values ("10:00:00.000000" -> "10:00:00").
func normalizeClock(v string) string {
	dot := strings.IndexByte(v, '.')
	if dot < 0 {
		return v
	}
	if strings.Trim(v[dot+1:], "0") == "" {
		return v[:dot]
	}
	return v
}
