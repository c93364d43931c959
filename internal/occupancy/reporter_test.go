package occupancy

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking-status-backend/internal/prediction"
	"parking-status-backend/internal/store"
)

// mockStore is a mock implementation of the store.Store interface.
type mockStore struct {
	PingFunc         func(ctx context.Context) error
	LatestStatesFunc func(ctx context.Context, day string) ([]store.SpaceState, error)
}

func (m *mockStore) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}

func (m *mockStore) LatestStates(ctx context.Context, day string) ([]store.SpaceState, error) {
	return m.LatestStatesFunc(ctx, day)
}

// staticSource is a prediction.Source returning fixed values.
type staticSource struct {
	text string
	err  error
}

func (s staticSource) Read() (string, error) {
	return s.text, s.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestBuild(t *testing.T) {
	testCases := []struct {
		name             string
		states           []store.SpaceState
		expectedFree     int
		expectedOccupied int
	}{
		{name: "no rows", states: nil},
		{
			name: "one free one occupied",
			states: []store.SpaceState{
				{SpaceID: 1, Status: "Libre", ChangedAt: "10:00:00"},
				{SpaceID: 2, Status: "Ocupado", ChangedAt: "09:00:00"},
			},
			expectedFree:     1,
			expectedOccupied: 1,
		},
		{
			name: "unknown and near-miss statuses count as occupied",
			states: []store.SpaceState{
				{SpaceID: 1, Status: "libre"},
				{SpaceID: 2, Status: "Libre "},
				{SpaceID: 3, Status: "Averiado"},
				{SpaceID: 4, Status: ""},
				{SpaceID: 5, Status: "Libre"},
			},
			expectedFree:     1,
			expectedOccupied: 4,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			report := Build(tc.states, "p")

			assert.Equal(t, tc.expectedFree, report.Free)
			assert.Equal(t, tc.expectedOccupied, report.Occupied)
			assert.Equal(t, report.Free+report.Occupied, report.Total)
			assert.Equal(t, len(tc.states), report.Total)
			require.NotNil(t, report.Spaces)
			assert.Len(t, report.Spaces, len(tc.states))
			for i, s := range report.Spaces {
				assert.Equal(t, tc.states[i].Status, s.Status, "status is passed through verbatim")
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Hora desde que se desocupó", Describe("Libre"))
	assert.Equal(t, "Hora desde que se ocupó", Describe("Ocupado"))
	assert.Equal(t, "Estado desconocido", Describe("Reservado"))
	assert.Equal(t, "Estado desconocido", Describe(""))
}

func TestReport_JSONShape(t *testing.T) {
	report := Build([]store.SpaceState{{ID: 9, SpaceID: 3, Status: "Ocupado", ChangedAt: "09:00:00"}}, "Espacio 10 libre")

	body, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"spaces": [{
			"parking_spaces_id_sd": 3,
			"estado": "Ocupado",
			"hora_cambio": "09:00:00",
			"descripcion_estado": "Hora desde que se ocupó"
		}],
		"libres": 0,
		"ocupados": 1,
		"total": 1,
		"prediccion": "Espacio 10 libre"
	}`, string(body))

	empty, err := json.Marshal(Build(nil, prediction.Fallback))
	require.NoError(t, err)
	assert.JSONEq(t, `{"spaces":[],"libres":0,"ocupados":0,"total":0,"prediccion":"Sin datos de predicción"}`, string(empty))
}

func TestReporter_Report(t *testing.T) {
	loc, err := time.LoadLocation("America/Guayaquil")
	require.NoError(t, err)
	// 03:30 UTC on the 19th is still the 18th in Guayaquil (UTC-5).
	now := time.Date(2026, 10, 19, 3, 30, 0, 0, time.UTC)

	t.Run("two spaces, missing prediction", func(t *testing.T) {
		var queriedDay string
		s := &mockStore{
			PingFunc: func(ctx context.Context) error { return nil },
			LatestStatesFunc: func(ctx context.Context, day string) ([]store.SpaceState, error) {
				queriedDay = day
				return []store.SpaceState{
					{ID: 1, SpaceID: 1, Status: "Libre", ChangedAt: "10:00:00"},
					{ID: 2, SpaceID: 2, Status: "Ocupado", ChangedAt: "09:00:00"},
				}, nil
			},
		}
		reporter := NewReporter(s, staticSource{text: prediction.Fallback}, loc).WithClock(fixedClock(now))

		report, err := reporter.Report(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "2026-10-18", queriedDay)
		assert.Equal(t, 1, report.Free)
		assert.Equal(t, 1, report.Occupied)
		assert.Equal(t, 2, report.Total)
		assert.Equal(t, "Sin datos de predicción", report.Prediction)
		assert.Len(t, report.Spaces, 2)
	})

	t.Run("connection failure stops before querying", func(t *testing.T) {
		s := &mockStore{
			PingFunc: func(ctx context.Context) error { return errors.New("Access denied for user 'root'@'localhost'") },
			LatestStatesFunc: func(ctx context.Context, day string) ([]store.SpaceState, error) {
				t.Fatal("query must not run after a connection failure")
				return nil, nil
			},
		}
		reporter := NewReporter(s, staticSource{}, loc).WithClock(fixedClock(now))

		report, err := reporter.Report(context.Background())
		assert.Nil(t, report)

		var connErr *ConnectionError
		require.ErrorAs(t, err, &connErr)
		assert.Equal(t, "Conexión fallida: Access denied for user 'root'@'localhost'", err.Error())
	})

	t.Run("query failure", func(t *testing.T) {
		s := &mockStore{
			PingFunc: func(ctx context.Context) error { return nil },
			LatestStatesFunc: func(ctx context.Context, day string) ([]store.SpaceState, error) {
				return nil, errors.New("no such table: state_date")
			},
		}
		reporter := NewReporter(s, staticSource{}, loc).WithClock(fixedClock(now))

		_, err := reporter.Report(context.Background())
		var queryErr *QueryError
		require.ErrorAs(t, err, &queryErr)
		assert.Contains(t, err.Error(), "no such table")
	})

	t.Run("prediction read failure", func(t *testing.T) {
		s := &mockStore{
			PingFunc: func(ctx context.Context) error { return nil },
			LatestStatesFunc: func(ctx context.Context, day string) ([]store.SpaceState, error) {
				return nil, nil
			},
		}
		reporter := NewReporter(s, staticSource{err: errors.New("permission denied")}, loc).WithClock(fixedClock(now))

		_, err := reporter.Report(context.Background())
		assert.ErrorContains(t, err, "permission denied")
		var connErr *ConnectionError
		assert.False(t, errors.As(err, &connErr))
	})
}

func TestReporter_TodayDefaultsToLocal(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.Local)
	reporter := NewReporter(nil, nil, nil).WithClock(fixedClock(now))
	assert.Equal(t, "2026-10-18", reporter.Today())
}
