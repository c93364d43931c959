// Package occupancy builds the parking occupancy report: the latest state of
// every space that changed today, free and occupied counts, and the current
// prediction.
package occupancy

import "parking-status-backend/internal/store"

// Status values written by the detector.
const (
	StatusFree     = "Libre"
	StatusOccupied = "Ocupado"
)

// Space is one entry of the report's spaces list.
type Space struct {
	SpaceID     int64  `json:"parking_spaces_id_sd"`
	Status      string `json:"estado"`
	ChangedAt   string `json:"hora_cambio"`
	Description string `json:"descripcion_estado"`
}

// Report is the response body of the spaces endpoint.
type Report struct {
	Spaces     []Space `json:"spaces"`
	Free       int     `json:"libres"`
	Occupied   int     `json:"ocupados"`
	Total      int     `json:"total"`
	Prediction string  `json:"prediccion"`
}

// Describe returns the label shown next to a space's change time.
func Describe(status string) string {
	switch status {
	case StatusFree:
		return "Hora desde que se desocupó"
	case StatusOccupied:
		return "Hora desde que se ocupó"
	default:
		return "Estado desconocido"
	}
}

// IsFree reports whether status is exactly the free value. Everything else,
// unknown values included, counts as occupied.
func IsFree(status string) bool {
	return status == StatusFree
}

// Build aggregates the day's latest states into a report.
func Build(states []store.SpaceState, prediction string) *Report {
	report := &Report{
		Spaces:     make([]Space, 0, len(states)),
		Prediction: prediction,
	}
	for _, s := range states {
		report.Spaces = append(report.Spaces, Space{
			SpaceID:     s.SpaceID,
			Status:      s.Status,
			ChangedAt:   s.ChangedAt,
			Description: Describe(s.Status),
		})
		if IsFree(s.Status) {
			report.Free++
		} else {
			report.Occupied++
		}
	}
	report.Total = report.Free + report.Occupied
	return report
}
