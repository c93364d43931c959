package store

// SpaceState is the latest state change of one parking space for a day.
type SpaceState struct {
	ID        int64  // state_date row id, used to break timestamp ties
	SpaceID   int64  // parking_spaces_id_sd
	Status    string // estado, passed through verbatim
	ChangedAt string // hora_cambio, time of day as stored
}
