package model

// StateChange is one status transition of a parking space, as written by the
// detector into the state_date table.
type StateChange struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	SpaceID   int64  `gorm:"column:parking_spaces_id_sd;not null;index:idx_state_date_day_space,priority:2"`
	Day       string `gorm:"column:fecha;type:date;not null;index:idx_state_date_day_space,priority:1"` // YYYY-MM-DD
	Status    string `gorm:"column:estado;size:32;not null"`
	ChangedAt string `gorm:"column:hora_cambio;type:time;not null"` // HH:MM:SS
}

// TableName keeps the table name used by the detector.
func (StateChange) TableName() string {
	return "state_date"
}
