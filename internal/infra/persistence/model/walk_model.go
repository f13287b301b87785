package model

import "time"

// WalkModel is the GORM-specific struct for the 'walks' table.
// Route is stored as a GeoJSON LineString geometry.
type WalkModel struct {
	RecordModel `gorm:"embedded"`

	Route          string  `gorm:"type:text"`
	DistanceMeters float64 `gorm:"not null"`
	StartedAt      time.Time
	EndedAt        *time.Time
	Medal          string `gorm:"type:varchar(16)"`
}

// TableName explicitly sets the table name for GORM.
func (WalkModel) TableName() string {
	return "walks"
}
