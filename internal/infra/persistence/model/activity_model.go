package model

import "time"

// ActivityModel is the GORM-specific struct for the 'activities' table.
type ActivityModel struct {
	RecordModel `gorm:"embedded"`

	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Longitude   float64   `gorm:"type:decimal(11,8)"`
	Latitude    float64   `gorm:"type:decimal(10,8)"`
	ScheduledAt time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (ActivityModel) TableName() string {
	return "activities"
}
