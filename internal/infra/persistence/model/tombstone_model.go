package model

import "time"

// TombstoneModel is the GORM-specific struct for the 'sync_tombstones' table.
type TombstoneModel struct {
	Kind        string `gorm:"type:varchar(32);primaryKey"`
	RemoteID    string `gorm:"type:varchar(128);primaryKey"`
	OwnerUserID string `gorm:"type:varchar(128);not null;index"`
	Attempts    int    `gorm:"not null"`
	LastError   string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (TombstoneModel) TableName() string {
	return "sync_tombstones"
}
