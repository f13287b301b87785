package model

import (
	"time"

	"github.com/google/uuid"
)

// RecordModel holds the sync bookkeeping columns shared by every cached entity table.
// RemoteID and DedupeKey are nullable unique columns: NULLs never collide.
type RecordModel struct {
	LocalID     uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	RemoteID    *string   `gorm:"type:varchar(128);uniqueIndex"`
	OwnerUserID string    `gorm:"type:varchar(128);not null;index"`
	SubjectID   string    `gorm:"type:varchar(128);not null"`
	Status      string    `gorm:"type:varchar(32);not null"`
	Dirty       bool      `gorm:"not null"`
	DedupeKey   *string   `gorm:"type:varchar(256);uniqueIndex"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false;not null"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false;not null"`
}
