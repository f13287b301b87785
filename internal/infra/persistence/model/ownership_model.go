package model

// OwnershipRequestModel is the GORM-specific struct for the 'ownership_requests' table.
type OwnershipRequestModel struct {
	RecordModel `gorm:"embedded"`

	ShelterID string `gorm:"type:varchar(128)"`
	Message   string `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (OwnershipRequestModel) TableName() string {
	return "ownership_requests"
}
