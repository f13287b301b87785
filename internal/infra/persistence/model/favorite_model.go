package model

// FavoriteModel is the GORM-specific struct for the 'favorites' table.
type FavoriteModel struct {
	RecordModel `gorm:"embedded"`

	AnimalName string `gorm:"type:varchar(255)"`
	ImageURL   string `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (FavoriteModel) TableName() string {
	return "favorites"
}
