package entity

// Favorite marks an animal listing as a favorite of a user.
type Favorite struct {
	Record

	AnimalName string `json:"animal_name"`
	ImageURL   string `json:"image_url"`
}

// Kind implements Syncable.
func (f *Favorite) Kind() Kind {
	return KindFavorite
}

// DedupeKey implements Syncable. A user can favorite a listing only once.
func (f *Favorite) DedupeKey() *string {
	key := DedupeKey(f.OwnerUserID, f.SubjectID)

	return &key
}

// ValidStatus implements Syncable.
func (f *Favorite) ValidStatus(status Status) bool {
	return status == StatusActive
}
