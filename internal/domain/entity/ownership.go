package entity

// OwnershipRequest is an adoption request made by a user for an animal held by a shelter.
type OwnershipRequest struct {
	Record

	ShelterID string `json:"shelter_id"`
	Message   string `json:"message"`
}

// Kind implements Syncable.
func (o *OwnershipRequest) Kind() Kind {
	return KindOwnership
}

// DedupeKey implements Syncable. Only one pending request may exist per user and animal;
// decided requests release the key so the user can ask again.
func (o *OwnershipRequest) DedupeKey() *string {
	if o.Status != StatusPending {
		return nil
	}
	key := DedupeKey(o.OwnerUserID, o.SubjectID)

	return &key
}

// ValidStatus implements Syncable.
func (o *OwnershipRequest) ValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the request may move to next.
func (o *OwnershipRequest) CanTransitionTo(next Status) bool {
	return o.Status == StatusPending && (next == StatusApproved || next == StatusRejected)
}
