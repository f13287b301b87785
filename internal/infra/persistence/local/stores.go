package local

import (
	"pawsync/internal/domain/entity"
	"pawsync/internal/domain/repository"
	"pawsync/internal/infra/persistence/model"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"gorm.io/gorm"
)

// NewFavoriteStore is the constructor for the favorites cache.
func NewFavoriteStore(db *gorm.DB) repository.LocalStore[*entity.Favorite] {
	return newRecordStore(db, recordCodec[*entity.Favorite, model.FavoriteModel]{
		fromDomain: fromFavoriteDomain,
		toDomain:   toFavoriteDomain,
		record:     func(m *model.FavoriteModel) *model.RecordModel { return &m.RecordModel },
	})
}

// NewOwnershipStore is the constructor for the ownership requests cache.
func NewOwnershipStore(db *gorm.DB) repository.LocalStore[*entity.OwnershipRequest] {
	return newRecordStore(db, recordCodec[*entity.OwnershipRequest, model.OwnershipRequestModel]{
		fromDomain: fromOwnershipDomain,
		toDomain:   toOwnershipDomain,
		record:     func(m *model.OwnershipRequestModel) *model.RecordModel { return &m.RecordModel },
	})
}

// NewWalkStore is the constructor for the walks cache.
func NewWalkStore(db *gorm.DB) repository.LocalStore[*entity.Walk] {
	return newRecordStore(db, recordCodec[*entity.Walk, model.WalkModel]{
		fromDomain: fromWalkDomain,
		toDomain:   toWalkDomain,
		record:     func(m *model.WalkModel) *model.RecordModel { return &m.RecordModel },
	})
}

// NewActivityStore is the constructor for the activities cache.
func NewActivityStore(db *gorm.DB) repository.LocalStore[*entity.Activity] {
	return newRecordStore(db, recordCodec[*entity.Activity, model.ActivityModel]{
		fromDomain: fromActivityDomain,
		toDomain:   toActivityDomain,
		record:     func(m *model.ActivityModel) *model.RecordModel { return &m.RecordModel },
	})
}

// --- Mapper Functions ---

func fromRecordDomain(rec *entity.Record, dedupeKey *string) model.RecordModel {
	return model.RecordModel{
		LocalID:     rec.LocalID,
		RemoteID:    rec.RemoteID,
		OwnerUserID: rec.OwnerUserID,
		SubjectID:   rec.SubjectID,
		Status:      rec.Status.String(),
		Dirty:       rec.Dirty,
		DedupeKey:   dedupeKey,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func toRecordDomain(m *model.RecordModel) entity.Record {
	rec := entity.Record{
		LocalID:     m.LocalID,
		OwnerUserID: m.OwnerUserID,
		SubjectID:   m.SubjectID,
		Status:      entity.Status(m.Status),
		Dirty:       m.Dirty,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.RemoteID != nil && *m.RemoteID != "" {
		rec.SetRemoteID(*m.RemoteID)
	}

	return rec
}

func fromFavoriteDomain(fav *entity.Favorite) *model.FavoriteModel {
	return &model.FavoriteModel{
		RecordModel: fromRecordDomain(&fav.Record, fav.DedupeKey()),
		AnimalName:  fav.AnimalName,
		ImageURL:    fav.ImageURL,
	}
}

func toFavoriteDomain(m *model.FavoriteModel) *entity.Favorite {
	return &entity.Favorite{
		Record:     toRecordDomain(&m.RecordModel),
		AnimalName: m.AnimalName,
		ImageURL:   m.ImageURL,
	}
}

func fromOwnershipDomain(req *entity.OwnershipRequest) *model.OwnershipRequestModel {
	return &model.OwnershipRequestModel{
		RecordModel: fromRecordDomain(&req.Record, req.DedupeKey()),
		ShelterID:   req.ShelterID,
		Message:     req.Message,
	}
}

func toOwnershipDomain(m *model.OwnershipRequestModel) *entity.OwnershipRequest {
	return &entity.OwnershipRequest{
		Record:    toRecordDomain(&m.RecordModel),
		ShelterID: m.ShelterID,
		Message:   m.Message,
	}
}

func fromWalkDomain(walk *entity.Walk) *model.WalkModel {
	return &model.WalkModel{
		RecordModel:    fromRecordDomain(&walk.Record, walk.DedupeKey()),
		Route:          encodeRoute(walk.Route),
		DistanceMeters: walk.DistanceMeters,
		StartedAt:      walk.StartedAt,
		EndedAt:        walk.EndedAt,
		Medal:          string(walk.Medal),
	}
}

func toWalkDomain(m *model.WalkModel) *entity.Walk {
	return &entity.Walk{
		Record:         toRecordDomain(&m.RecordModel),
		Route:          decodeRoute(m.Route),
		DistanceMeters: m.DistanceMeters,
		StartedAt:      m.StartedAt,
		EndedAt:        m.EndedAt,
		Medal:          entity.ParseMedal(m.Medal),
	}
}

func fromActivityDomain(act *entity.Activity) *model.ActivityModel {
	return &model.ActivityModel{
		RecordModel: fromRecordDomain(&act.Record, act.DedupeKey()),
		Title:       act.Title,
		Description: act.Description,
		Longitude:   act.Location.Lon(),
		Latitude:    act.Location.Lat(),
		ScheduledAt: act.ScheduledAt,
	}
}

func toActivityDomain(m *model.ActivityModel) *entity.Activity {
	return &entity.Activity{
		Record:      toRecordDomain(&m.RecordModel),
		Title:       m.Title,
		Description: m.Description,
		Location:    orb.Point{m.Longitude, m.Latitude},
		ScheduledAt: m.ScheduledAt,
	}
}

// encodeRoute stores a route as a GeoJSON geometry. An empty route is stored as an empty string.
func encodeRoute(route orb.LineString) string {
	if len(route) == 0 {
		return ""
	}

	data, err := geojson.NewGeometry(route).MarshalJSON()
	if err != nil {
		return ""
	}

	return string(data)
}

func decodeRoute(raw string) orb.LineString {
	if raw == "" {
		return nil
	}

	geometry, err := geojson.UnmarshalGeometry([]byte(raw))
	if err != nil {
		return nil
	}

	route, _ := geometry.Geometry().(orb.LineString)

	return route
}
