package itinerary

import (
	"time"

	"github.com/google/uuid"

	"github.com/Psy1ALise/travel-planner-public/db/db"
)

// POIService is the catalog of places. Retired POIs are invisible to every
// query here; only historical references (bookings, loaders) still see them.
type POIService struct {
	store db.PlannerDBWrapper
}

func NewPOIService(store db.PlannerDBWrapper) *POIService {
	return &POIService{store: store}
}

// Create registers a new active POI.
func (s *POIService) Create(poi *db.POI) (*db.POI, error) {
	if poi.ID == uuid.Nil {
		poi.ID = uuid.New()
	}
	poi.State = db.POIStateActive
	poi.DeletedAt = nil
	poi.CreatedAt = time.Now().UTC()

	if err := s.store.CreatePOI(poi); err != nil {
		return nil, err
	}
	return poi, nil
}

// GetActiveByID returns an active POI or NotFound, including for retired ids.
func (s *POIService) GetActiveByID(id uuid.UUID) (*db.POI, error) {
	return s.store.GetActivePOI(id)
}

// ListActive returns every active POI.
func (s *POIService) ListActive() ([]db.POI, error) {
	return s.store.GetActivePOIs()
}

// ListActiveByType returns the active POIs with the given type.
func (s *POIService) ListActiveByType(poiType db.POIType) ([]db.POI, error) {
	return s.store.GetActivePOIsByType(poiType)
}

// Nearby returns the active POIs within radiusMeters of the given coordinate.
// The boundary is inclusive; a radius of 0 matches coincident points.
func (s *POIService) Nearby(lat float64, lng float64, radiusMeters float64) ([]db.POI, error) {
	return s.store.GetNearbyPOIs(lat, lng, radiusMeters)
}

// SoftDelete retires a POI. Retiring an unknown or already retired id is a
// silent no-op.
func (s *POIService) SoftDelete(id uuid.UUID) error {
	return s.store.SoftDeletePOI(id)
}
