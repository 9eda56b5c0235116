package mem

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	dbt "github.com/Psy1ALise/travel-planner-public/db/db"
)

// inMemoryPlannerDBWrapper is an in-memory implementation of
// dbt.PlannerDBWrapper. Trip points are kept in insertion order per trip so
// that "storage order" tie-breaking matches the SQL implementation.
type inMemoryPlannerDBWrapper struct {
	trips          map[uuid.UUID]*dbt.Trip
	tripOrder      []uuid.UUID // insertion order for deterministic scans
	points         map[uuid.UUID][]dbt.TripPoint // keyed by trip ID, insertion order
	pois           map[uuid.UUID]*dbt.POI
	poiOrder       []uuid.UUID // insertion order for deterministic scans
	accommodations map[uuid.UUID][]dbt.TripAccommodation // keyed by trip ID, insertion order

	mu sync.RWMutex
}

// NewInMemoryPlannerDBWrapper creates and returns a new empty in-memory store.
func NewInMemoryPlannerDBWrapper() dbt.PlannerDBWrapper {
	return &inMemoryPlannerDBWrapper{
		trips:          make(map[uuid.UUID]*dbt.Trip),
		points:         make(map[uuid.UUID][]dbt.TripPoint),
		pois:           make(map[uuid.UUID]*dbt.POI),
		accommodations: make(map[uuid.UUID][]dbt.TripAccommodation),
	}
}

// CreateTrip creates a new trip entry in memory.
func (db *inMemoryPlannerDBWrapper) CreateTrip(trip *dbt.Trip) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.trips[trip.ID]; exists {
		return fmt.Errorf("trip with ID %s already exists", trip.ID)
	}

	tripCopy := *trip
	tripCopy.StartDate = dbt.TruncateToDay(trip.StartDate)
	tripCopy.EndDate = dbt.TruncateToDay(trip.EndDate)
	db.trips[trip.ID] = &tripCopy
	db.tripOrder = append(db.tripOrder, trip.ID)
	db.points[trip.ID] = []dbt.TripPoint{}
	return nil
}

// GetTrip retrieves a trip by ID.
func (db *inMemoryPlannerDBWrapper) GetTrip(id uuid.UUID) (*dbt.Trip, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	trip, exists := db.trips[id]
	if !exists {
		return nil, fmt.Errorf("trip %s: %w", id, dbt.ErrNotFound)
	}
	tripCopy := *trip
	return &tripCopy, nil
}

// GetUserTrips returns all trips owned by a user, ordered by start date
// descending.
func (db *inMemoryPlannerDBWrapper) GetUserTrips(userID uuid.UUID) ([]dbt.Trip, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var trips []dbt.Trip
	for _, id := range db.tripOrder {
		if trip := db.trips[id]; trip.UserID == userID {
			trips = append(trips, *trip)
		}
	}
	// Stable over insertion order, so equal start dates keep storage order.
	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].StartDate.After(trips[j].StartDate)
	})
	return trips, nil
}

// DeleteTrip removes the trip row only. Child rows are removed by prior
// DeleteTripPoints and DeleteTripAccommodations calls, sequenced by the
// service layer; the delete fails while any still reference the trip, the
// same way the SQL foreign keys fail it.
func (db *inMemoryPlannerDBWrapper) DeleteTrip(id uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.trips[id]; !exists {
		return fmt.Errorf("trip %s: %w", id, dbt.ErrNotFound)
	}
	if len(db.points[id]) > 0 {
		return fmt.Errorf("failed to delete trip %s: trip points still reference it", id)
	}
	if len(db.accommodations[id]) > 0 {
		return fmt.Errorf("failed to delete trip %s: accommodations still reference it", id)
	}

	delete(db.trips, id)
	delete(db.points, id)
	for i := range db.tripOrder {
		if db.tripOrder[i] == id {
			db.tripOrder = append(db.tripOrder[:i], db.tripOrder[i+1:]...)
			break
		}
	}
	return nil
}
