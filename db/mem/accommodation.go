package mem

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	dbt "github.com/Psy1ALise/travel-planner-public/db/db"
)

// CreateAccommodation persists a booking. Neither interval ordering nor
// overlap with existing bookings is validated; the resolver contract assumes
// callers keep intervals disjoint per trip.
func (db *inMemoryPlannerDBWrapper) CreateAccommodation(acc *dbt.TripAccommodation) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.trips[acc.TripID]; !exists {
		return fmt.Errorf("trip %s: %w", acc.TripID, dbt.ErrNotFound)
	}
	if _, exists := db.pois[acc.POIID]; !exists {
		return fmt.Errorf("POI %s: %w", acc.POIID, dbt.ErrNotFound)
	}

	accCopy := *acc
	accCopy.CheckInDate = dbt.TruncateToDay(acc.CheckInDate)
	accCopy.CheckOutDate = dbt.TruncateToDay(acc.CheckOutDate)
	db.accommodations[acc.TripID] = append(db.accommodations[acc.TripID], accCopy)
	return nil
}

// GetAccommodationForDate returns the accommodation of a trip whose stay
// interval contains date, inclusive on both ends. With overlapping intervals
// the first match in storage order wins; that case is unspecified behavior.
func (db *inMemoryPlannerDBWrapper) GetAccommodationForDate(tripID uuid.UUID, date time.Time) (*dbt.TripAccommodation, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for i := range db.accommodations[tripID] {
		if db.accommodations[tripID][i].CoversDate(date) {
			accCopy := db.accommodations[tripID][i]
			return &accCopy, nil
		}
	}
	return nil, fmt.Errorf("accommodation for trip %s on %s: %w",
		tripID, dbt.TruncateToDay(date).Format(time.DateOnly), dbt.ErrNotFound)
}

// GetTripAccommodations returns a trip's bookings ordered by ascending
// check-in date.
func (db *inMemoryPlannerDBWrapper) GetTripAccommodations(tripID uuid.UUID) ([]dbt.TripAccommodation, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	result := make([]dbt.TripAccommodation, len(db.accommodations[tripID]))
	copy(result, db.accommodations[tripID])
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CheckInDate.Before(result[j].CheckInDate)
	})
	return result, nil
}

// DeleteTripAccommodations removes every booking of a trip. Removing none is
// not an error.
func (db *inMemoryPlannerDBWrapper) DeleteTripAccommodations(tripID uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	delete(db.accommodations, tripID)
	return nil
}
