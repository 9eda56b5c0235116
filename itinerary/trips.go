package itinerary

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Psy1ALise/travel-planner-public/db/db"
)

// TripService manages trip lifecycle. Deletion is not transactional:
// accommodations go first, then points, then the trip, as separately
// committed steps. A failure in between leaves the trip without children
// rather than children without a trip; the trip row itself cannot be
// removed while any child still references it.
type TripService struct {
	store db.PlannerDBWrapper
}

func NewTripService(store db.PlannerDBWrapper) *TripService {
	return &TripService{store: store}
}

// CreateTrip validates the date range and budget, then persists the trip.
// Start must not be after end and the budget must not be negative.
func (s *TripService) CreateTrip(userID uuid.UUID, name string, destination string, startDate time.Time, endDate time.Time, totalBudget decimal.Decimal) (*db.Trip, error) {
	start := db.TruncateToDay(startDate)
	end := db.TruncateToDay(endDate)
	if start.After(end) {
		return nil, fmt.Errorf("start date %s is after end date %s: %w",
			start.Format(time.DateOnly), end.Format(time.DateOnly), ErrInvalidRange)
	}
	if totalBudget.IsNegative() {
		return nil, fmt.Errorf("total budget %s is negative: %w", totalBudget, ErrInvalidRange)
	}

	trip := &db.Trip{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		StartDate:   start,
		EndDate:     end,
		TotalBudget: totalBudget,
		Destination: destination,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.CreateTrip(trip); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *TripService) GetTrip(id uuid.UUID) (*db.Trip, error) {
	return s.store.GetTrip(id)
}

// ListUserTrips returns the user's trips, most recent start date first.
func (s *TripService) ListUserTrips(userID uuid.UUID) ([]db.Trip, error) {
	return s.store.GetUserTrips(userID)
}

// DeleteTrip removes a trip together with its accommodations and points.
// Only the owner may delete.
func (s *TripService) DeleteTrip(userID uuid.UUID, tripID uuid.UUID) error {
	trip, err := s.store.GetTrip(tripID)
	if err != nil {
		return err
	}
	if trip.UserID != userID {
		return fmt.Errorf("user %s does not own trip %s: %w", userID, tripID, ErrUnauthorized)
	}

	if err := s.store.DeleteTripAccommodations(tripID); err != nil {
		return fmt.Errorf("delete accommodations of trip %s: %w", tripID, err)
	}
	if err := s.store.DeleteTripPoints(tripID); err != nil {
		return fmt.Errorf("delete points of trip %s: %w", tripID, err)
	}
	return s.store.DeleteTrip(tripID)
}
