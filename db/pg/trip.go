package pg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbt "github.com/Psy1ALise/travel-planner-public/db/db"
)

// GORMPlannerDBWrapper is a GORM-based PostgreSQL implementation of
// dbt.PlannerDBWrapper. Geometry columns go through raw PostGIS SQL; plain
// columns go through the GORM models.
type GORMPlannerDBWrapper struct {
	db *gorm.DB
}

// NewGORMPlannerDBWrapper creates and returns a new instance of GORMPlannerDBWrapper.
func NewGORMPlannerDBWrapper(db *gorm.DB) dbt.PlannerDBWrapper {
	return &GORMPlannerDBWrapper{
		db: db,
	}
}

// CreateTrip creates a new trip entry using GORM.
func (pgdb *GORMPlannerDBWrapper) CreateTrip(trip *dbt.Trip) error {
	tripModel := TripModel{
		ID:          trip.ID,
		UserID:      trip.UserID,
		Name:        trip.Name,
		StartDate:   dbt.TruncateToDay(trip.StartDate),
		EndDate:     dbt.TruncateToDay(trip.EndDate),
		TotalBudget: trip.TotalBudget,
		Destination: trip.Destination,
	}
	result := pgdb.db.Create(&tripModel)
	if result.Error != nil {
		if strings.Contains(result.Error.Error(), "duplicate key value violates unique constraint") {
			return fmt.Errorf("trip with ID %s already exists: %w", trip.ID, result.Error)
		}
		return fmt.Errorf("failed to create trip: %w", result.Error)
	}
	return nil
}

// GetTrip retrieves a trip by ID using GORM.
func (pgdb *GORMPlannerDBWrapper) GetTrip(id uuid.UUID) (*dbt.Trip, error) {
	var tripModel TripModel
	result := pgdb.db.First(&tripModel, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("trip %s: %w", id, dbt.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get trip %s: %w", id, result.Error)
	}
	trip := tripFromModel(&tripModel)
	return &trip, nil
}

// GetUserTrips retrieves all trips of a user ordered by start date descending.
func (pgdb *GORMPlannerDBWrapper) GetUserTrips(userID uuid.UUID) ([]dbt.Trip, error) {
	var tripModels []TripModel
	result := pgdb.db.Where("user_id = ?", userID).Order("start_date DESC").Find(&tripModels)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get trips for user %s: %w", userID, result.Error)
	}

	var trips []dbt.Trip
	for i := range tripModels {
		trips = append(trips, tripFromModel(&tripModels[i]))
	}
	return trips, nil
}

// DeleteTrip deletes the trip row. Child points must be cleared first via
// DeleteTripPoints; the two deletions are separate committed steps.
func (pgdb *GORMPlannerDBWrapper) DeleteTrip(id uuid.UUID) error {
	result := pgdb.db.Delete(&TripModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete trip %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("trip %s: %w", id, dbt.ErrNotFound)
	}
	return nil
}

func tripFromModel(m *TripModel) dbt.Trip {
	return dbt.Trip{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		StartDate:   dbt.TruncateToDay(m.StartDate),
		EndDate:     dbt.TruncateToDay(m.EndDate),
		TotalBudget: m.TotalBudget,
		Destination: m.Destination,
		CreatedAt:   m.CreatedAt,
	}
}
