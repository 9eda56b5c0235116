package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PlannerDBWrapper is the persistence surface of the planning engine. Every
// method is an independent unit of work; no call spans a transaction across
// entities. Implementations: db/pg (GORM/PostgreSQL) and db/mem (in-memory).
type PlannerDBWrapper interface {
	// Trip
	CreateTrip(trip *Trip) error
	GetTrip(id uuid.UUID) (*Trip, error)
	GetUserTrips(userID uuid.UUID) ([]Trip, error)
	DeleteTrip(id uuid.UUID) error

	// TripPoint
	CreateTripPoint(point *TripPoint) error
	GetTripPoint(id uuid.UUID) (*TripPoint, error)
	UpdateTripPoint(point *TripPoint) error
	DeleteTripPoint(id uuid.UUID) error
	DeleteTripPoints(tripID uuid.UUID) error
	GetTripPoints(tripID uuid.UUID) ([]TripPoint, error)
	GetTripPointsByDay(tripID uuid.UUID, date time.Time) ([]TripPoint, error)
	GetTripPointsByType(tripID uuid.UUID, pointType PointType) ([]TripPoint, error)
	GetPointsByDay(date time.Time) ([]TripPoint, error)

	// POI
	CreatePOI(poi *POI) error
	GetActivePOI(id uuid.UUID) (*POI, error)
	GetActivePOIs() ([]POI, error)
	GetActivePOIsByType(poiType POIType) ([]POI, error)
	GetNearbyPOIs(lat float64, lng float64, radiusMeters float64) ([]POI, error)
	SoftDeletePOI(id uuid.UUID) error

	// Accommodation
	CreateAccommodation(acc *TripAccommodation) error
	GetAccommodationForDate(tripID uuid.UUID, date time.Time) (*TripAccommodation, error)
	GetTripAccommodations(tripID uuid.UUID) ([]TripAccommodation, error)
	DeleteTripAccommodations(tripID uuid.UUID) error

	// Data Loader
	DataLoaderGetPOIList(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*POI, error)
	DataLoaderGetTripList(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Trip, error)
}
