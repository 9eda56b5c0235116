package pg

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TripModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null"`
	Name        string          `gorm:"size:255;not null"`
	StartDate   time.Time       `gorm:"type:date;not null"`
	EndDate     time.Time       `gorm:"type:date;not null"`
	TotalBudget decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Destination string          `gorm:"size:255;not null"`
	// meta data
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for TripModel.
func (TripModel) TableName() string {
	return "trips"
}

// TripPointModel carries every trip point column except location, which is a
// PostGIS geometry written and read through raw SQL (ST_MakePoint / ST_X /
// ST_Y) rather than a GORM field.
type TripPointModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	TripID          uuid.UUID `gorm:"type:uuid;not null"`
	Name            string    `gorm:"size:255;not null"`
	Date            time.Time `gorm:"type:date;not null"`
	VisitOrder      int       `gorm:"not null;default:0"`
	PointType       string    `gorm:"size:32;not null"`
	PlannedDuration int       `gorm:"not null;default:0"`
	PlannedTime     string    `gorm:"size:8;not null;default:''"`
	Notes           string    `gorm:"not null;default:''"`
	LocationName    string    `gorm:"size:255;not null;default:''"`
	// meta data
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for TripPointModel.
func (TripPointModel) TableName() string {
	return "trip_points"
}

type POIModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	POIType   string    `gorm:"size:32;not null"`
	Category  string    `gorm:"size:255;not null;default:''"`
	Notes     string    `gorm:"not null;default:''"`
	State     string    `gorm:"size:16;not null;default:'active'"`
	DeletedAt *time.Time
	// meta data
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for POIModel.
func (POIModel) TableName() string {
	return "poi"
}

type TripAccommodationModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TripID       uuid.UUID `gorm:"type:uuid;not null"`
	POIID        uuid.UUID `gorm:"type:uuid;not null"`
	CheckInDate  time.Time `gorm:"type:date;not null"`
	CheckOutDate time.Time `gorm:"type:date;not null"`
	Notes        string    `gorm:"not null;default:''"`
	// meta data
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for TripAccommodationModel.
func (TripAccommodationModel) TableName() string {
	return "trip_accommodation"
}
