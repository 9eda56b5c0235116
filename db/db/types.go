package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PointType categorizes a planned stop within a day.
type PointType string

const (
	PointTypeVisit         PointType = "VISIT"
	PointTypeFood          PointType = "FOOD"
	PointTypeTransit       PointType = "TRANSIT"
	PointTypeAccommodation PointType = "ACCOMMODATION"
)

// POIType is the application-level classification of a point of interest.
type POIType string

const (
	POITypeAttraction    POIType = "ATTRACTION"
	POITypeAccommodation POIType = "ACCOMMODATION"
	POITypeRestaurant    POIType = "RESTAURANT"
	POITypeOther         POIType = "OTHER"
)

// POIState is the lifecycle tag of a POI. The transition active -> retired is
// one-way and idempotent; retired POIs stay referenceable by historical
// accommodations and trip points but are excluded from discovery queries.
type POIState string

const (
	POIStateActive  POIState = "active"
	POIStateRetired POIState = "retired"
)

type Trip struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	TotalBudget decimal.Decimal
	Destination string
	CreatedAt   time.Time
}

// TripPoint is a single planned stop, attached to a calendar date and ranked
// among same-day stops by VisitOrder. VisitOrder uniqueness within a trip+date
// is intentionally not enforced.
type TripPoint struct {
	ID              uuid.UUID
	TripID          uuid.UUID
	Location        *GeoPoint
	Name            string
	Date            time.Time
	VisitOrder      int
	PointType       PointType
	PlannedDuration int    // minutes
	PlannedTime     string // wall clock "15:04", empty when unset
	Notes           string
	LocationName    string // fallback when Location is nil
	CreatedAt       time.Time
}

type POI struct {
	ID        uuid.UUID
	Name      string
	Location  GeoPoint
	POIType   POIType
	Category  string
	Notes     string
	State     POIState
	CreatedAt time.Time
	DeletedAt *time.Time
}

// Active reports whether the POI has not been retired.
func (p *POI) Active() bool {
	return p.State == POIStateActive
}

type TripAccommodation struct {
	ID           uuid.UUID
	TripID       uuid.UUID
	POIID        uuid.UUID
	CheckInDate  time.Time
	CheckOutDate time.Time
	Notes        string
	CreatedAt    time.Time
}

// CoversDate reports whether date falls inside the stay interval, inclusive
// on both ends.
func (a *TripAccommodation) CoversDate(date time.Time) bool {
	d := TruncateToDay(date)
	return !d.Before(TruncateToDay(a.CheckInDate)) && !d.After(TruncateToDay(a.CheckOutDate))
}

// Nights is the whole-day difference between check-out and check-in. It is 0
// for same-day stays and negative when check-out precedes check-in; reversed
// intervals are not rejected at write time.
func (a *TripAccommodation) Nights() int {
	out := TruncateToDay(a.CheckOutDate)
	in := TruncateToDay(a.CheckInDate)
	return int(out.Sub(in).Hours() / 24)
}

// TruncateToDay normalizes a timestamp to UTC midnight. All calendar-date
// comparisons in the store go through this so that wall-clock components
// never influence day grouping.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same UTC calendar date.
func SameDay(a, b time.Time) bool {
	return TruncateToDay(a).Equal(TruncateToDay(b))
}
