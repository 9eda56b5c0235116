package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Psy1ALise/travel-planner-public/db/db"
	"github.com/Psy1ALise/travel-planner-public/itinerary"
)

type tripResponse struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	Name        string          `json:"name"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
	TotalBudget decimal.Decimal `json:"totalBudget"`
	Destination string          `json:"destination"`
}

func tripToResponse(trip *db.Trip) tripResponse {
	return tripResponse{
		ID:          trip.ID,
		UserID:      trip.UserID,
		Name:        trip.Name,
		StartDate:   trip.StartDate.Format(time.DateOnly),
		EndDate:     trip.EndDate.Format(time.DateOnly),
		TotalBudget: trip.TotalBudget,
		Destination: trip.Destination,
	}
}

// tripPointResponse carries no trip reference: the association is write-only
// and clients navigate points through their trip.
type tripPointResponse struct {
	ID              uuid.UUID    `json:"id"`
	Name            string       `json:"name"`
	Location        *db.GeoPoint `json:"location"`
	Date            string       `json:"date"`
	VisitOrder      int          `json:"visitOrder"`
	PointType       db.PointType `json:"pointType"`
	PlannedDuration int          `json:"plannedDuration"`
	PlannedTime     string       `json:"plannedTime,omitempty"`
	Notes           string       `json:"notes,omitempty"`
	LocationName    string       `json:"locationName,omitempty"`
}

func pointToResponse(point *db.TripPoint) tripPointResponse {
	return tripPointResponse{
		ID:              point.ID,
		Name:            point.Name,
		Location:        point.Location,
		Date:            point.Date.Format(time.DateOnly),
		VisitOrder:      point.VisitOrder,
		PointType:       point.PointType,
		PlannedDuration: point.PlannedDuration,
		PlannedTime:     point.PlannedTime,
		Notes:           point.Notes,
		LocationName:    point.LocationName,
	}
}

func pointsToResponse(points []db.TripPoint) []tripPointResponse {
	result := make([]tripPointResponse, 0, len(points))
	for i := range points {
		result = append(result, pointToResponse(&points[i]))
	}
	return result
}

type poiResponse struct {
	ID       uuid.UUID   `json:"id"`
	Name     string      `json:"name"`
	Location db.GeoPoint `json:"location"`
	POIType  db.POIType  `json:"poiType"`
	Category string      `json:"category,omitempty"`
	Notes    string      `json:"notes,omitempty"`
}

func poiToResponse(poi *db.POI) poiResponse {
	return poiResponse{
		ID:       poi.ID,
		Name:     poi.Name,
		Location: poi.Location,
		POIType:  poi.POIType,
		Category: poi.Category,
		Notes:    poi.Notes,
	}
}

func poisToResponse(pois []db.POI) []poiResponse {
	result := make([]poiResponse, 0, len(pois))
	for i := range pois {
		result = append(result, poiToResponse(&pois[i]))
	}
	return result
}

type accommodationResponse struct {
	ID           uuid.UUID    `json:"id"`
	TripID       uuid.UUID    `json:"tripId"`
	POIID        uuid.UUID    `json:"poiId"`
	CheckInDate  string       `json:"checkInDate"`
	CheckOutDate string       `json:"checkOutDate"`
	Nights       int          `json:"nights"`
	Notes        string       `json:"notes,omitempty"`
	POI          *poiResponse `json:"poi,omitempty"`
}

func accommodationToResponse(acc *db.TripAccommodation, poi *db.POI) accommodationResponse {
	resp := accommodationResponse{
		ID:           acc.ID,
		TripID:       acc.TripID,
		POIID:        acc.POIID,
		CheckInDate:  acc.CheckInDate.Format(time.DateOnly),
		CheckOutDate: acc.CheckOutDate.Format(time.DateOnly),
		Nights:       acc.Nights(),
		Notes:        acc.Notes,
	}
	if poi != nil {
		p := poiToResponse(poi)
		resp.POI = &p
	}
	return resp
}

// abortWithError maps service errors onto HTTP status codes.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, itinerary.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, itinerary.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// requestUserID reads the authenticated caller id. Authentication itself is
// upstream; by the time a request lands here the header is trusted.
func requestUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetHeader("X-User-ID")
	userID, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or malformed X-User-ID header"})
		return uuid.Nil, false
	}
	return userID, true
}

func parseDateParam(c *gin.Context, name string, value string) (time.Time, bool) {
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a YYYY-MM-DD date"})
		return time.Time{}, false
	}
	return date, true
}

func parseUUIDParam(c *gin.Context, name string, value string) (uuid.UUID, bool) {
	id, err := uuid.Parse(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a UUID"})
		return uuid.Nil, false
	}
	return id, true
}
