package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Psy1ALise/travel-planner-public/db/db"
)

type accommodationRequest struct {
	TripID       string `json:"tripId" binding:"required"`
	POIID        string `json:"poiId" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
	Notes        string `json:"notes"`
}

func (h *Handler) CreateAccommodation(c *gin.Context) {
	var req accommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tripID, ok := parseUUIDParam(c, "tripId", req.TripID)
	if !ok {
		return
	}
	poiID, ok := parseUUIDParam(c, "poiId", req.POIID)
	if !ok {
		return
	}
	checkIn, ok := parseDateParam(c, "checkInDate", req.CheckInDate)
	if !ok {
		return
	}
	checkOut, ok := parseDateParam(c, "checkOutDate", req.CheckOutDate)
	if !ok {
		return
	}

	acc, err := h.accommodations.Add(&db.TripAccommodation{
		TripID:       tripID,
		POIID:        poiID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Notes:        req.Notes,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, accommodationToResponse(acc, nil))
}

// ListAccommodations returns a trip's bookings with their POIs resolved in
// one batch through the per-request loader.
func (h *Handler) ListAccommodations(c *gin.Context) {
	tripID, ok := parseUUIDParam(c, "tripId", c.Query("tripId"))
	if !ok {
		return
	}

	loaderValue, exists := c.Get(string(db.DataLoaderKeyPlanner))
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "data loader not configured"})
		return
	}
	loader := loaderValue.(*db.PlannerDataLoader)

	resolved, err := h.accommodations.ListForTripResolved(c.Request.Context(), loader, tripID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	result := make([]accommodationResponse, 0, len(resolved))
	for i := range resolved {
		result = append(result, accommodationToResponse(&resolved[i].Accommodation, resolved[i].POI))
	}
	c.JSON(http.StatusOK, result)
}

// ResolveAccommodation answers "where do I sleep on this date".
func (h *Handler) ResolveAccommodation(c *gin.Context) {
	tripID, ok := parseUUIDParam(c, "tripId", c.Query("tripId"))
	if !ok {
		return
	}
	date, ok := parseDateParam(c, "date", c.Query("date"))
	if !ok {
		return
	}

	acc, err := h.accommodations.ResolveForDate(tripID, date)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, accommodationToResponse(acc, nil))
}
