package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Psy1ALise/travel-planner-public/db/db"
)

type tripPointRequest struct {
	TripID          string       `json:"tripId"`
	Name            string       `json:"name" binding:"required"`
	Location        *db.GeoPoint `json:"location"`
	Date            string       `json:"date" binding:"required"`
	VisitOrder      int          `json:"visitOrder"`
	PointType       db.PointType `json:"pointType"`
	PlannedDuration int          `json:"plannedDuration"`
	PlannedTime     string       `json:"plannedTime"`
	Notes           string       `json:"notes"`
	LocationName    string       `json:"locationName"`
}

func (h *Handler) CreateTripPoint(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	var req tripPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tripID, ok := parseUUIDParam(c, "tripId", req.TripID)
	if !ok {
		return
	}
	date, ok := parseDateParam(c, "date", req.Date)
	if !ok {
		return
	}

	point, err := h.points.Create(userID, &db.TripPoint{
		TripID:          tripID,
		Location:        req.Location,
		Name:            req.Name,
		Date:            date,
		VisitOrder:      req.VisitOrder,
		PointType:       req.PointType,
		PlannedDuration: req.PlannedDuration,
		PlannedTime:     req.PlannedTime,
		Notes:           req.Notes,
		LocationName:    req.LocationName,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pointToResponse(point))
}

func (h *Handler) GetTripPoint(c *gin.Context) {
	pointID, ok := parseUUIDParam(c, "id", c.Param("id"))
	if !ok {
		return
	}

	point, err := h.points.Get(pointID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, pointToResponse(point))
}

// UpdateTripPoint is a full replacement; absent fields reset to their zero
// value. The trip association in the body is ignored.
func (h *Handler) UpdateTripPoint(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	pointID, ok := parseUUIDParam(c, "id", c.Param("id"))
	if !ok {
		return
	}

	var req tripPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, ok := parseDateParam(c, "date", req.Date)
	if !ok {
		return
	}

	point, err := h.points.Update(userID, &db.TripPoint{
		ID:              pointID,
		Location:        req.Location,
		Name:            req.Name,
		Date:            date,
		VisitOrder:      req.VisitOrder,
		PointType:       req.PointType,
		PlannedDuration: req.PlannedDuration,
		PlannedTime:     req.PlannedTime,
		Notes:           req.Notes,
		LocationName:    req.LocationName,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, pointToResponse(point))
}

func (h *Handler) DeleteTripPoint(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	pointID, ok := parseUUIDParam(c, "id", c.Param("id"))
	if !ok {
		return
	}

	if err := h.points.Delete(userID, pointID); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTripPoints dispatches on query parameters, mirroring one endpoint that
// answers three questions: the whole trip, one day of it, or one point type.
func (h *Handler) ListTripPoints(c *gin.Context) {
	tripID, ok := parseUUIDParam(c, "tripId", c.Query("tripId"))
	if !ok {
		return
	}

	var points []db.TripPoint
	var err error
	switch {
	case c.Query("date") != "":
		date, ok := parseDateParam(c, "date", c.Query("date"))
		if !ok {
			return
		}
		points, err = h.points.ListByTripAndDay(tripID, date)
	case c.Query("type") != "":
		points, err = h.points.ListByType(tripID, db.PointType(c.Query("type")))
	default:
		points, err = h.points.ListByTrip(tripID)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, pointsToResponse(points))
}
