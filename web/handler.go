package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Psy1ALise/travel-planner-public/db/db"
	"github.com/Psy1ALise/travel-planner-public/itinerary"
	"github.com/Psy1ALise/travel-planner-public/mq/mq"
)

// Handler bundles the services behind the REST surface. Handlers stay thin;
// every rule lives in the itinerary package.
type Handler struct {
	trips          *itinerary.TripService
	points         *itinerary.PointService
	pois           *itinerary.POIService
	accommodations *itinerary.AccommodationService
	days           *itinerary.DayService
	queues         mq.ItineraryMessageQueueWrapper
}

func NewHandler(store db.PlannerDBWrapper, queues mq.ItineraryMessageQueueWrapper) *Handler {
	return &Handler{
		trips:          itinerary.NewTripService(store),
		points:         itinerary.NewPointService(store, queues),
		pois:           itinerary.NewPOIService(store),
		accommodations: itinerary.NewAccommodationService(store, queues),
		days:           itinerary.NewDayService(store),
		queues:         queues,
	}
}

type createTripRequest struct {
	Name        string          `json:"name" binding:"required"`
	Destination string          `json:"destination"`
	StartDate   string          `json:"startDate" binding:"required"`
	EndDate     string          `json:"endDate" binding:"required"`
	TotalBudget decimal.Decimal `json:"totalBudget"`
}

func (h *Handler) CreateTrip(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	var req createTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, ok := parseDateParam(c, "startDate", req.StartDate)
	if !ok {
		return
	}
	end, ok := parseDateParam(c, "endDate", req.EndDate)
	if !ok {
		return
	}

	trip, err := h.trips.CreateTrip(userID, req.Name, req.Destination, start, end, req.TotalBudget)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tripToResponse(trip))
}

func (h *Handler) GetTrip(c *gin.Context) {
	tripID, ok := parseUUIDParam(c, "id", c.Param("id"))
	if !ok {
		return
	}

	trip, err := h.trips.GetTrip(tripID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tripToResponse(trip))
}

func (h *Handler) ListUserTrips(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	trips, err := h.trips.ListUserTrips(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	result := make([]tripResponse, 0, len(trips))
	for i := range trips {
		result = append(result, tripToResponse(&trips[i]))
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) DeleteTrip(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	tripID, ok := parseUUIDParam(c, "id", c.Param("id"))
	if !ok {
		return
	}

	if err := h.trips.DeleteTrip(userID, tripID); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetTripDayCount(c *gin.Context) {
	tripID, ok := parseUUIDParam(c, "id", c.Param("id"))
	if !ok {
		return
	}

	count, err := h.days.DayCount(tripID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": count})
}

// ListPointsByDay is the cross-trip day view, ordered by trip then visit
// order. Points carry no trip reference on the wire; grouping is observable
// through the ordering alone. It is an operator endpoint, not a traveller one.
func (h *Handler) ListPointsByDay(c *gin.Context) {
	date, ok := parseDateParam(c, "date", c.Query("date"))
	if !ok {
		return
	}

	points, err := h.days.ListByDay(date)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pointsToResponse(points))
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
}
