package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbt "github.com/Psy1ALise/travel-planner-public/db/db"
	"github.com/Psy1ALise/travel-planner-public/db/mem"
	"github.com/Psy1ALise/travel-planner-public/mq/goch"
)

func newTestRouter(t *testing.T) (*gin.Engine, dbt.PlannerDBWrapper) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := mem.NewInMemoryPlannerDBWrapper()
	queues := goch.NewGoChanItineraryMessageQueueWrapper()

	r := gin.New()
	setupRoutes(r, NewHandler(store, queues))
	return r, store
}

func testDay(value string) time.Time {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}
	return t
}

func seedTrip(t *testing.T, store dbt.PlannerDBWrapper, userID uuid.UUID) *dbt.Trip {
	t.Helper()
	trip := &dbt.Trip{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        "Trip",
		StartDate:   testDay("2025-06-01"),
		EndDate:     testDay("2025-06-03"),
		TotalBudget: decimal.Zero,
		Destination: "Cyprus",
	}
	require.NoError(t, store.CreateTrip(trip))
	return trip
}

func TestListPointsByDayOmitsTripReference(t *testing.T) {
	r, store := newTestRouter(t)

	userID := uuid.New()
	tripA := seedTrip(t, store, userID)
	tripB := seedTrip(t, store, userID)
	for _, point := range []dbt.TripPoint{
		{ID: uuid.New(), TripID: tripA.ID, Name: "Castle", Date: testDay("2025-06-02"), VisitOrder: 1, PointType: dbt.PointTypeVisit},
		{ID: uuid.New(), TripID: tripB.ID, Name: "Harbour", Date: testDay("2025-06-02"), VisitOrder: 1, PointType: dbt.PointTypeVisit},
	} {
		p := point
		require.NoError(t, store.CreateTripPoint(&p))
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/trip-points/by-day?date=2025-06-02", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var payload []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Len(t, payload, 2)

	// The owning trip never appears in a serialized point; grouping is
	// observable through the ordering alone.
	for _, point := range payload {
		assert.NotContains(t, point, "tripId")
		assert.NotContains(t, point, "trip")
		assert.Contains(t, point, "visitOrder")
	}
}
