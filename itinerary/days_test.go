package itinerary_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbt "github.com/Psy1ALise/travel-planner-public/db/db"
	"github.com/Psy1ALise/travel-planner-public/db/mem"
	"github.com/Psy1ALise/travel-planner-public/itinerary"
)

func TestDayServiceListByDay(t *testing.T) {
	store := mem.NewInMemoryPlannerDBWrapper()
	trips := itinerary.NewTripService(store)
	points := itinerary.NewPointService(store, nil)
	days := itinerary.NewDayService(store)

	userA := uuid.New()
	userB := uuid.New()
	tripA, err := trips.CreateTrip(userA, "A", "Nicosia",
		day("2025-06-01"), day("2025-06-03"), decimal.Zero)
	require.NoError(t, err)
	tripB, err := trips.CreateTrip(userB, "B", "Kyrenia",
		day("2025-06-01"), day("2025-06-03"), decimal.Zero)
	require.NoError(t, err)

	// Visit orders inserted out of order on the shared day.
	for _, tc := range []struct {
		owner uuid.UUID
		trip  uuid.UUID
		order int
	}{
		{userA, tripA.ID, 2},
		{userB, tripB.ID, 1},
		{userA, tripA.ID, 1},
		{userB, tripB.ID, 2},
	} {
		_, err := points.Create(tc.owner, &dbt.TripPoint{
			TripID:     tc.trip,
			Name:       "Stop",
			Date:       day("2025-06-02"),
			VisitOrder: tc.order,
		})
		require.NoError(t, err)
	}

	result, err := days.ListByDay(day("2025-06-02"))
	require.NoError(t, err)
	require.Len(t, result, 4)

	assert.Equal(t, result[0].TripID, result[1].TripID, "trips stay contiguous")
	assert.Equal(t, result[2].TripID, result[3].TripID)
	assert.Equal(t, 1, result[0].VisitOrder)
	assert.Equal(t, 2, result[1].VisitOrder)
	assert.Equal(t, 1, result[2].VisitOrder)
	assert.Equal(t, 2, result[3].VisitOrder)
}

func TestDayServiceDayCount(t *testing.T) {
	store := mem.NewInMemoryPlannerDBWrapper()
	trips := itinerary.NewTripService(store)
	days := itinerary.NewDayService(store)
	userID := uuid.New()

	week, err := trips.CreateTrip(userID, "Week", "Cyprus",
		day("2025-06-01"), day("2025-06-07"), decimal.Zero)
	require.NoError(t, err)
	count, err := days.DayCount(week.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, count)

	// Same-day trips count zero whole days.
	single, err := trips.CreateTrip(userID, "Single", "Cyprus",
		day("2025-06-01"), day("2025-06-01"), decimal.Zero)
	require.NoError(t, err)
	count, err = days.DayCount(single.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = days.DayCount(uuid.New())
	assert.ErrorIs(t, err, dbt.ErrNotFound)
}
