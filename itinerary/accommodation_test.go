package itinerary_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbt "github.com/Psy1ALise/travel-planner-public/db/db"
	"github.com/Psy1ALise/travel-planner-public/db/mem"
	"github.com/Psy1ALise/travel-planner-public/itinerary"
	"github.com/Psy1ALise/travel-planner-public/mq/goch"
	"github.com/Psy1ALise/travel-planner-public/mq/mq"
)

type accommodationFixture struct {
	store   dbt.PlannerDBWrapper
	queues  mq.ItineraryMessageQueueWrapper
	service *itinerary.AccommodationService
	trip    *dbt.Trip
	hotel   *dbt.POI
}

func newAccommodationFixture(t *testing.T) *accommodationFixture {
	t.Helper()

	store := mem.NewInMemoryPlannerDBWrapper()
	queues := goch.NewGoChanItineraryMessageQueueWrapper()

	trip, err := itinerary.NewTripService(store).CreateTrip(uuid.New(), "Fixture", "Cyprus",
		day("2025-06-01"), day("2025-06-10"), decimal.Zero)
	require.NoError(t, err)

	hotel, err := itinerary.NewPOIService(store).Create(&dbt.POI{
		Name:     "Dome Hotel",
		Location: dbt.GeoPoint{Lon: 33.3190, Lat: 35.3410},
		POIType:  dbt.POITypeAccommodation,
	})
	require.NoError(t, err)

	return &accommodationFixture{
		store:   store,
		queues:  queues,
		service: itinerary.NewAccommodationService(store, queues),
		trip:    trip,
		hotel:   hotel,
	}
}

func TestAccommodationAddPublishesEvent(t *testing.T) {
	f := newAccommodationFixture(t)

	queue := f.queues.GetAccommodationMessageQueue(mq.ActionCreate)
	subID, ch, err := queue.Subscribe(f.trip.ID)
	require.NoError(t, err)
	defer queue.DeSubscribe(subID)

	acc, err := f.service.Add(&dbt.TripAccommodation{
		TripID:       f.trip.ID,
		POIID:        f.hotel.ID,
		CheckInDate:  day("2025-06-01"),
		CheckOutDate: day("2025-06-03"),
	})
	require.NoError(t, err)

	select {
	case msg := <-ch:
		assert.Equal(t, acc.ID, msg.ID)
		assert.Equal(t, f.hotel.ID, msg.POIID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for accommodation message")
	}
}

func TestAccommodationResolveForDateScenario(t *testing.T) {
	f := newAccommodationFixture(t)

	acc, err := f.service.Add(&dbt.TripAccommodation{
		TripID:       f.trip.ID,
		POIID:        f.hotel.ID,
		CheckInDate:  day("2025-06-01"),
		CheckOutDate: day("2025-06-03"),
	})
	require.NoError(t, err)

	resolved, err := f.service.ResolveForDate(f.trip.ID, day("2025-06-02"))
	require.NoError(t, err)
	assert.Equal(t, acc.ID, resolved.ID)

	_, err = f.service.ResolveForDate(f.trip.ID, day("2025-06-04"))
	assert.ErrorIs(t, err, dbt.ErrNotFound)
}

func TestAccommodationListForTripResolved(t *testing.T) {
	f := newAccommodationFixture(t)

	_, err := f.service.Add(&dbt.TripAccommodation{
		TripID:       f.trip.ID,
		POIID:        f.hotel.ID,
		CheckInDate:  day("2025-06-01"),
		CheckOutDate: day("2025-06-03"),
	})
	require.NoError(t, err)

	// Retire the hotel after booking; the booking must still resolve it.
	require.NoError(t, itinerary.NewPOIService(f.store).SoftDelete(f.hotel.ID))

	loader := dbt.NewPlannerDataLoader(f.store)
	resolved, err := f.service.ListForTripResolved(context.Background(), loader, f.trip.ID)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	require.NotNil(t, resolved[0].POI)
	assert.Equal(t, "Dome Hotel", resolved[0].POI.Name)
	assert.Equal(t, dbt.POIStateRetired, resolved[0].POI.State)
}
