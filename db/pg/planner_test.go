package pg

import (
	"log"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dbt "github.com/Psy1ALise/travel-planner-public/db/db"
)

// These tests run against a live PostgreSQL with PostGIS; see CreateDSN for
// the connection environment variables.

var testDB *gorm.DB
var plannerDB dbt.PlannerDBWrapper

func initTest() {
	var err error
	testDB, err = InitPostgresGORM(CreateDSN())
	if err != nil {
		log.Fatalf("Failed to initialize test database: %v", err)
	}

	plannerDB = NewGORMPlannerDBWrapper(testDB)
}

func cleanupTest() {
	log.Println("Cleaning up test database...")
	// Delete in FK order.
	testDB.Exec("DELETE FROM trip_accommodation;")
	testDB.Exec("DELETE FROM trip_points;")
	testDB.Exec("DELETE FROM trips;")
	testDB.Exec("DELETE FROM poi;")
	log.Println("Test database cleaned.")
	CloseGORM(testDB)
}

func testDay(value string) time.Time {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestTrip(userID uuid.UUID) *dbt.Trip {
	return &dbt.Trip{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        "PG Test Trip",
		StartDate:   testDay("2025-06-01"),
		EndDate:     testDay("2025-06-03"),
		TotalBudget: decimal.NewFromInt(500),
		Destination: "Cyprus",
	}
}

func TestCreateAndGetTrip(t *testing.T) {
	initTest()
	defer cleanupTest()

	trip := newTestTrip(uuid.New())
	require.NoError(t, plannerDB.CreateTrip(trip))

	retrieved, err := plannerDB.GetTrip(trip.ID)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, retrieved.ID)
	assert.Equal(t, trip.Name, retrieved.Name)
	assert.True(t, trip.TotalBudget.Equal(retrieved.TotalBudget))

	_, err = plannerDB.GetTrip(uuid.New())
	assert.ErrorIs(t, err, dbt.ErrNotFound)
}

func TestTripPointLocationRoundTrip(t *testing.T) {
	initTest()
	defer cleanupTest()

	trip := newTestTrip(uuid.New())
	require.NoError(t, plannerDB.CreateTrip(trip))

	located := &dbt.TripPoint{
		ID:         uuid.New(),
		TripID:     trip.ID,
		Name:       "Located",
		Location:   &dbt.GeoPoint{Lon: 33.3823, Lat: 35.1856},
		Date:       testDay("2025-06-01"),
		VisitOrder: 1,
		PointType:  dbt.PointTypeVisit,
	}
	bare := &dbt.TripPoint{
		ID:           uuid.New(),
		TripID:       trip.ID,
		Name:         "No Location",
		Date:         testDay("2025-06-02"),
		VisitOrder:   1,
		PointType:    dbt.PointTypeTransit,
		LocationName: "somewhere on the road",
	}
	require.NoError(t, plannerDB.CreateTripPoint(located))
	require.NoError(t, plannerDB.CreateTripPoint(bare))

	retrieved, err := plannerDB.GetTripPoint(located.ID)
	require.NoError(t, err)
	require.NotNil(t, retrieved.Location)
	assert.InDelta(t, 33.3823, retrieved.Location.Lon, 1e-6)
	assert.InDelta(t, 35.1856, retrieved.Location.Lat, 1e-6)

	retrieved, err = plannerDB.GetTripPoint(bare.ID)
	require.NoError(t, err)
	assert.Nil(t, retrieved.Location)
	assert.Equal(t, "somewhere on the road", retrieved.LocationName)
}

func TestTripPointOrdering(t *testing.T) {
	initTest()
	defer cleanupTest()

	trip := newTestTrip(uuid.New())
	require.NoError(t, plannerDB.CreateTrip(trip))

	for _, p := range []struct {
		date  string
		order int
	}{
		{"2025-06-03", 1},
		{"2025-06-01", 2},
		{"2025-06-01", 1},
	} {
		require.NoError(t, plannerDB.CreateTripPoint(&dbt.TripPoint{
			ID:         uuid.New(),
			TripID:     trip.ID,
			Name:       "Stop",
			Date:       testDay(p.date),
			VisitOrder: p.order,
			PointType:  dbt.PointTypeVisit,
		}))
	}

	points, err := plannerDB.GetTripPoints(trip.ID)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.True(t, !points[0].Date.After(points[1].Date))
	assert.True(t, !points[1].Date.After(points[2].Date))

	byDay, err := plannerDB.GetPointsByDay(testDay("2025-06-01"))
	require.NoError(t, err)
	require.Len(t, byDay, 2)
	assert.Equal(t, 1, byDay[0].VisitOrder)
	assert.Equal(t, 2, byDay[1].VisitOrder)
}

func TestNearbyPOIsPostGIS(t *testing.T) {
	initTest()
	defer cleanupTest()

	near := &dbt.POI{
		ID:       uuid.New(),
		Name:     "Near",
		Location: dbt.GeoPoint{Lon: 33.3823, Lat: 35.1856},
		POIType:  dbt.POITypeAttraction,
	}
	far := &dbt.POI{
		ID:       uuid.New(),
		Name:     "Far",
		Location: dbt.GeoPoint{Lon: 33.6201, Lat: 34.9229},
		POIType:  dbt.POITypeAttraction,
	}
	require.NoError(t, plannerDB.CreatePOI(near))
	require.NoError(t, plannerDB.CreatePOI(far))

	pois, err := plannerDB.GetNearbyPOIs(35.1856, 33.3823, 1000)
	require.NoError(t, err)
	require.Len(t, pois, 1)
	assert.Equal(t, near.ID, pois[0].ID)

	// Retired POIs disappear from the search.
	require.NoError(t, plannerDB.SoftDeletePOI(near.ID))
	pois, err = plannerDB.GetNearbyPOIs(35.1856, 33.3823, 1000)
	require.NoError(t, err)
	assert.Empty(t, pois)
}

func TestAccommodationForDatePG(t *testing.T) {
	initTest()
	defer cleanupTest()

	trip := newTestTrip(uuid.New())
	require.NoError(t, plannerDB.CreateTrip(trip))

	hotel := &dbt.POI{
		ID:       uuid.New(),
		Name:     "Hotel",
		Location: dbt.GeoPoint{Lon: 33.3190, Lat: 35.3410},
		POIType:  dbt.POITypeAccommodation,
	}
	require.NoError(t, plannerDB.CreatePOI(hotel))

	acc := &dbt.TripAccommodation{
		ID:           uuid.New(),
		TripID:       trip.ID,
		POIID:        hotel.ID,
		CheckInDate:  testDay("2025-06-01"),
		CheckOutDate: testDay("2025-06-03"),
	}
	require.NoError(t, plannerDB.CreateAccommodation(acc))

	resolved, err := plannerDB.GetAccommodationForDate(trip.ID, testDay("2025-06-02"))
	require.NoError(t, err)
	assert.Equal(t, acc.ID, resolved.ID)

	_, err = plannerDB.GetAccommodationForDate(trip.ID, testDay("2025-06-04"))
	assert.ErrorIs(t, err, dbt.ErrNotFound)
}
