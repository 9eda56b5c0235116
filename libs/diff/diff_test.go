package diff

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbt "github.com/Psy1ALise/travel-planner-public/db/db"
)

func TestChangedFields(t *testing.T) {
	old := dbt.TripPoint{
		ID:         uuid.New(),
		TripID:     uuid.New(),
		Name:       "Castle",
		Date:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		VisitOrder: 1,
		PointType:  dbt.PointTypeVisit,
	}
	updated := old
	updated.Name = "Harbour"
	updated.VisitOrder = 2

	fields, err := ChangedFields(old, updated)
	require.NoError(t, err)
	assert.Contains(t, fields, "Name")
	assert.Contains(t, fields, "VisitOrder")
	assert.NotContains(t, fields, "PointType")
}

func TestChangedFieldsUUIDAsScalar(t *testing.T) {
	old := dbt.TripAccommodation{
		ID:     uuid.New(),
		TripID: uuid.New(),
		POIID:  uuid.New(),
	}
	updated := old
	updated.POIID = uuid.New()

	fields, err := ChangedFields(old, updated)
	require.NoError(t, err)

	// One entry for the field, not sixteen for its bytes.
	assert.Equal(t, []string{"POIID"}, fields)
}

func TestChangedFieldsNoChange(t *testing.T) {
	point := dbt.TripPoint{ID: uuid.New(), Name: "Same"}

	fields, err := ChangedFields(point, point)
	require.NoError(t, err)
	assert.Empty(t, fields)
}
