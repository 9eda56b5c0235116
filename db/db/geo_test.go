package db_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbt "github.com/Psy1ALise/travel-planner-public/db/db"
)

func TestGeoPointMarshalJSON(t *testing.T) {
	point := dbt.GeoPoint{Lon: 33.9249, Lat: 35.1264}

	data, err := json.Marshal(point)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Point","coordinates":[33.9249,35.1264]}`, string(data))
}

func TestGeoPointUnmarshalJSON(t *testing.T) {
	var point dbt.GeoPoint
	err := json.Unmarshal([]byte(`{"type":"Point","coordinates":[33.9249,35.1264]}`), &point)
	require.NoError(t, err)
	assert.Equal(t, 33.9249, point.Lon)
	assert.Equal(t, 35.1264, point.Lat)

	// Coordinate order is lon first, lat second. A round trip must be exact.
	data, err := json.Marshal(point)
	require.NoError(t, err)

	var again dbt.GeoPoint
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, point, again)
}

func TestGeoPointUnmarshalRejectsBadShape(t *testing.T) {
	var point dbt.GeoPoint

	err := json.Unmarshal([]byte(`{"type":"Polygon","coordinates":[1,2]}`), &point)
	assert.Error(t, err, "non-Point type should be rejected")

	err = json.Unmarshal([]byte(`{"type":"Point","coordinates":[1,2,3]}`), &point)
	assert.Error(t, err, "coordinate arity other than 2 should be rejected")
}

func TestGeoPointNoRangeValidation(t *testing.T) {
	// Out-of-range coordinates pass through untouched.
	var point dbt.GeoPoint
	err := json.Unmarshal([]byte(`{"type":"Point","coordinates":[720.0,-300.0]}`), &point)
	require.NoError(t, err)
	assert.Equal(t, 720.0, point.Lon)
	assert.Equal(t, -300.0, point.Lat)
}

func TestDistanceMeters(t *testing.T) {
	nicosia := dbt.GeoPoint{Lon: 33.3823, Lat: 35.1856}
	larnaca := dbt.GeoPoint{Lon: 33.6201, Lat: 34.9229}

	d := nicosia.DistanceMeters(larnaca)
	// Roughly 36 km between the two city centers.
	assert.InDelta(t, 36000, d, 2000)

	assert.Zero(t, nicosia.DistanceMeters(nicosia))
}
