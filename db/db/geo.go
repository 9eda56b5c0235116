package db

import (
	"encoding/json"
	"fmt"
	"math"
)

const geoJSONPointType = "Point"

// GeoPoint is a WGS84 coordinate pair. Lon is the x axis and Lat the y axis;
// callers must not transpose them. Range validation (±180/±90) is a caller
// responsibility, matching the storage layer which accepts any float pair.
type GeoPoint struct {
	Lon float64
	Lat float64
}

type geoJSONPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// MarshalJSON renders the point as a GeoJSON Point object with an ordered
// [longitude, latitude] coordinate pair.
func (p GeoPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(geoJSONPoint{
		Type:        geoJSONPointType,
		Coordinates: []float64{p.Lon, p.Lat},
	})
}

func (p *GeoPoint) UnmarshalJSON(data []byte) error {
	var raw geoJSONPoint
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type != geoJSONPointType {
		return fmt.Errorf("unexpected geometry type %q", raw.Type)
	}
	if len(raw.Coordinates) != 2 {
		return fmt.Errorf("expected 2 coordinates, got %d", len(raw.Coordinates))
	}
	p.Lon = raw.Coordinates[0]
	p.Lat = raw.Coordinates[1]
	return nil
}

const earthRadiusMeters = 6371000.0

// DistanceMeters returns the great-circle (haversine) distance to other.
func (p GeoPoint) DistanceMeters(other GeoPoint) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - p.Lat) * math.Pi / 180
	dLon := (other.Lon - p.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}
