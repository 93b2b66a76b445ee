package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point is a WGS84 coordinate.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Geofence is a circular boundary around a fixed reference point. Locations
// outside it are treated as remote work.
type Geofence struct {
	Reference    Point
	RadiusMeters float64
}

func NewGeofence(lat, lon, radiusMeters float64) Geofence {
	return Geofence{
		Reference:    Point{Latitude: lat, Longitude: lon},
		RadiusMeters: radiusMeters,
	}
}

// Contains reports whether p falls within the geofence radius.
func (g Geofence) Contains(p Point) bool {
	return Distance(p, g.Reference) <= g.RadiusMeters
}

// Distance returns the haversine distance between two points in meters.
func Distance(a, b Point) float64 {
	const earthRadius = 6371000 // meters

	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	lat1Rad := a.Latitude * (math.Pi / 180.0)
	lat2Rad := b.Latitude * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadius * c
}

// Format renders a point as "latitude,longitude" with 6 decimal places.
func Format(p Point) string {
	return fmt.Sprintf("%.6f,%.6f", p.Latitude, p.Longitude)
}

// Parse parses a "latitude,longitude" string.
func Parse(s string) (Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("invalid location string: %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid longitude: %w", err)
	}
	return Point{Latitude: lat, Longitude: lon}, nil
}
