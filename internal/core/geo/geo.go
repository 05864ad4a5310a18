// Package geo ranks listings by great-circle distance from the viewer.
package geo

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// EarthRadiusKm is the mean Earth radius used by DistanceKm.
const EarthRadiusKm = 6371.0

var coordRe = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)`)

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ParseCoordinates extracts the first "lat, lng" pair embedded in free text.
// Text without such a pair is not an error; ok is false.
func ParseCoordinates(text string) (Point, bool) {
	m := coordRe.FindStringSubmatch(text)
	if m == nil {
		return Point{}, false
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Point{}, false
	}
	lng, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Point{}, false
	}
	return Point{Lat: lat, Lng: lng}, true
}

// DistanceKm is the haversine distance between two points.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	if a > 1 {
		a = 1
	}
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Between returns the distance from origin to the coordinates in location, or +Inf
// when either side has no coordinates.
func Between(origin *Point, location string) float64 {
	if origin == nil {
		return math.Inf(1)
	}
	p, ok := ParseCoordinates(location)
	if !ok {
		return math.Inf(1)
	}
	return DistanceKm(origin.Lat, origin.Lng, p.Lat, p.Lng)
}

// FormatDistance renders a distance for display; unbounded distances render as "N/A".
func FormatDistance(km float64) string {
	if math.IsInf(km, 0) || math.IsNaN(km) {
		return "N/A"
	}
	return fmt.Sprintf("%.1f km", km)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
