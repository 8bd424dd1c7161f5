// Package routing assembles road graphs from external route and road
// network services and runs the two search strategies side by side.
package routing

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/routeviz/go-pathfinding/pkg/geometry"
)

var (
	ErrEmptyAddress     = errors.New("routing: address cannot be empty")
	ErrInvalidLatitude  = errors.New("routing: latitude must be between -90 and 90 degrees")
	ErrInvalidLongitude = errors.New("routing: longitude must be between -180 and 180 degrees")
	ErrSameLocation     = errors.New("routing: start and destination are the same location")
)

// Location is a geocoded point: a human-readable address plus coordinates
// in decimal degrees.
type Location struct {
	Address   string
	Latitude  float64
	Longitude float64
}

// NewLocation validates and builds a Location. Construction-time invariant
// violations fail fast here and are never deferred to search time.
func NewLocation(address string, latitude, longitude float64) (Location, error) {
	if strings.TrimSpace(address) == "" {
		return Location{}, ErrEmptyAddress
	}
	if latitude < -90 || latitude > 90 {
		return Location{}, fmt.Errorf("%w: got %v", ErrInvalidLatitude, latitude)
	}
	if longitude < -180 || longitude > 180 {
		return Location{}, fmt.Errorf("%w: got %v", ErrInvalidLongitude, longitude)
	}
	return Location{Address: address, Latitude: latitude, Longitude: longitude}, nil
}

func (l Location) Point() geometry.Point {
	return geometry.NewPoint(l.Latitude, l.Longitude)
}

// sameLocationTolerance is about 11 meters, absorbing geocoding precision
// differences.
const sameLocationTolerance = 0.0001

// ValidateDistinct rejects start/destination pairs that geocode to the same
// point.
func ValidateDistinct(start, destination Location) error {
	latDiff := math.Abs(start.Latitude - destination.Latitude)
	lonDiff := math.Abs(start.Longitude - destination.Longitude)

	if latDiff < sameLocationTolerance && lonDiff < sameLocationTolerance {
		return fmt.Errorf("%w: %s", ErrSameLocation, start.Address)
	}
	return nil
}
