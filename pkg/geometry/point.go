package geometry

import "fmt"

// Point is a position on the Earth's surface in decimal degrees.
type Point struct {
	lat float64
	lon float64
}

func NewPoint(lat, lon float64) Point {
	return Point{lat: lat, lon: lon}
}

func (p Point) Lat() float64 { return p.lat }
func (p Point) Lon() float64 { return p.lon }

func (p Point) String() string {
	return fmt.Sprintf("(%v, %v)", p.lat, p.lon)
}
