package geometry

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// kmPerDegree approximates the length of one degree of latitude.
const kmPerDegree = 111.0

// Haversine returns the great-circle distance between a and b in kilometers.
// It never exceeds the true road distance between the two points, which
// makes it an admissible and consistent A* heuristic.
func Haversine(a, b Point) float64 {
	if a == b {
		return 0
	}

	lat1 := radians(a.lat)
	lon1 := radians(a.lon)
	lat2 := radians(b.lat)
	lon2 := radians(b.lon)

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	h := math.Pow(math.Sin(dlat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Asin(math.Sqrt(h))

	return EarthRadiusKm * c
}

// GridDistance returns the sum of the north-south and east-west components
// between a and b in kilometers, with the east-west component scaled by the
// cosine of the average latitude. Always at least the great-circle distance;
// still admissible on quasi-grid road networks.
func GridDistance(a, b Point) float64 {
	if a == b {
		return 0
	}

	latDist, lonDist := gridComponents(a, b)
	return latDist + lonDist
}

// DiagonalDistance returns the larger of the two grid components between a
// and b in kilometers, modeling networks where diagonal movement is allowed.
func DiagonalDistance(a, b Point) float64 {
	if a == b {
		return 0
	}

	latDist, lonDist := gridComponents(a, b)
	return math.Max(latDist, lonDist)
}

// ApproxDistance returns a fast distance estimate between a and b in
// kilometers. The latitude scaling factor cos(avgLat) is replaced by the
// quadratic approximation 1 - (avgLat/90)^2 / 2, avoiding trigonometric
// calls entirely.
func ApproxDistance(a, b Point) float64 {
	if a == b {
		return 0
	}

	latDiff := b.lat - a.lat
	lonDiff := b.lon - a.lon

	avgLat := (a.lat + b.lat) / 2
	latFactor := 1.0 - (avgLat/90.0)*(avgLat/90.0)*0.5

	latKm := latDiff * kmPerDegree
	lonKm := lonDiff * kmPerDegree * latFactor

	return math.Sqrt(latKm*latKm + lonKm*lonKm)
}

func gridComponents(a, b Point) (latDist, lonDist float64) {
	latDiff := math.Abs(b.lat - a.lat)
	lonDiff := math.Abs(b.lon - a.lon)

	avgLat := (a.lat + b.lat) / 2
	latDist = latDiff * kmPerDegree
	lonDist = lonDiff * kmPerDegree * math.Cos(radians(avgLat))
	return latDist, lonDist
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
