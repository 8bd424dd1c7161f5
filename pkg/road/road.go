// Package road classifies OSM highway metadata for the graph builders.
package road

// Type is the coarse class of an OSM highway way.
type Type int

const (
	Unknown Type = iota
	Motorway
	Trunk
	Primary
	Secondary
	Tertiary
	Residential
	Service
	Unclassified
)

func (t Type) String() string {
	return []string{
		"Unknown", "Motorway", "Trunk", "Primary", "Secondary",
		"Tertiary", "Residential", "Service", "Unclassified",
	}[t]
}

// ClassifyHighway maps an OSM highway tag value to a Type. Link variants
// collapse onto their parent class.
func ClassifyHighway(value string) Type {
	switch value {
	case "motorway", "motorway_link":
		return Motorway
	case "trunk", "trunk_link":
		return Trunk
	case "primary", "primary_link":
		return Primary
	case "secondary", "secondary_link":
		return Secondary
	case "tertiary", "tertiary_link":
		return Tertiary
	case "residential", "living_street":
		return Residential
	case "service":
		return Service
	case "unclassified", "road":
		return Unclassified
	case "":
		return Unknown
	default:
		return Unclassified
	}
}

// Routable reports whether ways of this type take part in the road network
// graph.
func (t Type) Routable() bool {
	return t != Unknown
}

// IsOneway interprets an OSM oneway tag value.
func IsOneway(value string) bool {
	switch value {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}
