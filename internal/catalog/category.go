package catalog

import "strings"

type Category int

const (
	Generic Category = iota
	Coastline
	LandOcean
	Administrative
	WaterFeature
)

// Classify derives the display category from keywords in the upstream file name.
// The first matching rule wins, so "coastline" beats "land" and "ocean".
func Classify(source string) Category {
	switch {
	case strings.Contains(source, "coastline"):
		return Coastline
	case strings.Contains(source, "land"), strings.Contains(source, "ocean"):
		return LandOcean
	case strings.Contains(source, "admin"):
		return Administrative
	case strings.Contains(source, "lake"), strings.Contains(source, "river"):
		return WaterFeature
	default:
		return Generic
	}
}

func (c Category) String() string {
	switch c {
	case Coastline:
		return "Coastline"
	case LandOcean:
		return "Land/Ocean"
	case Administrative:
		return "Administrative"
	case WaterFeature:
		return "Water feature"
	default:
		return ""
	}
}
