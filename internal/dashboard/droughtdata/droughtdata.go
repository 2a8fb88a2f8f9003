// Package droughtdata carries the static land-use and drought-index sample
// datasets behind the drought monitoring screens.
package droughtdata

import (
	"encoding/json"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

type LandUse struct {
	FIPS        string             `json:"fips"`
	Lat         float64            `json:"lat"`
	Lon         float64            `json:"lon"`
	Elevation   int                `json:"elevation"`
	Slope       map[string]float64 `json:"slope"`
	Aspect      map[string]float64 `json:"aspect"`
	LandCover   map[string]float64 `json:"landCover"`
	SoilQuality map[string]int     `json:"soilQuality"`
}

// LandUseSample is the FIPS 1001 reference record shown on the land-use
// analytics screen.
func LandUseSample() LandUse {
	return LandUse{
		FIPS:      "1001",
		Lat:       32.536382,
		Lon:       -86.64449,
		Elevation: 63,
		Slope: map[string]float64{
			"slope1": 0.0419,
			"slope2": 0.2788,
			"slope3": 0.2984,
			"slope4": 0.2497,
			"slope5": 0.1142,
			"slope6": 0.017,
			"slope7": 0.0,
			"slope8": 0.0,
		},
		Aspect: map[string]float64{
			"north":   0.1033,
			"east":    0.1859,
			"south":   0.2003,
			"west":    0.1898,
			"unknown": 0.3207,
		},
		LandCover: map[string]float64{
			"water":               0.997399985790253,
			"nonVegetated":        27.9404983520508,
			"urban":               0.28889998793602,
			"grassland":           2.75027370452881,
			"forest":              10.7147026062012,
			"cultivatedRainfed":   56.2934112548828,
			"cultivatedIrrigated": 1.01481103897095,
			"cultivatedTotal":     57.3082237243652,
		},
		SoilQuality: map[string]int{
			"sq1": 1, "sq2": 1, "sq3": 1, "sq4": 1, "sq5": 1, "sq6": 1, "sq7": 2,
		},
	}
}

type Region struct {
	Intensity   float64     `json:"intensity"`
	Category    string      `json:"category"`
	Color       string      `json:"color"`
	Description string      `json:"description"`
	Ring        [][]float64 `json:"ring"`
}

var regions = []Region{
	{
		Intensity:   0.85,
		Category:    "severe",
		Color:       "#f97316",
		Description: "Severe drought conditions",
		Ring: [][]float64{
			{-112, 38}, {-110, 38}, {-108, 40},
			{-108, 42}, {-110, 44}, {-112, 44},
			{-114, 42}, {-114, 40}, {-112, 38},
		},
	},
	{
		Intensity:   0.6,
		Category:    "moderate",
		Color:       "#d97706",
		Description: "Moderate drought conditions",
		Ring: [][]float64{
			{-100, 35}, {-98, 35}, {-96, 37},
			{-96, 39}, {-98, 41}, {-100, 41},
			{-102, 39}, {-102, 37}, {-100, 35},
		},
	},
	{
		Intensity:   0.55,
		Category:    "moderate",
		Color:       "#d97706",
		Description: "Moderate drought conditions",
		Ring: [][]float64{
			{-92, 32}, {-90, 32}, {-88, 34},
			{-88, 36}, {-90, 38}, {-92, 38},
			{-94, 36}, {-94, 34}, {-92, 32},
		},
	},
	{
		Intensity:   0.3,
		Category:    "low",
		Color:       "#737373",
		Description: "Low drought conditions",
		Ring: [][]float64{
			{-80, 36}, {-78, 36}, {-76, 38},
			{-76, 40}, {-78, 42}, {-80, 42},
			{-82, 40}, {-82, 38}, {-80, 36},
		},
	},
}

func Regions() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

// RegionsGeoJSON renders the drought regions as a GeoJSON
// FeatureCollection for map overlays.
func RegionsGeoJSON() ([]byte, error) {
	fc := geojson.FeatureCollection{}
	for _, region := range regions {
		coords := make([]geom.Coord, 0, len(region.Ring))
		for _, pt := range region.Ring {
			coords = append(coords, geom.Coord{pt[0], pt[1]})
		}
		polygon, err := geom.NewPolygon(geom.XY).SetCoords([][]geom.Coord{coords})
		if err != nil {
			return nil, err
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: polygon,
			Properties: map[string]interface{}{
				"intensity":   region.Intensity,
				"category":    region.Category,
				"color":       region.Color,
				"description": region.Description,
			},
		})
	}
	return json.Marshal(&fc)
}

type Point struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Intensity float64 `json:"intensity"`
	Color     string  `json:"color"`
	Category  string  `json:"category"`
}

var points = []Point{
	{37.7749, -122.4194, 0.9, "#f97316", "severe"},
	{34.0522, -118.2437, 0.85, "#f97316", "severe"},
	{36.1699, -115.1398, 0.95, "#f97316", "severe"},
	{32.7157, -117.1611, 0.8, "#f97316", "severe"},
	{40.7128, -74.0060, 0.4, "#737373", "low"},
	{29.7604, -95.3698, 0.7, "#d97706", "moderate"},
	{32.7767, -96.7970, 0.65, "#d97706", "moderate"},
	{39.0997, -94.5786, 0.5, "#d97706", "moderate"},
	{41.8781, -87.6298, 0.3, "#737373", "low"},
	{33.4484, -112.0740, 0.9, "#f97316", "severe"},
	{39.7392, -104.9903, 0.8, "#f97316", "severe"},
	{47.6062, -122.3321, 0.5, "#d97706", "moderate"},
	{45.5152, -122.6784, 0.6, "#d97706", "moderate"},
	{44.9778, -93.2650, 0.4, "#737373", "low"},
	{30.2672, -97.7431, 0.7, "#d97706", "moderate"},
	{35.7796, -78.6382, 0.35, "#737373", "low"},
	{28.5383, -81.3792, 0.25, "#737373", "low"},
	{33.7490, -84.3880, 0.4, "#737373", "low"},
	{36.1627, -86.7816, 0.55, "#d97706", "moderate"},
	{38.9072, -77.0369, 0.3, "#737373", "low"},
}

func Points() []Point {
	out := make([]Point, len(points))
	copy(out, points)
	return out
}

// Summary counts drought points per category.
func Summary() map[string]int {
	counts := make(map[string]int)
	for _, p := range points {
		counts[p.Category]++
	}
	return counts
}
