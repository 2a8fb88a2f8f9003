// Package annotation holds the drought polygons an operator draws on the
// annotation screen. Annotations live for the process lifetime only and
// are never persisted server-side; export/import moves them as GeoJSON.
package annotation

import (
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/xy"
)

type Category string

const (
	CategorySevere   Category = "severe"
	CategoryModerate Category = "moderate"
	CategoryLow      Category = "low"
)

var categoryColors = map[Category]string{
	CategorySevere:   "#f97316",
	CategoryModerate: "#d97706",
	CategoryLow:      "#737373",
}

func (c Category) Valid() bool {
	_, ok := categoryColors[c]
	return ok
}

func (c Category) Color() string {
	return categoryColors[c]
}

type Annotation struct {
	ID        string
	Label     string
	Category  Category
	Polygon   *geom.Polygon
	CreatedAt time.Time
}

// View is the render-ready shape of an annotation.
type View struct {
	ID           string      `json:"id"`
	Label        string      `json:"label"`
	Category     Category    `json:"category"`
	Color        string      `json:"color"`
	Coordinates  [][]float64 `json:"coordinates"`
	AreaHectares float64     `json:"areaHectares"`
	Centroid     []float64   `json:"centroid"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// Board is the session-local collection of drawn annotations.
type Board struct {
	mu          sync.Mutex
	annotations []Annotation
}

func NewBoard() *Board {
	return &Board{}
}

func buildPolygon(ring [][]float64) (*geom.Polygon, error) {
	if len(ring) < 3 {
		return nil, fmt.Errorf("a polygon needs at least 3 points, got %d", len(ring))
	}
	coords := make([]geom.Coord, 0, len(ring)+1)
	for _, pt := range ring {
		if len(pt) != 2 {
			return nil, fmt.Errorf("each point must be [lng, lat], got %v", pt)
		}
		coords = append(coords, geom.Coord{pt[0], pt[1]})
	}
	// Close the ring if the caller did not.
	if !coords[0].Equal(geom.XY, coords[len(coords)-1]) {
		coords = append(coords, coords[0])
	}
	polygon, err := geom.NewPolygon(geom.XY).SetCoords([][]geom.Coord{coords})
	if err != nil {
		return nil, fmt.Errorf("invalid polygon ring: %w", err)
	}
	return polygon, nil
}

// Add validates the ring and stores a new annotation, returning its view.
func (b *Board) Add(label string, category Category, ring [][]float64) (*View, error) {
	if label == "" {
		return nil, fmt.Errorf("label is required")
	}
	if !category.Valid() {
		return nil, fmt.Errorf("invalid category: %s", category)
	}
	polygon, err := buildPolygon(ring)
	if err != nil {
		return nil, err
	}

	ann := Annotation{
		ID:        uuid.New().String(),
		Label:     label,
		Category:  category,
		Polygon:   polygon,
		CreatedAt: time.Now(),
	}

	b.mu.Lock()
	b.annotations = append(b.annotations, ann)
	b.mu.Unlock()

	view := ann.view()
	return &view, nil
}

func (b *Board) Remove(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.annotations {
		if b.annotations[i].ID == id {
			b.annotations = append(b.annotations[:i], b.annotations[i+1:]...)
			return true
		}
	}
	return false
}

func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.annotations = nil
}

func (b *Board) List() []View {
	b.mu.Lock()
	defer b.mu.Unlock()
	views := make([]View, 0, len(b.annotations))
	for i := range b.annotations {
		views = append(views, b.annotations[i].view())
	}
	return views
}

func (a *Annotation) view() View {
	ring := a.Polygon.LinearRing(0)
	coords := make([][]float64, 0, ring.NumCoords())
	for i := 0; i < ring.NumCoords(); i++ {
		c := ring.Coord(i)
		coords = append(coords, []float64{c.X(), c.Y()})
	}

	view := View{
		ID:          a.ID,
		Label:       a.Label,
		Category:    a.Category,
		Color:       a.Category.Color(),
		Coordinates: coords,
		CreatedAt:   a.CreatedAt,
	}
	if centroid, err := xy.Centroid(a.Polygon); err == nil {
		view.Centroid = []float64{centroid.X(), centroid.Y()}
		view.AreaHectares = areaHectares(a.Polygon, centroid.Y())
	}
	return view
}

// areaHectares converts the polygon's planar area in squared degrees to
// hectares with an equirectangular approximation at the centroid latitude.
func areaHectares(p *geom.Polygon, centroidLat float64) float64 {
	const metersPerDegree = 111320.0
	areaDeg := math.Abs(p.Area())
	areaM2 := areaDeg * metersPerDegree * metersPerDegree * math.Cos(centroidLat*math.Pi/180)
	return areaM2 / 10000
}

// ExportGeoJSON renders the board as a GeoJSON FeatureCollection.
func (b *Board) ExportGeoJSON() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fc := geojson.FeatureCollection{}
	for i := range b.annotations {
		a := &b.annotations[i]
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       a.ID,
			Geometry: a.Polygon,
			Properties: map[string]interface{}{
				"label":     a.Label,
				"category":  string(a.Category),
				"color":     a.Category.Color(),
				"createdAt": a.CreatedAt.Format(time.RFC3339),
			},
		})
	}
	return json.Marshal(&fc)
}

// ImportGeoJSON appends the polygon features of a FeatureCollection to the
// board, returning how many were imported. Non-polygon features and
// features with an unknown category are skipped.
func (b *Board) ImportGeoJSON(data []byte) (int, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return 0, fmt.Errorf("invalid GeoJSON: %w", err)
	}

	var imported []Annotation
	for _, feature := range fc.Features {
		polygon, ok := feature.Geometry.(*geom.Polygon)
		if !ok {
			continue
		}
		label, _ := feature.Properties["label"].(string)
		if label == "" {
			label = "Imported annotation"
		}
		category := CategoryModerate
		if raw, ok := feature.Properties["category"].(string); ok && Category(raw).Valid() {
			category = Category(raw)
		}
		id := feature.ID
		if id == "" {
			id = uuid.New().String()
		}
		imported = append(imported, Annotation{
			ID:        id,
			Label:     label,
			Category:  category,
			Polygon:   polygon,
			CreatedAt: time.Now(),
		})
	}

	b.mu.Lock()
	b.annotations = append(b.annotations, imported...)
	b.mu.Unlock()
	return len(imported), nil
}
