package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var squareRing = [][]float64{
	{3.0, 36.0}, {3.1, 36.0}, {3.1, 36.1}, {3.0, 36.1},
}

func TestAdd_BuildsClosedPolygonWithAreaAndCentroid(t *testing.T) {
	board := NewBoard()

	view, err := board.Add("Parched field", CategorySevere, squareRing)

	assert.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, CategorySevere, view.Category)
	assert.Equal(t, "#f97316", view.Color)
	assert.Len(t, view.Coordinates, 5, "open rings are closed")
	assert.Equal(t, view.Coordinates[0], view.Coordinates[4])
	assert.Greater(t, view.AreaHectares, 0.0)
	assert.InDelta(t, 3.05, view.Centroid[0], 0.01)
	assert.InDelta(t, 36.05, view.Centroid[1], 0.01)
}

func TestAdd_Validation(t *testing.T) {
	board := NewBoard()

	_, err := board.Add("", CategorySevere, squareRing)
	assert.Error(t, err, "label is required")

	_, err = board.Add("x", Category("extreme"), squareRing)
	assert.Error(t, err, "unknown category is rejected")

	_, err = board.Add("x", CategoryLow, [][]float64{{3, 36}, {3.1, 36}})
	assert.Error(t, err, "two points do not make a polygon")

	_, err = board.Add("x", CategoryLow, [][]float64{{3, 36, 1}, {3.1, 36}, {3.1, 36.1}})
	assert.Error(t, err, "points must be lng/lat pairs")

	assert.Empty(t, board.List())
}

func TestRemoveAndClear(t *testing.T) {
	board := NewBoard()
	view, err := board.Add("a", CategoryLow, squareRing)
	assert.NoError(t, err)
	_, err = board.Add("b", CategoryModerate, squareRing)
	assert.NoError(t, err)

	assert.True(t, board.Remove(view.ID))
	assert.False(t, board.Remove(view.ID), "removing twice fails the second time")
	assert.Len(t, board.List(), 1)

	board.Clear()
	assert.Empty(t, board.List())
}

func TestGeoJSONRoundTrip(t *testing.T) {
	board := NewBoard()
	_, err := board.Add("Parched field", CategorySevere, squareRing)
	assert.NoError(t, err)
	_, err = board.Add("Dry pasture", CategoryModerate, squareRing)
	assert.NoError(t, err)

	data, err := board.ExportGeoJSON()
	assert.NoError(t, err)
	assert.Contains(t, string(data), "FeatureCollection")
	assert.Contains(t, string(data), "Parched field")

	imported := NewBoard()
	n, err := imported.ImportGeoJSON(data)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)

	views := imported.List()
	assert.Len(t, views, 2)
	assert.Equal(t, "Parched field", views[0].Label)
	assert.Equal(t, CategorySevere, views[0].Category)
	assert.Equal(t, CategoryModerate, views[1].Category)
}

func TestImportGeoJSON_RejectsGarbage(t *testing.T) {
	board := NewBoard()

	_, err := board.ImportGeoJSON([]byte("not geojson"))

	assert.Error(t, err)
	assert.Empty(t, board.List())
}
