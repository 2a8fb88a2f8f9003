package mapview

import (
	"testing"
	"time"

	"agriscan/internal/models"

	"github.com/stretchr/testify/assert"
)

func testReport(id string, opts ...func(*models.Report)) models.Report {
	r := models.Report{
		ReportID:  id,
		Status:    models.ReportStatusSubmitted,
		GpsLat:    36.75,
		GpsLng:    3.06,
		City:      "Algiers",
		State:     "Alger",
		Timestamp: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func withDisease(name string) func(*models.Report) {
	return func(r *models.Report) {
		r.DiseaseDetection = &models.DiseaseDetection{DiseaseID: "d-1", Name: name, Confidence: 0.9}
	}
}

func withPest(name string) func(*models.Report) {
	return func(r *models.Report) {
		r.PestDetection = &models.PestDetection{PestID: "p-1", Name: name, Confidence: 0.8}
	}
}

func withDrought(level int) func(*models.Report) {
	return func(r *models.Report) {
		r.DroughtDetection = &models.DroughtDetection{Confidence: 0.7, DroughtLevel: level}
	}
}

func withPlant(name string) func(*models.Report) {
	return func(r *models.Report) {
		r.PlantDetection = &models.PlantDetection{PlantID: "pl-1", Name: name, Confidence: 0.95}
	}
}

func withTimestamp(ts time.Time) func(*models.Report) {
	return func(r *models.Report) { r.Timestamp = ts }
}

func withState(state string) func(*models.Report) {
	return func(r *models.Report) { r.State = state }
}

func TestClassify_DefaultPriority(t *testing.T) {
	cases := []struct {
		name   string
		report models.Report
		want   DetectionType
	}{
		{"disease only", testReport("r1", withDisease("Rust")), DetectionDisease},
		{"pest only", testReport("r2", withPest("Locust")), DetectionPest},
		{"drought only", testReport("r3", withDrought(3)), DetectionDrought},
		{"no detections", testReport("r4"), DetectionNormal},
		{"disease wins over pest", testReport("r5", withDisease("Rust"), withPest("Locust")), DetectionDisease},
		{"pest wins over drought", testReport("r6", withPest("Locust"), withDrought(2)), DetectionPest},
		{"disease wins over all", testReport("r7", withDisease("Rust"), withPest("Locust"), withDrought(2)), DetectionDisease},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(&tc.report, ""))
		})
	}
}

func TestClassify_OverrideDisplaysSelectedType(t *testing.T) {
	report := testReport("r1", withDisease("Rust"), withPest("Locust"))

	assert.Equal(t, DetectionDisease, Classify(&report, ""), "default priority picks disease")
	assert.Equal(t, DetectionPest, Classify(&report, DetectionPest), "pest override displays pest")
}

func TestClassify_OverrideIgnoredWhenDetectionAbsent(t *testing.T) {
	report := testReport("r1", withDisease("Rust"))

	assert.Equal(t, DetectionDisease, Classify(&report, DetectionDrought))
}

func TestSeverityOf(t *testing.T) {
	assert.Equal(t, SeverityHigh, SeverityOf(DetectionDisease))
	assert.Equal(t, SeverityMedium, SeverityOf(DetectionPest))
	assert.Equal(t, SeverityLow, SeverityOf(DetectionDrought))
	assert.Equal(t, SeverityLow, SeverityOf(DetectionNormal))
}

func TestMarkerRadius(t *testing.T) {
	assert.Equal(t, 12, MarkerRadius(SeverityHigh))
	assert.Equal(t, 10, MarkerRadius(SeverityMedium))
	assert.Equal(t, 8, MarkerRadius(SeverityLow))
}

func TestApply_NoFiltersKeepsEverythingWithCoordinates(t *testing.T) {
	reports := []models.Report{
		testReport("r1", withDisease("Rust")),
		testReport("r2"),
	}
	noGPS := testReport("r3")
	noGPS.GpsLat = 0
	noGPS.GpsLng = 0
	reports = append(reports, noGPS)

	filtered := Apply(reports, Filters{}, time.Now())

	assert.Len(t, filtered, 2)
	for _, r := range filtered {
		assert.NotEqual(t, "r3", r.ReportID)
	}
}

func TestApply_AllCriteriaAreANDed(t *testing.T) {
	reports := []models.Report{
		testReport("match", withState("Alger"), withDisease("Rust"), withPlant("Corn")),
		testReport("wrong-state", withState("Oran"), withDisease("Rust"), withPlant("Corn")),
		testReport("wrong-plant", withState("Alger"), withDisease("Rust"), withPlant("Tomato")),
		testReport("wrong-type", withState("Alger"), withPest("Locust"), withPlant("Corn")),
	}

	filtered := Apply(reports, Filters{
		Region:        "Alger",
		PlantType:     "Corn",
		DetectionType: "disease",
	}, time.Now())

	assert.Len(t, filtered, 1)
	assert.Equal(t, "match", filtered[0].ReportID)
}

func TestApply_SeverityDerivesFromDefaultClassification(t *testing.T) {
	reports := []models.Report{
		testReport("high", withDisease("Rust")),
		testReport("medium", withPest("Locust")),
		testReport("low", withDrought(2)),
	}

	filtered := Apply(reports, Filters{Severity: "medium"}, time.Now())

	assert.Len(t, filtered, 1)
	assert.Equal(t, "medium", filtered[0].ReportID)
}

func TestApply_DetectionTypeNormalMeansNoDetections(t *testing.T) {
	reports := []models.Report{
		testReport("healthy"),
		testReport("sick", withDisease("Rust")),
		testReport("dry", withDrought(1)),
	}

	filtered := Apply(reports, Filters{DetectionType: "normal"}, time.Now())

	assert.Len(t, filtered, 1)
	assert.Equal(t, "healthy", filtered[0].ReportID)
}

func TestApply_TodayMatchesSinceLocalMidnight(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.Local)
	earlyToday := time.Date(2026, 8, 31, 0, 1, 0, 0, time.Local)
	lateYesterday := time.Date(2026, 8, 30, 23, 59, 0, 0, time.Local)

	reports := []models.Report{
		testReport("today", withTimestamp(earlyToday)),
		testReport("yesterday", withTimestamp(lateYesterday)),
	}

	filtered := Apply(reports, Filters{DateRange: "today"}, now)

	assert.Len(t, filtered, 1)
	assert.Equal(t, "today", filtered[0].ReportID)
}

func TestApply_WeekAndMonthUseFixedWindows(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	reports := []models.Report{
		testReport("6d", withTimestamp(now.Add(-6*24*time.Hour))),
		testReport("8d", withTimestamp(now.Add(-8*24*time.Hour))),
		testReport("29d", withTimestamp(now.Add(-29*24*time.Hour))),
		testReport("31d", withTimestamp(now.Add(-31*24*time.Hour))),
	}

	week := Apply(reports, Filters{DateRange: "week"}, now)
	assert.Len(t, week, 1)
	assert.Equal(t, "6d", week[0].ReportID)

	month := Apply(reports, Filters{DateRange: "month"}, now)
	assert.Len(t, month, 3)
}

func TestApply_PresetViewModes(t *testing.T) {
	reports := []models.Report{
		testReport("has-drought", withDrought(3)),
		testReport("no-drought", withDisease("Rust")),
	}

	positive := Apply(reports, Filters{ActivePreset: "drought", ViewMode: "positive"}, time.Now())
	assert.Len(t, positive, 1)
	assert.Equal(t, "has-drought", positive[0].ReportID)

	negative := Apply(reports, Filters{ActivePreset: "drought", ViewMode: "negative"}, time.Now())
	assert.Len(t, negative, 1)
	assert.Equal(t, "no-drought", negative[0].ReportID)

	all := Apply(reports, Filters{ActivePreset: "drought", ViewMode: "all"}, time.Now())
	assert.Len(t, all, 2, "preset without a positive/negative view mode does not narrow")
}

func TestLegend_PresentTypesDimAbsentEntries(t *testing.T) {
	filtered := []models.Report{
		testReport("r1", withDisease("Rust")),
		testReport("r2"),
	}

	present := PresentTypes(filtered)
	legend := Legend(present)

	assert.Len(t, legend, 4)
	byType := make(map[DetectionType]LegendEntry)
	for _, e := range legend {
		byType[e.Type] = e
	}
	assert.True(t, byType[DetectionDisease].Active)
	assert.True(t, byType[DetectionNormal].Active)
	assert.False(t, byType[DetectionPest].Active)
	assert.False(t, byType[DetectionDrought].Active)
}

func TestLegend_EmptyPresentSetShowsFullSaturation(t *testing.T) {
	legend := Legend(PresentTypes(nil))

	for _, e := range legend {
		assert.True(t, e.Active, "empty present set leaves %s at full saturation", e.Type)
	}
}

func TestMarkers_OverrideFromDetectionTypeFilter(t *testing.T) {
	reports := []models.Report{
		testReport("r1", withDisease("Rust"), withPest("Locust"), withPlant("Corn")),
	}
	filters := Filters{DetectionType: "pest"}

	markers := Markers(Apply(reports, filters, time.Now()), filters)

	assert.Len(t, markers, 1)
	assert.Equal(t, DetectionPest, markers[0].Type)
	assert.Equal(t, "Locust", markers[0].Condition)
	assert.Equal(t, SeverityMedium, markers[0].Severity)
	assert.Equal(t, 10, markers[0].Radius)
	assert.Equal(t, "#f97316", markers[0].Color)
	assert.Equal(t, "Corn", markers[0].Plant)
}

func TestFilters_ActiveCount(t *testing.T) {
	assert.Equal(t, 0, Filters{}.ActiveCount())
	assert.Equal(t, 0, Filters{Region: "all", Severity: "all"}.ActiveCount())
	assert.Equal(t, 3, Filters{Region: "Alger", DateRange: "week", ActivePreset: "pest"}.ActiveCount())
}

func TestRegionsAndPlantTypes_Distinct(t *testing.T) {
	reports := []models.Report{
		testReport("r1", withState("Alger"), withPlant("Corn")),
		testReport("r2", withState("Alger"), withPlant("Tomato")),
		testReport("r3", withState("Oran"), withPlant("Corn")),
	}

	assert.Equal(t, []string{"Alger", "Oran"}, Regions(reports))
	assert.Equal(t, []string{"Corn", "Tomato"}, PlantTypes(reports))
}
