package mapview

import (
	"fmt"
	"time"

	"agriscan/internal/models"
)

type DetectionType string

const (
	DetectionDisease DetectionType = "disease"
	DetectionPest    DetectionType = "pest"
	DetectionDrought DetectionType = "drought"
	DetectionNormal  DetectionType = "normal"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// FilterAll is the inactive value for every filter dimension.
const FilterAll = "all"

// Marker colors keyed by detection type, matching the dashboard legend.
var detectionColors = map[DetectionType]string{
	DetectionDisease: "#ef4444",
	DetectionPest:    "#f97316",
	DetectionDrought: "#a855f7",
	DetectionNormal:  "#10b981",
}

const defaultColor = "#6366f1"

var severityColors = map[Severity]string{
	SeverityHigh:   "#ef4444",
	SeverityMedium: "#f59e0b",
	SeverityLow:    "#10b981",
}

// LegendOrder is the fixed set of legend entries, always all four types.
var LegendOrder = []DetectionType{DetectionDisease, DetectionPest, DetectionDrought, DetectionNormal}

func DetectionColor(t DetectionType) string {
	if c, ok := detectionColors[t]; ok {
		return c
	}
	return defaultColor
}

func SeverityColor(s Severity) string {
	if c, ok := severityColors[s]; ok {
		return c
	}
	return defaultColor
}

// Classify resolves the detection type a report displays under. The fixed
// priority is disease > pest > drought > normal. A non-empty override
// (the selected detection-type filter or active preset) wins when the
// report actually carries that detection; otherwise the default priority
// applies. The override changes display only, never the stored report.
func Classify(r *models.Report, override DetectionType) DetectionType {
	switch override {
	case DetectionDisease:
		if r.DiseaseDetection != nil {
			return DetectionDisease
		}
	case DetectionPest:
		if r.PestDetection != nil {
			return DetectionPest
		}
	case DetectionDrought:
		if r.DroughtDetection != nil {
			return DetectionDrought
		}
	}
	switch {
	case r.DiseaseDetection != nil:
		return DetectionDisease
	case r.PestDetection != nil:
		return DetectionPest
	case r.DroughtDetection != nil:
		return DetectionDrought
	default:
		return DetectionNormal
	}
}

// SeverityOf maps a displayed detection type to marker severity.
func SeverityOf(t DetectionType) Severity {
	switch t {
	case DetectionDisease:
		return SeverityHigh
	case DetectionPest:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// MarkerRadius follows the fixed severity-to-radius mapping of the map.
func MarkerRadius(s Severity) int {
	switch s {
	case SeverityHigh:
		return 12
	case SeverityMedium:
		return 10
	default:
		return 8
	}
}

// ConditionLabel is the human-readable condition shown in a marker popup.
func ConditionLabel(r *models.Report, t DetectionType) string {
	switch t {
	case DetectionDisease:
		if r.DiseaseDetection != nil && r.DiseaseDetection.Name != "" {
			return r.DiseaseDetection.Name
		}
		return "Disease"
	case DetectionPest:
		if r.PestDetection != nil && r.PestDetection.Name != "" {
			return r.PestDetection.Name
		}
		return "Pest"
	case DetectionDrought:
		if r.DroughtDetection != nil {
			return fmt.Sprintf("Drought Level %d", r.DroughtDetection.DroughtLevel)
		}
		return "Drought"
	default:
		return "Healthy"
	}
}

// Filters are the map screen's selections. The zero value of each field or
// FilterAll leaves that dimension inactive; all active dimensions are ANDed.
type Filters struct {
	Region        string
	Severity      string
	PlantType     string
	DetectionType string
	DateRange     string // all, today, week, month
	ActivePreset  string // all, disease, pest, drought
	ViewMode      string // all, positive, negative
}

func (f Filters) active(v string) bool {
	return v != "" && v != FilterAll
}

// ActiveCount reports how many filter dimensions are narrowed.
func (f Filters) ActiveCount() int {
	n := 0
	for _, v := range []string{f.Region, f.Severity, f.PlantType, f.DetectionType, f.DateRange, f.ActivePreset, f.ViewMode} {
		if f.active(v) {
			n++
		}
	}
	return n
}

// Override is the detection type that display classification prefers:
// the detection-type filter when set, else the active preset.
func (f Filters) Override() DetectionType {
	if f.active(f.DetectionType) && f.DetectionType != string(DetectionNormal) {
		return DetectionType(f.DetectionType)
	}
	if f.active(f.ActivePreset) {
		return DetectionType(f.ActivePreset)
	}
	return ""
}

func (f Filters) matches(r *models.Report, now time.Time) bool {
	if r == nil || r.GpsLat == 0 || r.GpsLng == 0 {
		return false
	}

	// Severity derives from the default-priority classification.
	defaultType := Classify(r, "")
	severity := SeverityOf(defaultType)

	if f.active(f.Region) && r.State != f.Region {
		return false
	}
	if f.active(f.Severity) && string(severity) != f.Severity {
		return false
	}
	if f.active(f.PlantType) {
		if r.PlantDetection == nil || r.PlantDetection.Name != f.PlantType {
			return false
		}
	}

	if f.active(f.DetectionType) {
		switch DetectionType(f.DetectionType) {
		case DetectionDisease:
			if r.DiseaseDetection == nil {
				return false
			}
		case DetectionPest:
			if r.PestDetection == nil {
				return false
			}
		case DetectionDrought:
			if r.DroughtDetection == nil {
				return false
			}
		case DetectionNormal:
			if r.DiseaseDetection != nil || r.PestDetection != nil || r.DroughtDetection != nil {
				return false
			}
		}
	}

	if f.active(f.DateRange) && !r.Timestamp.IsZero() {
		var since time.Time
		switch f.DateRange {
		case "today":
			y, m, d := now.Date()
			since = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
		case "week":
			since = now.Add(-7 * 24 * time.Hour)
		case "month":
			since = now.Add(-30 * 24 * time.Hour)
		}
		if !since.IsZero() {
			if r.Timestamp.Before(since) || r.Timestamp.After(now) {
				return false
			}
		}
	}

	if f.active(f.ActivePreset) {
		hasCondition := false
		switch DetectionType(f.ActivePreset) {
		case DetectionDisease:
			hasCondition = r.DiseaseDetection != nil
		case DetectionPest:
			hasCondition = r.PestDetection != nil
		case DetectionDrought:
			hasCondition = r.DroughtDetection != nil
		}
		switch f.ViewMode {
		case "positive":
			if !hasCondition {
				return false
			}
		case "negative":
			if hasCondition {
				return false
			}
		}
	}

	return true
}

// Apply returns the subset of reports satisfying the AND of all active
// filters. Reports without GPS coordinates are always excluded.
func Apply(reports []models.Report, f Filters, now time.Time) []models.Report {
	filtered := make([]models.Report, 0, len(reports))
	for i := range reports {
		if f.matches(&reports[i], now) {
			filtered = append(filtered, reports[i])
		}
	}
	return filtered
}

// PresentTypes is the set of detection types found in the filtered list,
// classified at default priority, used to dim absent legend entries.
func PresentTypes(filtered []models.Report) map[DetectionType]bool {
	present := make(map[DetectionType]bool)
	for i := range filtered {
		present[Classify(&filtered[i], "")] = true
	}
	return present
}

type LegendEntry struct {
	Type   DetectionType `json:"type"`
	Color  string        `json:"color"`
	Active bool          `json:"active"`
}

// Legend lists all four detection types in fixed order. An entry is active
// when its type is present in the filtered list; an empty present-set means
// nothing narrows the legend and every entry stays at full saturation.
func Legend(present map[DetectionType]bool) []LegendEntry {
	entries := make([]LegendEntry, 0, len(LegendOrder))
	for _, t := range LegendOrder {
		entries = append(entries, LegendEntry{
			Type:   t,
			Color:  DetectionColor(t),
			Active: present[t] || len(present) == 0,
		})
	}
	return entries
}

// Marker is the render-ready shape of one filtered report.
type Marker struct {
	ReportID  string        `json:"reportId"`
	Lat       float64       `json:"lat"`
	Lng       float64       `json:"lng"`
	Type      DetectionType `json:"type"`
	Condition string        `json:"condition"`
	Severity  Severity      `json:"severity"`
	Color     string        `json:"color"`
	Radius    int           `json:"radius"`
	Plant     string        `json:"plant,omitempty"`
	City      string        `json:"city,omitempty"`
	State     string        `json:"state,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// Markers classifies each filtered report under the filters' override and
// resolves its popup fields and marker styling.
func Markers(filtered []models.Report, f Filters) []Marker {
	override := f.Override()
	markers := make([]Marker, 0, len(filtered))
	for i := range filtered {
		r := &filtered[i]
		t := Classify(r, override)
		severity := SeverityOf(t)
		m := Marker{
			ReportID:  r.ReportID,
			Lat:       r.GpsLat,
			Lng:       r.GpsLng,
			Type:      t,
			Condition: ConditionLabel(r, t),
			Severity:  severity,
			Color:     DetectionColor(t),
			Radius:    MarkerRadius(severity),
			City:      r.City,
			State:     r.State,
			Timestamp: r.Timestamp,
		}
		if r.PlantDetection != nil {
			m.Plant = r.PlantDetection.Name
		}
		markers = append(markers, m)
	}
	return markers
}

// Regions lists the distinct states present in the report list, the
// region filter's option set.
func Regions(reports []models.Report) []string {
	return distinct(reports, func(r *models.Report) string { return r.State })
}

// PlantTypes lists the distinct detected plant names in the report list.
func PlantTypes(reports []models.Report) []string {
	return distinct(reports, func(r *models.Report) string {
		if r.PlantDetection == nil {
			return ""
		}
		return r.PlantDetection.Name
	})
}

func distinct(reports []models.Report, key func(*models.Report) string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range reports {
		k := key(&reports[i])
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
