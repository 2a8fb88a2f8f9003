package models

type OverviewStats struct {
	TotalReports          int            `json:"totalReports"`
	PendingReports        int            `json:"pendingReports"`
	ReportsThisWeek       int            `json:"reportsThisWeek"`
	TotalFarmers          int            `json:"totalFarmers"`
	SeverityDistribution  map[string]int `json:"severityDistribution"`
	PlantTypeDistribution map[string]int `json:"plantTypeDistribution"`
}

type StateStats struct {
	State        string `json:"state" db:"state"`
	ReportCount  int    `json:"reportCount" db:"report_count"`
	DiseaseCount int    `json:"diseaseCount" db:"disease_count"`
	PestCount    int    `json:"pestCount" db:"pest_count"`
	DroughtCount int    `json:"droughtCount" db:"drought_count"`
}

type GeographicalStats struct {
	States []StateStats `json:"states"`
}
