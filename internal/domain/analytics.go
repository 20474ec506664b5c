package domain

import "time"

// Derived analytics records. None of these are persisted; they exist
// only in the response that carries them.

type SummaryEntry struct {
	CrimeType string `json:"crime_type"`
	Count     int    `json:"count"`
}

type RiskEntry struct {
	CrimeType string `json:"crime_type"`
	Level     string `json:"level"`
}

type RecentReportView struct {
	CrimeType   string `json:"crime_type"`
	Description string `json:"description"`
	TimeAgo     string `json:"time_ago"`
}

type HeatmapPoint struct {
	Area      string  `json:"area"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Count     int     `json:"count"`
}

type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

type RegionEntry struct {
	LocationID int64  `json:"location_id"`
	Area       string `json:"area"`
	Count      int    `json:"count"`
	Level      string `json:"level"`
}

type OrgAnalytics struct {
	Heatmap        []HeatmapPoint  `json:"heatmap"`
	CrimeCounts    []SummaryEntry  `json:"crime_counts"`
	Trend          []TrendPoint    `json:"trend"`
	LocationCounts []LocationCount `json:"location_counts"`
}

type AnalyticsBundle struct {
	RiskLevels    []RiskEntry        `json:"risk_levels"`
	ReportCounts  []SummaryEntry     `json:"report_counts"`
	RecentReports []RecentReportView `json:"recent_reports"`
}

// Raw grouped rows scanned out of the store before the engine shapes
// them into the view types above.

type HeatmapRow struct {
	Area      string `db:"area"`
	Latitude  string `db:"latitude"`
	Longitude string `db:"longitude"`
	Count     int    `db:"count"`
}

type CrimeTypeCount struct {
	CrimeType string `db:"crime_type"`
	Count     int    `db:"count"`
}

type TrendRow struct {
	Day   time.Time `db:"day"`
	Count int       `db:"count"`
}

const clipRunes = 80

// ClipDescription shortens a description for listing views: the first
// 80 characters plus an ellipsis marker, appended even when nothing
// was cut. Empty descriptions stay empty.
func ClipDescription(description string) string {
	if description == "" {
		return ""
	}
	runes := []rune(description)
	if len(runes) > clipRunes {
		runes = runes[:clipRunes]
	}
	return string(runes) + "..."
}

// OrgReportView is the clipped listing served to organization
// dashboards.
type OrgReportView struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Reporter    string `json:"reporter"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
}
