// Package model defines the campaign dataset types shared across the toolkit.
package model

// CampaignRecord is one row of the advertising dataset. Loaders build records
// once; every downstream operation treats them as read-only values.
type CampaignRecord struct {
	ID               string  `csv:"id" json:"id"`
	CampaignCategory string  `csv:"campaign_category" json:"campaign_category"`
	Cost             float64 `csv:"cost" json:"cost"`
	Platform         string  `csv:"platform" json:"platform"`
	Impressions      int64   `csv:"impressions" json:"impressions"`
	Clicks           int64   `csv:"clicks" json:"clicks"`
	DurationDays     int     `csv:"days_rn" json:"days_rn"`
	Signups          int64   `csv:"signups" json:"signups"`
	AdType           string  `csv:"ad_type" json:"ad_type"`
	TargetAudience   string  `csv:"target_audience" json:"target_audience"`
	Location         string  `csv:"location" json:"location"`
}
