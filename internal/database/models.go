package database

import (
	"time"
)

// HourlyObservation is one ingested hour of weather for a station. The
// ingestion pipeline writes these; the scoring service only reads.
type HourlyObservation struct {
	StationName string    `gorm:"column:stationname;primaryKey"`
	Time        time.Time `gorm:"column:time;primaryKey"`
	TempC       float64   `gorm:"column:temp_c"`
	SnowfallCM  float64   `gorm:"column:snowfall_cm"`
	ElevationM  float64   `gorm:"column:elevation_m"`
}

// TableName specifies the table name for HourlyObservation
func (HourlyObservation) TableName() string {
	return "hourly_observations"
}
