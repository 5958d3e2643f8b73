// Package database reads ingested hourly weather observations from
// TimescaleDB. Ingestion itself happens elsewhere; this client only
// hands the scoring engine an ordered series per station.
package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wdvr/snowscore/internal/log"
	"github.com/wdvr/snowscore/internal/types"
	"go.uber.org/zap"
)

// Client holds the connection to the observation database
type Client struct {
	connString string
	DB         *gorm.DB // Exported so it can be accessed from other packages
	logger     *zap.SugaredLogger
}

// NewClient creates a new database client
func NewClient(connString string, logger *zap.SugaredLogger) *Client {
	return &Client{
		connString: connString,
		logger:     logger,
	}
}

// Connect connects to the observation database
func (c *Client) Connect() error {
	var err error

	// Create a logger for gorm
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)

	gormConfig := &gorm.Config{
		Logger: dbLogger,
	}

	log.Info("connecting to TimescaleDB...")
	c.DB, err = gorm.Open(postgres.Open(c.connString), gormConfig)
	if err != nil {
		log.Warn("warning: unable to create a TimescaleDB connection:", err)
		return err
	}
	log.Info("TimescaleDB connection successful")

	return nil
}

// GetHourlySeries retrieves the hourly series for a station ending at
// the given hour, covering lookbackHours of history plus the scoring
// hour itself. The result is ordered oldest-first.
func (c *Client) GetHourlySeries(ctx context.Context, stationName string, endHour time.Time, lookbackHours int) (types.Series, error) {
	startHour := endHour.Add(-time.Duration(lookbackHours) * time.Hour)

	var observations []HourlyObservation
	err := c.DB.WithContext(ctx).
		Where("stationname = ? AND time >= ? AND time <= ?", stationName, startHour, endHour).
		Order("time ASC").
		Find(&observations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch observations for station %q: %w", stationName, err)
	}

	series := make(types.Series, len(observations))
	for i, obs := range observations {
		series[i] = types.HourlySample{
			Time:       obs.Time,
			TempC:      obs.TempC,
			SnowfallCM: obs.SnowfallCM,
			ElevationM: obs.ElevationM,
		}
	}
	return series, nil
}
