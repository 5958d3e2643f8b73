package config

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements ConfigProvider for SQLite database
// configuration. The database is produced by the fleet provisioning
// tooling; this provider only reads it.
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	row := s.db.QueryRow(`SELECT listen_addr, port, database_conn, model_path FROM server_config WHERE id = 1`)
	var listenAddr, databaseConn, modelPath string
	var port int
	if err := row.Scan(&listenAddr, &port, &databaseConn, &modelPath); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	if listenAddr != "" || port != 0 {
		config.HTTP = &HTTPData{ListenAddr: listenAddr, Port: port}
	}
	if databaseConn != "" {
		config.Database = &DatabaseData{ConnectionString: databaseConn}
	}
	config.Model = ModelData{Path: modelPath}

	resorts, err := s.GetResorts()
	if err != nil {
		return nil, fmt.Errorf("failed to load resorts: %w", err)
	}
	config.Resorts = resorts

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// GetResorts loads the resort inventory and its elevation points
func (s *SQLiteProvider) GetResorts() ([]ResortData, error) {
	rows, err := s.db.Query(`SELECT id, name, timezone, latitude, longitude FROM resorts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query resorts: %w", err)
	}
	defer rows.Close()

	var resorts []ResortData
	for rows.Next() {
		var r ResortData
		if err := rows.Scan(&r.ID, &r.Name, &r.Timezone, &r.Latitude, &r.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan resort: %w", err)
		}
		resorts = append(resorts, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resort rows iteration failed: %w", err)
	}

	for i := range resorts {
		elevations, err := s.getElevations(resorts[i].ID)
		if err != nil {
			return nil, err
		}
		resorts[i].Elevations = elevations
	}

	return resorts, nil
}

func (s *SQLiteProvider) getElevations(resortID string) ([]ElevationPointData, error) {
	rows, err := s.db.Query(
		`SELECT level, station_name, elevation_m FROM elevation_points WHERE resort_id = ? ORDER BY elevation_m`,
		resortID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query elevation points for %q: %w", resortID, err)
	}
	defer rows.Close()

	var elevations []ElevationPointData
	for rows.Next() {
		var ep ElevationPointData
		if err := rows.Scan(&ep.Level, &ep.StationName, &ep.ElevationM); err != nil {
			return nil, fmt.Errorf("failed to scan elevation point: %w", err)
		}
		elevations = append(elevations, ep)
	}
	return elevations, rows.Err()
}

// IsReadOnly returns false; the SQLite backend supports management
// tooling writes, though this provider itself only reads.
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	return s.db.Close()
}
