package config

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
)

const testYAML = `
http:
  listen_addr: 127.0.0.1
  port: 9090
database:
  connection_string: host=localhost dbname=weather
model:
  path: /etc/snowscore/model.json
resorts:
  - id: alpendorf
    name: Alpendorf
    timezone: Europe/Vienna
    latitude: 47.32
    longitude: 13.2
    elevations:
      - level: base
        station_name: alpendorf-base
        elevation_m: 850
      - level: top
        station_name: alpendorf-top
        elevation_m: 1980
`

func writeTestYAML(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestYAMLProviderLoadConfig(t *testing.T) {
	provider := NewYAMLProvider(writeTestYAML(t, testYAML))
	defer provider.Close()

	cfg, err := provider.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.HTTP == nil || cfg.HTTP.Port != 9090 {
		t.Errorf("HTTP config not loaded: %+v", cfg.HTTP)
	}
	if cfg.Model.Path != "/etc/snowscore/model.json" {
		t.Errorf("Model.Path = %q", cfg.Model.Path)
	}
	if len(cfg.Resorts) != 1 {
		t.Fatalf("got %d resorts, want 1", len(cfg.Resorts))
	}

	resort := cfg.Resorts[0]
	if resort.ID != "alpendorf" || resort.Timezone != "Europe/Vienna" {
		t.Errorf("resort = %+v", resort)
	}
	if len(resort.Elevations) != 2 {
		t.Fatalf("got %d elevation points, want 2", len(resort.Elevations))
	}
	if resort.Elevations[1].Level != "top" || resort.Elevations[1].ElevationM != 1980 {
		t.Errorf("top elevation = %+v", resort.Elevations[1])
	}

	if !provider.IsReadOnly() {
		t.Error("YAML provider should be read-only")
	}
}

func TestYAMLProviderRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no model path", "resorts:\n  - id: x\n    elevations:\n      - level: top\n        station_name: s\n"},
		{"no resorts", "model:\n  path: /m.json\n"},
		{"bad elevation level", `
model:
  path: /m.json
resorts:
  - id: x
    elevations:
      - level: summit
        station_name: s
`},
		{"missing station name", `
model:
  path: /m.json
resorts:
  - id: x
    elevations:
      - level: top
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := NewYAMLProvider(writeTestYAML(t, tt.yaml))
			if _, err := provider.LoadConfig(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestSQLiteProviderLoadConfig(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "config.db")
	seedSQLiteConfig(t, dbPath)

	provider, err := NewSQLiteProvider(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteProvider: %v", err)
	}
	defer provider.Close()

	cfg, err := provider.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.HTTP == nil || cfg.HTTP.Port != 8081 {
		t.Errorf("HTTP config not loaded: %+v", cfg.HTTP)
	}
	if cfg.Database == nil || cfg.Database.ConnectionString == "" {
		t.Errorf("Database config not loaded: %+v", cfg.Database)
	}
	if len(cfg.Resorts) != 1 {
		t.Fatalf("got %d resorts, want 1", len(cfg.Resorts))
	}
	if len(cfg.Resorts[0].Elevations) != 3 {
		t.Fatalf("got %d elevation points, want 3", len(cfg.Resorts[0].Elevations))
	}
}

func seedSQLiteConfig(t *testing.T, dbPath string) {
	t.Helper()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	statements := []string{
		`CREATE TABLE server_config (id INTEGER PRIMARY KEY, listen_addr TEXT, port INTEGER, database_conn TEXT, model_path TEXT)`,
		`CREATE TABLE resorts (id TEXT PRIMARY KEY, name TEXT, timezone TEXT, latitude REAL, longitude REAL)`,
		`CREATE TABLE elevation_points (resort_id TEXT, level TEXT, station_name TEXT, elevation_m REAL)`,
		`INSERT INTO server_config VALUES (1, '', 8081, 'host=localhost dbname=weather', '/etc/snowscore/model.json')`,
		`INSERT INTO resorts VALUES ('gastein', 'Bad Gastein', 'Europe/Vienna', 47.11, 13.13)`,
		`INSERT INTO elevation_points VALUES ('gastein', 'base', 'gastein-base', 860)`,
		`INSERT INTO elevation_points VALUES ('gastein', 'mid', 'gastein-mid', 1600)`,
		`INSERT INTO elevation_points VALUES ('gastein', 'top', 'gastein-top', 2680)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
}
