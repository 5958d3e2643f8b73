// Package config provides the configuration layer: the resort
// inventory, database and HTTP settings, and the model artifact
// location, loadable from YAML files or SQLite databases.
package config

import "fmt"

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetResorts() ([]ResortData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	HTTP     *HTTPData     `json:"http,omitempty" yaml:"http,omitempty"`
	Database *DatabaseData `json:"database,omitempty" yaml:"database,omitempty"`
	Model    ModelData     `json:"model" yaml:"model"`
	Resorts  []ResortData  `json:"resorts" yaml:"resorts"`
}

// HTTPData holds the REST server listen settings
type HTTPData struct {
	ListenAddr string `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty"`
	Port       int    `json:"port,omitempty" yaml:"port,omitempty"`
}

// DatabaseData holds the observation database connection settings
type DatabaseData struct {
	ConnectionString string `json:"connection_string" yaml:"connection_string"`
}

// ModelData points at the trained model artifact
type ModelData struct {
	Path string `json:"path" yaml:"path"`
}

// ResortData describes one ski resort and its elevation points
type ResortData struct {
	ID         string               `json:"id" yaml:"id"`
	Name       string               `json:"name" yaml:"name"`
	Timezone   string               `json:"timezone,omitempty" yaml:"timezone,omitempty"`
	Latitude   float64              `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude  float64              `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	Elevations []ElevationPointData `json:"elevations" yaml:"elevations"`
}

// ElevationPointData describes one measurement point of a resort: its
// level (base/mid/top), the weather station feeding it, and its
// elevation in meters.
type ElevationPointData struct {
	Level       string  `json:"level" yaml:"level"`
	StationName string  `json:"station_name" yaml:"station_name"`
	ElevationM  float64 `json:"elevation_m" yaml:"elevation_m"`
}

// Validate checks the parts of the configuration every deployment
// needs: a model artifact and at least one resort with valid elevation
// levels.
func (c *ConfigData) Validate() error {
	if c.Model.Path == "" {
		return fmt.Errorf("model artifact path is required")
	}
	if len(c.Resorts) == 0 {
		return fmt.Errorf("at least one resort must be configured")
	}
	for _, resort := range c.Resorts {
		if resort.ID == "" {
			return fmt.Errorf("resort %q has no id", resort.Name)
		}
		if len(resort.Elevations) == 0 {
			return fmt.Errorf("resort %q has no elevation points", resort.ID)
		}
		for _, ep := range resort.Elevations {
			switch ep.Level {
			case "base", "mid", "top":
			default:
				return fmt.Errorf("resort %q has invalid elevation level %q", resort.ID, ep.Level)
			}
			if ep.StationName == "" {
				return fmt.Errorf("resort %q elevation %q has no station name", resort.ID, ep.Level)
			}
		}
	}
	return nil
}
