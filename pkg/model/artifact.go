// Package model loads the trained snow quality model artifact: the
// feature normalization statistics and the network weights. The
// artifact is produced by the training pipeline and treated here as an
// opaque, versioned input; a missing or malformed artifact is fatal at
// process start since scoring cannot proceed without it.
package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/wdvr/snowscore/internal/scoring"
)

// Artifact is the loaded, validated model ready for injection into the
// scoring engine.
type Artifact struct {
	Version string
	Stats   *scoring.NormalizationStats
	Weights *scoring.NetworkWeights
}

// artifactFile mirrors the JSON layout of the artifact, a contract with
// the training pipeline.
type artifactFile struct {
	Version       string `json:"version"`
	Normalization struct {
		Means   []float64 `json:"means"`
		StdDevs []float64 `json:"std_devs"`
	} `json:"normalization"`
	Network struct {
		HiddenWeights [][]float64 `json:"hidden_weights"`
		HiddenBias    []float64   `json:"hidden_bias"`
		OutputWeights []float64   `json:"output_weights"`
		OutputBias    float64     `json:"output_bias"`
	} `json:"network"`
}

// Load reads and validates a model artifact file.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}
	return Parse(data)
}

// Parse validates a model artifact from its raw JSON bytes.
func Parse(data []byte) (*Artifact, error) {
	var file artifactFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}

	stats, err := scoring.NewNormalizationStats(file.Normalization.Means, file.Normalization.StdDevs)
	if err != nil {
		return nil, fmt.Errorf("invalid normalization statistics: %w", err)
	}

	weights, err := scoring.NewNetworkWeights(
		file.Network.HiddenWeights,
		file.Network.HiddenBias,
		file.Network.OutputWeights,
		file.Network.OutputBias,
	)
	if err != nil {
		return nil, fmt.Errorf("invalid network weights: %w", err)
	}

	return &Artifact{
		Version: file.Version,
		Stats:   stats,
		Weights: weights,
	}, nil
}
