package scoring

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// NetworkWeights is the trained 24->24->1 network: one ReLU hidden
// layer and a sigmoid output scaled to the [1,6] score range. The
// matrices are built once at load time and shared read-only across
// concurrent scoring calls.
type NetworkWeights struct {
	hidden     *mat.Dense
	hiddenBias *mat.VecDense
	output     *mat.VecDense
	outputBias float64
}

// NewNetworkWeights validates dimensions and builds the gonum matrices.
// w1 is row-major: w1[i] holds the input weights of hidden unit i.
func NewNetworkWeights(w1 [][]float64, b1, w2 []float64, b2 float64) (*NetworkWeights, error) {
	if len(w1) != FeatureCount {
		return nil, fmt.Errorf("hidden weight matrix has %d rows, want %d", len(w1), FeatureCount)
	}
	flat := make([]float64, 0, FeatureCount*FeatureCount)
	for i, row := range w1 {
		if len(row) != FeatureCount {
			return nil, fmt.Errorf("hidden weight row %d has %d columns, want %d", i, len(row), FeatureCount)
		}
		for _, v := range row {
			if !isFinite(v) {
				return nil, fmt.Errorf("hidden weight row %d contains a non-finite value", i)
			}
		}
		flat = append(flat, row...)
	}
	if len(b1) != FeatureCount {
		return nil, fmt.Errorf("hidden bias has %d values, want %d", len(b1), FeatureCount)
	}
	if len(w2) != FeatureCount {
		return nil, fmt.Errorf("output weights have %d values, want %d", len(w2), FeatureCount)
	}
	for i := range b1 {
		if !isFinite(b1[i]) || !isFinite(w2[i]) {
			return nil, fmt.Errorf("bias or output weight %d is not finite", i)
		}
	}
	if !isFinite(b2) {
		return nil, fmt.Errorf("output bias is not finite")
	}

	return &NetworkWeights{
		hidden:     mat.NewDense(FeatureCount, FeatureCount, flat),
		hiddenBias: mat.NewVecDense(FeatureCount, append([]float64(nil), b1...)),
		output:     mat.NewVecDense(FeatureCount, append([]float64(nil), w2...)),
		outputBias: b2,
	}, nil
}

// Forward runs the network on a normalized feature vector and returns
// the continuous score. The sigmoid-scaled transform already lands in
// [1,6]; the clamp guards against pathological inputs all the same.
func (w *NetworkWeights) Forward(z []float64) float64 {
	zv := mat.NewVecDense(FeatureCount, z)

	var h mat.VecDense
	h.MulVec(w.hidden, zv)
	h.AddVec(&h, w.hiddenBias)
	for i := 0; i < FeatureCount; i++ {
		if h.AtVec(i) < 0 {
			h.SetVec(i, 0)
		}
	}

	y := sigmoid(mat.Dot(w.output, &h) + w.outputBias)
	score := y*5 + 1
	if score < 1 {
		score = 1
	}
	if score > 6 {
		score = 6
	}
	return score
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
