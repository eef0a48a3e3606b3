package biomtab

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/biomtab/frame"
)

// Experiment is the unified output container: a counts matrix with aligned
// per-feature and per-sample annotation frames.
//
// Row i of RowData annotates row i of Counts; row j of ColData annotates
// column j of Counts. RowNames and ColNames carry the matrix axis
// identifiers and may be nil when the source named neither axis.
//
// Experiments are constructed by Convert and not mutated afterwards.
type Experiment struct {
	// Counts is the feature x sample abundance matrix.
	Counts *mat.Dense

	// RowData annotates features, ColData annotates samples.
	RowData *frame.Frame
	ColData *frame.Frame

	// RowNames and ColNames are the counts axis identifiers, if present.
	RowNames []string
	ColNames []string
}

// Dims returns the counts dimensions (features, samples).
func (e *Experiment) Dims() (features, samples int) {
	return e.Counts.Dims()
}

// FeatureIndex returns the row position of the named feature, or -1.
func (e *Experiment) FeatureIndex(id string) int {
	for i, name := range e.RowNames {
		if name == id {
			return i
		}
	}
	return -1
}

// SampleIndex returns the column position of the named sample, or -1.
func (e *Experiment) SampleIndex(id string) int {
	for j, name := range e.ColNames {
		if name == id {
			return j
		}
	}
	return -1
}

// Abundance returns the count for a named feature/sample pair.
func (e *Experiment) Abundance(featureID, sampleID string) (float64, bool) {
	i := e.FeatureIndex(featureID)
	j := e.SampleIndex(sampleID)
	if i < 0 || j < 0 {
		return 0, false
	}
	return e.Counts.At(i, j), true
}
