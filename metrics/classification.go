package metrics

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	scigoErrors "github.com/ezoic/evalharness/pkg/errors"
)

// ClassificationError calculates the misclassification rate, the fraction of
// predictions that differ from the true label. Labels may come from any
// finite set, not just {0, 1}.
//
// Example:
//
//	yTrue := mat.NewVecDense(5, []float64{0, 1, 2, 1, 0})
//	yPred := mat.NewVecDense(5, []float64{0, 1, 1, 1, 0})
//	rate, err := metrics.ClassificationError(yTrue, yPred) // 0.2
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	count, err := MisclassificationCount(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return float64(count) / float64(yTrue.Len()), nil
}

// Accuracy calculates the fraction of correct predictions.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	errorRate, err := ClassificationError(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1.0 - errorRate, nil
}

// MisclassificationCount returns the raw number of incorrect predictions,
// the quantity contingency-table reporting is built from.
func MisclassificationCount(yTrue, yPred *mat.VecDense) (int, error) {
	if err := validatePair("MisclassificationCount", yTrue, yPred); err != nil {
		return 0, err
	}

	n := yTrue.Len()
	count := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) != yPred.AtVec(i) {
			count++
		}
	}
	return count, nil
}

// ConfusionMatrix tabulates predictions against true labels for an arbitrary
// finite label set. Rows index the true label, columns the predicted label,
// both in Labels order.
type ConfusionMatrix struct {
	// Labels is the sorted set of distinct labels observed in either input.
	Labels []float64

	// Counts[i][j] is the number of records with true label Labels[i]
	// predicted as Labels[j].
	Counts [][]int
}

// NewConfusionMatrix builds a confusion matrix from true and predicted
// labels.
func NewConfusionMatrix(yTrue, yPred *mat.VecDense) (*ConfusionMatrix, error) {
	if err := validatePair("NewConfusionMatrix", yTrue, yPred); err != nil {
		return nil, err
	}

	n := yTrue.Len()
	labelSet := make(map[float64]bool)
	for i := 0; i < n; i++ {
		labelSet[yTrue.AtVec(i)] = true
		labelSet[yPred.AtVec(i)] = true
	}

	labels := make([]float64, 0, len(labelSet))
	for label := range labelSet {
		labels = append(labels, label)
	}
	sort.Float64s(labels)

	labelIdx := make(map[float64]int, len(labels))
	for i, label := range labels {
		labelIdx[label] = i
	}

	counts := make([][]int, len(labels))
	for i := range counts {
		counts[i] = make([]int, len(labels))
	}
	for i := 0; i < n; i++ {
		counts[labelIdx[yTrue.AtVec(i)]][labelIdx[yPred.AtVec(i)]]++
	}

	return &ConfusionMatrix{Labels: labels, Counts: counts}, nil
}

// Total returns the number of records tabulated.
func (cm *ConfusionMatrix) Total() int {
	total := 0
	for _, row := range cm.Counts {
		for _, c := range row {
			total += c
		}
	}
	return total
}

// Correct returns the number of correctly classified records (the trace).
func (cm *ConfusionMatrix) Correct() int {
	correct := 0
	for i := range cm.Counts {
		correct += cm.Counts[i][i]
	}
	return correct
}

// Accuracy returns the fraction of correctly classified records.
func (cm *ConfusionMatrix) Accuracy() float64 {
	total := cm.Total()
	if total == 0 {
		return 0
	}
	return float64(cm.Correct()) / float64(total)
}

// BinaryCounts returns the true positive, false positive, true negative, and
// false negative counts for a binary matrix with the given positive label.
// Needed when a thresholded predictor feeds ROC-style analysis downstream.
func (cm *ConfusionMatrix) BinaryCounts(positive float64) (tp, fp, tn, fn int, err error) {
	if len(cm.Labels) > 2 {
		return 0, 0, 0, 0, scigoErrors.NewValueError("ConfusionMatrix.BinaryCounts", "matrix has more than two labels")
	}

	posIdx := -1
	for i, label := range cm.Labels {
		if label == positive {
			posIdx = i
		}
	}
	if posIdx < 0 {
		return 0, 0, 0, 0, scigoErrors.NewValidationError("positive", "label not present in matrix", positive)
	}

	for i, row := range cm.Counts {
		for j, count := range row {
			switch {
			case i == posIdx && j == posIdx:
				tp += count
			case i == posIdx:
				fn += count
			case j == posIdx:
				fp += count
			default:
				tn += count
			}
		}
	}
	return tp, fp, tn, fn, nil
}
