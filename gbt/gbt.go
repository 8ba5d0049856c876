// Package gbt implements gradient-boosted regression trees with a
// squared-error objective. Models serialize to JSON so they can be written
// to disk per SKU and reloaded for inference.
package gbt

import (
	"errors"
	"math"
	"math/rand"
	"sort"
)

// Params are the boosting hyperparameters. Defaults mirror the values the
// training pipeline has always used.
type Params struct {
	NEstimators     int     `json:"n_estimators"`
	LearningRate    float64 `json:"learning_rate"`
	MaxDepth        int     `json:"max_depth"`
	Subsample       float64 `json:"subsample"`
	ColsampleByTree float64 `json:"colsample_bytree"`
	MinSamplesLeaf  int     `json:"min_samples_leaf"`
	Seed            int64   `json:"seed"`
}

// DefaultParams returns the standard training configuration.
func DefaultParams() Params {
	return Params{
		NEstimators:     100,
		LearningRate:    0.1,
		MaxDepth:        6,
		Subsample:       0.9,
		ColsampleByTree: 0.9,
		MinSamplesLeaf:  2,
		Seed:            42,
	}
}

// Node is one node of a regression tree. Leaves carry the predicted value,
// internal nodes route on Feature <= Threshold.
type Node struct {
	Leaf      bool    `json:"leaf"`
	Value     float64 `json:"value,omitempty"`
	Feature   int     `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      *Node   `json:"left,omitempty"`
	Right     *Node   `json:"right,omitempty"`
}

func (n *Node) predict(x []float64) float64 {
	for !n.Leaf {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

// Model is a fitted ensemble: a base prediction plus shrunken tree corrections.
type Model struct {
	Base         float64 `json:"base"`
	LearningRate float64 `json:"learning_rate"`
	NumFeatures  int     `json:"num_features"`
	Trees        []*Node `json:"trees"`
}

var (
	ErrEmptyTrainingSet = errors.New("gbt: empty training set")
	ErrShapeMismatch    = errors.New("gbt: feature/label shape mismatch")
)

// Fit trains an ensemble on the feature matrix X and labels y. Training is
// deterministic for a fixed Params.Seed.
func Fit(X [][]float64, y []float64, p Params) (*Model, error) {
	if len(X) == 0 || len(y) == 0 {
		return nil, ErrEmptyTrainingSet
	}
	if len(X) != len(y) {
		return nil, ErrShapeMismatch
	}
	cols := len(X[0])
	for _, row := range X {
		if len(row) != cols {
			return nil, ErrShapeMismatch
		}
	}

	base := mean(y)
	m := &Model{
		Base:         base,
		LearningRate: p.LearningRate,
		NumFeatures:  cols,
		Trees:        make([]*Node, 0, p.NEstimators),
	}

	rng := rand.New(rand.NewSource(p.Seed))
	pred := make([]float64, len(y))
	for i := range pred {
		pred[i] = base
	}
	resid := make([]float64, len(y))

	for t := 0; t < p.NEstimators; t++ {
		for i := range y {
			resid[i] = y[i] - pred[i]
		}

		rows := sampleIndexes(rng, len(y), p.Subsample)
		feats := sampleIndexes(rng, cols, p.ColsampleByTree)

		tree := buildTree(X, resid, rows, feats, 0, p)
		m.Trees = append(m.Trees, tree)

		for i, row := range X {
			pred[i] += p.LearningRate * tree.predict(row)
		}
	}
	return m, nil
}

// Predict evaluates the ensemble on a single feature row.
func (m *Model) Predict(x []float64) (float64, error) {
	if len(x) != m.NumFeatures {
		return 0, ErrShapeMismatch
	}
	out := m.Base
	for _, tree := range m.Trees {
		out += m.LearningRate * tree.predict(x)
	}
	return out, nil
}

// sampleIndexes draws round(n*fraction) distinct indexes, at least one.
func sampleIndexes(rng *rand.Rand, n int, fraction float64) []int {
	k := int(math.Round(float64(n) * fraction))
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	perm := rng.Perm(n)[:k]
	sort.Ints(perm)
	return perm
}

func buildTree(X [][]float64, resid []float64, rows, feats []int, depth int, p Params) *Node {
	if depth >= p.MaxDepth || len(rows) < 2*p.MinSamplesLeaf {
		return leafOf(resid, rows)
	}

	bestSSE := sseOf(resid, rows)
	var bestFeat int
	var bestThr float64
	var bestLeft, bestRight []int
	found := false

	for _, f := range feats {
		thresholds := splitCandidates(X, rows, f)
		for _, thr := range thresholds {
			var left, right []int
			for _, r := range rows {
				if X[r][f] <= thr {
					left = append(left, r)
				} else {
					right = append(right, r)
				}
			}
			if len(left) < p.MinSamplesLeaf || len(right) < p.MinSamplesLeaf {
				continue
			}
			sse := sseOf(resid, left) + sseOf(resid, right)
			if sse < bestSSE {
				bestSSE = sse
				bestFeat = f
				bestThr = thr
				bestLeft = left
				bestRight = right
				found = true
			}
		}
	}

	if !found {
		return leafOf(resid, rows)
	}
	return &Node{
		Feature:   bestFeat,
		Threshold: bestThr,
		Left:      buildTree(X, resid, bestLeft, feats, depth+1, p),
		Right:     buildTree(X, resid, bestRight, feats, depth+1, p),
	}
}

// splitCandidates returns midpoints between consecutive distinct feature
// values over the given rows.
func splitCandidates(X [][]float64, rows []int, feat int) []float64 {
	vals := make([]float64, 0, len(rows))
	for _, r := range rows {
		vals = append(vals, X[r][feat])
	}
	sort.Float64s(vals)

	var out []float64
	for i := 1; i < len(vals); i++ {
		if vals[i] != vals[i-1] {
			out = append(out, (vals[i]+vals[i-1])/2)
		}
	}
	return out
}

func leafOf(resid []float64, rows []int) *Node {
	var sum float64
	for _, r := range rows {
		sum += resid[r]
	}
	v := 0.0
	if len(rows) > 0 {
		v = sum / float64(len(rows))
	}
	return &Node{Leaf: true, Value: v}
}

func sseOf(resid []float64, rows []int) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rows {
		sum += resid[r]
	}
	m := sum / float64(len(rows))
	var sse float64
	for _, r := range rows {
		d := resid[r] - m
		sse += d * d
	}
	return sse
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
