package ml

import (
	"math/rand"
	"sort"
)

const leafFeature = -1

// node es un nodo de un árbol aplanado. Las hojas tienen Feature == -1.
type node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value,omitempty"`
}

// Tree es un árbol de decisión CART con impureza gini.
type Tree struct {
	Nodes []node `json:"nodes"`
}

type treeBuilder struct {
	x           [][]float64
	y           []int
	nClasses    int
	maxFeatures int
	rng         *rand.Rand
	nodes       []node
}

func buildTree(x [][]float64, y []int, samples []int, nClasses, maxFeatures int, rng *rand.Rand) Tree {
	b := &treeBuilder{
		x:           x,
		y:           y,
		nClasses:    nClasses,
		maxFeatures: maxFeatures,
		rng:         rng,
	}
	b.grow(samples)
	return Tree{Nodes: b.nodes}
}

func (b *treeBuilder) grow(samples []int) int {
	id := len(b.nodes)
	b.nodes = append(b.nodes, node{Feature: leafFeature, Left: -1, Right: -1})

	counts := b.classCounts(samples)
	if len(samples) < 2 || isPure(counts) {
		b.nodes[id].Value = normalize(counts)
		return id
	}

	feature, threshold, ok := b.bestSplit(samples)
	if !ok {
		b.nodes[id].Value = normalize(counts)
		return id
	}

	var left, right []int
	for _, s := range samples {
		if b.x[s][feature] <= threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}

	l := b.grow(left)
	r := b.grow(right)
	b.nodes[id].Feature = feature
	b.nodes[id].Threshold = threshold
	b.nodes[id].Left = l
	b.nodes[id].Right = r
	return id
}

// bestSplit examina al menos maxFeatures atributos al azar y sigue buscando
// mientras no haya encontrado una partición válida.
func (b *treeBuilder) bestSplit(samples []int) (int, float64, bool) {
	nFeatures := len(b.x[samples[0]])
	order := b.rng.Perm(nFeatures)

	var (
		found         bool
		bestFeature   int
		bestThreshold float64
		bestScore     float64
	)
	for i, f := range order {
		if i >= b.maxFeatures && found {
			break
		}
		threshold, score, ok := b.splitOn(samples, f)
		if !ok {
			continue
		}
		if !found || score < bestScore {
			found = true
			bestFeature = f
			bestThreshold = threshold
			bestScore = score
		}
	}
	return bestFeature, bestThreshold, found
}

// splitOn devuelve el umbral con menor gini ponderado para un atributo.
func (b *treeBuilder) splitOn(samples []int, feature int) (float64, float64, bool) {
	sorted := make([]int, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool {
		return b.x[sorted[i]][feature] < b.x[sorted[j]][feature]
	})

	total := b.classCounts(sorted)
	left := make([]float64, b.nClasses)
	right := make([]float64, b.nClasses)
	copy(right, total)

	n := float64(len(sorted))
	var (
		found         bool
		bestThreshold float64
		bestScore     float64
	)
	for i := 0; i < len(sorted)-1; i++ {
		c := b.y[sorted[i]]
		left[c]++
		right[c]--

		cur := b.x[sorted[i]][feature]
		next := b.x[sorted[i+1]][feature]
		if cur == next {
			continue
		}
		nl := float64(i + 1)
		nr := n - nl
		score := (nl*gini(left, nl) + nr*gini(right, nr)) / n
		if !found || score < bestScore {
			found = true
			bestScore = score
			bestThreshold = cur + (next-cur)/2
		}
	}
	return bestThreshold, bestScore, found
}

func (b *treeBuilder) classCounts(samples []int) []float64 {
	counts := make([]float64, b.nClasses)
	for _, s := range samples {
		counts[b.y[s]]++
	}
	return counts
}

func (t Tree) leaf(x []float64) []float64 {
	i := 0
	for t.Nodes[i].Feature != leafFeature {
		n := t.Nodes[i]
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return t.Nodes[i].Value
}

func gini(counts []float64, n float64) float64 {
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		p := c / n
		sum += p * p
	}
	return 1 - sum
}

func isPure(counts []float64) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func normalize(counts []float64) []float64 {
	total := 0.0
	for _, c := range counts {
		total += c
	}
	out := make([]float64, len(counts))
	if total == 0 {
		return out
	}
	for i, c := range counts {
		out[i] = c / total
	}
	return out
}
