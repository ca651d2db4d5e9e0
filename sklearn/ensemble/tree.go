package ensemble

import (
	"math/rand/v2"
	"slices"
)

// Node は回帰木のノード。木はNodesスライスにフラットに格納される。
type Node struct {
	NodeID     int // ノードの識別子（Nodesのインデックス）
	LeftChild  int // 左の子ノードID（葉なら-1）
	RightChild int // 右の子ノードID（葉なら-1）

	// 分岐情報（内部ノードのみ）
	SplitFeature int     // 分岐に使う特徴量のインデックス
	Threshold    float64 // x <= Threshold なら左
	Gain         float64 // 二乗誤差の減少量

	// 葉の情報
	LeafValue float64 // 葉に落ちたサンプルのターゲット平均
	Count     int     // ノードに落ちたサンプル数
}

// IsLeaf はノードが葉かどうかを返す
func (n *Node) IsLeaf() bool {
	return n.LeftChild == -1 && n.RightChild == -1
}

// treeParams は1本の木の成長パラメータ
type treeParams struct {
	maxDepth       int // 0 なら無制限
	minSamplesLeaf int
	maxFeatures    int // 各分岐で候補にする特徴量数
}

// RegressionTree は分散減少で分岐するCART回帰木
type RegressionTree struct {
	Nodes []Node

	// importance は特徴量ごとのGainの合計
	importance []float64
}

// splitInfo は分岐候補
type splitInfo struct {
	feature   int
	threshold float64
	gain      float64
}

// treeBuilder は1本の木を成長させる作業領域
type treeBuilder struct {
	cols   [][]float64 // 列優先の特徴量
	y      []float64
	params treeParams
	rng    *rand.Rand
	tree   *RegressionTree

	features []int // 特徴量のシャッフル用
	order    []int // ソート用バッファ
}

// growTree は indices（重複可）のサンプルから回帰木を構築する
func growTree(cols [][]float64, y []float64, indices []int, params treeParams, rng *rand.Rand) *RegressionTree {
	p := len(cols)
	b := &treeBuilder{
		cols:     cols,
		y:        y,
		params:   params,
		rng:      rng,
		tree:     &RegressionTree{importance: make([]float64, p)},
		features: make([]int, p),
		order:    make([]int, 0, len(indices)),
	}
	for j := range b.features {
		b.features[j] = j
	}
	b.build(slices.Clone(indices), 0)
	return b.tree
}

func (b *treeBuilder) build(indices []int, depth int) int {
	id := len(b.tree.Nodes)
	mean := b.mean(indices)
	b.tree.Nodes = append(b.tree.Nodes, Node{
		NodeID:     id,
		LeftChild:  -1,
		RightChild: -1,
		LeafValue:  mean,
		Count:      len(indices),
	})

	if !b.splittable(indices, depth) {
		return id
	}
	split, ok := b.bestSplit(indices, mean)
	if !ok {
		return id
	}

	left, right := partition(indices, b.cols[split.feature], split.threshold)
	if len(left) == 0 || len(right) == 0 {
		return id
	}
	b.tree.importance[split.feature] += split.gain

	leftID := b.build(left, depth+1)
	rightID := b.build(right, depth+1)

	n := &b.tree.Nodes[id]
	n.LeftChild = leftID
	n.RightChild = rightID
	n.SplitFeature = split.feature
	n.Threshold = split.threshold
	n.Gain = split.gain
	return id
}

func (b *treeBuilder) splittable(indices []int, depth int) bool {
	if len(indices) < 2*b.params.minSamplesLeaf {
		return false
	}
	if b.params.maxDepth > 0 && depth >= b.params.maxDepth {
		return false
	}
	// ターゲットが全て同じなら純粋なノード
	first := b.y[indices[0]]
	for _, i := range indices[1:] {
		if b.y[i] != first {
			return true
		}
	}
	return false
}

func (b *treeBuilder) mean(indices []int) float64 {
	var sum float64
	for _, i := range indices {
		sum += b.y[i]
	}
	return sum / float64(len(indices))
}

// bestSplit は候補特徴量の中から二乗誤差を最も減らす分岐を探す。
// ターゲットをノード平均で中心化しておくと、Gainは
// sumL²/nL + sumR²/nR で計算できる。
func (b *treeBuilder) bestSplit(indices []int, mean float64) (splitInfo, bool) {
	candidates := b.features
	if b.params.maxFeatures < len(b.features) {
		b.rng.Shuffle(len(b.features), func(i, j int) {
			b.features[i], b.features[j] = b.features[j], b.features[i]
		})
		candidates = b.features[:b.params.maxFeatures]
	}

	best := splitInfo{gain: 0}
	found := false
	minLeaf := b.params.minSamplesLeaf
	n := len(indices)

	for _, f := range candidates {
		col := b.cols[f]
		b.order = append(b.order[:0], indices...)
		slices.SortFunc(b.order, func(i, j int) int {
			switch {
			case col[i] < col[j]:
				return -1
			case col[i] > col[j]:
				return 1
			}
			return 0
		})

		var total float64
		for _, i := range b.order {
			total += b.y[i] - mean
		}

		var leftSum float64
		for k := 0; k < n-1; k++ {
			leftSum += b.y[b.order[k]] - mean
			leftCount := k + 1
			rightCount := n - leftCount

			if col[b.order[k]] == col[b.order[k+1]] {
				continue
			}
			if leftCount < minLeaf || rightCount < minLeaf {
				continue
			}

			rightSum := total - leftSum
			gain := leftSum*leftSum/float64(leftCount) + rightSum*rightSum/float64(rightCount) - total*total/float64(n)
			if gain > best.gain {
				lo, hi := col[b.order[k]], col[b.order[k+1]]
				thr := lo + (hi-lo)/2
				if thr >= hi {
					thr = lo
				}
				best = splitInfo{feature: f, threshold: thr, gain: gain}
				found = true
			}
		}
	}
	return best, found
}

func partition(indices []int, col []float64, threshold float64) (left, right []int) {
	for _, i := range indices {
		if col[i] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return left, right
}

// Predict は1サンプルの予測値を返す
func (t *RegressionTree) Predict(row []float64) float64 {
	id := 0
	for {
		node := &t.Nodes[id]
		if node.IsLeaf() {
			return node.LeafValue
		}
		if row[node.SplitFeature] <= node.Threshold {
			id = node.LeftChild
		} else {
			id = node.RightChild
		}
	}
}

// NumLeaves は葉の数を返す
func (t *RegressionTree) NumLeaves() int {
	leaves := 0
	for i := range t.Nodes {
		if t.Nodes[i].IsLeaf() {
			leaves++
		}
	}
	return leaves
}
