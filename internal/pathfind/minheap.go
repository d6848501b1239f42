package pathfind

import (
	"FrontierSim/internal/game"
	"FrontierSim/modules/kit/errx"
)

// MinHeap 是 (float32 优先级, TileRef) 的二叉小顶堆。
// 优先级和载荷分存两个切片，Push 不为条目单独分配对象。
// 相同优先级的出堆顺序不做保证。
type MinHeap struct {
	prio []float32
	refs []game.TileRef
	n    int
}

func NewMinHeap(capacity int) *MinHeap {
	capacity = max(capacity, 16)
	return &MinHeap{
		prio: make([]float32, capacity),
		refs: make([]game.TileRef, capacity),
	}
}

func (h *MinHeap) Len() int { return h.n }

// Clear 只重置长度，保留底层数组。
func (h *MinHeap) Clear() { h.n = 0 }

func (h *MinHeap) Push(ref game.TileRef, priority float32) {
	if h.n == len(h.prio) {
		h.grow()
	}
	i := h.n
	h.n++
	for i > 0 {
		parent := (i - 1) / 2
		if h.prio[parent] <= priority {
			break
		}
		h.prio[i], h.refs[i] = h.prio[parent], h.refs[parent]
		i = parent
	}
	h.prio[i], h.refs[i] = priority, ref
}

// Pop 弹出优先级最小的条目；空堆直接 panic。
func (h *MinHeap) Pop() (game.TileRef, float32) {
	if h.n == 0 {
		errx.Panic(ErrHeapUnderflow)
	}
	ref, pr := h.refs[0], h.prio[0]
	h.n--
	if h.n == 0 {
		return ref, pr
	}
	lastP, lastR := h.prio[h.n], h.refs[h.n]
	i := 0
	for {
		l := 2*i + 1
		if l >= h.n {
			break
		}
		c := l
		if r := l + 1; r < h.n && h.prio[r] < h.prio[l] {
			c = r
		}
		if lastP <= h.prio[c] {
			break
		}
		h.prio[i], h.refs[i] = h.prio[c], h.refs[c]
		i = c
	}
	h.prio[i], h.refs[i] = lastP, lastR
	return ref, pr
}

func (h *MinHeap) grow() {
	size := len(h.prio) * 2
	prio := make([]float32, size)
	refs := make([]game.TileRef, size)
	copy(prio, h.prio[:h.n])
	copy(refs, h.refs[:h.n])
	h.prio, h.refs = prio, refs
}

// valid 检查堆序，只给测试用。
func (h *MinHeap) valid() bool {
	for i := 1; i < h.n; i++ {
		if h.prio[(i-1)/2] > h.prio[i] {
			return false
		}
	}
	return true
}
