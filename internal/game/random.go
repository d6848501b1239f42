package game

import "math/rand/v2"

// Random 是确定性伪随机源。同一 seed 在任意机器上产生相同序列，回放依赖这一点。
type Random struct {
	r *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{r: rand.New(rand.NewPCG(seed, seed^0x2545f4914f6cdd1d))}
}

// NextInt 返回 [min, max) 内的整数；max<=min 时返回 min。
func (r *Random) NextInt(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.r.IntN(max-min)
}

func (r *Random) NextFloat(min, max float64) float64 {
	return min + r.r.Float64()*(max-min)
}

// Chance 以 1/odds 的概率返回 true。
func (r *Random) Chance(odds int) bool {
	if odds <= 1 {
		return true
	}
	return r.r.IntN(odds) == 0
}

func (r *Random) Uint64() uint64 { return r.r.Uint64() }

// SimpleHash 是字符串的稳定哈希，用于按玩家名错开周期任务。
func SimpleHash(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*31 + uint32(s[i])
	}
	return h
}
