package game

import "slices"

// Attack 是一次进行中的进攻。target 为 nil 表示进攻无主地。
type Attack struct {
	id       uint32
	attacker *Player
	target   *Player
	troops   int64
	source   TileRef
	hasSrc   bool
	active   bool
}

func (a *Attack) ID() uint32        { return a.id }
func (a *Attack) Attacker() *Player { return a.attacker }
func (a *Attack) Target() *Player   { return a.target }
func (a *Attack) Troops() int64     { return a.troops }
func (a *Attack) IsActive() bool    { return a.active }

func (a *Attack) SetTroops(n int64) { a.troops = max(n, 0) }

// SourceTile 返回指定的出发地块；未指定时 ok=false，表示从整条边境出发。
func (a *Attack) SourceTile() (TileRef, bool) { return a.source, a.hasSrc }

// Delete 结束进攻并从双方的进攻列表里摘除。
func (a *Attack) Delete() {
	if !a.active {
		return
	}
	a.active = false
	a.attacker.outgoingAttacks = slices.DeleteFunc(a.attacker.outgoingAttacks, func(o *Attack) bool { return o == a })
	if a.target != nil {
		a.target.incomingAttacks = slices.DeleteFunc(a.target.incomingAttacks, func(o *Attack) bool { return o == a })
	}
}
