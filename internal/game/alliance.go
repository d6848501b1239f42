package game

// Alliance 是两个玩家之间的同盟，到 expiresAt 时由 player execution 解除。
type Alliance struct {
	requestor *Player
	recipient *Player
	createdAt uint32
	expiresAt uint32
}

func (a *Alliance) Requestor() *Player { return a.requestor }
func (a *Alliance) Recipient() *Player { return a.recipient }
func (a *Alliance) CreatedAt() uint32  { return a.createdAt }
func (a *Alliance) ExpiresAt() uint32  { return a.expiresAt }

// Other 返回同盟中 p 之外的一方。
func (a *Alliance) Other(p *Player) *Player {
	if a.requestor == p {
		return a.recipient
	}
	return a.requestor
}
