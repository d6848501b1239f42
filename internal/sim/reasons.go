package sim

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{
		Code:    c,
		Message: m,
	}
}

var (
	ReasonSelfAttack  = NewReason("SELF_ATTACK", "不能进攻自己")
	ReasonSameStation = NewReason("SAME_STATION", "起点与终点相同")
	ReasonQueueFull   = NewReason("QUEUE_FULL", "命令队列已满")
	ReasonNotWater    = NewReason("NOT_WATER", "目的地不是水域")
)
