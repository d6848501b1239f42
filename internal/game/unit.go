package game

type UnitType uint8

const (
	UnitCity UnitType = iota + 1
	UnitPort
	UnitFactory
	UnitDefensePost
	UnitSAMLauncher
	UnitMissileSilo
	UnitWarship
	UnitTransportShip
	UnitAtomBomb
	UnitHydrogenBomb
	UnitMIRV
	UnitMIRVWarhead
	UnitTrain
)

var unitTypeNames = map[UnitType]string{
	UnitCity:          "City",
	UnitPort:          "Port",
	UnitFactory:       "Factory",
	UnitDefensePost:   "DefensePost",
	UnitSAMLauncher:   "SAMLauncher",
	UnitMissileSilo:   "MissileSilo",
	UnitWarship:       "Warship",
	UnitTransportShip: "TransportShip",
	UnitAtomBomb:      "AtomBomb",
	UnitHydrogenBomb:  "HydrogenBomb",
	UnitMIRV:          "MIRV",
	UnitMIRVWarhead:   "MIRVWarhead",
	UnitTrain:         "Train",
}

func (t UnitType) String() string {
	if s, ok := unitTypeNames[t]; ok {
		return s
	}
	return "Unknown"
}

// ParseUnitType 是 String 的逆运算，供命令解码使用。
func ParseUnitType(s string) (UnitType, bool) {
	for t, name := range unitTypeNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

// IsTerritoryBound 的单位离开己方领土后会被夺取或删除。
func (t UnitType) IsTerritoryBound() bool {
	switch t {
	case UnitCity, UnitPort, UnitFactory, UnitDefensePost, UnitSAMLauncher, UnitMissileSilo:
		return true
	}
	return false
}

// IsStrategic 的单位在玩家灭亡后仍然保留（已发射的弹头要飞完）。
func (t UnitType) IsStrategic() bool {
	switch t {
	case UnitAtomBomb, UnitHydrogenBomb, UnitMIRV, UnitMIRVWarhead:
		return true
	}
	return false
}

// IsShip 的单位只在水域移动。
func (t UnitType) IsShip() bool {
	return t == UnitWarship || t == UnitTransportShip
}

// IsStationType 的建筑可以成为火车站。
func (t UnitType) IsStationType() bool {
	switch t {
	case UnitCity, UnitPort, UnitFactory:
		return true
	}
	return false
}

type TrainType uint8

const (
	TrainEngine TrainType = iota + 1
	TrainCarriage
)

// Unit 属于且只属于一个玩家。
type Unit struct {
	id     uint32
	typ    UnitType
	owner  *Player
	tile   TileRef
	active bool

	trainType TrainType
	loaded    bool
}

func (u *Unit) ID() uint32           { return u.id }
func (u *Unit) Type() UnitType       { return u.typ }
func (u *Unit) Owner() *Player       { return u.owner }
func (u *Unit) Tile() TileRef        { return u.tile }
func (u *Unit) IsActive() bool       { return u.active }
func (u *Unit) TrainType() TrainType { return u.trainType }
func (u *Unit) IsLoaded() bool       { return u.loaded }
func (u *Unit) SetLoaded(v bool)     { u.loaded = v }
