// pkg/entity/tuning.go
package entity

// AnimSpeeds are animation rates in frames per second of simulation time.
type AnimSpeeds struct {
	Fan    float64 `json:"fan"`
	Magnet float64 `json:"magnet"`
	Airgen float64 `json:"airgen"`
	Bar    float64 `json:"bar"`
	Key    float64 `json:"key"`
}

// Tuning holds every physics and gameplay constant of the simulation.
// Distances are in level pixels and times in simulation seconds.
type Tuning struct {
	ShipW    int `json:"shipW"`
	ShipH    int `json:"shipH"`
	ShipTexX int `json:"shipTexX"` // sheet origin of rotation frame 0
	ShipTexY int `json:"shipTexY"`

	EngineAccel   float64 `json:"engineAccel"`
	Gravity       float64 `json:"gravity"`
	AirResistance float64 `json:"airResistance"`
	RotSpeed      float64 `json:"rotSpeed"` // applied while a turn key is held

	FuelSpeed   float64 `json:"fuelSpeed"`
	MaxFuel     float64 `json:"maxFuel"`
	FuelBarrel  float64 `json:"fuelBarrel"`
	DefaultLife int     `json:"defaultLife"`
	MaxFreight  int     `json:"maxFreight"`
	MaxVX       float64 `json:"maxVX"` // landing speed limits
	MaxVY       float64 `json:"maxVY"`

	HoverOffset    float64 `json:"hoverOffset"`
	TransferDelay  float64 `json:"transferDelay"`
	KaboomDuration float64 `json:"kaboomDuration"`

	BlockSize int `json:"blockSize"`

	BarMinLen              float64   `json:"barMinLen"`
	BarSpeeds              []float64 `json:"barSpeeds"`
	BarSpeedChangeInterval float64   `json:"barSpeedChangeInterval"`
	BarTexOffset           int       `json:"barTexOffset"`

	GateBarSpeed  float64 `json:"gateBarSpeed"`
	GateBarMinLen float64 `json:"gateBarMinLen"`

	AirgenRotSpeed float64    `json:"airgenRotSpeed"`
	FanAccel       [2]float64 `json:"fanAccel"` // indexed by fan power
	MagnetAccel    float64    `json:"magnetAccel"`

	Anim    AnimSpeeds `json:"anim"`
	KeyTexX int        `json:"keyTexX"`
}

// DefaultTuning returns the constants of the stock game.
func DefaultTuning() Tuning {
	return Tuning{
		ShipW:    20,
		ShipH:    20,
		ShipTexX: 0,
		ShipTexY: 0,

		EngineAccel:   50,
		Gravity:       20,
		AirResistance: 0.25,
		RotSpeed:      5.5,

		FuelSpeed:   3,
		MaxFuel:     100,
		FuelBarrel:  100,
		DefaultLife: 3,
		MaxFreight:  1,
		MaxVX:       42,
		MaxVY:       72,

		HoverOffset:    20,
		TransferDelay:  1,
		KaboomDuration: 1,

		BlockSize: 64,

		BarMinLen:              4,
		BarSpeeds:              []float64{5.65, 7.43, 10.83, 21.67, 43.33, 69.33},
		BarSpeedChangeInterval: 2,
		BarTexOffset:           8,

		GateBarSpeed:  40,
		GateBarMinLen: 4,

		AirgenRotSpeed: 2,
		FanAccel:       [2]float64{80, 40},
		MagnetAccel:    50,

		Anim: AnimSpeeds{
			Fan:    10,
			Magnet: 6,
			Airgen: 12,
			Bar:    4,
			Key:    8,
		},
		KeyTexX: 480,
	}
}
