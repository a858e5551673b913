package age

const (
	// root finder limits for Age76 and concordia intercepts
	RootMaxIterations = 100
	RootTolerance     = 1e-9 // Myr

	// number of grid cells scanned for sign changes when bracketing intercepts
	InterceptScanSteps = 512

	// Stacey & Kramers (1975) two-stage model, t in Myr before present
	StaceyKramersStageTwoStart = 3700.0
	StaceyKramersEarthAge      = 4570.0
)

type staceyKramersStage struct {
	t0  float64
	r64 float64
	r74 float64
	uPb float64 // 238U/204Pb
}

var (
	staceyKramersFirstStage  = staceyKramersStage{t0: 3700, r64: 11.152, r74: 12.998, uPb: 7.19}
	staceyKramersSecondStage = staceyKramersStage{t0: 0, r64: 18.700, r74: 15.628, uPb: 9.74}
)
