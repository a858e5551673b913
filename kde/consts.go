package kde

const (
	DefaultBandwidthAdjust = 1.0
	// grid extends cut bandwidths past the youngest and oldest age
	DefaultCut = 3.0

	ClipUpperZScore = 3.0
	ClipLowerZScore = 3.0

	MinGridSize      = 100
	CdfQuadPoints    = 50
	MinDensityAgeCnt = 3
	QuantileDecimals = 3
)

var (
	DefaultQuantiles = []float64{0.025, 0.05, 0.16, 0.25, 0.5, 0.75, 0.84, 0.95, 0.975}
)
