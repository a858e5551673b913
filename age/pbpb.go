package age

import (
	"fmt"
	"math"

	"github.com/uyouii/geochron/common"
	"github.com/uyouii/geochron/decay"
	"github.com/uyouii/geochron/model"
)

// RatioPbPb is the radiogenic 207Pb/206Pb ratio accumulated over t Myr.
func RatioPbPb(t, lambda235, lambda238 float64) float64 {
	if t == 0 {
		return lambda235 / (lambda238 * decay.R238_235)
	}
	return math.Expm1(lambda235*t) / math.Expm1(lambda238*t) / decay.R238_235
}

// Age76 solves RatioPbPb(t) = 207Pb/206Pb for t in [tMin, tMax] with the default constants.
// The bracket must hold the physically sensible root.
func Age76(a model.PbPbAnalysis, tMin, tMax float64) (float64, error) {
	return DefaultConstants.Age76(a, tMin, tMax)
}

func (c Constants) Age76(a model.PbPbAnalysis, tMin, tMax float64) (float64, error) {
	if !(tMin < tMax) {
		return math.NaN(), fmt.Errorf("%w: age bracket [%g, %g] is empty", common.ErrorInvalidValue, tMin, tMax)
	}
	r76 := a.R76().Mean
	if math.IsNaN(r76) || math.IsInf(r76, 0) {
		return math.NaN(), fmt.Errorf("%w: 207Pb/206Pb ratio %g is not finite", common.ErrorInvalidValue, r76)
	}
	l235, l238 := c.Lambda235.Mean, c.Lambda238.Mean
	t, err := findRoot(func(t float64) float64 {
		return RatioPbPb(t, l235, l238) - r76
	}, tMin, tMax)
	if err != nil {
		return math.NaN(), fmt.Errorf("207Pb/206Pb age of ratio %g: %w", r76, err)
	}
	return t, nil
}
