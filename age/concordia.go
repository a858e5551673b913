package age

import (
	"fmt"
	"math"
	"sort"

	"github.com/uyouii/geochron/common"
	"github.com/uyouii/geochron/model"
	"github.com/uyouii/geochron/uncertain"
	"github.com/uyouii/geochron/utils"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Concordia returns the 207Pb/235U and 206Pb/238U ratios of a closed system of age t.
func (c Constants) Concordia(t float64) (r75, r68 float64) {
	return math.Expm1(c.Lambda235.Mean * t), math.Expm1(c.Lambda238.Mean * t)
}

// ConcordiaCurve samples the concordia at n evenly spaced ages, x = 207/235, y = 206/238.
func (c Constants) ConcordiaCurve(tMin, tMax float64, n int) []model.Point {
	if n < 1 {
		return []model.Point{}
	}
	ts := utils.Linspace(tMin, tMax, n)
	res := make([]model.Point, len(ts))
	for i, t := range ts {
		res[i].X, res[i].Y = c.Concordia(t)
	}
	return res
}

// Intercepts returns the ages in [tMin, tMax], ascending, where the discordia
// r68 = a + b*r75 crosses the concordia. Central values only.
func (c Constants) Intercepts(fit model.YorkFit, tMin, tMax float64) ([]float64, error) {
	return c.intercepts(fit.Intercept.Mean, fit.Slope.Mean, tMin, tMax)
}

func (c Constants) intercepts(a, b, tMin, tMax float64) ([]float64, error) {
	if !(tMin < tMax) {
		return nil, fmt.Errorf("%w: age bracket [%g, %g] is empty", common.ErrorInvalidValue, tMin, tMax)
	}
	roots := findRoots(func(t float64) float64 {
		r75, r68 := c.Concordia(t)
		return a + b*r75 - r68
	}, tMin, tMax, InterceptScanSteps)
	if len(roots) == 0 {
		return nil, fmt.Errorf("%w: discordia %g + %g*x does not cross concordia in [%g, %g]",
			common.ErrorNoConvergence, a, b, tMin, tMax)
	}
	sort.Float64s(roots)
	return roots, nil
}

// InterceptOptions controls the Monte Carlo propagation of intercept ages.
type InterceptOptions struct {
	Samples int
	Seed    uint64
}

func DefaultInterceptOptions() InterceptOptions {
	return InterceptOptions{Samples: 10000, Seed: 1}
}

// UpperIntercept is the older concordia intersection. Slope and intercept are
// drawn as independent normals; the result is the mean and standard deviation
// of the intersection ages of the draws.
func (c Constants) UpperIntercept(fit model.YorkFit, tMin, tMax float64, opts InterceptOptions) (uncertain.Value, error) {
	return c.interceptMonteCarlo(fit, tMin, tMax, opts, func(roots []float64) float64 {
		return roots[len(roots)-1]
	})
}

// LowerIntercept is the younger concordia intersection.
func (c Constants) LowerIntercept(fit model.YorkFit, tMin, tMax float64, opts InterceptOptions) (uncertain.Value, error) {
	return c.interceptMonteCarlo(fit, tMin, tMax, opts, func(roots []float64) float64 {
		return roots[0]
	})
}

func (c Constants) interceptMonteCarlo(fit model.YorkFit, tMin, tMax float64, opts InterceptOptions,
	pick func([]float64) float64) (uncertain.Value, error) {
	if _, err := c.Intercepts(fit, tMin, tMax); err != nil {
		return uncertain.Value{}, err
	}
	if opts.Samples < 2 {
		return uncertain.Value{}, fmt.Errorf("%w: %d Monte Carlo samples", common.ErrorInsufficientData, opts.Samples)
	}

	src := rand.NewSource(opts.Seed)
	intercept := distuv.Normal{Mu: fit.Intercept.Mean, Sigma: fit.Intercept.Sigma, Src: src}
	slope := distuv.Normal{Mu: fit.Slope.Mean, Sigma: fit.Slope.Sigma, Src: src}

	ages := make([]float64, 0, opts.Samples)
	for i := 0; i < opts.Samples; i++ {
		roots, err := c.intercepts(intercept.Rand(), slope.Rand(), tMin, tMax)
		if err != nil {
			continue
		}
		ages = append(ages, pick(roots))
	}
	if len(ages) < 2 {
		return uncertain.Value{}, fmt.Errorf("%w: only %d of %d draws cross concordia",
			common.ErrorInsufficientData, len(ages), opts.Samples)
	}
	mean, std := stat.MeanStdDev(ages, nil)
	return uncertain.New(mean, std), nil
}

// CorrectCommonLead removes common lead from a U-Pb analysis given the measured
// 206Pb/204Pb and 207Pb/204Pb of the sample and a Stacey-Kramers model age t for
// the common component. Uncertainties scale with the radiogenic fraction and the
// correlation is kept.
func (c Constants) CorrectCommonLead(a model.UPbAnalysis, r64, r74, t float64) (model.UPbAnalysis, error) {
	c64, c74 := c.StaceyKramers(t)
	if math.IsNaN(c64) || math.IsNaN(c74) {
		return model.UPbAnalysis{}, fmt.Errorf("%w: common-lead model undefined at %g Myr", common.ErrorDomain, t)
	}
	if !(r64 > 0) || !(r74 > 0) {
		return model.UPbAnalysis{}, fmt.Errorf("%w: measured 206/204 %g and 207/204 %g must be positive",
			common.ErrorInvalidValue, r64, r74)
	}
	f206, f207 := c64/r64, c74/r74
	if f206 >= 1 || f207 >= 1 {
		return model.UPbAnalysis{}, fmt.Errorf("%w: common fractions (%g, %g) leave no radiogenic lead",
			common.ErrorDomain, f206, f207)
	}
	k75, k68 := 1-f207, 1-f206
	return model.NewUPbAnalysis(a.Mu[0]*k75, a.Sigma[0]*k75, a.Mu[1]*k68, a.Sigma[1]*k68, a.Rho())
}
