package age

import (
	"math"

	"github.com/uyouii/geochron/decay"
	"github.com/uyouii/geochron/model"
	"github.com/uyouii/geochron/utils"
)

// StaceyKramers returns the model common-lead 206Pb/204Pb and 207Pb/204Pb at
// t Myr ago. Both are NaN for t >= 4570, before the Earth formed.
func StaceyKramers(t float64) (r64, r74 float64) {
	return DefaultConstants.StaceyKramers(t)
}

func (c Constants) StaceyKramers(t float64) (r64, r74 float64) {
	var stage staceyKramersStage
	switch {
	case t >= StaceyKramersStageTwoStart && t < StaceyKramersEarthAge:
		stage = staceyKramersFirstStage
	case t < StaceyKramersStageTwoStart:
		stage = staceyKramersSecondStage
	default:
		return math.NaN(), math.NaN()
	}
	l238, l235 := c.Lambda238.Mean, c.Lambda235.Mean
	// remove the radiogenic ingrowth between the stage start and t
	r64 = stage.r64 - (math.Expm1(l238*t)-math.Expm1(l238*stage.t0))*stage.uPb
	r74 = stage.r74 - (math.Expm1(l235*t)-math.Expm1(l235*stage.t0))*stage.uPb/decay.R238_235
	return r64, r74
}

// StaceyKramersPoint is StaceyKramers with an explicit absent result outside the model range.
func StaceyKramersPoint(t float64) (model.CommonLead, bool) {
	return DefaultConstants.StaceyKramersPoint(t)
}

func (c Constants) StaceyKramersPoint(t float64) (model.CommonLead, bool) {
	r64, r74 := c.StaceyKramers(t)
	p := model.CommonLead{T: t, R64: r64, R74: r74}
	return p, p.Valid()
}

// StaceyKramersCurve samples the model at n evenly spaced times in [tMin, tMax],
// dropping times outside the model range.
func StaceyKramersCurve(tMin, tMax float64, n int) []model.CommonLead {
	return DefaultConstants.StaceyKramersCurve(tMin, tMax, n)
}

func (c Constants) StaceyKramersCurve(tMin, tMax float64, n int) []model.CommonLead {
	res := []model.CommonLead{}
	if n < 1 {
		return res
	}
	for _, t := range utils.Linspace(tMin, tMax, n) {
		if p, ok := c.StaceyKramersPoint(t); ok {
			res = append(res, p)
		}
	}
	return res
}
