package model

import (
	"fmt"
	"math"

	"github.com/uyouii/geochron/uncertain"
)

type Point struct {
	X float64
	Y float64
}

// YorkFit is the result of a York regression y = Intercept + Slope*x.
type YorkFit struct {
	Intercept uncertain.Value `json:"intercept"`
	Slope     uncertain.Value `json:"slope"`
	MSWD      float64         `json:"mswd"`
	N         int             `json:"n"` // rows left after dropping missing data
}

func (f YorkFit) DebugString() string {
	return fmt.Sprintf("intercept: %v, slope: %v, mswd: %v, n: %v", f.Intercept, f.Slope, f.MSWD, f.N)
}

// Predict evaluates the fitted line at x, central values only.
func (f YorkFit) Predict(x float64) float64 {
	return f.Intercept.Mean + f.Slope.Mean*x
}

// SampleAge collects the per-analysis results of the age engine.
type SampleAge struct {
	Index       int             `json:"index"`
	Age75       uncertain.Value `json:"age75"`
	Age68       uncertain.Value `json:"age68"`
	Discordance float64         `json:"discordance"`
}

// CommonLead is a point on a common-lead evolution curve.
type CommonLead struct {
	T   float64 `json:"t"`
	R64 float64 `json:"r64"` // 206Pb/204Pb
	R74 float64 `json:"r74"` // 207Pb/204Pb
}

func (c CommonLead) Valid() bool {
	return !math.IsNaN(c.R64) && !math.IsNaN(c.R74)
}

// WeightedMean is the output of an inverse-variance weighted mean.
type WeightedMean struct {
	Mean      uncertain.Value `json:"mean"`
	MSWD      float64         `json:"mswd"`
	N         int             `json:"n"`
	Corrected bool            `json:"corrected"`
}
