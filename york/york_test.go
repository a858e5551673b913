package york_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uyouii/geochron/common"
	"github.com/uyouii/geochron/model"
	"github.com/uyouii/geochron/utils"
	"github.com/uyouii/geochron/york"
)

var (
	noisyX = []float64{0.9304, 2.2969, 2.8047, 3.7933, 5.3853, 6.1995, 6.7479, 8.1856, 8.7423, 10.2588}
	noisyY = []float64{0.8742, 2.1626, 3.042, 3.829, 4.6446, 6.1603, 6.7416, 7.9708, 9.0357, 9.9316}
)

func fill(n int, v float64) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = v
	}
	return res
}

func TestFit_OneToTen(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	fit, err := york.Fit(x, utils.InitOnes(10), x, utils.InitOnes(10), york.DefaultIterations)
	require.NoError(t, err)

	assert.InDelta(t, 0, fit.Intercept.Mean, 1e-9)
	assert.InDelta(t, 1, fit.Slope.Mean, 1e-9)
	assert.InDelta(t, 0, fit.MSWD, 1e-12)
	assert.Equal(t, 10, fit.N)
}

func TestFit_ExactLines(t *testing.T) {
	cases := []struct {
		name string
		a, b float64
		sx   []float64
		sy   []float64
	}{
		{"Positive", 2, 3, []float64{0.1, 0.2, 0.1, 0.3, 0.2}, []float64{0.2, 0.1, 0.3, 0.1, 0.2}},
		{"Negative", 10, -0.5, fill(5, 0.5), fill(5, 0.05)},
		{"TwoPoints", -1, 0.25, fill(2, 1), fill(2, 2)},
		{"Flat", 3, 0, []float64{0.1, 0.2, 0.1, 0.3, 0.2}, fill(5, 0.1)},
		{"FlatTwoPoints", -2, 0, fill(2, 1), fill(2, 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := len(tc.sx)
			x, y := make([]float64, n), make([]float64, n)
			for i := range x {
				x[i] = float64(i) * 1.5
				y[i] = tc.a + tc.b*x[i]
			}
			fit, err := york.Fit(x, tc.sx, y, tc.sy, york.DefaultIterations)
			require.NoError(t, err)
			assert.InDelta(t, tc.a, fit.Intercept.Mean, 1e-9)
			assert.InDelta(t, tc.b, fit.Slope.Mean, 1e-9)
			assert.InDelta(t, 0, fit.MSWD, 1e-12)
			assert.InDelta(t, tc.a+tc.b*4, fit.Predict(4), 1e-9)
		})
	}
}

func TestFit_Noisy(t *testing.T) {
	fit, err := york.Fit(noisyX, fill(10, 0.25), noisyY, fill(10, 0.25), york.DefaultIterations)
	require.NoError(t, err)
	assert.InDelta(t, -0.01722713067094528, fit.Intercept.Mean, 1e-10)
	assert.InDelta(t, 0.016453367707068525, fit.Intercept.Sigma, 1e-10)
	assert.InDelta(t, 0.985905991119465, fit.Slope.Mean, 1e-10)
	assert.InDelta(t, 0.0026322483009108546, fit.Slope.Sigma, 1e-10)
	assert.InDelta(t, 0.6189252279918519, fit.MSWD, 1e-10)

	sx := []float64{0.1, 0.2, 0.15, 0.3, 0.1, 0.25, 0.2, 0.1, 0.3, 0.2}
	sy := []float64{0.2, 0.1, 0.3, 0.15, 0.2, 0.1, 0.25, 0.2, 0.1, 0.3}
	fit, err = york.Fit(noisyX, sx, noisyY, sy, york.DefaultIterations)
	require.NoError(t, err)
	assert.InDelta(t, -0.015320668748529442, fit.Intercept.Mean, 1e-10)
	assert.InDelta(t, 0.07448001367523073, fit.Intercept.Sigma, 1e-10)
	assert.InDelta(t, 0.97964851117327, fit.Slope.Mean, 1e-10)
	assert.InDelta(t, 0.011854467667502354, fit.Slope.Sigma, 1e-10)
	assert.InDelta(t, 1.1697048306893947, fit.MSWD, 1e-10)
}

func TestFit_FixedIterationCount(t *testing.T) {
	one, err := york.Fit(noisyX, fill(10, 0.25), noisyY, fill(10, 0.25), 1)
	require.NoError(t, err)
	assert.InDelta(t, -0.02118278823928854, one.Intercept.Mean, 1e-10)
	assert.InDelta(t, 0.9866207221720034, one.Slope.Mean, 1e-10)

	ten, err := york.Fit(noisyX, fill(10, 0.25), noisyY, fill(10, 0.25), 10)
	require.NoError(t, err)
	assert.NotEqual(t, one.Slope.Mean, ten.Slope.Mean)
}

func TestFit_DropsMissingRows(t *testing.T) {
	base, err := york.Fit(noisyX, fill(10, 0.25), noisyY, fill(10, 0.25), york.DefaultIterations)
	require.NoError(t, err)

	x := append([]float64{math.NaN(), 4}, noisyX...)
	y := append([]float64{1, 4}, noisyY...)
	sx := append([]float64{0.25, 0.25}, fill(10, 0.25)...)
	sy := append([]float64{0.25, math.NaN()}, fill(10, 0.25)...)

	fit, err := york.Fit(x, sx, y, sy, york.DefaultIterations)
	require.NoError(t, err)
	assert.Equal(t, 10, fit.N)
	assert.InDelta(t, base.Slope.Mean, fit.Slope.Mean, 1e-12)
	assert.InDelta(t, base.Intercept.Mean, fit.Intercept.Mean, 1e-12)
	assert.InDelta(t, base.MSWD, fit.MSWD, 1e-12)
}

func TestFit_Errors(t *testing.T) {
	nan := math.NaN()
	cases := []struct {
		name       string
		x, sx      []float64
		y, sy      []float64
		iterations int
		want       error
	}{
		{"Empty", nil, nil, nil, nil, 10, common.ErrorInsufficientData},
		{"OneValidRow", []float64{1, nan}, []float64{1, 1}, []float64{1, 2}, []float64{1, 1}, 10, common.ErrorInsufficientData},
		{"NoSpread", []float64{1, 1, 1}, fill(3, 1), []float64{1, 2, 3}, fill(3, 1), 10, common.ErrorInsufficientData},
		{"LengthMismatch", []float64{1, 2}, []float64{1}, []float64{1, 2}, []float64{1, 1}, 10, common.ErrorInvalidValue},
		{"ZeroSigma", []float64{1, 2, 3}, []float64{1, 0, 1}, []float64{1, 2, 4}, fill(3, 1), 10, common.ErrorInvalidValue},
		{"NoIterations", []float64{1, 2, 3}, fill(3, 1), []float64{1, 2, 4}, fill(3, 1), 0, common.ErrorInvalidValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := york.Fit(tc.x, tc.sx, tc.y, tc.sy, tc.iterations)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestFitAnalyses(t *testing.T) {
	analyses := make([]model.UPbAnalysis, len(noisyX))
	for i := range noisyX {
		a, err := model.NewUPbAnalysis(noisyX[i], 0.25, noisyY[i], 0.25, 0.5)
		require.NoError(t, err)
		analyses[i] = a
	}
	fit, err := york.FitAnalyses(context.Background(), analyses, york.DefaultIterations)
	require.NoError(t, err)
	assert.InDelta(t, 0.985905991119465, fit.Slope.Mean, 1e-10)

	_, err = york.FitAnalyses(context.Background(), analyses[:1], york.DefaultIterations)
	assert.ErrorIs(t, err, common.ErrorInsufficientData)
}
