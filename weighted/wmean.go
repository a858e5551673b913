package weighted

import (
	"fmt"
	"math"

	"github.com/uyouii/geochron/common"
	"github.com/uyouii/geochron/uncertain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WMean is the inverse-variance weighted mean of values with 1-sigma uncertainties
// sigmas. It returns the mean, its uncertainty and the MSWD. With corrected set the
// uncertainty is inflated by sqrt(MSWD); callers must ask for it explicitly.
func WMean(values, sigmas []float64, corrected bool) (mean, sigma, mswd float64, err error) {
	weights, err := inverseVariances(values, sigmas)
	if err != nil {
		return 0, 0, 0, err
	}
	sumOfWeights := floats.Sum(weights)
	mean = stat.Mean(values, weights)
	mswd = chiSquared(values, weights, mean) / float64(len(values)-1)

	if corrected {
		sigma = math.Sqrt(mswd / sumOfWeights)
	} else {
		sigma = math.Sqrt(1 / sumOfWeights)
	}
	return mean, sigma, mswd, nil
}

// WMeanValues is WMean over uncertain values.
func WMeanValues(values []uncertain.Value, corrected bool) (uncertain.Value, float64, error) {
	mu, sigma := Split(values)
	mean, s, mswd, err := WMean(mu, sigma, corrected)
	if err != nil {
		return uncertain.Value{}, 0, err
	}
	return uncertain.New(mean, s), mswd, nil
}

// MSWD is the mean square of weighted deviates about the weighted mean.
func MSWD(values, sigmas []float64) (float64, error) {
	weights, err := inverseVariances(values, sigmas)
	if err != nil {
		return 0, err
	}
	mean := stat.Mean(values, weights)
	return chiSquared(values, weights, mean) / float64(len(values)-1), nil
}

// Split separates uncertain values into parallel mean and sigma slices.
func Split(values []uncertain.Value) (mu, sigma []float64) {
	mu, sigma = make([]float64, len(values)), make([]float64, len(values))
	for i, v := range values {
		mu[i], sigma[i] = v.Mean, v.Sigma
	}
	return mu, sigma
}

func inverseVariances(values, sigmas []float64) ([]float64, error) {
	if len(values) != len(sigmas) {
		return nil, fmt.Errorf("%w: %d values but %d standard deviations",
			common.ErrorInvalidValue, len(values), len(sigmas))
	}
	if len(values) < 2 {
		return nil, fmt.Errorf("%w: weighted statistics need at least 2 values, got %d",
			common.ErrorInsufficientData, len(values))
	}
	weights := make([]float64, len(sigmas))
	for i, s := range sigmas {
		if !(s > 0) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("%w: standard deviation %g at index %d must be positive and finite",
				common.ErrorInvalidValue, s, i)
		}
		weights[i] = 1 / (s * s)
	}
	return weights, nil
}

func chiSquared(values, weights []float64, mean float64) float64 {
	var chi2 float64
	for i, v := range values {
		d := v - mean
		chi2 += weights[i] * d * d
	}
	return chi2
}
