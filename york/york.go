package york

import (
	"fmt"
	"math"

	"github.com/uyouii/geochron/common"
	"github.com/uyouii/geochron/model"
	"github.com/uyouii/geochron/uncertain"
	"github.com/uyouii/geochron/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultIterations = 10

	// bound on the error correlation so that perfectly collinear data with
	// slope sigmaY/sigmaX keeps finite point weights
	maxErrorCorrelation = 1 - 1e-9
)

// Fit is the York (1968) regression y = a + b*x with errors in both variables.
//
// Rows with a NaN in any column are dropped. The x/y error correlation of every
// point is taken to be the Pearson correlation of the whole dataset. The slope is
// updated exactly iterations times; there is no convergence test.
func Fit(x, sigmaX, y, sigmaY []float64, iterations int) (model.YorkFit, error) {
	if len(sigmaX) != len(x) || len(y) != len(x) || len(sigmaY) != len(x) {
		return model.YorkFit{}, fmt.Errorf("%w: column lengths x=%d sigmaX=%d y=%d sigmaY=%d differ",
			common.ErrorInvalidValue, len(x), len(sigmaX), len(y), len(sigmaY))
	}
	if iterations < 1 {
		return model.YorkFit{}, fmt.Errorf("%w: iterations %d must be at least 1", common.ErrorInvalidValue, iterations)
	}

	x, sigmaX, y, sigmaY = dropMissing(x, sigmaX, y, sigmaY)
	n := len(x)
	if n < 2 {
		return model.YorkFit{}, fmt.Errorf("%w: %d rows without missing data, need at least 2",
			common.ErrorInsufficientData, n)
	}

	// 1. ordinary least squares for a first slope
	_, b := stat.LinearRegression(x, y, nil, false)
	if !utils.IsFinite(b) {
		return model.YorkFit{}, fmt.Errorf("%w: x values have no spread", common.ErrorInsufficientData)
	}

	// 2. terms independent of a and b
	wx, wy, alpha := make([]float64, n), make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		if !(sigmaX[i] > 0) || !(sigmaY[i] > 0) {
			return model.YorkFit{}, fmt.Errorf("%w: uncertainties (%g, %g) at row %d must be positive",
				common.ErrorInvalidValue, sigmaX[i], sigmaY[i], i)
		}
		wx[i] = 1 / (sigmaX[i] * sigmaX[i])
		wy[i] = 1 / (sigmaY[i] * sigmaY[i])
		alpha[i] = math.Sqrt(wx[i] * wy[i])
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		// y has no spread: the line is flat and the errors are uncorrelated
		r = 0
	}
	r = math.Max(-maxErrorCorrelation, math.Min(maxErrorCorrelation, r))

	// 3. fixed number of York updates
	w, u, v := make([]float64, n), make([]float64, n), make([]float64, n)
	var a, xBar, yBar float64
	for it := 0; it < iterations; it++ {
		for i := range w {
			w[i] = wx[i] * wy[i] / (b*b*wy[i] + wx[i] - 2*b*r*alpha[i])
		}
		sumW := floats.Sum(w)
		xBar = floats.Dot(w, x) / sumW
		yBar = floats.Dot(w, y) / sumW

		var sV, sU float64
		for i := range w {
			u[i], v[i] = x[i]-xBar, y[i]-yBar
			w2 := w[i] * w[i]
			sV += w2 * v[i] * (u[i]/wy[i] + b*v[i]/wx[i] - r*v[i]/alpha[i])
			sU += w2 * u[i] * (u[i]/wy[i] + b*v[i]/wx[i] - b*r*u[i]/alpha[i])
		}
		b = sV / sU
		a = yBar - b*xBar
	}

	// 4. uncertainties from the adjusted x values
	adjusted := make([]float64, n)
	for i := range w {
		beta := w[i] * (u[i]/wy[i] + b*v[i]/wx[i] - (b*u[i]+v[i])*r/alpha[i])
		adjusted[i] = xBar + beta
	}
	sumW := floats.Sum(w)
	xm := floats.Dot(w, adjusted) / sumW
	var spread float64
	for i, ax := range adjusted {
		d := ax - xm
		spread += w[i] * d * d
	}
	sigmaB := math.Sqrt(1 / spread)
	sigmaA := math.Sqrt(1/sumW + xm*xm*sigmaB*sigmaB)

	// 5. goodness of fit
	var chi2 float64
	for i := range x {
		d := y[i] - a - b*x[i]
		chi2 += d * d / (sigmaY[i]*sigmaY[i] + b*b*sigmaX[i]*sigmaX[i])
	}

	return model.YorkFit{
		Intercept: uncertain.New(a, sigmaA),
		Slope:     uncertain.New(b, sigmaB),
		MSWD:      chi2 / float64(n),
		N:         n,
	}, nil
}

func dropMissing(x, sigmaX, y, sigmaY []float64) ([]float64, []float64, []float64, []float64) {
	rx, rsx := make([]float64, 0, len(x)), make([]float64, 0, len(x))
	ry, rsy := make([]float64, 0, len(x)), make([]float64, 0, len(x))
	for i := range x {
		if utils.AnyNaN(x[i], sigmaX[i], y[i], sigmaY[i]) {
			continue
		}
		rx, rsx = append(rx, x[i]), append(rsx, sigmaX[i])
		ry, rsy = append(ry, y[i]), append(rsy, sigmaY[i])
	}
	return rx, rsx, ry, rsy
}
