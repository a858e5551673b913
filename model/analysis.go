package model

import (
	"fmt"
	"iter"
	"math"

	"github.com/uyouii/geochron/common"
	"github.com/uyouii/geochron/uncertain"
	"github.com/uyouii/geochron/utils"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Analysis is a bivariate measurement: two ratios, their 1-sigma uncertainties
// and the 2x2 covariance matrix built from them. Values are immutable; methods
// return copies.
type Analysis struct {
	Mu    [2]float64
	Sigma [2]float64
	Cov   [2][2]float64
}

// NewAnalysis builds the covariance matrix from two standard deviations and
// their correlation, so Cov[i][i] == Sigma[i]^2 and Cov is positive semi-definite.
// A NaN in any input marks missing data; it is carried through unchecked and
// Missing reports it.
func NewAnalysis(mu1, sigma1, mu2, sigma2, rho float64) (Analysis, error) {
	if utils.AnyNaN(mu1, sigma1, mu2, sigma2, rho) {
		return newAnalysis(mu1, sigma1, mu2, sigma2, rho), nil
	}
	if !(sigma1 >= 0) || !(sigma2 >= 0) {
		return Analysis{}, fmt.Errorf("%w: standard deviations (%g, %g) must be non-negative",
			common.ErrorInvalidValue, sigma1, sigma2)
	}
	if !(rho >= -1 && rho <= 1) {
		return Analysis{}, fmt.Errorf("%w: correlation %g outside [-1, 1]", common.ErrorInvalidValue, rho)
	}
	return newAnalysis(mu1, sigma1, mu2, sigma2, rho), nil
}

func newAnalysis(mu1, sigma1, mu2, sigma2, rho float64) Analysis {
	cov := rho * sigma1 * sigma2
	return Analysis{
		Mu:    [2]float64{mu1, mu2},
		Sigma: [2]float64{sigma1, sigma2},
		Cov: [2][2]float64{
			{sigma1 * sigma1, cov},
			{cov, sigma2 * sigma2},
		},
	}
}

// Missing reports whether any ratio, sigma or the correlation is NaN.
func (a Analysis) Missing() bool {
	return utils.AnyNaN(a.Mu[0], a.Mu[1], a.Sigma[0], a.Sigma[1], a.Cov[0][1])
}

// Component returns ratio i (0 or 1) with its uncertainty.
func (a Analysis) Component(i int) uncertain.Value {
	return uncertain.New(a.Mu[i], a.Sigma[i])
}

// Rho is the correlation coefficient between the two ratios.
func (a Analysis) Rho() float64 {
	if a.Sigma[0] == 0 || a.Sigma[1] == 0 {
		return 0
	}
	return a.Cov[0][1] / (a.Sigma[0] * a.Sigma[1])
}

// CovMatrix returns a fresh gonum copy of the covariance matrix.
func (a Analysis) CovMatrix() *mat.SymDense {
	return mat.NewSymDense(2, []float64{
		a.Cov[0][0], a.Cov[0][1],
		a.Cov[1][0], a.Cov[1][1],
	})
}

// Ellipse returns nPoints coordinates on the nSigma confidence ellipse around Mu.
// Nothing is drawn; the points are meant for a plotting layer.
func (a Analysis) Ellipse(nSigma float64, nPoints int) ([]Point, error) {
	if a.Missing() {
		return nil, fmt.Errorf("%w: analysis %v has missing data", common.ErrorInvalidValue, a.Mu)
	}
	if nPoints < 3 {
		return nil, fmt.Errorf("%w: ellipse needs at least 3 points, got %d", common.ErrorInvalidValue, nPoints)
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(a.CovMatrix(), true); !ok {
		return nil, fmt.Errorf("%w: covariance eigen decomposition failed", common.ErrorDomain)
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// clamp tiny negative eigenvalues from rounding on singular matrices
	r0 := nSigma * math.Sqrt(math.Max(values[0], 0))
	r1 := nSigma * math.Sqrt(math.Max(values[1], 0))

	res := make([]Point, nPoints)
	for i := range res {
		theta := 2 * math.Pi * float64(i) / float64(nPoints-1)
		c, s := r0*math.Cos(theta), r1*math.Sin(theta)
		res[i] = Point{
			X: a.Mu[0] + c*vectors.At(0, 0) + s*vectors.At(0, 1),
			Y: a.Mu[1] + c*vectors.At(1, 0) + s*vectors.At(1, 1),
		}
	}
	return res, nil
}

// Samples returns an endless sequence of bivariate-normal draws. Ranging over the
// sequence again restarts it from the same seed.
func (a Analysis) Samples(seed uint64) (iter.Seq[[2]float64], error) {
	mu := a.Mu[:]
	if a.Missing() {
		return nil, fmt.Errorf("%w: analysis %v has missing data", common.ErrorInvalidValue, a.Mu)
	}
	if a.Sigma[0] == 0 || a.Sigma[1] == 0 || math.Abs(a.Rho()) >= 1 {
		return nil, fmt.Errorf("%w: covariance of %v is singular", common.ErrorDomain, a.Mu)
	}
	if _, ok := distmv.NewNormal(mu, a.CovMatrix(), nil); !ok {
		return nil, fmt.Errorf("%w: covariance of %v is not positive definite", common.ErrorDomain, a.Mu)
	}
	return func(yield func([2]float64) bool) {
		normal, _ := distmv.NewNormal(mu, a.CovMatrix(), rand.NewSource(seed))
		draw := make([]float64, 2)
		for {
			normal.Rand(draw)
			if !yield([2]float64{draw[0], draw[1]}) {
				return
			}
		}
	}, nil
}

// UPbAnalysis holds Mu = [207Pb/235U, 206Pb/238U].
type UPbAnalysis struct {
	Analysis
}

func NewUPbAnalysis(r75, sigma75, r68, sigma68, rho float64) (UPbAnalysis, error) {
	a, err := NewAnalysis(r75, sigma75, r68, sigma68, rho)
	if err != nil {
		return UPbAnalysis{}, fmt.Errorf("U-Pb analysis: %w", err)
	}
	return UPbAnalysis{Analysis: a}, nil
}

func (a UPbAnalysis) R75() uncertain.Value { return a.Component(0) }
func (a UPbAnalysis) R68() uncertain.Value { return a.Component(1) }

// PbPbAnalysis holds Mu = [206Pb/238U, 207Pb/206Pb].
type PbPbAnalysis struct {
	Analysis
}

func NewPbPbAnalysis(r68, sigma68, r76, sigma76, rho float64) (PbPbAnalysis, error) {
	a, err := NewAnalysis(r68, sigma68, r76, sigma76, rho)
	if err != nil {
		return PbPbAnalysis{}, fmt.Errorf("Pb-Pb analysis: %w", err)
	}
	return PbPbAnalysis{Analysis: a}, nil
}

func (a PbPbAnalysis) R68() uncertain.Value { return a.Component(0) }
func (a PbPbAnalysis) R76() uncertain.Value { return a.Component(1) }
