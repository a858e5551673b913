package kde

import (
	"fmt"
	"math"
	"sort"

	"github.com/uyouii/geochron/common"
	"github.com/uyouii/geochron/model"
	"github.com/uyouii/geochron/uncertain"
	"github.com/uyouii/geochron/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat"
)

// AgeDensity is a weighted Gaussian kernel density estimate over a population of
// ages. Each age is weighted by its inverse variance.
type AgeDensity struct {
	Ages    []float64
	Sigmas  []float64
	Weights []float64

	gridSize int

	// bandwidth becomes bw * bwAdjust
	bwAdjust float64

	// the grid runs from max(min(ages) - cut*bw, 0) to max(ages) + cut*bw
	cut float64

	density []model.Density
	cdf     []model.Cdf
	grid    []float64
	bw      float64
	fitted  bool
	kernel  *GaussianKernel
}

// NewAgeDensity sorts the ages and drops those outside clip. Ages with a NaN mean
// are skipped; every remaining age needs a positive finite sigma.
func NewAgeDensity(ages []uncertain.Value, bwAdjust float64, cut float64, clip *model.Clip) (*AgeDensity, error) {
	usable := make([]uncertain.Value, 0, len(ages))
	for _, a := range ages {
		if math.IsNaN(a.Mean) || !clip.Contains(a.Mean) {
			continue
		}
		if !(a.Sigma > 0) || math.IsInf(a.Sigma, 0) || math.IsInf(a.Mean, 0) {
			return nil, fmt.Errorf("%w: age %v needs a finite mean and positive sigma", common.ErrorInvalidValue, a)
		}
		usable = append(usable, a)
	}
	if len(usable) < 2 {
		return nil, fmt.Errorf("%w: density needs at least 2 ages, got %d", common.ErrorInsufficientData, len(usable))
	}
	sort.Slice(usable, func(i, j int) bool { return usable[i].Mean < usable[j].Mean })

	if !(bwAdjust > 0) {
		bwAdjust = DefaultBandwidthAdjust
	}
	if !(cut > 0) {
		cut = DefaultCut
	}

	kde := &AgeDensity{
		Ages:     make([]float64, len(usable)),
		Sigmas:   make([]float64, len(usable)),
		Weights:  make([]float64, len(usable)),
		gridSize: max(len(usable), MinGridSize),
		bwAdjust: bwAdjust,
		cut:      cut,
	}
	for i, a := range usable {
		kde.Ages[i] = a.Mean
		kde.Sigmas[i] = a.Sigma
		kde.Weights[i] = 1 / a.Variance()
	}
	return kde, nil
}

// Bandwidth fits the estimate if needed and returns the kernel bandwidth.
func (kde *AgeDensity) Bandwidth() float64 {
	kde.fit()
	return kde.bw
}

func (kde *AgeDensity) fit() {
	if kde.fitted {
		return
	}

	kernel := NewGaussianKernel()
	bw := NewNormalReferenceBandWidth(kernel).BandWidth(kde.Ages)
	if !(bw > 0) {
		// identical ages: fall back to their typical uncertainty
		bw = stat.Mean(kde.Sigmas, nil)
	}
	bw *= kde.bwAdjust
	kernel.SetH(bw)
	kernel.SetWeights(kde.Weights)

	// ages are never negative
	a := math.Max(floats.Min(kde.Ages)-kde.cut*bw, 0)
	b := floats.Max(kde.Ages) + kde.cut*bw

	kde.grid = utils.Linspace(a, b, kde.gridSize)
	kde.bw = bw
	kde.kernel = kernel
	kde.fitted = true
}

// At evaluates the density at a single age.
func (kde *AgeDensity) At(age float64) float64 {
	kde.fit()
	return kde.kernel.Density(kde.Ages, age)
}

// Density evaluates the estimate on its grid and returns it with the bandwidth used.
func (kde *AgeDensity) Density() ([]model.Density, float64) {
	kde.fit()
	if kde.density != nil {
		return kde.density, kde.bw
	}

	res := make([]model.Density, len(kde.grid))
	for i, x := range kde.grid {
		res[i] = model.Density{
			Age:   x,
			Value: kde.kernel.Density(kde.Ages, x),
		}
	}
	kde.density = res
	return res, kde.bw
}

// Cdf integrates the density between consecutive grid points with fixed-order
// Gauss-Legendre quadrature. The first point is the lower grid bound.
func (kde *AgeDensity) Cdf() []model.Cdf {
	kde.fit()
	if kde.cdf != nil {
		return kde.cdf
	}

	f := func(x float64) float64 {
		return kde.kernel.Density(kde.Ages, x)
	}

	// tail mass below the grid start
	cumSum := quad.Fixed(f, kde.grid[0]-kde.cut*kde.bw, kde.grid[0], CdfQuadPoints, nil, 0)

	res := make([]model.Cdf, 0, len(kde.grid))
	res = append(res, model.Cdf{Age: kde.grid[0], Value: cumSum})
	for i := 1; i < len(kde.grid); i++ {
		cumSum += quad.Fixed(f, kde.grid[i-1], kde.grid[i], CdfQuadPoints, nil, 0)
		res = append(res, model.Cdf{
			Age:   kde.grid[i],
			Value: cumSum,
		})
	}

	kde.cdf = res
	return res
}

// Quantile inverts the CDF by linear interpolation between grid points.
// p outside the tabulated range maps to the nearest grid end.
func (kde *AgeDensity) Quantile(p float64) (*model.QuantileValue, error) {
	if !(p > 0 && p < 1) {
		return nil, fmt.Errorf("%w: quantile %g outside (0, 1)", common.ErrorInvalidValue, p)
	}
	cdf := kde.Cdf()

	if p <= cdf[0].Value {
		return &model.QuantileValue{Quantile: p, Age: cdf[0].Age}, nil
	}
	for i := 1; i < len(cdf); i++ {
		if cdf[i].Value > p {
			lowerX, lowerP := cdf[i-1].Age, cdf[i-1].Value
			upperX, upperP := cdf[i].Age, cdf[i].Value
			return &model.QuantileValue{
				Quantile: p,
				Age:      lowerX + (upperX-lowerX)*(p-lowerP)/(upperP-lowerP),
			}, nil
		}
	}
	return &model.QuantileValue{Quantile: p, Age: cdf[len(cdf)-1].Age}, nil
}
