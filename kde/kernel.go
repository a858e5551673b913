package kde

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type Kernel interface {
	Shape(u float64) float64
	NormalReferenceConstant() float64
}

// GaussianKernel is a standard normal kernel scaled by bandwidth h. Weights are
// normalised to sum to one when set.
type GaussianKernel struct {
	l2Norm                  float64
	kernelVar               float64
	order                   int
	normalReferenceConstant float64
	h                       float64
	weights                 []float64
}

func NewGaussianKernel() *GaussianKernel {
	return &GaussianKernel{
		l2Norm:    1.0 / (2.0 * math.Sqrt(math.Pi)),
		kernelVar: 1.0,
		order:     2,
		h:         1.0,
	}
}

func (k *GaussianKernel) SetH(h float64) {
	k.h = h
}

func (k *GaussianKernel) SetWeights(weights []float64) {
	sum := floats.Sum(weights)
	kernelWeights := make([]float64, len(weights))
	if sum != 0 {
		floats.ScaleTo(kernelWeights, 1/sum, weights)
	}
	k.weights = kernelWeights
}

func (k *GaussianKernel) Shape(u float64) float64 {
	return 0.3989422804014327 * math.Exp(-u*u/2.0)
}

// NormalReferenceConstant is the Silverman constant of the kernel, 1.059 for a Gaussian.
func (k *GaussianKernel) NormalReferenceConstant() float64 {
	nu := k.order
	if k.normalReferenceConstant == 0 {
		numerator := math.Sqrt(math.Pi) * math.Pow(factorial(nu), 3) * k.l2Norm
		denom := 2.0 * float64(nu) * factorial(2*nu) * math.Pow(k.moment(nu), 2)
		k.normalReferenceConstant = 2 * math.Pow(numerator/denom, 1.0/float64(2*nu+1))
	}
	return k.normalReferenceConstant
}

func (k *GaussianKernel) moment(n int) float64 {
	switch n {
	case 1:
		return 0
	case 2:
		return k.kernelVar
	}
	return 1.0
}

// Density evaluates the kernel sum of ages at x.
func (k *GaussianKernel) Density(ages []float64, x float64) float64 {
	if len(ages) == 0 {
		return math.NaN()
	}

	var sum float64
	if k.weights != nil {
		for i, a := range ages {
			sum += k.Shape((a-x)/k.h) * k.weights[i]
		}
		return sum / k.h
	}
	for _, a := range ages {
		sum += k.Shape((a - x) / k.h)
	}
	return sum / (k.h * float64(len(ages)))
}

func factorial(n int) float64 {
	result := 1.0
	for i := 2; i <= n; i++ {
		result *= float64(i)
	}
	return result
}
