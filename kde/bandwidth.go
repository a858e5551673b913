package kde

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

type BandWidth interface {
	BandWidth(sortedAges []float64) float64
}

// NormalReferenceBandWidth is Silverman's rule of thumb, C * min(sd, IQR/1.349) * n^-1/5.
type NormalReferenceBandWidth struct {
	kernel Kernel
}

func NewNormalReferenceBandWidth(kernel Kernel) *NormalReferenceBandWidth {
	if kernel == nil {
		kernel = NewGaussianKernel()
	}
	return &NormalReferenceBandWidth{kernel: kernel}
}

func (bw *NormalReferenceBandWidth) BandWidth(sortedAges []float64) float64 {
	c := bw.kernel.NormalReferenceConstant()
	a := selectSigma(sortedAges)
	return c * a * math.Pow(float64(len(sortedAges)), -0.2)
}

func selectSigma(x []float64) float64 {
	const normalize = 1.349

	q75 := stat.Quantile(0.75, stat.Empirical, x, nil)
	q25 := stat.Quantile(0.25, stat.Empirical, x, nil)
	iqr := (q75 - q25) / normalize

	stdDev := stat.StdDev(x, nil)
	if iqr > 0 && iqr < stdDev {
		return iqr
	}
	return stdDev
}
