package age

import (
	"fmt"
	"math"

	"github.com/uyouii/geochron/common"
)

// findRoot is Brent's method on [a, b]. f(a) and f(b) must differ in sign.
func findRoot(f func(float64) float64, a, b float64) (float64, error) {
	fa, fb := f(a), f(b)
	if math.IsNaN(fa) || math.IsNaN(fb) {
		return math.NaN(), fmt.Errorf("%w: function undefined at bracket [%g, %g]", common.ErrorNoConvergence, a, b)
	}
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if sameSign(fa, fb) {
		return math.NaN(), fmt.Errorf("%w: bracket [%g, %g] does not contain a root (f = %g, %g)",
			common.ErrorNoConvergence, a, b, fa, fb)
	}

	c, fc := b, fb
	var d, e float64
	for i := 0; i < RootMaxIterations; i++ {
		if sameSign(fb, fc) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		tol := 2*epsilon*math.Abs(b) + 0.5*RootTolerance
		m := 0.5 * (c - b)
		if math.Abs(m) <= tol || fb == 0 {
			return b, nil
		}
		if math.Abs(e) >= tol && math.Abs(fa) > math.Abs(fb) {
			// inverse quadratic interpolation, secant when only two points are distinct
			var p, q float64
			s := fb / fa
			if a == c {
				p = 2 * m * s
				q = 1 - s
			} else {
				q = fa / fc
				r := fb / fc
				p = s * (2*m*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*m*q-math.Abs(tol*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = m
				e = d
			}
		} else {
			d = m
			e = d
		}
		a, fa = b, fb
		if math.Abs(d) > tol {
			b += d
		} else {
			b += math.Copysign(tol, m)
		}
		fb = f(b)
	}
	return b, fmt.Errorf("%w: no root within %d iterations, last estimate %g",
		common.ErrorNoConvergence, RootMaxIterations, b)
}

// findRoots scans [a, b] in steps cells and refines every sign change.
func findRoots(f func(float64) float64, a, b float64, steps int) []float64 {
	res := []float64{}
	step := (b - a) / float64(steps)
	lo, flo := a, f(a)
	for i := 1; i <= steps; i++ {
		hi := a + float64(i)*step
		if i == steps {
			hi = b
		}
		fhi := f(hi)
		if flo == 0 {
			res = append(res, lo)
		} else if !math.IsNaN(flo) && !math.IsNaN(fhi) && fhi != 0 && !sameSign(flo, fhi) {
			if root, err := findRoot(f, lo, hi); err == nil {
				res = append(res, root)
			}
		}
		lo, flo = hi, fhi
	}
	if flo == 0 {
		res = append(res, lo)
	}
	return res
}

const epsilon = 2.220446049250313e-16

func sameSign(x, y float64) bool {
	return (x > 0 && y > 0) || (x < 0 && y < 0)
}
