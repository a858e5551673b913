package uncertain

import (
	"fmt"
	"math"

	"github.com/uyouii/geochron/common"
)

// Value is a central value with a 1-sigma standard deviation.
// Propagation is first order (linearized Gaussian); it is exact only for
// linear combinations of jointly normal variables.
type Value struct {
	Mean  float64 `json:"mean"`
	Sigma float64 `json:"sigma"`
}

func New(mean, sigma float64) Value {
	return Value{Mean: mean, Sigma: math.Abs(sigma)}
}

// Exact returns a value without uncertainty.
func Exact(mean float64) Value {
	return Value{Mean: mean}
}

func (v Value) Variance() float64 {
	return v.Sigma * v.Sigma
}

// RelSigma is sigma/|mean|.
func (v Value) RelSigma() float64 {
	return v.Sigma / math.Abs(v.Mean)
}

func (v Value) IsNaN() bool {
	return math.IsNaN(v.Mean) || math.IsNaN(v.Sigma)
}

func (v Value) String() string {
	return fmt.Sprintf("%g ± %g", v.Mean, v.Sigma)
}

func (v Value) Neg() Value {
	return Value{Mean: -v.Mean, Sigma: v.Sigma}
}

// Scale multiplies by an exact constant.
func (v Value) Scale(k float64) Value {
	return Value{Mean: k * v.Mean, Sigma: math.Abs(k) * v.Sigma}
}

func Add(a, b Value) Value {
	return Value{Mean: a.Mean + b.Mean, Sigma: math.Hypot(a.Sigma, b.Sigma)}
}

func Sub(a, b Value) Value {
	return Value{Mean: a.Mean - b.Mean, Sigma: math.Hypot(a.Sigma, b.Sigma)}
}

func Mul(a, b Value) Value {
	m := a.Mean * b.Mean
	// absolute form avoids 0/0 when either mean is zero
	return Value{Mean: m, Sigma: math.Hypot(b.Mean*a.Sigma, a.Mean*b.Sigma)}
}

func Div(a, b Value) (Value, error) {
	if b.Mean == 0 {
		return Value{}, fmt.Errorf("%w: divisor %v has zero central value", common.ErrorDomain, b)
	}
	m := a.Mean / b.Mean
	return Value{Mean: m, Sigma: math.Hypot(a.Sigma/b.Mean, m*b.Sigma/b.Mean)}, nil
}

// AddCorrelated adds two values whose errors share correlation rho.
func AddCorrelated(a, b Value, rho float64) (Value, error) {
	if err := checkRho(rho); err != nil {
		return Value{}, err
	}
	return Value{
		Mean:  a.Mean + b.Mean,
		Sigma: sqrtVar(a.Variance() + b.Variance() + 2*rho*a.Sigma*b.Sigma),
	}, nil
}

// SubCorrelated subtracts b from a; a positive rho cancels common error.
func SubCorrelated(a, b Value, rho float64) (Value, error) {
	if err := checkRho(rho); err != nil {
		return Value{}, err
	}
	return Value{
		Mean:  a.Mean - b.Mean,
		Sigma: sqrtVar(a.Variance() + b.Variance() - 2*rho*a.Sigma*b.Sigma),
	}, nil
}

func MulCorrelated(a, b Value, rho float64) (Value, error) {
	if err := checkRho(rho); err != nil {
		return Value{}, err
	}
	m := a.Mean * b.Mean
	// d(ab) = b·da + a·db
	da, db := b.Mean*a.Sigma, a.Mean*b.Sigma
	return Value{Mean: m, Sigma: sqrtVar(da*da + db*db + 2*rho*da*db)}, nil
}

func DivCorrelated(a, b Value, rho float64) (Value, error) {
	if err := checkRho(rho); err != nil {
		return Value{}, err
	}
	if b.Mean == 0 {
		return Value{}, fmt.Errorf("%w: divisor %v has zero central value", common.ErrorDomain, b)
	}
	m := a.Mean / b.Mean
	// d(a/b) = da/b - (a/b²)·db
	da, db := a.Sigma/b.Mean, m*b.Sigma/b.Mean
	return Value{Mean: m, Sigma: sqrtVar(da*da + db*db - 2*rho*da*db)}, nil
}

// Log is the natural logarithm.
func Log(v Value) (Value, error) {
	if v.Mean <= 0 {
		return Value{}, fmt.Errorf("%w: log of %v requires a positive mean", common.ErrorDomain, v)
	}
	return Value{Mean: math.Log(v.Mean), Sigma: v.Sigma / v.Mean}, nil
}

// Log1p is log(1+v), the form used by the isotopic age equation.
// Callers must ensure 1+mean > 0.
func Log1p(v Value) (Value, error) {
	if 1+v.Mean <= 0 {
		return Value{}, fmt.Errorf("%w: log(1+x) of %v requires 1+x > 0", common.ErrorDomain, v)
	}
	return Value{Mean: math.Log1p(v.Mean), Sigma: v.Sigma / (1 + v.Mean)}, nil
}

func Exp(v Value) Value {
	m := math.Exp(v.Mean)
	return Value{Mean: m, Sigma: m * v.Sigma}
}

// Expm1 is exp(v)-1, the ingrowth factor of a parent-daughter system.
func Expm1(v Value) Value {
	return Value{Mean: math.Expm1(v.Mean), Sigma: math.Exp(v.Mean) * v.Sigma}
}

func Sqrt(v Value) (Value, error) {
	if v.Mean < 0 {
		return Value{}, fmt.Errorf("%w: sqrt of %v requires a non-negative mean", common.ErrorDomain, v)
	}
	m := math.Sqrt(v.Mean)
	if m == 0 {
		if v.Sigma == 0 {
			return Value{}, nil
		}
		return Value{}, fmt.Errorf("%w: sqrt of %v has an unbounded derivative at zero", common.ErrorDomain, v)
	}
	return Value{Mean: m, Sigma: v.Sigma / (2 * m)}, nil
}

// Pow raises v to an exact power p.
func Pow(v Value, p float64) (Value, error) {
	if v.Mean < 0 && p != math.Trunc(p) {
		return Value{}, fmt.Errorf("%w: %v raised to non-integer power %g", common.ErrorDomain, v, p)
	}
	if v.Mean == 0 && p < 1 {
		return Value{}, fmt.Errorf("%w: %v raised to power %g has an unbounded derivative at zero",
			common.ErrorDomain, v, p)
	}
	m := math.Pow(v.Mean, p)
	return Value{Mean: m, Sigma: math.Abs(p*math.Pow(v.Mean, p-1)) * v.Sigma}, nil
}

func checkRho(rho float64) error {
	if math.IsNaN(rho) || rho < -1 || rho > 1 {
		return fmt.Errorf("%w: correlation %g outside [-1, 1]", common.ErrorInvalidValue, rho)
	}
	return nil
}

// sqrtVar clamps the small negative variances rounding leaves behind
// when fully correlated errors cancel.
func sqrtVar(v float64) float64 {
	if v < 0 {
		return 0
	}
	return math.Sqrt(v)
}
