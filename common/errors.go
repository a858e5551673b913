package common

import "errors"

var (
	// ErrorInvalidValue is returned for malformed input: mismatched lengths,
	// non-positive uncertainties, correlations outside [-1, 1].
	ErrorInvalidValue = errors.New("geochron: invalid value")

	// ErrorInvalidSelector is returned for a decay-constant label outside the registry.
	ErrorInvalidSelector = errors.New("geochron: invalid decay constant selector")

	// ErrorDomain is returned when an operation leaves its mathematical domain,
	// e.g. log(1+x) with 1+x <= 0.
	ErrorDomain = errors.New("geochron: value outside function domain")

	// ErrorInsufficientData is returned when fewer than two usable points remain.
	ErrorInsufficientData = errors.New("geochron: insufficient data")

	// ErrorNoConvergence is returned when a root search cannot bracket or reach a root.
	ErrorNoConvergence = errors.New("geochron: no convergence")
)
