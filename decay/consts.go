package decay

import "github.com/uyouii/geochron/uncertain"

const (
	LabelJaffey238          = "jaffey-238"
	LabelJaffey235          = "jaffey-235"
	LabelSchoene235         = "schoene-235"
	LabelSchoene235Internal = "schoene-235-internal"

	// R238_235 is the present-day 238U/235U ratio.
	R238_235 = 137.818
)

// Decay constants in 1/Myr with 1-sigma uncertainties (published values are 2-sigma).
var (
	// Jaffey et al. (1971)
	Lambda238Jaffey = uncertain.New(1.55125e-4, 0.0017e-4/2)
	Lambda235Jaffey = uncertain.New(9.8485e-4, 0.0135e-4/2)

	// Schoene et al. (2006); the internal value excludes the 238U constant uncertainty.
	Lambda235Schoene         = uncertain.New(9.8569e-4, 0.0110e-4/2)
	Lambda235SchoeneInternal = uncertain.New(9.8569e-4, 0.0017e-4/2)
)
