package age

import (
	"fmt"

	"github.com/uyouii/geochron/decay"
	"github.com/uyouii/geochron/model"
	"github.com/uyouii/geochron/uncertain"
)

// Ratio68 is an analysis carrying a 206Pb/238U ratio; both UPbAnalysis and
// PbPbAnalysis satisfy it.
type Ratio68 interface {
	R68() uncertain.Value
}

// Constants are the resolved decay constants used by the age equations.
type Constants struct {
	Lambda238 uncertain.Value
	Lambda235 uncertain.Value
}

// DefaultConstants are Jaffey et al. (1971) for 238U and Schoene et al. (2006) for 235U.
var DefaultConstants = Constants{
	Lambda238: decay.Lambda238Jaffey,
	Lambda235: decay.Lambda235Schoene,
}

func NewConstants(lambda238, lambda235 decay.Selector) (Constants, error) {
	l238, err := lambda238.Resolve()
	if err != nil {
		return Constants{}, fmt.Errorf("238U decay constant: %w", err)
	}
	l235, err := lambda235.Resolve()
	if err != nil {
		return Constants{}, fmt.Errorf("235U decay constant: %w", err)
	}
	return Constants{Lambda238: l238, Lambda235: l235}, nil
}

// ratioAge solves the isotopic age equation t = log(1 + ratio) / lambda.
// The uncertainty of lambda is propagated as independent of the ratio.
func ratioAge(ratio, lambda uncertain.Value) (uncertain.Value, error) {
	l, err := uncertain.Log1p(ratio)
	if err != nil {
		return uncertain.Value{}, err
	}
	return uncertain.Div(l, lambda)
}

// Age68 is the 206Pb/238U age in Myr.
func Age68(a Ratio68, lambda decay.Selector) (uncertain.Value, error) {
	l, err := lambda.Resolve()
	if err != nil {
		return uncertain.Value{}, err
	}
	return ratioAge(a.R68(), l)
}

// Age75 is the 207Pb/235U age in Myr.
func Age75(a model.UPbAnalysis, lambda decay.Selector) (uncertain.Value, error) {
	l, err := lambda.Resolve()
	if err != nil {
		return uncertain.Value{}, err
	}
	return ratioAge(a.R75(), l)
}

// Age returns the two independent ages (207/235, 206/238) with the default constants.
func Age(a model.UPbAnalysis) (age75, age68 uncertain.Value, err error) {
	return DefaultConstants.Age(a)
}

func (c Constants) Age(a model.UPbAnalysis) (age75, age68 uncertain.Value, err error) {
	age75, err = ratioAge(a.R75(), c.Lambda235)
	if err != nil {
		return uncertain.Value{}, uncertain.Value{}, fmt.Errorf("207Pb/235U age: %w", err)
	}
	age68, err = ratioAge(a.R68(), c.Lambda238)
	if err != nil {
		return uncertain.Value{}, uncertain.Value{}, fmt.Errorf("206Pb/238U age: %w", err)
	}
	return age75, age68, nil
}

// Discordance is 100 * (t75 - t68) / t75 in percent, from central values only.
func Discordance(a model.UPbAnalysis) (float64, error) {
	return DefaultConstants.Discordance(a)
}

func (c Constants) Discordance(a model.UPbAnalysis) (float64, error) {
	age75, age68, err := c.Age(a)
	if err != nil {
		return 0, err
	}
	return 100 * (age75.Mean - age68.Mean) / age75.Mean, nil
}
