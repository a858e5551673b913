package model

import "fmt"

// Clip bounds the ages that enter a density estimate.
type Clip struct {
	Lower float64
	Upper float64
}

func (c *Clip) Contains(age float64) bool {
	return c == nil || (age >= c.Lower && age <= c.Upper)
}

type Density struct {
	Age   float64 `json:"age"`
	Value float64 `json:"value"`
}

type Cdf struct {
	Age   float64 `json:"age"`
	Value float64 `json:"value"`
}

type QuantileValue struct {
	Age      float64 `json:"age"`
	Quantile float64 `json:"q"`
}

// AgeQuantiles maps a quantile, formatted with %v, to its age.
type AgeQuantiles struct {
	QuantileValues map[string]*QuantileValue `json:"quantiles,omitempty"`
}

func (c *AgeQuantiles) Get(q float64) (*QuantileValue, bool) {
	if c == nil || c.QuantileValues == nil {
		return nil, false
	}
	v, ok := c.QuantileValues[fmt.Sprintf("%v", q)]
	return v, ok
}
