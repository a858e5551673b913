package decay

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/uyouii/geochron/common"
	"github.com/uyouii/geochron/uncertain"
)

type Constant struct {
	Label string
	Value uncertain.Value
}

// registry is filled once at init and only read afterwards.
var registry = map[string]Constant{}

func init() {
	for _, c := range []Constant{
		{Label: LabelJaffey238, Value: Lambda238Jaffey},
		{Label: LabelJaffey235, Value: Lambda235Jaffey},
		{Label: LabelSchoene235, Value: Lambda235Schoene},
		{Label: LabelSchoene235Internal, Value: Lambda235SchoeneInternal},
	} {
		registry[c.Label] = c
	}
}

func Lookup(label string) (Constant, error) {
	c, ok := registry[label]
	if !ok {
		return Constant{}, fmt.Errorf("%w: unknown label %q, want one of %v",
			common.ErrorInvalidSelector, label, Labels())
	}
	return c, nil
}

// Labels lists the registered constants in sorted order.
func Labels() []string {
	res := make([]string, 0, len(registry))
	for label := range registry {
		res = append(res, label)
	}
	sort.Strings(res)
	return res
}

// Selector picks a decay constant either by registry label or as a literal value.
// The zero Selector is invalid.
type Selector struct {
	label   string
	literal uncertain.Value
	isLit   bool
}

var (
	Default238 = Named(LabelJaffey238)
	Default235 = Named(LabelSchoene235)
)

func Named(label string) Selector {
	return Selector{label: label}
}

func Literal(value, sigma float64) Selector {
	return Selector{literal: uncertain.New(value, sigma), isLit: true}
}

// ParseSelector reads a label, or a number taken as a literal constant without uncertainty.
func ParseSelector(s string) Selector {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return Literal(v, 0)
	}
	return Named(s)
}

func (s Selector) IsLiteral() bool {
	return s.isLit
}

func (s Selector) Resolve() (uncertain.Value, error) {
	if s.isLit {
		if s.literal.Mean <= 0 {
			return uncertain.Value{}, fmt.Errorf("%w: literal decay constant %v must be positive",
				common.ErrorInvalidSelector, s.literal)
		}
		return s.literal, nil
	}
	c, err := Lookup(s.label)
	if err != nil {
		return uncertain.Value{}, err
	}
	return c.Value, nil
}

func (s Selector) String() string {
	if s.isLit {
		return s.literal.String()
	}
	return s.label
}
