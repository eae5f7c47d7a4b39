package engine

import (
	"math"
	"slices"

	"github.com/roach88/horizon/internal/ir"
)

// ParamKind is the IR type an argument must have.
type ParamKind string

const (
	KindNumber ParamKind = "number"
	KindString ParamKind = "string"
)

// Rule restricts the domain of a numeric argument.
type Rule string

const (
	// Any accepts every number, including the "+Inf", "-Inf" and "NaN" encodings.
	Any Rule = "any"
	// Positive accepts finite numbers > 0.
	Positive Rule = "positive"
	// NonNegative accepts finite numbers >= 0.
	NonNegative Rule = "non_negative"
)

// Param describes one named argument of an operation.
type Param struct {
	Name     string    `json:"name"`
	Kind     ParamKind `json:"kind"`
	Rule     Rule      `json:"rule,omitempty"`
	Optional bool      `json:"optional,omitempty"`
	Doc      string    `json:"doc"`
}

func number(name string, rule Rule, doc string) Param {
	return Param{Name: name, Kind: KindNumber, Rule: rule, Doc: doc}
}

func optionalNumber(name string, rule Rule, doc string) Param {
	return Param{Name: name, Kind: KindNumber, Rule: rule, Optional: true, Doc: doc}
}

func str(name, doc string) Param {
	return Param{Name: name, Kind: KindString, Doc: doc}
}

// Args holds validated operation arguments.
type Args struct {
	nums map[string]float64
	strs map[string]string
}

// Num returns a numeric argument. Missing optional arguments return 0.
func (a Args) Num(name string) float64 {
	return a.nums[name]
}

// Has reports whether an optional argument was supplied.
func (a Args) Has(name string) bool {
	_, n := a.nums[name]
	_, s := a.strs[name]
	return n || s
}

// Str returns a string argument.
func (a Args) Str(name string) string {
	return a.strs[name]
}

// bind checks raw arguments against params. Unknown keys, missing required
// keys, wrong types and out-of-domain numbers are InvalidArgument errors.
func bind(op string, params []Param, raw ir.IRObject) (Args, error) {
	args := Args{nums: map[string]float64{}, strs: map[string]string{}}

	for _, key := range raw.SortedKeys() {
		if !slices.ContainsFunc(params, func(p Param) bool { return p.Name == key }) {
			return Args{}, invalidArgument(op, "unexpected argument %q", key)
		}
	}

	for _, p := range params {
		v, ok := raw[p.Name]
		if !ok {
			if p.Optional {
				continue
			}
			return Args{}, invalidArgument(op, "missing argument %q", p.Name)
		}

		switch p.Kind {
		case KindString:
			s, ok := v.(ir.IRString)
			if !ok {
				return Args{}, invalidArgument(op, "argument %q must be a string", p.Name)
			}
			args.strs[p.Name] = string(s)
		case KindNumber:
			f, ok := ir.AsFloat(v)
			if !ok {
				return Args{}, invalidArgument(op, "argument %q must be a number", p.Name)
			}
			if err := checkRule(op, p, f); err != nil {
				return Args{}, err
			}
			args.nums[p.Name] = f
		}
	}
	return args, nil
}

func checkRule(op string, p Param, f float64) error {
	switch p.Rule {
	case Positive:
		if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
			return invalidArgument(op, "argument %q must be finite and > 0, got %v", p.Name, f)
		}
	case NonNegative:
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return invalidArgument(op, "argument %q must be finite and >= 0, got %v", p.Name, f)
		}
	}
	return nil
}
