// Package filter narrows a list of differences with a user supplied boolean
// expression, e.g.
//
//	Prefix("DB_", "REDIS_") && !Removed()
//	Keys("PORT") || (Modified() && Left != "")
//
// The expression language is github.com/expr-lang/expr; see [Env] for the
// available fields and helpers.
package filter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/envwrangler/envwrangler/pkg/envdiff"
)

// DefaultExpression keeps every difference.
const DefaultExpression = "All()"

type Filter struct {
	source  string
	program *vm.Program
}

// Compile checks the expression once so evaluation errors are limited to
// runtime problems.
func Compile(expression string) (*Filter, error) {
	if expression == "" {
		expression = DefaultExpression
	}
	prog, err := expr.Compile(expression, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling filter expression %q: %w", expression, err)
	}
	return &Filter{source: expression, program: prog}, nil
}

func (f *Filter) String() string {
	return f.source
}

// Match evaluates the expression for a single difference.
func (f *Filter) Match(d envdiff.Difference) (bool, error) {
	out, err := expr.Run(f.program, newEnv(d))
	if err != nil {
		return false, fmt.Errorf("evaluating filter for key %q: %w", d.Key, err)
	}
	pass, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("filter returned %T, expected bool", out)
	}
	return pass, nil
}

// Apply returns the differences the expression accepts, keeping their order.
func (f *Filter) Apply(diffs []envdiff.Difference) ([]envdiff.Difference, error) {
	if len(diffs) == 0 {
		return diffs, nil
	}
	kept := make([]envdiff.Difference, 0, len(diffs))
	for _, d := range diffs {
		pass, err := f.Match(d)
		if err != nil {
			return nil, err
		}
		if pass {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		return nil, nil
	}
	return kept, nil
}
