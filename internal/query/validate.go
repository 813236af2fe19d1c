package query

import "fmt"

// ValidationResult lists pipeline stages that are legal but cannot do
// useful work against a particular enum.
type ValidationResult struct {
	Warnings []string
}

// OK reports whether no warnings were raised.
func (r ValidationResult) OK() bool { return len(r.Warnings) == 0 }

// Validate checks a pipeline against the shape of an enum. backed tells
// whether the enum carries values.
//
// Warnings are advisory: value stages on a pure enum yield empty results
// or fail with UNSUPPORTED_OPERATION at evaluation, and single-case
// terminals after a collection source fail with INVALID_QUERY.
//
// Validate is a pure function with no side effects.
func Validate(p *Pipeline, backed bool) ValidationResult {
	v := &validator{backed: backed, warnings: []string{}}
	v.validateSource(p.Source)
	for i, op := range p.Ops {
		v.validateOp(i+2, op)
	}
	if p.Terminal != nil {
		v.validateTerminal(len(p.Ops)+2, p)
	}
	return ValidationResult{Warnings: v.warnings}
}

type validator struct {
	backed   bool
	warnings []string
}

func (v *validator) addWarning(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

func (v *validator) validateSource(s Source) {
	switch src := s.(type) {
	case ByValue:
		if !v.backed {
			v.addWarning("stage 1: byValue on a pure enum always fails")
		}
	case ByKey:
		if src.Key == "value" && !v.backed {
			v.addWarning("stage 1: key \"value\" on a pure enum always fails")
		}
	case nil:
		v.addWarning("stage 1: missing source")
	}
}

func (v *validator) validateOp(stage int, op Op) {
	if v.backed {
		return
	}
	switch o := op.(type) {
	case OnlyValues:
		v.addWarning("stage %d: value filter on a pure enum always yields no cases", stage)
	case SortByValue:
		v.addWarning("stage %d: value sort on a pure enum always yields no cases", stage)
	case Where:
		if o.Key == "value" {
			v.addWarning("stage %d: key \"value\" on a pure enum always fails", stage)
		}
	}
}

func (v *validator) validateTerminal(stage int, p *Pipeline) {
	switch p.Terminal.(type) {
	case Get, Is:
		if len(p.Ops) > 0 || !singleSource(p.Source) {
			v.addWarning("stage %d: single-case terminal after a stage that may select several cases", stage)
		}
	case Values:
		if !v.backed {
			v.addWarning("stage %d: values on a pure enum is always empty", stage)
		}
	}
}

// singleSource reports whether s always selects at most one case.
func singleSource(s Source) bool {
	switch s.(type) {
	case ByName, ByValue, From:
		return true
	}
	return false
}
