package query

import (
	"github.com/roach88/caseset/internal/enum"
	"github.com/roach88/caseset/internal/ir"
)

// Evaluate runs p against r and renders the outcome as an IRValue.
// Lookup errors are returned unchanged so callers can classify them with
// CodeOf.
func Evaluate[C comparable](r *enum.Registry[C], p *Pipeline) (ir.IRValue, error) {
	sel, err := evalSource(r, p.Source)
	if err != nil {
		return nil, err
	}

	for i, op := range p.Ops {
		sel, err = evalOp(r, sel, op, i+2)
		if err != nil {
			return nil, err
		}
	}

	if p.Terminal == nil {
		return sel.render(r), nil
	}
	return evalTerminal(r, sel, p.Terminal, len(p.Ops)+2)
}

// Run parses and evaluates src.
func Run[C comparable](r *enum.Registry[C], src string) (ir.IRValue, error) {
	p, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Evaluate(r, p)
}

// selection is the set of cases flowing through a pipeline. Lookup
// sources render by cardinality; collections always render as a list.
type selection[C comparable] struct {
	cases      enum.Collection[C]
	collection bool
}

func (s selection[C]) render(r *enum.Registry[C]) ir.IRValue {
	if s.collection {
		return renderCases(s.cases.Names())
	}
	return renderResult(r, s.cases)
}

func renderResult[C comparable](r *enum.Registry[C], cases enum.Collection[C]) ir.IRValue {
	switch cases.Count() {
	case 0:
		return ir.IRNull{}
	case 1:
		c, _ := cases.First()
		return ir.IRObject{"case": ir.IRString(r.Set().CaseName(c))}
	default:
		return renderCases(cases.Names())
	}
}

func renderCases(names []string) ir.IRValue {
	arr := make(ir.IRArray, len(names))
	for i, n := range names {
		arr[i] = ir.IRString(n)
	}
	return ir.IRObject{"cases": arr}
}

func lookup[C comparable](r *enum.Registry[C], c C, ok bool) selection[C] {
	if !ok {
		return selection[C]{cases: enum.NewCollection(r.Set(), nil)}
	}
	return selection[C]{cases: enum.NewCollection(r.Set(), []C{c})}
}

func evalSource[C comparable](r *enum.Registry[C], s Source) (selection[C], error) {
	switch src := s.(type) {
	case Collect:
		return selection[C]{cases: r.Collect(), collection: true}, nil

	case ByName:
		if src.Try {
			c, ok := r.TryByName(src.Name)
			return lookup(r, c, ok), nil
		}
		c, err := r.ByName(src.Name)
		if err != nil {
			return selection[C]{}, err
		}
		return lookup(r, c, true), nil

	case ByValue:
		if src.Try {
			c, ok, err := r.TryByValue(src.Value)
			if err != nil {
				return selection[C]{}, err
			}
			return lookup(r, c, ok), nil
		}
		c, err := r.ByValue(src.Value)
		if err != nil {
			return selection[C]{}, err
		}
		return lookup(r, c, true), nil

	case From:
		if src.Try {
			c, ok, err := r.TryFrom(src.Value)
			if err != nil {
				return selection[C]{}, err
			}
			return lookup(r, c, ok), nil
		}
		c, err := r.From(src.Value)
		if err != nil {
			return selection[C]{}, err
		}
		return lookup(r, c, true), nil

	case ByKey:
		key := enum.Attr[C](src.Key)
		var res enum.Result[C]
		var err error
		if src.Try {
			res, err = r.TryByKey(key, src.Target)
		} else {
			res, err = r.ByKey(key, src.Target)
		}
		if err != nil {
			return selection[C]{}, err
		}
		return selection[C]{cases: res.All()}, nil

	case Dynamic:
		res, err := r.Call(src.Name, src.Args...)
		if err != nil {
			return selection[C]{}, err
		}
		return selection[C]{cases: res.All()}, nil

	default:
		return selection[C]{}, invalidf(1, "unsupported source %T", s)
	}
}

func evalOp[C comparable](r *enum.Registry[C], sel selection[C], op Op, stage int) (selection[C], error) {
	cases := sel.cases
	out := selection[C]{collection: true}

	switch o := op.(type) {
	case Only:
		if o.Except {
			out.cases = cases.Except(o.Names...)
		} else {
			out.cases = cases.Only(o.Names...)
		}
	case OnlyValues:
		if o.Except {
			out.cases = cases.ExceptValues(o.Values...)
		} else {
			out.cases = cases.OnlyValues(o.Values...)
		}
	case Where:
		filtered, err := cases.FilterBy(enum.Attr[C](o.Key), o.Target)
		if err != nil {
			return selection[C]{}, err
		}
		out.cases = filtered
	case Sort:
		if o.Key == "" {
			if o.Desc {
				out.cases = cases.SortDesc()
			} else {
				out.cases = cases.Sort()
			}
			break
		}
		var sorted enum.Collection[C]
		var err error
		if o.Desc {
			sorted, err = cases.SortDescBy(enum.Attr[C](o.Key))
		} else {
			sorted, err = cases.SortBy(enum.Attr[C](o.Key))
		}
		if err != nil {
			return selection[C]{}, err
		}
		out.cases = sorted
	case SortByValue:
		if o.Desc {
			out.cases = cases.SortDescByValue()
		} else {
			out.cases = cases.SortByValue()
		}
	default:
		return selection[C]{}, invalidf(stage, "unsupported op %T", op)
	}

	return out, nil
}

func evalTerminal[C comparable](r *enum.Registry[C], sel selection[C], t Terminal, stage int) (ir.IRValue, error) {
	cases := sel.cases

	switch term := t.(type) {
	case Count:
		return ir.IRInt(cases.Count()), nil

	case Names:
		names := cases.Names()
		arr := make(ir.IRArray, len(names))
		for i, n := range names {
			arr[i] = ir.IRString(n)
		}
		return arr, nil

	case Values:
		return ir.IRArray(cases.Values()), nil

	case Keys:
		keys, err := cases.Keys(enum.Attr[C](term.Key))
		if err != nil {
			return nil, err
		}
		return ir.IRArray(keys), nil

	case Pluck:
		if term.Key == "" {
			values, err := cases.Pluck(enum.Attr[C](term.Value))
			if err != nil {
				return nil, err
			}
			return ir.IRArray(values), nil
		}
		m, err := cases.PluckMap(enum.Attr[C](term.Value), enum.Attr[C](term.Key))
		if err != nil {
			return nil, err
		}
		obj := ir.IRObject{}
		for k, v := range m.All() {
			obj[objectKey(k)] = v
		}
		return obj, nil

	case CasesBy:
		groups, err := cases.CasesBy(enum.Attr[C](term.Key))
		if err != nil {
			return nil, err
		}
		obj := ir.IRObject{}
		for k, res := range groups.All() {
			obj[objectKey(k)] = renderResult(r, res.All())
		}
		return obj, nil

	case Has:
		return ir.IRBool(cases.Has(term.Target) != term.Negate), nil

	case Get:
		c, err := single(cases, "get", stage)
		if err != nil {
			return nil, err
		}
		return r.Get(c, enum.Attr[C](term.Key))

	case Is:
		c, err := single(cases, "is", stage)
		if err != nil {
			return nil, err
		}
		targets := make([]any, len(term.Targets))
		for i, v := range term.Targets {
			targets[i] = v
		}
		return ir.IRBool(r.In(c, targets...) != term.Negate), nil

	default:
		return nil, invalidf(stage, "unsupported terminal %T", t)
	}
}

func single[C comparable](cases enum.Collection[C], name string, stage int) (C, error) {
	if cases.Count() != 1 {
		var zero C
		return zero, invalidf(stage, "%s requires exactly one case, got %d", name, cases.Count())
	}
	c, _ := cases.First()
	return c, nil
}

// objectKey renders a mapping key as an object field name.
func objectKey(v ir.IRValue) string {
	if s, ok := v.(ir.IRString); ok {
		return string(s)
	}
	return ir.Format(v)
}
