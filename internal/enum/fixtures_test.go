package enum

import (
	"errors"

	"github.com/roach88/caseset/internal/ir"
)

// number is a pure enum with three computed attributes.
type number int

const (
	one number = iota + 1
	two
	three
)

func (n number) String() string {
	switch n {
	case one:
		return "one"
	case two:
		return "two"
	case three:
		return "three"
	}
	return "unknown"
}

func numberSet() *Declaration[number] {
	return Declare("Number", number.String, one, two, three).
		WithAttribute("color", func(n number) ir.IRValue {
			return ir.IRString(map[number]string{one: "red", two: "green", three: "blue"}[n])
		}).
		WithAttribute("odd", func(n number) ir.IRValue {
			return ir.IRBool(n%2 == 1)
		}).
		WithAttribute("shape", func(n number) ir.IRValue {
			return ir.IRString(map[number]string{one: "triangle", two: "square", three: "circle"}[n])
		})
}

func numbers() *Registry[number] { return New[number](numberSet()) }

// level is an int-backed enum.
type level int

const (
	low level = iota
	medium
	high
)

func (l level) String() string {
	return [...]string{"low", "medium", "high"}[l]
}

func levels() *Registry[level] {
	return New[level](Declare("Level", level.String, low, medium, high).
		WithValues(func(l level) ir.IRValue { return ir.IRInt((l + 1) * 10) }).
		WithAttribute("label", func(l level) ir.IRValue {
			return ir.IRString([...]string{"Low", "Medium", "High"}[l])
		}))
}

// digit is a string-backed enum whose values look like integers.
type digit string

const (
	digitOne digit = "first"
	digitTwo digit = "second"
)

func digits() *Registry[digit] {
	return New[digit](Declare("Digit", func(d digit) string { return string(d) }, digitOne, digitTwo).
		WithValues(func(d digit) ir.IRValue {
			if d == digitOne {
				return ir.IRString("1")
			}
			return ir.IRString("2")
		}))
}

var errBoom = errors.New("boom")
