package query

import (
	"strings"

	"github.com/roach88/caseset/internal/enum"
	"github.com/roach88/caseset/internal/ir"
)

// token is one word of a stage. Quoted tokens keep their raw JSON text.
type token struct {
	text   string
	quoted bool
}

// str returns the token as a plain string, unquoting if needed.
func (t token) str() string {
	if !t.quoted {
		return t.text
	}
	if s, ok := ir.ParseLiteral(t.text).(ir.IRString); ok {
		return string(s)
	}
	return t.text
}

// literal returns the token as a value. Quoted tokens are always strings.
func (t token) literal() ir.IRValue {
	if t.quoted {
		return ir.IRString(t.str())
	}
	return ir.ParseLiteral(t.text)
}

// Parse reads a pipeline.
func Parse(src string) (*Pipeline, error) {
	stages, err := split(src)
	if err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, parseErrorf(0, "empty query")
	}

	p := &Pipeline{}
	for i, words := range stages {
		stage := i + 1
		if len(words) == 0 {
			return nil, parseErrorf(stage, "empty stage")
		}
		if i == 0 {
			source, err := parseSource(stage, words)
			if err != nil {
				return nil, err
			}
			p.Source = source
			continue
		}

		if op, ok, err := parseOp(stage, words); err != nil {
			return nil, err
		} else if ok {
			if p.Terminal != nil {
				return nil, parseErrorf(stage, "%q follows a terminal stage", words[0].text)
			}
			p.Ops = append(p.Ops, op)
			continue
		}

		term, ok, err := parseTerminal(stage, words)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, parseErrorf(stage, "unknown stage %q", words[0].text)
		}
		if p.Terminal != nil {
			return nil, parseErrorf(stage, "%q follows a terminal stage", words[0].text)
		}
		p.Terminal = term
	}

	return p, nil
}

// MustParse is like Parse but panics on error.
// Use only in tests or for known-good queries.
func MustParse(src string) *Pipeline {
	p, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return p
}

func parseSource(stage int, words []token) (Source, error) {
	name, args := words[0].text, words[1:]

	switch name {
	case "collect":
		if err := arity(stage, name, args, 0, 0); err != nil {
			return nil, err
		}
		return Collect{}, nil
	case "byName", "tryByName":
		if err := arity(stage, name, args, 1, 1); err != nil {
			return nil, err
		}
		return ByName{Name: args[0].str(), Try: name == "tryByName"}, nil
	case "byValue", "tryByValue":
		if err := arity(stage, name, args, 1, 1); err != nil {
			return nil, err
		}
		return ByValue{Value: args[0].literal(), Try: name == "tryByValue"}, nil
	case "from", "tryFrom":
		if err := arity(stage, name, args, 1, 1); err != nil {
			return nil, err
		}
		return From{Value: args[0].literal(), Try: name == "tryFrom"}, nil
	case "byKey", "tryByKey":
		if err := arity(stage, name, args, 2, 2); err != nil {
			return nil, err
		}
		return ByKey{Key: args[0].str(), Target: args[1].literal(), Try: name == "tryByKey"}, nil
	}

	if _, ok := enum.ParseCall(name); ok {
		if err := arity(stage, name, args, 0, 1); err != nil {
			return nil, err
		}
		return Dynamic{Name: name, Args: literals(args)}, nil
	}

	return nil, parseErrorf(stage, "unknown source %q", name)
}

func parseOp(stage int, words []token) (Op, bool, error) {
	name, args := words[0].text, words[1:]

	var op Op
	var err error
	switch name {
	case "only", "except":
		op = Only{Names: strs(args), Except: name == "except"}
	case "onlyValues", "exceptValues":
		op = OnlyValues{Values: literals(args), Except: name == "exceptValues"}
	case "where":
		if err = arity(stage, name, args, 2, 2); err == nil {
			op = Where{Key: args[0].str(), Target: args[1].literal()}
		}
	case "sort", "sortDesc":
		if err = arity(stage, name, args, 0, 0); err == nil {
			op = Sort{Desc: name == "sortDesc"}
		}
	case "sortBy", "sortDescBy":
		if err = arity(stage, name, args, 1, 1); err == nil {
			op = Sort{Key: args[0].str(), Desc: name == "sortDescBy"}
		}
	case "sortByValue", "sortDescByValue":
		if err = arity(stage, name, args, 0, 0); err == nil {
			op = SortByValue{Desc: name == "sortDescByValue"}
		}
	default:
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return op, true, nil
}

func parseTerminal(stage int, words []token) (Terminal, bool, error) {
	name, args := words[0].text, words[1:]

	var term Terminal
	var err error
	switch name {
	case "count", "names", "values":
		if err = arity(stage, name, args, 0, 0); err == nil {
			term = map[string]Terminal{"count": Count{}, "names": Names{}, "values": Values{}}[name]
		}
	case "keys", "casesBy", "get":
		if err = arity(stage, name, args, 1, 1); err == nil {
			key := args[0].str()
			term = map[string]Terminal{"keys": Keys{Key: key}, "casesBy": CasesBy{Key: key}, "get": Get{Key: key}}[name]
		}
	case "pluck":
		if err = arity(stage, name, args, 0, 2); err == nil {
			pl := Pluck{}
			if len(args) > 0 {
				pl.Value = args[0].str()
			}
			if len(args) > 1 {
				pl.Key = args[1].str()
			}
			term = pl
		}
	case "has", "doesntHave":
		if err = arity(stage, name, args, 1, 1); err == nil {
			term = Has{Target: args[0].literal(), Negate: name == "doesntHave"}
		}
	case "is", "isNot":
		if err = arity(stage, name, args, 1, 1); err == nil {
			term = Is{Targets: literals(args), Negate: name == "isNot"}
		}
	case "in", "notIn":
		term = Is{Targets: literals(args), Negate: name == "notIn"}
	default:
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return term, true, nil
}

func arity(stage int, name string, args []token, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		if lo == hi {
			return parseErrorf(stage, "%s takes %d argument(s), got %d", name, lo, len(args))
		}
		return parseErrorf(stage, "%s takes %d to %d arguments, got %d", name, lo, hi, len(args))
	}
	return nil
}

func strs(tokens []token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.str()
	}
	return out
}

func literals(tokens []token) []ir.IRValue {
	out := make([]ir.IRValue, len(tokens))
	for i, t := range tokens {
		out[i] = t.literal()
	}
	return out
}

// split tokenizes src into stages of words. Double-quoted strings may
// contain spaces, pipes and backslash escapes.
func split(src string) ([][]token, error) {
	var (
		stages [][]token
		words  []token
		cur    strings.Builder
		inWord bool
		quoted bool
	)

	flush := func() {
		if inWord {
			words = append(words, token{text: cur.String(), quoted: quoted})
			cur.Reset()
			inWord, quoted = false, false
		}
	}

	for i := 0; i < len(src); i++ {
		ch := src[i]
		switch {
		case ch == '"':
			if inWord {
				return nil, parseErrorf(len(stages)+1, "unexpected quote at offset %d", i)
			}
			end, ok := scanString(src, i)
			if !ok {
				return nil, parseErrorf(len(stages)+1, "unterminated string at offset %d", i)
			}
			cur.WriteString(src[i : end+1])
			inWord, quoted = true, true
			i = end
			if i+1 < len(src) && !isSeparator(src[i+1]) {
				return nil, parseErrorf(len(stages)+1, "unexpected text after string at offset %d", i+1)
			}
		case ch == '|':
			flush()
			stages = append(stages, words)
			words = nil
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			flush()
		default:
			cur.WriteByte(ch)
			inWord = true
		}
	}
	flush()

	if len(words) > 0 || len(stages) > 0 {
		stages = append(stages, words)
	}
	return stages, nil
}

// scanString returns the index of the closing quote of the string
// starting at src[start].
func scanString(src string, start int) (int, bool) {
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '"':
			return i, true
		}
	}
	return 0, false
}

func isSeparator(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '|'
}
