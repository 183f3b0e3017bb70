// Package ebnf renders chain grammars as EBNF in the notation of
// golang.org/x/exp/ebnf, so they can be read, diffed and verified.
//
// Rules become non-lexical productions named after the rule (or after the Go
// function of an unnamed rule factory) with an upper-case first letter.
// Token kinds matched with chain.Typed become lexical productions named by
// the lower-cased kind.
package ebnf

import (
	"fmt"
	"reflect"
	"runtime"
	"strconv"
	"strings"
	"unicode"

	"github.com/dhamidi/chainparse/chain"
	"github.com/dhamidi/chainparse/lexer"
	xebnf "golang.org/x/exp/ebnf"
)

// Production is one `Name = Expr .` line. Comment, when set, is written on
// the line before it.
type Production struct {
	Name    string
	Expr    string
	Comment string
}

// Grammar is an exported grammar. Productions are ordered by discovery from
// Start; lexical productions come last.
type Grammar struct {
	Start       string
	Productions []Production
}

func (g *Grammar) String() string {
	var b strings.Builder
	for _, p := range g.Productions {
		if p.Comment != "" {
			fmt.Fprintf(&b, "// %s\n", p.Comment)
		}
		if p.Expr == "" {
			fmt.Fprintf(&b, "%s = .\n", p.Name)
		} else {
			fmt.Fprintf(&b, "%s = %s .\n", p.Name, p.Expr)
		}
	}
	return b.String()
}

// Verify parses the rendered grammar back with x/exp/ebnf and checks that
// every production is defined and reachable from Start.
func (g *Grammar) Verify() error {
	parsed, err := xebnf.Parse(g.Start+".ebnf", strings.NewReader(g.String()))
	if err != nil {
		return fmt.Errorf("parse exported grammar: %w", err)
	}
	if err := xebnf.Verify(parsed, g.Start); err != nil {
		return fmt.Errorf("verify exported grammar: %w", err)
	}
	return nil
}

// Export walks the grammar rooted at root. When l is not nil, lexical
// productions are annotated with the tokenizer patterns of their kind.
func Export(root chain.RuleFunc, l *lexer.Lexer) *Grammar {
	e := &exporter{
		lexer:  l,
		taken:  make(map[string]bool),
		byFunc: make(map[uintptr]string),
		byRule: make(map[*chain.Sequence]string),
		tokens: make(map[string]string),
	}

	g := &Grammar{Start: e.ref(root)}
	for i := 0; i < len(e.queue); i++ {
		p := e.queue[i]
		g.Productions = append(g.Productions, Production{Name: p.name, Expr: e.expr(p.body, false)})
	}
	if e.empty != "" {
		g.Productions = append(g.Productions, Production{Name: e.empty})
	}
	for _, kind := range e.kinds {
		g.Productions = append(g.Productions, Production{
			Name:    e.tokens[kind],
			Expr:    strconv.Quote(kind),
			Comment: e.patterns(kind),
		})
	}
	return g
}

type pending struct {
	name string
	body any
}

type exporter struct {
	lexer  *lexer.Lexer
	taken  map[string]bool
	byFunc map[uintptr]string
	byRule map[*chain.Sequence]string
	queue  []pending

	kinds  []string
	tokens map[string]string
	empty  string
}

// ref returns the production name of a rule factory, queueing its body the
// first time the factory is seen.
func (e *exporter) ref(fn chain.RuleFunc) string {
	key := reflect.ValueOf(fn).Pointer()
	if name, ok := e.byFunc[key]; ok {
		return name
	}

	body := fn()
	if seq, ok := body.(*chain.Sequence); ok && seq.Name() != "" {
		name := e.rule(seq)
		e.byFunc[key] = name
		return name
	}

	name := e.unique(funcName(key))
	e.byFunc[key] = name
	e.queue = append(e.queue, pending{name: name, body: body})
	return name
}

func (e *exporter) rule(seq *chain.Sequence) string {
	if name, ok := e.byRule[seq]; ok {
		return name
	}
	name := e.unique(seq.Name())
	e.byRule[seq] = name
	e.queue = append(e.queue, pending{name: name, body: chain.Chain(seq.Elements()...)})
	return name
}

func (e *exporter) unique(base string) string {
	return e.claim(identifier(base))
}

// claim reserves base, or base followed by the first free counter.
func (e *exporter) claim(base string) string {
	name := base
	for i := 2; e.taken[name]; i++ {
		name = fmt.Sprintf("%s%d", base, i)
	}
	e.taken[name] = true
	return name
}

func (e *exporter) token(kind string) string {
	if name, ok := e.tokens[kind]; ok {
		return name
	}
	name := e.claim(lexical(kind))
	e.tokens[kind] = name
	e.kinds = append(e.kinds, kind)
	return name
}

func (e *exporter) emptyRef() string {
	if e.empty == "" {
		e.empty = e.claim("empty")
	}
	return e.empty
}

func (e *exporter) patterns(kind string) string {
	if e.lexer == nil {
		return ""
	}
	for _, r := range e.lexer.Rules() {
		if r.Kind == kind {
			return kind + ": " + strings.ReplaceAll(strings.Join(r.Patterns, " | "), "\n", `\n`)
		}
	}
	return ""
}

// expr renders elem. grouped is set when the result is juxtaposed with
// other terms, which requires parentheses around alternatives.
func (e *exporter) expr(elem any, grouped bool) string {
	switch x := elem.(type) {
	case string:
		return strconv.Quote(x)

	case *chain.Terminal:
		if x.IsLoose() {
			return e.emptyRef()
		}
		m := x.Matcher().Matching()
		if m.Kind == chain.MatchTyped {
			return e.token(m.Value)
		}
		return strconv.Quote(m.Value)

	case *chain.Sequence:
		if x.Name() != "" {
			return e.rule(x)
		}
		if x.Repeating() {
			body := e.sequence(x.Elements(), true)
			return body + " { " + body + " }"
		}
		return e.sequence(x.Elements(), grouped)

	case *chain.Alternation:
		if x.IsOptional() {
			return e.optional(x)
		}
		return e.alternatives(x.Alternatives(), grouped)

	case []any:
		return e.alternatives(x, grouped)

	case chain.RuleFunc:
		return e.ref(x)

	default:
		panic(&chain.GrammarError{Message: "cannot export element", Element: elem})
	}
}

func (e *exporter) sequence(elems []any, grouped bool) string {
	switch len(elems) {
	case 0:
		return e.emptyRef()
	case 1:
		return e.expr(elems[0], grouped)
	}
	parts := make([]string, len(elems))
	for i, el := range elems {
		parts[i] = e.expr(el, true)
	}
	return strings.Join(parts, " ")
}

func (e *exporter) alternatives(alts []any, grouped bool) string {
	parts := make([]string, len(alts))
	for i, alt := range alts {
		parts[i] = e.expr(alt, false)
	}
	s := strings.Join(parts, " | ")
	if grouped && len(parts) > 1 {
		return "( " + s + " )"
	}
	return s
}

// optional renders Optional as [ x ] and Many as { x }.
func (e *exporter) optional(alt *chain.Alternation) string {
	body := alt.Alternatives()[0]
	if seq, ok := body.(*chain.Sequence); ok && len(seq.Elements()) == 1 {
		if plus, ok := seq.Elements()[0].(*chain.Sequence); ok && plus.Repeating() && plus.Name() == "" {
			return "{ " + e.sequence(plus.Elements(), false) + " }"
		}
	}
	return "[ " + e.expr(body, false) + " ]"
}

// funcName is the unqualified name of the function at pc, e.g. "term" or
// "Select.func1".
func funcName(pc uintptr) string {
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "rule"
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// identifier turns s into a non-lexical production name: runs of other
// characters become underscores and the first letter is upper case.
func identifier(s string) string {
	r := []rune(sanitize(s))
	if len(r) == 0 {
		return "Rule"
	}
	r[0] = unicode.ToUpper(r[0])
	if !unicode.IsUpper(r[0]) {
		return "R" + string(r)
	}
	return string(r)
}

// lexical turns a token kind into a lexical production name, one that does
// not start with an upper-case letter.
func lexical(kind string) string {
	r := []rune(sanitize(kind))
	if len(r) == 0 {
		return "token"
	}
	if unicode.IsDigit(r[0]) {
		return "t" + string(r)
	}
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func sanitize(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	return strings.Trim(strings.Join(fields, "_"), "_")
}
