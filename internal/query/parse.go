package query

import (
	"fmt"
	"strings"

	"github.com/funvibe/apisearch/internal/lowtype"
)

// ParseError reports a malformed query string.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("apisearch: cannot parse query %q: %s", e.Input, e.Reason)
}

// ParseQuery is a minimal stand-in for the out-of-scope textual query
// parser (§6): only the abstract Query surface it produces is
// specified. It recognizes a small, literal grammar adequate for
// signature queries (arrows, tuples, generics, wildcards, variables)
// plus two plain prefixes for the other QueryMethod kinds, grounded on
// the teacher's hand-rolled rune-scanning lexer shape.
//
//	name: Foo.Bar          -> ByName
//	ce: async<'a> {let!,return} -> ByComputationExpression
//	anything else          -> BySignature, parsed as a LowType
func ParseQuery(text string) (Query, error) {
	trimmed := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(trimmed, "name:"):
		return parseByName(trimmed, strings.TrimSpace(trimmed[len("name:"):]))
	case strings.HasPrefix(trimmed, "ce:"):
		return parseComputationExpression(trimmed, strings.TrimSpace(trimmed[len("ce:"):]))
	default:
		t, err := parseSignature(trimmed)
		if err != nil {
			return Query{}, err
		}
		return Query{
			OriginalString: text,
			Method: QueryMethod{
				Kind:      BySignature,
				Signature: Signature{Kind: ConcreteSignature, Type: t},
			},
		}, nil
	}
}

// parseByName splits on '.' into name segments; a trailing "(sig)"
// introduces an optional signature portion.
func parseByName(original, body string) (Query, error) {
	sigStart := strings.IndexByte(body, '(')
	namePart := body
	var sig Signature
	if sigStart >= 0 {
		if !strings.HasSuffix(body, ")") {
			return Query{}, &ParseError{Input: original, Reason: "unterminated signature portion"}
		}
		namePart = body[:sigStart]
		sigText := body[sigStart+1 : len(body)-1]
		if strings.TrimSpace(sigText) == "?" {
			sig = Signature{Kind: WildcardSignature}
		} else {
			t, err := parseSignature(sigText)
			if err != nil {
				return Query{}, err
			}
			sig = Signature{Kind: ConcreteSignature, Type: t}
		}
	}
	// DisplayName (and so the Names list zipped against it, §4.3) is
	// stored innermost-first, but "Module.Sub.member" is written
	// outermost-first — reverse the split to match.
	segments := strings.Split(namePart, ".")
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	names := make([]ByNameItem, 0, len(segments))
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			return Query{}, &ParseError{Input: original, Reason: "empty name segment"}
		}
		if seg == "*" {
			names = append(names, ByNameItem{Method: AnyName})
			continue
		}
		names = append(names, ByNameItem{Expected: seg, Method: StringCompare})
	}
	return Query{
		OriginalString: original,
		Method:         QueryMethod{Kind: ByName, Names: names, Signature: sig},
	}, nil
}

// parseComputationExpression expects "<type> {syntax,syntax,...}" with
// the brace portion optional.
func parseComputationExpression(original, body string) (Query, error) {
	braceStart := strings.IndexByte(body, '{')
	typeText := body
	syntaxes := map[string]bool{}
	if braceStart >= 0 {
		if !strings.HasSuffix(body, "}") {
			return Query{}, &ParseError{Input: original, Reason: "unterminated syntax set"}
		}
		typeText = strings.TrimSpace(body[:braceStart])
		syntaxText := body[braceStart+1 : len(body)-1]
		for _, s := range strings.Split(syntaxText, ",") {
			s = strings.TrimSpace(s)
			if s != "" {
				syntaxes[s] = true
			}
		}
	}
	t, err := parseSignature(typeText)
	if err != nil {
		return Query{}, err
	}
	return Query{
		OriginalString: original,
		Method: QueryMethod{
			Kind: ByComputationExpression,
			ComputationExpression: ComputationExpressionQuery{
				Type:     t,
				Syntaxes: syntaxes,
			},
		},
	}, nil
}

// parseSignature parses a LowType from an arrow-and-tuple expression:
//
//	arrow      := tuple ('->' tuple)*
//	tuple      := applied ('*' applied)*
//	applied    := atom identifier*   (postfix: `'a list` is list<'a>)
//	atom       := wildcard | variable | generic | '(' arrow ')'
//	generic    := identifier ('<' arrow (',' arrow)* '>')?
//	wildcard   := '?' identifier?
//	variable   := '\'' identifier
func parseSignature(text string) (lowtype.Type, error) {
	p := &sigParser{input: text}
	t, err := p.parseArrow()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, &ParseError{Input: text, Reason: fmt.Sprintf("unexpected trailing input at %d", p.pos)}
	}
	return t, nil
}

type sigParser struct {
	input string
	pos   int
}

func (p *sigParser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *sigParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *sigParser) consume(b byte) bool {
	if p.peek() == b {
		p.pos++
		return true
	}
	return false
}

func (p *sigParser) parseArrow() (lowtype.Type, error) {
	first, err := p.parseTuple()
	if err != nil {
		return nil, err
	}
	elements := []lowtype.Type{first}
	for p.matchArrowOp() {
		next, err := p.parseTuple()
		if err != nil {
			return nil, err
		}
		elements = append(elements, next)
	}
	if len(elements) == 1 {
		return elements[0], nil
	}
	return lowtype.Arrow{Elements: elements}, nil
}

func (p *sigParser) matchArrowOp() bool {
	p.skipSpace()
	if strings.HasPrefix(p.input[p.pos:], "->") {
		p.pos += 2
		return true
	}
	return false
}

func (p *sigParser) parseTuple() (lowtype.Type, error) {
	// postfix applies trailing one-argument constructors to an atom:
	// `'a list option` becomes option<list<'a>>.
	postfix := func(t lowtype.Type) lowtype.Type {
		for {
			save := p.pos
			p.skipSpace()
			name := p.readIdentifier()
			if name == "" {
				p.pos = save
				return t
			}
			t = lowtype.Generic{Constructor: identityOf(name, 1), Args: []lowtype.Type{t}}
		}
	}
	first, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	elements := []lowtype.Type{postfix(first)}
	for p.consume('*') {
		next, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		elements = append(elements, postfix(next))
	}
	if len(elements) == 1 {
		return elements[0], nil
	}
	return lowtype.Tuple{Elements: elements}, nil
}

func (p *sigParser) parseAtom() (lowtype.Type, error) {
	switch p.peek() {
	case 0:
		return nil, &ParseError{Input: p.input, Reason: "unexpected end of input"}
	case '?':
		p.pos++
		return lowtype.Wildcard{Tag: p.readIdentifier()}, nil
	case '\'':
		p.pos++
		name := p.readIdentifier()
		if name == "" {
			return nil, &ParseError{Input: p.input, Reason: "expected a variable name after '"}
		}
		return lowtype.Variable{Source: lowtype.Query, Var: lowtype.TypeVariable{Name: name}}, nil
	case '(':
		p.pos++
		inner, err := p.parseArrow()
		if err != nil {
			return nil, err
		}
		if !p.consume(')') {
			return nil, &ParseError{Input: p.input, Reason: "unterminated ("}
		}
		return inner, nil
	default:
		name := p.readIdentifier()
		if name == "" {
			return nil, &ParseError{Input: p.input, Reason: fmt.Sprintf("unexpected character at %d", p.pos)}
		}
		if p.peek() == '<' {
			p.pos++
			args := []lowtype.Type{}
			for {
				arg, err := p.parseArrow()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.consume(',') {
					continue
				}
				break
			}
			if !p.consume('>') {
				return nil, &ParseError{Input: p.input, Reason: "unterminated <"}
			}
			return lowtype.Generic{
				Constructor: identityOf(name, len(args)),
				Args:        args,
			}, nil
		}
		return identityOf(name, 0), nil
	}
}

func identityOf(name string, genericParamCount int) lowtype.Type {
	return lowtype.IdentityType{Identity: lowtype.NewPartialIdentity(
		lowtype.DisplayName{{Part: lowtype.Symbol(name)}}, genericParamCount,
	)}
}

func (p *sigParser) readIdentifier() string {
	start := p.pos
	for p.pos < len(p.input) && isIdentChar(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func isIdentChar(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
