package selector

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses a comma-separated CSS selector list.
func Parse(s string) (*SelectorList, error) {
	p := &parser{toks: stripWhitespace(tokenize(s))}
	return p.parseGroup(tokEOF)
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }
func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// parseGroup parses a comma-separated list of complex selectors,
// stopping at (without consuming) a token of kind terminator.
func (p *parser) parseGroup(terminator tokenKind) (*SelectorList, error) {
	list := &SelectorList{}
	for {
		cs, err := p.parseComplex()
		if err != nil {
			return nil, err
		}
		list.Selectors = append(list.Selectors, *cs)
		p.skipWhitespace()
		if p.peek().kind == tokComma {
			p.advance()
			p.skipWhitespace()
			continue
		}
		break
	}
	if p.peek().kind != terminator {
		return nil, fmt.Errorf("selector: unexpected trailing input at token %d", p.pos)
	}
	return list, nil
}

func (p *parser) skipWhitespace() {
	for p.peek().kind == tokWhitespace {
		p.advance()
	}
}

func (p *parser) parseComplex() (*ComplexSelector, error) {
	cs := &ComplexSelector{}
	first, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	cs.Compounds = append(cs.Compounds, *first)

	for {
		comb, hasComb, err := p.parseCombinatorBoundary()
		if err != nil {
			return nil, err
		}
		if !hasComb {
			break
		}
		next, err := p.parseCompound()
		if err != nil {
			return nil, err
		}
		cs.Combinators = append(cs.Combinators, comb)
		cs.Compounds = append(cs.Compounds, *next)
	}
	return cs, nil
}

// parseCombinatorBoundary consumes whitespace and an optional explicit
// combinator glyph, reporting whether a combinator (descendant or
// explicit) connects to a following compound selector.
func (p *parser) parseCombinatorBoundary() (Combinator, bool, error) {
	sawSpace := false
	if p.peek().kind == tokWhitespace {
		sawSpace = true
		p.advance()
	}
	switch p.peek().kind {
	case tokCombinator:
		t := p.advance()
		p.skipWhitespace()
		switch t.text {
		case ">":
			return Child, true, nil
		case "+":
			return AdjacentSibling, true, nil
		case "~":
			return GeneralSibling, true, nil
		}
		return 0, false, fmt.Errorf("selector: unknown combinator %q", t.text)
	case tokComma, tokEOF, tokRParen:
		return 0, false, nil
	default:
		if sawSpace {
			return Descendant, true, nil
		}
		return 0, false, nil
	}
}

func (p *parser) parseCompound() (*CompoundSelector, error) {
	c := &CompoundSelector{}
	sawAny := false
	for {
		switch p.peek().kind {
		case tokStar:
			p.advance()
			c.Simples = append(c.Simples, SimpleSelector{Kind: KindUniversal})
			sawAny = true
		case tokIdent:
			t := p.advance()
			c.Simples = append(c.Simples, SimpleSelector{Kind: KindTag, Tag: t.text})
			sawAny = true
		case tokHash:
			t := p.advance()
			c.Simples = append(c.Simples, SimpleSelector{Kind: KindID, ID: t.text})
			sawAny = true
		case tokDot:
			t := p.advance()
			c.Simples = append(c.Simples, SimpleSelector{Kind: KindClass, Class: t.text})
			sawAny = true
		case tokLBracket:
			sel, err := p.parseAttr()
			if err != nil {
				return nil, err
			}
			c.Simples = append(c.Simples, *sel)
			sawAny = true
		case tokColon, tokDoubleColon:
			sel, err := p.parsePseudo()
			if err != nil {
				return nil, err
			}
			c.Simples = append(c.Simples, *sel)
			sawAny = true
		default:
			if !sawAny {
				return nil, fmt.Errorf("selector: expected a simple selector at token %d", p.pos)
			}
			return c, nil
		}
	}
}

func (p *parser) parseAttr() (*SimpleSelector, error) {
	p.advance() // '['
	if p.peek().kind != tokIdent {
		return nil, fmt.Errorf("selector: expected attribute name")
	}
	name := p.advance().text
	if p.peek().kind == tokRBracket {
		p.advance()
		return &SimpleSelector{Kind: KindAttr, Attr: AttrMatcher{Name: name, Op: AttrExists}}, nil
	}
	if p.peek().kind != tokAttrOp {
		return nil, fmt.Errorf("selector: expected attribute operator")
	}
	opText := p.advance().text
	var op AttrOp
	switch opText {
	case "=":
		op = AttrEquals
	case "~=":
		op = AttrIncludes
	case "|=":
		op = AttrDashMatch
	case "^=":
		op = AttrPrefix
	case "$=":
		op = AttrSuffix
	case "*=":
		op = AttrSubstring
	default:
		op = AttrEquals
	}
	var value string
	switch p.peek().kind {
	case tokString:
		value = p.advance().text
	case tokIdent:
		value = p.advance().text
	default:
		return nil, fmt.Errorf("selector: expected attribute value")
	}
	ci := false
	if p.peek().kind == tokIdent && (p.peek().text == "i" || p.peek().text == "I") {
		ci = true
		p.advance()
	}
	if p.peek().kind != tokRBracket {
		return nil, fmt.Errorf("selector: expected ']'")
	}
	p.advance()
	return &SimpleSelector{Kind: KindAttr, Attr: AttrMatcher{Name: name, Op: op, Value: value, CaseInsensitive: ci}}, nil
}

func (p *parser) parsePseudo() (*SimpleSelector, error) {
	p.advance() // ':' or '::'
	if p.peek().kind != tokIdent {
		return nil, fmt.Errorf("selector: expected pseudo-class name")
	}
	name := strings.ToLower(p.advance().text)
	pc := PseudoClass{Name: name}

	if p.peek().kind == tokLParen {
		p.advance()
		switch name {
		case "not":
			inner, err := p.parseGroup(tokRParen)
			if err != nil {
				return nil, err
			}
			pc.Not = inner
		case "is", "where", "has":
			inner, err := p.parseGroup(tokRParen)
			if err != nil {
				return nil, err
			}
			pc.List = inner
		case "nth-child", "nth-last-child", "nth-of-type", "nth-last-of-type":
			expr := p.collectUntilRParen()
			a, b, err := parseNth(expr)
			if err != nil {
				return nil, err
			}
			pc.NthA, pc.NthB = a, b
		default:
			p.collectUntilRParen()
		}
		if p.peek().kind != tokRParen {
			return nil, fmt.Errorf("selector: expected ')' closing :%s(...)", name)
		}
		p.advance()
	}
	return &SimpleSelector{Kind: KindPseudo, Pseudo: pc}, nil
}

// collectUntilRParen consumes and returns the raw text of tokens up to
// (not including) the next unmatched ')'.
func (p *parser) collectUntilRParen() string {
	var sb strings.Builder
	depth := 0
	for {
		t := p.peek()
		if t.kind == tokEOF {
			break
		}
		if t.kind == tokRParen && depth == 0 {
			break
		}
		if t.kind == tokLParen {
			depth++
		}
		if t.kind == tokRParen {
			depth--
		}
		switch t.kind {
		case tokWhitespace:
			sb.WriteByte(' ')
		case tokIdent, tokHash, tokString:
			sb.WriteString(t.text)
		case tokCombinator:
			sb.WriteString(t.text)
		default:
		}
		p.advance()
	}
	return sb.String()
}

// parseNth parses the An+B microsyntax used by :nth-child() and kin.
func parseNth(expr string) (a, b int, err error) {
	expr = strings.ToLower(normalizeValue(expr))
	switch expr {
	case "odd":
		return 2, 1, nil
	case "even":
		return 2, 0, nil
	}
	expr = strings.ReplaceAll(expr, " ", "")
	if !strings.Contains(expr, "n") {
		v, convErr := strconv.Atoi(expr)
		if convErr != nil {
			return 0, 0, fmt.Errorf("selector: invalid nth expression %q", expr)
		}
		return 0, v, nil
	}
	idx := strings.Index(expr, "n")
	aPart := expr[:idx]
	bPart := expr[idx+1:]
	switch aPart {
	case "", "+":
		a = 1
	case "-":
		a = -1
	default:
		a, err = strconv.Atoi(aPart)
		if err != nil {
			return 0, 0, fmt.Errorf("selector: invalid nth coefficient %q", aPart)
		}
	}
	if bPart == "" {
		b = 0
		return a, b, nil
	}
	bPart = strings.TrimPrefix(bPart, "+")
	b, err = strconv.Atoi(bPart)
	if err != nil {
		return 0, 0, fmt.Errorf("selector: invalid nth offset %q", bPart)
	}
	return a, b, nil
}
