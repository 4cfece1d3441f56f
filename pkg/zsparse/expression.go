package zsparse

import (
	"strings"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/syntax"
)

var assignOperators = []string{"=", "+=", "-=", "~=", "*=", "/=", "%=", "|=", "&=", "^="}

type binaryLevel struct {
	kind syntax.Kind
	ops  []string
}

// binaryLevels is ordered from the loosest to the tightest binding.
var binaryLevels = []binaryLevel{
	{syntax.KindLogicalExpr, []string{"||"}},
	{syntax.KindLogicalExpr, []string{"&&"}},
	{syntax.KindBinaryExpr, []string{"|"}},
	{syntax.KindBinaryExpr, []string{"^"}},
	{syntax.KindBinaryExpr, []string{"&"}},
	{syntax.KindCompareExpr, []string{"==", "!=", "<=", ">=", "<", ">", "in", "has"}},
	{syntax.KindIntRangeExpr, []string{"..", "to"}},
	{syntax.KindBinaryExpr, []string{"+", "-", "~"}},
	{syntax.KindBinaryExpr, []string{"*", "/", "%"}},
}

func (p *parse) startsExpression() bool {
	t := p.peek()
	switch t.Kind {
	case syntax.TokenIdentifier, syntax.TokenInt, syntax.TokenFloat, syntax.TokenString, syntax.TokenBracketHandler:
		return true
	case syntax.TokenKeyword:
		switch t.Text {
		case "true", "false", "null", "function":
			return true
		}
	case syntax.TokenPunct:
		switch t.Text {
		case "(", "[", "{", "!", "-":
			return true
		}
	}
	return false
}

func (p *parse) expression() syntax.NodeID {
	return p.assignment()
}

func (p *parse) matchAny(ops []string) string {
	t := p.peek()
	for _, op := range ops {
		if t.Is(op) || (op == "to" && t.Kind == syntax.TokenIdentifier && t.Text == "to") {
			return op
		}
	}
	return ""
}

func (p *parse) assignment() syntax.NodeID {
	lhs := p.conditional()
	if !lhs.Valid() {
		return lhs
	}
	if op := p.matchAny(assignOperators); op != "" {
		n := p.b.Wrap(syntax.KindAssignExpr, lhs)
		p.b.SetText(n, op)
		p.advance()
		p.assignment()
		p.close(n)
		return n
	}
	return lhs
}

func (p *parse) conditional() syntax.NodeID {
	cond := p.binary(0)
	if !cond.Valid() || !p.at("?") {
		return cond
	}
	n := p.b.Wrap(syntax.KindConditionalExpr, cond)
	p.advance()
	p.assignment()
	p.expect(":")
	p.assignment()
	p.close(n)
	return n
}

func (p *parse) binary(level int) syntax.NodeID {
	if level == len(binaryLevels) {
		return p.unary()
	}
	left := p.binary(level + 1)
	if !left.Valid() {
		return left
	}
	for {
		op := p.matchAny(binaryLevels[level].ops)
		if op == "" {
			return left
		}
		n := p.b.Wrap(binaryLevels[level].kind, left)
		p.b.SetText(n, op)
		p.advance()
		p.binary(level + 1)
		p.close(n)
		left = n
	}
}

func (p *parse) unary() syntax.NodeID {
	if p.at("!") || p.at("-") {
		n := p.open(syntax.KindUnaryExpr)
		p.b.SetText(n, p.advance().Text)
		p.unary()
		p.close(n)
		return n
	}
	return p.postfix(p.primary())
}

func (p *parse) postfix(expr syntax.NodeID) syntax.NodeID {
	if !expr.Valid() {
		return expr
	}
	for {
		switch {
		case p.at("."):
			n := p.b.Wrap(syntax.KindMemberAccessExpr, expr)
			p.advance()
			p.memberName()
			p.close(n)
			expr = n
		case p.at("("):
			n := p.b.Wrap(syntax.KindCallExpr, expr)
			p.advance()
			p.commaList(")")
			p.expect(")")
			p.close(n)
			expr = n
		case p.at("["):
			n := p.b.Wrap(syntax.KindIndexExpr, expr)
			p.advance()
			p.expression()
			p.expect("]")
			p.close(n)
			expr = n
		case p.at("as"):
			n := p.b.Wrap(syntax.KindTypeCastExpr, expr)
			p.advance()
			p.typeLiteral()
			p.close(n)
			expr = n
		case p.at("instanceof"):
			n := p.b.Wrap(syntax.KindInstanceofExpr, expr)
			p.advance()
			p.typeLiteral()
			p.close(n)
			expr = n
		default:
			return expr
		}
	}
}

// memberName parses the name after a '.'; keywords and string literals are
// valid member names. A missing name is left out of the tree.
func (p *parse) memberName() {
	t := p.peek()
	switch t.Kind {
	case syntax.TokenIdentifier:
		p.simpleName()
	case syntax.TokenKeyword:
		p.advance()
		p.b.Leaf(syntax.KindSimpleName, t.Span, t.Text)
	case syntax.TokenString:
		p.advance()
		p.b.Leaf(syntax.KindSimpleName, t.Span, unquote(t.Text))
	}
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return strings.TrimLeft(s, "\"'")
}

// commaList parses expressions separated by commas up to the closing token.
func (p *parse) commaList(closing string) {
	for !p.atEOF() && !p.at(closing) {
		start := p.pos
		p.expression()
		if !p.accept(",") {
			if p.pos == start && !p.at(closing) {
				p.errorNode()
				continue
			}
			return
		}
	}
}

func (p *parse) primary() syntax.NodeID {
	t := p.peek()
	switch t.Kind {
	case syntax.TokenIdentifier:
		n := p.open(syntax.KindSimpleNameExpr)
		p.simpleName()
		p.close(n)
		return n
	case syntax.TokenInt, syntax.TokenFloat, syntax.TokenString:
		p.advance()
		return p.b.Leaf(syntax.KindLiteralExpr, t.Span, t.Text)
	case syntax.TokenBracketHandler:
		p.advance()
		return p.b.Leaf(syntax.KindBracketHandlerExpr, t.Span, t.Text)
	case syntax.TokenKeyword:
		switch t.Text {
		case "true", "false", "null":
			p.advance()
			return p.b.Leaf(syntax.KindLiteralExpr, t.Span, t.Text)
		case "function":
			n := p.open(syntax.KindFunctionExpr)
			p.advance()
			p.parameterList()
			if p.accept("as") {
				p.typeLiteral()
			}
			p.functionBody()
			p.close(n)
			return n
		}
	case syntax.TokenPunct:
		switch t.Text {
		case "(":
			n := p.open(syntax.KindParensExpr)
			p.advance()
			p.expression()
			p.expect(")")
			p.close(n)
			return n
		case "[":
			n := p.open(syntax.KindArrayLiteral)
			p.advance()
			p.commaList("]")
			p.expect("]")
			p.close(n)
			return n
		case "{":
			n := p.open(syntax.KindMapLiteral)
			p.advance()
			for !p.atEOF() && !p.at("}") {
				start := p.pos
				entry := p.open(syntax.KindMapEntry)
				p.expression()
				p.expect(":")
				p.expression()
				p.close(entry)
				if !p.accept(",") {
					if p.pos == start {
						p.errorNode()
						continue
					}
					break
				}
			}
			p.expect("}")
			p.close(n)
			return n
		}
	}
	return syntax.NoNode
}

// typeLiteral parses a type annotation, including the declaration file
// intersection form "A & B".
func (p *parse) typeLiteral() syntax.NodeID {
	t := p.postfixType()
	if !t.Valid() || !p.at("&") {
		return t
	}
	n := p.b.Wrap(syntax.KindIntersectionType, t)
	for p.accept("&") {
		p.postfixType()
	}
	p.close(n)
	return n
}

func (p *parse) postfixType() syntax.NodeID {
	t := p.primaryType()
	for t.Valid() && p.at("[") {
		if p.peekN(1).Is("]") {
			n := p.b.Wrap(syntax.KindArrayType, t)
			p.advance()
			p.advance()
			p.close(n)
			t = n
			continue
		}
		n := p.b.Wrap(syntax.KindMapType, t)
		p.advance()
		p.typeLiteral()
		p.expect("]")
		p.close(n)
		t = n
	}
	return t
}

func (p *parse) primaryType() syntax.NodeID {
	t := p.peek()
	switch {
	case t.Kind == syntax.TokenKeyword && primitiveTypes[t.Text]:
		p.advance()
		return p.b.Leaf(syntax.KindPrimitiveType, t.Span, t.Text)
	case t.Kind == syntax.TokenIdentifier:
		n := p.open(syntax.KindClassType)
		p.qualifiedName()
		p.close(n)
		return n
	case t.Is("function"):
		n := p.open(syntax.KindFunctionType)
		p.advance()
		p.expect("(")
		for !p.atEOF() && !p.at(")") {
			if !p.typeLiteral().Valid() {
				break
			}
			if !p.accept(",") {
				break
			}
		}
		p.expect(")")
		p.typeLiteral()
		p.close(n)
		return n
	case t.Is("["):
		n := p.open(syntax.KindListType)
		p.advance()
		p.typeLiteral()
		p.expect("]")
		p.close(n)
		return n
	}
	return syntax.NoNode
}
