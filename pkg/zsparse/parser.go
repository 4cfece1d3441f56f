package zsparse

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/syntax"
)

// Parser abstracts a service that can parse ZenScript files.
type Parser interface {
	// Parse parses the source text of the named file. Parsing is error
	// tolerant: malformed regions become error nodes or missing children,
	// never a failure.
	Parse(filename, source string) *syntax.Tree
}

// ParserOption configures a ScriptParser.
type ParserOption func(p *ScriptParser) *ScriptParser

// WithLogger sets the logger used to report recovered syntax errors.
func WithLogger(logger zerolog.Logger) ParserOption {
	return func(p *ScriptParser) *ScriptParser {
		p.logger = logger
		return p
	}
}

// NewScriptParser creates a new ScriptParser.
func NewScriptParser(options ...ParserOption) *ScriptParser {
	p := &ScriptParser{logger: zerolog.Nop()}
	for _, opt := range options {
		p = opt(p)
	}
	return p
}

// ScriptParser is an error tolerant recursive descent parser for ZenScript
// scripts (.zs) and declaration files (.dzs).
type ScriptParser struct {
	logger zerolog.Logger
}

// Parse implements Parser.
func (s *ScriptParser) Parse(filename, source string) *syntax.Tree {
	p := newParse(source)
	p.scriptFile()
	if len(p.errors) > 0 {
		s.logger.Debug().
			Str("file", filename).
			Int("errors", len(p.errors)).
			Msgf("recovered syntax errors: %s", strings.Join(p.errors, "; "))
	}
	return p.b.Finish(len(source), p.all)
}

// ParseFile reads and parses the named file.
func ParseFile(p Parser, filename string) (*syntax.Tree, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return p.Parse(filename, string(data)), nil
}

// Parse parses source with a default ScriptParser.
func Parse(source string) *syntax.Tree {
	return NewScriptParser().Parse("", source)
}

type parse struct {
	b      *syntax.Builder
	all    []syntax.Token
	toks   []syntax.Token
	pos    int
	errors []string
}

func newParse(source string) *parse {
	all := Lex(source)
	toks := make([]syntax.Token, 0, len(all))
	for _, t := range all {
		if t.Kind == syntax.TokenComment || t.Kind == syntax.TokenPreprocessor {
			continue
		}
		toks = append(toks, t)
	}
	return &parse{
		b:    syntax.NewBuilder(source),
		all:  all,
		toks: toks,
	}
}

func (p *parse) peek() syntax.Token {
	return p.peekN(0)
}

func (p *parse) peekN(n int) syntax.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parse) at(text string) bool {
	return p.peek().Is(text)
}

func (p *parse) atEOF() bool {
	return p.peek().Kind == syntax.TokenEOF
}

func (p *parse) advance() syntax.Token {
	t := p.peek()
	if t.Kind != syntax.TokenEOF {
		p.pos++
	}
	return t
}

// lastEnd is the end offset of the most recently consumed token.
func (p *parse) lastEnd() int {
	if p.pos == 0 {
		return 0
	}
	return p.toks[p.pos-1].Span.End
}

func (p *parse) accept(text string) bool {
	if p.at(text) {
		p.advance()
		return true
	}
	return false
}

func (p *parse) expect(text string) {
	if !p.accept(text) {
		t := p.peek()
		p.errors = append(p.errors, fmt.Sprintf("%d: expected %q, got %q", t.Span.Start, text, t.Text))
	}
}

// errorNode swallows one token into an error node so loops always advance.
func (p *parse) errorNode() {
	t := p.advance()
	p.errors = append(p.errors, fmt.Sprintf("%d: unexpected %q", t.Span.Start, t.Text))
	p.b.Leaf(syntax.KindError, t.Span, t.Text)
}

func (p *parse) open(kind syntax.Kind) syntax.NodeID {
	return p.b.Open(kind, p.peek().Span.Start)
}

func (p *parse) close(id syntax.NodeID) {
	p.b.Close(id, p.lastEnd())
}

func (p *parse) isName() bool {
	return p.peek().Kind == syntax.TokenIdentifier
}

// simpleName consumes an identifier into a simple name node.
func (p *parse) simpleName() syntax.NodeID {
	if !p.isName() {
		return syntax.NoNode
	}
	t := p.advance()
	return p.b.Leaf(syntax.KindSimpleName, t.Span, t.Text)
}

func (p *parse) qualifiedName() syntax.NodeID {
	qn := p.open(syntax.KindQualifiedName)
	p.simpleName()
	for p.at(".") {
		p.advance()
		if p.simpleName() == syntax.NoNode {
			break
		}
	}
	p.close(qn)
	return qn
}

func (p *parse) scriptFile() {
	// the root stays open until Finish closes it at the end of the source
	p.b.Open(syntax.KindScriptFile, 0)
	for !p.atEOF() {
		start := p.pos
		p.topLevelElement()
		if p.pos == start {
			p.errorNode()
		}
	}
}

func (p *parse) topLevelElement() {
	switch {
	case p.at("import"):
		p.importDeclaration()
	case p.at("function") || ((p.at("static") || p.at("global")) && p.peekN(1).Is("function")):
		p.functionDeclaration(syntax.KindFunctionDeclaration)
	case p.at("$expand"):
		p.expandFunctionDeclaration()
	case p.at("zenClass"):
		p.classDeclaration()
	default:
		p.statement()
	}
}

func (p *parse) importDeclaration() {
	decl := p.open(syntax.KindImportDeclaration)
	p.expect("import")
	p.qualifiedName()
	if p.accept("as") {
		p.simpleName()
	}
	p.expect(";")
	p.close(decl)
}

func (p *parse) modifiers(decl syntax.NodeID) {
	for {
		switch {
		case p.accept("static"):
			p.b.AddFlags(decl, syntax.FlagStatic)
		case p.accept("global"):
			p.b.AddFlags(decl, syntax.FlagGlobal)
		default:
			return
		}
	}
}

// functionDeclaration parses "function name(params) as T { body }" and the
// body-less declaration file form ending in ';'.
func (p *parse) functionDeclaration(kind syntax.Kind) {
	decl := p.open(kind)
	p.modifiers(decl)
	if kind == syntax.KindConstructorDeclaration {
		p.expect("zenConstructor")
	} else {
		p.expect("function")
		p.simpleName()
	}
	p.parameterList()
	if p.accept("as") {
		p.typeLiteral()
	}
	p.functionBodyOrSemi()
	p.close(decl)
}

func (p *parse) expandFunctionDeclaration() {
	decl := p.open(syntax.KindExpandFunctionDeclaration)
	p.expect("$expand")
	p.typeLiteral()
	p.expect("$")
	p.simpleName()
	p.parameterList()
	if p.accept("as") {
		p.typeLiteral()
	}
	p.functionBodyOrSemi()
	p.close(decl)
}

var operatorTokens = []string{
	"+", "-", "*", "/", "%", "~", "|", "&", "^", "!", "..", "has", "==", "!=", "<=", "<", ">=", ">", "as",
}

func (p *parse) operatorFunctionDeclaration() {
	decl := p.open(syntax.KindOperatorFunctionDeclaration)
	p.expect("operator")
	switch {
	case p.at("["):
		p.advance()
		p.expect("]")
		op := "[]"
		if p.accept("=") {
			op = "[]="
		}
		p.b.SetText(decl, op)
	case p.at("."):
		p.advance()
		op := "."
		if p.accept("=") {
			op = ".="
		}
		p.b.SetText(decl, op)
	case p.isName() && p.peek().Text == "for_in":
		p.advance()
		p.b.SetText(decl, "for_in")
	default:
		for _, op := range operatorTokens {
			if p.accept(op) {
				p.b.SetText(decl, op)
				break
			}
		}
	}
	p.parameterList()
	if p.accept("as") {
		p.typeLiteral()
	}
	p.functionBodyOrSemi()
	p.close(decl)
}

func (p *parse) functionBodyOrSemi() {
	if p.accept(";") {
		return
	}
	if p.at("{") {
		p.functionBody()
		return
	}
	p.expect("{")
}

func (p *parse) functionBody() {
	body := p.open(syntax.KindFunctionBody)
	p.expect("{")
	p.statementsUntilClose()
	p.expect("}")
	p.close(body)
}

func (p *parse) statementsUntilClose() {
	for !p.atEOF() && !p.at("}") {
		start := p.pos
		p.statement()
		if p.pos == start {
			p.errorNode()
		}
	}
}

func (p *parse) parameterList() {
	list := p.open(syntax.KindParameterList)
	p.expect("(")
	for !p.atEOF() && !p.at(")") {
		start := p.pos
		p.formalParameter()
		if !p.accept(",") {
			if p.pos == start {
				p.errorNode()
			}
			if !p.at(")") && !p.isName() && !p.at("...") {
				break
			}
		}
	}
	p.expect(")")
	p.close(list)
}

func (p *parse) formalParameter() {
	param := p.open(syntax.KindFormalParameter)
	if p.accept("...") {
		p.b.AddFlags(param, syntax.FlagVararg)
	}
	p.simpleName()
	if p.accept("as") {
		p.typeLiteral()
	}
	if p.accept("=") {
		p.b.AddFlags(param, syntax.FlagDefault)
		p.expression()
	}
	p.close(param)
}

func (p *parse) classDeclaration() {
	decl := p.open(syntax.KindClassDeclaration)
	p.expect("zenClass")
	switch {
	case p.isName():
		p.simpleName()
	case primitiveTypes[p.peek().Text] && p.peek().Kind == syntax.TokenKeyword:
		// declaration files describe primitive types as classes
		t := p.advance()
		p.b.Leaf(syntax.KindSimpleName, t.Span, t.Text)
	}
	if p.accept("extends") {
		p.qualifiedName()
		for p.accept(",") {
			p.qualifiedName()
		}
	}
	body := p.open(syntax.KindClassBody)
	p.expect("{")
	for !p.atEOF() && !p.at("}") {
		start := p.pos
		p.classMember()
		if p.pos == start {
			p.errorNode()
		}
	}
	p.expect("}")
	p.close(body)
	p.close(decl)
}

func (p *parse) classMember() {
	switch {
	case p.at("function") || ((p.at("static") || p.at("global")) && p.peekN(1).Is("function")):
		p.functionDeclaration(syntax.KindFunctionDeclaration)
	case p.at("zenConstructor"):
		p.functionDeclaration(syntax.KindConstructorDeclaration)
	case p.at("operator"):
		p.operatorFunctionDeclaration()
	case p.at("var") || p.at("val") || p.at("static") || p.at("global"):
		p.variableDeclaration()
	}
}

func (p *parse) variableDeclaration() {
	decl := p.open(syntax.KindVariableDeclaration)
	switch {
	case p.accept("var"):
		p.b.AddFlags(decl, syntax.FlagVar)
	case p.accept("val"):
		p.b.AddFlags(decl, syntax.FlagVal)
	case p.accept("static"):
		p.b.AddFlags(decl, syntax.FlagStatic)
	case p.accept("global"):
		p.b.AddFlags(decl, syntax.FlagGlobal)
	}
	p.simpleName()
	if p.accept("as") {
		p.typeLiteral()
	}
	if p.accept("=") {
		p.expression()
	}
	p.expect(";")
	p.close(decl)
}

func (p *parse) statement() {
	switch {
	case p.at("{"):
		block := p.open(syntax.KindBlockStatement)
		p.advance()
		p.statementsUntilClose()
		p.expect("}")
		p.close(block)
	case p.at("return"):
		stmt := p.open(syntax.KindReturnStatement)
		p.advance()
		if !p.at(";") && !p.at("}") {
			p.expression()
		}
		p.expect(";")
		p.close(stmt)
	case p.at("break"):
		stmt := p.open(syntax.KindBreakStatement)
		p.advance()
		p.expect(";")
		p.close(stmt)
	case p.at("continue"):
		stmt := p.open(syntax.KindContinueStatement)
		p.advance()
		p.expect(";")
		p.close(stmt)
	case p.at("if"):
		p.ifStatement()
	case p.at("for"):
		p.foreachStatement()
	case p.at("while"):
		stmt := p.open(syntax.KindWhileStatement)
		p.advance()
		p.expression()
		p.nestedStatement()
		p.close(stmt)
	case p.at("var") || p.at("val") || p.at("static") || p.at("global"):
		p.variableDeclaration()
	case p.at(";"):
		p.advance()
	case p.startsExpression():
		stmt := p.open(syntax.KindExpressionStatement)
		p.expression()
		p.expect(";")
		p.close(stmt)
	}
}

// nestedStatement parses the body of a loop or branch, always consuming at
// least one token unless the input is exhausted.
func (p *parse) nestedStatement() {
	if p.atEOF() || p.at("}") {
		return
	}
	start := p.pos
	p.statement()
	if p.pos == start {
		p.errorNode()
	}
}

func (p *parse) ifStatement() {
	stmt := p.open(syntax.KindIfStatement)
	p.expect("if")
	p.expression()
	then := p.open(syntax.KindThenBody)
	p.nestedStatement()
	p.close(then)
	if p.at("else") {
		p.advance()
		els := p.open(syntax.KindElseBody)
		p.nestedStatement()
		p.close(els)
	}
	p.close(stmt)
}

func (p *parse) foreachStatement() {
	stmt := p.open(syntax.KindForeachStatement)
	p.expect("for")
	for p.isName() {
		v := p.open(syntax.KindForeachVariable)
		p.simpleName()
		p.close(v)
		if !p.accept(",") {
			break
		}
	}
	p.expect("in")
	p.expression()
	p.nestedStatement()
	p.close(stmt)
}
