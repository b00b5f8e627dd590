package syntax

import "fmt"

// Parse parses source into a Module tree. Every statement and expression
// node carries its source span; the Module node itself is synthetic and
// has none.
func Parse(source string) (*Node, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	return p.module()
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) cur() Token  { return p.tokens[p.pos] }
func (p *parser) prev() Token { return p.tokens[p.pos-1] }

func (p *parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Type != EOFTok {
		p.pos++
	}
	return tok
}

func (p *parser) at(t TokenType) bool { return p.cur().Type == t }

func (p *parser) atOp(op string) bool {
	tok := p.cur()
	return tok.Type == OpTok && tok.Lexeme == op
}

func (p *parser) atName(name string) bool {
	tok := p.cur()
	return tok.Type == NameTok && tok.Lexeme == name
}

func (p *parser) eat(t TokenType) bool {
	if p.at(t) {
		p.next()
		return true
	}
	return false
}

func (p *parser) eatOp(op string) bool {
	if p.atOp(op) {
		p.next()
		return true
	}
	return false
}

func (p *parser) eatName(name string) bool {
	if p.atName(name) {
		p.next()
		return true
	}
	return false
}

func (p *parser) fail(format string, args ...any) error {
	return &ParseError{Pos: p.cur().Span.Start, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expectOp(op string) error {
	if !p.eatOp(op) {
		return p.fail("expected %q, found %q", op, p.cur().Lexeme)
	}
	return nil
}

func (p *parser) expectName() (Token, error) {
	tok := p.cur()
	if tok.Type != NameTok || IsKeyword(tok.Lexeme) {
		return Token{}, p.fail("expected identifier, found %q", tok.Lexeme)
	}
	p.next()
	return tok, nil
}

func (p *parser) expectNewline() error {
	if !p.eat(NewlineTok) && !p.at(EOFTok) {
		return p.fail("expected end of line, found %q", p.cur().Lexeme)
	}
	return nil
}

// spanned stamps a node with the span from start to the end of the
// previously consumed token.
func (p *parser) spanned(n *Node, start Pos) *Node {
	n.Span = Span{Start: start, End: p.prev().Span.End}
	return n
}

func spanFrom(n *Node, first, last *Node) *Node {
	n.Span = Span{Start: first.Span.Start, End: last.Span.End}
	return n
}

func (p *parser) module() (*Node, error) {
	var body []*Node
	for !p.at(EOFTok) {
		if p.eat(NewlineTok) {
			continue
		}
		stmts, err := p.statement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmts...)
	}
	return NewModule(body), nil
}

// statement parses one logical statement line, which may hold several
// simple statements separated by semicolons.
func (p *parser) statement() ([]*Node, error) {
	tok := p.cur()
	if tok.Type == NameTok {
		switch tok.Lexeme {
		case "def":
			n, err := p.functionDef()
			return wrap(n, err)
		case "class":
			n, err := p.classDef()
			return wrap(n, err)
		case "if":
			n, err := p.ifStmt()
			return wrap(n, err)
		case "while":
			n, err := p.whileStmt()
			return wrap(n, err)
		case "for":
			n, err := p.forStmt()
			return wrap(n, err)
		case "with":
			n, err := p.withStmt()
			return wrap(n, err)
		case "try":
			n, err := p.tryStmt()
			return wrap(n, err)
		}
	}
	return p.simpleStatements()
}

func wrap(n *Node, err error) ([]*Node, error) {
	if err != nil {
		return nil, err
	}
	return []*Node{n}, nil
}

func (p *parser) simpleStatements() ([]*Node, error) {
	var stmts []*Node
	for {
		stmt, err := p.simpleStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if !p.eatOp(";") {
			break
		}
		if p.at(NewlineTok) || p.at(EOFTok) {
			break
		}
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *parser) simpleStatement() (*Node, error) {
	start := p.cur().Span.Start
	tok := p.cur()
	if tok.Type == NameTok {
		switch tok.Lexeme {
		case "return":
			p.next()
			var value *Node
			if !p.at(NewlineTok) && !p.at(EOFTok) && !p.atOp(";") {
				var err error
				value, err = p.exprOrTuple()
				if err != nil {
					return nil, err
				}
			}
			return p.spanned(NewReturn(value), start), nil
		case "pass":
			p.next()
			return p.spanned(NewPass(), start), nil
		case "break":
			p.next()
			return p.spanned(NewBreak(), start), nil
		case "continue":
			p.next()
			return p.spanned(NewContinue(), start), nil
		case "import":
			return p.importStmt()
		case "from":
			return p.importFromStmt()
		}
	}
	return p.exprStatement()
}

func (p *parser) importStmt() (*Node, error) {
	start := p.cur().Span.Start
	p.next() // import
	names, err := p.aliases()
	if err != nil {
		return nil, err
	}
	return p.spanned(NewImport(names), start), nil
}

func (p *parser) importFromStmt() (*Node, error) {
	start := p.cur().Span.Start
	p.next() // from
	module, err := p.dottedName()
	if err != nil {
		return nil, err
	}
	if !p.eatName("import") {
		return nil, p.fail("expected \"import\"")
	}
	names, err := p.aliases()
	if err != nil {
		return nil, err
	}
	return p.spanned(NewImportFrom(module, names), start), nil
}

func (p *parser) aliases() ([]*Node, error) {
	var names []*Node
	for {
		start := p.cur().Span.Start
		name, err := p.dottedName()
		if err != nil {
			return nil, err
		}
		asname := ""
		if p.eatName("as") {
			tok, err := p.expectName()
			if err != nil {
				return nil, err
			}
			asname = tok.Lexeme
		}
		names = append(names, p.spanned(NewAlias(name, asname), start))
		if !p.eatOp(",") {
			break
		}
	}
	return names, nil
}

func (p *parser) dottedName() (string, error) {
	tok, err := p.expectName()
	if err != nil {
		return "", err
	}
	name := tok.Lexeme
	for p.atOp(".") {
		p.next()
		tok, err := p.expectName()
		if err != nil {
			return "", err
		}
		name += "." + tok.Lexeme
	}
	return name, nil
}

// exprStatement parses an expression, assignment or augmented assignment.
func (p *parser) exprStatement() (*Node, error) {
	start := p.cur().Span.Start
	first, err := p.exprOrTuple()
	if err != nil {
		return nil, err
	}
	for _, op := range []string{"+=", "-=", "*=", "/=", "//=", "%=", "**="} {
		if p.atOp(op) {
			p.next()
			value, err := p.exprOrTuple()
			if err != nil {
				return nil, err
			}
			setStoreContext(first)
			return p.spanned(NewAugAssign(first, op[:len(op)-1], value), start), nil
		}
	}
	if !p.atOp("=") {
		return p.spanned(NewExprStmt(first), start), nil
	}
	parts := []*Node{first}
	for p.eatOp("=") {
		part, err := p.exprOrTuple()
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	targets := parts[:len(parts)-1]
	for _, target := range targets {
		setStoreContext(target)
	}
	return p.spanned(NewAssign(targets, parts[len(parts)-1]), start), nil
}

// setStoreContext flips the expression context of an assignment target.
func setStoreContext(n *Node) {
	switch n.Kind {
	case Name, Attribute, Subscript:
		n.Set("ctx", Store)
	case TupleExpr, ListExpr:
		n.Set("ctx", Store)
		for _, elt := range n.List("elts") {
			setStoreContext(elt)
		}
	}
}

func (p *parser) functionDef() (*Node, error) {
	start := p.cur().Span.Start
	p.next() // def
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	params, err := p.params(")")
	if err != nil {
		return nil, err
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	if err := p.expectOp(":"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	n := NewFunctionDef(name.Lexeme, params, body)
	n.Span = Span{Start: start, End: body[len(body)-1].Span.End}
	return n, nil
}

func (p *parser) params(closer string) ([]*Node, error) {
	var params []*Node
	for !p.atOp(closer) {
		start := p.cur().Span.Start
		name, err := p.expectName()
		if err != nil {
			return nil, err
		}
		var def *Node
		if p.eatOp("=") {
			def, err = p.expression()
			if err != nil {
				return nil, err
			}
		}
		params = append(params, p.spanned(NewParam(name.Lexeme, def), start))
		if !p.eatOp(",") {
			break
		}
	}
	return params, nil
}

func (p *parser) classDef() (*Node, error) {
	start := p.cur().Span.Start
	p.next() // class
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	var bases []*Node
	if p.eatOp("(") {
		for !p.atOp(")") {
			base, err := p.expression()
			if err != nil {
				return nil, err
			}
			bases = append(bases, base)
			if !p.eatOp(",") {
				break
			}
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
	}
	if err := p.expectOp(":"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	n := NewClassDef(name.Lexeme, bases, body)
	n.Span = Span{Start: start, End: body[len(body)-1].Span.End}
	return n, nil
}

func (p *parser) ifStmt() (*Node, error) {
	start := p.cur().Span.Start
	p.next() // if or elif
	test, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp(":"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	var orelse []*Node
	switch {
	case p.atName("elif"):
		nested, err := p.ifStmt()
		if err != nil {
			return nil, err
		}
		orelse = []*Node{nested}
	case p.atName("else"):
		p.next()
		if err := p.expectOp(":"); err != nil {
			return nil, err
		}
		orelse, err = p.block()
		if err != nil {
			return nil, err
		}
	}
	n := NewIf(test, body, orelse)
	end := body[len(body)-1].Span.End
	if len(orelse) > 0 {
		end = orelse[len(orelse)-1].Span.End
	}
	n.Span = Span{Start: start, End: end}
	return n, nil
}

func (p *parser) whileStmt() (*Node, error) {
	start := p.cur().Span.Start
	p.next() // while
	test, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp(":"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	orelse, err := p.elseBlock()
	if err != nil {
		return nil, err
	}
	n := NewWhile(test, body, orelse)
	end := body[len(body)-1].Span.End
	if len(orelse) > 0 {
		end = orelse[len(orelse)-1].Span.End
	}
	n.Span = Span{Start: start, End: end}
	return n, nil
}

func (p *parser) forStmt() (*Node, error) {
	start := p.cur().Span.Start
	p.next() // for
	target, err := p.targetList()
	if err != nil {
		return nil, err
	}
	if !p.eatName("in") {
		return nil, p.fail("expected \"in\"")
	}
	iter, err := p.exprOrTuple()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp(":"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	orelse, err := p.elseBlock()
	if err != nil {
		return nil, err
	}
	n := NewFor(target, iter, body, orelse)
	end := body[len(body)-1].Span.End
	if len(orelse) > 0 {
		end = orelse[len(orelse)-1].Span.End
	}
	n.Span = Span{Start: start, End: end}
	return n, nil
}

func (p *parser) elseBlock() ([]*Node, error) {
	if !p.atName("else") {
		return nil, nil
	}
	p.next()
	if err := p.expectOp(":"); err != nil {
		return nil, err
	}
	return p.block()
}

// targetList parses assignment targets for "for" loops and
// comprehensions. Targets are primaries, so "in" never binds here.
func (p *parser) targetList() (*Node, error) {
	first, err := p.postfix()
	if err != nil {
		return nil, err
	}
	if !p.atOp(",") {
		setStoreContext(first)
		return first, nil
	}
	elts := []*Node{first}
	for p.eatOp(",") {
		if p.atName("in") {
			break
		}
		elt, err := p.postfix()
		if err != nil {
			return nil, err
		}
		elts = append(elts, elt)
	}
	target := spanFrom(NewTupleExpr(elts, Load), first, elts[len(elts)-1])
	setStoreContext(target)
	return target, nil
}

func (p *parser) withStmt() (*Node, error) {
	start := p.cur().Span.Start
	p.next() // with
	var items []*Node
	for {
		itemStart := p.cur().Span.Start
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		var vars *Node
		if p.eatName("as") {
			vars, err = p.expression()
			if err != nil {
				return nil, err
			}
			setStoreContext(vars)
		}
		items = append(items, p.spanned(NewWithItem(expr, vars), itemStart))
		if !p.eatOp(",") {
			break
		}
	}
	if err := p.expectOp(":"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	n := NewWith(items, body)
	n.Span = Span{Start: start, End: body[len(body)-1].Span.End}
	return n, nil
}

func (p *parser) tryStmt() (*Node, error) {
	start := p.cur().Span.Start
	p.next() // try
	if err := p.expectOp(":"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	var handlers []*Node
	for p.atName("except") {
		hStart := p.cur().Span.Start
		p.next()
		var typ *Node
		name := ""
		if !p.atOp(":") {
			typ, err = p.expression()
			if err != nil {
				return nil, err
			}
			if p.eatName("as") {
				tok, err := p.expectName()
				if err != nil {
					return nil, err
				}
				name = tok.Lexeme
			}
		}
		if err := p.expectOp(":"); err != nil {
			return nil, err
		}
		hBody, err := p.block()
		if err != nil {
			return nil, err
		}
		handler := NewExceptHandler(typ, name, hBody)
		handler.Span = Span{Start: hStart, End: hBody[len(hBody)-1].Span.End}
		handlers = append(handlers, handler)
	}
	orelse, err := p.elseBlock()
	if err != nil {
		return nil, err
	}
	var finalbody []*Node
	if p.atName("finally") {
		p.next()
		if err := p.expectOp(":"); err != nil {
			return nil, err
		}
		finalbody, err = p.block()
		if err != nil {
			return nil, err
		}
	}
	if len(handlers) == 0 && len(finalbody) == 0 {
		return nil, p.fail("expected \"except\" or \"finally\" block")
	}
	n := NewTry(body, handlers, orelse, finalbody)
	end := body[len(body)-1].Span.End
	for _, part := range [][]*Node{handlers, orelse, finalbody} {
		if len(part) > 0 {
			end = part[len(part)-1].Span.End
		}
	}
	n.Span = Span{Start: start, End: end}
	return n, nil
}

// block parses either an inline statement list after a colon or an
// indented suite.
func (p *parser) block() ([]*Node, error) {
	if !p.at(NewlineTok) {
		return p.simpleStatements()
	}
	p.next()
	if !p.eat(IndentTok) {
		return nil, p.fail("expected an indented block")
	}
	var body []*Node
	for !p.at(DedentTok) && !p.at(EOFTok) {
		if p.eat(NewlineTok) {
			continue
		}
		stmts, err := p.statement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmts...)
	}
	p.eat(DedentTok)
	if len(body) == 0 {
		return nil, p.fail("expected an indented block")
	}
	return body, nil
}
