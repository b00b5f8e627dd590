package syntax

// exprOrTuple parses an expression, folding a bare comma-separated
// sequence into a tuple.
func (p *parser) exprOrTuple() (*Node, error) {
	first, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.atOp(",") {
		return first, nil
	}
	elts := []*Node{first}
	for p.eatOp(",") {
		if p.exprBoundary() {
			break
		}
		elt, err := p.expression()
		if err != nil {
			return nil, err
		}
		elts = append(elts, elt)
	}
	return spanFrom(NewTupleExpr(elts, Load), first, elts[len(elts)-1]), nil
}

// exprBoundary reports whether the current token cannot start an
// expression, which ends a trailing-comma sequence.
func (p *parser) exprBoundary() bool {
	tok := p.cur()
	switch tok.Type {
	case NewlineTok, EOFTok, IndentTok, DedentTok:
		return true
	case OpTok:
		switch tok.Lexeme {
		case ")", "]", "}", ":", "=", ";":
			return true
		}
	case NameTok:
		switch tok.Lexeme {
		case "in", "if", "for", "else", "as":
			return true
		}
	}
	return false
}

func (p *parser) expression() (*Node, error) {
	if p.atName("lambda") {
		return p.lambda()
	}
	value, err := p.disjunction()
	if err != nil {
		return nil, err
	}
	if value.Kind == Name && p.atOp(":=") {
		p.next()
		rhs, err := p.expression()
		if err != nil {
			return nil, err
		}
		value.Set("ctx", Store)
		return spanFrom(NewNamedExpr(value, rhs), value, rhs), nil
	}
	return value, nil
}

func (p *parser) lambda() (*Node, error) {
	start := p.cur().Span.Start
	p.next() // lambda
	params, err := p.params(":")
	if err != nil {
		return nil, err
	}
	if err := p.expectOp(":"); err != nil {
		return nil, err
	}
	body, err := p.expression()
	if err != nil {
		return nil, err
	}
	return p.spanned(NewLambda(params, body), start), nil
}

func (p *parser) disjunction() (*Node, error) {
	first, err := p.conjunction()
	if err != nil {
		return nil, err
	}
	if !p.atName("or") {
		return first, nil
	}
	values := []*Node{first}
	for p.eatName("or") {
		value, err := p.conjunction()
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return spanFrom(NewBoolOp("or", values), first, values[len(values)-1]), nil
}

func (p *parser) conjunction() (*Node, error) {
	first, err := p.inversion()
	if err != nil {
		return nil, err
	}
	if !p.atName("and") {
		return first, nil
	}
	values := []*Node{first}
	for p.eatName("and") {
		value, err := p.inversion()
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return spanFrom(NewBoolOp("and", values), first, values[len(values)-1]), nil
}

func (p *parser) inversion() (*Node, error) {
	if p.atName("not") {
		start := p.cur().Span.Start
		p.next()
		operand, err := p.inversion()
		if err != nil {
			return nil, err
		}
		return p.spanned(NewUnaryOp("not", operand), start), nil
	}
	return p.comparison()
}

// comparison folds chained comparisons left to right.
func (p *parser) comparison() (*Node, error) {
	left, err := p.sum()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.comparisonOp()
		if !ok {
			return left, nil
		}
		right, err := p.sum()
		if err != nil {
			return nil, err
		}
		left = spanFrom(NewBinOp(left, op, right), left, right)
	}
}

func (p *parser) comparisonOp() (string, bool) {
	tok := p.cur()
	if tok.Type == OpTok {
		switch tok.Lexeme {
		case "==", "!=", "<", "<=", ">", ">=":
			p.next()
			return tok.Lexeme, true
		}
	}
	if tok.Type == NameTok {
		switch tok.Lexeme {
		case "in":
			p.next()
			return "in", true
		case "not":
			if p.pos+1 < len(p.tokens) && p.tokens[p.pos+1].Type == NameTok && p.tokens[p.pos+1].Lexeme == "in" {
				p.next()
				p.next()
				return "not in", true
			}
		case "is":
			p.next()
			if p.eatName("not") {
				return "is not", true
			}
			return "is", true
		}
	}
	return "", false
}

func (p *parser) sum() (*Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.atOp("+") || p.atOp("-") {
		op := p.next().Lexeme
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = spanFrom(NewBinOp(left, op, right), left, right)
	}
	return left, nil
}

func (p *parser) term() (*Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.atOp("*") || p.atOp("/") || p.atOp("//") || p.atOp("%") {
		op := p.next().Lexeme
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = spanFrom(NewBinOp(left, op, right), left, right)
	}
	return left, nil
}

func (p *parser) unary() (*Node, error) {
	if p.atOp("-") || p.atOp("+") {
		start := p.cur().Span.Start
		op := p.next().Lexeme
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return p.spanned(NewUnaryOp(op, operand), start), nil
	}
	return p.power()
}

func (p *parser) power() (*Node, error) {
	base, err := p.postfix()
	if err != nil {
		return nil, err
	}
	if !p.atOp("**") {
		return base, nil
	}
	p.next()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return spanFrom(NewBinOp(base, "**", exp), base, exp), nil
}

func (p *parser) postfix() (*Node, error) {
	value, err := p.atom()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.atOp("("):
			p.next()
			args, keywords, err := p.callArgs()
			if err != nil {
				return nil, err
			}
			value = p.spanned(NewCall(value, args, keywords), value.Span.Start)
		case p.atOp("."):
			p.next()
			attr, err := p.expectName()
			if err != nil {
				return nil, err
			}
			value = p.spanned(NewAttribute(value, attr.Lexeme, Load), value.Span.Start)
		case p.atOp("["):
			p.next()
			index, err := p.exprOrTuple()
			if err != nil {
				return nil, err
			}
			if err := p.expectOp("]"); err != nil {
				return nil, err
			}
			value = p.spanned(NewSubscript(value, index, Load), value.Span.Start)
		default:
			return value, nil
		}
	}
}

func (p *parser) callArgs() (args, keywords []*Node, err error) {
	for !p.atOp(")") {
		if p.cur().Type == NameTok && !IsKeyword(p.cur().Lexeme) &&
			p.pos+1 < len(p.tokens) && p.tokens[p.pos+1].Type == OpTok && p.tokens[p.pos+1].Lexeme == "=" {
			start := p.cur().Span.Start
			arg := p.next().Lexeme
			p.next() // =
			value, err := p.expression()
			if err != nil {
				return nil, nil, err
			}
			keywords = append(keywords, p.spanned(NewKeyword(arg, value), start))
		} else {
			if len(keywords) > 0 {
				return nil, nil, p.fail("positional argument follows keyword argument")
			}
			arg, err := p.expression()
			if err != nil {
				return nil, nil, err
			}
			args = append(args, arg)
		}
		if !p.eatOp(",") {
			break
		}
	}
	if err := p.expectOp(")"); err != nil {
		return nil, nil, err
	}
	return args, keywords, nil
}

func (p *parser) atom() (*Node, error) {
	tok := p.cur()
	start := tok.Span.Start
	switch tok.Type {
	case NumberTok:
		p.next()
		return p.spanned(NewConstant(tok.Literal), start), nil
	case StringTok:
		p.next()
		return p.spanned(NewConstant(tok.Literal), start), nil
	case NameTok:
		switch tok.Lexeme {
		case "None":
			p.next()
			return p.spanned(NewConstant(nil), start), nil
		case "True":
			p.next()
			return p.spanned(NewConstant(true), start), nil
		case "False":
			p.next()
			return p.spanned(NewConstant(false), start), nil
		}
		if IsKeyword(tok.Lexeme) {
			return nil, p.fail("unexpected keyword %q", tok.Lexeme)
		}
		p.next()
		return p.spanned(NewName(tok.Lexeme, Load), start), nil
	case OpTok:
		switch tok.Lexeme {
		case "(":
			return p.parenExpr()
		case "[":
			return p.listExpr()
		case "{":
			return p.dictExpr()
		}
	}
	return nil, p.fail("unexpected token %q", tok.Lexeme)
}

// parenExpr parses a parenthesized expression or an explicit tuple.
// The parentheses are not part of the inner node's span.
func (p *parser) parenExpr() (*Node, error) {
	start := p.cur().Span.Start
	p.next() // (
	if p.atOp(")") {
		p.next()
		return p.spanned(NewTupleExpr(nil, Load), start), nil
	}
	first, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.atOp(")") {
		p.next()
		return first, nil
	}
	elts := []*Node{first}
	for p.eatOp(",") {
		if p.atOp(")") {
			break
		}
		elt, err := p.expression()
		if err != nil {
			return nil, err
		}
		elts = append(elts, elt)
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return p.spanned(NewTupleExpr(elts, Load), start), nil
}

func (p *parser) listExpr() (*Node, error) {
	start := p.cur().Span.Start
	p.next() // [
	if p.atOp("]") {
		p.next()
		return p.spanned(NewListExpr(nil, Load), start), nil
	}
	first, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.atName("for") {
		generators, err := p.comprehensions()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp("]"); err != nil {
			return nil, err
		}
		return p.spanned(NewListComp(first, generators), start), nil
	}
	elts := []*Node{first}
	for p.eatOp(",") {
		if p.atOp("]") {
			break
		}
		elt, err := p.expression()
		if err != nil {
			return nil, err
		}
		elts = append(elts, elt)
	}
	if err := p.expectOp("]"); err != nil {
		return nil, err
	}
	return p.spanned(NewListExpr(elts, Load), start), nil
}

func (p *parser) comprehensions() ([]*Node, error) {
	var generators []*Node
	for p.atName("for") {
		start := p.cur().Span.Start
		p.next()
		target, err := p.targetList()
		if err != nil {
			return nil, err
		}
		if !p.eatName("in") {
			return nil, p.fail("expected \"in\"")
		}
		iter, err := p.disjunction()
		if err != nil {
			return nil, err
		}
		var ifs []*Node
		for p.atName("if") {
			p.next()
			cond, err := p.disjunction()
			if err != nil {
				return nil, err
			}
			ifs = append(ifs, cond)
		}
		generators = append(generators, p.spanned(NewComprehension(target, iter, ifs), start))
	}
	return generators, nil
}

func (p *parser) dictExpr() (*Node, error) {
	start := p.cur().Span.Start
	p.next() // {
	var keys, values []*Node
	for !p.atOp("}") {
		key, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(":"); err != nil {
			return nil, err
		}
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
		values = append(values, value)
		if !p.eatOp(",") {
			break
		}
	}
	if err := p.expectOp("}"); err != nil {
		return nil, err
	}
	return p.spanned(NewDictExpr(keys, values), start), nil
}
