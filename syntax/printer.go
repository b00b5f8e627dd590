package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// Unparser turns a tree back into source text.
type Unparser interface {
	Unparse(root *Node) string
}

// Printer is the fast unparser. It emits canonical source with
// four-space indentation and no regard for the original layout.
type Printer struct {
	buf    strings.Builder
	indent int

	// retrieve, when set, gets the first shot at rendering a node.
	// The precise backend uses it to splice original source segments.
	retrieve func(n *Node) (string, bool)
}

func NewPrinter() *Printer {
	return &Printer{}
}

func (p *Printer) Unparse(root *Node) string {
	p.buf.Reset()
	p.indent = 0
	if root.Kind == Module {
		for _, stmt := range root.List("body") {
			p.writeStmt(stmt)
		}
	} else if root.Kind.IsStatement() {
		p.writeStmt(root)
	} else if root.Kind.IsClause() {
		p.writeClause(root)
	} else {
		p.writeExpr(root, precLowest)
	}
	return p.buf.String()
}

func (p *Printer) indentation() string {
	return strings.Repeat("    ", p.indent)
}

// fill starts a fresh statement line.
func (p *Printer) fill() {
	if p.buf.Len() > 0 {
		p.buf.WriteByte('\n')
	}
	p.buf.WriteString(p.indentation())
}

func (p *Printer) write(parts ...string) {
	for _, part := range parts {
		p.buf.WriteString(part)
	}
}

func (p *Printer) block(body []*Node) {
	p.write(":")
	p.indent++
	for _, stmt := range body {
		p.writeStmt(stmt)
	}
	p.indent--
}

func (p *Printer) writeStmt(n *Node) {
	p.fill()
	if p.retrieve != nil {
		if text, ok := p.retrieve(n); ok {
			p.buf.WriteString(text)
			return
		}
	}
	switch n.Kind {
	case FunctionDef:
		p.write("def ", n.Str("name"), "(")
		p.writeParams(n.List("params"))
		p.write(")")
		p.block(n.List("body"))
	case ClassDef:
		p.write("class ", n.Str("name"))
		if bases := n.List("bases"); len(bases) > 0 {
			p.write("(")
			p.writeList(bases)
			p.write(")")
		}
		p.block(n.List("body"))
	case Return:
		p.write("return")
		if value := n.Child("value"); value != nil {
			p.write(" ")
			p.writeExpr(value, precLowest)
		}
	case Assign:
		for _, target := range n.List("targets") {
			p.writeExpr(target, precLowest)
			p.write(" = ")
		}
		p.writeExpr(n.Child("value"), precLowest)
	case AugAssign:
		p.writeExpr(n.Child("target"), precLowest)
		p.write(" ", n.Str("op"), "= ")
		p.writeExpr(n.Child("value"), precLowest)
	case For:
		p.write("for ")
		p.writeExpr(n.Child("target"), precLowest)
		p.write(" in ")
		p.writeExpr(n.Child("iter"), precLowest)
		p.block(n.List("body"))
		p.writeElse(n.List("orelse"))
	case While:
		p.write("while ")
		p.writeExpr(n.Child("test"), precLowest)
		p.block(n.List("body"))
		p.writeElse(n.List("orelse"))
	case If:
		p.writeIf(n, "if ")
	case With:
		p.write("with ")
		for i, item := range n.List("items") {
			if i > 0 {
				p.write(", ")
			}
			p.writeWithItem(item)
		}
		p.block(n.List("body"))
	case Try:
		p.write("try")
		p.block(n.List("body"))
		for _, handler := range n.List("handlers") {
			p.fill()
			p.writeHandler(handler)
		}
		p.writeElse(n.List("orelse"))
		if finalbody := n.List("finalbody"); len(finalbody) > 0 {
			p.fill()
			p.write("finally")
			p.block(finalbody)
		}
	case Import:
		p.write("import ")
		p.writeAliases(n.List("names"))
	case ImportFrom:
		p.write("from ", n.Str("module"), " import ")
		p.writeAliases(n.List("names"))
	case ExprStmt:
		p.writeExpr(n.Child("value"), precLowest)
	case Pass:
		p.write("pass")
	case Break:
		p.write("break")
	case Continue:
		p.write("continue")
	default:
		panic(fmt.Sprintf("cannot unparse %s as a statement", n.Kind))
	}
}

func (p *Printer) writeIf(n *Node, keyword string) {
	p.write(keyword)
	p.writeExpr(n.Child("test"), precLowest)
	p.block(n.List("body"))
	orelse := n.List("orelse")
	if len(orelse) == 1 && orelse[0].Kind == If {
		p.fill()
		p.writeIf(orelse[0], "elif ")
		return
	}
	p.writeElse(orelse)
}

func (p *Printer) writeElse(orelse []*Node) {
	if len(orelse) == 0 {
		return
	}
	p.fill()
	p.write("else")
	p.block(orelse)
}

// writeClause renders the clause kinds, so a rewrite can target a
// parameter or an alias directly without going through its statement.
func (p *Printer) writeClause(n *Node) {
	switch n.Kind {
	case Param:
		p.write(n.Str("name"))
		if def := n.Child("default"); def != nil {
			p.write("=")
			p.writeExpr(def, precLowest)
		}
	case Alias:
		p.write(n.Str("name"))
		if asname := n.Str("asname"); asname != "" {
			p.write(" as ", asname)
		}
	case WithItem:
		p.writeWithItem(n)
	case ExceptHandler:
		p.writeHandler(n)
	case Keyword:
		p.write(n.Str("arg"), "=")
		p.writeExpr(n.Child("value"), precLowest)
	case Comprehension:
		p.writeComprehension(n)
	default:
		panic(fmt.Sprintf("cannot unparse %s as a clause", n.Kind))
	}
}

func (p *Printer) writeWithItem(item *Node) {
	p.writeExpr(item.Child("context_expr"), precLowest)
	if vars := item.Child("optional_vars"); vars != nil {
		p.write(" as ")
		p.writeExpr(vars, precLowest)
	}
}

func (p *Printer) writeHandler(handler *Node) {
	p.write("except")
	if typ := handler.Child("type"); typ != nil {
		p.write(" ")
		p.writeExpr(typ, precLowest)
		if name := handler.Str("name"); name != "" {
			p.write(" as ", name)
		}
	}
	p.block(handler.List("body"))
}

func (p *Printer) writeComprehension(gen *Node) {
	p.write("for ")
	p.writeExpr(gen.Child("target"), precLowest)
	p.write(" in ")
	p.writeExpr(gen.Child("iter"), precOr)
	for _, cond := range gen.List("ifs") {
		p.write(" if ")
		p.writeExpr(cond, precOr)
	}
}

func (p *Printer) writeParams(params []*Node) {
	for i, param := range params {
		if i > 0 {
			p.write(", ")
		}
		p.writeClause(param)
	}
}

func (p *Printer) writeAliases(names []*Node) {
	for i, alias := range names {
		if i > 0 {
			p.write(", ")
		}
		p.writeClause(alias)
	}
}

func (p *Printer) writeList(elts []*Node) {
	for i, elt := range elts {
		if i > 0 {
			p.write(", ")
		}
		p.writeExpr(elt, precLowest)
	}
}

// Operator precedence, loosest first.
const (
	precLowest = iota
	precLambda
	precOr
	precAnd
	precNot
	precCmp
	precSum
	precTerm
	precUnary
	precPower
	precPostfix
	precAtom
)

var binOpPrec = map[string]int{
	"==": precCmp, "!=": precCmp, "<": precCmp, "<=": precCmp,
	">": precCmp, ">=": precCmp, "in": precCmp, "not in": precCmp,
	"is": precCmp, "is not": precCmp,
	"+": precSum, "-": precSum,
	"*": precTerm, "/": precTerm, "//": precTerm, "%": precTerm,
	"**": precPower,
}

func precedence(n *Node) int {
	switch n.Kind {
	case Lambda:
		return precLambda
	case BoolOp:
		if n.Str("op") == "or" {
			return precOr
		}
		return precAnd
	case BinOp:
		return binOpPrec[n.Str("op")]
	case UnaryOp:
		if n.Str("op") == "not" {
			return precNot
		}
		return precUnary
	case Call, Attribute, Subscript:
		return precPostfix
	default:
		return precAtom
	}
}

func (p *Printer) writeExpr(n *Node, parentPrec int) {
	prec := precedence(n)
	wrap := prec < parentPrec
	if wrap {
		p.write("(")
	}
	if p.retrieve != nil {
		if text, ok := p.retrieve(n); ok {
			p.buf.WriteString(text)
			if wrap {
				p.write(")")
			}
			return
		}
	}
	switch n.Kind {
	case Name:
		p.write(n.Str("id"))
	case Constant:
		p.write(formatConstant(n.Leaf("value")))
	case BinOp:
		op := n.Str("op")
		if op == "**" {
			p.writeExpr(n.Child("left"), prec+1)
			p.write(" ", op, " ")
			p.writeExpr(n.Child("right"), prec)
		} else {
			p.writeExpr(n.Child("left"), prec)
			p.write(" ", op, " ")
			p.writeExpr(n.Child("right"), prec+1)
		}
	case UnaryOp:
		op := n.Str("op")
		if op == "not" {
			p.write("not ")
		} else {
			p.write(op)
		}
		p.writeExpr(n.Child("operand"), prec)
	case BoolOp:
		sep := " " + n.Str("op") + " "
		for i, value := range n.List("values") {
			if i > 0 {
				p.write(sep)
			}
			p.writeExpr(value, prec+1)
		}
	case Call:
		p.writeExpr(n.Child("func"), precPostfix)
		p.write("(")
		args := n.List("args")
		p.writeList(args)
		for i, kw := range n.List("keywords") {
			if i > 0 || len(args) > 0 {
				p.write(", ")
			}
			p.write(kw.Str("arg"), "=")
			p.writeExpr(kw.Child("value"), precLowest)
		}
		p.write(")")
	case Attribute:
		p.writeExpr(n.Child("value"), precPostfix)
		p.write(".", n.Str("attr"))
	case Subscript:
		p.writeExpr(n.Child("value"), precPostfix)
		p.write("[")
		p.writeExpr(n.Child("index"), precLowest)
		p.write("]")
	case TupleExpr:
		p.write("(")
		elts := n.List("elts")
		p.writeList(elts)
		if len(elts) == 1 {
			p.write(",")
		}
		p.write(")")
	case ListExpr:
		p.write("[")
		p.writeList(n.List("elts"))
		p.write("]")
	case DictExpr:
		p.write("{")
		values := n.List("values")
		for i, key := range n.List("keys") {
			if i > 0 {
				p.write(", ")
			}
			p.writeExpr(key, precLowest)
			p.write(": ")
			p.writeExpr(values[i], precLowest)
		}
		p.write("}")
	case Lambda:
		p.write("lambda")
		if params := n.List("params"); len(params) > 0 {
			p.write(" ")
			p.writeParams(params)
		}
		p.write(": ")
		p.writeExpr(n.Child("body"), precLambda)
	case NamedExpr:
		p.write("(")
		p.writeExpr(n.Child("target"), precAtom)
		p.write(" := ")
		p.writeExpr(n.Child("value"), precLowest)
		p.write(")")
	case ListComp:
		p.write("[")
		p.writeExpr(n.Child("elt"), precLowest)
		for _, gen := range n.List("generators") {
			p.write(" ")
			p.writeComprehension(gen)
		}
		p.write("]")
	default:
		panic(fmt.Sprintf("cannot unparse %s as an expression", n.Kind))
	}
	if wrap {
		p.write(")")
	}
}

func formatConstant(value any) string {
	switch v := value.(type) {
	case nil:
		return "None"
	case bool:
		if v {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		s := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case string:
		return strconv.Quote(v)
	default:
		panic(fmt.Sprintf("cannot format constant %T", value))
	}
}
