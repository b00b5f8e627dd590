package syntax

// Node constructors. These centralize the canonical field layout of every
// kind: field order here is the declaration order structural diffing and
// unparsing rely on. Constructed nodes are synthetic (zero span); the
// parser stamps spans after construction.

func node(kind Kind, fields ...Field) *Node {
	for i := range fields {
		fields[i].Value = normalize(fields[i].Value)
	}
	return &Node{Kind: kind, Fields: fields}
}

func NewModule(body []*Node) *Node {
	return node(Module, Field{"body", body})
}

func NewFunctionDef(name string, params, body []*Node) *Node {
	return node(FunctionDef, Field{"name", name}, Field{"params", params}, Field{"body", body})
}

func NewClassDef(name string, bases, body []*Node) *Node {
	return node(ClassDef, Field{"name", name}, Field{"bases", bases}, Field{"body", body})
}

func NewReturn(value *Node) *Node {
	return node(Return, Field{"value", value})
}

func NewAssign(targets []*Node, value *Node) *Node {
	return node(Assign, Field{"targets", targets}, Field{"value", value})
}

func NewAugAssign(target *Node, op string, value *Node) *Node {
	return node(AugAssign, Field{"target", target}, Field{"op", op}, Field{"value", value})
}

func NewFor(target, iter *Node, body, orelse []*Node) *Node {
	return node(For, Field{"target", target}, Field{"iter", iter}, Field{"body", body}, Field{"orelse", orelse})
}

func NewWhile(test *Node, body, orelse []*Node) *Node {
	return node(While, Field{"test", test}, Field{"body", body}, Field{"orelse", orelse})
}

func NewIf(test *Node, body, orelse []*Node) *Node {
	return node(If, Field{"test", test}, Field{"body", body}, Field{"orelse", orelse})
}

func NewWith(items, body []*Node) *Node {
	return node(With, Field{"items", items}, Field{"body", body})
}

func NewTry(body, handlers, orelse, finalbody []*Node) *Node {
	return node(Try, Field{"body", body}, Field{"handlers", handlers}, Field{"orelse", orelse}, Field{"finalbody", finalbody})
}

func NewImport(names []*Node) *Node {
	return node(Import, Field{"names", names})
}

func NewImportFrom(module string, names []*Node) *Node {
	return node(ImportFrom, Field{"module", module}, Field{"names", names})
}

func NewExprStmt(value *Node) *Node {
	return node(ExprStmt, Field{"value", value})
}

func NewPass() *Node     { return node(Pass) }
func NewBreak() *Node    { return node(Break) }
func NewContinue() *Node { return node(Continue) }

func NewParam(name string, def *Node) *Node {
	return node(Param, Field{"name", name}, Field{"default", def})
}

func NewExceptHandler(typ *Node, name string, body []*Node) *Node {
	return node(ExceptHandler, Field{"type", typ}, Field{"name", name}, Field{"body", body})
}

func NewWithItem(contextExpr, optionalVars *Node) *Node {
	return node(WithItem, Field{"context_expr", contextExpr}, Field{"optional_vars", optionalVars})
}

func NewAlias(name, asname string) *Node {
	return node(Alias, Field{"name", name}, Field{"asname", asname})
}

func NewComprehension(target, iter *Node, ifs []*Node) *Node {
	return node(Comprehension, Field{"target", target}, Field{"iter", iter}, Field{"ifs", ifs})
}

func NewKeyword(arg string, value *Node) *Node {
	return node(Keyword, Field{"arg", arg}, Field{"value", value})
}

func NewName(id, ctx string) *Node {
	return node(Name, Field{"id", id}, Field{"ctx", ctx})
}

// NewConstant builds a literal node. value must be nil, bool, int64,
// float64 or string. The "value" field is the one constant-carrying
// field: nil here means the None literal, not an absent child.
func NewConstant(value any) *Node {
	return node(Constant, Field{"value", value})
}

func NewBinOp(left *Node, op string, right *Node) *Node {
	return node(BinOp, Field{"left", left}, Field{"op", op}, Field{"right", right})
}

func NewUnaryOp(op string, operand *Node) *Node {
	return node(UnaryOp, Field{"op", op}, Field{"operand", operand})
}

func NewBoolOp(op string, values []*Node) *Node {
	return node(BoolOp, Field{"op", op}, Field{"values", values})
}

func NewCall(fn *Node, args, keywords []*Node) *Node {
	return node(Call, Field{"func", fn}, Field{"args", args}, Field{"keywords", keywords})
}

func NewAttribute(value *Node, attr, ctx string) *Node {
	return node(Attribute, Field{"value", value}, Field{"attr", attr}, Field{"ctx", ctx})
}

func NewSubscript(value, index *Node, ctx string) *Node {
	return node(Subscript, Field{"value", value}, Field{"index", index}, Field{"ctx", ctx})
}

func NewListExpr(elts []*Node, ctx string) *Node {
	return node(ListExpr, Field{"elts", elts}, Field{"ctx", ctx})
}

func NewTupleExpr(elts []*Node, ctx string) *Node {
	return node(TupleExpr, Field{"elts", elts}, Field{"ctx", ctx})
}

func NewDictExpr(keys, values []*Node) *Node {
	return node(DictExpr, Field{"keys", keys}, Field{"values", values})
}

func NewLambda(params []*Node, body *Node) *Node {
	return node(Lambda, Field{"params", params}, Field{"body", body})
}

func NewNamedExpr(target, value *Node) *Node {
	return node(NamedExpr, Field{"target", target}, Field{"value", value})
}

func NewListComp(elt *Node, generators []*Node) *Node {
	return node(ListComp, Field{"elt", elt}, Field{"generators", generators})
}
