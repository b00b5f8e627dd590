package syntax

// Kind identifies the grammatical category of a Node.
type Kind uint8

const (
	Invalid Kind = iota

	Module

	// Statements
	FunctionDef
	ClassDef
	Return
	Assign
	AugAssign
	For
	While
	If
	With
	Try
	Import
	ImportFrom
	ExprStmt
	Pass
	Break
	Continue

	// Clauses
	Param
	ExceptHandler
	WithItem
	Alias
	Comprehension
	Keyword

	// Expressions
	Name
	Constant
	BinOp
	UnaryOp
	BoolOp
	Call
	Attribute
	Subscript
	ListExpr
	TupleExpr
	DictExpr
	Lambda
	NamedExpr
	ListComp
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	Module:        "Module",
	FunctionDef:   "FunctionDef",
	ClassDef:      "ClassDef",
	Return:        "Return",
	Assign:        "Assign",
	AugAssign:     "AugAssign",
	For:           "For",
	While:         "While",
	If:            "If",
	With:          "With",
	Try:           "Try",
	Import:        "Import",
	ImportFrom:    "ImportFrom",
	ExprStmt:      "ExprStmt",
	Pass:          "Pass",
	Break:         "Break",
	Continue:      "Continue",
	Param:         "Param",
	ExceptHandler: "ExceptHandler",
	WithItem:      "WithItem",
	Alias:         "Alias",
	Comprehension: "Comprehension",
	Keyword:       "Keyword",
	Name:          "Name",
	Constant:      "Constant",
	BinOp:         "BinOp",
	UnaryOp:       "UnaryOp",
	BoolOp:        "BoolOp",
	Call:          "Call",
	Attribute:     "Attribute",
	Subscript:     "Subscript",
	ListExpr:      "ListExpr",
	TupleExpr:     "TupleExpr",
	DictExpr:      "DictExpr",
	Lambda:        "Lambda",
	NamedExpr:     "NamedExpr",
	ListComp:      "ListComp",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsStatement reports whether k is a statement kind.
func (k Kind) IsStatement() bool {
	return k >= FunctionDef && k <= Continue
}

// IsClause reports whether k is a clause kind. Clauses are positioned
// fragments of a statement, such as parameters and import aliases.
func (k Kind) IsClause() bool {
	return k >= Param && k <= Keyword
}

// IsExpression reports whether k is an expression kind.
func (k Kind) IsExpression() bool {
	return k >= Name && k <= ListComp
}

// IsFunction reports whether k introduces a function scope.
func (k Kind) IsFunction() bool {
	return k == FunctionDef || k == Lambda
}

// IsComprehension reports whether k introduces a comprehension scope.
func (k Kind) IsComprehension() bool {
	return k == ListComp
}

// IsContextful reports whether k introduces a lexical scope of any sort.
func (k Kind) IsContextful() bool {
	return k == Module || k == ClassDef || k.IsFunction() || k.IsComprehension()
}

// Expression contexts, stored as the "ctx" leaf of Name, Attribute,
// Subscript, ListExpr and TupleExpr nodes.
const (
	Load  = "load"
	Store = "store"
)
