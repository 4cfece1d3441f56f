package syntax

// Kind tags a syntax tree node. The set is closed: every consumer switches
// over it and treats unknown or error kinds as no-ops.
type Kind uint8

const (
	KindError Kind = iota
	KindScriptFile

	// declarations
	KindImportDeclaration
	KindFunctionDeclaration
	KindExpandFunctionDeclaration
	KindConstructorDeclaration
	KindOperatorFunctionDeclaration
	KindClassDeclaration
	KindClassBody
	KindFunctionBody
	KindParameterList
	KindFormalParameter
	KindVariableDeclaration

	// names
	KindQualifiedName
	KindSimpleName

	// statements
	KindBlockStatement
	KindIfStatement
	KindThenBody
	KindElseBody
	KindForeachStatement
	KindForeachVariable
	KindWhileStatement
	KindExpressionStatement
	KindReturnStatement
	KindBreakStatement
	KindContinueStatement

	// expressions
	KindSimpleNameExpr
	KindMemberAccessExpr
	KindCallExpr
	KindIndexExpr
	KindParensExpr
	KindFunctionExpr
	KindLiteralExpr
	KindUnaryExpr
	KindBinaryExpr
	KindCompareExpr
	KindLogicalExpr
	KindAssignExpr
	KindConditionalExpr
	KindTypeCastExpr
	KindInstanceofExpr
	KindIntRangeExpr
	KindArrayLiteral
	KindMapLiteral
	KindMapEntry
	KindBracketHandlerExpr

	// types
	KindPrimitiveType
	KindClassType
	KindListType
	KindArrayType
	KindMapType
	KindFunctionType
	KindIntersectionType

	numKinds
)

var kindNames = [numKinds]string{
	KindError:                       "error",
	KindScriptFile:                  "script_file",
	KindImportDeclaration:           "import_declaration",
	KindFunctionDeclaration:         "function_declaration",
	KindExpandFunctionDeclaration:   "expand_function_declaration",
	KindConstructorDeclaration:      "constructor_declaration",
	KindOperatorFunctionDeclaration: "operator_function_declaration",
	KindClassDeclaration:            "class_declaration",
	KindClassBody:                   "class_body",
	KindFunctionBody:                "function_body",
	KindParameterList:               "parameter_list",
	KindFormalParameter:             "formal_parameter",
	KindVariableDeclaration:         "variable_declaration",
	KindQualifiedName:               "qualified_name",
	KindSimpleName:                  "simple_name",
	KindBlockStatement:              "block_statement",
	KindIfStatement:                 "if_statement",
	KindThenBody:                    "then_body",
	KindElseBody:                    "else_body",
	KindForeachStatement:            "foreach_statement",
	KindForeachVariable:             "foreach_variable",
	KindWhileStatement:              "while_statement",
	KindExpressionStatement:         "expression_statement",
	KindReturnStatement:             "return_statement",
	KindBreakStatement:              "break_statement",
	KindContinueStatement:           "continue_statement",
	KindSimpleNameExpr:              "simple_name_expression",
	KindMemberAccessExpr:            "member_access_expression",
	KindCallExpr:                    "call_expression",
	KindIndexExpr:                   "member_index_expression",
	KindParensExpr:                  "parens_expression",
	KindFunctionExpr:                "function_expression",
	KindLiteralExpr:                 "literal",
	KindUnaryExpr:                   "unary_expression",
	KindBinaryExpr:                  "binary_expression",
	KindCompareExpr:                 "compare_expression",
	KindLogicalExpr:                 "logical_expression",
	KindAssignExpr:                  "assignment_expression",
	KindConditionalExpr:             "conditional_expression",
	KindTypeCastExpr:                "type_cast_expression",
	KindInstanceofExpr:              "instanceof_expression",
	KindIntRangeExpr:                "int_range_expression",
	KindArrayLiteral:                "array_literal",
	KindMapLiteral:                  "map_literal",
	KindMapEntry:                    "map_entry",
	KindBracketHandlerExpr:          "bracket_handler_expression",
	KindPrimitiveType:               "primitive_type",
	KindClassType:                   "class_type",
	KindListType:                    "list_type",
	KindArrayType:                   "array_type",
	KindMapType:                     "map_type",
	KindFunctionType:                "function_type",
	KindIntersectionType:            "intersection_type",
}

// String implements fmt.Stringer
func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return "unknown"
}

// IsType reports whether the kind denotes a type annotation.
func (k Kind) IsType() bool {
	return k >= KindPrimitiveType && k <= KindIntersectionType
}

// IsFunctionLike reports whether the kind declares a callable whose
// parameters and body share one scope.
func (k Kind) IsFunctionLike() bool {
	switch k {
	case KindFunctionDeclaration, KindExpandFunctionDeclaration, KindConstructorDeclaration, KindOperatorFunctionDeclaration:
		return true
	}
	return false
}
