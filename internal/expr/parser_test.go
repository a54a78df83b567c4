package expr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseExpression_ArithmeticPrecedence(t *testing.T) {
	n, err := parseExpression("1 + 2 * 3")
	require.NoError(t, err)
	add, ok := n.(binaryExpr)
	require.True(t, ok)
	require.Equal(t, "+", add.op)
	mul, ok := add.r.(binaryExpr)
	require.True(t, ok)
	require.Equal(t, "*", mul.op)
}

func TestParseExpression_ComparisonIsNonAssociative(t *testing.T) {
	n, err := parseExpression("a < b")
	require.NoError(t, err)
	cmp, ok := n.(binaryExpr)
	require.True(t, ok)
	require.Equal(t, "<", cmp.op)

	_, err = parseExpression("a < b < c")
	require.Error(t, err)
}

func TestParseExpression_LogicalPrecedence(t *testing.T) {
	n, err := parseExpression("a == 1 && b == 2 || c == 3")
	require.NoError(t, err)
	or, ok := n.(binaryExpr)
	require.True(t, ok)
	require.Equal(t, "||", or.op)
	and, ok := or.l.(binaryExpr)
	require.True(t, ok)
	require.Equal(t, "&&", and.op)
}

func TestParseExpression_Not(t *testing.T) {
	n, err := parseExpression("!done")
	require.NoError(t, err)
	un, ok := n.(unaryExpr)
	require.True(t, ok)
	require.Equal(t, "!", un.op)
}

func TestParseExpression_UnaryMinus(t *testing.T) {
	n, err := parseExpression("-price")
	require.NoError(t, err)
	un, ok := n.(unaryExpr)
	require.True(t, ok)
	require.Equal(t, "-", un.op)
}

func TestParseExpression_TupleLiteral(t *testing.T) {
	n, err := parseExpression("(a, b, 3)")
	require.NoError(t, err)
	tup, ok := n.(tupleExpr)
	require.True(t, ok)
	require.Len(t, tup.elems, 3)
}

func TestParseExpression_ParenIsNotATuple(t *testing.T) {
	n, err := parseExpression("(a + 1)")
	require.NoError(t, err)
	_, ok := n.(binaryExpr)
	require.True(t, ok)
}

func TestParseExpression_FunctionCall(t *testing.T) {
	n, err := parseExpression(`date_add(start, 5)`)
	require.NoError(t, err)
	call, ok := n.(callExpr)
	require.True(t, ok)
	require.Equal(t, "date_add", call.name)
	require.Len(t, call.args, 2)
}

func TestParseExpression_FunctionCallNoArgs(t *testing.T) {
	n, err := parseExpression(`row_id()`)
	require.NoError(t, err)
	call, ok := n.(callExpr)
	require.True(t, ok)
	require.Empty(t, call.args)
}

func TestParseExpression_TrailingInputErrors(t *testing.T) {
	_, err := parseExpression("1 + 2 3")
	require.Error(t, err)
}

func TestParseExpression_BooleanLiterals(t *testing.T) {
	n, err := parseExpression("true && false")
	require.NoError(t, err)
	and := n.(binaryExpr)
	require.Equal(t, boolLit{value: true}, and.l)
	require.Equal(t, boolLit{value: false}, and.r)
}
