package types_test

import (
	"testing"

	"github.com/mna/ferrox/lang/types"
	"github.com/stretchr/testify/require"
)

func TestOperatorCompatible(t *testing.T) {
	require.True(t, types.OperatorCompatible(types.U64, types.U64))
	require.True(t, types.OperatorCompatible(types.U64, types.UnknownInt))
	require.True(t, types.OperatorCompatible(types.UnknownInt, types.U32))
	require.True(t, types.OperatorCompatible(types.UnknownInt, types.UnknownInt))
	require.False(t, types.OperatorCompatible(types.Bool, types.U64))
	require.False(t, types.OperatorCompatible(types.U64, types.U32))
	require.False(t, types.OperatorCompatible(types.Bool, types.UnknownInt))
}

func TestAssignmentCompatible(t *testing.T) {
	require.True(t, types.AssignmentCompatible(types.U64, types.U64))
	require.True(t, types.AssignmentCompatible(types.Unknown, types.Bool))
	require.True(t, types.AssignmentCompatible(types.U64, types.UnknownInt))
	require.True(t, types.AssignmentCompatible(types.UnknownInt, types.U32))
	require.False(t, types.AssignmentCompatible(types.U64, types.U32))
	require.False(t, types.AssignmentCompatible(types.Bool, types.UnknownInt))
}

func TestTighterOf(t *testing.T) {
	require.Equal(t, types.U64, types.TighterOf(types.U64, types.UnknownInt))
	require.Equal(t, types.U64, types.TighterOf(types.UnknownInt, types.U64))
	require.Equal(t, types.Bool, types.TighterOf(types.Bool, types.Unknown))
	require.Equal(t, types.UnknownInt, types.TighterOf(types.Unknown, types.UnknownInt))
	require.Equal(t, types.U32, types.TighterOf(types.Unknown, types.U32))
}

func TestPrintableName(t *testing.T) {
	require.Equal(t, "u64", types.PrintableName(types.U64))
	require.Equal(t, "{unknown}", types.PrintableName(types.Unknown))
	require.Equal(t, "{custom type: 42}", types.PrintableName(types.Kind(42)))
}

func TestValueDebugAndString(t *testing.T) {
	require.Equal(t, "4", types.U64Value(4).String())
	require.Equal(t, "U64(4)", types.U64Value(4).Debug())
	require.Equal(t, "true", types.BoolValue(true).String())
	require.Equal(t, "Bool(true)", types.BoolValue(true).Debug())
}
