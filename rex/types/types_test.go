package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithNullable(t *testing.T) {
	require := require.New(t)

	require.False(Int64.IsNullable())
	n := Int64.WithNullable(true)
	require.True(n.IsNullable())
	require.True(n.EqualsSansNullability(Int64))
	require.False(n.Equal(Int64))
}

func TestLeastRestrictive(t *testing.T) {
	tests := []struct {
		name     string
		in       []Type
		expected Type
	}{
		{"single", []Type{Int64}, Int64},
		{"int widens to float", []Type{Int64, Float64}, Float64},
		{"int widens to decimal", []Type{Int64, NewDecimal(10, 2)}, NewDecimal(10, 2)},
		{"nullable propagates", []Type{Int64, Nullable(Int64)}, Nullable(Int64)},
		{"null is absorbed", []Type{Null, Int64}, Nullable(Int64)},
		{"all null", []Type{Null, Null}, Null},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			got := LeastRestrictive(tt.in...)
			require.True(got.EqualsSansNullability(tt.expected), "got %s want %s", got.Name(), tt.expected.Name())
			require.Equal(tt.expected.IsNullable(), got.IsNullable())
		})
	}
}

func TestIsLosslessCast(t *testing.T) {
	require := require.New(t)

	require.True(IsLosslessCast(Int64, Float64))
	require.True(IsLosslessCast(Int64, NewDecimal(10, 2)))
	require.False(IsLosslessCast(Float64, Int64))
	require.True(IsLosslessCast(NewDecimal(5, 2), NewDecimal(10, 2)))
	require.False(IsLosslessCast(NewDecimal(10, 4), NewDecimal(6, 2)))
	require.True(IsLosslessCast(Null, VarChar))
	require.False(IsLosslessCast(VarChar, Int64))
}

func TestDefaultCoercionRule(t *testing.T) {
	require := require.New(t)

	require.True(DefaultCoercionRule.CanApplyFrom(Int64, Float64))
	require.True(DefaultCoercionRule.CanApplyFrom(Null, VarChar))
	require.False(DefaultCoercionRule.CanApplyFrom(VarChar, Int64))
}
