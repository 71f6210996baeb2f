package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arc-language/minidecaf-riscv/types"
)

func TestBinaryInt(t *testing.T) {
	r, err := types.BinaryInt(types.Int, types.Int)
	require.NoError(t, err)
	require.True(t, r.Equal(types.Int))

	_, err = types.BinaryInt(types.Int, types.Int.WrapPtr())
	require.Error(t, err)
}

func TestBinaryPtrArith(t *testing.T) {
	ptr := types.Int.WrapPtr()

	r, err := types.BinaryPtrArith(ptr, types.Int)
	require.NoError(t, err)
	require.True(t, r.Equal(ptr))

	r, err = types.BinaryPtrArith(types.Int, ptr)
	require.NoError(t, err)
	require.True(t, r.Equal(ptr))

	_, err = types.BinaryPtrArith(ptr, ptr)
	require.Error(t, err, "pointer minus pointer is rejected")

	_, err = types.BinaryPtrArith(types.Int, types.Int)
	require.Error(t, err)
}

func TestSameType(t *testing.T) {
	_, err := types.SameType(types.Int, types.Int)
	require.NoError(t, err)

	_, err = types.SameType(types.Int, types.Int.WrapPtr())
	require.Error(t, err)
}

func TestDeref(t *testing.T) {
	ptr := types.Int.WrapPtr()
	pointee, err := types.Deref(ptr)
	require.NoError(t, err)
	require.True(t, pointee.Equal(types.Int))

	_, err = types.Deref(types.Int)
	require.Error(t, err)
}
