package types

import "fmt"

// UnaryInt requires t to be a plain int and returns int.
func UnaryInt(t Type) (Type, error) {
	if !t.Equal(Int) {
		return Type{}, fmt.Errorf("unary operator requires int operand, got %s", t)
	}
	return Int, nil
}

// BinaryInt requires both operands to be plain int and returns int.
func BinaryInt(t1, t2 Type) (Type, error) {
	if !t1.Equal(Int) || !t2.Equal(Int) {
		return Type{}, fmt.Errorf("operator requires int operands, got %s and %s", t1, t2)
	}
	return Int, nil
}

// BinaryPtrArith succeeds when exactly one side is int and the other a
// pointer, returning the pointer type. Two pointers, or two ints, are
// rejected here (callers try BinaryInt first and only reach this rule
// when that fails; pointer-pointer arithmetic is unsupported).
func BinaryPtrArith(t1, t2 Type) (Type, error) {
	t1Ptr, t2Ptr := t1.IsPointer(), t2.IsPointer()
	switch {
	case t1Ptr && !t2Ptr && t2.Equal(Int):
		return t1, nil
	case t2Ptr && !t1Ptr && t1.Equal(Int):
		return t2, nil
	default:
		return Type{}, fmt.Errorf("no pointer arithmetic between %s and %s", t1, t2)
	}
}

// SameType requires t1 and t2 to be identical and returns int (the
// result type of every relational operator).
func SameType(t1, t2 Type) (Type, error) {
	if !t1.Equal(t2) {
		return Type{}, fmt.Errorf("type mismatch: %s vs %s", t1, t2)
	}
	return Int, nil
}

// Deref requires t to be a pointer and returns its pointee type.
func Deref(t Type) (Type, error) {
	if !t.IsPointer() {
		return Type{}, fmt.Errorf("cannot dereference non-pointer type %s", t)
	}
	return t.UnwrapPtr()
}
