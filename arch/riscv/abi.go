// Package riscv is the architecture-specific translator: it walks the
// parse tree and emits RISC-V 64-bit assembly text through an
// emitter.Emitter, using a scope.Manager for frame layout and
// types.Type for the small type system. Evaluation never allocates
// registers: every intermediate value lives on the stack at 0(sp),
// and the t1/t2/t3 scratch registers only hold operands between a
// pop and the push of the result.
package riscv

// ArgRegs are the integer argument/return registers available under
// the calling convention this target uses, in order. Only the first
// len(ArgRegs) call arguments (and the same number of incoming
// parameters) can be materialized through registers; anything beyond
// that is a compile error.
var ArgRegs = []string{"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7"}

// MaxRegArgs is len(ArgRegs), named for readability at call sites.
const MaxRegArgs = 8
