// Package emitter is the line-oriented assembly text sink. It imposes
// no ordering or buffering semantics beyond sequential line output.
package emitter

import (
	"fmt"
	"io"
	"os"
)

// Emitter writes assembly lines to an underlying stream. A zero-value
// Emitter is not usable; construct one with New or NewFile.
type Emitter struct {
	w      io.Writer
	closer io.Closer
}

// New wraps an arbitrary io.Writer (used by tests that want to assert
// against an in-memory buffer).
func New(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// NewFile opens path for writing and returns an Emitter bound to it.
// An empty path writes to standard output instead.
func NewFile(path string) (*Emitter, error) {
	if path == "" {
		return &Emitter{w: os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("opening output %s: %w", path, err)
	}
	return &Emitter{w: f, closer: f}, nil
}

// Close flushes and releases the underlying sink. Writing to stdout
// never closes it.
func (e *Emitter) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// Emit writes one already-formatted line (or block of lines).
func (e *Emitter) Emit(line string) {
	fmt.Fprintln(e.w, line)
}

// Emitf writes one formatted line.
func (e *Emitter) Emitf(format string, args ...any) {
	fmt.Fprintf(e.w, format+"\n", args...)
}

// Comment emits a '#'-prefixed comment line. The emitted assembly is
// never parsed back, so comments are only a debugging aid.
func (e *Emitter) Comment(format string, args ...any) {
	e.Emitf("\t# "+format, args...)
}

// Label emits a bare `<name>:` line.
func (e *Emitter) Label(name string) {
	e.Emitf("%s:", name)
}

// Global emits a `.global <name>` directive.
func (e *Emitter) Global(name string) {
	e.Emitf(".global %s", name)
}

// Instr emits one indented instruction line.
func (e *Emitter) Instr(format string, args ...any) {
	e.Emitf("\t"+format, args...)
}

// PushImm pushes an 8-byte immediate: load it into the scratch
// register t1, then push t1. RISC-V's sd cannot store an immediate
// directly, so the value goes through t1 first.
func (e *Emitter) PushImm(n int64) {
	e.Instr("li t1,%d", n)
	e.PushReg("t1")
}

// PushReg pushes the 8-byte value currently in reg.
func (e *Emitter) PushReg(reg string) {
	e.Instr("addi sp,sp,-8")
	e.Instr("sd %s,0(sp)", reg)
}

// PopReg loads the top 8-byte stack word into reg and pops it.
func (e *Emitter) PopReg(reg string) {
	e.Instr("ld %s,0(sp)", reg)
	e.Instr("addi sp,sp,8")
}

// PopN discards the top n 8-byte words without loading them.
func (e *Emitter) PopN(n int) {
	if n == 0 {
		return
	}
	e.Instr("addi sp,sp,%d", 8*n)
}
