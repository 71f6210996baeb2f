// Package scope is the frame/scope manager: a stack of lexical scope
// frames, each holding only the symbols declared directly in it, with
// lookup walking inner-to-outer. Nested blocks never copy the
// enclosing symbol table; entering a scope pushes an empty frame and
// leaving it discards the frame.
package scope

import (
	"fmt"

	"github.com/arc-language/minidecaf-riscv/types"
)

// Symbol is a declared name, its type, and its frame offset (bytes
// relative to fp; always negative for a local).
type Symbol struct {
	Name   string
	Type   types.Type
	Offset int
}

type frame struct {
	symbols          map[string]*Symbol
	cumulative       int // running total bytes allocated through this frame, inclusive
	parentCumulative int // the value cumulative had when this frame was pushed
}

// Manager is a non-empty stack of scope frames for one function
// activation.
type Manager struct {
	frames []*frame
}

// New returns a Manager with a single, empty outermost frame: the
// function-entry scope the prologue populates with parameters.
func New() *Manager {
	m := &Manager{}
	m.Push()
	return m
}

// Push enters a new lexical scope, nested inside the current one.
func (m *Manager) Push() {
	parent := 0
	if len(m.frames) > 0 {
		parent = m.frames[len(m.frames)-1].cumulative
	}
	m.frames = append(m.frames, &frame{
		symbols:          make(map[string]*Symbol),
		cumulative:       parent,
		parentCumulative: parent,
	})
}

// Pop exits the innermost scope and returns the number of bytes of sp
// that must be reclaimed (the scope's own cumulative locals size).
func (m *Manager) Pop() int {
	n := len(m.frames)
	top := m.frames[n-1]
	m.frames = m.frames[:n-1]
	return top.cumulative - top.parentCumulative
}

// Declare inserts name into the innermost scope with the given type,
// assigning it the next (more negative) frame offset. Redeclaring a
// name already present in the same scope is rejected.
func (m *Manager) Declare(name string, t types.Type) (*Symbol, error) {
	top := m.frames[len(m.frames)-1]
	if _, exists := top.symbols[name]; exists {
		return nil, fmt.Errorf("redeclaration of %q in the same scope", name)
	}
	top.cumulative += t.Size()
	sym := &Symbol{Name: name, Type: t, Offset: -top.cumulative}
	top.symbols[name] = sym
	return sym, nil
}

// Lookup finds name, searching from the innermost scope outward. The
// bool is false when no enclosing scope declares it.
func (m *Manager) Lookup(name string) (*Symbol, bool) {
	for i := len(m.frames) - 1; i >= 0; i-- {
		if sym, ok := m.frames[i].symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// FrameBytes returns the total bytes allocated to locals from
// function entry through the innermost scope. After every nested
// block has been popped this equals the outermost frame's own
// cumulative count.
func (m *Manager) FrameBytes() int {
	return m.frames[len(m.frames)-1].cumulative
}
