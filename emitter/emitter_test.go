package emitter_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arc-language/minidecaf-riscv/emitter"
)

func TestPushImm(t *testing.T) {
	var buf bytes.Buffer
	e := emitter.New(&buf)
	e.PushImm(42)
	require.Equal(t, "\tli t1,42\n\taddi sp,sp,-8\n\tsd t1,0(sp)\n", buf.String())
}

func TestPushPopReg(t *testing.T) {
	var buf bytes.Buffer
	e := emitter.New(&buf)
	e.PushReg("t2")
	e.PopReg("t2")
	require.Equal(t, "\taddi sp,sp,-8\n\tsd t2,0(sp)\n\tld t2,0(sp)\n\taddi sp,sp,8\n", buf.String())
}

func TestPopNZeroIsNoop(t *testing.T) {
	var buf bytes.Buffer
	e := emitter.New(&buf)
	e.PopN(0)
	require.Equal(t, "", buf.String())
}

func TestPopNEmitsScaledOffset(t *testing.T) {
	var buf bytes.Buffer
	e := emitter.New(&buf)
	e.PopN(3)
	require.Equal(t, "\taddi sp,sp,24\n", buf.String())
}

func TestLabelsAndDirectives(t *testing.T) {
	var buf bytes.Buffer
	e := emitter.New(&buf)
	e.Global("main")
	e.Label("main")
	e.Comment("entry")
	require.Equal(t, ".global main\nmain:\n\t# entry\n", buf.String())
}
