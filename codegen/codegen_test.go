package codegen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arc-language/minidecaf-riscv/codegen"
)

// End-to-end programs compile cleanly and produce the expected shape
// of assembly. Without a RISC-V assembler and emulator on hand these
// checks stay at "compiles, and the canonical instruction sequences
// are present" rather than executing the binary and observing its
// exit status.

func TestScenarioArithmeticPrecedence(t *testing.T) {
	out, err := codegen.GenerateAssemblyText("int main() { return 1 + 2 * 3; }")
	require.NoError(t, err)
	require.Contains(t, out, "mul t1,t1,t2")
	require.Contains(t, out, "add t1,t1,t2")
}

func TestScenarioFunctionCall(t *testing.T) {
	out, err := codegen.GenerateAssemblyText(`
		int f(int a, int b) { return a - b; }
		int main() { return f(10, 3); }
	`)
	require.NoError(t, err)
	require.Contains(t, out, ".global f")
	require.Contains(t, out, "call f")
	require.Contains(t, out, "sub t1,t1,t2")
}

func TestScenarioIfElseAssignment(t *testing.T) {
	out, err := codegen.GenerateAssemblyText(`
		int main() {
			int x;
			x = 5;
			if (x) return x + 1; else return 0;
		}
	`)
	require.NoError(t, err)
	require.Contains(t, out, "bnez t1,_L")
}

func TestScenarioArrayAssignment(t *testing.T) {
	out, err := codegen.GenerateAssemblyText(`
		int main() {
			int a[3];
			a[0]=1; a[1]=2; a[2]=4;
			return a[0]+a[1]+a[2];
		}
	`)
	require.NoError(t, err)
	require.Contains(t, out, "sd t2,0(t1)")
}

func TestScenarioPointerAssignment(t *testing.T) {
	out, err := codegen.GenerateAssemblyText(`
		int main() {
			int x;
			int *p;
			x = 9;
			p = &x;
			*p = 42;
			return x;
		}
	`)
	require.NoError(t, err)
	require.Contains(t, out, ".global main")
}

func TestScenarioNestedArrayIndex(t *testing.T) {
	out, err := codegen.GenerateAssemblyText(`
		int main() {
			int a[2][3];
			a[1][2] = 11;
			return a[1][2];
		}
	`)
	require.NoError(t, err)
	// Outer dimension scales by the inner row's byte size (3*8), the
	// inner dimension scales by one element (8).
	require.Contains(t, out, "li t3,24")
	require.Contains(t, out, "li t3,8")
}

func TestNegativeUndefinedIdentifier(t *testing.T) {
	_, err := codegen.GenerateAssemblyText("int main() { return y; }")
	require.Error(t, err)
}

func TestNegativeAssignIntToPointer(t *testing.T) {
	_, err := codegen.GenerateAssemblyText(`
		int main() {
			int *p;
			p = 5;
			return 0;
		}
	`)
	require.Error(t, err)
}

func TestNegativeDerefNonPointer(t *testing.T) {
	_, err := codegen.GenerateAssemblyText(`
		int main() {
			int x;
			x = 5;
			return *x;
		}
	`)
	require.Error(t, err)
}

func TestNegativeAddressOfExpression(t *testing.T) {
	_, err := codegen.GenerateAssemblyText(`
		int main() {
			int a;
			int b;
			return *(&(a+b));
		}
	`)
	require.Error(t, err)
}

func TestNegativeArrayAssignment(t *testing.T) {
	_, err := codegen.GenerateAssemblyText(`
		int main() {
			int a[2];
			int b[2];
			a = b;
			return 0;
		}
	`)
	require.Error(t, err)
}

func TestNegativeWrongArityCall(t *testing.T) {
	_, err := codegen.GenerateAssemblyText(`
		int f(int a) { return a; }
		int main() { return f(1, 2); }
	`)
	require.Error(t, err)
}

func TestNegativeCallToUndeclaredFunction(t *testing.T) {
	_, err := codegen.GenerateAssemblyText(`
		int main() { return g(1); }
	`)
	require.Error(t, err)
}

func TestEmptyFunctionBody(t *testing.T) {
	out, err := codegen.GenerateAssemblyText(`
		int noop() {
		}
		int main() { return 0; }
	`)
	require.NoError(t, err)
	require.Contains(t, out, ".global noop")
}

func TestCallWithZeroArguments(t *testing.T) {
	out, err := codegen.GenerateAssemblyText(`
		int answer() { return 42; }
		int main() { return answer(); }
	`)
	require.NoError(t, err)
	require.Contains(t, out, "call answer")
}

func TestCallWithEightArguments(t *testing.T) {
	out, err := codegen.GenerateAssemblyText(`
		int sum8(int a, int b, int c, int d, int e, int f, int g, int h) {
			return a+b+c+d+e+f+g+h;
		}
		int main() { return sum8(1,2,3,4,5,6,7,8); }
	`)
	require.NoError(t, err)
	require.Contains(t, out, ".global sum8")
	require.True(t, strings.Contains(out, "a7"))
}

func TestNestedBlockShadowing(t *testing.T) {
	out, err := codegen.GenerateAssemblyText(`
		int main() {
			int x = 1;
			{
				int x = 2;
				x = 3;
			}
			return x;
		}
	`)
	require.NoError(t, err)
	// The inner x gets its own, deeper slot; leaving the block pops it.
	require.Contains(t, out, "addi sp,sp,8")
}

func TestExplicitMainWithTopLevelStatementsIsRejected(t *testing.T) {
	_, err := codegen.GenerateAssemblyText(`
		int main() { return 0; }
		return 1;
	`)
	require.Error(t, err)
}
