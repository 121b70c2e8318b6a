// errors_test.go
package babalang

import (
	"errors"
	"strings"
	"testing"
)

func Test_Errors_SnippetPointsAtColumn(t *testing.T) {
	src := "a is you\nb you\na is text"
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	wrapped := WrapErrorWithSource(err, src)
	msg := wrapped.Error()

	if !strings.Contains(msg, "PARSE ERROR") {
		t.Fatalf("missing header:\n%s", msg)
	}
	if !strings.Contains(msg, "2 | b you") {
		t.Fatalf("missing offending line:\n%s", msg)
	}
	if !strings.Contains(msg, "^") {
		t.Fatalf("missing caret:\n%s", msg)
	}
	// context lines
	if !strings.Contains(msg, "1 | a is you") || !strings.Contains(msg, "3 | a is text") {
		t.Fatalf("missing context:\n%s", msg)
	}
}

func Test_Errors_WrapKeepsTypedError(t *testing.T) {
	src := "ghost is x"
	ip := New()
	err := ip.RunPersistent(src)
	var re *RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("wrapped error should still expose *RuntimeError: %v", err)
	}
	if re.Kind != NameError {
		t.Fatalf("want NameError, got %v", re.Kind)
	}
}

func Test_Errors_WrapLeavesOtherErrorsAlone(t *testing.T) {
	sentinel := errors.New("boom")
	if WrapErrorWithSource(sentinel, "x") != sentinel {
		t.Fatalf("foreign errors must pass through unchanged")
	}
}

func Test_Errors_KindStrings(t *testing.T) {
	if ErrUnbalancedBlock.String() != "UnbalancedBlock" {
		t.Fatalf("got %s", ErrUnbalancedBlock)
	}
	if KindMismatch.String() != "KindMismatch" {
		t.Fatalf("got %s", KindMismatch)
	}
}

func Test_Errors_LocationsAreOneBased(t *testing.T) {
	_, err := Parse("b you")
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected parse error, got %v", err)
	}
	if pe.Line != 1 {
		t.Fatalf("line %d", pe.Line)
	}
	if !strings.Contains(pe.Error(), "1:3") {
		t.Fatalf("rendered column should be 1-based: %v", pe)
	}
}
