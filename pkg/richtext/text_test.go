package richtext

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestText_ChainingKeepsOrder(t *testing.T) {
	got := New().Bold("Email").Normal(" is required")

	want := []Span{
		{Text: "Email", Weight: WeightBold},
		{Text: " is required", Weight: WeightRegular},
	}
	if diff := cmp.Diff(want, got.Spans); diff != "" {
		t.Fatalf("spans mismatch (-want +got):\n%s", diff)
	}
	if got.String() != "Email is required" {
		t.Fatalf("unexpected string: %q", got.String())
	}
}

func TestText_EmptyRunsAreDropped(t *testing.T) {
	got := New().Bold("").Normal("x")
	if len(got.Spans) != 1 {
		t.Fatalf("expected one span, got %d", len(got.Spans))
	}
}

func TestText_AppendAndLines(t *testing.T) {
	first := Plain("Invalid ").Bold("email address")
	first.Append(Plain("\n")).Append(New().Bold("Password").Normal(" is required"))

	want := []string{"Invalid email address", "Password is required"}
	if diff := cmp.Diff(want, first.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestText_HTMLEscapes(t *testing.T) {
	got := New().Bold("<b>").Normal(" a\nb").Light("c").HTML()
	want := "<strong>&lt;b&gt;</strong> a<br>b<small>c</small>"
	if got != want {
		t.Fatalf("html mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestText_CloneIsIndependent(t *testing.T) {
	orig := Plain("a").Align(AlignCenter)
	clone := orig.Clone()
	clone.Normal("b")

	if orig.String() != "a" {
		t.Fatalf("clone mutated original: %q", orig.String())
	}
	if clone.Alignment != AlignCenter {
		t.Fatalf("alignment not copied")
	}
}

func TestText_NilSafe(t *testing.T) {
	var txt *Text
	if txt.String() != "" || txt.Len() != 0 || txt.Lines() != nil || txt.HTML() != "" {
		t.Fatalf("nil text should render empty")
	}
}
