package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/richtext"
)

func TestMapErrors_UsesFormValidationState(t *testing.T) {
	f := form.AccountLogin()
	if err := f.Update(form.KeyUsername, "bad-email"); err != nil {
		t.Fatalf("update: %v", err)
	}
	ok, message := f.IsValid()
	if ok {
		t.Fatalf("expected invalid form")
	}

	mapped := render.MapErrors(f, render.RenderOptions{Message: message})

	wantFields := map[string][]string{
		"username": {"Invalid email address"},
		"password": {"Password is required"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	wantForm := []string{"Invalid email address", "Password is required"}
	if diff := cmp.Diff(wantForm, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrors_ExplicitPayload(t *testing.T) {
	f := form.AccountLogin()
	mapped := render.MapErrors(f, render.RenderOptions{
		Errors: map[string][]string{
			"username": {" Already taken ", "Already taken"},
			"Message":  {"Something went wrong. Please try again."},
			"password": {"  "},
		},
		Message: richtext.Plain("Server unavailable"),
	})

	if diff := cmp.Diff(map[string][]string{"username": {"Already taken"}}, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	want := []string{"Something went wrong. Please try again.", "Server unavailable"}
	if diff := cmp.Diff(want, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
	if got := mapped.Lookup("password"); got != nil {
		t.Fatalf("blank messages should be dropped, got %v", got)
	}
}

func TestFieldErrors_ClearedByResetValidity(t *testing.T) {
	f := form.AccountLogin()
	f.IsValid()
	f.ResetValidity(form.KeyPassword)

	got := render.FieldErrors(f)
	if diff := cmp.Diff(map[string][]string{"username": {"User Email is required"}}, got); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyValues(t *testing.T) {
	f := form.AccountLogin()
	skipped := render.ApplyValues(f, map[string]string{
		"username": "user@test.com",
		"unknown":  "x",
	})
	if diff := cmp.Diff([]string{"unknown"}, skipped); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}
	if got := f.DictResults()["username"]; got != "user@test.com" {
		t.Fatalf("value not applied, got %v", got)
	}
}

func TestSortedHiddenFields(t *testing.T) {
	got := render.SortedHiddenFields(map[string]string{"b": "2", " a ": "1", "": "x"})
	want := []render.HiddenField{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrors_UnknownKeysInKeyOrder(t *testing.T) {
	f := form.AccountLogin()
	for i := 0; i < 20; i++ {
		mapped := render.MapErrors(f, render.RenderOptions{
			Errors: map[string][]string{
				"zeta":  {"Rate limited"},
				"alpha": {"Session expired"},
				"mid":   {"Try later"},
			},
		})
		want := []string{"Session expired", "Try later", "Rate limited"}
		if diff := cmp.Diff(want, mapped.Form); diff != "" {
			t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestSortedHiddenFields_DuplicatesAfterTrim(t *testing.T) {
	for i := 0; i < 20; i++ {
		got := render.SortedHiddenFields(map[string]string{" csrf ": "old", "csrf": "new", "csrf ": "mid"})
		want := []render.HiddenField{{Name: "csrf", Value: "mid"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
		}
	}
}
