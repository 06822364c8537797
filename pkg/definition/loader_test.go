package definition_test

import (
	"errors"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/form"
)

func TestBuiltin_MatchesCannedForms(t *testing.T) {
	store, err := definition.Builtin()
	if err != nil {
		t.Fatalf("load builtin: %v", err)
	}
	if diff := cmp.Diff([]string{"login", "register"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	cases := map[string]*form.Form{
		"login":    form.AccountLogin(),
		"register": form.AccountCreation(),
	}
	for id, want := range cases {
		got, err := store.Build(id)
		if err != nil {
			t.Fatalf("build %s: %v", id, err)
		}
		if got.Title != want.Title || got.ContinueTitle != want.ContinueTitle {
			t.Fatalf("%s: titles mismatch: %q/%q vs %q/%q", id, got.Title, got.ContinueTitle, want.Title, want.ContinueTitle)
		}
		if diff := cmp.Diff(want.Items(), got.Items()); diff != "" {
			t.Fatalf("%s: items mismatch (-canned +definition):\n%s", id, diff)
		}
	}
}

func TestBuild_ReturnsIndependentForms(t *testing.T) {
	store, err := definition.Builtin()
	if err != nil {
		t.Fatalf("load builtin: %v", err)
	}
	first, _ := store.Build("login")
	second, _ := store.Build("login")
	if err := first.Update("username", "a@b.co"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(second.DictResults()) != 0 {
		t.Fatalf("forms share state: %v", second.DictResults())
	}

	if _, err := store.Build("missing"); !errors.Is(err, definition.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadFS_JSON(t *testing.T) {
	store, err := definition.LoadFS(os.DirFS("testdata"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f, err := store.Build("profile")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	cells := make([]form.CellKind, 0)
	for _, row := range f.Rows() {
		cells = append(cells, row.Cell)
	}
	if diff := cmp.Diff([]form.CellKind{form.CellImage, form.CellTextField, form.CellTextField, form.CellTextField}, cells); diff != "" {
		t.Fatalf("cells mismatch (-want +got):\n%s", diff)
	}

	phone, _ := f.Item("phone")
	if phone.UI.Keyboard != form.KeyboardPhone {
		t.Fatalf("unexpected keyboard %q", phone.UI.Keyboard)
	}
	if err := f.Update("phone", "12345"); err != nil {
		t.Fatalf("update: %v", err)
	}
	ok, message := f.IsValid()
	if ok {
		t.Fatalf("expected invalid phone")
	}
	if diff := cmp.Diff([]string{"Invalid Phone"}, message.Lines()); diff != "" {
		t.Fatalf("message mismatch (-want +got):\n%s", diff)
	}
	if err := f.Update("code", "AB"); !errors.Is(err, form.ErrBlocked) {
		t.Fatalf("expected blocked field, got %v", err)
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]struct {
		source string
		data   string
		want   string
	}{
		"empty":    {"a.yaml", "  ", "is empty"},
		"no forms": {"a.yaml", "forms: {}", "forms must contain at least 1 entries"},
		"unknown kind": {"a.yaml", `
forms:
  f:
    title: F
    items:
      - kind: slider
`, "must be one of"},
		"text field without key": {"a.yaml", `
forms:
  f:
    title: F
    items:
      - kind: textField
        title: Name
`, "key is required"},
		"unknown rule": {"a.json", `{"forms":{"f":{"title":"F","items":[{"kind":"textField","title":"A","key":"a","validators":[{"kind":"zip"}]}]}}}`, "must be one of"},
		"icon without name": {"a.yaml", `
forms:
  f:
    title: F
    items:
      - kind: icon
`, "requires a name"},
		"match unknown key": {"a.yaml", `
forms:
  f:
    title: F
    items:
      - kind: textField
        title: A
        key: a
        validators:
          - kind: match
            other: b
`, "unknown key \"b\""},
		"inverted bounds": {"a.yaml", `
forms:
  f:
    title: F
    items:
      - kind: textField
        title: A
        key: a
        validators:
          - kind: charCount
            min: 5
            max: 3
`, "exceeds max"},
		"bad yaml": {"a.yaml", "forms: [", "parse a.yaml"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := definition.Parse([]byte(tc.data), tc.source)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadFS_DuplicateIDs(t *testing.T) {
	doc := []byte("forms:\n  f:\n    title: F\n    items:\n      - kind: image\n        name: x.png\n")
	files := fstest.MapFS{
		"a.yaml":     {Data: doc},
		"b/c.yml":    {Data: doc},
		"readme.txt": {Data: []byte("ignored")},
	}
	_, err := definition.LoadFS(files)
	if err == nil || !strings.Contains(err.Error(), `duplicate form "f"`) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	store, err := definition.LoadFS(nil)
	if err != nil || len(store.IDs()) != 0 {
		t.Fatalf("nil fs should yield empty store, got %v %v", store.IDs(), err)
	}
}
