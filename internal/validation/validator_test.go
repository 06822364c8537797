package validation

import (
	"errors"
	"testing"
)

type sample struct {
	Name  string   `yaml:"name" validate:"required"`
	Mode  string   `json:"mode" validate:"oneof=a b"`
	Tags  []string `yaml:"tags" validate:"min=1"`
	Limit int      `validate:"gte=1"`
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Fatal("GetValidator() should return the same instance")
	}
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(sample{Name: "x", Mode: "a", Tags: []string{"t"}, Limit: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStruct_Messages(t *testing.T) {
	err := Struct(sample{Mode: "c"})

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	want := "name is required; mode must be one of: a b; tags must contain at least 1 entries; Limit must be greater than or equal to 1"
	if err.Error() != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", err.Error(), want)
	}
	if verr.Fields[0].Path != "name" || verr.Fields[0].Tag != "required" {
		t.Fatalf("unexpected first field %+v", verr.Fields[0])
	}
}
