package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/richtext"
	"github.com/goliatone/go-formkit/pkg/validators"
)

type stubDriver struct {
	inputs       []string
	passwords    []string
	confirm      []bool
	infoMessages []string
	defaults     []string
	inputPos     int
	passPos      int
	confirmPos   int
	inputErr     error
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputErr != nil {
		return "", s.inputErr
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.defaults = append(s.defaults, cfg.Default)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func decode(t *testing.T, out []byte) map[string]any {
	t.Helper()
	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	return got
}

func TestRender_Login(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"user@test.com"},
		passwords: []string{"secret"},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), form.AccountLogin(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := map[string]any{"username": "user@test.com", "password": "secret"}
	if diff := cmp.Diff(want, decode(t, out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Login", "Login to Account"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if r.ContentType() != "application/json" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestRender_RepromptsOnlyInvalidFields(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"bad-email", "user@test.com"},
		passwords: []string{"secret"},
	}
	r, _ := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))

	out, err := r.Render(context.Background(), form.AccountLogin(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if driver.inputPos != 2 || driver.passPos != 1 {
		t.Fatalf("unexpected prompt counts: inputs %d passwords %d", driver.inputPos, driver.passPos)
	}
	if got := driver.infoMessages[len(driver.infoMessages)-1]; got != "! Invalid email address" {
		t.Fatalf("unexpected alert %q", got)
	}
	if got := decode(t, out)["username"]; got != "user@test.com" {
		t.Fatalf("unexpected username %v", got)
	}
}

func TestRender_GivesUpAfterMaxAttempts(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"bad", "still-bad"},
		passwords: []string{"x"},
	}
	r, _ := New(WithPromptDriver(driver), WithMaxAttempts(2))

	_, err := r.Render(context.Background(), form.AccountLogin(), render.RenderOptions{})
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if driver.inputPos != 2 {
		t.Fatalf("expected two username prompts, got %d", driver.inputPos)
	}
}

func TestRender_StopsWhenOnlyBlockedFieldsFail(t *testing.T) {
	driver := &stubDriver{inputs: []string{"ada"}}
	r, _ := New(WithPromptDriver(driver), WithMaxAttempts(3))

	f := form.New("Account",
		form.NewTextField(form.TextFieldConfig{
			Title:      "Account ID",
			Key:        "accountId",
			Blocked:    true,
			Validators: []validators.Rule{validators.Required("Account ID")},
		}),
		form.NewTextField(form.TextFieldConfig{Title: "Nickname", Key: "nickname"}),
	)

	_, err := r.Render(context.Background(), f, render.RenderOptions{})
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if driver.inputPos != 1 {
		t.Fatalf("expected only the nickname prompt, got %d inputs", driver.inputPos)
	}
}

func TestRender_PrefillAndMessage(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"user@test.com"},
		passwords: []string{"secret"},
	}
	r, _ := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))

	out, err := r.Render(context.Background(), form.AccountLogin(), render.RenderOptions{
		Values:  map[string]string{"username": "prefill@test.com"},
		Message: richtext.Plain("Session expired"),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff([]string{"prefill@test.com"}, driver.defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if driver.infoMessages[1] != "Session expired" {
		t.Fatalf("expected host message, got %v", driver.infoMessages)
	}
	if got := string(out); got != "password=secret\nusername=user@test.com\n" {
		t.Fatalf("unexpected pretty output %q", got)
	}
}

func TestRender_FormEncodedAndTransformer(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"user@test.com"},
		passwords: []string{"secret"},
	}
	r, _ := New(
		WithPromptDriver(driver),
		WithOutputFormat(OutputFormatFormURLEncoded),
		WithSubmitTransformer(func(values map[string]any) (map[string]any, error) {
			delete(values, "password")
			return values, nil
		}),
	)

	out, err := r.Render(context.Background(), form.AccountLogin(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != "username=user%40test.com" {
		t.Fatalf("unexpected form output %q", got)
	}
}

func TestRender_ConfirmDeclined(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"user@test.com"},
		passwords: []string{"secret"},
		confirm:   []bool{false},
	}
	r, _ := New(WithPromptDriver(driver), WithConfirmSubmit(true))

	if _, err := r.Render(context.Background(), form.AccountLogin(), render.RenderOptions{}); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRender_PropagatesDriverErrors(t *testing.T) {
	driver := &stubDriver{inputErr: ErrAborted}
	r, _ := New(WithPromptDriver(driver))

	if _, err := r.Render(context.Background(), form.AccountLogin(), render.RenderOptions{}); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, _ := New(WithPromptDriver(&stubDriver{}))

	if _, err := r.Render(ctx, form.AccountLogin(), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
