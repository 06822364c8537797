package vanilla_test

import (
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/richtext"
	"github.com/goliatone/go-formkit/pkg/testsupport"
)

func renderForm(t *testing.T, r *vanilla.Renderer, f *form.Form, options render.RenderOptions) string {
	t.Helper()
	out, err := r.Render(testsupport.Context(), f, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func TestRenderer_Login(t *testing.T) {
	r, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	html := renderForm(t, r, form.AccountLogin(), render.RenderOptions{
		Values: map[string]string{"username": "user@test.com", "password": "secret"},
		Hidden: map[string]string{"_csrf": "token"},
		Action: "/login",
	})

	assertContains(t, html,
		`<form class="formkit" method="post" action="/login" novalidate>`,
		`<h1 class="formkit__title">Login</h1>`,
		`<input type="hidden" name="_csrf" value="token">`,
		`style="text-align: center"`,
		`<strong>Login to Account</strong>`,
		`name="username" type="email" inputmode="email" placeholder="email@email.com" value="user@test.com"`,
		`name="password" type="password" placeholder="Enter Password">`,
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`<button type="submit" class="formkit__submit">Login</button>`,
	)
	if strings.Contains(html, "secret") {
		t.Fatalf("secure values must not be echoed:\n%s", html)
	}
	if r.ContentType() != "text/html; charset=utf-8" || r.Name() != "vanilla" {
		t.Fatalf("unexpected renderer metadata")
	}
}

func TestRenderer_InvalidFieldsCarryIndicator(t *testing.T) {
	r, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	f := form.AccountLogin()
	testsupport.FillForm(t, f, map[string]string{"username": "bad-email"})
	_, message := f.IsValid()

	html := renderForm(t, r, f, render.RenderOptions{Message: message})
	assertContains(t, html,
		`<div class="formkit__alert" role="alert"><p>Invalid email address</p><p>Password is required</p></div>`,
		`formkit-row--invalid" data-key="username"`,
		`aria-invalid="true"`,
		`<p class="formkit-row__error">Password is required</p>`,
	)
}

func TestRenderer_EscapesUserContent(t *testing.T) {
	r, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	f := form.New("Profile",
		form.NewAttributedText(richtext.New().Bold("<b>hi</b>"), ""),
		form.NewTextField(form.TextFieldConfig{Title: "Name", Key: "name", Value: form.String(`"><script>`)}),
	)
	html := renderForm(t, r, f, render.RenderOptions{})
	if strings.Contains(html, "<script>") || strings.Contains(html, "<b>hi") {
		t.Fatalf("unescaped content in output:\n%s", html)
	}
	assertContains(t, html, `<strong>&lt;b&gt;hi&lt;/b&gt;</strong>`, `<button type="submit" class="formkit__submit">Continue</button>`)
}

func TestRenderer_IconsAreSanitised(t *testing.T) {
	r, err := vanilla.New(vanilla.WithIcons(map[string]string{
		"logo": `<svg viewBox="0 0 10 10" onload="alert(1)"><script>alert(1)</script><circle cx="5" cy="5" r="4"></circle></svg>`,
	}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	html := renderForm(t, r, form.New("Brand", form.NewIcon("logo", "#ff0000"), form.NewIcon("missing", "")), render.RenderOptions{})

	if strings.Contains(html, "onload") || strings.Contains(html, "alert(1)") {
		t.Fatalf("icon markup not sanitised:\n%s", html)
	}
	assertContains(t, html,
		`style="color: #ff0000"`,
		`<circle cx="5" cy="5" r="4">`,
		`<span class="formkit-icon" data-icon="missing"></span>`,
	)
}

func TestRenderer_Theme(t *testing.T) {
	files := fstest.MapFS{}
	for _, name := range []string{"templates/form.tmpl", "templates/cells/textField.tmpl", "templates/cells/icon.tmpl", "templates/cells/image.tmpl", "templates/cells/attributedText.tmpl"} {
		data := testsupport.MustReadFile(t, name)
		files[name] = &fstest.MapFile{Data: data}
	}
	files["templates/cells/banner.tmpl"] = &fstest.MapFile{Data: []byte(`<figure data-src="{{ src }}"></figure>`)}

	r, err := vanilla.New(vanilla.WithTemplatesFS(files), vanilla.WithDefaultStyles())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	cfg := &theme.RendererConfig{
		Theme:    "acme",
		Variant:  "dark",
		Partials: map[string]string{"cell.image": "templates/cells/banner.tmpl"},
		CSSVars:  map[string]string{"--formkit-tint": "#123456"},
		AssetURL: func(key string) string {
			if key == "" {
				return ""
			}
			return "/themes/acme/" + key
		},
	}
	html := renderForm(t, r, form.New("Poster", form.NewImage("poster.png", "")), render.RenderOptions{Theme: cfg})

	assertContains(t, html,
		`<figure data-src="/themes/acme/poster.png"></figure>`,
		`.formkit {--formkit-tint: #123456;}`,
		`.formkit__submit{`,
	)
}

func TestSanitizeIcon_KeepsDefaultGlyphs(t *testing.T) {
	icons := vanilla.DefaultIcons()
	assertContains(t, vanilla.SanitizeIcon(icons["email"]),
		`<rect x="3" y="5" width="18" height="14" rx="2">`,
		`<polyline points="3,7 12,13 21,7">`,
		`stroke="currentColor"`,
	)
	assertContains(t, vanilla.SanitizeIcon(icons["password"]), `<path d="M8 11V7a4 4 0 0 1 8 0v4">`)

	cleaned := vanilla.SanitizeIcon(`<svg viewBox="0 0 4 4"><use href="https://evil.test/x.svg#a"></use><path d="M0 0" style="fill:url(x)"></path></svg>`)
	if strings.Contains(cleaned, "evil.test") || strings.Contains(cleaned, "style=") {
		t.Fatalf("unexpected markup kept: %s", cleaned)
	}
	assertContains(t, cleaned, `<path d="M0 0">`)
}
