package views_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/km-arc/controlled-form/app/form"
	"github.com/km-arc/controlled-form/app/views"
	gohttp "github.com/km-arc/controlled-form/framework/http"
)

func engine(t *testing.T) *gohttp.ViewEngine {
	t.Helper()
	ve, err := views.New()
	if err != nil {
		t.Fatalf("views.New: %v", err)
	}
	return ve
}

func renderForm(t *testing.T, s form.Snapshot) string {
	t.Helper()
	var buf bytes.Buffer
	if err := engine(t).Render(&buf, views.Form, views.NewFormView(s)); err != nil {
		t.Fatalf("render form: %v", err)
	}
	return buf.String()
}

// ── Error list ───────────────────────────────────────────────────────────────

func TestRenderErrorList(t *testing.T) {
	ve := engine(t)

	tests := []struct {
		name string
		msgs []string
		want string
	}{
		{"nil", nil, ""},
		{"empty", []string{}, ""},
		{"one", []string{"bad"}, `<ul class="errors"><li>bad</li></ul>`},
		{"two", []string{"a", "b"}, `<ul class="errors"><li>a</li><li>b</li></ul>`},
		{"escaped", []string{"<x>"}, `<ul class="errors"><li>&lt;x&gt;</li></ul>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := views.RenderErrorList(ve, &buf, tt.msgs); err != nil {
				t.Fatalf("RenderErrorList: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q want %q", got, tt.want)
			}
		})
	}
}

// ── Form fragment ────────────────────────────────────────────────────────────

func TestForm_DefaultsRender(t *testing.T) {
	s := form.NewStore(form.Defaults(), form.InitialTouched()).Snapshot()
	html := renderForm(t, s)

	for _, want := range []string{
		`name="name" type="text"`,
		`name="email" type="text"`,
		`name="password" type="password"`,
		`name="save" type="checkbox">`,
		`value="other" checked`,
		`<option value="user" selected>User</option>`,
		`<option value="admin">Admin</option>`,
		`<input type="submit" disabled>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("form missing %q", want)
		}
	}
	if strings.Contains(html, "<li>") {
		t.Error("no errors should be displayed before any field is touched")
	}
}

func TestForm_ReflectsState(t *testing.T) {
	s := form.NewStore(form.Defaults(), form.InitialTouched())
	for _, c := range []form.Change{
		{Field: form.FieldName, Kind: form.KindText, Value: "Al"},
		{Field: form.FieldEmail, Kind: form.KindText, Value: "al@example.com"},
		{Field: form.FieldPassword, Kind: form.KindPassword, Value: "12"},
		{Field: form.FieldSave, Kind: form.KindCheckbox, Checked: true},
		{Field: form.FieldGender, Kind: form.KindRadio, Value: "female"},
		{Field: form.FieldRole, Kind: form.KindSelect, Value: "admin"},
	} {
		if _, err := s.Dispatch(c); err != nil {
			t.Fatalf("Dispatch: %v", err)
		}
	}
	html := renderForm(t, s.Snapshot())

	for _, want := range []string{
		`value="Al"`,
		`value="al@example.com"`,
		`name="save" type="checkbox" checked`,
		`value="female" checked`,
		`<option value="admin" selected>Admin</option>`,
		`<input type="submit">`,
		"<li>" + form.MsgNameTooShort + "</li>",
		"<li>" + form.MsgPasswordTooShort + "</li><li>" + form.MsgPasswordNoLetter + "</li>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("form missing %q", want)
		}
	}
	if strings.Contains(html, `value="other" checked`) {
		t.Error("only one gender may be checked")
	}
}

func TestPage_WrapsForm(t *testing.T) {
	s := form.NewStore(form.Defaults(), form.InitialTouched()).Snapshot()
	var buf bytes.Buffer
	err := engine(t).Render(&buf, views.Page, views.PageView{
		Title:    "Register",
		LivePath: "/form/live",
		Form:     views.NewFormView(s),
	})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"<title>Register</title>", "<h1>My cool form</h1>", `<form id="register"`} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}
