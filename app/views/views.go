// Package views holds the embedded templates of the registration page and
// the view models they render.
package views

import (
	"embed"
	"io"
	"strings"

	"github.com/km-arc/controlled-form/app/form"
	gohttp "github.com/km-arc/controlled-form/framework/http"
)

//go:embed *.html
var FS embed.FS

// Template names.
const (
	Page   = "page"
	Form   = "form"
	Errors = "errors"
)

// New parses the embedded templates.
func New() (*gohttp.ViewEngine, error) {
	return gohttp.NewViewEngine(FS, "*.html")
}

// Option is one radio button or select option.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// FormView is everything the form fragment binds to.
type FormView struct {
	Data      form.Data
	Visible   form.Errors
	CanSubmit bool
	Genders   []Option
	Roles     []Option
}

// NewFormView derives the view model from a snapshot.
func NewFormView(s form.Snapshot) FormView {
	v := FormView{
		Data:      s.Data,
		Visible:   s.Visible,
		CanSubmit: s.CanSubmit,
	}
	for _, g := range form.Genders {
		v.Genders = append(v.Genders, Option{Value: string(g), Label: title(string(g)), Selected: g == s.Data.Gender})
	}
	for _, r := range form.Roles {
		v.Roles = append(v.Roles, Option{Value: string(r), Label: title(string(r)), Selected: r == s.Data.Role})
	}
	return v
}

// PageView wraps the form in the full document.
type PageView struct {
	Title    string
	LivePath string
	Form     FormView
}

// RenderErrorList writes msgs as a list, or nothing when msgs is empty.
func RenderErrorList(ve *gohttp.ViewEngine, w io.Writer, msgs []string) error {
	return ve.Render(w, Errors, msgs)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
