package controllers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/km-arc/controlled-form/app/form"
	"github.com/km-arc/controlled-form/app/views"
	"github.com/km-arc/controlled-form/framework/app"
	gohttp "github.com/km-arc/controlled-form/framework/http"
	"github.com/km-arc/controlled-form/framework/http/validation"
	"github.com/km-arc/controlled-form/framework/metrics"
	"github.com/km-arc/controlled-form/framework/session"
)

// Sessions is the per-visitor store registry the controller reads from.
type Sessions = session.Manager[*form.Store]

// FormController serves the registration page and its input events.
type FormController struct {
	app.Controller

	Sessions *Sessions
	Views    *gohttp.ViewEngine
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	Cookie   string
	Title    string
	LivePath string
}

// Show renders the full page for the caller's session.
//
//	GET /
func (c *FormController) Show(w http.ResponseWriter, r *http.Request) {
	store := c.store(w, r)
	c.Metrics.Rendered()
	c.Views.View(w, views.Page, views.PageView{
		Title:    c.Title,
		LivePath: c.LivePath,
		Form:     views.NewFormView(store.Snapshot()),
	})
}

// Change applies one input event.
//
//	POST /form/change
//
// The body is either JSON {"name","type","value","checked"} or the same keys
// form-encoded. The response is the re-rendered form fragment, or the
// snapshot as JSON when the client accepts JSON.
func (c *FormController) Change(w http.ResponseWriter, r *http.Request) {
	req := c.Request(r)
	res := c.Response(w)

	change, err := parseChange(req)
	if err != nil {
		res.Error(http.StatusBadRequest, "malformed change event: "+err.Error())
		return
	}

	store := c.store(w, r)
	snap, err := c.dispatch(store, change)
	if err != nil {
		var bag validation.Errors
		bag.Add(change.Field, err.Error())
		res.ValidationError(&bag)
		return
	}

	if req.WantsJSON() {
		res.JSON(http.StatusOK, snap)
		return
	}
	c.renderForm(w, snap)
}

// Submit handles the form's submit.
//
//	POST /form/submit
//
// Nothing is sent anywhere. Scripted submits get 204; a browser navigation
// (no script) is sent back to the page.
func (c *FormController) Submit(w http.ResponseWriter, r *http.Request) {
	req := c.Request(r)
	res := c.Response(w)

	outcome := c.store(w, r).Submit()
	c.Metrics.Submitted(outcome.Allowed)
	c.Logger.Info("form submitted", "allowed", outcome.Allowed)

	if strings.Contains(req.Header("Accept"), "text/html") {
		res.SeeOther("/")
		return
	}
	res.NoContent()
}

// State returns the current snapshot.
//
//	GET /form/state
func (c *FormController) State(w http.ResponseWriter, r *http.Request) {
	c.Response(w).JSON(http.StatusOK, c.store(w, r).Snapshot())
}

// ── helpers ──────────────────────────────────────────────────────────────────

// store returns the caller's Store, starting a session and setting the
// cookie when the request carries none.
func (c *FormController) store(w http.ResponseWriter, r *http.Request) *form.Store {
	id, store, created := c.Sessions.GetOrCreate(c.Request(r).Cookie(c.Cookie))
	if created {
		http.SetCookie(w, c.cookie(id))
	}
	return store
}

func (c *FormController) cookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     c.Cookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c *FormController) dispatch(store *form.Store, change form.Change) (form.Snapshot, error) {
	snap, err := store.Dispatch(change)
	switch {
	case errors.Is(err, form.ErrUnknownField):
		c.Metrics.ChangeRejected("unknown_field")
	case errors.Is(err, form.ErrInvalidChoice):
		c.Metrics.ChangeRejected("invalid_choice")
	case err == nil:
		if change.Field != "" {
			c.Metrics.FieldChanged(change.Field, string(change.Kind))
		}
	}
	if err != nil {
		c.Logger.Warn("change rejected", "field", change.Field, "error", err)
	}
	return snap, err
}

func (c *FormController) renderForm(w http.ResponseWriter, snap form.Snapshot) {
	var buf bytes.Buffer
	if err := c.Views.Render(&buf, views.Form, views.NewFormView(snap)); err != nil {
		c.Logger.Error("render form", "error", err)
		c.Response(w).ServerError()
		return
	}
	c.Metrics.Rendered()
	c.Response(w).HTML(http.StatusOK, buf.Bytes())
}

func parseChange(req *gohttp.Request) (form.Change, error) {
	var change form.Change
	if req.IsJSON() {
		err := req.Bind(&change)
		return change, err
	}
	change = form.Change{
		Field: req.Input("name"),
		Kind:  form.Kind(req.Input("type", string(form.KindText))),
		Value: req.Input("value"),
	}
	if raw := req.Input("checked"); raw != "" {
		checked, err := strconv.ParseBool(raw)
		if err != nil {
			checked = raw == "on"
		}
		change.Checked = checked
	}
	return change, nil
}
