package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/km-arc/controlled-form/app/form"
	"github.com/km-arc/controlled-form/app/providers"
	"github.com/km-arc/controlled-form/app/views"
	"github.com/km-arc/controlled-form/framework/app"
)

// ── serve ────────────────────────────────────────────────────────────────────

func serveCmd() *cobra.Command {
	var (
		port     string
		envFiles []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				os.Setenv("APP_PORT", port)
			}

			application := app.New(views.FS, envFiles...)
			application.Register(&providers.FormServiceProvider{})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return application.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides APP_PORT)")
	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "Env files to load (default .env)")

	return cmd
}

// ── render ───────────────────────────────────────────────────────────────────

func renderCmd() *cobra.Command {
	var (
		sets  []string
		state bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Apply input events to a fresh form and print the result",
		Long: `Render starts from the default form state, applies each --set as one
input event in order, and prints the rendered form fragment.

  formdemo render --set name=Al --set password=12 --set save=true`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
			store := providers.NewStore(logger)

			for _, s := range sets {
				change, err := parseSet(s)
				if err != nil {
					return err
				}
				if _, err := store.Dispatch(change); err != nil {
					return fmt.Errorf("--set %s: %w", s, err)
				}
			}
			return render(cmd.OutOrStdout(), store.Snapshot(), state)
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value input event (repeatable)")
	cmd.Flags().BoolVar(&state, "state", false, "Print the state snapshot as well")

	return cmd
}

func render(w io.Writer, snap form.Snapshot, withState bool) error {
	ve, err := views.New()
	if err != nil {
		return err
	}
	if err := ve.Render(w, views.Form, views.NewFormView(snap)); err != nil {
		return err
	}
	fmt.Fprintln(w)
	if withState {
		fmt.Fprintf(w, "\ncanSubmit=%v nameError=%q passwordError=%q\n",
			snap.CanSubmit, snap.Errors.Name, snap.Errors.Password)
	}
	return nil
}

// parseSet turns "field=value" into the event the matching control emits.
func parseSet(s string) (form.Change, error) {
	field, value, ok := strings.Cut(s, "=")
	if !ok || field == "" {
		return form.Change{}, fmt.Errorf("--set %q: want field=value", s)
	}

	change := form.Change{Field: field, Value: value, Kind: form.KindText}
	switch field {
	case form.FieldPassword:
		change.Kind = form.KindPassword
	case form.FieldSave:
		checked, err := strconv.ParseBool(value)
		if err != nil {
			return form.Change{}, fmt.Errorf("--set %q: %w", s, err)
		}
		change.Kind = form.KindCheckbox
		change.Checked = checked
	case form.FieldGender:
		change.Kind = form.KindRadio
	case form.FieldRole:
		change.Kind = form.KindSelect
	}
	return change, nil
}

// ── version ──────────────────────────────────────────────────────────────────

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, version)
				return
			}
			fmt.Fprintf(out, "  Version:    %s\n", version)
			fmt.Fprintf(out, "  Commit:     %s\n", commit)
			fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")

	return cmd
}
