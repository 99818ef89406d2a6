package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/housepred/internal/profile"
)

func TestProfileLifecycle(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	run := func(args ...string) (string, error) {
		t.Helper()
		out, _, err := runCLI(t, append([]string{"--data-dir", dataDir}, args...)...)
		return out, err
	}

	out, err := run("profile", "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "signed out") {
		t.Errorf("expected empty profile, got %q", out)
	}

	if _, err := run("signup", "--name", "Jane Doe", "--email", "jane@x.com",
		"--password", "s3cret", "--confirm-password", "s3cret", "--accept-terms"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	out, err = run("profile", "show", "--json")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	var doc struct {
		SignedIn bool `json:"signed_in"`
		Profile  struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Avatar   string `json:"avatar"`
			Provider string `json:"provider"`
		} `json:"profile"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if !doc.SignedIn || doc.Profile.Name != "Jane Doe" || doc.Profile.Provider != "password" {
		t.Errorf("unexpected profile %+v", doc)
	}

	// Only the avatar changes; name and email are kept.
	out, err = run("profile", "save", "--avatar", "https://img.example.com/jane.png")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	for _, want := range []string{"Name:     Jane Doe", "Email:    jane@x.com", "Avatar:   https://img.example.com/jane.png"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}

	out, err = run("profile", "signout")
	if err != nil {
		t.Fatalf("signout: %v", err)
	}
	if !strings.Contains(out, "Signed out.") {
		t.Errorf("unexpected output %q", out)
	}

	out, err = run("profile", "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "signed out") {
		t.Errorf("expected empty profile after clear, got %q", out)
	}
}

func TestProfileSave_BlankName(t *testing.T) {
	t.Parallel()

	out, _, err := runCLI(t, "--data-dir", t.TempDir(), "profile", "save", "--name", "", "--email", "a@b.com")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.Contains(out, "Signed in as User") {
		t.Errorf("expected placeholder name, got %q", out)
	}
}

func TestProfileSave_EmailAsName(t *testing.T) {
	t.Parallel()

	out, _, err := runCLI(t, "--data-dir", t.TempDir(), "profile", "save", "--name", "jane@x.com")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.Contains(out, "Signed in as jane\n") {
		t.Errorf("expected display name 'jane', got %q", out)
	}
}

func TestSignupCmd_InvalidForm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no flags", nil, profile.ErrNameRequired},
		{"missing email", []string{"--name", "Jane", "--password", "a", "--confirm-password", "a", "--accept-terms"}, profile.ErrEmailRequired},
		{"password mismatch", []string{"--name", "Jane", "--email", "jane@x.com", "--password", "a", "--confirm-password", "b", "--accept-terms"}, profile.ErrPasswordMismatch},
		{"terms not accepted", []string{"--name", "Jane", "--email", "jane@x.com", "--password", "a", "--confirm-password", "a"}, profile.ErrTermsNotAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dataDir := t.TempDir()
			args := append([]string{"--data-dir", dataDir, "signup"}, tt.args...)
			if _, _, err := runCLI(t, args...); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}

			out, _, err := runCLI(t, "--data-dir", dataDir, "profile", "show")
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, "signed out") {
				t.Errorf("nothing should be stored after a rejected signup, got %q", out)
			}
		})
	}
}

func TestNewProfileCmd(t *testing.T) {
	t.Parallel()

	cmd := NewProfileCmd()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
		if sub.Name() == "clear" && !sub.HasAlias("signout") {
			t.Error("expected clear to have signout alias")
		}
	}
	for _, want := range []string{"show", "save", "clear"} {
		if !names[want] {
			t.Errorf("expected %s subcommand", want)
		}
	}
}
