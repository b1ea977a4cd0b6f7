package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestDerive_CPF(t *testing.T) {
	out, err := execute(t, "derive", "--cpf", "529.982.247-25")
	if err != nil {
		t.Fatalf("derive returned error: %v", err)
	}
	for _, want := range []string{"identifier: cpf", "username:   52998224725", "password:   e18e8f5ae3fe0031afaca0ad58d25040"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDerive_EmailSHA256(t *testing.T) {
	out, err := execute(t, "derive", "--email", "ana@example.com", "--hash", "sha256")
	if err != nil {
		t.Fatalf("derive returned error: %v", err)
	}
	if !strings.Contains(out, "password:   8e43ca37701228e74983efdbd0cff5c16b3b1e5d4e29a7c05626d4d25a018e11") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestDerive_Errors(t *testing.T) {
	cases := [][]string{
		{"derive"},
		{"derive", "--cpf", "111.111.111-11"},
		{"derive", "--email", "not-an-email"},
		{"derive", "--email", "ana@example.com", "--hash", "crc32"},
	}
	for _, args := range cases {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestSignIn_PostsEnvelope(t *testing.T) {
	var got envelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"abc"}`))
	}))
	defer srv.Close()

	out, err := execute(t, "--url", srv.URL, "signin", "--email", "ana@example.com")
	if err != nil {
		t.Fatalf("signin returned error: %v", err)
	}
	if got.Action != "SignIn" {
		t.Errorf("action = %q, want SignIn", got.Action)
	}
	data, _ := got.Data.(map[string]any)
	if data["email"] != "ana@example.com" {
		t.Errorf("data = %v", got.Data)
	}
	if !strings.Contains(out, `"token": "abc"`) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestSignUp_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"cpf or email is required"}`))
	}))
	defer srv.Close()

	_, err := execute(t, "--url", srv.URL, "signup", "--name", "Ana", "--email", "ana@example.com")
	if err == nil || !strings.Contains(err.Error(), "status=400") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestSignIn_RequiresIdentifier(t *testing.T) {
	if _, err := execute(t, "signin"); err == nil {
		t.Fatalf("expected error without identifier")
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"Pong"}`))
	}))
	defer srv.Close()

	out, err := execute(t, "--url", srv.URL, "ping")
	if err != nil {
		t.Fatalf("ping returned error: %v", err)
	}
	if !strings.Contains(out, "Pong") {
		t.Errorf("unexpected output: %s", out)
	}
}
