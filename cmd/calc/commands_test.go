package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// testConfig writes a config that keeps logs on the console only and returns
// its path.
func testConfig(t *testing.T, console string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CALC_PATH", dir)
	path := filepath.Join(dir, "config.jsonc")
	content := `{
		// no log file in tests
		"log": {"file": "-", "console": "` + console + `"},
		"color": "never",
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, cfg, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errw bytes.Buffer
	cmd := newRootCommand(strings.NewReader(stdin), &out, &errw)
	err = cmd.Run(context.Background(), append([]string{"calc", "--config", cfg}, args...))
	return out.String(), errw.String(), err
}

func TestREPL(t *testing.T) {
	cases := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"default", "3+4\n_*2\n", nil, "7.0\n14.0\n"},
		{"repl", "3+4\n_*2\n", []string{"repl"}, "7.0\n14.0\n"},
		{"blank", "\n   \n2 ^ 3 ^ 2\n\t\n", nil, "512.0\n"},
		{"no-newline", "1/0", nil, "inf\n"},
		{"quit", "1\n  quit  \n2\n", nil, "1.0\n"},
		{"exit", "1\nEXIT\n2\n", nil, "1.0\n"},
		{"q", "1\nQ\n2\n", nil, "1.0\n"},
		{"degraded", "(2+3\n_\n$\n_\n", nil, "nan\nnan\n0.0\nnan\n"},
		{"format", "2/3\n", []string{"--format", "%.3f"}, "0.667\n"},
		{"depth", "((1))\n(1)\n", []string{"--max-depth", "4"}, "nan\n1.0\n"},
		{"empty", "", nil, ""},
		{"long-line", "1" + strings.Repeat("+1", 40000) + "\n2\n", nil, "40001.0\n2.0\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := testConfig(t, "error")
			out, _, err := run(t, cfg, c.stdin, c.args...)
			if err != nil {
				t.Fatal(err)
			}
			if out != c.want {
				t.Errorf("want %q, got %q", c.want, out)
			}
		})
	}
}

func TestREPLInterrupt(t *testing.T) {
	cfg := testConfig(t, "error")
	pr, pw := io.Pipe()
	defer pw.Close()
	var out, errw bytes.Buffer
	cmd := newRootCommand(pr, &out, &errw)
	ctx, cancel := context.WithCancel(context.Background())
	res := make(chan error, 1)
	go func() {
		res <- cmd.Run(ctx, []string{"calc", "--config", cfg})
	}()
	if _, err := io.WriteString(pw, "6*7\n"); err != nil {
		t.Fatal(err)
	}
	// The next write blocks until the first line has been taken, so the
	// REPL is waiting for input once it returns.
	if _, err := io.WriteString(pw, "\n"); err != nil {
		t.Fatal(err)
	}
	cancel()
	select {
	case err := <-res:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("repl kept waiting for input after interrupt")
	}
	if got := out.String(); got != "42.0\n" {
		t.Errorf("want %q, got %q", "42.0\n", got)
	}
}

func TestREPLWarnings(t *testing.T) {
	cfg := testConfig(t, "warn")
	out, errs, err := run(t, cfg, "_+1)\n")
	if err != nil {
		t.Fatal(err)
	}
	if out != "1.0\n" {
		t.Errorf("wrong output %q", out)
	}
	want := "[WARN] - 1: no previous result pos=1\n[WARN] - 4: ignored tokens \")\" pos=4\n"
	if errs != want {
		t.Errorf("want warnings %q, got %q", want, errs)
	}
}

func TestREPLInfo(t *testing.T) {
	cfg := testConfig(t, "info")
	_, errs, err := run(t, cfg, "2*3\n")
	if err != nil {
		t.Fatal(err)
	}
	want := "[INFO] - calculate \"2*3\"\n[INFO] - result 6\n"
	if errs != want {
		t.Errorf("want %q, got %q", want, errs)
	}
}

func TestEval(t *testing.T) {
	cfg := testConfig(t, "error")
	out, _, err := run(t, cfg, "", "eval", "3+4", "_*2", "1/0", "0/0", "(0-1)/0", "")
	if err != nil {
		t.Fatal(err)
	}
	if want := "7.0\n14.0\ninf\nnan\n-inf\n0.0\n"; out != want {
		t.Errorf("want %q, got %q", want, out)
	}
}

func TestEvalErrors(t *testing.T) {
	cfg := testConfig(t, "error")
	if _, _, err := run(t, cfg, "", "eval"); err == nil {
		t.Error("eval with no arguments succeeded")
	}
	if _, _, err := run(t, cfg, "", "--max-depth", "0", "eval", "1"); err == nil {
		t.Error("zero max depth accepted")
	}
	bad := filepath.Join(t.TempDir(), "bad.jsonc")
	if err := os.WriteFile(bad, []byte(`{"color": "plaid"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, bad, "", "eval", "1"); err == nil {
		t.Error("bad config accepted")
	}
}

func TestTokens(t *testing.T) {
	cfg := testConfig(t, "error")
	out, _, err := run(t, cfg, "", "tokens", "2 + INF * (_)")
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		`normalized: "2+inf*(_)"`,
		"Num:2@1",
		"Op:+@2",
		"Num:inf@3",
		"Op:*@6",
		"LParen:(@7",
		"Prev:_@8",
		"RParen:)@9",
		"",
	}, "\n")
	if out != want {
		t.Errorf("want:\n%s\ngot:\n%s", want, out)
	}
	if _, _, err := run(t, cfg, "", "tokens"); err == nil {
		t.Error("tokens with no argument succeeded")
	}
}

func TestHistory(t *testing.T) {
	cfg := testConfig(t, "error")

	out, _, err := run(t, cfg, "", "history")
	if err != nil {
		t.Fatal(err)
	}
	if out != "No history found.\n" {
		t.Errorf("wrong output for empty history %q", out)
	}

	if _, _, err := run(t, cfg, "", "--history", "eval", "3+4", "_*2"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, cfg, "(1\n", "--history"); err != nil {
		t.Fatal(err)
	}
	// Without --history nothing is recorded.
	if _, _, err := run(t, cfg, "", "eval", "100"); err != nil {
		t.Fatal(err)
	}

	out, _, err = run(t, cfg, "", "history")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("want header and 3 entries, got:\n%s", out)
	}
	for i, want := range [][]string{
		{"ID", "SESSION", "INPUT", "RESULT", "WARNINGS"},
		{"3+4", "7.0", "sess_"},
		{"_*2", "14.0", "sess_"},
		{"(1", "nan", "1"},
	} {
		for _, s := range want {
			if !strings.Contains(lines[i], s) {
				t.Errorf("line %d missing %q: %q", i, s, lines[i])
			}
		}
	}
	if strings.Contains(out, "100") {
		t.Errorf("unjournaled evaluation in history:\n%s", out)
	}
	// The two eval entries share a session; the REPL entry has its own.
	s1 := strings.Fields(lines[1])[1]
	s2 := strings.Fields(lines[2])[1]
	s3 := strings.Fields(lines[3])[1]
	if s1 != s2 || s1 == s3 {
		t.Errorf("wrong sessions %s %s %s", s1, s2, s3)
	}

	out, _, err = run(t, cfg, "", "history", "--limit", "1")
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 2 || !strings.Contains(lines[1], "(1") {
		t.Errorf("wrong limited history:\n%s", out)
	}

	out, _, err = run(t, cfg, "", "history", "--session", s1)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "(1") || !strings.Contains(out, "_*2") {
		t.Errorf("wrong session history:\n%s", out)
	}

	out, _, err = run(t, cfg, "", "history", "--session", "sess_nope")
	if err != nil {
		t.Fatal(err)
	}
	if out != "No history found.\n" {
		t.Errorf("wrong output for unknown session %q", out)
	}
}
