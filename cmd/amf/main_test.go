package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenInputFileAndURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "answer.md")
	if err := os.WriteFile(path, []byte("# Saved answer"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	reader, closer, err := openInputs([]string{path})
	if err != nil {
		t.Fatalf("openInputs file: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ := io.ReadAll(reader)
	if string(buf) != "# Saved answer" {
		t.Fatalf("unexpected file content: %q", string(buf))
	}

	fileURL := "file://" + path
	reader, closer, err = openInputs([]string{fileURL})
	if err != nil {
		t.Fatalf("openInputs file URL: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ = io.ReadAll(reader)
	if string(buf) != "# Saved answer" {
		t.Fatalf("unexpected file URL content: %q", string(buf))
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("remote answer"))
	}))
	defer srv.Close()
	reader, closer, err = openInputs([]string{srv.URL})
	if err != nil {
		t.Fatalf("openInputs http: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ = io.ReadAll(reader)
	if string(buf) != "remote answer" {
		t.Fatalf("unexpected http content: %q", string(buf))
	}
}

func TestOpenInputsConcatenates(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.md")
	second := filepath.Join(dir, "b.md")
	if err := os.WriteFile(first, []byte("part one\n"), 0o644); err != nil {
		t.Fatalf("write first: %v", err)
	}
	if err := os.WriteFile(second, []byte("part two"), 0o644); err != nil {
		t.Fatalf("write second: %v", err)
	}
	reader, closer, err := openInputs([]string{first, second})
	if err != nil {
		t.Fatalf("openInputs concat: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ := io.ReadAll(reader)
	if string(buf) != "part one\npart two" {
		t.Fatalf("unexpected concatenated content: %q", string(buf))
	}
}

func TestOpenInputsDefaultsToStdin(t *testing.T) {
	reader, closer, err := openInputs(nil)
	if err != nil {
		t.Fatalf("openInputs stdin: %v", err)
	}
	if reader != os.Stdin {
		t.Fatalf("expected stdin reader, got %T", reader)
	}
	if closer != nil {
		t.Fatalf("expected no closer for stdin")
	}
}

func TestOpenInputsRejectsEmptyArgument(t *testing.T) {
	if _, _, err := openInputs([]string{"  "}); err == nil {
		t.Fatalf("expected error for empty input argument")
	}
}

func TestOpenInputsDefersMissingFileError(t *testing.T) {
	reader, _, err := openInputs([]string{filepath.Join(t.TempDir(), "absent.md")})
	if err != nil {
		t.Fatalf("openInputs missing file: %v", err)
	}
	if _, err := io.ReadAll(reader); err == nil {
		t.Fatalf("expected read error for missing file")
	}
}

func TestResolveOSC8(t *testing.T) {
	cases := map[string]bool{
		"on":    true,
		"off":   false,
		"1":     true,
		"0":     false,
		"yes":   true,
		"no":    false,
		" ON ":  true,
		"False": false,
	}
	for input, want := range cases {
		got, err := resolveOSC8(input)
		if err != nil {
			t.Fatalf("resolveOSC8(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("resolveOSC8(%q)=%v want %v", input, got, want)
		}
	}
	if _, err := resolveOSC8("nope"); err == nil {
		t.Fatalf("expected error for invalid osc8 value")
	}
}

func TestResolveTheme(t *testing.T) {
	out := &bytes.Buffer{}

	cmd := newRootCmd()
	theme, err := resolveTheme(cmd, defaultThemeName, cliConfig{}, true, out)
	if err != nil {
		t.Fatalf("resolveTheme boring: %v", err)
	}
	if theme.Name() != "boring" {
		t.Fatalf("expected boring theme, got %q", theme.Name())
	}
	if theme.Styles().Strong.Prefix != "" {
		t.Fatalf("expected escape-free boring theme")
	}

	theme, err = resolveTheme(cmd, defaultThemeName, cliConfig{}, false, out)
	if err != nil {
		t.Fatalf("resolveTheme non-terminal: %v", err)
	}
	if theme.Name() != "boring" {
		t.Fatalf("expected boring theme for non-terminal output, got %q", theme.Name())
	}

	theme, err = resolveTheme(cmd, defaultThemeName, cliConfig{Theme: "dracula"}, false, out)
	if err != nil {
		t.Fatalf("resolveTheme config: %v", err)
	}
	if theme.Name() != "dracula" {
		t.Fatalf("expected config theme, got %q", theme.Name())
	}

	flagged := newRootCmd()
	if err := flagged.Flags().Set("theme", "mono"); err != nil {
		t.Fatalf("set theme flag: %v", err)
	}
	theme, err = resolveTheme(flagged, "mono", cliConfig{Theme: "dracula"}, false, out)
	if err != nil {
		t.Fatalf("resolveTheme flag: %v", err)
	}
	if theme.Name() != "mono" {
		t.Fatalf("expected flag theme to win, got %q", theme.Name())
	}

	if _, err := resolveTheme(flagged, "sparkle", cliConfig{}, false, out); err == nil || !strings.Contains(err.Error(), "unknown theme") {
		t.Fatalf("expected unknown theme error, got %v", err)
	}
}

func TestFlagNameNormalization(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.Flags().Set("no_think", "true"); err != nil {
		t.Fatalf("expected underscore spelling to resolve: %v", err)
	}
	flag := cmd.Flags().Lookup("no-think")
	if flag == nil || flag.Value.String() != "true" {
		t.Fatalf("expected no-think flag to be set")
	}
}

func TestResolveWidth(t *testing.T) {
	if got := resolveWidth(72, cliConfig{Width: 90}); got != 72 {
		t.Fatalf("expected flag width 72, got %d", got)
	}
	if got := resolveWidth(0, cliConfig{Width: 90}); got != 90 {
		t.Fatalf("expected config width 90, got %d", got)
	}
	t.Setenv("COLUMNS", "55")
	if got := resolveWidth(0, cliConfig{}); got != 55 {
		t.Fatalf("expected COLUMNS width 55, got %d", got)
	}
}

func TestTerminalWidthFallbacks(t *testing.T) {
	t.Setenv("COLUMNS", "123")
	if got := terminalWidth(80); got != 123 {
		t.Fatalf("expected COLUMNS width 123, got %d", got)
	}
	t.Setenv("COLUMNS", "abc")
	if got := terminalWidth(80); got != 80 {
		t.Fatalf("expected fallback for invalid COLUMNS, got %d", got)
	}
	t.Setenv("COLUMNS", "0")
	if got := terminalWidth(80); got != 80 {
		t.Fatalf("expected fallback for zero COLUMNS, got %d", got)
	}
	t.Setenv("COLUMNS", "")
	if got := terminalWidth(80); got != 80 {
		t.Fatalf("expected fallback width 80, got %d", got)
	}
}

func TestNormalizePath(t *testing.T) {
	abs := normalizePath("relative.md")
	if !filepath.IsAbs(abs) {
		t.Fatalf("expected absolute path, got %q", abs)
	}
	if filepath.Base(abs) != "relative.md" {
		t.Fatalf("expected base to survive, got %q", abs)
	}

	if got := normalizePath("/tmp/answer.md"); got != "/tmp/answer.md" {
		t.Fatalf("expected absolute path unchanged, got %q", got)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	if got := normalizePath("~"); got != home {
		t.Fatalf("expected ~ to expand to %q, got %q", home, got)
	}
	if got := normalizePath("~/notes.md"); got != filepath.Join(home, "notes.md") {
		t.Fatalf("expected ~/ expansion, got %q", got)
	}
}

func TestStrconvAtoi(t *testing.T) {
	if n, err := strconvAtoi("123"); err != nil || n != 123 {
		t.Fatalf("strconvAtoi(123)=%d,%v", n, err)
	}
	if n, err := strconvAtoi("007"); err != nil || n != 7 {
		t.Fatalf("strconvAtoi(007)=%d,%v", n, err)
	}
	if _, err := strconvAtoi("12a"); err == nil {
		t.Fatalf("expected error for non-digit input")
	}
	if _, err := strconvAtoi("-5"); err == nil {
		t.Fatalf("expected error for negative input")
	}
}
