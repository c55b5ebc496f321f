package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"jsfront/internal/config"
)

func testState(t *testing.T) *appState {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := config.Default()
	cfg.Cache.Disabled = true
	return &appState{cfg: cfg, log: log, maxDiag: cfg.Parse.MaxDiagnostics}
}

func testCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetContext(context.Background())
	return cmd, &out, &errOut
}

func testFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, body := range files {
		if err := afero.WriteFile(fsys, name, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fsys
}

func TestParseOptionPairs(t *testing.T) {
	got, err := parseOptionPairs([]string{"languageIn=ECMASCRIPT_2015", "failOnWarning", " --formatting = PRETTY_PRINT "})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"languageIn":    "ECMASCRIPT_2015",
		"failOnWarning": "true",
		"--formatting":  "PRETTY_PRINT",
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s: got %q, want %q", k, got[k], v)
		}
	}
	if _, err := parseOptionPairs([]string{"=x"}); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestReadColorMode(t *testing.T) {
	tests := []struct {
		in   string
		tty  bool
		want bool
		ok   bool
	}{
		{"auto", true, true, true},
		{"auto", false, false, true},
		{"", true, true, true},
		{"ON", false, true, true},
		{"off", true, false, true},
		{"sometimes", true, false, false},
	}
	for _, tt := range tests {
		got, err := readColorMode(tt.in, tt.tty)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("readColorMode(%q, %v) = %v, %v", tt.in, tt.tty, got, err)
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(&buf, "info", "json")
	if err != nil {
		t.Fatal(err)
	}
	log.WithField("file", "a.js").Info("processed successfully")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("not json: %q", buf.String())
	}
	if entry["file"] != "a.js" || entry["msg"] != "processed successfully" {
		t.Fatalf("entry: %v", entry)
	}

	if _, err := newLogger(&buf, "loud", "text"); err == nil {
		t.Fatal("expected level error")
	}
	if _, err := newLogger(&buf, "info", "xml"); err == nil {
		t.Fatal("expected format error")
	}
}

func TestTokenizeJSON(t *testing.T) {
	st := testState(t)
	cmd, out, _ := testCmd()
	fsys := testFs(t, map[string]string{"/a.js": "let t=0;"})
	if err := st.runTokenize(cmd, fsys, "/a.js", "json"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `"kind": "let"`) {
		t.Fatalf("no let token in output:\n%s", out.String())
	}
}

func TestTokenizeUnknownFormat(t *testing.T) {
	st := testState(t)
	cmd, _, _ := testCmd()
	if err := st.runTokenize(cmd, afero.NewMemMapFs(), "/a.js", "xml"); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseTreeAndErrors(t *testing.T) {
	st := testState(t)
	cmd, out, errOut := testCmd()
	fsys := testFs(t, map[string]string{"/a.js": "let t=0;\n"})
	if err := st.runParse(cmd, fsys, "/a.js", "tree", 0); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "VariableDeclaration let @1:1-1:9") {
		t.Fatalf("tree:\n%s", out.String())
	}
	if errOut.Len() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", errOut.String())
	}

	cmd, _, errOut = testCmd()
	fsys = testFs(t, map[string]string{"/b.js": "let = ;\n"})
	if err := st.runParse(cmd, fsys, "/b.js", "pretty", 0); err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(errOut.String(), "SYN") {
		t.Fatalf("diagnostics:\n%s", errOut.String())
	}
}

func TestParseDirJSON(t *testing.T) {
	st := testState(t)
	cmd, out, _ := testCmd()
	fsys := testFs(t, map[string]string{
		"/src/a.js":   "var a;",
		"/src/b/c.js": "var c;",
	})
	if err := st.runParse(cmd, fsys, "/src", "json", 2); err != nil {
		t.Fatal(err)
	}
	var got map[string]json.RawMessage
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("not json: %v", err)
	}
	if _, ok := got["/src/a.js"]; !ok || len(got) != 2 {
		t.Fatalf("keys: %v", got)
	}
}

func TestPrintCompactWithCheck(t *testing.T) {
	st := testState(t)
	cmd, out, _ := testCmd()
	fsys := testFs(t, map[string]string{"/a.js": "let k = t + 1;\nconsole.log( tc + k );\n"})
	if err := st.runPrint(cmd, fsys, "/a.js", printFlags{mode: "compact", check: true}); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "let k=t+1;console.log(tc+k);"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestProcessFileAndDir(t *testing.T) {
	st := testState(t)
	fsys := testFs(t, map[string]string{
		"/lib/a.js":   "let a = 1;",
		"/lib/b.js":   "var b = [1, 2];",
		"/lib/c.css":  "a{}",
		"/one/one.js": "var x = 1 ;",
	})

	cmd, out, _ := testCmd()
	if err := st.runProcess(cmd, fsys, "/one/one.js", processFlags{libType: "js", ui: "off"}); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "var x=1;\n" {
		t.Fatalf("got %q", got)
	}

	cmd, _, _ = testCmd()
	if err := st.runProcess(cmd, fsys, "/lib", processFlags{libType: "js", ui: "off", out: "/dist"}); err != nil {
		t.Fatal(err)
	}
	data, err := afero.ReadFile(fsys, "/dist/b.js")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "var b=[1,2];" {
		t.Fatalf("dist/b.js = %q", data)
	}

	cmd, _, _ = testCmd()
	err = st.runProcess(cmd, fsys, "/lib/a.js", processFlags{libType: "js", ui: "off", options: []string{"failOnWarning=true"}})
	if err == nil {
		t.Fatal("expected failure with failOnWarning")
	}

	cmd, out, _ = testCmd()
	if err := st.runProcess(cmd, fsys, "/lib/a.js", processFlags{libType: "css", ui: "off"}); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Fatalf("css wrote %q", out.String())
	}
}

func TestVersionJSON(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"version", "--format", "json", "--full"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("not json: %q", out.String())
	}
	if payload.Tool != "jsfront" || payload.Version == "" || payload.GitCommit == "" {
		t.Fatalf("payload: %+v", payload)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Fatal("expected error")
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Fatal("explicit modes ignored")
	}
}

func TestFmtCheckAndWrite(t *testing.T) {
	st := testState(t)
	fsys := testFs(t, map[string]string{
		"/src/ok.js":    "var a = 1;\n",
		"/src/messy.js": "var   b=2;",
	})

	cmd, out, _ := testCmd()
	err := st.runFmt(cmd, fsys, []string{"/src"}, fmtFlags{check: true, format: "text", indent: 2})
	if err == nil {
		t.Fatal("expected check failure")
	}
	if got := out.String(); got != "/src/messy.js\n" {
		t.Fatalf("check output %q", got)
	}

	cmd, out, _ = testCmd()
	if err := st.runFmt(cmd, fsys, []string{"/src"}, fmtFlags{format: "text", indent: 2}); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "reformatted /src/messy.js\n" {
		t.Fatalf("write output %q", got)
	}

	cmd, _, _ = testCmd()
	if err := st.runFmt(cmd, fsys, []string{"/src"}, fmtFlags{check: true, format: "json", indent: 2}); err != nil {
		t.Fatalf("second check: %v", err)
	}
	if err := st.runFmt(cmd, fsys, []string{"/src"}, fmtFlags{check: true, stdout: true, format: "text"}); err == nil {
		t.Fatal("expected flag conflict")
	}
}
