package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_WritesJSONWithServiceFields(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	Init(Options{Level: "debug", Output: &buf, Service: "legal-api", Env: "test"})
	l := Component("auth")
	l.Debug().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	for k, want := range map[string]string{
		"service":   "legal-api",
		"env":       "test",
		"component": "auth",
		"message":   "hello",
	} {
		if entry[k] != want {
			t.Errorf("%s = %v, want %q", k, entry[k], want)
		}
	}
}

func TestInit_FieldOrderIsStable(t *testing.T) {
	t.Cleanup(Reset)

	for i := 0; i < 20; i++ {
		Reset()
		var buf bytes.Buffer
		Init(Options{Output: &buf, Service: "legal-api", Env: "test"})
		l := Get()
		l.Info().Msg("x")

		line := buf.String()
		svc, env := strings.Index(line, `"service"`), strings.Index(line, `"env"`)
		if svc < 0 || env < 0 || svc > env {
			t.Fatalf("expected service before env on every run, got %q", line)
		}
	}
}

func TestInit_OmitsEmptyServiceFields(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	Init(Options{Output: &buf})
	l := Get()
	l.Info().Msg("x")

	if line := buf.String(); strings.Contains(line, `"service"`) || strings.Contains(line, `"env"`) {
		t.Fatalf("expected no service or env fields, got %q", line)
	}
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})
	l := Get()
	l.Info().Msg("x")

	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("expected output only on the first writer: first=%d second=%d", first.Len(), second.Len())
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Get()
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
