package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_FiltersBelowLevel(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "warn", Output: &buf})
	log.Info().Msg("hidden")
	log.Warn().Str("kind", "network").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info to be filtered, got %s", out)
	}
	if !strings.Contains(out, `"kind":"network"`) || !strings.Contains(out, `"app":"storerating"`) {
		t.Fatalf("expected structured warn line, got %s", out)
	}
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Level: "info", Output: &first})
	Init(Options{Level: "info", Output: &second})
	log := Get()
	log.Info().Msg("hello")

	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("expected output on the first writer only")
	}
}

func TestGet_BeforeInitIsDisabled(t *testing.T) {
	Reset()
	if lvl := Get().GetLevel(); lvl != zerolog.Disabled {
		t.Fatalf("expected disabled logger, got %s", lvl)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" INFO ":  zerolog.InfoLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.WarnLevel,
		"verbose": zerolog.WarnLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
