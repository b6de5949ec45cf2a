package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		"Warn":    WarnLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
		"fatal":   FatalLevel,
		"bogus":   InfoLevel,
		"":        InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: DebugLevel, Output: &buf})

	Info().Str("commandId", "file.read").Msg("executed")

	out := buf.String()
	if !strings.Contains(out, `"commandId":"file.read"`) {
		t.Errorf("expected structured field in output, got %q", out)
	}
	if !strings.Contains(out, `"level":"info"`) {
		t.Errorf("expected level field in output, got %q", out)
	}
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: DebugLevel, Output: &buf})

	log := Component("registry")
	log.Debug().Msg("registered")

	if !strings.Contains(buf.String(), `"component":"registry"`) {
		t.Errorf("expected component tag, got %q", buf.String())
	}
}

func TestSetLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: DebugLevel, Output: &buf})
	SetLevel(ErrorLevel)

	Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected info suppressed at error level, got %q", buf.String())
	}

	Error().Msg("visible")
	if buf.Len() == 0 {
		t.Error("expected error output at error level")
	}
}
