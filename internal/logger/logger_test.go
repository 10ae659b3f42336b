package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/samvad-hq/artifacts-client/internal/config"
)

func TestZapLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := initWithSink(&config.Config{LogLevel: "warn"}, &buf)

	log.InfoObj("hidden", "k", 1)
	log.WarnObj("shown", "status_meta", map[string]any{"code": 200})

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info entry should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"status_meta":{"code":200}`) {
		t.Fatalf("warn entry missing or malformed: %s", out)
	}
	if !strings.Contains(out, `"ts":`) {
		t.Fatalf("expected ts key in output: %s", out)
	}
}

func TestEnsureReturnsNopForNil(t *testing.T) {
	if _, ok := Ensure(nil).(NopLogger); !ok {
		t.Fatalf("expected NopLogger for nil input")
	}
}
