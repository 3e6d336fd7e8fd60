package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	cases := []struct {
		name  string
		json  bool
		debug bool
		level zapcore.Level
	}{
		{name: "defaults", level: zapcore.InfoLevel},
		{name: "json", json: true, level: zapcore.InfoLevel},
		{name: "debug", debug: true, level: zapcore.DebugLevel},
		{name: "json debug", json: true, debug: true, level: zapcore.DebugLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := New(tc.json, tc.debug)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if logger == nil {
				t.Fatal("expected a logger")
			}
			if got := logger.Core().Enabled(tc.level); !got {
				t.Fatalf("expected level %s to be enabled", tc.level)
			}
			if tc.level == zapcore.InfoLevel && logger.Core().Enabled(zapcore.DebugLevel) {
				t.Fatal("debug level should be disabled by default")
			}
		})
	}
}
