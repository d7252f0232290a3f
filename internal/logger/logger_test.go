package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   zapcore.Level
		wantOK bool
	}{
		{in: "debug", want: zapcore.DebugLevel, wantOK: true},
		{in: "info", want: zapcore.InfoLevel, wantOK: true},
		{in: "warn", want: zapcore.WarnLevel, wantOK: true},
		{in: "error", want: zapcore.ErrorLevel, wantOK: true},
		{in: "verbose", want: zapcore.InfoLevel, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNewDoesNotPanic(t *testing.T) {
	for _, pretty := range []bool{true, false} {
		l := New("debug", pretty)
		l.Info("hello", String("k", "v"), Int("n", 1), Bool("b", true), Error(errors.New("boom")))
		l.With(String("component", "test")).Debugf("value %d", 42)
	}
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Error("discarded")
	if err := l.Sync(); err != nil {
		t.Errorf("Sync() on nop logger = %v", err)
	}
}
