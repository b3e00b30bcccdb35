// Package logger_test contains tests for the logger package
package logger_test

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/kestrelworks/tasklist-api/internal/config"
	"github.com/kestrelworks/tasklist-api/internal/platform/logger"
)

// withCapturedStdio redirects stdout and stderr while fn runs and returns
// whatever was written to each. Setup logs directly to the process streams,
// so tests capture them to keep output clean and assert on warnings.
func withCapturedStdio(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()

	origStdout := os.Stdout
	origStderr := os.Stderr

	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create stdout pipe: %v", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create stderr pipe: %v", err)
	}

	os.Stdout = outW
	os.Stderr = errW

	fn()

	os.Stdout = origStdout
	os.Stderr = origStderr

	if err := outW.Close(); err != nil {
		t.Logf("Failed to close stdout writer: %v", err)
	}
	if err := errW.Close(); err != nil {
		t.Logf("Failed to close stderr writer: %v", err)
	}

	outBuf := new(bytes.Buffer)
	if _, err := io.Copy(outBuf, outR); err != nil {
		t.Logf("Failed to read from stdout pipe: %v", err)
	}
	errBuf := new(bytes.Buffer)
	if _, err := io.Copy(errBuf, errR); err != nil {
		t.Logf("Failed to read from stderr pipe: %v", err)
	}

	// Setup replaces the process default logger; restore a sane one so later
	// tests are unaffected.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	return outBuf.String(), errBuf.String()
}

// TestSetup is a basic test that ensures the Setup function works without errors
func TestSetup(t *testing.T) {
	var (
		log *slog.Logger
		err error
	)

	stdout, _ := withCapturedStdio(t, func() {
		cfg := config.ServerConfig{
			LogLevel: "info",
			Port:     8080,
		}
		log, err = logger.Setup(cfg)
		if err == nil && log != nil {
			log.Info("setup smoke test")
		}
	})

	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if log == nil {
		t.Fatal("Setup returned a nil logger")
	}
	if !strings.Contains(stdout, "setup smoke test") {
		t.Errorf("Expected JSON log output on stdout, got: %s", stdout)
	}
	if !strings.Contains(stdout, `"msg"`) {
		t.Errorf("Expected structured JSON output, got: %s", stdout)
	}
}

// TestInvalidLogLevelParsing tests that when an invalid log level is provided,
// the Setup function defaults to info level and logs a warning message to stderr.
func TestInvalidLogLevelParsing(t *testing.T) {
	var (
		log *slog.Logger
		err error
	)

	stdout, stderr := withCapturedStdio(t, func() {
		cfg := config.ServerConfig{
			LogLevel: "invalid_level",
			Port:     8080,
		}
		log, err = logger.Setup(cfg)
		if err == nil && log != nil {
			// At the defaulted info level, debug output must be suppressed.
			log.Debug("debug test message")
			log.Info("info test message")
		}
	})

	if err != nil {
		t.Fatalf("Setup returned an error for invalid log level: %v", err)
	}
	if log == nil {
		t.Fatal("Setup returned a nil logger for invalid log level")
	}

	if !strings.Contains(stderr, "invalid log level configured") {
		t.Errorf("Expected warning message about invalid log level, got: %s", stderr)
	}
	if !strings.Contains(stderr, "invalid_level") {
		t.Errorf("Expected warning to include the invalid level name, got: %s", stderr)
	}
	if !strings.Contains(stderr, "info") {
		t.Errorf("Expected warning to include the default level, got: %s", stderr)
	}

	if strings.Contains(stdout, "debug test message") {
		t.Error("Logger with default info level should not output debug messages")
	}
	if !strings.Contains(stdout, "info test message") {
		t.Error("Logger with default info level should output info messages")
	}
}

// TestValidLogLevelParsing tests that valid log levels are correctly parsed
// by the Setup function, including case-insensitive matching.
func TestValidLogLevelParsing(t *testing.T) {
	testCases := []struct {
		name       string
		logLevel   string
		debugShown bool
	}{
		{
			name:       "debug level",
			logLevel:   "debug",
			debugShown: true,
		},
		{
			name:       "info level",
			logLevel:   "info",
			debugShown: false,
		},
		{
			name:       "warn level",
			logLevel:   "warn",
			debugShown: false,
		},
		{
			name:       "error level",
			logLevel:   "error",
			debugShown: false,
		},
		{
			name:       "case insensitive - DEBUG",
			logLevel:   "DEBUG",
			debugShown: true,
		},
		{
			name:       "case insensitive - Info",
			logLevel:   "Info",
			debugShown: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var (
				log *slog.Logger
				err error
			)

			stdout, stderr := withCapturedStdio(t, func() {
				cfg := config.ServerConfig{
					LogLevel: tc.logLevel,
					Port:     8080,
				}
				log, err = logger.Setup(cfg)
				if err == nil && log != nil {
					log.Debug("level probe debug")
				}
			})

			if err != nil {
				t.Fatalf("Setup returned an error for valid log level %q: %v", tc.logLevel, err)
			}
			if log == nil {
				t.Fatal("Setup returned a nil logger")
			}
			if strings.Contains(stderr, "invalid log level configured") {
				t.Errorf("Valid level %q triggered the invalid-level warning", tc.logLevel)
			}

			got := strings.Contains(stdout, "level probe debug")
			if got != tc.debugShown {
				t.Errorf("Level %q: debug output shown = %v, want %v.\nOutput: %s",
					tc.logLevel, got, tc.debugShown, stdout)
			}
		})
	}
}
