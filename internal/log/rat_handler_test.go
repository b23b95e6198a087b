package log

import (
	"bytes"
	"log/slog"
	"math/big"
	"strings"
	"testing"
)

// newTestLogger builds a verbose logger writing to the returned buffer.
func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(&buf, true), &buf
}

// TestRatHandlerRewritesRationals tests that *big.Rat attributes render as
// exact fractions.
func TestRatHandlerRewritesRationals(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger()
	logger.Info("candidate", "hypercharge", big.NewRat(1, 6))

	out := buf.String()
	if !strings.Contains(out, "hypercharge=1/6") {
		t.Errorf("expected hypercharge=1/6 in output, got %q", out)
	}
	if strings.Contains(out, "0.1666") {
		t.Errorf("rational rendered as float: %q", out)
	}
}

// TestRatHandlerIntegerRationals tests that whole rationals drop the
// denominator.
func TestRatHandlerIntegerRationals(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger()
	logger.Info("candidate", "hypercharge", big.NewRat(-2, 1), "zero", new(big.Rat))

	out := buf.String()
	if !strings.Contains(out, "hypercharge=-2") {
		t.Errorf("expected hypercharge=-2 in output, got %q", out)
	}
	if !strings.Contains(out, "zero=0") {
		t.Errorf("expected zero=0 in output, got %q", out)
	}
}

// TestRatHandlerLeavesOtherKinds tests that non-rational attributes pass
// through untouched.
func TestRatHandlerLeavesOtherKinds(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger()
	logger.Info("scan", "block", "A", "tested", 182)

	out := buf.String()
	if !strings.Contains(out, "block=A") {
		t.Errorf("expected block=A in output, got %q", out)
	}
	if !strings.Contains(out, "tested=182") {
		t.Errorf("expected tested=182 in output, got %q", out)
	}
}

// TestRatHandlerWithAttrs tests that pre-bound attributes are rewritten.
func TestRatHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger()
	logger.With("hypercharge", big.NewRat(2, 4)).Info("candidate")

	out := buf.String()
	if !strings.Contains(out, "hypercharge=1/2") {
		t.Errorf("expected hypercharge=1/2 in output, got %q", out)
	}
}

// TestRatHandlerWithGroup tests that grouped attributes are rewritten.
func TestRatHandlerWithGroup(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger()
	logger.WithGroup("fermion").Info("candidate", "hypercharge", big.NewRat(-1, 3))

	out := buf.String()
	if !strings.Contains(out, "fermion.hypercharge=-1/3") {
		t.Errorf("expected fermion.hypercharge=-1/3 in output, got %q", out)
	}
}

// TestRatHandlerGroupValue tests that rationals nested in group values are
// rewritten.
func TestRatHandlerGroupValue(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger()
	logger.Info("candidate", slog.Group("pair",
		slog.Any("left", big.NewRat(1, 2)),
		slog.Any("right", big.NewRat(-1, 2)),
	))

	out := buf.String()
	if !strings.Contains(out, "pair.left=1/2") {
		t.Errorf("expected pair.left=1/2 in output, got %q", out)
	}
	if !strings.Contains(out, "pair.right=-1/2") {
		t.Errorf("expected pair.right=-1/2 in output, got %q", out)
	}
}

// TestNewLoggerLevels tests verbose and quiet level thresholds.
func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	t.Run("quiet suppresses info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)
		logger.Info("hidden")
		logger.Warn("visible")

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("info record logged without verbose: %q", out)
		}
		if !strings.Contains(out, "visible") {
			t.Errorf("warn record missing: %q", out)
		}
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)
		logger.Debug("detail")

		if !strings.Contains(buf.String(), "detail") {
			t.Errorf("debug record missing with verbose: %q", buf.String())
		}
	})
}

// TestNewRatHandlerNil tests the nil-handler fallback.
func TestNewRatHandlerNil(t *testing.T) {
	t.Parallel()

	h := NewRatHandler(nil)
	if h.handler == nil {
		t.Error("expected fallback to the default handler")
	}
}
