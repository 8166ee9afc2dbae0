package timeouts

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaults(t *testing.T) {
	Reset()
	cur := Current()
	if cur.Ping != DefaultPing || cur.Short != DefaultShort || cur.Medium != DefaultMedium || cur.Long != DefaultLong {
		t.Errorf("unexpected defaults: %+v", cur)
	}
}

func TestConfigure_IgnoresZeroValues(t *testing.T) {
	defer Reset()
	Configure(Config{Short: 7 * time.Second})

	if Short() != 7*time.Second {
		t.Errorf("Short() = %v, want 7s", Short())
	}
	if Medium() != DefaultMedium {
		t.Errorf("Medium() = %v, want default", Medium())
	}
}

func TestWithTimeout_LogsOnDeadline(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, logger, "slow op")
	<-ctx.Done()
	cancel()

	if logs.FilterMessage("operation timed out").Len() != 1 {
		t.Errorf("expected one timeout warning, got %d entries", logs.Len())
	}
}

func TestWithTimeout_SilentOnCancel(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	_, cancel := WithTimeout(context.Background(), time.Minute, logger, "fast op")
	cancel()

	if logs.Len() != 0 {
		t.Errorf("expected no log entries, got %d", logs.Len())
	}
}
