package timeouts

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	Reset()

	if got := Ping(); got != DefaultPing {
		t.Errorf("Ping() = %v, want %v", got, DefaultPing)
	}
	if got := Short(); got != DefaultShort {
		t.Errorf("Short() = %v, want %v", got, DefaultShort)
	}
	if got := Medium(); got != DefaultMedium {
		t.Errorf("Medium() = %v, want %v", got, DefaultMedium)
	}
	if got := Long(); got != DefaultLong {
		t.Errorf("Long() = %v, want %v", got, DefaultLong)
	}
}

func TestConfigure(t *testing.T) {
	defer Reset()

	Configure(Config{Medium: 3 * time.Second, Long: time.Minute})

	if got := Medium(); got != 3*time.Second {
		t.Errorf("Medium() = %v, want 3s", got)
	}
	if got := Long(); got != time.Minute {
		t.Errorf("Long() = %v, want 1m", got)
	}
	// Zero values keep the current settings.
	if got := Ping(); got != DefaultPing {
		t.Errorf("Ping() = %v, want untouched default %v", got, DefaultPing)
	}
	if got := Short(); got != DefaultShort {
		t.Errorf("Short() = %v, want untouched default %v", got, DefaultShort)
	}
}

func TestReset(t *testing.T) {
	Configure(Config{Ping: time.Millisecond, Short: time.Millisecond, Medium: time.Millisecond, Long: time.Millisecond})
	Reset()

	if Ping() != DefaultPing || Short() != DefaultShort || Medium() != DefaultMedium || Long() != DefaultLong {
		t.Errorf("Reset did not restore defaults: %v %v %v %v", Ping(), Short(), Medium(), Long())
	}
}
