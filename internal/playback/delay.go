package playback

import (
	"fmt"
	"time"

	"github.com/san-kum/sortviz/internal/trace"
)

const (
	MinSpeed = 10
	MaxSpeed = 100
)

func ValidateSpeed(speed int) error {
	if speed < MinSpeed || speed > MaxSpeed {
		return fmt.Errorf("speed %d: %w", speed, trace.ErrInvalidSpeed)
	}
	return nil
}

// Delay is the pause between two Steps: 100ms at speed 100, 1090ms at 10.
func Delay(speed int) time.Duration {
	return time.Duration(1100-speed*10) * time.Millisecond
}

// Timer is the part of *time.Timer the playback loop needs.
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

type Clock interface {
	NewTimer(d time.Duration) Timer
}

type realClock struct{}

type realTimer struct{ t *time.Timer }

func (realClock) NewTimer(d time.Duration) Timer { return realTimer{time.NewTimer(d)} }

func (r realTimer) C() <-chan time.Time { return r.t.C }
func (r realTimer) Stop() bool          { return r.t.Stop() }
