package albumskip

import (
	"time"

	"github.com/keytune/keytune/internal/domain"
)

// TimerScheduler runs callbacks on real timers.
type TimerScheduler struct{}

var _ domain.Scheduler = TimerScheduler{}

// AfterFunc implements domain.Scheduler with time.AfterFunc.
func (TimerScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}
