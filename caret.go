package richedit

import "time"

// Timer is a cancelable one-shot timer.
type Timer interface {
	// Stop cancels the timer. It reports whether the timer was still
	// pending.
	Stop() bool
}

// TimerFactory schedules fn to run once after d. The default factory
// wraps time.AfterFunc; tests substitute a manual clock.
type TimerFactory func(d time.Duration, fn func()) Timer

func stdTimer(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// BlinkerConfig configures a CaretBlinker.
type BlinkerConfig struct {
	// Policy supplies the blink half-period and the start delay.
	Policy Policy

	// Animated enables the initial short delay before the first toggle,
	// matching platforms that fade the caret in.
	Animated bool

	// Deterministic disables timers entirely and freezes the caret
	// visible. Intended for tests and screenshots.
	Deterministic bool

	// NewTimer overrides the timer source. Nil uses time.AfterFunc.
	NewTimer TimerFactory

	// OnChange is called whenever visibility toggles. May be nil.
	OnChange func(visible bool)
}

// CaretBlinker toggles caret visibility on a fixed half-period. It owns
// at most one timer; starting always cancels any previous schedule.
//
// The blinker runs while the field is focused and the selection is
// collapsed, and stops otherwise. Hosts call SelectionChanged from their
// focus and selection plumbing rather than driving Start and Stop
// directly.
type CaretBlinker struct {
	cfg      BlinkerConfig
	newTimer TimerFactory

	timer    Timer
	visible  bool
	blinking bool
}

// NewCaretBlinker creates a stopped blinker.
func NewCaretBlinker(cfg BlinkerConfig) *CaretBlinker {
	nt := cfg.NewTimer
	if nt == nil {
		nt = stdTimer
	}
	return &CaretBlinker{cfg: cfg, newTimer: nt}
}

// Visible reports whether the caret should currently be drawn.
func (b *CaretBlinker) Visible() bool { return b.visible }

// Blinking reports whether a blink cycle is active.
func (b *CaretBlinker) Blinking() bool { return b.blinking }

// Start begins (or restarts) the blink cycle with the caret visible. In
// deterministic mode the caret simply stays visible and no timer runs.
func (b *CaretBlinker) Start() {
	b.cancel()
	b.setVisible(true)
	b.blinking = true
	if b.cfg.Deterministic {
		return
	}
	delay := b.cfg.Policy.BlinkHalfPeriod
	if b.cfg.Animated {
		delay = b.cfg.Policy.BlinkStartDelay
	}
	b.timer = b.newTimer(delay, b.tick)
}

// Stop halts the blink cycle and hides the caret.
func (b *CaretBlinker) Stop() {
	b.cancel()
	b.blinking = false
	b.setVisible(false)
}

// SelectionChanged starts or stops the blinker to match the field state:
// blinking iff focused with a collapsed selection.
func (b *CaretBlinker) SelectionChanged(sel Selection, focused bool) {
	if focused && sel.IsValid() && sel.IsCollapsed() {
		b.Start()
		return
	}
	b.Stop()
}

func (b *CaretBlinker) tick() {
	if !b.blinking {
		return
	}
	b.setVisible(!b.visible)
	b.timer = b.newTimer(b.cfg.Policy.BlinkHalfPeriod, b.tick)
}

func (b *CaretBlinker) cancel() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *CaretBlinker) setVisible(v bool) {
	if b.visible == v {
		return
	}
	b.visible = v
	if b.cfg.OnChange != nil {
		b.cfg.OnChange(v)
	}
}
