package frameloop

import "time"

// Scheduler throttles repaint requests against an optional FPS cap. The cap
// can change between ticks (config reload), so it is passed per call rather
// than stored.
type Scheduler struct {
	clock        Clock
	lastAccepted time.Time
}

func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{clock: clock}
}

// OnTick reports whether this display tick should repaint. With no cap every
// tick repaints; with a cap, a tick is accepted only once the target
// inter-frame interval has elapsed since the last accepted tick.
func (s *Scheduler) OnTick(maxFPS int) bool {
	now := s.clock.Now()
	if maxFPS <= 0 {
		s.lastAccepted = now
		return true
	}

	interval := time.Second / time.Duration(maxFPS)
	if !s.lastAccepted.IsZero() && now.Sub(s.lastAccepted) < interval {
		return false
	}
	s.lastAccepted = now
	return true
}
