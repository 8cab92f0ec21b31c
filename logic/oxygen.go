package logic

// drainOxygen runs only while playing; every other state freezes the
// level. Clamped at zero, which the tick treats as terminal.
func (s *GameSession) drainOxygen(dt float64) {
	s.Oxygen -= s.Config.Oxygen.DrainPerSec * dt
	if s.Oxygen < 0 {
		s.Oxygen = 0
	}
}

// grantOxygenBonus is the correct-answer reward, clamped at the maximum.
func (s *GameSession) grantOxygenBonus() {
	s.Oxygen += s.Config.Oxygen.Bonus
	if s.Oxygen > s.Config.Oxygen.Max {
		s.Oxygen = s.Config.Oxygen.Max
	}
}
