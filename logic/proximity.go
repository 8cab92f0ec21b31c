package logic

import "math"

// Distance helper
func Distance(p1, p2 Vector2) float64 {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// nearestPocket returns the closest uncleared pocket and whether it is
// currently enterable. Cleared pockets are never candidates. Returns
// nil when every pocket is cleared.
func (s *GameSession) nearestPocket() (*AirPocket, bool) {
	var nearest *AirPocket
	best := math.MaxFloat64

	for el := s.World.Pockets.Front(); el != nil; el = el.Next() {
		p := el.Value
		if p.Cleared {
			continue
		}
		d := Distance(s.Player.Pos, p.Pos)
		if d < best {
			best = d
			nearest = p
		}
	}

	if nearest == nil {
		return nil, false
	}
	reach := nearest.Radius + s.Config.Proximity.PlayerRadius + s.Config.Proximity.Slack
	return nearest, best <= reach
}
