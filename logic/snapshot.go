package logic

// PocketView is the per-pocket slice of the snapshot.
type PocketView struct {
	ID      string  `json:"id"`
	Pos     Vector2 `json:"pos"`
	Radius  float64 `json:"radius"`
	Cleared bool    `json:"cleared"`
}

// QuestionView is what the client gets to see of the active question.
// The correct index stays server-side.
type QuestionView struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// Snapshot is the read-only per-tick export consumed by the rendering
// layer. The core never depends on what the client does with it.
type Snapshot struct {
	State           string        `json:"state"`
	Player          Vector2       `json:"player"`
	Region          string        `json:"region"`
	Oxygen          float64       `json:"oxygen"`
	Score           float64       `json:"score"`
	CameraY         float64       `json:"camera_y"`
	Pockets         []PocketView  `json:"pockets"`
	Treasure        Treasure      `json:"treasure"`
	ActivePocketID  string        `json:"active_pocket_id,omitempty"`
	Question        *QuestionView `json:"question,omitempty"`
	SelectedOption  int           `json:"selected_option"`
	NearbyPocketID  string        `json:"nearby_pocket_id,omitempty"`
	NearbyEnterable bool          `json:"nearby_enterable"`
	Events          []string      `json:"events,omitempty"`
	DatasetAccepted int           `json:"dataset_accepted"`
	DatasetError    string        `json:"dataset_error,omitempty"`
}

// Snapshot exports the current session state. One-shot events are
// drained here, so each snapshot carries them exactly once.
func (s *GameSession) Snapshot() Snapshot {
	pockets := make([]PocketView, 0, s.World.Pockets.Len())
	for el := s.World.Pockets.Front(); el != nil; el = el.Next() {
		p := el.Value
		pockets = append(pockets, PocketView{ID: p.ID, Pos: p.Pos, Radius: p.Radius, Cleared: p.Cleared})
	}

	var question *QuestionView
	if s.CurrentQuestion != nil {
		question = &QuestionView{Text: s.CurrentQuestion.Text, Options: s.CurrentQuestion.Options}
	}

	return Snapshot{
		State:           s.State.String(),
		Player:          s.Player.Pos,
		Region:          s.Player.Region,
		Oxygen:          s.Oxygen,
		Score:           s.Score,
		CameraY:         s.CameraOffsetY(),
		Pockets:         pockets,
		Treasure:        s.World.Treasure,
		ActivePocketID:  s.ActivePocketID,
		Question:        question,
		SelectedOption:  s.SelectedOption,
		NearbyPocketID:  s.nearbyPocketID,
		NearbyEnterable: s.nearbyEnterable,
		Events:          s.consumeEvents(),
		DatasetAccepted: s.DatasetAccepted,
		DatasetError:    s.DatasetErr,
	}
}
