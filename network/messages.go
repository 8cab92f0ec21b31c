package network

import (
	"encoding/json"
	"fmt"

	"deepdive_server/logic"
)

// Envelope wraps every websocket message in both directions.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

const (
	// client -> server
	MsgAction      = "action"
	MsgLoadDataset = "load_dataset"
	MsgTheme       = "theme"
	// server -> client
	MsgWelcome  = "welcome"
	MsgSnapshot = "snapshot"
)

// ActionPayload carries one discrete input action.
type ActionPayload struct {
	Action  string `json:"action"`
	Pressed bool   `json:"pressed"`
	Option  int    `json:"option"`
}

// LoadDatasetPayload carries raw quiz content plus the host-side format
// hint (a file extension; the engine never sees file names).
type LoadDatasetPayload struct {
	Raw  string `json:"raw"`
	Hint string `json:"hint"`
}

// ThemePayload is the light/dark toggle, unrelated to game state.
type ThemePayload struct {
	Dark bool `json:"dark"`
}

// WelcomePayload is sent once on connect. It includes the full game
// config so the client renders with the same proximity constants the
// engine tests against.
type WelcomePayload struct {
	SessionID string            `json:"session_id"`
	Config    *logic.GameConfig `json:"config"`
}

func Encode(t string, payload any) ([]byte, error) {
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("empty message")
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, err
	}
	return e, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.T)
	}
	err := json.Unmarshal(env.P, &out)
	return out, err
}

// actionInput maps a wire action onto a loop input. Unknown actions are
// dropped here; actions invalid for the current state are ignored by
// the session itself.
func actionInput(p ActionPayload) (logic.PlayerInput, bool) {
	switch p.Action {
	case "start":
		return logic.PlayerInput{Type: logic.ActionStart}, true
	case "move_left":
		return logic.PlayerInput{Type: logic.ActionMove, Dir: -1, Pressed: p.Pressed}, true
	case "move_right":
		return logic.PlayerInput{Type: logic.ActionMove, Dir: 1, Pressed: p.Pressed}, true
	case "pause":
		return logic.PlayerInput{Type: logic.ActionPauseToggle}, true
	case "restart":
		return logic.PlayerInput{Type: logic.ActionRestart}, true
	case "enter_pocket":
		return logic.PlayerInput{Type: logic.ActionEnterPocket}, true
	case "select_option":
		return logic.PlayerInput{Type: logic.ActionSelectOption, Option: p.Option}, true
	case "submit":
		return logic.PlayerInput{Type: logic.ActionSubmitAnswer}, true
	case "cancel":
		return logic.PlayerInput{Type: logic.ActionCancelQuestion}, true
	}
	return logic.PlayerInput{}, false
}
