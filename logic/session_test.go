package logic

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepdive_server/dataset"
)

func testQuestions() []dataset.Question {
	return []dataset.Question{
		{Text: "q0", Options: []string{"a", "b"}, Answer: 0},
		{Text: "q1", Options: []string{"a", "b", "c"}, Answer: 2},
		{Text: "q2", Options: []string{"a", "b"}, Answer: 1},
	}
}

// playingSession drives a fresh session with questions loaded through
// the intro into the playing state.
func playingSession(t *testing.T) *GameSession {
	t.Helper()
	s := NewGameSession(DefaultConfig(), rand.New(rand.NewSource(11)))
	s.HandleDatasetLoaded(testQuestions(), len(testQuestions()), nil)
	s.HandleStart()
	stepToPlaying(t, s)
	return s
}

// moveToPocket puts the player inside the proximity reach of a pocket.
func moveToPocket(s *GameSession, id string) *AirPocket {
	p, _ := s.World.Pockets.Get(id)
	s.Player.Pos = p.Pos
	return p
}

func enterQuestion(t *testing.T, s *GameSession, pocketID string) *AirPocket {
	t.Helper()
	p := moveToPocket(s, pocketID)
	s.HandleEnterPocket()
	require.Equal(t, StateQuestion, s.State)
	return p
}

func TestStartOnlyFromMenu(t *testing.T) {
	s := NewGameSession(DefaultConfig(), rand.New(rand.NewSource(1)))
	assert.Equal(t, StateMenu, s.State)

	s.HandleStart()
	assert.Equal(t, StateIntro, s.State)
	assert.Equal(t, s.Config.Oxygen.Max, s.Oxygen)

	s.State = StatePlaying
	s.HandleStart()
	assert.Equal(t, StatePlaying, s.State, "start must be a no-op outside menu")
}

func TestRestartResetsEverything(t *testing.T) {
	for _, from := range []State{StateIntro, StatePlaying, StatePaused, StateGameOver, StateWin} {
		s := playingSession(t)
		s.Score = 1234
		s.Oxygen = 5
		p, _ := s.World.Pockets.Get("pocket_0")
		p.Cleared = true
		s.ClearedCount = 1
		s.State = from

		s.HandleRestart()

		assert.Equal(t, StateIntro, s.State, "restart from %v", from)
		assert.Equal(t, float64(0), s.Score)
		assert.Equal(t, s.Config.Oxygen.Max, s.Oxygen)
		assert.Equal(t, 0, s.ClearedCount)
		assert.Empty(t, s.ActivePocketID)
		assert.Nil(t, s.CurrentQuestion)
		for el := s.World.Pockets.Front(); el != nil; el = el.Next() {
			assert.False(t, el.Value.Cleared)
		}
	}

	s := NewGameSession(DefaultConfig(), rand.New(rand.NewSource(1)))
	s.HandleRestart()
	assert.Equal(t, StateMenu, s.State, "restart in menu is a no-op")
}

func TestPauseFreezesSimulation(t *testing.T) {
	s := playingSession(t)
	s.HandlePauseToggle()
	require.Equal(t, StatePaused, s.State)

	pos, oxy, score := s.Player.Pos, s.Oxygen, s.Score
	for i := 0; i < 10; i++ {
		s.UpdateTick(testDt)
	}
	assert.Equal(t, pos, s.Player.Pos)
	assert.Equal(t, oxy, s.Oxygen)
	assert.Equal(t, score, s.Score)

	s.HandlePauseToggle()
	assert.Equal(t, StatePlaying, s.State)
	s.UpdateTick(testDt)
	assert.Less(t, s.Oxygen, oxy, "resume should drain oxygen again")
}

func TestOxygenDrainAndBounds(t *testing.T) {
	s := playingSession(t)

	prev := s.Oxygen
	for i := 0; i < 50 && s.State == StatePlaying; i++ {
		s.UpdateTick(testDt)
		assert.GreaterOrEqual(t, s.Oxygen, float64(0))
		assert.LessOrEqual(t, s.Oxygen, s.Config.Oxygen.Max)
		assert.LessOrEqual(t, s.Oxygen, prev)
		prev = s.Oxygen
	}
}

func TestOxygenFrozenDuringQuestion(t *testing.T) {
	s := playingSession(t)
	enterQuestion(t, s, "pocket_0")

	oxy := s.Oxygen
	for i := 0; i < 10; i++ {
		s.UpdateTick(testDt)
	}
	assert.Equal(t, oxy, s.Oxygen)
}

func TestOxygenExhaustionBeatsTreasureSameTick(t *testing.T) {
	s := playingSession(t)

	// Inside the treasure box and about to run out of air on the same
	// tick: the oxygen check comes first in the fixed order.
	s.Player.Pos = Vector2{
		X: s.World.Treasure.Pos.X + s.World.Treasure.Width/2,
		Y: s.World.Treasure.Pos.Y + s.World.Treasure.Height/2,
	}
	s.Oxygen = 0.001

	s.UpdateTick(testDt)
	assert.Equal(t, StateGameOver, s.State)
	assert.Equal(t, float64(0), s.Oxygen)
}

func TestTreasureWinAndTerminalIdempotence(t *testing.T) {
	s := playingSession(t)
	t.Log("treasure at", s.World.Treasure.Pos)

	s.Player.Pos = Vector2{
		X: s.World.Treasure.Pos.X - s.Config.World.TreasureMargin/2, // inside the margin ring
		Y: s.World.Treasure.Pos.Y + s.World.Treasure.Height/2,
	}
	s.UpdateTick(testDt)
	require.Equal(t, StateWin, s.State)

	for i := 0; i < 5; i++ {
		s.UpdateTick(testDt)
		assert.Equal(t, StateWin, s.State)
	}
	s.HandleEnterPocket()
	s.HandleSubmitAnswer()
	s.HandlePauseToggle()
	assert.Equal(t, StateWin, s.State)
}

func TestTreasureMarginBoundary(t *testing.T) {
	s := playingSession(t)
	tr := s.World.Treasure
	m := s.Config.World.TreasureMargin

	s.Player.Pos = Vector2{X: tr.Pos.X - m - 5, Y: tr.Pos.Y}
	s.UpdateTick(testDt)
	assert.Equal(t, StatePlaying, s.State, "outside the margin ring must not win")
}

func TestEnterPocketRequiresProximity(t *testing.T) {
	s := playingSession(t)

	s.HandleEnterPocket() // at the surface, far from every pocket
	assert.Equal(t, StatePlaying, s.State)
	assert.Empty(t, s.ActivePocketID)

	p := enterQuestion(t, s, "pocket_0")
	assert.Equal(t, p.ID, s.ActivePocketID)
	require.NotNil(t, s.CurrentQuestion)
	assert.Equal(t, "q0", s.CurrentQuestion.Text)
	assert.Equal(t, -1, s.SelectedOption)
}

func TestEnterPocketNeedsQuestions(t *testing.T) {
	s := NewGameSession(DefaultConfig(), rand.New(rand.NewSource(11)))
	s.HandleStart()
	stepToPlaying(t, s)

	moveToPocket(s, "pocket_0")
	s.HandleEnterPocket()
	assert.Equal(t, StatePlaying, s.State, "no dataset loaded, enter must be a no-op")
}

func TestEnterPocketIgnoredWhilePaused(t *testing.T) {
	s := playingSession(t)
	moveToPocket(s, "pocket_0")
	s.HandlePauseToggle()

	s.HandleEnterPocket()
	assert.Equal(t, StatePaused, s.State)
	assert.Empty(t, s.ActivePocketID)
}

func TestQuestionRepeatsModuloListLength(t *testing.T) {
	s := playingSession(t)
	// pocket_5 has quiz index 5; with 3 questions that is q2.
	enterQuestion(t, s, "pocket_5")
	require.NotNil(t, s.CurrentQuestion)
	assert.Equal(t, "q2", s.CurrentQuestion.Text)
}

func TestSubmitWithoutSelectionRejected(t *testing.T) {
	s := playingSession(t)
	enterQuestion(t, s, "pocket_0")

	s.HandleSubmitAnswer()
	assert.Equal(t, StateQuestion, s.State)
	assert.NotNil(t, s.CurrentQuestion)
}

func TestSubmitCorrectClearsPocketAndGrantsOxygen(t *testing.T) {
	s := playingSession(t)
	s.Oxygen = 50
	p := enterQuestion(t, s, "pocket_0")

	s.HandleSelectOption(0) // q0 answer is 0
	s.HandleSubmitAnswer()

	assert.Equal(t, StatePlaying, s.State)
	assert.True(t, p.Cleared)
	assert.Equal(t, 1, s.ClearedCount)
	assert.Equal(t, float64(80), s.Oxygen)
	assert.Empty(t, s.ActivePocketID)
	assert.Nil(t, s.CurrentQuestion)
}

func TestOxygenBonusClampedAtMax(t *testing.T) {
	s := playingSession(t)
	s.Oxygen = 95
	enterQuestion(t, s, "pocket_0")
	s.HandleSelectOption(0)
	s.HandleSubmitAnswer()
	assert.Equal(t, s.Config.Oxygen.Max, s.Oxygen)
}

func TestSubmitWrongAnswerIsImmediateGameOver(t *testing.T) {
	s := playingSession(t)
	p := enterQuestion(t, s, "pocket_0")

	s.HandleSelectOption(1) // q0 answer is 0
	s.HandleSubmitAnswer()

	assert.Equal(t, StateGameOver, s.State)
	assert.False(t, p.Cleared)
	assert.Nil(t, s.CurrentQuestion)
	assert.Empty(t, s.ActivePocketID)
}

func TestClearedPocketCannotBeReentered(t *testing.T) {
	s := playingSession(t)
	p := enterQuestion(t, s, "pocket_0")
	s.HandleSelectOption(0)
	s.HandleSubmitAnswer()
	require.True(t, p.Cleared)

	moveToPocket(s, "pocket_0")
	s.HandleEnterPocket()
	assert.Equal(t, StatePlaying, s.State)
	assert.Empty(t, s.ActivePocketID)
	assert.True(t, p.Cleared, "cleared flag never reverts")
}

func TestCancelQuestionHasNoSideEffects(t *testing.T) {
	s := playingSession(t)
	oxy := s.Oxygen
	p := enterQuestion(t, s, "pocket_0")
	s.HandleSelectOption(1)

	s.HandleCancelQuestion()
	assert.Equal(t, StatePlaying, s.State)
	assert.Equal(t, oxy, s.Oxygen)
	assert.False(t, p.Cleared)
	assert.Nil(t, s.CurrentQuestion)
	assert.Equal(t, -1, s.SelectedOption)
}

func TestSelectOptionBounds(t *testing.T) {
	s := playingSession(t)
	enterQuestion(t, s, "pocket_0") // q0 has 2 options

	s.HandleSelectOption(5)
	assert.Equal(t, -1, s.SelectedOption)
	s.HandleSelectOption(-2)
	assert.Equal(t, -1, s.SelectedOption)
	s.HandleSelectOption(1)
	assert.Equal(t, 1, s.SelectedOption)
}

func TestScoreIsRunningMaxDepth(t *testing.T) {
	s := playingSession(t)

	for i := 0; i < 20; i++ {
		prev := s.Score
		s.UpdateTick(testDt)
		assert.GreaterOrEqual(t, s.Score, prev)
	}
	deepest := s.Score

	// Teleporting shallower must not lower the score.
	s.Player.Pos.Y = s.Config.World.SurfaceY
	s.UpdateTick(testDt)
	assert.GreaterOrEqual(t, s.Score, deepest)
}

func TestDatasetSwapAndErrorHandling(t *testing.T) {
	s := playingSession(t)
	require.Len(t, s.Questions, 3)

	s.HandleDatasetLoaded(nil, 0, errors.New("dataset: no valid rows"))
	assert.Len(t, s.Questions, 3, "failed load must keep the old list")
	assert.NotEmpty(t, s.DatasetErr)

	repl := []dataset.Question{{Text: "new", Options: []string{"x", "y"}, Answer: 0}}
	s.HandleDatasetLoaded(repl, 1, nil)
	assert.Len(t, s.Questions, 1)
	assert.Equal(t, 1, s.DatasetAccepted)
	assert.Empty(t, s.DatasetErr)
}

func TestSnapshotQuestionVisibility(t *testing.T) {
	s := playingSession(t)

	snap := s.Snapshot()
	assert.Nil(t, snap.Question)
	assert.Equal(t, "playing", snap.State)

	enterQuestion(t, s, "pocket_0")
	snap = s.Snapshot()
	require.NotNil(t, snap.Question)
	assert.Equal(t, "q0", snap.Question.Text)
	assert.Len(t, snap.Question.Options, 2)
	assert.Equal(t, "pocket_0", snap.ActivePocketID)
}
