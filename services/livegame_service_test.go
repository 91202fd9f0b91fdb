package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kidstats/kidstats-server/live"
	"github.com/kidstats/kidstats-server/models"
)

type liveFixture struct {
	childRepo  *fakeChildRepo
	teamRepo   *fakeTeamRepo
	playerRepo *fakePlayerRepo
	gameRepo   *fakeGameRepo
	eventRepo  *fakeStatEventRepo
	hub        *fakeBroadcaster

	svc LiveGameService

	game          *models.Game
	focusPlayerID int
	teammateID    int
}

// newLiveFixture builds one team with a focus child and a teammate, plus one
// in-progress game focused on the first child.
func newLiveFixture(t *testing.T) *liveFixture {
	t.Helper()
	ctx := context.Background()

	f := &liveFixture{
		childRepo:  newFakeChildRepo(),
		teamRepo:   newFakeTeamRepo(),
		playerRepo: newFakePlayerRepo(),
		gameRepo:   newFakeGameRepo(),
		eventRepo:  newFakeStatEventRepo(),
		hub:        &fakeBroadcaster{},
	}

	focusChild := &models.Child{Name: "Maya"}
	if err := f.childRepo.Create(ctx, focusChild); err != nil {
		t.Fatalf("create child: %v", err)
	}
	teammateChild := &models.Child{Name: "Jordan"}
	if err := f.childRepo.Create(ctx, teammateChild); err != nil {
		t.Fatalf("create child: %v", err)
	}

	team := &models.Team{Name: "Thunder", Season: "Fall 2025", Active: true}
	if err := f.teamRepo.Create(ctx, team); err != nil {
		t.Fatalf("create team: %v", err)
	}

	focusPlayer := &models.Player{ChildID: focusChild.ID, TeamID: team.ID}
	if err := f.playerRepo.Create(ctx, focusPlayer); err != nil {
		t.Fatalf("create player: %v", err)
	}
	teammate := &models.Player{ChildID: teammateChild.ID, TeamID: team.ID}
	if err := f.playerRepo.Create(ctx, teammate); err != nil {
		t.Fatalf("create player: %v", err)
	}
	f.focusPlayerID = focusPlayer.ID
	f.teammateID = teammate.ID

	f.game = &models.Game{
		TeamID:       team.ID,
		FocusChildID: focusChild.ID,
		OpponentName: "Hawks",
		GameDate:     time.Now(),
	}
	if err := f.gameRepo.Create(ctx, f.game); err != nil {
		t.Fatalf("create game: %v", err)
	}

	gameSvc := NewGameService(f.gameRepo, f.teamRepo, f.childRepo, f.playerRepo, f.eventRepo)
	f.svc = NewLiveGameService(f.gameRepo, f.playerRepo, f.eventRepo, gameSvc, f.hub)
	return f
}

func (f *liveFixture) start(t *testing.T) *LiveSessionState {
	t.Helper()
	state, err := f.svc.StartSession(context.Background(), f.game.ID)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	return state
}

func (f *liveFixture) lastMessage(t *testing.T) live.Message {
	t.Helper()
	if len(f.hub.messages) == 0 {
		t.Fatal("expected at least one broadcast message")
	}
	msg, ok := f.hub.messages[len(f.hub.messages)-1].(live.Message)
	if !ok {
		t.Fatalf("broadcast message has type %T, want live.Message", f.hub.messages[len(f.hub.messages)-1])
	}
	return msg
}

func TestStartSessionRebuildsFromLedger(t *testing.T) {
	f := newLiveFixture(t)
	ctx := context.Background()

	seed := []*models.StatEvent{
		{GameID: f.game.ID, PlayerID: f.focusPlayerID, StatType: models.StatTwoPointMade, Value: 2},
		{GameID: f.game.ID, PlayerID: f.teammateID, StatType: models.StatThreePointMade, Value: 3},
		{GameID: f.game.ID, PlayerID: f.focusPlayerID, StatType: models.StatRebound, Value: 0},
	}
	for _, event := range seed {
		if err := f.eventRepo.Create(ctx, event); err != nil {
			t.Fatalf("seed event: %v", err)
		}
	}
	// A soft-deleted event must not show up in the rebuilt session.
	deleted := &models.StatEvent{GameID: f.game.ID, PlayerID: f.focusPlayerID, StatType: models.StatThreePointMade, Value: 3}
	if err := f.eventRepo.Create(ctx, deleted); err != nil {
		t.Fatalf("seed event: %v", err)
	}
	if err := f.eventRepo.SoftDelete(ctx, deleted.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	state := f.start(t)

	if state.FocusPlayerID != f.focusPlayerID {
		t.Errorf("FocusPlayerID = %d, want %d", state.FocusPlayerID, f.focusPlayerID)
	}
	if state.TeamScore != 5 {
		t.Errorf("TeamScore = %d, want 5", state.TeamScore)
	}
	if state.FocusStats.Points != 2 || state.FocusStats.Rebounds != 1 {
		t.Errorf("FocusStats = %+v, want 2 points and 1 rebound", state.FocusStats)
	}
	if state.TeammateScores[f.teammateID] != 3 {
		t.Errorf("TeammateScores[%d] = %d, want 3", f.teammateID, state.TeammateScores[f.teammateID])
	}
	if state.CanUndo {
		t.Error("CanUndo = true for a freshly resumed session")
	}
}

func TestStartSessionRejectsCompletedGame(t *testing.T) {
	f := newLiveFixture(t)
	ctx := context.Background()

	if err := f.gameRepo.MarkComplete(ctx, f.game.ID); err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	if _, err := f.svc.StartSession(ctx, f.game.ID); !errors.Is(err, ErrGameAlreadyComplete) {
		t.Errorf("StartSession on completed game: err = %v, want ErrGameAlreadyComplete", err)
	}
}

func TestRecordFocusPlayerStat(t *testing.T) {
	f := newLiveFixture(t)
	ctx := context.Background()
	f.start(t)

	state, err := f.svc.RecordFocusPlayerStat(ctx, f.game.ID, models.StatThreePointMade)
	if err != nil {
		t.Fatalf("RecordFocusPlayerStat: %v", err)
	}
	if state.TeamScore != 3 {
		t.Errorf("TeamScore = %d, want 3", state.TeamScore)
	}
	if state.FocusStats.Points != 3 || state.FocusStats.ThreeMade != 1 || state.FocusStats.FGMade != 1 {
		t.Errorf("FocusStats = %+v, want one made three", state.FocusStats)
	}
	if !state.CanUndo {
		t.Error("CanUndo = false after recording")
	}

	events, err := f.eventRepo.ListByGame(ctx, f.game.ID)
	if err != nil {
		t.Fatalf("ListByGame: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("ledger has %d events, want 1", len(events))
	}
	if events[0].Value != 3 {
		t.Errorf("event value = %d, want 3", events[0].Value)
	}

	if msg := f.lastMessage(t); msg.Type != MessageStatRecorded {
		t.Errorf("broadcast type = %q, want %q", msg.Type, MessageStatRecorded)
	}
}

func TestRecordFocusPlayerStatValidation(t *testing.T) {
	f := newLiveFixture(t)
	ctx := context.Background()

	if _, err := f.svc.RecordFocusPlayerStat(ctx, f.game.ID, "DUNK"); !errors.Is(err, ErrInvalidStatType) {
		t.Errorf("invalid stat type: err = %v, want ErrInvalidStatType", err)
	}
	if _, err := f.svc.RecordFocusPlayerStat(ctx, f.game.ID, models.StatRebound); !errors.Is(err, ErrGameNotLive) {
		t.Errorf("no session: err = %v, want ErrGameNotLive", err)
	}
}

func TestUndoIsSingleSlot(t *testing.T) {
	f := newLiveFixture(t)
	ctx := context.Background()
	f.start(t)

	if _, err := f.svc.RecordFocusPlayerStat(ctx, f.game.ID, models.StatTwoPointMade); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := f.svc.RecordFocusPlayerStat(ctx, f.game.ID, models.StatThreePointMade); err != nil {
		t.Fatalf("record: %v", err)
	}

	// Undo reverses only the three-pointer; the two-pointer is out of reach.
	state, err := f.svc.UndoLastAction(ctx, f.game.ID)
	if err != nil {
		t.Fatalf("UndoLastAction: %v", err)
	}
	if state.TeamScore != 2 {
		t.Errorf("TeamScore after undo = %d, want 2", state.TeamScore)
	}
	if state.FocusStats.Points != 2 || state.FocusStats.ThreeMade != 0 {
		t.Errorf("FocusStats after undo = %+v, want only the two-pointer left", state.FocusStats)
	}
	if state.CanUndo {
		t.Error("CanUndo = true after consuming the undo slot")
	}
	if msg := f.lastMessage(t); msg.Type != MessageActionUndone {
		t.Errorf("broadcast type = %q, want %q", msg.Type, MessageActionUndone)
	}

	// A second undo is a no-op, not an error.
	again, err := f.svc.UndoLastAction(ctx, f.game.ID)
	if err != nil {
		t.Fatalf("second UndoLastAction: %v", err)
	}
	if again.TeamScore != 2 || again.FocusStats.Points != 2 {
		t.Errorf("state changed on no-op undo: %+v", again)
	}

	// The undone event stays in the ledger, flagged instead of removed.
	audit, err := f.eventRepo.ListByGameAudit(ctx, f.game.ID)
	if err != nil {
		t.Fatalf("ListByGameAudit: %v", err)
	}
	if len(audit) != 2 {
		t.Fatalf("audit ledger has %d events, want 2", len(audit))
	}
	deletedCount := 0
	for _, event := range audit {
		if event.SoftDeleted {
			deletedCount++
		}
	}
	if deletedCount != 1 {
		t.Errorf("soft-deleted events = %d, want 1", deletedCount)
	}

	// Derived score agrees with the session after the undo.
	score, err := f.eventRepo.GameScore(ctx, f.game.ID)
	if err != nil {
		t.Fatalf("GameScore: %v", err)
	}
	if score != 2 {
		t.Errorf("derived game score = %d, want 2", score)
	}
}

func TestRecordTeammateScore(t *testing.T) {
	f := newLiveFixture(t)
	ctx := context.Background()
	f.start(t)

	state, err := f.svc.RecordTeammateScore(ctx, f.game.ID, f.teammateID, 2)
	if err != nil {
		t.Fatalf("RecordTeammateScore: %v", err)
	}
	if state.TeamScore != 2 {
		t.Errorf("TeamScore = %d, want 2", state.TeamScore)
	}
	if state.TeammateScores[f.teammateID] != 2 {
		t.Errorf("TeammateScores[%d] = %d, want 2", f.teammateID, state.TeammateScores[f.teammateID])
	}
	if state.FocusStats.Points != 0 {
		t.Errorf("focus stats touched by teammate score: %+v", state.FocusStats)
	}

	events, err := f.eventRepo.ListByGame(ctx, f.game.ID)
	if err != nil {
		t.Fatalf("ListByGame: %v", err)
	}
	if len(events) != 1 || events[0].StatType != models.StatTwoPointMade || events[0].PlayerID != f.teammateID {
		t.Fatalf("ledger = %+v, want one TWO_MADE for the teammate", events)
	}

	// Undo reverses the teammate's basket.
	state, err = f.svc.UndoLastAction(ctx, f.game.ID)
	if err != nil {
		t.Fatalf("UndoLastAction: %v", err)
	}
	if state.TeamScore != 0 || state.TeammateScores[f.teammateID] != 0 {
		t.Errorf("state after undo = %+v, want zeroed teammate score", state)
	}
}

func TestRecordTeammateScoreValidation(t *testing.T) {
	f := newLiveFixture(t)
	ctx := context.Background()
	f.start(t)

	if _, err := f.svc.RecordTeammateScore(ctx, f.game.ID, f.teammateID, 4); !errors.Is(err, ErrInvalidPointValue) {
		t.Errorf("4 points: err = %v, want ErrInvalidPointValue", err)
	}
	if _, err := f.svc.RecordTeammateScore(ctx, f.game.ID, 999, 2); !errors.Is(err, ErrPlayerNotOnRoster) {
		t.Errorf("unknown player: err = %v, want ErrPlayerNotOnRoster", err)
	}
}

func TestOpponentScoreHasNoLedgerEvent(t *testing.T) {
	f := newLiveFixture(t)
	ctx := context.Background()
	f.start(t)

	state, err := f.svc.RecordOpponentScore(ctx, f.game.ID, 3)
	if err != nil {
		t.Fatalf("RecordOpponentScore: %v", err)
	}
	if state.OpponentScore != 3 {
		t.Errorf("OpponentScore = %d, want 3", state.OpponentScore)
	}

	game, err := f.gameRepo.GetByID(ctx, f.game.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if game.OpponentScore != 3 {
		t.Errorf("stored opponent score = %d, want 3", game.OpponentScore)
	}

	// Opponent points live on the game row only.
	audit, err := f.eventRepo.ListByGameAudit(ctx, f.game.ID)
	if err != nil {
		t.Fatalf("ListByGameAudit: %v", err)
	}
	if len(audit) != 0 {
		t.Errorf("ledger has %d events after opponent score, want 0", len(audit))
	}

	// Undo subtracts directly from the row, again without touching the ledger.
	state, err = f.svc.UndoLastAction(ctx, f.game.ID)
	if err != nil {
		t.Fatalf("UndoLastAction: %v", err)
	}
	if state.OpponentScore != 0 {
		t.Errorf("OpponentScore after undo = %d, want 0", state.OpponentScore)
	}
	game, err = f.gameRepo.GetByID(ctx, f.game.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if game.OpponentScore != 0 {
		t.Errorf("stored opponent score after undo = %d, want 0", game.OpponentScore)
	}
}

func TestRecordOpponentScoreValidation(t *testing.T) {
	f := newLiveFixture(t)
	ctx := context.Background()
	f.start(t)

	for _, points := range []int{0, 4, -1} {
		if _, err := f.svc.RecordOpponentScore(ctx, f.game.ID, points); !errors.Is(err, ErrInvalidPointValue) {
			t.Errorf("%d points: err = %v, want ErrInvalidPointValue", points, err)
		}
	}
}

func TestEndGame(t *testing.T) {
	f := newLiveFixture(t)
	ctx := context.Background()
	f.start(t)

	if _, err := f.svc.RecordFocusPlayerStat(ctx, f.game.ID, models.StatTwoPointMade); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := f.svc.RecordOpponentScore(ctx, f.game.ID, 1); err != nil {
		t.Fatalf("opponent score: %v", err)
	}

	summary, err := f.svc.EndGame(ctx, f.game.ID)
	if err != nil {
		t.Fatalf("EndGame: %v", err)
	}
	if !summary.Game.Complete {
		t.Error("game not marked complete")
	}
	if summary.TeamScore != 2 {
		t.Errorf("TeamScore = %d, want 2", summary.TeamScore)
	}
	if summary.Result != models.GameResultWin {
		t.Errorf("Result = %q, want %q", summary.Result, models.GameResultWin)
	}
	if summary.FocusPlayerStats.Points != 2 {
		t.Errorf("FocusPlayerStats.Points = %d, want 2", summary.FocusPlayerStats.Points)
	}
	if msg := f.lastMessage(t); msg.Type != MessageGameEnded {
		t.Errorf("broadcast type = %q, want %q", msg.Type, MessageGameEnded)
	}

	// The session is gone; further live calls are rejected.
	if _, err := f.svc.SessionState(f.game.ID); !errors.Is(err, ErrGameNotLive) {
		t.Errorf("SessionState after end: err = %v, want ErrGameNotLive", err)
	}
	if _, err := f.svc.RecordFocusPlayerStat(ctx, f.game.ID, models.StatRebound); !errors.Is(err, ErrGameNotLive) {
		t.Errorf("record after end: err = %v, want ErrGameNotLive", err)
	}
	// And restarting is blocked because the game is complete.
	if _, err := f.svc.StartSession(ctx, f.game.ID); !errors.Is(err, ErrGameAlreadyComplete) {
		t.Errorf("restart after end: err = %v, want ErrGameAlreadyComplete", err)
	}
}

func TestCurrentLiveStatsFoldsLedger(t *testing.T) {
	f := newLiveFixture(t)
	ctx := context.Background()
	f.start(t)

	for _, statType := range []models.StatType{
		models.StatTwoPointMade,
		models.StatTwoPointMiss,
		models.StatFreeThrowMade,
	} {
		if _, err := f.svc.RecordFocusPlayerStat(ctx, f.game.ID, statType); err != nil {
			t.Fatalf("record %s: %v", statType, err)
		}
	}
	if _, err := f.svc.UndoLastAction(ctx, f.game.ID); err != nil {
		t.Fatalf("undo: %v", err)
	}

	stats, err := f.svc.CurrentLiveStats(ctx, f.game.ID, f.focusPlayerID)
	if err != nil {
		t.Fatalf("CurrentLiveStats: %v", err)
	}
	if stats.Points != 2 {
		t.Errorf("Points = %d, want 2", stats.Points)
	}
	if stats.FGMade != 1 || stats.FGAttempted != 2 {
		t.Errorf("FG = %d/%d, want 1/2", stats.FGMade, stats.FGAttempted)
	}
	if stats.FTAttempted != 0 {
		t.Errorf("FTAttempted = %d, want 0 after undoing the free throw", stats.FTAttempted)
	}
}
