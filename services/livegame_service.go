package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kidstats/kidstats-server/live"
	"github.com/kidstats/kidstats-server/models"
	"github.com/kidstats/kidstats-server/repositories"
)

// ScoreBroadcaster pushes live updates to everyone watching a game room.
type ScoreBroadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// Live update message types sent through the websocket hub.
const (
	MessageStatRecorded = "STAT_RECORDED"
	MessageScoreUpdated = "SCORE_UPDATED"
	MessageActionUndone = "ACTION_UNDONE"
	MessageGameEnded    = "GAME_ENDED"
)

// LiveSessionState is the externally visible snapshot of a live session.
type LiveSessionState struct {
	GameID         int              `json:"game_id"`
	FocusPlayerID  int              `json:"focus_player_id"`
	TeamScore      int              `json:"team_score"`
	OpponentScore  int              `json:"opponent_score"`
	FocusStats     models.LiveStats `json:"focus_stats"`
	TeammateScores map[int]int      `json:"teammate_scores"`
	CanUndo        bool             `json:"can_undo"`
}

type undoKind int

const (
	undoFocusStat undoKind = iota
	undoTeammateScore
	undoOpponentScore
)

// undoAction captures exactly enough to reverse the last recorded action.
// It is a single slot, not a stack: recording anything new replaces it.
type undoAction struct {
	kind     undoKind
	eventID  int
	statType models.StatType
	playerID int
	points   int
}

// liveSession holds the in-memory state of one game being recorded. All of
// it is a derived cache over the ledger; a fresh fold over the non-deleted
// events always wins over the cached counters.
type liveSession struct {
	mu sync.Mutex

	gameID        int
	focusPlayerID int
	roster        map[int]bool

	focusStats     models.LiveStats
	teamScore      int
	opponentScore  int
	teammateScores map[int]int

	lastAction *undoAction
}

func (s *liveSession) snapshot() *LiveSessionState {
	scores := make(map[int]int, len(s.teammateScores))
	for id, score := range s.teammateScores {
		scores[id] = score
	}
	return &LiveSessionState{
		GameID:         s.gameID,
		FocusPlayerID:  s.focusPlayerID,
		TeamScore:      s.teamScore,
		OpponentScore:  s.opponentScore,
		FocusStats:     s.focusStats,
		TeammateScores: scores,
		CanUndo:        s.lastAction != nil,
	}
}

// LiveGameService drives live recording for in-progress games: appending to
// the event ledger, keeping per-session accumulators, and offering exactly
// one step of undo.
type LiveGameService interface {
	StartSession(ctx context.Context, gameID int) (*LiveSessionState, error)
	RecordFocusPlayerStat(ctx context.Context, gameID int, statType models.StatType) (*LiveSessionState, error)
	RecordTeammateScore(ctx context.Context, gameID, playerID, points int) (*LiveSessionState, error)
	RecordOpponentScore(ctx context.Context, gameID, points int) (*LiveSessionState, error)
	// UndoLastAction reverses the most recent action, if any. A second undo
	// without an intervening record is a no-op.
	UndoLastAction(ctx context.Context, gameID int) (*LiveSessionState, error)
	EndGame(ctx context.Context, gameID int) (*GameSummary, error)
	SessionState(gameID int) (*LiveSessionState, error)
	// CurrentLiveStats rebuilds a player's box score from the ledger. The
	// ledger, not the session cache, is the source of truth.
	CurrentLiveStats(ctx context.Context, gameID, playerID int) (*models.LiveStats, error)
}

type liveGameService struct {
	gameRepo   repositories.GameRepository
	playerRepo repositories.PlayerRepository
	eventRepo  repositories.StatEventRepository
	gameSvc    GameService
	hub        ScoreBroadcaster

	mu       sync.RWMutex
	sessions map[int]*liveSession
}

func NewLiveGameService(
	gameRepo repositories.GameRepository,
	playerRepo repositories.PlayerRepository,
	eventRepo repositories.StatEventRepository,
	gameSvc GameService,
	hub ScoreBroadcaster,
) LiveGameService {
	return &liveGameService{
		gameRepo:   gameRepo,
		playerRepo: playerRepo,
		eventRepo:  eventRepo,
		gameSvc:    gameSvc,
		hub:        hub,
		sessions:   make(map[int]*liveSession),
	}
}

func (s *liveGameService) StartSession(ctx context.Context, gameID int) (*LiveSessionState, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if game.Complete {
		return nil, ErrGameAlreadyComplete
	}

	roster, err := s.playerRepo.ListByTeam(ctx, game.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	var focusPlayerID int
	rosterIDs := make(map[int]bool, len(roster))
	for _, player := range roster {
		rosterIDs[player.ID] = true
		if player.ChildID == game.FocusChildID {
			focusPlayerID = player.ID
		}
	}
	if focusPlayerID == 0 {
		return nil, ErrFocusChildNotOnTeam
	}

	// Rebuild the session from the ledger so resuming a half-recorded game
	// picks up exactly where it left off.
	events, err := s.eventRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game events: %w", err)
	}

	session := &liveSession{
		gameID:         gameID,
		focusPlayerID:  focusPlayerID,
		roster:         rosterIDs,
		opponentScore:  game.OpponentScore,
		teammateScores: make(map[int]int),
	}
	for _, event := range events {
		session.teamScore += event.Value
		if event.PlayerID == focusPlayerID {
			session.focusStats.Record(event.StatType)
		} else {
			session.teammateScores[event.PlayerID] += event.Value
		}
	}

	s.mu.Lock()
	s.sessions[gameID] = session
	s.mu.Unlock()

	return session.snapshot(), nil
}

func (s *liveGameService) session(gameID int) (*liveSession, error) {
	s.mu.RLock()
	session, ok := s.sessions[gameID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrGameNotLive
	}
	return session, nil
}

func (s *liveGameService) RecordFocusPlayerStat(ctx context.Context, gameID int, statType models.StatType) (*LiveSessionState, error) {
	if !statType.Valid() {
		return nil, ErrInvalidStatType
	}

	session, err := s.session(gameID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	event := &models.StatEvent{
		GameID:    gameID,
		PlayerID:  session.focusPlayerID,
		StatType:  statType,
		Value:     statType.PointValue(),
		Timestamp: time.Now(),
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to append stat event: %w", err)
	}

	session.focusStats.Record(statType)
	session.teamScore += event.Value
	session.lastAction = &undoAction{
		kind:     undoFocusStat,
		eventID:  event.ID,
		statType: statType,
	}

	state := session.snapshot()
	s.broadcast(gameID, MessageStatRecorded, state)
	return state, nil
}

// teammateStatType maps a raw point total to the shot type recorded for a
// teammate's basket.
func teammateStatType(points int) (models.StatType, error) {
	switch points {
	case 1:
		return models.StatFreeThrowMade, nil
	case 2:
		return models.StatTwoPointMade, nil
	case 3:
		return models.StatThreePointMade, nil
	default:
		return "", ErrInvalidPointValue
	}
}

func (s *liveGameService) RecordTeammateScore(ctx context.Context, gameID, playerID, points int) (*LiveSessionState, error) {
	statType, err := teammateStatType(points)
	if err != nil {
		return nil, err
	}

	session, err := s.session(gameID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if !session.roster[playerID] {
		return nil, ErrPlayerNotOnRoster
	}

	event := &models.StatEvent{
		GameID:    gameID,
		PlayerID:  playerID,
		StatType:  statType,
		Value:     points,
		Timestamp: time.Now(),
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to append stat event: %w", err)
	}

	session.teammateScores[playerID] += points
	session.teamScore += points
	session.lastAction = &undoAction{
		kind:     undoTeammateScore,
		eventID:  event.ID,
		playerID: playerID,
		points:   points,
	}

	state := session.snapshot()
	s.broadcast(gameID, MessageScoreUpdated, state)
	return state, nil
}

func (s *liveGameService) RecordOpponentScore(ctx context.Context, gameID, points int) (*LiveSessionState, error) {
	if points < 1 || points > 3 {
		return nil, ErrInvalidPointValue
	}

	session, err := s.session(gameID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	// Opponent points are stored directly on the game row; they have no
	// ledger event backing them, unlike everything on our side.
	session.opponentScore += points
	if err := s.gameRepo.UpdateOpponentScore(ctx, gameID, session.opponentScore); err != nil {
		session.opponentScore -= points
		return nil, fmt.Errorf("failed to update opponent score: %w", err)
	}

	session.lastAction = &undoAction{
		kind:   undoOpponentScore,
		points: points,
	}

	state := session.snapshot()
	s.broadcast(gameID, MessageScoreUpdated, state)
	return state, nil
}

func (s *liveGameService) UndoLastAction(ctx context.Context, gameID int) (*LiveSessionState, error) {
	session, err := s.session(gameID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	action := session.lastAction
	if action == nil {
		// Nothing to undo; not an error.
		return session.snapshot(), nil
	}

	switch action.kind {
	case undoFocusStat:
		if err := s.eventRepo.SoftDelete(ctx, action.eventID); err != nil {
			return nil, fmt.Errorf("failed to soft delete event %d: %w", action.eventID, err)
		}
		session.focusStats.Reverse(action.statType)
		session.teamScore -= action.statType.PointValue()

	case undoTeammateScore:
		if err := s.eventRepo.SoftDelete(ctx, action.eventID); err != nil {
			return nil, fmt.Errorf("failed to soft delete event %d: %w", action.eventID, err)
		}
		session.teammateScores[action.playerID] -= action.points
		session.teamScore -= action.points

	case undoOpponentScore:
		session.opponentScore -= action.points
		if err := s.gameRepo.UpdateOpponentScore(ctx, gameID, session.opponentScore); err != nil {
			session.opponentScore += action.points
			return nil, fmt.Errorf("failed to update opponent score: %w", err)
		}
	}

	session.lastAction = nil

	state := session.snapshot()
	s.broadcast(gameID, MessageActionUndone, state)
	return state, nil
}

func (s *liveGameService) EndGame(ctx context.Context, gameID int) (*GameSummary, error) {
	session, err := s.session(gameID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if err := s.gameRepo.MarkComplete(ctx, gameID); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to mark game complete: %w", err)
	}

	s.mu.Lock()
	delete(s.sessions, gameID)
	s.mu.Unlock()

	summary, err := s.gameSvc.Summary(ctx, gameID)
	if err != nil {
		return nil, err
	}

	s.broadcast(gameID, MessageGameEnded, summary)
	return summary, nil
}

func (s *liveGameService) SessionState(gameID int) (*LiveSessionState, error) {
	session, err := s.session(gameID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshot(), nil
}

func (s *liveGameService) CurrentLiveStats(ctx context.Context, gameID, playerID int) (*models.LiveStats, error) {
	events, err := s.eventRepo.ListByGameAndPlayer(ctx, gameID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load events for player %d in game %d: %w", playerID, gameID, err)
	}

	var stats models.LiveStats
	for _, event := range events {
		stats.Record(event.StatType)
	}
	return &stats, nil
}

func (s *liveGameService) broadcast(gameID int, messageType string, payload interface{}) {
	if s.hub == nil {
		return
	}
	room := live.GameRoom(gameID)
	s.hub.BroadcastToRoom(room, live.Message{
		Type:    messageType,
		Payload: payload,
		RoomID:  room,
	})
}
