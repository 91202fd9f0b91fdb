package services

import (
	"context"
	"time"

	"github.com/kidstats/kidstats-server/models"
	"github.com/kidstats/kidstats-server/repositories"
)

// In-memory repository fakes used by the service tests.

type fakeChildRepo struct {
	children map[int]*models.Child
	nextID   int
}

func newFakeChildRepo() *fakeChildRepo {
	return &fakeChildRepo{children: make(map[int]*models.Child), nextID: 1}
}

func (r *fakeChildRepo) Create(ctx context.Context, child *models.Child) error {
	child.ID = r.nextID
	r.nextID++
	child.CreatedAt = time.Now()
	copy := *child
	r.children[child.ID] = &copy
	return nil
}

func (r *fakeChildRepo) GetByID(ctx context.Context, id int) (*models.Child, error) {
	child, ok := r.children[id]
	if !ok {
		return nil, repositories.ErrChildNotFound
	}
	copy := *child
	return &copy, nil
}

func (r *fakeChildRepo) List(ctx context.Context) ([]*models.Child, error) {
	var out []*models.Child
	for _, child := range r.children {
		copy := *child
		out = append(out, &copy)
	}
	return out, nil
}

func (r *fakeChildRepo) Update(ctx context.Context, child *models.Child) error {
	if _, ok := r.children[child.ID]; !ok {
		return repositories.ErrChildNotFound
	}
	copy := *child
	r.children[child.ID] = &copy
	return nil
}

func (r *fakeChildRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.children[id]; !ok {
		return repositories.ErrChildNotFound
	}
	delete(r.children, id)
	return nil
}

func (r *fakeChildRepo) TouchLastUsed(ctx context.Context, id int, at time.Time) error {
	child, ok := r.children[id]
	if !ok {
		return repositories.ErrChildNotFound
	}
	child.LastUsedAt = at
	return nil
}

func (r *fakeChildRepo) MostRecentlyUsed(ctx context.Context) (*models.Child, error) {
	var latest *models.Child
	for _, child := range r.children {
		if latest == nil || child.LastUsedAt.After(latest.LastUsedAt) {
			latest = child
		}
	}
	if latest == nil {
		return nil, repositories.ErrChildNotFound
	}
	copy := *latest
	return &copy, nil
}

type fakeTeamRepo struct {
	teams  map[int]*models.Team
	nextID int
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[int]*models.Team), nextID: 1}
}

func (r *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	team.ID = r.nextID
	r.nextID++
	team.CreatedAt = time.Now()
	copy := *team
	r.teams[team.ID] = &copy
	return nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copy := *team
	return &copy, nil
}

func (r *fakeTeamRepo) List(ctx context.Context, activeOnly bool) ([]*models.Team, error) {
	var out []*models.Team
	for _, team := range r.teams {
		if activeOnly && !team.Active {
			continue
		}
		copy := *team
		out = append(out, &copy)
	}
	return out, nil
}

func (r *fakeTeamRepo) Update(ctx context.Context, team *models.Team) error {
	if _, ok := r.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	copy := *team
	r.teams[team.ID] = &copy
	return nil
}

func (r *fakeTeamRepo) Deactivate(ctx context.Context, id int) error {
	team, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.Active = false
	return nil
}

type fakePlayerRepo struct {
	players map[int]*models.Player
	nextID  int
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[int]*models.Player), nextID: 1}
}

func (r *fakePlayerRepo) Create(ctx context.Context, player *models.Player) error {
	for _, existing := range r.players {
		if existing.ChildID == player.ChildID && existing.TeamID == player.TeamID {
			return repositories.ErrPlayerConflict
		}
	}
	player.ID = r.nextID
	r.nextID++
	player.CreatedAt = time.Now()
	copy := *player
	r.players[player.ID] = &copy
	return nil
}

func (r *fakePlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	copy := *player
	return &copy, nil
}

func (r *fakePlayerRepo) ListByChild(ctx context.Context, childID int) ([]*models.Player, error) {
	var out []*models.Player
	for _, player := range r.players {
		if player.ChildID == childID {
			copy := *player
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	var out []*models.Player
	for _, player := range r.players {
		if player.TeamID == teamID {
			copy := *player
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) Update(ctx context.Context, player *models.Player) error {
	if _, ok := r.players[player.ID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	copy := *player
	r.players[player.ID] = &copy
	return nil
}

func (r *fakePlayerRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

type fakeGameRepo struct {
	games  map[int]*models.Game
	nextID int
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{games: make(map[int]*models.Game), nextID: 1}
}

func (r *fakeGameRepo) Create(ctx context.Context, game *models.Game) error {
	game.ID = r.nextID
	r.nextID++
	game.CreatedAt = time.Now()
	copy := *game
	r.games[game.ID] = &copy
	return nil
}

func (r *fakeGameRepo) GetByID(ctx context.Context, id int) (*models.Game, error) {
	game, ok := r.games[id]
	if !ok {
		return nil, repositories.ErrGameNotFound
	}
	copy := *game
	return &copy, nil
}

func (r *fakeGameRepo) ListByTeam(ctx context.Context, teamID int) ([]*models.Game, error) {
	var out []*models.Game
	for _, game := range r.games {
		if game.TeamID == teamID {
			copy := *game
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeGameRepo) ListByIDs(ctx context.Context, ids []int) ([]*models.Game, error) {
	var out []*models.Game
	for _, id := range ids {
		if game, ok := r.games[id]; ok {
			copy := *game
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeGameRepo) Update(ctx context.Context, game *models.Game) error {
	if _, ok := r.games[game.ID]; !ok {
		return repositories.ErrGameNotFound
	}
	copy := *game
	r.games[game.ID] = &copy
	return nil
}

func (r *fakeGameRepo) UpdateOpponentScore(ctx context.Context, id int, score int) error {
	game, ok := r.games[id]
	if !ok {
		return repositories.ErrGameNotFound
	}
	game.OpponentScore = score
	return nil
}

func (r *fakeGameRepo) MarkComplete(ctx context.Context, id int) error {
	game, ok := r.games[id]
	if !ok {
		return repositories.ErrGameNotFound
	}
	game.Complete = true
	return nil
}

type fakeStatEventRepo struct {
	events []*models.StatEvent
	nextID int
	// err, when set, is returned by every read to simulate storage faults.
	err error
}

func newFakeStatEventRepo() *fakeStatEventRepo {
	return &fakeStatEventRepo{nextID: 1}
}

func (r *fakeStatEventRepo) Create(ctx context.Context, event *models.StatEvent) error {
	if r.err != nil {
		return r.err
	}
	event.ID = r.nextID
	r.nextID++
	event.CreatedAt = time.Now()
	copy := *event
	r.events = append(r.events, &copy)
	return nil
}

func (r *fakeStatEventRepo) SoftDelete(ctx context.Context, id int) error {
	if r.err != nil {
		return r.err
	}
	for _, event := range r.events {
		if event.ID == id {
			event.SoftDeleted = true
			return nil
		}
	}
	// Missing id is a no-op.
	return nil
}

func (r *fakeStatEventRepo) ListByGame(ctx context.Context, gameID int) ([]*models.StatEvent, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*models.StatEvent
	for _, event := range r.events {
		if event.GameID == gameID && !event.SoftDeleted {
			copy := *event
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeStatEventRepo) ListByGameAndPlayer(ctx context.Context, gameID, playerID int) ([]*models.StatEvent, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*models.StatEvent
	for _, event := range r.events {
		if event.GameID == gameID && event.PlayerID == playerID && !event.SoftDeleted {
			copy := *event
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeStatEventRepo) ListByPlayerIDs(ctx context.Context, playerIDs []int) ([]*models.StatEvent, error) {
	if r.err != nil {
		return nil, r.err
	}
	ids := make(map[int]bool, len(playerIDs))
	for _, id := range playerIDs {
		ids[id] = true
	}
	var out []*models.StatEvent
	for _, event := range r.events {
		if ids[event.PlayerID] && !event.SoftDeleted {
			copy := *event
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeStatEventRepo) ListByGameAudit(ctx context.Context, gameID int) ([]*models.StatEvent, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*models.StatEvent
	for _, event := range r.events {
		if event.GameID == gameID {
			copy := *event
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeStatEventRepo) GameScore(ctx context.Context, gameID int) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	score := 0
	for _, event := range r.events {
		if event.GameID == gameID && !event.SoftDeleted {
			score += event.Value
		}
	}
	return score, nil
}

func (r *fakeStatEventRepo) GameScores(ctx context.Context, gameIDs []int) (map[int]int, error) {
	if r.err != nil {
		return nil, r.err
	}
	scores := make(map[int]int, len(gameIDs))
	for _, id := range gameIDs {
		score, _ := r.GameScore(ctx, id)
		scores[id] = score
	}
	return scores, nil
}

type fakeBroadcaster struct {
	messages []interface{}
	rooms    []string
}

func (b *fakeBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	b.rooms = append(b.rooms, roomID)
	b.messages = append(b.messages, message)
}
