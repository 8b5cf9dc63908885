package domain

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"log/slog"
)

type PlayerStore interface {
	GetPlayerByHandle(ctx context.Context, handle Handle) (*Player, error)
	AddPlayer(ctx context.Context, player Player) error
	DeletePlayer(ctx context.Context, id PlayerID) error
}

// HandleCache remembers handles already taken. It only speeds up the
// duplicate pre-check, the store's unique index stays authoritative.
type HandleCache interface {
	Seen(ctx context.Context, handle Handle) (bool, error)
	Remember(ctx context.Context, handle Handle) error
}

type TokenIssuer interface {
	IssueToken(id PlayerID) (string, error)
}

type NopCache struct{}

func (NopCache) Seen(context.Context, Handle) (bool, error) { return false, nil }
func (NopCache) Remember(context.Context, Handle) error    { return nil }

type PlayerService struct {
	store  PlayerStore
	cache  HandleCache
	tokens TokenIssuer
	log    *slog.Logger
	newID  func() PlayerID
}

func NewPlayerService(store PlayerStore, cache HandleCache, tokens TokenIssuer, log *slog.Logger) *PlayerService {
	if cache == nil {
		cache = NopCache{}
	}
	return &PlayerService{
		store:  store,
		cache:  cache,
		tokens: tokens,
		log:    log,
		newID:  func() PlayerID { return PlayerID(uuid.NewString()) },
	}
}

// Register validates np, rejects taken handles, stores the player and signs
// a token for it. When signing fails the fresh record is deleted again so no
// player exists that its client never heard about.
func (s *PlayerService) Register(ctx context.Context, np NewPlayer) (Registration, error) {
	const op = "PlayerService.Register"

	if err := np.Validate(); err != nil {
		s.log.Debug("validation failed", "op", op, "error", err)
		return Registration{}, err
	}
	handle := Handle(np.Handle)

	exists, err := s.exists(ctx, handle)
	if err != nil {
		return Registration{}, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		s.log.Info("player already exists", "op", op, "player", handle)
		return Registration{}, ErrPlayerExists
	}

	player := Player{
		ID:     s.newID(),
		Name:   Name(np.Name),
		Handle: handle,
		Score:  Score(np.Score),
	}
	if err := s.store.AddPlayer(ctx, player); err != nil {
		s.log.Error("failed to add player", "op", op, "player", handle, "error", err)
		return Registration{}, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.tokens.IssueToken(player.ID)
	if err != nil {
		s.log.Error("failed to sign token", "op", op, "id", player.ID, "error", err)
		s.compensate(ctx, player)
		return Registration{}, fmt.Errorf("%s: %w: %w", op, ErrTokenNotIssued, err)
	}

	if err := s.cache.Remember(ctx, handle); err != nil {
		s.log.Warn("failed to cache handle", "op", op, "player", handle, "error", err)
	}
	s.log.Info("registered player", "op", op, "player", handle, "id", player.ID)
	return Registration{Player: player, Token: token}, nil
}

func (s *PlayerService) exists(ctx context.Context, handle Handle) (bool, error) {
	const op = "PlayerService.exists"

	seen, err := s.cache.Seen(ctx, handle)
	if err != nil {
		s.log.Warn("handle cache unavailable", "op", op, "error", err)
	} else if seen {
		return true, nil
	}

	p, err := s.store.GetPlayerByHandle(ctx, handle)
	if err != nil {
		s.log.Error("failed to look up player", "op", op, "player", handle, "error", err)
		return false, err
	}
	return p != nil, nil
}

func (s *PlayerService) compensate(ctx context.Context, player Player) {
	const op = "PlayerService.compensate"

	// the request may already be cancelled, the delete must still run
	ctx = context.WithoutCancel(ctx)
	if err := s.store.DeletePlayer(ctx, player.ID); err != nil {
		s.log.Error("orphaned player left behind", "op", op, "id", player.ID, "player", player.Handle, "error", err)
		return
	}
	s.log.Warn("removed player without token", "op", op, "id", player.ID, "player", player.Handle)
}
