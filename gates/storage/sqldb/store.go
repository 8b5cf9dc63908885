package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	sq "github.com/Masterminds/squirrel"
	"github.com/bool64/sqluct"
	"github.com/jmoiron/sqlx"
	"log/slog"
	"playerd/domain"
)

func NewStore(db *sqlx.DB, log *slog.Logger) *Store {
	dialect := sqluct.DialectPostgres
	if db.DriverName() == DriverSQLite {
		dialect = sqluct.DialectSQLite3
	}
	return &Store{
		db:  db,
		sm:  sqluct.Mapper{Dialect: dialect},
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		log: log,
	}
}

// GetPlayerByHandle returns nil without error when no player has handle.
func (p *Store) GetPlayerByHandle(ctx context.Context, handle domain.Handle) (*domain.Player, error) {
	const op = "storage.sqldb.GetPlayerByHandle"
	p.log.Debug("looking up player", "op", op, "player", handle)

	query := p.sm.Select(p.sq.Select(), &playerRow{}).
		From(playersTable).
		Where(sq.Eq{"player": string(handle)}).
		Limit(1)
	qry, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var row playerRow
	err = p.db.GetContext(ctx, &row, qry, args...)
	if errors.Is(err, sql.ErrNoRows) {
		p.log.Debug("player not found", "op", op, "player", handle)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	player := toDomain(row)
	return &player, nil
}

// AddPlayer inserts a new player. A handle taken in the meantime comes back
// as domain.ErrDuplicateHandle.
func (p *Store) AddPlayer(ctx context.Context, dplayer domain.Player) error {
	const op = "storage.sqldb.AddPlayer"

	query := p.sm.Insert(p.sq.Insert(playersTable), fromDomain(dplayer))
	qry, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	p.log.Debug("adding player", "op", op, "qry", qry)

	if _, err := p.db.ExecContext(ctx, qry, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w: %w", op, domain.ErrDuplicateHandle, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	p.log.Debug("player added", "op", op, "id", dplayer.ID)
	return nil
}

func (p *Store) DeletePlayer(ctx context.Context, id domain.PlayerID) error {
	const op = "storage.sqldb.DeletePlayer"

	qry, args, err := p.sq.Delete(playersTable).Where(sq.Eq{"id": string(id)}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	res, err := p.db.ExecContext(ctx, qry, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, errNoRowsAffected)
	}
	return nil
}

// Reconcile drops rows that never got a handle and makes sure the unique
// index on player exists. Safe to run on every start.
func (p *Store) Reconcile(ctx context.Context) (int64, error) {
	const op = "storage.sqldb.Reconcile"

	qry, args, err := p.sq.Delete(playersTable).Where(sq.Eq{"player": nil}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	res, err := p.db.ExecContext(ctx, qry, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: delete null players: %w", op, err)
	}
	removed, _ := res.RowsAffected()
	p.log.Info("cleaned up players without handle", "op", op, "removed", removed)

	if _, err := p.db.ExecContext(ctx,
		`CREATE UNIQUE INDEX IF NOT EXISTS players_player_key ON players (player)`); err != nil {
		return removed, fmt.Errorf("%s: create unique index: %w", op, err)
	}
	p.log.Info("indexes updated", "op", op)
	return removed, nil
}
