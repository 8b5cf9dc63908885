package sqldb

import (
	"errors"
	sq "github.com/Masterminds/squirrel"
	"github.com/bool64/sqluct"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"log/slog"
	"playerd/domain"
	"time"
)

const playersTable = "players"

type Store struct {
	db  *sqlx.DB
	sq  sq.StatementBuilderType
	sm  sqluct.Mapper
	log *slog.Logger
}

type player struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Player string `db:"player"`
	Score  string `db:"score"`
}

type playerRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Player    string    `db:"player"`
	Score     string    `db:"score"`
	CreatedAt time.Time `db:"created_at"`
}

var errNoRowsAffected = errors.New("no rows affected")

func fromDomain(p domain.Player) player {
	return player{
		ID:     string(p.ID),
		Name:   string(p.Name),
		Player: string(p.Handle),
		Score:  string(p.Score),
	}
}

func toDomain(r playerRow) domain.Player {
	return domain.Player{
		ID:         domain.PlayerID(r.ID),
		Name:       domain.Name(r.Name),
		Handle:     domain.Handle(r.Player),
		Score:      domain.Score(r.Score),
		Registered: r.CreatedAt,
	}
}

// isUniqueViolation reports whether err is the unique index rejecting a row.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
