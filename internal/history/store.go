// internal/history/store.go
//
// SQLite archive of finished matches.
// Responsibilities:
//   - Record the final standing of a room once it reaches GAME_OVER.
//   - List recent matches and load one match with its seats.
//
// The schema lives in assets/sql and is applied by the server at startup.

package history

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/robalobadob/hexsettlers/internal/game"
)

// ErrNotFound is returned for unknown match ids.
var ErrNotFound = errors.New("match not found")

// Seat is one player's final standing.
type Seat struct {
	PlayerID      string `json:"playerId"`
	Name          string `json:"name"`
	ColorIndex    int    `json:"colorIndex"`
	VictoryPoints int    `json:"victoryPoints"`
	KnightsPlayed int    `json:"knightsPlayed"`
	Roads         int    `json:"roads"`
	Settlements   int    `json:"settlements"`
	Cities        int    `json:"cities"`
}

// Match is one archived game.
type Match struct {
	ID          int64     `json:"id"`
	RoomID      string    `json:"roomId"`
	WinnerID    string    `json:"winnerId"`
	WinnerName  string    `json:"winnerName"`
	Turns       int       `json:"turns"`
	LargestArmy string    `json:"largestArmy,omitempty"`
	LongestRoad string    `json:"longestRoad,omitempty"`
	FinishedAt  time.Time `json:"finishedAt"`
	Seats       []Seat    `json:"seats,omitempty"`
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store { return &Store{db: db, now: time.Now} }

// Archive records a finished game. It satisfies room.Archiver.
func (s *Store) Archive(ctx context.Context, snap game.Snapshot) error {
	_, err := s.Insert(ctx, FromSnapshot(snap, s.now()))
	return err
}

// FromSnapshot converts the final snapshot of a room into a Match.
func FromSnapshot(snap game.Snapshot, finished time.Time) Match {
	m := Match{
		RoomID:      snap.RoomID,
		WinnerID:    snap.GameState.Winner,
		Turns:       snap.GameState.Turns,
		LargestArmy: snap.GameState.LargestArmy.Holder,
		LongestRoad: snap.GameState.LongestRoad.Holder,
		FinishedAt:  finished.UTC(),
	}
	for _, p := range snap.Players {
		if p.ID == m.WinnerID {
			m.WinnerName = p.Name
		}
		m.Seats = append(m.Seats, Seat{
			PlayerID:      p.ID,
			Name:          p.Name,
			ColorIndex:    p.ColorIndex,
			VictoryPoints: p.VictoryPoints,
			KnightsPlayed: p.KnightsPlayed,
			Roads:         p.Roads,
			Settlements:   p.Settlements,
			Cities:        p.Cities,
		})
	}
	return m
}

// Insert stores m and its seats in one transaction and returns the new id.
func (s *Store) Insert(ctx context.Context, m Match) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO matches(room_id, winner_id, winner_name, turns, largest_army, longest_road, finished_at)
VALUES(?,?,?,?,?,?,?)`,
		m.RoomID, m.WinnerID, m.WinnerName, m.Turns, m.LargestArmy, m.LongestRoad,
		m.FinishedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, p := range m.Seats {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO match_players(match_id, player_id, name, color_index, victory_points, knights_played, roads, settlements, cities)
VALUES(?,?,?,?,?,?,?,?,?)`,
			id, p.PlayerID, p.Name, p.ColorIndex, p.VictoryPoints, p.KnightsPlayed, p.Roads, p.Settlements, p.Cities,
		); err != nil {
			return 0, err
		}
	}
	return id, tx.Commit()
}

// Recent lists the latest matches without seats, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Match, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, room_id, winner_id, winner_name, turns, largest_army, longest_road, finished_at
FROM matches
ORDER BY finished_at DESC, id DESC
LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Get loads one match with its seats ordered by color.
func (s *Store) Get(ctx context.Context, id int64) (Match, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, room_id, winner_id, winner_name, turns, largest_army, longest_road, finished_at
FROM matches WHERE id=?`, id)
	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Match{}, ErrNotFound
	}
	if err != nil {
		return Match{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, name, color_index, victory_points, knights_played, roads, settlements, cities
FROM match_players WHERE match_id=? ORDER BY color_index ASC`, id)
	if err != nil {
		return Match{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var p Seat
		if err := rows.Scan(&p.PlayerID, &p.Name, &p.ColorIndex, &p.VictoryPoints,
			&p.KnightsPlayed, &p.Roads, &p.Settlements, &p.Cities); err != nil {
			return Match{}, err
		}
		m.Seats = append(m.Seats, p)
	}
	return m, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (Match, error) {
	var m Match
	var finished string
	if err := row.Scan(&m.ID, &m.RoomID, &m.WinnerID, &m.WinnerName, &m.Turns,
		&m.LargestArmy, &m.LongestRoad, &finished); err != nil {
		return Match{}, err
	}
	m.FinishedAt, _ = time.Parse(time.RFC3339, finished)
	return m, nil
}
