package slap

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ricrios/hero-arcade/internal/storage"
)

// Local-storage keys.
const (
	HighScoreKey   = "slap-high-score"
	LeaderboardKey = "slap-leaderboard"
	DraftsKey      = "slap_drafts_v1"
)

// Draft is a canvas posted to the local wall.
type Draft struct {
	ID        string `json:"id"`
	CreatedAt int64  `json:"createdAt"` // Unix ms
	Glyph     string `json:"glyph"`
	Color     string `json:"color"`
	Brush     int    `json:"brush"`
	Art       string `json:"art"`
	Grid      Grid   `json:"grid"`
}

// Created returns CreatedAt as a time.
func (d Draft) Created() time.Time {
	return time.UnixMilli(d.CreatedAt)
}

// Entry is one leaderboard row.
type Entry struct {
	Score     int    `json:"score"`
	Creations int    `json:"creations"`
	Art       string `json:"art"`
	Timestamp int64  `json:"timestamp"` // Unix ms
	ID        string `json:"id"`
}

// blobMu serializes read-modify-write cycles on the blobs across every Wall
// in the process.
var blobMu sync.Mutex

// Wall persists drafts, the leaderboard and the high score as JSON blobs in
// local storage. Every operation is best-effort: failures are logged and the
// caller carries on with empty or in-memory state.
type Wall struct {
	kv        storage.KV
	log       *log.Logger
	draftsCap int
	boardCap  int

	Now   func() time.Time
	NewID func() string
}

// NewWall creates a wall. Non-positive caps fall back to 20 drafts and a
// top 10 leaderboard.
func NewWall(kv storage.KV, logger *log.Logger, draftsCap, boardCap int) *Wall {
	if draftsCap <= 0 {
		draftsCap = 20
	}
	if boardCap <= 0 {
		boardCap = 10
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Wall{
		kv:        kv,
		log:       logger,
		draftsCap: draftsCap,
		boardCap:  boardCap,
		Now:       time.Now,
		NewID:     uuid.NewString,
	}
}

func (w *Wall) read(key string, v any) {
	if _, err := storage.ReadJSON(w.kv, key, v); err != nil {
		w.log.Warn("discarding stored value", "key", key, "err", err)
	}
}

func (w *Wall) write(key string, v any) {
	if err := storage.WriteJSON(w.kv, key, v); err != nil {
		w.log.Warn("cannot persist", "key", key, "err", err)
	}
}

// Drafts returns the posted drafts, newest first.
func (w *Wall) Drafts() []Draft {
	var drafts []Draft
	w.read(DraftsKey, &drafts)
	return drafts
}

// Post stores d at the front of the wall, keeping the most recent drafts up
// to the cap. ID and CreatedAt are filled in when empty.
func (w *Wall) Post(d Draft) Draft {
	if d.ID == "" {
		d.ID = w.NewID()
	}
	if d.CreatedAt == 0 {
		d.CreatedAt = w.Now().UnixMilli()
	}
	blobMu.Lock()
	defer blobMu.Unlock()
	drafts := append([]Draft{d}, w.Drafts()...)
	if len(drafts) > w.draftsCap {
		drafts = drafts[:w.draftsCap]
	}
	w.write(DraftsKey, drafts)
	w.log.Info("posted to wall", "id", d.ID, "drafts", len(drafts))
	return d
}

// Find returns the draft with the given id.
func (w *Wall) Find(id string) (Draft, bool) {
	for _, d := range w.Drafts() {
		if d.ID == id {
			return d, true
		}
	}
	return Draft{}, false
}

// Delete removes a draft. Returns false when no draft has that id.
func (w *Wall) Delete(id string) bool {
	blobMu.Lock()
	defer blobMu.Unlock()
	drafts := w.Drafts()
	kept := slices.DeleteFunc(slices.Clone(drafts), func(d Draft) bool { return d.ID == id })
	if len(kept) == len(drafts) {
		return false
	}
	w.write(DraftsKey, kept)
	return true
}

// ClearDrafts removes every draft and returns how many there were.
func (w *Wall) ClearDrafts() int {
	blobMu.Lock()
	defer blobMu.Unlock()
	n := len(w.Drafts())
	if n > 0 {
		w.write(DraftsKey, []Draft{})
	}
	return n
}

// Leaderboard returns the entries, best first.
func (w *Wall) Leaderboard() []Entry {
	var board []Entry
	w.read(LeaderboardKey, &board)
	return board
}

// Record adds an entry and keeps the top scores up to the cap.
// Ties keep their insertion order.
func (w *Wall) Record(score, creations int, art string) Entry {
	e := Entry{
		Score:     score,
		Creations: creations,
		Art:       art,
		Timestamp: w.Now().UnixMilli(),
		ID:        w.NewID(),
	}
	blobMu.Lock()
	defer blobMu.Unlock()
	board := append(w.Leaderboard(), e)
	slices.SortStableFunc(board, func(a, b Entry) int { return cmp.Compare(b.Score, a.Score) })
	if len(board) > w.boardCap {
		board = board[:w.boardCap]
	}
	w.write(LeaderboardKey, board)
	return e
}

// HighScore returns the stored best score.
func (w *Wall) HighScore() int {
	var n int
	w.read(HighScoreKey, &n)
	return max(0, n)
}

// SaveHighScore stores n as the best score.
func (w *Wall) SaveHighScore(n int) {
	w.write(HighScoreKey, n)
}
