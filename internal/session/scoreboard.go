package session

import (
	"context"
	"sort"
	"sync"
)

// PlayerID is the score board key for the tracked player.
const PlayerID = "player"

// ScoreEntry is one row of the session ranking.
type ScoreEntry struct {
	CollectorID string
	Score       int
}

// ScoreBoard keeps the per-collector session score. Bots and the player
// compete on score; only the player feeds the progression systems.
type ScoreBoard struct {
	mu     sync.Mutex
	scores map[string]int
}

// NewScoreBoard creates an empty score board.
func NewScoreBoard() *ScoreBoard {
	return &ScoreBoard{scores: make(map[string]int)}
}

// Add credits amount to a collector's score.
func (b *ScoreBoard) Add(collectorID string, amount int) {
	if collectorID == "" || amount == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scores[collectorID] += amount
}

// AddPlayerScore credits the tracked player. Quest rewards enter here.
func (b *ScoreBoard) AddPlayerScore(_ context.Context, amount int) {
	b.Add(PlayerID, amount)
}

// Score returns a collector's current score.
func (b *ScoreBoard) Score(collectorID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scores[collectorID]
}

// Ranking returns all collectors ordered by score descending, ties broken
// by collector ID for a stable display order.
func (b *ScoreBoard) Ranking() []ScoreEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]ScoreEntry, 0, len(b.scores))
	for id, score := range b.scores {
		out = append(out, ScoreEntry{CollectorID: id, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].CollectorID < out[j].CollectorID
	})
	return out
}

// Reset clears every score. Called when a new game round starts.
func (b *ScoreBoard) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scores = make(map[string]int)
}
