package server

import (
	"sort"

	"github.com/tomz197/coloroid/internal/loop/config"
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	clientID int // Used for deterministic tie-break when scores are equal
}

// leaderboard keeps the best finished games across all sessions.
type leaderboard struct {
	top []TopScoreEntry
}

// record inserts a finished game, keeping the top config.TopScoreCount.
// A player appears once, with their best score.
func (l *leaderboard) record(e TopScoreEntry) {
	if e.Score <= 0 {
		return
	}
	for i, cur := range l.top {
		if cur.Username == e.Username && cur.clientID == e.clientID {
			if e.Score <= cur.Score {
				return
			}
			l.top = append(l.top[:i], l.top[i+1:]...)
			break
		}
	}

	l.top = append(l.top, e)
	sort.SliceStable(l.top, func(i, j int) bool {
		if l.top[i].Score != l.top[j].Score {
			return l.top[i].Score > l.top[j].Score
		}
		return l.top[i].clientID < l.top[j].clientID
	})
	if len(l.top) > config.TopScoreCount {
		l.top = l.top[:config.TopScoreCount]
	}
}

// entries returns a copy of the leaderboard.
func (l *leaderboard) entries() []TopScoreEntry {
	out := make([]TopScoreEntry, len(l.top))
	copy(out, l.top)
	return out
}
