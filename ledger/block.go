package ledger

import (
	"github.com/google/uuid"
	"github.com/luca-patrignani/jest/domain/jest"
)

// Block records one event of the match.
type Block struct {
	Index     int        `json:"index"`
	ID        uuid.UUID  `json:"id"`
	Timestamp int64      `json:"timestamp"`
	PrevHash  string     `json:"prev_hash"`
	Hash      string     `json:"hash"`
	Event     jest.Event `json:"event"`
	Metadata  Metadata   `json:"metadata"`
}

type Metadata struct {
	GameID uuid.UUID         `json:"game_id"`
	Extra  map[string]string `json:"extra,omitempty"`
}
