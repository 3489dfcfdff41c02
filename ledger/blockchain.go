package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/luca-patrignani/jest/domain/jest"
)

const genesisPrevHash = "0"

type Blockchain struct {
	mu     sync.RWMutex
	gameID uuid.UUID
	blocks []Block
	logger *slog.Logger
}

// NewBlockchain creates the log of a game with its genesis block. The genesis
// block has index 0, previous hash "0" and no event kind.
func NewBlockchain(gameID uuid.UUID) *Blockchain {
	bc := &Blockchain{
		gameID: gameID,
		blocks: make([]Block, 0),
		logger: slog.Default(),
	}
	genesis := Block{
		Index:     0,
		ID:        uuid.New(),
		Timestamp: time.Now().Unix(),
		PrevHash:  genesisPrevHash,
		Metadata:  Metadata{GameID: gameID},
	}
	genesis.Hash = calculateHash(genesis)
	bc.blocks = append(bc.blocks, genesis)
	return bc
}

// Append adds e to the chain. The extra parameter can optionally carry
// additional metadata.
func (bc *Blockchain) Append(e jest.Event, extra ...map[string]string) error {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	var extraMsg map[string]string
	if len(extra) > 0 {
		extraMsg = extra[0]
	}
	latest := bc.blocks[len(bc.blocks)-1]

	newBlock := Block{
		Index:     latest.Index + 1,
		ID:        uuid.New(),
		Timestamp: time.Now().Unix(),
		PrevHash:  latest.Hash,
		Event:     e,
		Metadata:  Metadata{GameID: bc.gameID, Extra: extraMsg},
	}
	newBlock.Hash = calculateHash(newBlock)

	if err := validateBlock(newBlock, latest); err != nil {
		return fmt.Errorf("invalid block: %w", err)
	}
	bc.blocks = append(bc.blocks, newBlock)
	return nil
}

// Notify records e, logging instead of failing so that the match goes on.
func (bc *Blockchain) Notify(e jest.Event) {
	if err := bc.Append(e); err != nil {
		bc.logger.Error("ledger append failed", "event", e.Kind, "err", err)
	}
}

// GetLatest returns the most recently added block.
func (bc *Blockchain) GetLatest() (Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if len(bc.blocks) == 0 {
		return Block{}, fmt.Errorf("blockchain is empty")
	}
	return bc.blocks[len(bc.blocks)-1], nil
}

// GetByIndex returns a copy of the block at index.
func (bc *Blockchain) GetByIndex(index int) (Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if index < 0 || index >= len(bc.blocks) {
		return Block{}, fmt.Errorf("index %d out of range", index)
	}
	return bc.blocks[index], nil
}

// GameID returns the game recorded by the chain.
func (bc *Blockchain) GameID() uuid.UUID {
	return bc.gameID
}

func (bc *Blockchain) Len() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return len(bc.blocks)
}

// Events returns the recorded events in order, genesis excluded.
func (bc *Blockchain) Events() []jest.Event {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	out := make([]jest.Event, 0, len(bc.blocks)-1)
	for _, b := range bc.blocks[1:] {
		out = append(out, b.Event)
	}
	return out
}

// Verify validates the whole chain: the genesis block, then the index
// continuity, previous hash linkage and hash of every following block.
func (bc *Blockchain) Verify() error {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return verify(bc.blocks)
}

// WriteTo encodes the chain as JSON.
func (bc *Blockchain) WriteTo(w io.Writer) (int64, error) {
	bc.mu.RLock()
	data, err := json.MarshalIndent(bc.blocks, "", "  ")
	bc.mu.RUnlock()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Read decodes a chain written by WriteTo and verifies it.
func Read(r io.Reader) (*Blockchain, error) {
	var blocks []Block
	if err := json.NewDecoder(r).Decode(&blocks); err != nil {
		return nil, fmt.Errorf("decoding ledger: %w", err)
	}
	if err := verify(blocks); err != nil {
		return nil, err
	}
	return &Blockchain{
		gameID: blocks[0].Metadata.GameID,
		blocks: blocks,
		logger: slog.Default(),
	}, nil
}

func verify(blocks []Block) error {
	if len(blocks) == 0 {
		return fmt.Errorf("empty blockchain")
	}
	genesis := blocks[0]
	if genesis.Index != 0 || genesis.PrevHash != genesisPrevHash || genesis.Hash != calculateHash(genesis) {
		return fmt.Errorf("invalid genesis block")
	}
	for i := 1; i < len(blocks); i++ {
		if err := validateBlock(blocks[i], blocks[i-1]); err != nil {
			return fmt.Errorf("block %d invalid: %w", i, err)
		}
	}
	return nil
}

// validateBlock checks index continuity, previous hash linkage and the hash
// of current.
func validateBlock(current, previous Block) error {
	if current.Index != previous.Index+1 {
		return fmt.Errorf("invalid index: expected %d, got %d", previous.Index+1, current.Index)
	}
	if current.PrevHash != previous.Hash {
		return fmt.Errorf("invalid prev hash: expected %s, got %s", previous.Hash, current.PrevHash)
	}
	if expected := calculateHash(current); current.Hash != expected {
		return fmt.Errorf("invalid hash: expected %s, got %s", expected, current.Hash)
	}
	if current.Metadata.GameID != previous.Metadata.GameID {
		return fmt.Errorf("block belongs to game %s, chain to %s", current.Metadata.GameID, previous.Metadata.GameID)
	}
	return nil
}

// calculateHash computes the sha256 of a block from every field but the
// hash itself. Event and metadata are JSON marshaled first.
func calculateHash(block Block) string {
	eventBytes, _ := json.Marshal(block.Event)
	metaBytes, _ := json.Marshal(block.Metadata)

	data := fmt.Sprintf("%d%s%d%s%s%s",
		block.Index,
		block.ID,
		block.Timestamp,
		block.PrevHash,
		string(eventBytes),
		string(metaBytes),
	)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
