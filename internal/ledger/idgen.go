package ledger

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"
)

// Sequence issues unique, time-derived transaction ids. Ids start at the
// current unix-millisecond timestamp and only move forward, so two calls in
// the same millisecond still get distinct values.
type Sequence struct {
	mu   sync.Mutex
	last int64
}

// Next returns the next id in the sequence.
func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := time.Now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

const (
	txHashHexLen  = 64
	addressHexLen = 40
)

// HexGenerator produces synthetic hex identifiers in the shape of on-chain
// hashes and addresses. The identifiers carry no cryptographic meaning; the
// random source is only there to make collisions implausible. Tests may
// swap Source for a deterministic reader.
type HexGenerator struct {
	Source io.Reader
}

// TxHash returns a 0x-prefixed 64-character hex string.
func (g *HexGenerator) TxHash() (string, error) {
	return g.hexString(txHashHexLen)
}

// Address returns a 0x-prefixed 40-character hex string.
func (g *HexGenerator) Address() (string, error) {
	return g.hexString(addressHexLen)
}

func (g *HexGenerator) hexString(chars int) (string, error) {
	src := g.Source
	if src == nil {
		src = rand.Reader
	}
	buf := make([]byte, (chars+1)/2)
	if _, err := io.ReadFull(src, buf); err != nil {
		return "", fmt.Errorf("read random source: %w", err)
	}
	return "0x" + hex.EncodeToString(buf)[:chars], nil
}
