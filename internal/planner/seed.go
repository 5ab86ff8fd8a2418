package planner

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Sub-seeds are pure functions of the global seed so no mutable RNG is
// ever shared between plugin invocations: reordering calls or toggling
// an unrelated plugin cannot change the seed any slot receives.
// Derivation hashes a domain tag with the coordinates and takes the
// first 8 bytes of the digest, big-endian.

const (
	domainTest = 'T'
	domainSlot = 'S'
)

// TestSeed derives the per-test sub-seed driving slot interleaving.
func TestSeed(global int64, test int) int64 {
	return derive(domainTest, global, uint64(test), 0)
}

// SlotSeed derives the sub-seed passed to whichever plugin fills slot
// i of test t.
func SlotSeed(global int64, test, slot int) int64 {
	return derive(domainSlot, global, uint64(test), uint64(slot))
}

func derive(domain byte, global int64, a, b uint64) int64 {
	var buf [25]byte
	buf[0] = domain
	binary.BigEndian.PutUint64(buf[1:9], uint64(global))
	binary.BigEndian.PutUint64(buf[9:17], a)
	binary.BigEndian.PutUint64(buf[17:25], b)
	digest := sha256.Sum256(buf[:])
	return int64(binary.BigEndian.Uint64(digest[:8]))
}

// NewGlobalSeed draws a fresh global seed from local entropy. Callers
// record it in the persisted artifact so the run can be replayed.
func NewGlobalSeed() (int64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("generate seed: %w", err)
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}
