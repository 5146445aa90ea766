// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package cuckoo verifies Cuckoo-cycle proofs of work: a solution is a
// sorted list of edge nonces forming a single cycle of a fixed length in a
// bipartite graph whose edges are derived from a siphash key.
package cuckoo

import (
	"encoding/binary"
	"errors"

	"github.com/dchest/siphash"
	"golang.org/x/crypto/blake2b"
)

var (
	// ErrInvalidParams the graph parameters are out of range
	ErrInvalidParams = errors.New("invalid cuckoo parameters")

	// ErrTooBig a solution edge exceeds the easiness bound
	ErrTooBig = errors.New("solution edge is too big")

	// ErrTooSmall the solution edges are not strictly ascending
	ErrTooSmall = errors.New("solution edges are not sorted")

	// ErrShortCycle the solution does not form a single cycle of the
	// required length
	ErrShortCycle = errors.New("solution is not a full cycle")
)

// Cuckoo cycle verification context
type Cuckoo struct {
	mask     uint64
	size     uint64
	easiness uint64

	proofSize int
	legacy    bool
}

// New returns a verification context for a graph of 2^bits edges, a cycle
// of size edges and the given easiness percentage. The legacy flag selects
// the modulo edge mapping of the first networks.
func New(bits, size, ease uint32, legacy bool) (*Cuckoo, error) {
	if bits < 4 || bits > 32 {
		return nil, ErrInvalidParams
	}

	if size < 4 || size > 254 || size&1 == 1 {
		return nil, ErrInvalidParams
	}

	if ease == 0 || ease > 100 {
		return nil, ErrInvalidParams
	}

	edges := uint64(1) << bits

	return &Cuckoo{
		mask:      edges/2 - 1,
		size:      edges,
		easiness:  uint64(ease) * edges / 100,
		proofSize: int(size),
		legacy:    legacy,
	}, nil
}

// node maps an edge nonce to one of its two endpoints. i selects the side
// of the bipartite graph.
func (c *Cuckoo) node(k0, k1, nonce, i uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 2*nonce+i)

	h := siphash.Hash(k0, k1, buf[:])
	if c.legacy {
		return (h%(c.size/2))<<1 | i
	}

	return (h&c.mask)<<1 | i
}

// edge endpoints of a single solution nonce
type edge struct {
	u uint64
	v uint64

	usedU bool
	usedV bool
}

// VerifyHeader checks sol against the graph keyed by the blake2b hash of
// the serialized header pre-image.
func (c *Cuckoo) VerifyHeader(pre []byte, sol []uint32) error {
	key := blake2b.Sum256(pre)
	return c.Verify(key[:], sol)
}

// Verify checks that sol is a strictly ascending list of in-range edge
// nonces forming a single cycle of the context's proof size. The key must
// be at least 16 bytes; its first two little-endian words seed the edge
// hash.
func (c *Cuckoo) Verify(key []byte, sol []uint32) error {
	if len(key) < 16 {
		return ErrInvalidParams
	}

	if len(sol) != c.proofSize {
		return ErrShortCycle
	}

	k0 := binary.LittleEndian.Uint64(key[:8])
	k1 := binary.LittleEndian.Uint64(key[8:16])

	// Preparing edges
	proof := make([]*edge, len(sol))
	for i, nonce := range sol {
		if uint64(nonce) >= c.easiness {
			return ErrTooBig
		}

		if i != 0 && nonce <= sol[i-1] {
			return ErrTooSmall
		}

		proof[i] = &edge{
			u: c.node(k0, k1, uint64(nonce), 0),
			v: c.node(k0, k1, uint64(nonce), 1),
		}
	}

	// Checking edges: follow matching endpoints from edge to edge,
	// alternating sides, and count the steps of the cycle.
	i := 0
	flag := 0
	cycle := 0

loop:
	for {
		if flag%2 == 0 {
			for j := range proof {
				if j != i && !proof[j].usedU && proof[i].u == proof[j].u {
					proof[i].usedU = true
					proof[j].usedU = true

					i = j
					flag ^= 1
					cycle++

					continue loop
				}
			}
		} else {
			for j := range proof {
				if j != i && !proof[j].usedV && proof[i].v == proof[j].v {
					proof[i].usedV = true
					proof[j].usedV = true

					i = j
					flag ^= 1
					cycle++

					continue loop
				}
			}
		}

		break
	}

	if cycle != c.proofSize {
		return ErrShortCycle
	}

	return nil
}
