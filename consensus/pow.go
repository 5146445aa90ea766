// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package consensus

import (
	"errors"

	"github.com/CypherPun/hnsd/cuckoo"
	"golang.org/x/crypto/blake2b"
)

var (
	// ErrHighHash the solution hash exceeds the difficulty target
	ErrHighHash = errors.New("solution hash is above the target")
)

// rcmp compares a, read from its last byte down, against b, read from its
// first byte up. The solution hash is interpreted as a little-endian
// integer while the target is big-endian, so both are compared most
// significant byte first.
func rcmp(a, b []byte) int {
	i := len(a) - 1
	j := 0

	for ; i >= 0; i, j = i-1, j+1 {
		if a[i] < b[j] {
			return -1
		}

		if a[i] > b[j] {
			return 1
		}
	}

	return 0
}

// VerifyPOW checks the header's proof of work: the blake2b hash of the
// serialized solution must not exceed the compact target, and the solution
// must be a valid Cuckoo cycle over the header pre-image. Cuckoo failures
// are returned unchanged.
func (h *Header) VerifyPOW() error {
	var target [32]byte
	if err := CompactToTarget(h.Bits, target[:]); err != nil {
		return err
	}

	hash := blake2b.Sum256(h.SolutionBytes())
	if rcmp(hash[:], target[:]) > 0 {
		return ErrHighHash
	}

	ctx, err := cuckoo.New(CuckooBits, CuckooSize, CuckooEase, CuckooLegacy)
	if err != nil {
		return err
	}

	return ctx.VerifyHeader(h.PreBytes(), h.Solution)
}
