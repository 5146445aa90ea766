// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package consensus

const (
	// BlockHashSize size of block hash
	BlockHashSize = 32

	// NonceSize size of the miner nonce field
	NonceSize = 16

	// MaxSolutionSize Cuckoo-cycle proof size (cycle length)
	MaxSolutionSize = 42

	// HeaderPreSize serialized size of the header pre-image, every field
	// up to and excluding the solution
	HeaderPreSize = 4 + 4*BlockHashSize + 8 + 4 + NonceSize

	// HeaderBaseSize serialized size of a header with an empty solution
	HeaderBaseSize = HeaderPreSize + 1

	// CuckooBits Cuckoo Cycle graph size shift used for mining and validating
	CuckooBits uint32 = 30

	// CuckooSize Cuckoo Cycle proof size (cycle length)
	CuckooSize uint32 = 42

	// CuckooEase Cuckoo Cycle easiness, high enough to have good likeliness
	// to find a solution
	CuckooEase uint32 = 50

	// CuckooLegacy selects the historical edge mapping of the first networks
	CuckooLegacy bool = false
)
