// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package consensus

import (
	"bytes"
	"encoding/hex"
)

// Hash is hashes (block hash, trie roots, commitments and so on)
type Hash []byte

// String returns string representation
func (h Hash) String() string {
	return hex.EncodeToString(h)
}

// Equal reports whether two hashes are byte-for-byte identical
func (h Hash) Equal(other Hash) bool {
	return bytes.Equal(h, other)
}
