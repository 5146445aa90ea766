// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package trie

import (
	"bytes"
	"errors"

	"github.com/CypherPun/hnsd/bytestring"
	"golang.org/x/crypto/blake2b"
)

// nibbleKeyLen is the expanded length of a 32-byte key: 64 nibble halves
// plus the terminator.
const nibbleKeyLen = 65

var (
	// ErrBadArgs a nil root or key, or a key of the wrong size
	ErrBadArgs = errors.New("bad proof arguments")

	// ErrInvalidNode a node variant appeared where the walk forbids it
	ErrInvalidNode = errors.New("invalid node in proof")

	// ErrUnexpectedNode a value node was encountered before the key path
	// was exhausted
	ErrUnexpectedNode = errors.New("unexpected value node in proof")

	// ErrHashMismatch a proof blob did not hash to the commitment carried
	// by its parent
	ErrHashMismatch = errors.New("node hash mismatch")

	// ErrEarlyEnd the walk terminated but more proof blobs remained
	ErrEarlyEnd = errors.New("proof continues past its end")

	// ErrNoResult the proof blobs ran out before the walk terminated
	ErrNoResult = errors.New("proof has no result")
)

// nextChild descends from n along the key nibbles starting at offset p
// until it reaches an unexplored edge. It returns the node the walk
// stopped on and the new offset; an offset of -1 reports a terminated walk
// (an authenticated absence, or the returned value node when the full path
// was consumed). Siblings of the chosen path are simply dropped.
func nextChild(n node, k []byte, p int) (node, int, error) {
	for nibbleKeyLen-p > 0 {
		switch x := n.(type) {
		case nil:
			return nil, -1, nil

		case *shortNode:
			if nibbleKeyLen-p < len(x.Key) || !bytes.Equal(k[p:p+len(x.Key)], x.Key) {
				return nil, -1, nil
			}

			p += len(x.Key)
			n = x.Val

		case *fullNode:
			n = x.Children[k[p]]
			p++

		case hashNode:
			return x, p, nil

		case valueNode:
			return nil, p, ErrUnexpectedNode

		default:
			return nil, p, ErrInvalidNode
		}
	}

	switch x := n.(type) {
	case valueNode:
		return x, -1, nil
	case hashNode:
		return x, p, nil
	}

	return nil, -1, nil
}

// Verify walks the ordered proof blobs along key, rehashing every blob
// with blake2b and checking it against the commitment inherited from its
// parent, starting with the trusted root. On success it returns the leaf
// payload for an inclusion proof, or a nil payload for an authenticated
// absence.
func Verify(root, key []byte, nodes [][]byte) ([]byte, error) {
	if root == nil || key == nil || len(key) != 32 {
		return nil, ErrBadArgs
	}

	k := toNibbles(key)
	expect := root
	p := 0

	for i, raw := range nodes {
		hash := blake2b.Sum256(raw)
		if !bytes.Equal(hash[:], expect) {
			return nil, ErrHashMismatch
		}

		n, _, err := parseNode(bytestring.String(raw))
		if err != nil {
			return nil, err
		}

		n, p, err = nextChild(n, k, p)
		if err != nil {
			return nil, err
		}

		if n == nil {
			if i != len(nodes)-1 {
				return nil, ErrEarlyEnd
			}

			// Authenticated absence.
			return nil, nil
		}

		switch x := n.(type) {
		case hashNode:
			expect = x

		case valueNode:
			if i != len(nodes)-1 {
				return nil, ErrEarlyEnd
			}

			return x, nil

		default:
			return nil, ErrInvalidNode
		}
	}

	return nil, ErrNoResult
}

// VerifyName verifies a proof for a name: the trie key is the blake2b hash
// of the raw name bytes, with no normalization.
func VerifyName(root []byte, name string, nodes [][]byte) ([]byte, error) {
	key := blake2b.Sum256([]byte(name))
	return Verify(root, key[:], nodes)
}
