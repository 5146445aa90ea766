// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package trie verifies inclusion and absence proofs against the root of
// the authenticated name trie. A proof is an ordered list of serialized
// nodes; each node is rehashed with blake2b and checked against the
// commitment carried by its parent before it is trusted.
package trie

import (
	"errors"

	"github.com/CypherPun/hnsd/bytestring"
)

// Node variant tags as they appear on the wire.
const (
	tagNull  = 0
	tagHash  = 1
	tagShort = 2
	tagFull  = 3
	tagValue = 4
)

var (
	// ErrEncoding a bad varint or truncated buffer inside a node body
	ErrEncoding = errors.New("bad node encoding")

	// ErrMalformedNode an unknown node tag or truncated node body
	ErrMalformedNode = errors.New("malformed trie node")
)

// node is one of nil (an empty slot), hashNode, *shortNode, *fullNode or
// valueNode.
type node interface{}

type (
	// fullNode branches over the sixteen nibble values plus the
	// terminator slot.
	fullNode struct {
		Children [17]node
	}

	// shortNode carries a nibble path shared by every key below it and a
	// single inline child.
	shortNode struct {
		Key []byte
		Val node
	}

	// hashNode is the blake2b commitment of a subtree that has not been
	// expanded; the next proof blob must hash to it.
	hashNode []byte

	// valueNode is an opaque leaf payload.
	valueNode []byte
)

// parseNode reads a single node from the front of data and returns it
// together with the unconsumed remainder. Embedded children of short and
// full nodes are parsed recursively; surplus trailing bytes are never an
// error here, the recursive embedding depends on them being handed back.
func parseNode(data bytestring.String) (node, bytestring.String, error) {
	var tag byte
	if !data.ReadByte(&tag) {
		return nil, nil, ErrMalformedNode
	}

	switch tag {
	case tagNull:
		return nil, data, nil

	case tagHash:
		var hash []byte
		if !data.ReadBytes(&hash, 32) {
			return nil, nil, ErrMalformedNode
		}

		n := make(hashNode, 32)
		copy(n, hash)

		return n, data, nil

	case tagShort:
		var compressed []byte
		if !data.ReadVarBytesLight(&compressed) {
			return nil, nil, ErrEncoding
		}

		child, rest, err := parseNode(data)
		if err != nil {
			return nil, nil, err
		}

		return &shortNode{
			Key: decompress(compressed),
			Val: child,
		}, rest, nil

	case tagFull:
		n := new(fullNode)
		for i := range n.Children {
			child, rest, err := parseNode(data)
			if err != nil {
				return nil, nil, err
			}

			n.Children[i] = child
			data = rest
		}

		return n, data, nil

	case tagValue:
		var payload []byte
		if !data.ReadVarBytes(&payload) {
			return nil, nil, ErrEncoding
		}

		return valueNode(payload), data, nil

	default:
		return nil, nil, ErrMalformedNode
	}
}
