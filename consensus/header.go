// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package consensus

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/CypherPun/hnsd/bytestring"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"
)

var (
	// ErrEncoding a truncated buffer or an out-of-range field
	ErrEncoding = errors.New("bad encoding")
)

// Header of the chain. The serialized layout is fixed and little-endian;
// the trailing solution is length-prefixed by a single byte count of
// 32-bit words.
type Header struct {
	// Version of the block
	Version uint32
	// Hash of the block previous to this in the chain
	PrevBlock Hash
	// Root of the transaction merkle tree
	MerkleRoot Hash
	// Root of the witness merkle tree
	WitnessRoot Hash
	// Root of the authenticated name trie
	TrieRoot Hash
	// Timestamp at which the block was mined
	Time uint64
	// Compact difficulty target
	Bits uint32
	// Miner nonce
	Nonce [NonceSize]byte
	// Cuckoo-cycle solution edges, at most MaxSolutionSize words
	Solution []uint32

	// Derived state, never serialized.

	// cache reports whether hash holds the header hash
	cache bool
	// hash of the full serialized header
	hash [BlockHashSize]byte

	// Height of this block since the genesis block (height 0)
	Height uint64
	// Work total accumulated chain work up to and including this header,
	// as a 256-bit big-endian integer
	Work [32]byte
	// Next forward link, maintained by chain bookkeeping; the header
	// itself does not interpret it
	Next *Header
}

// NewHeader returns a zeroed header with empty roots of the right size.
func NewHeader() *Header {
	return &Header{
		PrevBlock:   make(Hash, BlockHashSize),
		MerkleRoot:  make(Hash, BlockHashSize),
		WitnessRoot: make(Hash, BlockHashSize),
		TrieRoot:    make(Hash, BlockHashSize),
	}
}

// Clone returns a memberwise copy of the header. The forward link is
// cleared; the hash cache and derived state are carried over.
func (h *Header) Clone() *Header {
	copied := *h

	copied.PrevBlock = append(Hash(nil), h.PrevBlock...)
	copied.MerkleRoot = append(Hash(nil), h.MerkleRoot...)
	copied.WitnessRoot = append(Hash(nil), h.WitnessRoot...)
	copied.TrieRoot = append(Hash(nil), h.TrieRoot...)
	copied.Solution = append([]uint32(nil), h.Solution...)
	copied.Next = nil

	return &copied
}

// Read deserializes a header from the cursor, advancing it past the
// consumed bytes. Trailing data is left untouched.
func (h *Header) Read(s *bytestring.String) error {
	if !s.ReadUint32(&h.Version) {
		return ErrEncoding
	}

	var prev, merkle, witness, trie []byte
	if !s.ReadBytes(&prev, BlockHashSize) ||
		!s.ReadBytes(&merkle, BlockHashSize) ||
		!s.ReadBytes(&witness, BlockHashSize) ||
		!s.ReadBytes(&trie, BlockHashSize) {
		return ErrEncoding
	}

	h.PrevBlock = append(Hash(nil), prev...)
	h.MerkleRoot = append(Hash(nil), merkle...)
	h.WitnessRoot = append(Hash(nil), witness...)
	h.TrieRoot = append(Hash(nil), trie...)

	if !s.ReadUint64(&h.Time) {
		return ErrEncoding
	}

	if !s.ReadUint32(&h.Bits) {
		return ErrEncoding
	}

	var nonce []byte
	if !s.ReadBytes(&nonce, NonceSize) {
		return ErrEncoding
	}
	copy(h.Nonce[:], nonce)

	var solSize byte
	if !s.ReadByte(&solSize) {
		return ErrEncoding
	}

	if solSize > MaxSolutionSize {
		return fmt.Errorf("solution size %d exceeds %d words: %w",
			solSize, MaxSolutionSize, ErrEncoding)
	}

	h.Solution = make([]uint32, solSize)
	for i := range h.Solution {
		if !s.ReadUint32(&h.Solution[i]) {
			return ErrEncoding
		}
	}

	h.cache = false
	return nil
}

// Decode deserializes a header from raw bytes. Surplus trailing bytes are
// ignored.
func (h *Header) Decode(data []byte) error {
	s := bytestring.String(data)
	return h.Read(&s)
}

// preBytes writes every field up to and excluding the solution. This is
// the pre-image committed to by the Cuckoo verifier.
func (h *Header) preBytes(buff *bytes.Buffer) {
	if err := binary.Write(buff, binary.LittleEndian, h.Version); err != nil {
		logrus.Fatal(err)
	}

	if len(h.PrevBlock) != BlockHashSize ||
		len(h.MerkleRoot) != BlockHashSize ||
		len(h.WitnessRoot) != BlockHashSize ||
		len(h.TrieRoot) != BlockHashSize {
		logrus.Fatal(errors.New("invalid header root hash len"))
	}

	if _, err := buff.Write(h.PrevBlock); err != nil {
		logrus.Fatal(err)
	}

	if _, err := buff.Write(h.MerkleRoot); err != nil {
		logrus.Fatal(err)
	}

	if _, err := buff.Write(h.WitnessRoot); err != nil {
		logrus.Fatal(err)
	}

	if _, err := buff.Write(h.TrieRoot); err != nil {
		logrus.Fatal(err)
	}

	if err := binary.Write(buff, binary.LittleEndian, h.Time); err != nil {
		logrus.Fatal(err)
	}

	if err := binary.Write(buff, binary.LittleEndian, h.Bits); err != nil {
		logrus.Fatal(err)
	}

	if _, err := buff.Write(h.Nonce[:]); err != nil {
		logrus.Fatal(err)
	}
}

// PreBytes returns the serialized pre-PoW image of the header.
func (h *Header) PreBytes() []byte {
	buff := new(bytes.Buffer)
	buff.Grow(HeaderPreSize)
	h.preBytes(buff)

	return buff.Bytes()
}

// Bytes returns the full serialized header.
func (h *Header) Bytes() []byte {
	if len(h.Solution) > MaxSolutionSize {
		logrus.Fatal(errors.New("invalid solution len"))
	}

	buff := new(bytes.Buffer)
	buff.Grow(h.Size())
	h.preBytes(buff)

	if err := binary.Write(buff, binary.LittleEndian, uint8(len(h.Solution))); err != nil {
		logrus.Fatal(err)
	}

	if _, err := buff.Write(h.SolutionBytes()); err != nil {
		logrus.Fatal(err)
	}

	return buff.Bytes()
}

// SolutionBytes returns the solution words as a contiguous little-endian
// byte array, the form hashed for the target comparison.
func (h *Header) SolutionBytes() []byte {
	raw := make([]byte, 4*len(h.Solution))
	for i, word := range h.Solution {
		binary.LittleEndian.PutUint32(raw[4*i:], word)
	}

	return raw
}

// Size returns the full serialized size in bytes.
func (h *Header) Size() int {
	return HeaderBaseSize + 4*len(h.Solution)
}

// PreSize returns the serialized size of the pre-PoW image in bytes.
func (h *Header) PreSize() int {
	return HeaderPreSize
}

// Hash returns the blake2b hash of the full serialized header. The result
// is cached on first use; the cache assumes a single writer and a header
// that is not mutated after hashing.
func (h *Header) Hash() Hash {
	if !h.cache {
		h.hash = blake2b.Sum256(h.Bytes())
		h.cache = true
	}

	hash := make(Hash, BlockHashSize)
	copy(hash, h.hash[:])

	return hash
}

// Equal reports whether two headers hash identically.
func (h *Header) Equal(other *Header) bool {
	return h.Hash().Equal(other.Hash())
}

// String implements String() interface
func (h Header) String() string {
	return fmt.Sprintf("%#v", h)
}
