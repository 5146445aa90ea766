// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package chain keeps the light client's view of the header chain: an
// in-memory index of verified headers and the best tip by cumulative work.
package chain

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/CypherPun/hnsd/consensus"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUnknownPrevious the header does not connect to a known header
	ErrUnknownPrevious = errors.New("unknown previous header")

	// ErrInvalidTime the header is not later than its predecessor
	ErrInvalidTime = errors.New("invalid header time")
)

type Chain struct {
	sync.RWMutex

	// headers indexed by block hash
	headers map[string]*consensus.Header

	// genesis header
	genesis *consensus.Header
	// best tip by cumulative work
	tip *consensus.Header

	// verifyPOW checks a candidate header's proof of work
	verifyPOW func(*consensus.Header) error
}

// New returns a chain rooted at the trusted genesis header. The genesis
// work is computed here; its proof of work is not re-verified.
func New(genesis *consensus.Header) (*Chain, error) {
	genesis.Height = 0
	if err := genesis.CalcWork(nil); err != nil {
		return nil, err
	}

	chain := Chain{
		headers:   make(map[string]*consensus.Header),
		genesis:   genesis,
		tip:       genesis,
		verifyPOW: (*consensus.Header).VerifyPOW,
	}

	chain.headers[genesis.Hash().String()] = genesis

	return &chain, nil
}

// Genesis returns the genesis header.
func (c *Chain) Genesis() *consensus.Header {
	return c.genesis
}

// Tip returns the best known header.
func (c *Chain) Tip() *consensus.Header {
	c.RLock()
	defer c.RUnlock()

	return c.tip
}

// Height returns the height of the best known header.
func (c *Chain) Height() uint64 {
	c.RLock()
	defer c.RUnlock()

	return c.tip.Height
}

// TotalWork returns the cumulative work of the best known header as a
// 32-byte big-endian integer.
func (c *Chain) TotalWork() consensus.Hash {
	c.RLock()
	defer c.RUnlock()

	work := make(consensus.Hash, len(c.tip.Work))
	copy(work, c.tip.Work[:])

	return work
}

// GetHeader returns a header by hash, or nil if it is not known.
func (c *Chain) GetHeader(hash consensus.Hash) *consensus.Header {
	if hash == nil {
		return nil
	}

	c.RLock()
	defer c.RUnlock()

	return c.headers[hash.String()]
}

// ProcessHeader verifies a candidate header and links it into the chain.
// The header must connect to a known header; its proof of work must hold;
// its time must advance past its predecessor. The tip moves when the new
// cumulative work beats the current one. Reorganizations deeper than the
// tip swap itself are not handled here.
func (c *Chain) ProcessHeader(hdr *consensus.Header) error {
	c.Lock()
	defer c.Unlock()

	hash := hdr.Hash()

	// quick check is it already known
	if _, ok := c.headers[hash.String()]; ok {
		return nil
	}

	prev, ok := c.headers[hdr.PrevBlock.String()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPrevious, hdr.PrevBlock)
	}

	if hdr.Time <= prev.Time {
		return ErrInvalidTime
	}

	if err := c.verifyPOW(hdr); err != nil {
		return err
	}

	hdr.Height = prev.Height + 1
	if err := hdr.CalcWork(prev); err != nil {
		return err
	}

	c.headers[hash.String()] = hdr
	prev.Next = hdr

	logrus.Infof("accepted header %s (height: %d)", hash, hdr.Height)

	if bytes.Compare(hdr.Work[:], c.tip.Work[:]) > 0 {
		logrus.Debugf("chain tip moves to %s", hash)
		c.tip = hdr
	}

	return nil
}
