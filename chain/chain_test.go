// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package chain

import (
	"bytes"
	"errors"
	"testing"

	"github.com/CypherPun/hnsd/consensus"
)

func testGenesis() *consensus.Header {
	genesis := consensus.NewHeader()
	genesis.Version = 1
	genesis.Bits = 0x207fffff
	genesis.Time = 1000

	return genesis
}

func childOf(prev *consensus.Header, time uint64) *consensus.Header {
	hdr := consensus.NewHeader()
	hdr.Version = 1
	hdr.PrevBlock = prev.Hash()
	hdr.Bits = prev.Bits
	hdr.Time = time

	return hdr
}

func TestNewChain(t *testing.T) {
	genesis := testGenesis()

	c, err := New(genesis)
	if err != nil {
		t.Fatal(err)
	}

	if c.Height() != 0 {
		t.Errorf("height was incorrect, got: %d, want: 0", c.Height())
	}

	if !c.Tip().Equal(genesis) {
		t.Error("tip is not the genesis header")
	}

	if got := c.GetHeader(genesis.Hash()); got != genesis {
		t.Error("genesis header is not indexed by hash")
	}

	// proofWeight(0x207fffff) == 2
	work := c.TotalWork()
	if work[31] != 2 || !bytes.Equal(work[:31], make([]byte, 31)) {
		t.Errorf("genesis work was incorrect, got: % x", work)
	}
}

func TestProcessHeaderUnknownPrevious(t *testing.T) {
	c, err := New(testGenesis())
	if err != nil {
		t.Fatal(err)
	}

	orphan := consensus.NewHeader()
	orphan.PrevBlock = bytes.Repeat([]byte{0x99}, consensus.BlockHashSize)
	orphan.Bits = 0x207fffff
	orphan.Time = 1001

	if err := c.ProcessHeader(orphan); !errors.Is(err, ErrUnknownPrevious) {
		t.Errorf("orphan header: got %v, want ErrUnknownPrevious", err)
	}
}

func TestProcessHeaderInvalidTime(t *testing.T) {
	genesis := testGenesis()

	c, err := New(genesis)
	if err != nil {
		t.Fatal(err)
	}

	stale := childOf(genesis, genesis.Time)
	if err := c.ProcessHeader(stale); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("stale time: got %v, want ErrInvalidTime", err)
	}
}

func TestProcessHeaderBadPOW(t *testing.T) {
	genesis := testGenesis()

	c, err := New(genesis)
	if err != nil {
		t.Fatal(err)
	}

	// an empty solution can never satisfy the proof of work
	child := childOf(genesis, 1001)
	if err := c.ProcessHeader(child); err == nil {
		t.Error("header with no solution was accepted")
	}

	if c.Height() != 0 {
		t.Errorf("rejected header moved the chain, height: %d", c.Height())
	}
}

func TestProcessHeaderExtendsChain(t *testing.T) {
	genesis := testGenesis()

	c, err := New(genesis)
	if err != nil {
		t.Fatal(err)
	}

	c.verifyPOW = func(*consensus.Header) error { return nil }

	child := childOf(genesis, 1001)
	if err := c.ProcessHeader(child); err != nil {
		t.Fatal(err)
	}

	if c.Height() != 1 {
		t.Errorf("height was incorrect, got: %d, want: 1", c.Height())
	}

	if !c.Tip().Equal(child) {
		t.Error("tip did not advance to the new header")
	}

	if genesis.Next != child {
		t.Error("forward link was not set")
	}

	// processing the same header again is a no-op
	if err := c.ProcessHeader(child); err != nil {
		t.Errorf("reprocessing the tip failed: %v", err)
	}

	work := c.TotalWork()
	if work[31] != 4 {
		t.Errorf("cumulative work was incorrect, got: % x", work)
	}
}

func TestProcessHeaderHeavierFork(t *testing.T) {
	genesis := testGenesis()

	c, err := New(genesis)
	if err != nil {
		t.Fatal(err)
	}

	c.verifyPOW = func(*consensus.Header) error { return nil }

	light := childOf(genesis, 1001)
	if err := c.ProcessHeader(light); err != nil {
		t.Fatal(err)
	}

	// an equally heavy sibling does not displace the tip
	sibling := childOf(genesis, 1002)
	if err := c.ProcessHeader(sibling); err != nil {
		t.Fatal(err)
	}

	if !c.Tip().Equal(light) {
		t.Error("equal-work sibling displaced the tip")
	}

	// a harder target carries more work and takes the tip
	heavy := childOf(genesis, 1003)
	heavy.Bits = 0x203fffff

	if err := c.ProcessHeader(heavy); err != nil {
		t.Fatal(err)
	}

	if !c.Tip().Equal(heavy) {
		t.Error("tip did not move to the heavier header")
	}

	work := c.TotalWork()
	if work[31] != 6 {
		t.Errorf("cumulative work was incorrect, got: % x", work)
	}
}
