// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package consensus

import (
	"errors"

	"github.com/holiman/uint256"
)

var (
	// ErrNegTarget the compact bits decode to a zero or negative target
	ErrNegTarget = errors.New("negative or zero target")
)

// CompactToTarget expands a 32-bit compact difficulty encoding into a
// 256-bit big-endian target. The encoding is (exponent:8, sign:1,
// mantissa:23); zero bits and a set sign bit are rejected, as is a
// mantissa that does not fit below the exponent's byte position.
func CompactToTarget(bits uint32, target []byte) error {
	for i := range target {
		target[i] = 0
	}

	if bits == 0 {
		return ErrNegTarget
	}

	// No negatives.
	if (bits>>23)&1 == 1 {
		return ErrNegTarget
	}

	exponent := bits >> 24
	mantissa := bits & 0x7fffff

	var shift uint32
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
	} else {
		shift = (exponent - 3) & 31
	}

	i := 31 - int(shift)
	for mantissa != 0 && i >= 0 {
		target[i] = byte(mantissa)
		mantissa >>= 8
		i--
	}

	// Overflow
	if mantissa != 0 {
		return ErrNegTarget
	}

	return nil
}

// TargetToCompact reduces a 256-bit big-endian target to its compact
// encoding: the byte position of the first non-zero byte becomes the
// exponent and the top three bytes the mantissa. A mantissa that would
// collide with the sign bit is rejected. The zero target encodes as zero
// bits.
func TargetToCompact(target []byte) (uint32, error) {
	i := 0
	for ; i < 32; i++ {
		if target[i] != 0 {
			break
		}
	}

	exponent := uint32(32 - i)
	if exponent == 0 {
		return 0, nil
	}

	var mantissa uint32
	if exponent <= 3 {
		switch exponent {
		case 3:
			mantissa |= uint32(target[29]) << 16
			fallthrough
		case 2:
			mantissa |= uint32(target[30]) << 8
			fallthrough
		case 1:
			mantissa |= uint32(target[31])
		}
		mantissa <<= 8 * (3 - exponent)
	} else {
		for j := i; j < i+3; j++ {
			mantissa <<= 8
			mantissa |= uint32(target[j])
		}
	}

	// No negatives.
	if mantissa&0x800000 != 0 {
		return 0, ErrNegTarget
	}

	return exponent<<24 | mantissa, nil
}

// proofWeight computes floor(2^256 / (target + 1)), the amount of chain
// work a header meeting the target represents. The division is carried out
// as (^target)/(target+1) + 1 to stay within 256 bits.
func proofWeight(bits uint32, weight *uint256.Int) error {
	var raw [32]byte
	if err := CompactToTarget(bits, raw[:]); err != nil {
		return err
	}

	target := new(uint256.Int).SetBytes32(raw[:])

	div := new(uint256.Int).AddUint64(target, 1)
	if div.IsZero() {
		// target + 1 wrapped; every hash meets it
		weight.SetUint64(1)
		return nil
	}

	weight.Not(target)
	weight.Div(weight, div)
	weight.AddUint64(weight, 1)

	return nil
}

// CalcWork sets the header's cumulative chain work: its own proof weight
// for the genesis header, or the previous header's work plus its own
// weight otherwise. Work is stored as a 32-byte big-endian integer.
func (h *Header) CalcWork(prev *Header) error {
	work := new(uint256.Int)
	if err := proofWeight(h.Bits, work); err != nil {
		return err
	}

	if prev != nil {
		prevWork := new(uint256.Int).SetBytes32(prev.Work[:])
		work.Add(work, prevWork)
	}

	h.Work = work.Bytes32()
	return nil
}
