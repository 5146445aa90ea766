// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package trie

// terminator is the sentinel nibble marking the end of a complete key
// path.
const terminator = 16

// toNibbles expands raw bytes into high/low nibble halves followed by the
// terminator sentinel.
func toNibbles(data []byte) []byte {
	nib := make([]byte, 2*len(data)+1)

	for i, b := range data {
		nib[2*i] = b >> 4
		nib[2*i+1] = b & 0x0f
	}

	nib[len(nib)-1] = terminator

	return nib
}

// decompress strips the one- or two-nibble header from a compressed short
// node key and returns the nibble path. Bit 0 of the first nibble marks an
// odd path length, bit 1 that the path ends in the terminator.
func decompress(data []byte) []byte {
	if len(data) == 0 {
		return []byte{}
	}

	nib := toNibbles(data)

	pos := 2
	end := len(nib) - 1

	if nib[0]&1 != 0 {
		pos = 1
	}

	if nib[0]&2 != 0 {
		end++
	}

	return nib[pos:end]
}
