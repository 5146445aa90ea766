// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package bytestring

import (
	"bytes"
	"testing"
)

func TestReadIntegers(t *testing.T) {
	s := String{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e}

	var u16 uint16
	if !s.ReadUint16(&u16) || u16 != 0x0201 {
		t.Errorf("ReadUint16 was incorrect, got: %#x, want: %#x", u16, 0x0201)
	}

	var u32 uint32
	if !s.ReadUint32(&u32) || u32 != 0x06050403 {
		t.Errorf("ReadUint32 was incorrect, got: %#x, want: %#x", u32, 0x06050403)
	}

	var u64 uint64
	if !s.ReadUint64(&u64) || u64 != 0x0e0d0c0b0a090807 {
		t.Errorf("ReadUint64 was incorrect, got: %#x", u64)
	}

	if !s.Empty() {
		t.Errorf("expected empty cursor, %d bytes left", len(s))
	}

	if s.ReadUint16(&u16) {
		t.Error("ReadUint16 succeeded on an empty cursor")
	}
}

func TestShortRead(t *testing.T) {
	s := String{0x01, 0x02, 0x03}

	var u32 uint32
	if s.ReadUint32(&u32) {
		t.Error("ReadUint32 succeeded on a three byte cursor")
	}

	var b []byte
	if s.ReadBytes(&b, 4) {
		t.Error("ReadBytes succeeded past the end of the cursor")
	}
}

func TestReadVarint(t *testing.T) {
	tests := []struct {
		data  []byte
		value uint64
		ok    bool
	}{
		{[]byte{0x00}, 0, true},
		{[]byte{0x10}, 0x10, true},
		{[]byte{0xfc}, 0xfc, true},
		{[]byte{0xfd, 0xfd, 0x00}, 0xfd, true},
		{[]byte{0xfd, 0x00, 0x01}, 0x100, true},
		{[]byte{0xfd, 0xff, 0xff}, 0xffff, true},
		{[]byte{0xfe, 0x00, 0x00, 0x01, 0x00}, 0x10000, true},
		{[]byte{0xfe, 0xff, 0xff, 0xff, 0xff}, 0xffffffff, true},

		// non-canonical forms
		{[]byte{0xfd, 0xfc, 0x00}, 0, false},
		{[]byte{0xfd, 0x00, 0x00}, 0, false},
		{[]byte{0xfe, 0xff, 0xff, 0x00, 0x00}, 0, false},

		// reserved prefix
		{[]byte{0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 0, false},

		// truncated
		{[]byte{}, 0, false},
		{[]byte{0xfd, 0x01}, 0, false},
		{[]byte{0xfe, 0x01, 0x02, 0x03}, 0, false},
	}

	for _, test := range tests {
		s := String(test.data)

		var v uint64
		ok := s.ReadVarint(&v)

		if ok != test.ok {
			t.Errorf("ReadVarint(% x) ok = %v, want %v", test.data, ok, test.ok)
			continue
		}

		if ok && v != test.value {
			t.Errorf("ReadVarint(% x) = %d, want %d", test.data, v, test.value)
		}
	}
}

func TestAppendVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff}

	for _, want := range values {
		s := String(AppendVarint(nil, want))

		var got uint64
		if !s.ReadVarint(&got) {
			t.Errorf("ReadVarint rejected encoding of %d", want)
			continue
		}

		if got != want {
			t.Errorf("varint round trip was incorrect, got: %d, want: %d", got, want)
		}

		if !s.Empty() {
			t.Errorf("varint encoding of %d left %d trailing bytes", want, len(s))
		}
	}
}

func TestReadVarBytes(t *testing.T) {
	raw := AppendVarBytes(nil, []byte{0xde, 0xad, 0xbe, 0xef})
	raw = append(raw, 0x77)

	s := String(raw)

	var out []byte
	if !s.ReadVarBytes(&out) {
		t.Fatal("ReadVarBytes failed")
	}

	if !bytes.Equal(out, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Errorf("ReadVarBytes was incorrect, got: % x", out)
	}

	if len(s) != 1 || s[0] != 0x77 {
		t.Errorf("ReadVarBytes consumed the wrong span, rest: % x", []byte(s))
	}

	// the owning read must survive mutation of the input
	raw[1] = 0x00
	if out[0] != 0xde {
		t.Error("ReadVarBytes aliased the input buffer")
	}
}

func TestReadVarBytesLight(t *testing.T) {
	raw := AppendVarBytes(nil, []byte{0x01, 0x02})

	s := String(raw)

	var out []byte
	if !s.ReadVarBytesLight(&out) {
		t.Fatal("ReadVarBytesLight failed")
	}

	// the light read aliases the input
	raw[1] = 0xaa
	if out[0] != 0xaa {
		t.Error("ReadVarBytesLight copied the input buffer")
	}
}

func TestReadVarBytesTruncated(t *testing.T) {
	s := String{0x05, 0x01, 0x02}

	var out []byte
	if s.ReadVarBytes(&out) {
		t.Error("ReadVarBytes succeeded on a truncated payload")
	}
}
