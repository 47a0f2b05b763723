/*
 * Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License").
 * You may not use this file except in compliance with the License.
 * A copy of the License is located at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * or in the "license" file accompanying this file. This file is distributed
 * on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
 * express or implied. See the License for the specific language governing
 * permissions and limitations under the License.
 */

package symtab

// varUintLen pre-calculates the length, in bytes, of the given value encoded
// as a variable-length unsigned int (seven value bits per byte, high bit
// marking the last byte).
func varUintLen(v uint64) uint64 {
	length := uint64(1)
	v >>= 7
	for v > 0 {
		length++
		v >>= 7
	}
	return length
}

// tagLen pre-calculates the length, in bytes, of a type-descriptor-plus-
// length-prefix tag for a value of the given byte length: one byte if the
// length fits in the descriptor's low nibble, else one byte plus a VarUInt.
func tagLen(length uint64) uint64 {
	if length < 0x0E {
		return 1
	}
	return 1 + varUintLen(length)
}

// A SymbolEntry is an immutable (sid, text, owning table) triple. Absent
// text signals an imported symbol whose shared table was not available in
// the catalog. Entries are value-equal on (sid, text); Source is identity
// compared and is not part of equality.
type SymbolEntry struct {
	sid    int64
	text   *string
	source *Table

	// Precomputed on-wire length hints, in Format units, exposed for use by
	// downstream encoders.
	textLen   uint64
	sidLen    uint64
	headerLen uint64
}

// newSymbolEntry constructs a SymbolEntry and precomputes its length hints.
func newSymbolEntry(sid int64, text *string, source *Table) *SymbolEntry {
	e := &SymbolEntry{sid: sid, text: text, source: source}
	e.sidLen = varUintLen(uint64(sid))
	if text != nil {
		e.textLen = uint64(len(*text))
	}
	e.headerLen = tagLen(e.textLen)
	return e
}

// SID returns the symbol id this entry occupies.
func (e *SymbolEntry) SID() int64 {
	return e.sid
}

// Text returns the entry's text and whether it is known.
func (e *SymbolEntry) Text() (string, bool) {
	if e.text == nil {
		return "", false
	}
	return *e.text, true
}

// Source returns the table that originally declared this symbol.
func (e *SymbolEntry) Source() *Table {
	return e.source
}

// TextLen returns the on-wire byte length of the entry's text, in Format
// units. It is zero for unresolved entries.
func (e *SymbolEntry) TextLen() uint64 {
	return e.textLen
}

// SIDLen returns the VarUInt-encoded length of the entry's sid, in bytes.
func (e *SymbolEntry) SIDLen() uint64 {
	return e.sidLen
}

// HeaderLen returns the combined type-descriptor-plus-length-prefix width
// needed to encode the entry's text as a string value, in bytes.
func (e *SymbolEntry) HeaderLen() uint64 {
	return e.headerLen
}

// Equal compares two entries by (sid, text); Source is not considered.
func (e *SymbolEntry) Equal(o *SymbolEntry) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.sid != o.sid {
		return false
	}
	if (e.text == nil) != (o.text == nil) {
		return false
	}
	return e.text == nil || *e.text == *o.text
}
