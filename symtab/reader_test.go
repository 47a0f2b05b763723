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

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// node is a hand-built structural tree used by fakeReader, standing in for
// the external streaming reader this package only consumes through the
// narrow Reader interface (spec §6).
type node struct {
	tag      TypeTag
	fieldID  int
	str      string
	i        int64
	isNull   bool
	children []*node
}

func strNode(fieldID int, s string) *node  { return &node{tag: TypeString, fieldID: fieldID, str: s} }
func intNode(fieldID int, i int64) *node   { return &node{tag: TypeInt, fieldID: fieldID, i: i} }
func listNode(fieldID int, kids ...*node) *node {
	return &node{tag: TypeList, fieldID: fieldID, children: kids}
}
func structNode(fieldID int, kids ...*node) *node {
	return &node{tag: TypeStruct, fieldID: fieldID, children: kids}
}
func nullStrNode(fieldID int) *node {
	return &node{tag: TypeString, fieldID: fieldID, isNull: true}
}

// fakeReader is a minimal stack-based walker over a []*node tree,
// implementing just enough of the Reader interface to drive
// ParseLocalTable/ParseSharedTable.
type fakeReader struct {
	frames [][]*node
	idx    []int
	cur    *node
}

func newFakeReader(fields []*node) *fakeReader {
	return &fakeReader{frames: [][]*node{fields}, idx: []int{-1}}
}

func (r *fakeReader) HasNext() bool {
	top := len(r.frames) - 1
	return r.idx[top]+1 < len(r.frames[top])
}

func (r *fakeReader) Next() TypeTag {
	top := len(r.frames) - 1
	r.idx[top]++
	r.cur = r.frames[top][r.idx[top]]
	return r.cur.tag
}

func (r *fakeReader) IsNullValue() bool { return r.cur.isNull }
func (r *fakeReader) FieldID() int      { return r.cur.fieldID }
func (r *fakeReader) GetType() TypeTag  { return r.cur.tag }
func (r *fakeReader) IsInStruct() bool  { return true }

func (r *fakeReader) StepIn() error {
	r.frames = append(r.frames, r.cur.children)
	r.idx = append(r.idx, -1)
	return nil
}

func (r *fakeReader) StepOut() error {
	r.frames = r.frames[:len(r.frames)-1]
	r.idx = r.idx[:len(r.idx)-1]
	return nil
}

func (r *fakeReader) IntValue() (int64, error)    { return r.cur.i, nil }
func (r *fakeReader) StringValue() (string, error) { return r.cur.str, nil }

func TestParseSharedTableListForm(t *testing.T) {
	fields := []*node{
		strNode(fieldIDName, "greek"),
		intNode(fieldIDVersion, 2),
		listNode(fieldIDSymbols, strNode(0, "alpha"), strNode(0, "beta"), nullStrNode(0)),
	}

	shared, err := ParseSharedTable(newFakeReader(fields))
	require.NoError(t, err)
	assert.Equal(t, "greek", shared.Name())
	assert.Equal(t, 2, shared.Version())
	assert.True(t, shared.Locked())
	assert.Equal(t, int64(3), shared.MaxID())

	sid, err := shared.FindSIDByText("alpha")
	require.NoError(t, err)
	assert.Equal(t, int64(1), sid)
	_, ok := shared.FindKnownText(3)
	assert.False(t, ok) // the null slot is a hole
}

func TestParseSharedTableRejectsMissingName(t *testing.T) {
	fields := []*node{
		listNode(fieldIDSymbols, strNode(0, "alpha")),
	}
	_, err := ParseSharedTable(newFakeReader(fields))
	var malformed *MalformedTableError
	require.ErrorAs(t, err, &malformed)
}

func TestParseLocalTableWithImportAndLocalSymbols(t *testing.T) {
	shared, err := newLocalWithSymbols("greek", 1, "alpha", "beta")
	require.NoError(t, err)
	cat := NewCatalog(shared)

	fields := []*node{
		listNode(fieldIDImports,
			structNode(0,
				strNode(fieldIDName, "greek"),
				intNode(fieldIDVersion, 1),
			),
		),
		listNode(fieldIDSymbols, strNode(0, "gamma")),
	}

	lt, err := ParseLocalTable(newFakeReader(fields), cat)
	require.NoError(t, err)

	base := SystemTable().MaxID()
	sid, err := lt.FindSIDByText("alpha")
	require.NoError(t, err)
	assert.Equal(t, base+1, sid)
	sid, err = lt.FindSIDByText("gamma")
	require.NoError(t, err)
	assert.Equal(t, base+3, sid)
}

func TestParseLocalTableMissingImportWithExplicitMaxID(t *testing.T) {
	cat := NewCatalog() // empty: "greek" is unresolvable

	fields := []*node{
		listNode(fieldIDImports,
			structNode(0,
				strNode(fieldIDName, "greek"),
				intNode(fieldIDVersion, 1),
				intNode(fieldIDMaxID, 4),
			),
		),
	}

	lt, err := ParseLocalTable(newFakeReader(fields), cat)
	require.NoError(t, err)

	base := SystemTable().MaxID()
	assert.Equal(t, base+4, lt.MaxID())
	for sid := base + 1; sid <= base+4; sid++ {
		_, ok := lt.FindKnownText(sid)
		assert.False(t, ok)
	}
}

func TestParseLocalTableMissingImportWithoutMaxIDIsMalformed(t *testing.T) {
	cat := NewCatalog()

	fields := []*node{
		listNode(fieldIDImports,
			structNode(0,
				strNode(fieldIDName, "greek"),
				intNode(fieldIDVersion, 1),
			),
		),
	}

	_, err := ParseLocalTable(newFakeReader(fields), cat)
	var malformed *MalformedImportError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "greek", malformed.Name)
}

func TestParseLocalTableVersionMismatchAdjustsWithExplicitMaxID(t *testing.T) {
	shared, err := newLocalWithSymbols("greek", 1, "alpha", "beta", "gamma")
	require.NoError(t, err)
	cat := NewCatalog(shared)

	fields := []*node{
		listNode(fieldIDImports,
			structNode(0,
				strNode(fieldIDName, "greek"),
				intNode(fieldIDVersion, 2), // catalog only has version 1
				intNode(fieldIDMaxID, 2),
			),
		),
	}

	lt, err := ParseLocalTable(newFakeReader(fields), cat)
	require.NoError(t, err)

	base := SystemTable().MaxID()
	sid, err := lt.FindSIDByText("alpha")
	require.NoError(t, err)
	assert.Equal(t, base+1, sid)
	// gamma (sid 3 in the original) was truncated away by the max_id clamp.
	_, err = lt.FindSIDByText("gamma")
	require.NoError(t, err)
	assert.Equal(t, UnknownSID, mustUnknown(t, lt, "gamma"))
}

func mustUnknown(t *testing.T, lt *Table, text string) int64 {
	t.Helper()
	sid, err := lt.FindSIDByText(text)
	require.NoError(t, err)
	return sid
}

func TestParseLocalTableSymbolsStructForm(t *testing.T) {
	cat := NewCatalog()
	base := SystemTable().MaxID()

	fields := []*node{
		structNode(fieldIDSymbols,
			strNode(int(base+1), "alpha"),
			strNode(int(base+3), "gamma"),
		),
	}

	lt, err := ParseLocalTable(newFakeReader(fields), cat)
	require.NoError(t, err)
	assert.Equal(t, base+3, lt.MaxID())

	sid, err := lt.FindSIDByText("alpha")
	require.NoError(t, err)
	assert.Equal(t, base+1, sid)

	_, ok := lt.FindKnownText(base + 2)
	assert.False(t, ok)
}

// TestStructuralViewRoundTripsThroughParse exercises the writer binding and
// the reader binding together: a table's StructuralView is converted back
// into a fakeReader tree and re-parsed, verifying the round-trip law of
// spec §8.
func TestStructuralViewRoundTripsThroughParse(t *testing.T) {
	lt, err := NewLocalTable()
	require.NoError(t, err)
	_, err = lt.AddSymbol("alpha")
	require.NoError(t, err)
	_, err = lt.AddSymbol("beta")
	require.NoError(t, err)
	shared, err := lt.PromoteToShared("greek", 1)
	require.NoError(t, err)

	view := shared.StructuralView()
	assert.Equal(t, []string{symbolTextTable}, view.Annotations())

	reparsed, err := ParseSharedTable(newFakeReader(viewToNodes(view)))
	require.NoError(t, err)
	assert.Equal(t, shared.Name(), reparsed.Name())
	assert.Equal(t, shared.Version(), reparsed.Version())
	assert.Equal(t, shared.MaxID(), reparsed.MaxID())

	for sid := int64(1); sid <= shared.MaxID(); sid++ {
		want, _ := shared.FindKnownText(sid)
		got, _ := reparsed.FindKnownText(sid)
		assert.Equal(t, want, got)
	}
}

func TestLocalStructuralViewRoundTripsWithImports(t *testing.T) {
	shared, err := newLocalWithSymbols("greek", 1, "one", "two")
	require.NoError(t, err)
	cat := NewCatalog(shared)

	lt, err := NewLocalTable(shared)
	require.NoError(t, err)
	_, err = lt.AddSymbol("local-extra")
	require.NoError(t, err)

	view := lt.StructuralView()
	reparsed, err := ParseLocalTable(newFakeReader(viewToNodes(view)), cat)
	require.NoError(t, err)

	assert.Equal(t, lt.MaxID(), reparsed.MaxID())
	sid, err := reparsed.FindSIDByText("local-extra")
	require.NoError(t, err)
	wantSid, err := lt.FindSIDByText("local-extra")
	require.NoError(t, err)
	assert.Equal(t, wantSid, sid)
}

// viewToNodes converts a StructuralView's tree back into fakeReader nodes,
// standing in for a real codec that would serialize the value tree to
// bytes and a real reader that would parse it back. fieldIDForKey mirrors
// the Format's fixed field-id assignments and the "$<sid>" convention used
// within a symbols struct.
func viewToNodes(sv *StructValue) []*node {
	var out []*node
	for _, f := range sv.Fields() {
		v, _ := sv.Get(f)
		out = append(out, valueToNode(fieldIDForKey(f), v))
	}
	return out
}

func valueToNode(fieldID int, v Value) *node {
	switch vv := v.(type) {
	case *ScalarValue:
		if vv.Kind() == KindStringValue {
			return strNode(fieldID, vv.StringValue())
		}
		return intNode(fieldID, vv.IntValue())
	case *StructValue:
		kids := viewToNodes(vv)
		return structNode(fieldID, kids...)
	case *ListValue:
		var kids []*node
		for _, item := range vv.Items() {
			kids = append(kids, valueToNode(0, item))
		}
		return listNode(fieldID, kids...)
	default:
		return &node{tag: TypeNone, fieldID: fieldID}
	}
}

func fieldIDForKey(key string) int {
	switch key {
	case symbolTextName:
		return fieldIDName
	case symbolTextVersion:
		return fieldIDVersion
	case symbolTextImports:
		return fieldIDImports
	case symbolTextSymbols:
		return fieldIDSymbols
	case symbolTextMaxID:
		return fieldIDMaxID
	}
	if len(key) > 1 && key[0] == sidSigil {
		if n, err := strconv.Atoi(key[1:]); err == nil {
			return n
		}
	}
	return 0
}
