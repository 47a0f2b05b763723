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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuralViewSharedTableShape(t *testing.T) {
	lt, err := NewLocalTable()
	require.NoError(t, err)
	_, err = lt.AddSymbol("alpha")
	require.NoError(t, err)
	shared, err := lt.PromoteToShared("greek", 4)
	require.NoError(t, err)

	view := shared.StructuralView()
	name, ok := view.Get(symbolTextName)
	require.True(t, ok)
	assert.Equal(t, "greek", name.(*ScalarValue).StringValue())

	version, ok := view.Get(symbolTextVersion)
	require.True(t, ok)
	assert.Equal(t, int64(4), version.(*ScalarValue).IntValue())

	_, hasImports := view.Get(symbolTextImports)
	assert.False(t, hasImports, "a shared table's view never has an imports field")

	symbols, ok := view.Get(symbolTextSymbols)
	require.True(t, ok)
	assert.Equal(t, []string{"$1"}, symbols.(*StructValue).Fields())
}

func TestStructuralViewLocalTableOmitsEmptyImports(t *testing.T) {
	lt, err := NewLocalTable()
	require.NoError(t, err)
	view := lt.StructuralView()

	_, hasName := view.Get(symbolTextName)
	assert.False(t, hasName, "a local table's view never has a name field")
	_, hasImports := view.Get(symbolTextImports)
	assert.False(t, hasImports, "no imports were added, so the field is absent")
}

func TestStructuralViewOmitsImportedSymbolsFromSymbolsField(t *testing.T) {
	shared, err := newLocalWithSymbols("greek", 1, "one")
	require.NoError(t, err)
	lt, err := NewLocalTable(shared)
	require.NoError(t, err)
	_, err = lt.AddSymbol("local-only")
	require.NoError(t, err)

	view := lt.StructuralView()
	symbols, ok := view.Get(symbolTextSymbols)
	require.True(t, ok)
	// Only locally-sourced symbols are mirrored; the imported "one" is
	// represented via the imports clause instead.
	assert.Equal(t, 1, len(symbols.(*StructValue).Fields()))
}

func TestLocalTableCachesAndMirrorsIncrementalEdits(t *testing.T) {
	lt, err := NewLocalTable()
	require.NoError(t, err)

	view1 := lt.StructuralView()
	sid, err := lt.AddSymbol("alpha")
	require.NoError(t, err)

	// The same cached view object is returned and reflects the new symbol.
	view2 := lt.StructuralView()
	assert.True(t, view1 == view2)

	symbols, _ := view2.Get(symbolTextSymbols)
	sv := symbols.(*StructValue)
	field := sidFieldName(sid)
	val, ok := sv.Get(field)
	require.True(t, ok)
	assert.Equal(t, "alpha", val.(*ScalarValue).StringValue())

	require.NoError(t, lt.RemoveSymbol("alpha", sid))
	_, ok = sv.Get(field)
	assert.False(t, ok)
}

func TestSharedTableViewIsRebuiltNotCached(t *testing.T) {
	lt, err := NewLocalTable()
	require.NoError(t, err)
	_, err = lt.AddSymbol("alpha")
	require.NoError(t, err)
	shared, err := lt.PromoteToShared("greek", 1)
	require.NoError(t, err)

	v1 := shared.StructuralView()
	v2 := shared.StructuralView()
	assert.False(t, v1 == v2, "shared table views are rebuilt every call, not cached")
	if diff := cmp.Diff(v1.Fields(), v2.Fields()); diff != "" {
		t.Errorf("structurally equal rebuilds should expose the same fields (-want +got):\n%s", diff)
	}
}
