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

import "fmt"

// StructuralView builds (or, for a local table, returns the cached)
// structural value tree for this table, per spec §4.6:
//
//	annot '$ion_symbol_table' :: {
//	  name:    <string>   // shared only
//	  version: <int>      // shared only
//	  imports: [ {name, version, max_id}, … ]   // local only; absent if empty
//	  symbols: { "$<sid>": "<text>", … }        // only symbols whose source == self
//	}
//
// Local tables cache the result and mirror subsequent DefineSymbol and
// RemoveSymbol calls into it incrementally. Shared tables are immutable
// and are rebuilt on every call.
func (t *Table) StructuralView() *StructValue {
	if t.kind == KindLocal && t.view != nil {
		return t.view
	}

	view := NewEmptyStruct()
	view.AddTypeAnnotation(symbolTextTable)

	if t.kind == KindShared {
		view.Add(symbolTextName, NewString(t.name))
		view.Add(symbolTextVersion, NewInt(int64(t.version)))
	}

	if t.kind == KindLocal && len(t.imports) > 0 {
		implist := NewEmptyList()
		for i, imp := range t.imports {
			s := NewEmptyStruct()
			s.Add(symbolTextName, NewString(imp.name))
			s.Add(symbolTextVersion, NewInt(int64(imp.version)))
			s.Add(symbolTextMaxID, NewInt(t.importDeclared[i]))
			implist.Add(s)
		}
		view.Add(symbolTextImports, implist)
	}

	symbols := NewEmptyStruct()
	for sid := int64(1); sid <= t.maxID && sid < int64(len(t.entries)); sid++ {
		e := t.entries[sid]
		if e == nil || e.source != t {
			continue
		}
		text, ok := e.Text()
		if !ok {
			continue
		}
		symbols.Add(sidFieldName(sid), NewString(text))
	}
	view.Add(symbolTextSymbols, symbols)

	if t.kind == KindLocal {
		t.view = view
		t.symbolsView = symbols
	}
	return view
}

func sidFieldName(sid int64) string {
	return fmt.Sprintf("%c%d", sidSigil, sid)
}

// mirrorDefine keeps the cached structural view, if one has been built, in
// lock-step with a newly defined local symbol.
func (t *Table) mirrorDefine(sid int64, text string) {
	if t.symbolsView == nil {
		return
	}
	t.symbolsView.Put(sidFieldName(sid), NewString(text))
}

// mirrorRemove deletes the cached structural view's field for sid, if one
// has been built.
func (t *Table) mirrorRemove(sid int64) {
	if t.symbolsView == nil {
		return
	}
	t.symbolsView.RemoveAll(sidFieldName(sid))
}
