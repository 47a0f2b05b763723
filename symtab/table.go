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
	"fmt"
	"strings"
)

// UnknownSID is returned by lookups that find no binding, and accepted as
// the "not supplied" sentinel for RemoveSymbol's optional sid argument.
const UnknownSID int64 = -1

// TableKind distinguishes the three lifecycle roles a Table can play.
// Local, shared and system tables are states of the same structure,
// distinguished by (locked, name, systemRef); Kind is bookkeeping that
// makes that state explicit rather than re-derived at every call site.
type TableKind uint8

const (
	KindLocal TableKind = iota
	KindShared
	KindSystem
)

func (k TableKind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindShared:
		return "shared"
	case KindSystem:
		return "system"
	default:
		return "unknown"
	}
}

// A Table is the unified symbol table: a system table, a shared table, or
// a local table, depending on its lifecycle state. See spec §3 for the
// full data model and its invariants.
type Table struct {
	kind      TableKind
	name      string
	version   int
	systemRef *Table

	imports        []*Table
	importDeclared []int64

	entries   []*SymbolEntry // index 0 unused
	textIndex map[string]int64

	maxID           int64
	hasLocalSymbols bool
	locked          bool

	// Cached structural mirror; locals only, built lazily.
	view        *StructValue
	symbolsView *StructValue
}

func newTableRaw(kind TableKind, name string, version int) *Table {
	return &Table{
		kind:      kind,
		name:      name,
		version:   version,
		entries:   make([]*SymbolEntry, 1),
		textIndex: make(map[string]int64),
	}
}

// systemTableSingleton is built once, at package initialization, which Go
// guarantees happens-before any use of the package. It is locked and never
// mutated again, so it is safe to share across goroutines without further
// synchronization.
var systemTableSingleton = newSystemTable()

func newSystemTable() *Table {
	t := newTableRaw(KindSystem, symbolTextIon, 1)
	for _, text := range systemSymbolTexts {
		sid := t.maxID + 1
		if err := t.bind(sid, text, t); err != nil {
			panic(fmt.Sprintf("symtab: corrupt system table bootstrap: %v", err))
		}
		t.maxID = sid
	}
	t.locked = true
	return t
}

// SystemTable returns the process-wide version-1 system table. The same
// object is returned for the lifetime of the process.
func SystemTable() *Table {
	return systemTableSingleton
}

// NewLocalTable constructs a local table, importing the system table at
// offset 0, followed by any given shared tables in order.
func NewLocalTable(imports ...*Table) (*Table, error) {
	sys := SystemTable()
	t := newTableRaw(KindLocal, "", 0)
	t.systemRef = sys
	t.maxID = sys.maxID

	for _, imp := range imports {
		if err := t.Import(imp, -1); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Name returns the table's name; empty unless the table is shared.
func (t *Table) Name() string { return t.name }

// Version returns the table's version; 0 for local tables.
func (t *Table) Version() int { return t.version }

// Kind reports which of the three lifecycle roles this table plays.
func (t *Table) Kind() TableKind { return t.kind }

// MaxID returns the highest sid known to this table.
func (t *Table) MaxID() int64 { return t.maxID }

// Locked reports whether mutation is forbidden.
func (t *Table) Locked() bool { return t.locked }

// HasLocalSymbols reports whether a symbol with source == this table has
// ever been defined.
func (t *Table) HasLocalSymbols() bool { return t.hasLocalSymbols }

// SystemRef returns the system table in effect, or nil for the system
// table itself and for shared tables.
func (t *Table) SystemRef() *Table { return t.systemRef }

// Imports returns the shared tables this table imports, in order.
func (t *Table) Imports() []*Table {
	out := make([]*Table, len(t.imports))
	copy(out, t.imports)
	return out
}

// ImportDeclaredMaxID returns the declared max id recorded for the i'th
// import, as distinct from that shared table's own MaxID().
func (t *Table) ImportDeclaredMaxID(i int) int64 {
	return t.importDeclared[i]
}

// ensureCapacity grows entries to index sid, doubling capacity as needed.
func (t *Table) ensureCapacity(sid int64) {
	if int64(len(t.entries)) > sid {
		return
	}
	newLen := int64(len(t.entries))
	if newLen == 0 {
		newLen = 1
	}
	for newLen <= sid {
		newLen *= 2
	}
	grown := make([]*SymbolEntry, newLen)
	copy(grown, t.entries)
	t.entries = grown
}

// bind installs text at sid with the given source, applying the
// no-rebinding and first-writer-wins rules of spec §3. It is the single
// choke point used by AddSymbol, DefineSymbol, import ingestion, and
// table parsing.
func (t *Table) bind(sid int64, text string, source *Table) error {
	t.ensureCapacity(sid)

	if existing := t.entries[sid]; existing != nil {
		existingText, _ := existing.Text()
		if existingText == text {
			return nil
		}
		return &SymbolRedefinitionError{SID: sid, Existing: existingText, Attempt: text}
	}

	if boundSid, ok := t.textIndex[text]; ok && boundSid < sid {
		// First-writer-wins: this slot stays a hole.
		return nil
	}

	t.entries[sid] = newSymbolEntry(sid, &text, source)
	if boundSid, ok := t.textIndex[text]; !ok || sid < boundSid {
		t.textIndex[text] = sid
	}
	if sid > t.maxID {
		t.maxID = sid
	}
	if source == t {
		t.hasLocalSymbols = true
	}
	return nil
}

// lookupBound checks the system table, then this table's own text index.
// It never synthesizes a sid-literal.
func (t *Table) lookupBound(text string) (int64, bool) {
	if sys := t.systemRef; sys != nil {
		if sid, ok := sys.textIndex[text]; ok {
			return sid, true
		}
	}
	if sid, ok := t.textIndex[text]; ok {
		return sid, true
	}
	return 0, false
}

// FindSIDByText resolves text to a sid, probing the system table first,
// then this table's own symbols, then falling back to sid-literal syntax.
func (t *Table) FindSIDByText(text string) (int64, error) {
	if text == "" {
		return UnknownSID, &IllegalArgumentError{API: "FindSIDByText", Msg: "text must not be empty"}
	}
	if sid, ok := t.lookupBound(text); ok {
		return sid, nil
	}
	if strings.HasPrefix(text, reservedPrefix) {
		if sid, ok := parseSIDLiteral(text); ok {
			return sid, nil
		}
		return UnknownSID, &InvalidSystemSymbolError{Text: text}
	}
	return UnknownSID, nil
}

func (t *Table) localKnownText(sid int64) (string, bool) {
	if sid < 0 || sid >= int64(len(t.entries)) {
		return "", false
	}
	e := t.entries[sid]
	if e == nil {
		return "", false
	}
	return e.Text()
}

// FindKnownText returns the text bound to sid, or false if unknown. It
// never synthesizes a sid-literal.
func (t *Table) FindKnownText(sid int64) (string, bool) {
	if sid < 1 {
		return "", false
	}
	if sys := t.systemRef; sys != nil && sid <= sys.maxID {
		return sys.localKnownText(sid)
	}
	return t.localKnownText(sid)
}

// FindText is FindKnownText but synthesizes the sid-literal "$<sid>" when
// the sid is unknown, for callers that need some text unconditionally.
func (t *Table) FindText(sid int64) string {
	if text, ok := t.FindKnownText(sid); ok {
		return text
	}
	return fmt.Sprintf("%c%d", sidSigil, sid)
}

// BySID is a convenience wrapper returning the underlying entry, if any.
func (t *Table) BySID(sid int64) (*SymbolEntry, bool) {
	if sys := t.systemRef; sys != nil && sid >= 1 && sid <= sys.maxID {
		return sys.BySID(sid)
	}
	if sid < 0 || sid >= int64(len(t.entries)) {
		return nil, false
	}
	e := t.entries[sid]
	return e, e != nil
}

func parseSIDLiteral(text string) (int64, bool) {
	if len(text) < 2 || text[0] != sidSigil {
		return 0, false
	}
	digits := text[1:]
	var n int64
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int64(c-'0')
	}
	return n, true
}

// AddSymbol looks up text; if already bound, returns the existing sid.
// Otherwise it allocates MaxID()+1 and installs it as a local symbol.
func (t *Table) AddSymbol(text string) (int64, error) {
	if text == "" {
		return UnknownSID, &IllegalArgumentError{API: "AddSymbol", Msg: "text must not be empty"}
	}
	if sid, ok := t.lookupBound(text); ok {
		return sid, nil
	}
	if t.locked {
		return UnknownSID, &IllegalStateError{API: "AddSymbol", Msg: "table is locked"}
	}
	sid := t.maxID + 1
	if err := t.bind(sid, text, t); err != nil {
		return UnknownSID, err
	}
	t.maxID = sid
	t.mirrorDefine(sid, text)
	return sid, nil
}

// DefineSymbol binds text to the given sid, no-op if already bound there,
// and an error if text is bound elsewhere or sid is already bound to
// different text.
func (t *Table) DefineSymbol(text string, sid int64) error {
	if t.locked {
		return &IllegalStateError{API: "DefineSymbol", Msg: "table is locked"}
	}
	if text == "" || sid < 1 {
		return &IllegalArgumentError{API: "DefineSymbol", Msg: "text must be non-empty and sid must be >= 1"}
	}
	if boundSid, ok := t.lookupBound(text); ok {
		if boundSid == sid {
			return nil
		}
		return &IllegalArgumentError{
			API: "DefineSymbol",
			Msg: fmt.Sprintf("text %q is already bound to sid %d", text, boundSid),
		}
	}
	if err := t.bind(sid, text, t); err != nil {
		return err
	}
	t.mirrorDefine(sid, text)
	return nil
}

// RemoveSymbol clears text's binding. If sid is supplied (not UnknownSID)
// it must match the current binding. System-range sids can never be
// removed. MaxID is not decremented.
func (t *Table) RemoveSymbol(text string, sid int64) error {
	if t.locked {
		return &IllegalStateError{API: "RemoveSymbol", Msg: "table is locked"}
	}
	existingSid, ok := t.lookupBound(text)
	if !ok {
		return nil
	}
	if sid != UnknownSID && sid != existingSid {
		return &IllegalArgumentError{
			API: "RemoveSymbol",
			Msg: fmt.Sprintf("text %q is bound to sid %d, not %d", text, existingSid, sid),
		}
	}
	if sys := t.systemRef; sys != nil && existingSid <= sys.maxID {
		return &IllegalStateError{API: "RemoveSymbol", Msg: "cannot remove a system-range symbol"}
	}
	t.entries[existingSid] = nil
	delete(t.textIndex, text)
	t.mirrorRemove(existingSid)
	return nil
}

// Import ingests a shared table's symbols at an offset equal to this
// table's current MaxID. declaredMaxID < 0 defaults to shared's own
// MaxID. MaxID advances by declaredMaxID even past what was actually
// ingested, reserving id space for future compatibility.
func (t *Table) Import(shared *Table, declaredMaxID int64) error {
	if t.locked {
		return &IllegalStateError{API: "Import", Msg: "table is locked"}
	}
	if t.hasLocalSymbols {
		return &IllegalStateError{API: "Import", Msg: "imports may only be added before any local symbol exists"}
	}
	if t.systemRef == nil {
		return &IllegalStateError{API: "Import", Msg: "system reference must be set before importing"}
	}
	if shared == nil || shared.kind != KindShared || shared.name == "" {
		return &IllegalArgumentError{API: "Import", Msg: "import must be a shared, non-system table with a non-empty name"}
	}
	if declaredMaxID < 0 {
		declaredMaxID = shared.maxID
	}

	priorMax := t.maxID
	ingestLimit := shared.maxID
	if declaredMaxID < ingestLimit {
		ingestLimit = declaredMaxID
	}

	for k := int64(1); k <= ingestLimit; k++ {
		e, ok := shared.BySID(k)
		if !ok {
			continue
		}
		text, ok := e.Text()
		if !ok {
			continue
		}
		if err := t.bind(priorMax+k, text, e.Source()); err != nil {
			return err
		}
	}

	t.ensureCapacity(priorMax + declaredMaxID)
	t.maxID = priorMax + declaredMaxID
	t.imports = append(t.imports, shared)
	t.importDeclared = append(t.importDeclared, declaredMaxID)
	return nil
}

// PromoteToShared consumes a local table, collecting every entry whose
// source is this table (in ascending sid order), renumbering them
// contiguously from 1, and locking the result as a new shared table. The
// original table is left locked and must not be reused.
func (t *Table) PromoteToShared(name string, version int) (*Table, error) {
	if t.locked {
		return nil, &IllegalStateError{API: "PromoteToShared", Msg: "table is locked"}
	}
	if name == "" {
		return nil, &IllegalArgumentError{API: "PromoteToShared", Msg: "name must be non-empty"}
	}
	if version < 1 {
		return nil, &IllegalArgumentError{API: "PromoteToShared", Msg: "version must be >= 1"}
	}

	var kept []*SymbolEntry
	for sid := int64(1); sid <= t.maxID && sid < int64(len(t.entries)); sid++ {
		if e := t.entries[sid]; e != nil && e.source == t {
			kept = append(kept, e)
		}
	}

	shared := newTableRaw(KindShared, name, version)
	for i, e := range kept {
		text, _ := e.Text()
		newSid := int64(i + 1)
		if err := shared.bind(newSid, text, shared); err != nil {
			return nil, err
		}
	}
	shared.maxID = int64(len(kept))
	shared.locked = true

	t.locked = true
	return shared, nil
}

// Adjusted returns a shared table view clamped or extended to maxID,
// without mutating the receiver. Only valid on shared tables.
func (t *Table) Adjusted(maxID int64) *Table {
	if maxID == t.maxID {
		return t
	}
	if maxID > t.maxID {
		nt := newTableRaw(KindShared, t.name, t.version)
		nt.entries = make([]*SymbolEntry, len(t.entries))
		copy(nt.entries, t.entries)
		nt.textIndex = t.textIndex
		nt.maxID = maxID
		nt.locked = true
		return nt
	}

	nt := newTableRaw(KindShared, t.name, t.version)
	nt.entries = make([]*SymbolEntry, maxID+1)
	for sid := int64(1); sid <= maxID; sid++ {
		if sid >= int64(len(t.entries)) {
			break
		}
		e := t.entries[sid]
		if e == nil {
			continue
		}
		nt.entries[sid] = e
		if text, ok := e.Text(); ok {
			if _, exists := nt.textIndex[text]; !exists {
				nt.textIndex[text] = sid
			}
		}
	}
	nt.maxID = maxID
	nt.locked = true
	return nt
}

// newPlaceholderSharedTable reserves id space for an import the catalog
// could not resolve (spec §4.5): a shared, locked table with the
// requested name/version and no resolvable symbols.
func newPlaceholderSharedTable(name string, version int, maxID int64) *Table {
	t := newTableRaw(KindShared, name, version)
	t.entries = make([]*SymbolEntry, maxID+1)
	t.maxID = maxID
	t.locked = true
	return t
}
