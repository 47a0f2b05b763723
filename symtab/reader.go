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

import "golang.org/x/xerrors"

// TypeTag is the narrow set of value types the reader binding cares
// about; everything else is tolerated and skipped.
type TypeTag int

const (
	TypeNone TypeTag = iota
	TypeInt
	TypeString
	TypeList
	TypeStruct
)

// Reader is the narrow subset of a streaming structural reader this
// package consumes (spec §6). Implementations are expected to auto-skip
// an unconsumed container value's contents the next time Next is called,
// the same way the teacher's binary/text readers do internally — this
// binding never calls StepIn on a value it doesn't intend to descend
// into.
type Reader interface {
	HasNext() bool
	Next() TypeTag
	IsNullValue() bool
	FieldID() int
	GetType() TypeTag
	StepIn() error
	StepOut() error
	IsInStruct() bool
	IntValue() (int64, error)
	StringValue() (string, error)
}

// ParseLocalTable materializes a local Table from a Reader positioned
// just inside the opening of a local symbol table struct (spec §4.5).
func ParseLocalTable(r Reader, cat Catalog) (*Table, error) {
	var rawImports []rawImportClause
	var listSymbols []*string
	var structSymbols map[int64]*string

	foundImports, foundSymbols := false, false

	for r.HasNext() {
		tag := r.Next()
		switch r.FieldID() {
		case fieldIDImports:
			if foundImports {
				continue
			}
			foundImports = true
			clauses, err := readImportClauses(r, tag)
			if err != nil {
				return nil, xerrors.Errorf("symtab: reading imports: %w", err)
			}
			rawImports = clauses

		case fieldIDSymbols:
			if foundSymbols {
				continue
			}
			foundSymbols = true
			var err error
			switch tag {
			case TypeList:
				listSymbols, err = readSymbolsList(r)
			case TypeStruct:
				structSymbols, err = readSymbolsStruct(r)
			}
			if err != nil {
				return nil, xerrors.Errorf("symtab: reading symbols: %w", err)
			}
		}
	}

	t, err := NewLocalTable()
	if err != nil {
		return nil, err
	}

	for _, c := range rawImports {
		shared, declared, err := resolveImportClause(cat, c)
		if err != nil {
			return nil, err
		}
		if shared == nil {
			continue
		}
		if err := t.Import(shared, declared); err != nil {
			return nil, err
		}
	}

	firstLocalSid := t.maxID + 1
	installLocalCandidates(t, listSymbols, structSymbols, firstLocalSid)

	return t, nil
}

// ParseSharedTable materializes a shared Table from a Reader positioned
// just inside the opening of a shared symbol table struct (spec §4.5).
func ParseSharedTable(r Reader) (*Table, error) {
	var name string
	version := int64(1)
	var listSymbols []*string
	var structSymbols map[int64]*string
	foundSymbols := false

	for r.HasNext() {
		tag := r.Next()
		switch r.FieldID() {
		case fieldIDName:
			if tag == TypeString && !r.IsNullValue() {
				s, err := r.StringValue()
				if err != nil {
					return nil, err
				}
				name = s
			}
		case fieldIDVersion:
			if tag == TypeInt && !r.IsNullValue() {
				v, err := r.IntValue()
				if err != nil {
					return nil, err
				}
				version = v
			}
		case fieldIDSymbols:
			if foundSymbols {
				continue
			}
			foundSymbols = true
			var err error
			switch tag {
			case TypeList:
				listSymbols, err = readSymbolsList(r)
			case TypeStruct:
				structSymbols, err = readSymbolsStruct(r)
			}
			if err != nil {
				return nil, err
			}
		}
	}

	if name == "" {
		return nil, &MalformedTableError{Msg: "shared table struct lacks a non-empty name"}
	}
	if version < 1 {
		version = 1
	}

	t := newTableRaw(KindShared, name, int(version))
	sid := int64(0)
	for _, txt := range listSymbols {
		sid++
		if txt != nil && *txt != "" {
			_ = t.bind(sid, *txt, t)
		}
		if sid > t.maxID {
			t.maxID = sid
		}
	}
	for _, k := range sortedInt64Keys(structSymbols) {
		txt := structSymbols[k]
		if txt != nil && *txt != "" {
			_ = t.bind(k, *txt, t)
		}
		if k > t.maxID {
			t.maxID = k
		}
	}
	t.locked = true
	return t, nil
}

type rawImportClause struct {
	name     string
	version  int
	maxID    int64
	hasMaxID bool
}

func readImportClauses(r Reader, tag TypeTag) ([]rawImportClause, error) {
	if tag != TypeList || r.IsNullValue() {
		return nil, nil
	}
	if err := r.StepIn(); err != nil {
		return nil, err
	}

	var clauses []rawImportClause
	for r.HasNext() {
		etag := r.Next()
		if etag != TypeStruct || r.IsNullValue() {
			continue
		}
		c, err := readImportClause(r)
		if err != nil {
			return nil, err
		}
		if c.name == "" || c.name == symbolTextIon {
			continue
		}
		clauses = append(clauses, c)
	}

	if err := r.StepOut(); err != nil {
		return nil, err
	}
	return clauses, nil
}

func readImportClause(r Reader) (rawImportClause, error) {
	c := rawImportClause{version: 1, maxID: -1}
	if err := r.StepIn(); err != nil {
		return c, err
	}

	for r.HasNext() {
		tag := r.Next()
		switch r.FieldID() {
		case fieldIDName:
			if tag == TypeString && !r.IsNullValue() {
				s, err := r.StringValue()
				if err != nil {
					return c, err
				}
				c.name = s
			}
		case fieldIDVersion:
			if tag == TypeInt && !r.IsNullValue() {
				v, err := r.IntValue()
				if err != nil {
					return c, err
				}
				c.version = int(v)
			}
		case fieldIDMaxID:
			if tag == TypeInt && !r.IsNullValue() {
				v, err := r.IntValue()
				if err != nil {
					return c, err
				}
				if v >= 0 {
					c.maxID = v
					c.hasMaxID = true
				}
			}
		}
	}

	if err := r.StepOut(); err != nil {
		return c, err
	}
	if c.version < 1 {
		c.version = 1
	}
	return c, nil
}

// resolveImportClause follows spec §4.5's resolution rules, returning the
// shared table to import and the declared max id to pass to Table.Import.
// Clauses with a missing/empty/system name are filtered out already by
// readImportClauses, so this always returns a usable table or an error.
func resolveImportClause(cat Catalog, c rawImportClause) (*Table, int64, error) {
	var found *Table
	if cat != nil {
		found = cat.GetTable(c.name, c.version)
	}

	if found != nil && found.Version() == c.version {
		declared := c.maxID
		if !c.hasMaxID {
			declared = found.MaxID()
		}
		return found, declared, nil
	}

	if !c.hasMaxID {
		return nil, 0, &MalformedImportError{Name: c.name, Version: c.version}
	}
	if found != nil {
		return found.Adjusted(c.maxID), c.maxID, nil
	}
	return newPlaceholderSharedTable(c.name, c.version, c.maxID), c.maxID, nil
}

func readSymbolsList(r Reader) ([]*string, error) {
	if r.IsNullValue() {
		return nil, nil
	}
	if err := r.StepIn(); err != nil {
		return nil, err
	}

	var out []*string
	for r.HasNext() {
		tag := r.Next()
		if tag == TypeString && !r.IsNullValue() {
			s, err := r.StringValue()
			if err != nil {
				return nil, err
			}
			if s == "" {
				out = append(out, nil)
			} else {
				v := s
				out = append(out, &v)
			}
		} else {
			out = append(out, nil)
		}
	}

	if err := r.StepOut(); err != nil {
		return nil, err
	}
	return out, nil
}

func readSymbolsStruct(r Reader) (map[int64]*string, error) {
	if r.IsNullValue() {
		return nil, nil
	}
	if err := r.StepIn(); err != nil {
		return nil, err
	}

	out := make(map[int64]*string)
	for r.HasNext() {
		tag := r.Next()
		sid := int64(r.FieldID())
		if tag == TypeString && !r.IsNullValue() {
			s, err := r.StringValue()
			if err != nil {
				return nil, err
			}
			if s != "" {
				v := s
				out[sid] = &v
			} else {
				out[sid] = nil
			}
		} else {
			out[sid] = nil
		}
	}

	if err := r.StepOut(); err != nil {
		return nil, err
	}
	return out, nil
}

func installLocalCandidates(t *Table, listSymbols []*string, structSymbols map[int64]*string, firstLocalSid int64) {
	for i, txt := range listSymbols {
		installLocalCandidate(t, firstLocalSid+int64(i), txt, firstLocalSid)
	}
	for _, sid := range sortedInt64Keys(structSymbols) {
		installLocalCandidate(t, sid, structSymbols[sid], firstLocalSid)
	}
}

func installLocalCandidate(t *Table, sid int64, txt *string, firstLocalSid int64) {
	if sid < firstLocalSid {
		// Colliding with an import's reserved range: silently dropped.
		return
	}
	if txt == nil || *txt == "" {
		t.ensureCapacity(sid)
		if sid > t.maxID {
			t.maxID = sid
		}
		return
	}
	_ = t.bind(sid, *txt, t)
	if sid > t.maxID {
		t.maxID = sid
	}
	t.hasLocalSymbols = true
}

func sortedInt64Keys(m map[int64]*string) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
