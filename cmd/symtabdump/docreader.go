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

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ion-symtab/go-symtab/symtab"
)

// Field ids the format assigns within a symbol table struct; mirrors the
// unexported constants in symtab/consts.go since they're part of the wire
// shape any caller building a Reader must agree on.
const (
	fieldIDName    = 4
	fieldIDVersion = 5
	fieldIDImports = 6
	fieldIDSymbols = 7
	fieldIDMaxID   = 8
)

// tableDoc is the JSON document shape this command reads from disk: a
// deliberately simple stand-in for a real binary or text Ion decoder,
// which is out of this library's scope (spec treats the reader as an
// external collaborator).
type tableDoc struct {
	Name          string            `json:"name,omitempty"`
	Version       int               `json:"version,omitempty"`
	Imports       []importDoc       `json:"imports,omitempty"`
	Symbols       []string          `json:"symbols,omitempty"`
	SymbolsBySID  map[string]string `json:"symbols_by_sid,omitempty"`
}

type importDoc struct {
	Name    string `json:"name"`
	Version int    `json:"version,omitempty"`
	MaxID   *int64 `json:"max_id,omitempty"`
}

type docNode struct {
	tag      symtab.TypeTag
	fieldID  int
	str      string
	i        int64
	isNull   bool
	children []*docNode
}

// docReader walks a []*docNode tree, implementing symtab.Reader.
type docReader struct {
	frames [][]*docNode
	idx    []int
	cur    *docNode
}

func newDocReader(fields []*docNode) *docReader {
	return &docReader{frames: [][]*docNode{fields}, idx: []int{-1}}
}

func (r *docReader) HasNext() bool {
	top := len(r.frames) - 1
	return r.idx[top]+1 < len(r.frames[top])
}

func (r *docReader) Next() symtab.TypeTag {
	top := len(r.frames) - 1
	r.idx[top]++
	r.cur = r.frames[top][r.idx[top]]
	return r.cur.tag
}

func (r *docReader) IsNullValue() bool { return r.cur.isNull }
func (r *docReader) FieldID() int      { return r.cur.fieldID }
func (r *docReader) GetType() symtab.TypeTag { return r.cur.tag }
func (r *docReader) IsInStruct() bool  { return true }

func (r *docReader) StepIn() error {
	r.frames = append(r.frames, r.cur.children)
	r.idx = append(r.idx, -1)
	return nil
}

func (r *docReader) StepOut() error {
	r.frames = r.frames[:len(r.frames)-1]
	r.idx = r.idx[:len(r.idx)-1]
	return nil
}

func (r *docReader) IntValue() (int64, error)    { return r.cur.i, nil }
func (r *docReader) StringValue() (string, error) { return r.cur.str, nil }

// toFields converts a tableDoc's JSON shape into the []*docNode a
// docReader walks.
func (d *tableDoc) toFields() []*docNode {
	var fields []*docNode
	if d.Name != "" {
		fields = append(fields, &docNode{tag: symtab.TypeString, fieldID: fieldIDName, str: d.Name})
	}
	if d.Version != 0 {
		fields = append(fields, &docNode{tag: symtab.TypeInt, fieldID: fieldIDVersion, i: int64(d.Version)})
	}
	if len(d.Imports) > 0 {
		var kids []*docNode
		for _, imp := range d.Imports {
			var ikids []*docNode
			ikids = append(ikids, &docNode{tag: symtab.TypeString, fieldID: fieldIDName, str: imp.Name})
			if imp.Version != 0 {
				ikids = append(ikids, &docNode{tag: symtab.TypeInt, fieldID: fieldIDVersion, i: int64(imp.Version)})
			}
			if imp.MaxID != nil {
				ikids = append(ikids, &docNode{tag: symtab.TypeInt, fieldID: fieldIDMaxID, i: *imp.MaxID})
			}
			kids = append(kids, &docNode{tag: symtab.TypeStruct, children: ikids})
		}
		fields = append(fields, &docNode{tag: symtab.TypeList, fieldID: fieldIDImports, children: kids})
	}
	if len(d.Symbols) > 0 {
		var kids []*docNode
		for _, s := range d.Symbols {
			if s == "" {
				kids = append(kids, &docNode{tag: symtab.TypeString, isNull: true})
				continue
			}
			kids = append(kids, &docNode{tag: symtab.TypeString, str: s})
		}
		fields = append(fields, &docNode{tag: symtab.TypeList, fieldID: fieldIDSymbols, children: kids})
	} else if len(d.SymbolsBySID) > 0 {
		var kids []*docNode
		for sidStr, text := range d.SymbolsBySID {
			sid, err := strconv.Atoi(strings.TrimSpace(sidStr))
			if err != nil {
				continue
			}
			kids = append(kids, &docNode{tag: symtab.TypeString, fieldID: sid, str: text})
		}
		fields = append(fields, &docNode{tag: symtab.TypeStruct, fieldID: fieldIDSymbols, children: kids})
	}
	return fields
}

func (d *tableDoc) describe() string {
	return fmt.Sprintf("%s/%d", d.Name, d.Version)
}
