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

// An IllegalArgumentError is returned when a caller passes a null/empty
// text, a non-positive sid, or an inconsistent (text, sid) pair to a
// mutating call.
type IllegalArgumentError struct {
	API string
	Msg string
}

func (e *IllegalArgumentError) Error() string {
	return fmt.Sprintf("symtab: illegal argument in %v: %v", e.API, e.Msg)
}

// An IllegalStateError is returned when a mutation is attempted on a locked
// table, or an import is attempted after local symbols already exist, or
// before a system reference is in place.
type IllegalStateError struct {
	API string
	Msg string
}

func (e *IllegalStateError) Error() string {
	return fmt.Sprintf("symtab: illegal state in %v: %v", e.API, e.Msg)
}

// A SymbolRedefinitionError is returned when a sid slot already holds a
// different text than the one a caller is attempting to bind there.
type SymbolRedefinitionError struct {
	SID      int64
	Existing string
	Attempt  string
}

func (e *SymbolRedefinitionError) Error() string {
	return fmt.Sprintf("symtab: cannot redefine sid %d: already bound to %q, attempted %q",
		e.SID, e.Existing, e.Attempt)
}

// An InvalidSystemSymbolError is returned when a lookup text matches the
// reserved-prefix pattern but is not a well-formed sid-literal.
type InvalidSystemSymbolError struct {
	Text string
}

func (e *InvalidSystemSymbolError) Error() string {
	return fmt.Sprintf("symtab: invalid system symbol %q", e.Text)
}

// A MalformedTableError is returned when a parsed shared table struct lacks
// a non-empty name.
type MalformedTableError struct {
	Msg string
}

func (e *MalformedTableError) Error() string {
	return fmt.Sprintf("symtab: malformed table: %v", e.Msg)
}

// A MalformedImportError is returned when a parsed import clause lacks
// max_id and is not exactly matched by the catalog.
type MalformedImportError struct {
	Name    string
	Version int
}

func (e *MalformedImportError) Error() string {
	return fmt.Sprintf("symtab: import of shared table %v/%v lacks a valid max_id, "+
		"and an exact match was not found in the catalog", e.Name, e.Version)
}

// An UnknownSymbolError is raised by callers resolving a sid whose text is
// absent, e.g. an unresolved imported symbol.
type UnknownSymbolError struct {
	SID int64
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("symtab: unknown symbol for sid %d", e.SID)
}
