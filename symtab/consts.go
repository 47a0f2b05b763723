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

// The Format-defined system symbols, in declared order. Sids are 1-based,
// assigned in this order by the SystemTable constructor.
const (
	symbolTextIon = "$ion"

	symbolTextIon10 = "$ion_1_0"

	symbolTextTable = "$ion_symbol_table"

	symbolTextName = "name"

	symbolTextVersion = "version"

	symbolTextImports = "imports"

	symbolTextSymbols = "symbols"

	symbolTextMaxID = "max_id"

	symbolTextSharedTable = "$ion_shared_symbol_table"
)

var systemSymbolTexts = []string{
	symbolTextIon,
	symbolTextIon10,
	symbolTextTable,
	symbolTextName,
	symbolTextVersion,
	symbolTextImports,
	symbolTextSymbols,
	symbolTextMaxID,
	symbolTextSharedTable,
}

// Field ids the Format assigns within a symbol table struct (spec.md §6).
const (
	fieldIDName    = 4
	fieldIDVersion = 5
	fieldIDImports = 6
	fieldIDSymbols = 7
	fieldIDMaxID   = 8
)

// sidSigil is the Format-defined character that introduces a sid-literal,
// e.g. "$10".
const sidSigil = '$'

// reservedPrefix is the prefix shared by every system-reserved symbol text
// and by sid-literals. A lookup text starting with this prefix that is not
// a well-formed sid-literal and is not itself a system symbol is rejected
// with InvalidSystemSymbolError.
const reservedPrefix = "$"
