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

// Package symtab implements the symbol table subsystem of a self-describing
// binary/text data format: resolving symbol IDs to text and back, importing
// and composing shared symbol tables, and promoting a local table to a
// shared one.
//
// A stream is interpreted relative to a current local Table that chains a
// fixed System table, zero or more imported shared tables, and a tail of
// user-defined local symbols. See Table for the unified representation of
// all three roles.
package symtab
