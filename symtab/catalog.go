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

// A Catalog resolves shared tables by (name, version). It is supplied by
// the caller; this package only consumes it. A Catalog may tolerate
// returning a table of a different version than requested — the reader
// binding (reader.go) handles the mismatch.
type Catalog interface {
	GetTable(name string, version int) *Table
}

// basicCatalog is a minimal in-memory Catalog, grounded on the teacher's
// basicCatalog (ion/catalog.go): it keeps every registered version and
// tracks the latest one seen per name, so a lookup that misses the exact
// version can still fall back to the latest.
type basicCatalog struct {
	exact  map[string]*Table
	latest map[string]*Table
}

// NewCatalog builds an in-memory Catalog containing the given shared
// tables.
func NewCatalog(tables ...*Table) Catalog {
	c := &basicCatalog{
		exact:  make(map[string]*Table),
		latest: make(map[string]*Table),
	}
	for _, t := range tables {
		c.add(t)
	}
	return c
}

func (c *basicCatalog) add(t *Table) {
	key := fmt.Sprintf("%s/%d", t.Name(), t.Version())
	c.exact[key] = t

	if cur, ok := c.latest[t.Name()]; !ok || t.Version() > cur.Version() {
		c.latest[t.Name()] = t
	}
}

// GetTable returns the exact (name, version) match if registered, else
// the latest registered version of name, else nil.
func (c *basicCatalog) GetTable(name string, version int) *Table {
	key := fmt.Sprintf("%s/%d", name, version)
	if t, ok := c.exact[key]; ok {
		return t
	}
	return c.latest[name]
}
