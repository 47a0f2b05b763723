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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogExactVersionMatch(t *testing.T) {
	v1, err := newLocalWithSymbols("greek", 1, "alpha")
	require.NoError(t, err)
	v2, err := newLocalWithSymbols("greek", 2, "alpha", "beta")
	require.NoError(t, err)
	cat := NewCatalog(v1, v2)

	got := cat.GetTable("greek", 1)
	assert.Same(t, v1, got)
	got = cat.GetTable("greek", 2)
	assert.Same(t, v2, got)
}

func TestCatalogFallsBackToLatestVersion(t *testing.T) {
	v1, err := newLocalWithSymbols("greek", 1, "alpha")
	require.NoError(t, err)
	v3, err := newLocalWithSymbols("greek", 3, "alpha", "beta", "gamma")
	require.NoError(t, err)
	cat := NewCatalog(v1, v3)

	got := cat.GetTable("greek", 2)
	assert.Same(t, v3, got)
}

func TestCatalogMissReturnsNil(t *testing.T) {
	cat := NewCatalog()
	assert.Nil(t, cat.GetTable("absent", 1))
}

func TestCatalogDesc(t *testing.T) {
	cases := []struct {
		desc    string
		tables  []*Table
		lookup  string
		version int
		wantNil bool
	}{
		{desc: "empty catalog misses", tables: nil, lookup: "x", version: 1, wantNil: true},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			cat := NewCatalog(c.tables...)
			got := cat.GetTable(c.lookup, c.version)
			if c.wantNil {
				assert.Nil(t, got)
			} else {
				assert.NotNil(t, got)
			}
		})
	}
}
