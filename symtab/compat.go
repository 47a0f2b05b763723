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

// IsCompatible reports whether t can fully stand in for other: every
// non-null (sid, text) entry in other must resolve, in t, to that exact
// sid. The check is asymmetric by design.
func (t *Table) IsCompatible(other *Table) bool {
	if other == nil {
		return false
	}
	for sid := int64(1); sid <= other.maxID; sid++ {
		if sid >= int64(len(other.entries)) {
			break
		}
		e := other.entries[sid]
		if e == nil {
			continue
		}
		text, ok := e.Text()
		if !ok {
			continue
		}
		got, err := t.FindSIDByText(text)
		if err != nil || got != sid {
			return false
		}
	}
	return true
}
