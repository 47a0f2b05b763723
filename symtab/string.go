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
	"strconv"
	"strings"
)

// String renders a debug, text-Ion-shaped view of the table's structural
// value tree, built on top of StructuralView. It is diagnostic sugar, not
// a wire format: no escaping guarantees are made for symbol text
// containing quotes or control characters.
func (t *Table) String() string {
	view := t.StructuralView()
	var sb strings.Builder
	for _, a := range view.Annotations() {
		sb.WriteString(a)
		sb.WriteString("::")
	}
	writeValue(&sb, view)
	return sb.String()
}

func writeValue(sb *strings.Builder, v Value) {
	if v.IsNull() {
		sb.WriteString("null")
		return
	}
	switch vv := v.(type) {
	case *StructValue:
		sb.WriteByte('{')
		for i, f := range vv.Fields() {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeFieldName(sb, f)
			sb.WriteString(": ")
			fv, _ := vv.Get(f)
			writeValue(sb, fv)
		}
		sb.WriteByte('}')
	case *ListValue:
		sb.WriteByte('[')
		for i, item := range vv.Items() {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeValue(sb, item)
		}
		sb.WriteByte(']')
	case *ScalarValue:
		switch vv.Kind() {
		case KindStringValue:
			sb.WriteString(strconv.Quote(vv.StringValue()))
		case KindIntValue:
			fmt.Fprintf(sb, "%d", vv.IntValue())
		}
	}
}

func writeFieldName(sb *strings.Builder, name string) {
	if name == "" {
		sb.WriteString("''")
		return
	}
	for _, r := range name {
		if !(r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			sb.WriteString(strconv.Quote(name))
			return
		}
	}
	sb.WriteString(name)
}
