// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package driller

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Driller resolves a dotted path against a JSON document. Segments may carry
// an explicit [N] index; without one, a single-element array is drilled
// through transparently so diagnostics that wrap their payload in a
// one-element array read the same as bare objects. A multi-element array with
// no index is returned as-is.
func Driller(json, path string) gjson.Result {
	result := gjson.Parse(json)

	for _, segment := range strings.Split(path, ".") {
		key, index, indexed := splitIndex(segment)

		result = result.Get(key)
		if !result.Exists() {
			return gjson.Result{}
		}

		if indexed {
			arr := result.Array()
			if index < 0 || index >= len(arr) {
				return gjson.Result{}
			}
			result = arr[index]
			continue
		}

		if result.IsArray() {
			if arr := result.Array(); len(arr) == 1 {
				result = arr[0]
			}
		}
	}

	return result
}

// splitIndex separates a trailing [N] from a path segment.
func splitIndex(segment string) (key string, index int, ok bool) {
	open := strings.IndexByte(segment, '[')
	if open < 0 || !strings.HasSuffix(segment, "]") {
		return segment, 0, false
	}
	n, err := strconv.Atoi(segment[open+1 : len(segment)-1])
	if err != nil {
		return segment, 0, false
	}
	return segment[:open], n, true
}
