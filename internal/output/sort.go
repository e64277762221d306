// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"sort"
	"strings"
)

// sortKey is a single parsed --sort field.  A leading - sorts descending and
// a leading ! compares case-sensitively.
type sortKey struct {
	key           string
	descending    bool
	caseSensitive bool
}

// SortDataset sorts the result set in place per the provided spec.  Spec is a
// comma separated list of output keys, each optionally prefixed with - for
// descending order and/or ! for case-sensitive comparison.  An empty spec
// leaves the dataset untouched.
func SortDataset(dataset []map[string]interface{}, spec string) {
	if spec == "" {
		return
	}

	//nolint:prealloc // Don't prealloc because we don't know what len will be.
	var keys []sortKey
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)

		k := sortKey{}
		for len(field) > 0 {
			if strings.HasPrefix(field, "-") {
				k.descending = true
				field = field[1:]
			} else if strings.HasPrefix(field, "!") {
				k.caseSensitive = true
				field = field[1:]
			} else {
				break
			}
		}
		if field == "" {
			continue
		}
		k.key = field
		keys = append(keys, k)
	}

	sort.SliceStable(dataset, func(i, j int) bool {
		for _, k := range keys {
			c := compareValues(dataset[i][k.key], dataset[j][k.key], k.caseSensitive)
			if c == 0 {
				continue
			}
			if k.descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// compareValues orders two cell values.  Numbers compare numerically, which
// matters for version ranks; everything else compares as strings.
func compareValues(a, b interface{}, caseSensitive bool) int {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	as := InterfaceToString(a)
	bs := InterfaceToString(b)
	if !caseSensitive {
		as = strings.ToLower(as)
		bs = strings.ToLower(bs)
	}
	return strings.Compare(as, bs)
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
