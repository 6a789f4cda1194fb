// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package access

import "strings"

// AllowList is an ordered, de-duplicated set of caller addresses.
//
// Matching is exact string comparison; no CIDR ranges or address
// normalization. An empty AllowList allows nobody.
type AllowList struct {
	entries []string
	index   map[string]struct{}
}

// ParseAllowList parses a comma-separated list of addresses.
// Entries are trimmed and empty entries are dropped. The first occurrence
// of a duplicate wins.
func ParseAllowList(raw string) AllowList {
	var list AllowList
	for _, part := range strings.Split(raw, ",") {
		addr := strings.TrimSpace(part)
		if addr == "" {
			continue
		}
		if list.index == nil {
			list.index = make(map[string]struct{})
		}
		if _, dup := list.index[addr]; dup {
			continue
		}
		list.index[addr] = struct{}{}
		list.entries = append(list.entries, addr)
	}
	return list
}

// Contains reports whether addr is on the list.
func (l AllowList) Contains(addr string) bool {
	if addr == "" {
		return false
	}
	_, ok := l.index[addr]
	return ok
}

// Len returns the number of distinct addresses.
func (l AllowList) Len() int {
	return len(l.entries)
}

// IsEmpty reports whether the list denies everyone.
func (l AllowList) IsEmpty() bool {
	return len(l.entries) == 0
}

// Addresses returns a copy of the entries in their original order.
func (l AllowList) Addresses() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// String returns the list in its canonical comma-separated form.
func (l AllowList) String() string {
	return strings.Join(l.entries, ",")
}
