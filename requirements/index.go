// SPDX-License-Identifier: MIT

package requirements

import "github.com/katalvlaran/fosgen/sop"

// entryIndex maps every SOP to the residents holding it. add and remove are
// idempotent so each appraiser may sync it from its own hooks.
type entryIndex struct {
	residents map[string]struct{}
	holders   map[sop.Entry]map[string]sop.Combination
}

func newEntryIndex() *entryIndex {
	return &entryIndex{
		residents: make(map[string]struct{}),
		holders:   make(map[sop.Entry]map[string]sop.Combination),
	}
}

func (x *entryIndex) resident(c sop.Combination) bool {
	_, ok := x.residents[c.Key()]
	return ok
}

func (x *entryIndex) add(c sop.Combination) {
	key := c.Key()
	if _, ok := x.residents[key]; ok {
		return
	}
	x.residents[key] = struct{}{}
	for _, e := range c.Entries() {
		hs := x.holders[e]
		if hs == nil {
			hs = make(map[string]sop.Combination)
			x.holders[e] = hs
		}
		hs[key] = c
	}
}

func (x *entryIndex) remove(c sop.Combination) {
	key := c.Key()
	if _, ok := x.residents[key]; !ok {
		return
	}
	delete(x.residents, key)
	for _, e := range c.Entries() {
		delete(x.holders[e], key)
		if len(x.holders[e]) == 0 {
			delete(x.holders, e)
		}
	}
}

// others returns how many residents other than c hold e.
func (x *entryIndex) others(e sop.Entry, c sop.Combination) int {
	hs := x.holders[e]
	if _, ok := hs[c.Key()]; ok {
		return len(hs) - 1
	}

	return len(hs)
}

// count returns how many residents hold e.
func (x *entryIndex) count(e sop.Entry) int { return len(x.holders[e]) }

// maxCount returns the largest holder count over all SOPs.
func (x *entryIndex) maxCount() int {
	m := 0
	for _, hs := range x.holders {
		if len(hs) > m {
			m = len(hs)
		}
	}

	return m
}

// holdersOf returns the residents other than c sharing a SOP with c.
func (x *entryIndex) holdersOf(c sop.Combination, onlyWhen func(n int) bool) []sop.Combination {
	key := c.Key()
	seen := make(map[string]struct{})
	var out []sop.Combination
	for _, e := range c.Entries() {
		hs := x.holders[e]
		if !onlyWhen(len(hs)) {
			continue
		}
		for k, h := range hs {
			if k == key {
				continue
			}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, h)
		}
	}

	return out
}
