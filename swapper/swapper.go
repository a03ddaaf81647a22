// SPDX-License-Identifier: MIT

package swapper

import (
	"container/heap"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/fosgen/sop"
)

// Swapper is a bounded best-of-N set of combinations.
type Swapper struct {
	capacity   int
	appraisers []Appraiser

	items map[string]*item
	worst residentHeap
	seq   uint64

	noProgress int

	subs    map[int]func(Event)
	subSeq  int
	subKeys []int // subscription order
}

// New returns an empty swapper holding at most capacity combinations.
func New(capacity int, appraisers ...Appraiser) (*Swapper, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("New(capacity=%d): %w", capacity, ErrBadCapacity)
	}

	return &Swapper{
		capacity:   capacity,
		appraisers: append([]Appraiser(nil), appraisers...),
		items:      make(map[string]*item, capacity),
		worst:      make(residentHeap, 0, capacity),
		subs:       make(map[int]func(Event)),
	}, nil
}

// Insert offers c to the set. While there is room every new combination is
// accepted, whatever its scores; scores only decide evictions once the set
// is full.
func (s *Swapper) Insert(c sop.Combination) Result {
	// 1) Duplicates never change the set.
	key := c.Key()
	if _, ok := s.items[key]; ok {
		s.noProgress++
		return Result{Status: Duplicate}
	}

	// 2) Score the newcomer against the current residents.
	scores := s.score(c)
	res := Result{Status: Added, Scores: scores}

	// 3) Full: the newcomer must strictly beat the worst resident.
	if len(s.items) >= s.capacity {
		w := s.worst[0]
		if scores.Compare(w.scores) <= 0 {
			s.noProgress++
			res.Status = Rejected
			return res
		}
		s.remove(w)
		res.Status = Swapped
		res.Evicted = w.comb
	}

	// 4) Accept.
	s.add(c.Clone(), key)
	s.noProgress = 0

	return res
}

// Remove drops a resident combination.
func (s *Swapper) Remove(c sop.Combination) error {
	it, ok := s.items[c.Key()]
	if !ok {
		return fmt.Errorf("Remove(%s): %w", c, ErrNotFound)
	}
	s.remove(it)

	return nil
}

// Contains reports whether c is resident.
func (s *Swapper) Contains(c sop.Combination) bool {
	_, ok := s.items[c.Key()]
	return ok
}

// Len returns the number of residents.
func (s *Swapper) Len() int { return len(s.items) }

// Capacity returns the configured capacity.
func (s *Swapper) Capacity() int { return s.capacity }

// IsFull reports whether Len reached Capacity.
func (s *Swapper) IsFull() bool { return len(s.items) >= s.capacity }

// NoProgress returns the consecutive no-progress count.
func (s *Swapper) NoProgress() int { return s.noProgress }

// ResetNoProgress zeroes the no-progress counter.
func (s *Swapper) ResetNoProgress() { s.noProgress = 0 }

// Appraisers returns the registered appraisers in order.
func (s *Swapper) Appraisers() []Appraiser {
	return append([]Appraiser(nil), s.appraisers...)
}

// Worst returns the resident that would be evicted next, or nil.
func (s *Swapper) Worst() sop.Combination {
	if len(s.worst) == 0 {
		return nil
	}

	return s.worst[0].comb.Clone()
}

// ScoresOf returns the current scores of a resident.
func (s *Swapper) ScoresOf(c sop.Combination) (Scores, bool) {
	it, ok := s.items[c.Key()]
	if !ok {
		return nil, false
	}

	return append(Scores(nil), it.scores...), true
}

// Items returns the residents best first.
func (s *Swapper) Items() []sop.Combination {
	all := make([]*item, 0, len(s.items))
	for _, it := range s.items {
		all = append(all, it)
	}
	sort.Slice(all, func(i, j int) bool { return worse(all[j], all[i]) })

	out := make([]sop.Combination, len(all))
	for i, it := range all {
		out[i] = it.comb.Clone()
	}

	return out
}

// Subscribe registers fn for every later mutation event. Subscribers run
// synchronously, in subscription order.
func (s *Swapper) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := s.subSeq
	s.subSeq++
	s.subs[id] = fn
	s.subKeys = append(s.subKeys, id)

	return func() {
		if _, ok := s.subs[id]; !ok {
			return
		}
		delete(s.subs, id)
		for i, k := range s.subKeys {
			if k == id {
				s.subKeys = append(s.subKeys[:i], s.subKeys[i+1:]...)
				break
			}
		}
	}
}

// FormatScores renders a score vector with appraiser names.
func (s *Swapper) FormatScores(scores Scores) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, sc := range scores {
		if i > 0 {
			b.WriteString(", ")
		}
		name := "?"
		if i < len(s.appraisers) {
			name = s.appraisers[i].Name()
		}
		fmt.Fprintf(&b, "%s: %s/%d", name, sc.Category, sc.Value)
	}
	b.WriteByte(']')

	return b.String()
}

func (s *Swapper) score(c sop.Combination) Scores {
	out := make(Scores, len(s.appraisers))
	for i, a := range s.appraisers {
		out[i] = a.Score(c)
	}

	return out
}

func (s *Swapper) add(c sop.Combination, key string) {
	s.seq++
	it := &item{comb: c, key: key, seq: s.seq}
	s.items[key] = it

	// 1) Let appraisers record c and report residents whose score moved.
	var touched []sop.Combination
	for _, a := range s.appraisers {
		touched = append(touched, a.Added(c)...)
	}
	// 2) Score c as a resident, then refresh the others.
	it.scores = s.score(c)
	heap.Push(&s.worst, it)
	s.rescore(touched)

	s.publish(Event{Kind: EventAdded, Combination: c.Clone()})
}

func (s *Swapper) remove(it *item) {
	// 1) Drop it from the heap and the index first, so appraisers see the
	// set without it.
	heap.Remove(&s.worst, it.index)
	delete(s.items, it.key)

	// 2) Rescore the residents the appraisers report.
	var touched []sop.Combination
	for _, a := range s.appraisers {
		touched = append(touched, a.Removed(it.comb)...)
	}
	s.rescore(touched)

	s.publish(Event{Kind: EventRemoved, Combination: it.comb.Clone()})
}

// rescore refreshes the scores of the given residents; non-residents are skipped.
func (s *Swapper) rescore(cs []sop.Combination) {
	for _, c := range cs {
		it, ok := s.items[c.Key()]
		if !ok {
			continue
		}
		it.scores = s.score(it.comb)
		heap.Fix(&s.worst, it.index)
	}
}

func (s *Swapper) publish(ev Event) {
	for _, id := range append([]int(nil), s.subKeys...) {
		if fn, ok := s.subs[id]; ok {
			fn(ev)
		}
	}
}
