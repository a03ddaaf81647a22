// SPDX-License-Identifier: MIT

package requirements

import (
	"github.com/katalvlaran/fosgen/sop"
	"github.com/katalvlaran/fosgen/swapper"
)

// Appraiser names, as shown by swapper.FormatScores.
const (
	NameAllSopsRepresented  = "AllSopsRepresented"
	NameAllDirectOptions    = "AllDirectOptions"
	NameScheduleRepeatLimit = "ScheduleRepeatLimit"
	NameRcOnlines           = "RcOnlines"
)

type allSopsRepresented struct {
	idx *entryIndex
}

func (a *allSopsRepresented) Name() string { return NameAllSopsRepresented }

func (a *allSopsRepresented) Score(c sop.Combination) swapper.Score {
	unique := 0
	for _, e := range c.Entries() {
		if a.idx.others(e, c) == 0 {
			unique++
		}
	}
	if unique == 0 {
		return swapper.Score{Category: swapper.Ignore}
	}

	return swapper.Score{Category: swapper.MustHave, Value: unique}
}

func (a *allSopsRepresented) Added(c sop.Combination) []sop.Combination {
	a.idx.add(c)
	return a.idx.holdersOf(c, func(n int) bool { return n == 2 })
}

func (a *allSopsRepresented) Removed(c sop.Combination) []sop.Combination {
	a.idx.remove(c)
	return a.idx.holdersOf(c, func(n int) bool { return n == 1 })
}

type allDirectOptions struct {
	t *Tracker
}

func (a *allDirectOptions) Name() string { return NameAllDirectOptions }

func (a *allDirectOptions) Score(c sop.Combination) swapper.Score {
	if a.t.IsAllDirect(c) {
		return swapper.Score{Category: swapper.WantToHave}
	}

	return swapper.Score{Category: swapper.Ignore}
}

func (a *allDirectOptions) Added(sop.Combination) []sop.Combination   { return nil }
func (a *allDirectOptions) Removed(sop.Combination) []sop.Combination { return nil }

type scheduleRepeatLimit struct {
	idx *entryIndex
	srl int
}

func (a *scheduleRepeatLimit) Name() string { return NameScheduleRepeatLimit }

func (a *scheduleRepeatLimit) Score(c sop.Combination) swapper.Score {
	resident := a.idx.resident(c)
	for _, e := range c.Entries() {
		n := a.idx.count(e)
		if !resident {
			n++
		}
		if n > a.srl {
			return swapper.Score{Category: swapper.Discard}
		}
	}

	return swapper.Score{Category: swapper.Ignore}
}

// Added reports the residents sharing a SOP that c pushed over the limit.
func (a *scheduleRepeatLimit) Added(c sop.Combination) []sop.Combination {
	a.idx.add(c)
	return a.idx.holdersOf(c, func(n int) bool { return n == a.srl+1 })
}

// Removed reports the residents sharing a SOP that is back at the limit.
func (a *scheduleRepeatLimit) Removed(c sop.Combination) []sop.Combination {
	a.idx.remove(c)
	return a.idx.holdersOf(c, func(n int) bool { return n == a.srl })
}

type rcOnlines struct {
	t *Tracker
}

func (a *rcOnlines) Name() string { return NameRcOnlines }

func (a *rcOnlines) Score(c sop.Combination) swapper.Score {
	if a.t.IsOnline(c) {
		return swapper.Score{Category: swapper.NiceToHave}
	}

	return swapper.Score{Category: swapper.Ignore}
}

func (a *rcOnlines) Added(sop.Combination) []sop.Combination   { return nil }
func (a *rcOnlines) Removed(sop.Combination) []sop.Combination { return nil }
