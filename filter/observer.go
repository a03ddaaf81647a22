// SPDX-License-Identifier: MIT

package filter

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/fosgen/sop"
)

// Observer is told about every rejection, with the refusing predicate's name.
type Observer interface {
	CandidateRejected(c sop.Candidate, by string)
	CombinationRejected(c sop.Combination, by string)
}

// LogObserver writes rejections to a zap logger at debug level.
type LogObserver struct {
	log    *zap.Logger
	prefix string
}

// NewLogObserver returns an observer logging with prefix, e.g.
// "[ASR] Sop combination". A nil logger logs nothing.
func NewLogObserver(log *zap.Logger, prefix string) *LogObserver {
	if log == nil {
		log = zap.NewNop()
	}

	return &LogObserver{log: log, prefix: prefix}
}

func (o *LogObserver) CandidateRejected(c sop.Candidate, by string) {
	o.log.Debug(o.prefix+" rejected",
		zap.Int("leg", c.Leg),
		zap.Int("sop", c.Sop),
		zap.String("by", by),
	)
}

func (o *LogObserver) CombinationRejected(c sop.Combination, by string) {
	o.log.Debug(o.prefix+" rejected",
		zap.Stringer("combination", c),
		zap.String("by", by),
	)
}

// ObserverFuncs adapts plain functions to Observer; nil fields are skipped.
type ObserverFuncs struct {
	Candidate   func(c sop.Candidate, by string)
	Combination func(c sop.Combination, by string)
}

func (f ObserverFuncs) CandidateRejected(c sop.Candidate, by string) {
	if f.Candidate != nil {
		f.Candidate(c, by)
	}
}

func (f ObserverFuncs) CombinationRejected(c sop.Combination, by string) {
	if f.Combination != nil {
		f.Combination(c, by)
	}
}
