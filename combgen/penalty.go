// SPDX-License-Identifier: MIT

package combgen

// Penalty defaults. They are empirically tuned; changing them changes which
// combinations are returned.
const (
	DefaultPenaltyExponent  = 3
	DefaultPenaltyThreshold = 50
	DefaultPenaltyCeiling   = 125000
)

// PenaltyPolicy turns a usage count into a penalty.
//
//	usage == 0              → 0
//	0 < usage < Threshold   → (usage+1)^Exponent, capped at Ceiling
//	usage >= Threshold      → Ceiling
//
// SOPs of the return-all-flights leg get Ceiling as soon as usage > 0.
type PenaltyPolicy struct {
	Exponent  int `yaml:"exponent" validate:"gte=1"`
	Threshold int `yaml:"threshold" validate:"gte=1"`
	Ceiling   int `yaml:"ceiling" validate:"gte=1"`
}

// DefaultPenaltyPolicy returns the cube policy clamped at 125000.
func DefaultPenaltyPolicy() PenaltyPolicy {
	return PenaltyPolicy{
		Exponent:  DefaultPenaltyExponent,
		Threshold: DefaultPenaltyThreshold,
		Ceiling:   DefaultPenaltyCeiling,
	}
}

// Penalty returns the penalty of a SOP used usage times.
func (p PenaltyPolicy) Penalty(usage int) int {
	if usage <= 0 {
		return 0
	}
	if usage >= p.Threshold {
		return p.Ceiling
	}
	base := usage + 1
	out := 1
	for i := 0; i < p.Exponent; i++ {
		out *= base
		if out >= p.Ceiling {
			return p.Ceiling
		}
	}

	return out
}

// PenaltyRecord is the ranking state of one SOP.
type PenaltyRecord struct {
	Sop        int
	UsageCount int
	Penalty    int

	// Rank = Sop + Penalty; ascending rank is the draw order.
	Rank int
}

// Record builds the PenaltyRecord of SOP id used usage times.
// returnAllFlights marks SOPs of the return-all-flights leg.
func (p PenaltyPolicy) Record(id, usage int, returnAllFlights bool) PenaltyRecord {
	pen := p.Penalty(usage)
	if returnAllFlights && usage > 0 {
		pen = p.Ceiling
	}

	return PenaltyRecord{Sop: id, UsageCount: usage, Penalty: pen, Rank: id + pen}
}
