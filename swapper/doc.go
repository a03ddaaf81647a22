// SPDX-License-Identifier: MIT

// Package swapper implements a bounded ranked set of SOP combinations.
//
// A Swapper holds at most Capacity combinations. Every registered Appraiser
// scores a combination with a Score{Category, Value}; the score vector is
// compared lexicographically in registration order (Category first, then
// Value, higher is better). When the set is full a newcomer replaces the
// current worst resident only if its score vector is strictly better.
// Among residents with equal scores the most recently inserted one is the
// worst, so older residents are kept.
//
// Appraisers keep their own view of the residents: the swapper notifies them
// through Added and Removed, and they answer with the residents whose score
// changed. Those are rescored immediately, so the worst resident is always
// known in O(1).
//
// While the set has room every new combination is accepted, including one
// whose vector holds a Discard score; scores only matter once the set is
// full.
//
// Every insert attempt updates the no-progress counter: it resets to 0 when a
// combination is accepted (with or without eviction) and increments on
// Rejected and Duplicate.
//
// Mutations are published as Event values to subscribers, in the order they
// happen: an eviction publishes EventRemoved before the EventAdded of the
// newcomer.
//
// Errors:
//
//	ErrBadCapacity - New with capacity <= 0.
//	ErrNotFound    - Remove of a combination that is not resident.
//
// Complexity: Insert and Remove are O(A·(1+k)·log Q) for A appraisers, k
// residents rescored per notification and capacity Q.
//
// A Swapper is not safe for concurrent use.
package swapper
