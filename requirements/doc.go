// SPDX-License-Identifier: MIT

// Package requirements scores combinations against the FOS requirements
// and answers whether each requirement is met.
//
// Appraisers, registered with the swapper in this fixed order:
//
//  1. AllSopsRepresented  - MustHave while the combination holds a SOP no
//     other resident holds (Value = number of such SOPs), Ignore otherwise.
//  2. AllDirectOptions    - only when all-direct is requested. WantToHave for
//     combinations direct on every leg.
//  3. ScheduleRepeatLimit - only when SRL > 0. Discard while a SOP of the
//     combination is held by more than SRL residents (newcomer counted),
//     Ignore otherwise. A Discard newcomer still fills free room; once the
//     set is full the violators are the first to be swapped out.
//  4. RcOnlines           - NiceToHave for combinations online for the
//     requesting carrier on every leg.
//
// Tracker owns the swapper and the usage tracker. Insert records one use of
// every tracked SOP of an accepted combination.
//
// Satisfaction:
//
//	AllSopsRepresented  usage.UnusedCount() == 0
//	AllDirectOptions    not requested, or direct residents >= direct target
//	RcOnlines           online residents >= RCO target
//	ScheduleRepeatLimit SRL == 0, or no SOP held by more than SRL residents
//	RequestedCount      residents >= Q
package requirements
