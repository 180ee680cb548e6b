// Package engine implements the timetable scheduling core: a conflict
// tracker with O(1) occupancy queries, a randomized constraint-aware
// candidate generator, a greedy most-constrained-first assigner and a
// best-of-N runner that scores completed attempts by teacher workload
// variance, daily gaps and short-day penalties.
package engine
