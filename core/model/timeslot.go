package model

import "fmt"

// TimeSlot identifies one period of the weekly grid. Days and periods are
// 1-based.
type TimeSlot struct {
	Day    int `json:"day"`
	Period int `json:"period"`
}

// String renders the slot as "day-period", the form used in logs.
func (s TimeSlot) String() string {
	return fmt.Sprintf("%d-%d", s.Day, s.Period)
}

// TimeGrid enumerates the valid slots of a week. It is built once per run and
// shared read-only across scheduling attempts.
type TimeGrid struct {
	Days    int
	Periods int
	slots   []TimeSlot
}

// NewTimeGrid creates a grid of days x periods slots in day-major order.
func NewTimeGrid(days, periods int) *TimeGrid {
	g := &TimeGrid{Days: days, Periods: periods}
	g.slots = make([]TimeSlot, 0, days*periods)
	for d := 1; d <= days; d++ {
		for p := 1; p <= periods; p++ {
			g.slots = append(g.slots, TimeSlot{Day: d, Period: p})
		}
	}
	return g
}

// DefaultGrid returns the standard school week of 5 days with 10 periods each.
func DefaultGrid() *TimeGrid {
	return NewTimeGrid(5, 10)
}

// Slots returns the full slot list. Callers must not mutate it.
func (g *TimeGrid) Slots() []TimeSlot {
	return g.slots
}

// Len returns the number of slots in the grid.
func (g *TimeGrid) Len() int {
	return len(g.slots)
}

// Contains reports whether the slot lies inside the grid bounds.
func (g *TimeGrid) Contains(s TimeSlot) bool {
	return s.Day >= 1 && s.Day <= g.Days && s.Period >= 1 && s.Period <= g.Periods
}
