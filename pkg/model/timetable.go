package model

import (
	"encoding/json"
	"slices"
)

// Timetable is an insertion-ordered, conflict-free list of sections
type Timetable struct {
	sections []Section
}

func NewTimetable() Timetable {
	return Timetable{}
}

// NewBlockedTimetable collects placeholder sections; it is only ever checked against, never merged
func NewBlockedTimetable(blocked ...Section) Timetable {
	return Timetable{sections: slices.Clone(blocked)}
}

// Insert appends section if it conflicts with neither the timetable's sections nor the blocked ones.
// On failure the timetable is left untouched
func (timetable *Timetable) Insert(section Section, blocked Timetable) bool {
	if collides(timetable.sections, section) || collides(blocked.sections, section) {
		return false
	}
	timetable.sections = append(timetable.sections, section)
	return true
}

// InsertAll inserts every section in order and reports whether all of them were accepted.
// The timetable is modified only when every insertion succeeds
func (timetable *Timetable) InsertAll(sections []Section, blocked Timetable) bool {
	candidate := timetable.Clone()
	for _, section := range sections {
		if !candidate.Insert(section, blocked) {
			return false
		}
	}
	*timetable = candidate
	return true
}

// Clone returns a timetable that shares no backing storage with the original
func (timetable Timetable) Clone() Timetable {
	return Timetable{sections: slices.Clip(slices.Clone(timetable.sections))}
}

func (timetable Timetable) Sections() []Section {
	return slices.Clone(timetable.sections)
}

func (timetable Timetable) Len() int {
	return len(timetable.sections)
}

func (timetable Timetable) Empty() bool {
	return len(timetable.sections) == 0
}

// RegistrationNumbers identifies the timetable's content independently of insertion order
func (timetable Timetable) RegistrationNumbers() []int {
	numbers := make([]int, 0, len(timetable.sections))
	for _, section := range timetable.sections {
		numbers = append(numbers, section.RegistrationNumber)
	}
	slices.Sort(numbers)
	return numbers
}

func (timetable Timetable) MarshalJSON() ([]byte, error) {
	sections := timetable.sections
	if sections == nil {
		sections = []Section{}
	}
	return json.Marshal(struct {
		Sections []Section `json:"sections"`
	}{sections})
}

func collides(sections []Section, section Section) bool {
	for _, other := range sections {
		if Conflicts(other.Meeting, section.Meeting) {
			return true
		}
	}
	return false
}
