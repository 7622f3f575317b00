package model

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// UnlinkedSecondaryPrefix marks lab/tutorial labels that are not keyed to a lecture letter (e.g. "L1", "L2")
const UnlinkedSecondaryPrefix = 'L'

// Block is a course's contribution to a timetable: a lone primary section or a primary-secondary pair
type Block struct {
	sections []Section
}

func (block Block) Sections() []Section {
	return append([]Section(nil), block.sections...)
}

func (block Block) Primary() Section {
	return block.sections[0]
}

func (block Block) Secondary() (Section, bool) {
	if len(block.sections) < 2 {
		return Section{}, false
	}
	return block.sections[1], true
}

func (block Block) String() string {
	return strings.Join(lo.Map(block.sections, func(section Section, _ int) string { return section.Code }), " + ")
}

type ClassificationWarning struct {
	Course  string
	Section Section
	Reason  string
}

func (warning ClassificationWarning) Error() string {
	return fmt.Sprintf("course %v: section %q (registration %d) skipped: %v", warning.Course, warning.Section.Code, warning.Section.RegistrationNumber, warning.Reason)
}

// BuildBlocks splits a course's eligible sections into primaries and secondaries and pairs them into blocks.
// Sections that can not be classified are skipped and reported as warnings
func BuildBlocks(course string, sections []Section, blocked Timetable) ([]Block, []ClassificationWarning) {
	primaries, secondaries, warnings := partition(course, sections)

	blocks := make([]Block, 0, len(primaries)*max(1, len(secondaries)))
	for _, primary := range primaries {
		//** Lecture-only course
		if len(secondaries) == 0 {
			if block, ok := newBlock(blocked, primary); ok {
				blocks = append(blocks, block)
			}
			continue
		}

		//** Lecture paired with a lab/tutorial
		for _, secondary := range secondaries {
			if !unlinked(secondaries) && secondary.PairingKey() != primary.PairingKey() {
				continue
			}
			if block, ok := newBlock(blocked, primary, secondary); ok {
				blocks = append(blocks, block)
			}
		}
	}

	return blocks, warnings
}

func newBlock(blocked Timetable, sections ...Section) (Block, bool) {
	timetable := NewTimetable()
	if !timetable.InsertAll(sections, blocked) {
		return Block{}, false
	}
	return Block{sections: timetable.sections}, true
}

// A course whose secondaries all carry the unlinked prefix pairs every secondary with every primary
func unlinked(secondaries []Section) bool {
	return lo.EveryBy(secondaries, func(section Section) bool {
		return strings.HasPrefix(section.Label(), string(UnlinkedSecondaryPrefix))
	})
}

func partition(course string, sections []Section) (primaries, secondaries []Section, warnings []ClassificationWarning) {
	course = normalizeCourseCode(course)
	warn := func(section Section, reason string) {
		warnings = append(warnings, ClassificationWarning{Course: course, Section: section, Reason: reason})
	}

	for _, section := range sections {
		switch {
		case section.IsBlocked():
			warn(section, "blocked placeholders are not candidate sections")
		case normalizeCourseCode(section.CourseCode()) != course:
			warn(section, fmt.Sprintf("code does not belong to course %v", course))
		case section.Role() == Primary:
			primaries = append(primaries, section)
		case section.Role() == Secondary:
			secondaries = append(secondaries, section)
		default:
			warn(section, fmt.Sprintf("label %q is neither a lecture nor a lab/tutorial label", section.Label()))
		}
	}
	return primaries, secondaries, warnings
}

func normalizeCourseCode(code string) string {
	return strings.Join(strings.Fields(code), " ")
}
