package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type RawBlockedPeriod struct {
	Days      []Day
	StartTime int  `mapstructure:"startTime"`
	EndTime   int  `mapstructure:"endTime"`
	OpenEnded bool `mapstructure:"openEnded"`
}

type RawInput struct {
	Semester string // Default semester for courses that do not state one
	Courses  []CourseRequest
	Blocked  []RawBlockedPeriod
}

type Input struct {
	Courses []CourseRequest
	Blocked Timetable
}

func InputFromJson(file string) (Input, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Input{}, err
	}
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Input{}, err
	}

	var rawInput RawInput
	if err := mapstructure.Decode(inputJson, &rawInput); err != nil {
		return Input{}, fmt.Errorf("cannot decode input: %w", err)
	}
	return ProcessRawInput(rawInput)
}

func ProcessRawInput(rawInput RawInput) (Input, error) {
	if len(rawInput.Courses) == 0 {
		return Input{}, fmt.Errorf("at least one course must be requested")
	}

	courses := lo.Map(rawInput.Courses, func(course CourseRequest, _ int) CourseRequest {
		course.Code = normalizeCourseCode(course.Code)
		if course.Semester == "" {
			course.Semester = rawInput.Semester
		}
		return course
	})

	// Make sure each course is requested once and names its semester
	seen := make(map[string]bool)
	for _, course := range courses {
		if course.Code == "" {
			return Input{}, fmt.Errorf("course code must not be empty")
		} else if course.Semester == "" {
			return Input{}, fmt.Errorf("course %v has no semester", course.Code)
		} else if seen[course.Code] {
			return Input{}, fmt.Errorf("course %v is requested more than once", course.Code)
		}
		seen[course.Code] = true
	}

	blocked := make([]Section, 0, len(rawInput.Blocked))
	for i, period := range rawInput.Blocked {
		var (
			section Section
			err     error
		)
		if period.OpenEnded {
			section, err = NewOpenEndedBlock(period.Days)
		} else {
			section, err = NewBlockedSection(period.Days, period.StartTime, period.EndTime)
		}
		if err != nil {
			return Input{}, fmt.Errorf("blocked period %d: %w", i, err)
		}
		blocked = append(blocked, section)
	}

	return Input{
		Courses: courses,
		Blocked: NewBlockedTimetable(blocked...),
	}, nil
}
