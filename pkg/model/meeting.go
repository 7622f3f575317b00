package model

import (
	"errors"
	"fmt"
)

type Day int

const (
	NoDay Day = iota // Sentinel for a meeting that has no second day
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
)

var dayNames = map[Day]string{
	NoDay:     "None",
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
}

func (day Day) String() string {
	if name, ok := dayNames[day]; ok {
		return name
	}
	return fmt.Sprintf("Day(%d)", int(day))
}

func (day Day) valid() bool {
	return day >= Monday && day <= Friday
}

// Parity values follow the catalog's week-frequency column: 0 every week, 1 odd weeks, 2 even weeks
type Parity int

const (
	Weekly Parity = iota
	OddWeek
	EvenWeek
)

var parityNames = map[Parity]string{
	Weekly:   "weekly",
	OddWeek:  "odd",
	EvenWeek: "even",
}

func (parity Parity) String() string {
	if name, ok := parityNames[parity]; ok {
		return name
	}
	return fmt.Sprintf("Parity(%d)", int(parity))
}

func ParseParity(value string) (Parity, error) {
	for parity, name := range parityNames {
		if name == value {
			return parity, nil
		}
	}
	return 0, &ValidationError{Field: "parity", Reason: fmt.Sprintf("unknown parity %q", value), err: ErrInvalidParity}
}

const MinutesPerDay = 24 * 60

var (
	ErrInvalidDay        = errors.New("day must be between Monday (1) and Friday (5)")
	ErrDuplicateDay      = errors.New("meeting days must be distinct")
	ErrInvalidParity     = errors.New("parity must be weekly, odd or even")
	ErrInvalidTimeWindow = errors.New("end time must be after start time within the same day")
)

type ValidationError struct {
	Field  string
	Reason string
	err    error
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("invalid %v: %v", err.Field, err.Reason)
}

func (err *ValidationError) Unwrap() error {
	return err.err
}

// Meeting is a weekly (or biweekly) time commitment. Times are minutes since midnight.
type Meeting struct {
	Days      [2]Day
	Parity    Parity
	StartTime int
	EndTime   int
	OpenEnded bool // Overlaps every time window; only placeholder blocks set it
}

// NewMeeting validates its arguments; days holds one or two distinct weekdays
func NewMeeting(days []Day, parity Parity, startTime, endTime int) (Meeting, error) {
	meeting, err := newMeetingDays(days, parity)
	if err != nil {
		return Meeting{}, err
	}

	if startTime < 0 || endTime > MinutesPerDay || endTime <= startTime {
		return Meeting{}, &ValidationError{
			Field:  "time window",
			Reason: fmt.Sprintf("[%d, %d) is not a valid window", startTime, endTime),
			err:    ErrInvalidTimeWindow,
		}
	}
	meeting.StartTime, meeting.EndTime = startTime, endTime
	return meeting, nil
}

func newMeetingDays(days []Day, parity Parity) (Meeting, error) {
	if len(days) == 0 || len(days) > 2 {
		return Meeting{}, &ValidationError{Field: "days", Reason: fmt.Sprintf("expected 1 or 2 days, got %d", len(days)), err: ErrInvalidDay}
	}
	for _, day := range days {
		if !day.valid() {
			return Meeting{}, &ValidationError{Field: "days", Reason: fmt.Sprintf("%v is out of range", int(day)), err: ErrInvalidDay}
		}
	}
	if len(days) == 2 && days[0] == days[1] {
		return Meeting{}, &ValidationError{Field: "days", Reason: fmt.Sprintf("%v appears twice", days[0]), err: ErrDuplicateDay}
	}
	if _, ok := parityNames[parity]; !ok {
		return Meeting{}, &ValidationError{Field: "parity", Reason: fmt.Sprintf("%d is out of range", int(parity)), err: ErrInvalidParity}
	}

	meeting := Meeting{Parity: parity}
	copy(meeting.Days[:], days)
	return meeting, nil
}

// MeetingDays returns the real days of the meeting, skipping the no-second-day sentinel
func (meeting Meeting) MeetingDays() []Day {
	if meeting.Days[1] == NoDay {
		return []Day{meeting.Days[0]}
	}
	return []Day{meeting.Days[0], meeting.Days[1]}
}
