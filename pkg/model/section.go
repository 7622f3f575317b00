package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

type Role uint8

const (
	Unclassified Role = iota // Label matches neither the lecture nor the lab/tutorial shape
	Primary
	Secondary
)

var roleNames = map[Role]string{
	Unclassified: "unclassified",
	Primary:      "primary",
	Secondary:    "secondary",
}

func (role Role) String() string {
	return roleNames[role]
}

// Section is one offered meeting pattern of a course. Build it with NewSection so that Role and label are derived once
type Section struct {
	Meeting
	RegistrationNumber int
	Code               string // "DEPT NUM LABEL"
	Title              string

	role  Role
	label string
}

func NewSection(registrationNumber int, code, title string, meeting Meeting) (Section, error) {
	// Revalidate in case the meeting was assembled by hand
	var err error
	if meeting.OpenEnded {
		_, err = newMeetingDays(meeting.MeetingDays(), meeting.Parity)
	} else {
		_, err = NewMeeting(meeting.MeetingDays(), meeting.Parity, meeting.StartTime, meeting.EndTime)
	}
	if err != nil {
		return Section{}, fmt.Errorf("section %q: %w", code, err)
	}

	section := Section{
		Meeting:            meeting,
		RegistrationNumber: registrationNumber,
		Code:               strings.TrimSpace(code),
		Title:              title,
	}
	section.role, section.label = classifyLabel(section.Code)
	return section, nil
}

// NewBlockedSection builds the placeholder for a user-declared busy window
func NewBlockedSection(days []Day, startTime, endTime int) (Section, error) {
	meeting, err := NewMeeting(days, Weekly, startTime, endTime)
	if err != nil {
		return Section{}, fmt.Errorf("blocked period: %w", err)
	}
	return Section{Meeting: meeting}, nil
}

// NewOpenEndedBlock builds a placeholder that blocks the given days entirely
func NewOpenEndedBlock(days []Day) (Section, error) {
	meeting, err := newMeetingDays(days, Weekly)
	if err != nil {
		return Section{}, fmt.Errorf("blocked period: %w", err)
	}
	meeting.OpenEnded = true
	return Section{Meeting: meeting}, nil
}

func (section Section) Role() Role {
	return section.role
}

func (section Section) Label() string {
	return section.label
}

// CourseCode returns the code without its trailing label ("DEPT NUM")
func (section Section) CourseCode() string {
	fields := strings.Fields(section.Code)
	if len(fields) < 2 {
		return section.Code
	}
	return strings.Join(fields[:len(fields)-1], " ")
}

// PairingKey is the full label of a primary section and the first character of a secondary one
func (section Section) PairingKey() string {
	switch section.role {
	case Primary:
		return section.label
	case Secondary:
		return string([]rune(section.label)[0])
	default:
		return ""
	}
}

func (section Section) IsBlocked() bool {
	return section.RegistrationNumber == 0 && section.Code == ""
}

func (section Section) String() string {
	if section.IsBlocked() {
		return fmt.Sprintf("blocked %v", section.describeMeeting())
	}
	return section.Code
}

func (section Section) describeMeeting() string {
	days := strings.Join(lo.Map(section.MeetingDays(), func(day Day, _ int) string { return day.String() }), "/")
	if section.OpenEnded {
		return days
	}
	return fmt.Sprintf("%v %02d:%02d-%02d:%02d", days, section.StartTime/60, section.StartTime%60, section.EndTime/60, section.EndTime%60)
}

// A lecture label is a single word character, a lab/tutorial label has two or three
func classifyLabel(code string) (Role, string) {
	fields := strings.Fields(code)
	if len(fields) < 2 {
		return Unclassified, ""
	}
	label := fields[len(fields)-1]
	runes := []rune(label)

	if !lo.EveryBy(runes, isWordRune) {
		return Unclassified, label
	}
	switch len(runes) {
	case 1:
		return Primary, label
	case 2, 3:
		return Secondary, label
	default:
		return Unclassified, label
	}
}

func isWordRune(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}

type sectionJson struct {
	RegistrationNumber int    `json:"registration_number"`
	Code               string `json:"code"`
	Title              string `json:"title"`
	Days               []Day  `json:"days"`
	Parity             string `json:"parity"`
	StartTime          int    `json:"start_time"`
	EndTime            int    `json:"end_time"`
	OpenEnded          bool   `json:"open_ended,omitempty"`
	Role               string `json:"role,omitempty"`
}

func (section Section) MarshalJSON() ([]byte, error) {
	raw := sectionJson{
		RegistrationNumber: section.RegistrationNumber,
		Code:               section.Code,
		Title:              section.Title,
		Days:               section.MeetingDays(),
		Parity:             section.Parity.String(),
		StartTime:          section.StartTime,
		EndTime:            section.EndTime,
		OpenEnded:          section.OpenEnded,
	}
	if !section.IsBlocked() {
		raw.Role = section.role.String()
	}
	return json.Marshal(raw)
}

// UnmarshalJSON goes through the same validation as NewSection
func (section *Section) UnmarshalJSON(data []byte) error {
	var raw sectionJson
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parity := Weekly
	if raw.Parity != "" {
		var err error
		if parity, err = ParseParity(raw.Parity); err != nil {
			return err
		}
	}

	var (
		decoded Section
		err     error
	)
	switch {
	case raw.OpenEnded:
		decoded, err = NewOpenEndedBlock(raw.Days)
	case raw.RegistrationNumber == 0 && raw.Code == "":
		decoded, err = NewBlockedSection(raw.Days, raw.StartTime, raw.EndTime)
	default:
		var meeting Meeting
		if meeting, err = NewMeeting(raw.Days, parity, raw.StartTime, raw.EndTime); err == nil {
			decoded, err = NewSection(raw.RegistrationNumber, raw.Code, raw.Title, meeting)
		}
	}
	if err != nil {
		return err
	}

	*section = decoded
	return nil
}
