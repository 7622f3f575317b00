package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/limaJavier/coursetable/pkg/model"
)

var ErrInvalidFilter = errors.New("invalid include filter")

// Record is a catalog row: one offered section of a course in a semester.
// WeekFrequency is 0 for every week, 1 for odd weeks and 2 for even weeks
type Record struct {
	RegistrationNumber int    `gorm:"primaryKey;autoIncrement:false" mapstructure:"registrationNumber"`
	Code               string `gorm:"type:varchar(15);not null;index" mapstructure:"code"`
	Title              string `gorm:"type:varchar(120);not null" mapstructure:"title"`
	Semester           string `gorm:"type:varchar(15);not null;index" mapstructure:"semester"`
	FirstDay           int    `gorm:"not null" mapstructure:"firstDay"`
	SecondDay          *int   `mapstructure:"secondDay"`
	WeekFrequency      int    `gorm:"not null" mapstructure:"weekFrequency"`
	StartTime          int    `gorm:"not null" mapstructure:"startTime"`
	EndTime            int    `gorm:"not null" mapstructure:"endTime"`
}

func (Record) TableName() string { return "course_data" }

// Section converts the record, failing on any malformed meeting
func (record Record) Section() (model.Section, error) {
	days := []model.Day{model.Day(record.FirstDay)}
	if record.SecondDay != nil {
		days = append(days, model.Day(*record.SecondDay))
	}

	meeting, err := model.NewMeeting(days, model.Parity(record.WeekFrequency), record.StartTime, record.EndTime)
	if err != nil {
		return model.Section{}, fmt.Errorf("record %d (%v): %w", record.RegistrationNumber, record.Code, err)
	}
	return model.NewSection(record.RegistrationNumber, record.Code, record.Title, meeting)
}

func RecordFromSection(section model.Section, semester string) Record {
	record := Record{
		RegistrationNumber: section.RegistrationNumber,
		Code:               section.Code,
		Title:              section.Title,
		Semester:           semester,
		FirstDay:           int(section.Days[0]),
		WeekFrequency:      int(section.Parity),
		StartTime:          section.StartTime,
		EndTime:            section.EndTime,
	}
	if section.Days[1] != model.NoDay {
		second := int(section.Days[1])
		record.SecondDay = &second
	}
	return record
}

// sectionFilter selects the records of a course in a semester whose label matches the include filter
type sectionFilter struct {
	code     string
	semester string
	include  *regexp.Regexp
}

func newSectionFilter(code, semester, includeFilter string) (sectionFilter, error) {
	include, err := regexp.Compile(includeFilter)
	if err != nil {
		return sectionFilter{}, fmt.Errorf("%w %q: %v", ErrInvalidFilter, includeFilter, err)
	}
	return sectionFilter{
		code:     strings.Join(strings.Fields(code), " "),
		semester: semester,
		include:  include,
	}, nil
}

func (filter sectionFilter) matches(record Record) bool {
	fields := strings.Fields(record.Code)
	if len(fields) < 2 || record.Semester != filter.semester {
		return false
	}
	course, label := strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1]
	return course == filter.code && filter.include.MatchString(label)
}

func toSections(records []Record, filter sectionFilter) ([]model.Section, error) {
	sections := make([]model.Section, 0, len(records))
	for _, record := range records {
		if !filter.matches(record) {
			continue
		}
		section, err := record.Section()
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, nil
}
