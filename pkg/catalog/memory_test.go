package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/coursetable/pkg/model"
)

func sampleRecords() []Record {
	wednesday := 3
	return []Record{
		{RegistrationNumber: 31001, Code: "SYSC 3006 A", Title: "Computer Organization", Semester: "Fall", FirstDay: 1, SecondDay: &wednesday, StartTime: 835, EndTime: 955},
		{RegistrationNumber: 31002, Code: "SYSC 3006 B", Title: "Computer Organization", Semester: "Fall", FirstDay: 2, StartTime: 835, EndTime: 955},
		{RegistrationNumber: 31003, Code: "SYSC 3006 A1", Title: "Computer Organization", Semester: "Fall", FirstDay: 5, WeekFrequency: 1, StartTime: 510, EndTime: 680},
		{RegistrationNumber: 31004, Code: "SYSC 3006 A", Title: "Computer Organization", Semester: "Winter", FirstDay: 4, StartTime: 835, EndTime: 955},
		{RegistrationNumber: 31005, Code: "SYSC 30061 A", Title: "Other", Semester: "Fall", FirstDay: 4, StartTime: 835, EndTime: 955},
		{RegistrationNumber: 32001, Code: "ELEC 2501 A", Title: "Circuits & Signals", Semester: "Fall", FirstDay: 1, StartTime: 600, EndTime: 690},
	}
}

func registrationNumbers(sections []model.Section) []int {
	return lo.Map(sections, func(section model.Section, _ int) int { return section.RegistrationNumber })
}

func TestMemoryRepository(t *testing.T) {
	repository := NewMemoryRepository(sampleRecords())
	ctx := context.Background()

	t.Run("Course and semester", func(t *testing.T) {
		sections, err := repository.FetchSections(ctx, "SYSC 3006", "Fall", "")

		require.NoError(t, err)
		assert.Equal(t, []int{31001, 31002, 31003}, registrationNumbers(sections))
		assert.Equal(t, [2]model.Day{model.Monday, model.Wednesday}, sections[0].Days)
		assert.Equal(t, model.OddWeek, sections[2].Parity)
		assert.Equal(t, model.Secondary, sections[2].Role())
	})

	t.Run("Include filter over labels", func(t *testing.T) {
		sections, err := repository.FetchSections(ctx, "SYSC 3006", "Fall", "^A")

		require.NoError(t, err)
		assert.Equal(t, []int{31001, 31003}, registrationNumbers(sections))
	})

	t.Run("Invalid include filter", func(t *testing.T) {
		_, err := repository.FetchSections(ctx, "SYSC 3006", "Fall", "(")
		assert.ErrorIs(t, err, ErrInvalidFilter)
	})

	t.Run("Malformed record fails fast", func(t *testing.T) {
		broken := NewMemoryRepository([]Record{{RegistrationNumber: 1, Code: "MATH 1004 A", Semester: "Fall", FirstDay: 6, StartTime: 540, EndTime: 600}})
		_, err := broken.FetchSections(ctx, "MATH 1004", "Fall", "")
		assert.ErrorIs(t, err, model.ErrInvalidDay)
	})
}

func TestRecordsFromJson(t *testing.T) {
	//** Arrange
	file := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(file, []byte(`[
		{"registrationNumber": 31001, "code": "SYSC 3006 A", "title": "Computer Organization", "semester": "Fall",
		 "firstDay": 1, "secondDay": 3, "weekFrequency": 0, "startTime": 835, "endTime": 955},
		{"registrationNumber": 31003, "code": "SYSC 3006 A1", "title": "Computer Organization", "semester": "Fall",
		 "firstDay": 5, "secondDay": null, "weekFrequency": 2, "startTime": 510, "endTime": 680}
	]`), 0666))

	//** Act
	records, err := RecordsFromJson(file)

	//** Assert
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.NotNil(t, records[0].SecondDay)
	assert.Equal(t, 3, *records[0].SecondDay)
	assert.Nil(t, records[1].SecondDay)
	assert.Equal(t, 2, records[1].WeekFrequency)

	section, err := records[1].Section()
	require.NoError(t, err)
	assert.Equal(t, records[1], RecordFromSection(section, "Fall"))
}
