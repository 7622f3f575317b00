package model

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockCodes(blocks []Block) []string {
	return lo.Map(blocks, func(block Block, _ int) string { return block.String() })
}

func TestBuildBlocks(t *testing.T) {
	t.Run("Lecture only course", func(t *testing.T) {
		sections := []Section{
			section(t, 1, "CCDP 2100 A", []Day{Monday}, Weekly, 540, 630),
			section(t, 2, "CCDP 2100 B", []Day{Tuesday}, Weekly, 540, 630),
		}

		blocks, warnings := BuildBlocks("CCDP 2100", sections, Timetable{})

		assert.Empty(t, warnings)
		assert.Equal(t, []string{"CCDP 2100 A", "CCDP 2100 B"}, blockCodes(blocks))
	})

	t.Run("Lecture and lab with matching key", func(t *testing.T) {
		sections := []Section{
			section(t, 1, "SYSC 2006 A", []Day{Monday}, Weekly, 540, 600),
			section(t, 2, "SYSC 2006 A1", []Day{Wednesday}, Weekly, 600, 660),
		}

		blocks, warnings := BuildBlocks("SYSC 2006", sections, Timetable{})

		assert.Empty(t, warnings)
		require.Len(t, blocks, 1)
		secondary, ok := blocks[0].Secondary()
		assert.True(t, ok)
		assert.Equal(t, "SYSC 2006 A", blocks[0].Primary().Code)
		assert.Equal(t, "SYSC 2006 A1", secondary.Code)
	})

	t.Run("Keyed pairing only matches the lecture letter", func(t *testing.T) {
		sections := []Section{
			section(t, 1, "ELEC 2501 A", []Day{Monday}, Weekly, 540, 600),
			section(t, 2, "ELEC 2501 B", []Day{Tuesday}, Weekly, 540, 600),
			section(t, 3, "ELEC 2501 A1", []Day{Thursday}, Weekly, 540, 600),
			section(t, 4, "ELEC 2501 A2", []Day{Friday}, Weekly, 540, 600),
			section(t, 5, "ELEC 2501 B1", []Day{Thursday}, Weekly, 840, 900),
			section(t, 6, "ELEC 2501 C1", []Day{Friday}, Weekly, 840, 900),
		}

		blocks, warnings := BuildBlocks("ELEC 2501", sections, Timetable{})

		assert.Empty(t, warnings)
		assert.Equal(t, []string{
			"ELEC 2501 A + ELEC 2501 A1",
			"ELEC 2501 A + ELEC 2501 A2",
			"ELEC 2501 B + ELEC 2501 B1",
		}, blockCodes(blocks))
	})

	t.Run("Unlinked labs pair with every lecture", func(t *testing.T) {
		sections := []Section{
			section(t, 1, "AERO 4003 A", []Day{Monday}, Weekly, 540, 600),
			section(t, 2, "AERO 4003 B", []Day{Tuesday}, Weekly, 540, 600),
			section(t, 3, "AERO 4003 L1", []Day{Wednesday}, Weekly, 540, 600),
			section(t, 4, "AERO 4003 L2", []Day{Thursday}, Weekly, 540, 600),
		}

		blocks, _ := BuildBlocks("AERO 4003", sections, Timetable{})

		assert.Len(t, blocks, 4)
	})

	t.Run("Self-conflicting pairs are discarded", func(t *testing.T) {
		sections := []Section{
			section(t, 1, "MAAE 3202 A", []Day{Monday}, Weekly, 540, 630),
			section(t, 2, "MAAE 3202 A1", []Day{Monday}, Weekly, 600, 660),
			section(t, 3, "MAAE 3202 A2", []Day{Monday}, Weekly, 630, 690),
		}

		blocks, _ := BuildBlocks("MAAE 3202", sections, Timetable{})

		assert.Equal(t, []string{"MAAE 3202 A + MAAE 3202 A2"}, blockCodes(blocks))
	})

	t.Run("Blocked time removes blocks", func(t *testing.T) {
		busy, err := NewBlockedSection([]Day{Tuesday}, 500, 560)
		require.NoError(t, err)
		sections := []Section{
			section(t, 1, "MATH 1104 A", []Day{Monday}, Weekly, 540, 600),
			section(t, 2, "MATH 1104 B", []Day{Tuesday}, Weekly, 540, 600),
		}

		blocks, _ := BuildBlocks("MATH 1104", sections, NewBlockedTimetable(busy))

		assert.Equal(t, []string{"MATH 1104 A"}, blockCodes(blocks))
	})

	t.Run("Unclassifiable sections become warnings", func(t *testing.T) {
		busy, err := NewBlockedSection([]Day{Friday}, 500, 560)
		require.NoError(t, err)
		sections := []Section{
			section(t, 1, "PHYS 1007 A", []Day{Monday}, Weekly, 540, 600),
			section(t, 2, "PHYS 1007 ABCD", []Day{Tuesday}, Weekly, 540, 600),
			section(t, 3, "PHYS 1004 A", []Day{Tuesday}, Weekly, 540, 600),
			busy,
		}

		blocks, warnings := BuildBlocks("PHYS 1007", sections, Timetable{})

		assert.Equal(t, []string{"PHYS 1007 A"}, blockCodes(blocks))
		assert.Equal(t, []int{2, 3, 0}, lo.Map(warnings, func(warning ClassificationWarning, _ int) int {
			return warning.Section.RegistrationNumber
		}))
		assert.Contains(t, warnings[0].Error(), "ABCD")
	})

	t.Run("Lectures without any matching lab yield nothing", func(t *testing.T) {
		sections := []Section{
			section(t, 1, "SYSC 4001 A", []Day{Monday}, Weekly, 540, 600),
			section(t, 2, "SYSC 4001 B1", []Day{Tuesday}, Weekly, 540, 600),
		}

		blocks, warnings := BuildBlocks("SYSC 4001", sections, Timetable{})

		assert.Empty(t, blocks)
		assert.Empty(t, warnings)
	})
}
