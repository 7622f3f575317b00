package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meeting(t *testing.T, days []Day, parity Parity, start, end int) Meeting {
	t.Helper()
	m, err := NewMeeting(days, parity, start, end)
	require.NoError(t, err)
	return m
}

func randomMeeting(t *testing.T, random *rand.Rand) Meeting {
	t.Helper()
	first := Day(random.Intn(5) + 1)
	days := []Day{first}
	if random.Intn(2) == 0 {
		second := Day(random.Intn(5) + 1)
		if second != first {
			days = append(days, second)
		}
	}
	start := 8*60 + random.Intn(10)*30
	end := start + 30*(random.Intn(6)+1)
	return meeting(t, days, Parity(random.Intn(3)), start, end)
}

func TestSharesDay(t *testing.T) {
	t.Run("Common day", func(t *testing.T) {
		a := meeting(t, []Day{Monday, Wednesday}, Weekly, 540, 600)
		b := meeting(t, []Day{Wednesday}, Weekly, 540, 600)
		assert.True(t, SharesDay(a, b))
	})

	t.Run("Disjoint days", func(t *testing.T) {
		a := meeting(t, []Day{Monday, Wednesday}, Weekly, 540, 600)
		b := meeting(t, []Day{Tuesday, Thursday}, Weekly, 540, 600)
		assert.False(t, SharesDay(a, b))
	})

	t.Run("Missing second day is not a wildcard", func(t *testing.T) {
		a := meeting(t, []Day{Monday}, Weekly, 540, 600)
		b := meeting(t, []Day{Friday}, Weekly, 540, 600)
		assert.Equal(t, NoDay, a.Days[1])
		assert.Equal(t, NoDay, b.Days[1])
		assert.False(t, SharesDay(a, b))
	})
}

func TestTimeOverlaps(t *testing.T) {
	base := meeting(t, []Day{Monday}, Weekly, 540, 600)

	scenarios := []struct {
		name       string
		start, end int
		overlaps   bool
	}{
		{"Ends when the other starts", 480, 540, false},
		{"Starts when the other ends", 600, 660, false},
		{"Partially before", 510, 570, true},
		{"Partially after", 570, 630, true},
		{"Contained", 550, 590, true},
		{"Containing", 480, 660, true},
		{"Identical", 540, 600, true},
		{"Far away", 720, 780, false},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			other := meeting(t, []Day{Monday}, Weekly, scenario.start, scenario.end)
			assert.Equal(t, scenario.overlaps, TimeOverlaps(base, other))
			assert.Equal(t, scenario.overlaps, TimeOverlaps(other, base))
		})
	}

	t.Run("Open-ended meeting overlaps everything", func(t *testing.T) {
		block, err := NewOpenEndedBlock([]Day{Monday})
		require.NoError(t, err)
		assert.True(t, TimeOverlaps(block.Meeting, base))
		assert.True(t, TimeOverlaps(base, block.Meeting))
	})
}

func TestParityExempts(t *testing.T) {
	parities := []Parity{Weekly, OddWeek, EvenWeek}
	expected := map[[2]Parity]bool{
		{OddWeek, EvenWeek}: true,
		{EvenWeek, OddWeek}: true,
	}

	for _, p1 := range parities {
		for _, p2 := range parities {
			a := meeting(t, []Day{Monday}, p1, 540, 600)
			b := meeting(t, []Day{Monday}, p2, 540, 600)
			assert.Equal(t, expected[[2]Parity{p1, p2}], ParityExempts(a, b), "%v vs %v", p1, p2)
		}
	}
}

func TestConflicts(t *testing.T) {
	t.Run("Self conflict unless parity differs", func(t *testing.T) {
		random := rand.New(rand.NewSource(7))
		for range 200 {
			//** Arrange
			a := randomMeeting(t, random)
			clone := a
			flipped := a
			switch a.Parity {
			case OddWeek:
				flipped.Parity = EvenWeek
			case EvenWeek:
				flipped.Parity = OddWeek
			}

			//** Assert
			assert.True(t, Conflicts(a, clone))
			assert.Equal(t, a.Parity == Weekly, Conflicts(a, flipped))
		}
	})

	t.Run("Symmetry", func(t *testing.T) {
		random := rand.New(rand.NewSource(11))
		for range 500 {
			a, b := randomMeeting(t, random), randomMeeting(t, random)
			assert.Equal(t, Conflicts(a, b), Conflicts(b, a))
		}
	})

	t.Run("Biweekly exemption", func(t *testing.T) {
		odd := meeting(t, []Day{Tuesday}, OddWeek, 600, 720)
		even := meeting(t, []Day{Tuesday}, EvenWeek, 600, 720)
		otherOdd := meeting(t, []Day{Tuesday, Thursday}, OddWeek, 660, 690)

		assert.False(t, Conflicts(odd, even))
		assert.True(t, Conflicts(odd, otherOdd))
		assert.True(t, Conflicts(even, meeting(t, []Day{Tuesday}, Weekly, 700, 760)))
	})
}
