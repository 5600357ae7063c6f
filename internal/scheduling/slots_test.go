package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MillService/internal/domain"
	"github.com/m04kA/SMC-MillService/pkg/types"
)

func rng(start, end string) domain.TimeRange {
	return domain.TimeRange{Start: types.TimeString(start), End: types.TimeString(end)}
}

func TestAvailableSlots_ScenarioA(t *testing.T) {
	booked := []domain.TimeRange{rng("09:00", "11:00"), rng("13:00", "15:00")}

	slots, err := AvailableSlots(domain.DefaultBusinessHours(), 120, booked)
	require.NoError(t, err)

	assert.Equal(t, []domain.TimeSlot{rng("11:00", "13:00"), rng("15:00", "17:00")}, slots)
}

func TestAvailableSlots(t *testing.T) {
	hours := domain.DefaultBusinessHours()

	tests := []struct {
		name     string
		duration int
		booked   []domain.TimeRange
		want     []domain.TimeSlot
	}{
		{
			name:     "empty ledger returns the full grid",
			duration: 120,
			want:     []domain.TimeSlot{rng("09:00", "11:00"), rng("11:00", "13:00"), rng("13:00", "15:00"), rng("15:00", "17:00")},
		},
		{
			name:     "partial tail is dropped",
			duration: 180,
			want:     []domain.TimeSlot{rng("09:00", "12:00"), rng("12:00", "15:00")},
		},
		{
			name:     "booking straddling two windows blocks both",
			duration: 120,
			booked:   []domain.TimeRange{rng("10:30", "11:30")},
			want:     []domain.TimeSlot{rng("13:00", "15:00"), rng("15:00", "17:00")},
		},
		{
			name:     "adjacent booking does not block",
			duration: 240,
			booked:   []domain.TimeRange{rng("08:00", "09:00"), rng("17:00", "18:00")},
			want:     []domain.TimeSlot{rng("09:00", "13:00"), rng("13:00", "17:00")},
		},
		{
			name:     "fully booked day",
			duration: 480,
			booked:   []domain.TimeRange{rng("12:00", "12:05")},
			want:     []domain.TimeSlot{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AvailableSlots(hours, tt.duration, tt.booked)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAvailableSlots_InvalidDuration(t *testing.T) {
	_, err := AvailableSlots(domain.DefaultBusinessHours(), 0, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = AvailableSlots(domain.DefaultBusinessHours(), 1000, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// При любом наборе броней свободные окна лежат в сетке и не пересекаются с бронями
func TestSlots_NeverOverlapBooked(t *testing.T) {
	hours := domain.DefaultBusinessHours()
	bookedSets := [][]domain.TimeRange{
		nil,
		{rng("09:00", "09:30")},
		{rng("09:15", "10:45"), rng("12:00", "16:59")},
		{rng("16:00", "17:00"), rng("09:00", "10:00"), rng("11:00", "11:01")},
	}

	for _, duration := range []int{30, 45, 60, 90, 120, 240} {
		grid := map[domain.TimeSlot]bool{}
		for s := range Grid(hours, duration) {
			grid[s] = true
		}

		for _, booked := range bookedSets {
			for slot := range Slots(hours, duration, booked) {
				assert.True(t, grid[slot], "slot %v off grid", slot)
				assert.True(t, hours.Contains(slot))
				assert.Equal(t, duration, slot.DurationMinutes())
				for _, b := range booked {
					assert.False(t, slot.Overlaps(b), "slot %v overlaps booked %v", slot, b)
				}
			}
		}
	}
}

func TestSlots_Restartable(t *testing.T) {
	seq := Slots(domain.DefaultBusinessHours(), 60, []domain.TimeRange{rng("12:00", "13:00")})

	var first, second []domain.TimeSlot
	for s := range seq {
		first = append(first, s)
	}
	for s := range seq {
		second = append(second, s)
	}
	assert.Len(t, first, 7)
	assert.Equal(t, first, second)

	// ранний выход не ломает следующий обход
	for range seq {
		break
	}
	count := 0
	for range seq {
		count++
	}
	assert.Equal(t, 7, count)
}

func TestIsTimeBooked(t *testing.T) {
	booked := []domain.TimeRange{rng("09:00", "11:00")}

	assert.True(t, IsTimeBooked("09:00", booked))
	assert.True(t, IsTimeBooked("10:59", booked))
	assert.False(t, IsTimeBooked("11:00", booked))
	assert.False(t, IsTimeBooked("08:59", booked))
	assert.False(t, IsTimeBooked("10:00", nil))
}

func TestFitsGrid(t *testing.T) {
	hours := domain.DefaultBusinessHours()

	assert.NoError(t, FitsGrid(hours, rng("09:00", "17:00")))
	assert.ErrorIs(t, FitsGrid(hours, rng("16:00", "18:00")), domain.ErrValidation)
	assert.ErrorIs(t, FitsGrid(hours, rng("12:00", "11:00")), domain.ErrValidation)
}
