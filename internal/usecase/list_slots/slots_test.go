package list_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funpark/TicketingService/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateDescriptors_SingleDayOneHour(t *testing.T) {
	d := date(2025, 11, 29)

	descriptors := generateDescriptors(domain.EntityTypeAttraction, 3, d, d, 1, 10, 20, 15, 500)

	// часы 10..19, десять слотов
	require.Len(t, descriptors, 10)
	for i, desc := range descriptors {
		assert.Equal(t, 10+i, desc.StartHour)
		assert.Equal(t, 11+i, desc.EndHour)
		assert.True(t, desc.Date.Equal(d))
		assert.Equal(t, 15, desc.Capacity)
		assert.Equal(t, 500.0, desc.BasePrice)
	}
}

func TestGenerateDescriptors_ComboThreeHours(t *testing.T) {
	d := date(2025, 11, 29)

	descriptors := generateDescriptors(domain.EntityTypeCombo, 5, d, d, 3, 10, 20, 20, 1200)

	// почасовой шаг: старты 10..17, каждое окно длится 3 часа
	require.Len(t, descriptors, 8)
	assert.Equal(t, 10, descriptors[0].StartHour)
	assert.Equal(t, 13, descriptors[0].EndHour)
	assert.Equal(t, 17, descriptors[7].StartHour)
	assert.Equal(t, 20, descriptors[7].EndHour)
}

func TestGenerateDescriptors_MultiDayOrdering(t *testing.T) {
	start := date(2025, 11, 29)
	end := date(2025, 12, 1)

	descriptors := generateDescriptors(domain.EntityTypeAttraction, 1, start, end, 1, 10, 20, 10, 100)

	// 3 дня по 10 слотов, в порядке (дата, час) по возрастанию
	require.Len(t, descriptors, 30)
	for i := 1; i < len(descriptors); i++ {
		prev, cur := descriptors[i-1], descriptors[i]
		if prev.Date.Equal(cur.Date) {
			assert.Equal(t, prev.StartHour+1, cur.StartHour)
		} else {
			assert.True(t, prev.Date.Before(cur.Date))
			assert.Equal(t, 10, cur.StartHour)
		}
	}
}

func TestGenerateDescriptors_DurationExceedsWindow(t *testing.T) {
	d := date(2025, 11, 29)

	// окно 10 часов, длительность 11 — слотов нет, ошибки тоже нет
	descriptors := generateDescriptors(domain.EntityTypeCombo, 5, d, d, 11, 10, 20, 20, 1200)

	assert.Empty(t, descriptors)
}

func TestGenerateDescriptors_StartAfterEnd(t *testing.T) {
	descriptors := generateDescriptors(domain.EntityTypeAttraction, 1,
		date(2025, 12, 1), date(2025, 11, 29), 1, 10, 20, 10, 100)

	assert.Empty(t, descriptors)
}

func TestGenerateDescriptors_Deterministic(t *testing.T) {
	start, end := date(2025, 11, 29), date(2025, 12, 5)

	first := generateDescriptors(domain.EntityTypeAttraction, 3, start, end, 1, 10, 20, 15, 500)
	second := generateDescriptors(domain.EntityTypeAttraction, 3, start, end, 1, 10, 20, 15, 500)

	assert.Equal(t, first, second)
}

func TestAnnotateAvailability(t *testing.T) {
	d := date(2025, 11, 29)
	descriptors := generateDescriptors(domain.EntityTypeAttraction, 3, d, d, 1, 10, 20, 10, 500)

	aggregates := []*domain.BookingAggregate{
		{EntityType: domain.EntityTypeAttraction, EntityID: 3, Date: d, StartHour: 10, BookedQty: 4},
		{EntityType: domain.EntityTypeAttraction, EntityID: 3, Date: d, StartHour: 11, BookedQty: 10},
		{EntityType: domain.EntityTypeAttraction, EntityID: 3, Date: d, StartHour: 12, BookedQty: 25}, // овербукинг извне
	}

	slots := annotateAvailability(descriptors, aggregates)
	require.Len(t, slots, 10)

	byHour := make(map[int]domain.Slot)
	for _, s := range slots {
		byHour[s.StartHour] = s
	}

	assert.Equal(t, 4, byHour[10].Booked)
	assert.Equal(t, 6, byHour[10].Remaining)
	assert.True(t, byHour[10].Available)

	// полностью выкуплен
	assert.Equal(t, 0, byHour[11].Remaining)
	assert.False(t, byHour[11].Available)

	// booked > capacity зажимается в ноль, не ошибка
	assert.Equal(t, 25, byHour[12].Booked)
	assert.Equal(t, 0, byHour[12].Remaining)
	assert.False(t, byHour[12].Available)

	// без агрегата — полностью свободен
	assert.Equal(t, 0, byHour[13].Booked)
	assert.Equal(t, 10, byHour[13].Remaining)
	assert.True(t, byHour[13].Available)

	// remaining никогда не отрицателен, инвариант available == (remaining > 0)
	for _, s := range slots {
		assert.GreaterOrEqual(t, s.Remaining, 0)
		assert.Equal(t, s.Remaining > 0, s.Available)
	}
}

func TestAnnotateAvailability_ExactMatchOnly(t *testing.T) {
	d := date(2025, 11, 29)
	descriptors := generateDescriptors(domain.EntityTypeAttraction, 3, d, d, 1, 10, 20, 10, 500)

	aggregates := []*domain.BookingAggregate{
		// другая сущность и другая дата не влияют на счётчики
		{EntityType: domain.EntityTypeAttraction, EntityID: 4, Date: d, StartHour: 10, BookedQty: 9},
		{EntityType: domain.EntityTypeCombo, EntityID: 3, Date: d, StartHour: 10, BookedQty: 9},
		{EntityType: domain.EntityTypeAttraction, EntityID: 3, Date: d.AddDate(0, 0, 1), StartHour: 10, BookedQty: 9},
	}

	slots := annotateAvailability(descriptors, aggregates)
	for _, s := range slots {
		assert.Equal(t, 0, s.Booked, "hour=%d", s.StartHour)
	}
}
