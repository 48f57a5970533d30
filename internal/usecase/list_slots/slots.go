package list_slots

import (
	"time"

	"github.com/funpark/TicketingService/internal/domain"
)

// generateDescriptors генерирует упорядоченную последовательность дескрипторов
// виртуальных слотов сущности за диапазон дат [startDate, endDate] включительно.
//
// Для каждой даты слоты идут с шагом в час: стартовые часы
// {openHour, openHour+1, ..., closeHour-durationHours}, каждый слот длится
// durationHours (окна многочасовых слотов перекрываются). Если рабочее окно
// короче длительности — на эту дату слотов нет, это не ошибка.
//
// Генерация детерминирована: без случайности, без I/O, без обращения к часам.
// startDate > endDate даёт пустую последовательность.
func generateDescriptors(
	entityType domain.EntityType,
	entityID int64,
	startDate, endDate time.Time,
	durationHours int,
	openHour, closeHour int,
	capacity int,
	basePrice float64,
) []domain.SlotDescriptor {
	descriptors := make([]domain.SlotDescriptor, 0)

	if durationHours < 1 {
		durationHours = 1
	}

	lastStart := closeHour - durationHours

	for date := domain.NormalizeDate(startDate); !date.After(domain.NormalizeDate(endDate)); date = date.AddDate(0, 0, 1) {
		for hour := openHour; hour <= lastStart; hour++ {
			descriptors = append(descriptors, domain.SlotDescriptor{
				EntityType: entityType,
				EntityID:   entityID,
				Date:       date,
				StartHour:  hour,
				EndHour:    hour + durationHours,
				Capacity:   capacity,
				BasePrice:  basePrice,
			})
		}
	}

	return descriptors
}

// annotateAvailability накладывает агрегаты бронирований на дескрипторы.
//
// Сопоставление только точное — по ключу (тип, id, дата, стартовый час);
// бронирование на другой час никогда не влияет на счётчик слота.
// Отсутствие агрегата означает нулевую занятость (слот полностью свободен).
// Перебронированный слот (booked > capacity) зажимается в remaining = 0,
// листинг из-за чужого овербукинга не падает.
func annotateAvailability(descriptors []domain.SlotDescriptor, aggregates []*domain.BookingAggregate) []domain.Slot {
	booked := make(map[domain.SlotKey]int, len(aggregates))
	for _, agg := range aggregates {
		booked[agg.Key()] += agg.BookedQty
	}

	slots := make([]domain.Slot, len(descriptors))
	for i, d := range descriptors {
		qty := booked[d.Key()]

		remaining := d.Capacity - qty
		if remaining < 0 {
			remaining = 0
		}

		slots[i] = domain.Slot{
			SlotDescriptor: d,
			Booked:         qty,
			Remaining:      remaining,
			Available:      remaining > 0,
		}
	}

	return slots
}
