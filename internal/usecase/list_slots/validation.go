package list_slots

import (
	"fmt"
	"time"

	"github.com/funpark/TicketingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !domain.EntityType(req.EntityType).IsValid() {
		return fmt.Errorf("%w: unknown entity type %q", ErrInvalidInput, req.EntityType)
	}

	if req.EntityID <= 0 {
		return fmt.Errorf("%w: entityID must be positive", ErrInvalidInput)
	}

	if req.Date != "" && (req.StartDate != "" || req.EndDate != "") {
		return fmt.Errorf("%w: date and start/end dates are mutually exclusive", ErrInvalidInput)
	}

	return nil
}

// resolveDateRange вычисляет границы листинга.
// Пустой запрос — сегодня и DefaultListingRangeDays вперёд относительно now;
// нераспознаваемая дата — ErrInvalidDateRange. start > end допустим и даёт
// пустой результат дальше по конвейеру.
func resolveDateRange(req *Request, now time.Time) (time.Time, time.Time, error) {
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return date, date, nil
	}

	start := domain.NormalizeDate(now)
	if req.StartDate != "" {
		parsed, err := parseDate(req.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = parsed
	}

	end := start.AddDate(0, 0, domain.DefaultListingRangeDays)
	if req.EndDate != "" {
		parsed, err := parseDate(req.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = parsed
	}

	return start, end, nil
}

func parseDate(s string) (time.Time, error) {
	date, err := time.ParseInLocation(domain.DateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a valid YYYY-MM-DD date", ErrInvalidDateRange, s)
	}
	return date, nil
}
