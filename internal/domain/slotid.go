package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Virtual slot id format: {entity_id}-{YYYYMMDD}-{HH}.
// The separator never appears inside entity ids (they are decimal integers).
const slotIDSeparator = "-"

// ErrInvalidSlotID возвращается при некорректном идентификаторе виртуального слота
var ErrInvalidSlotID = errors.New("invalid virtual slot id")

// SlotRef are the components encoded in a virtual slot id.
// The entity type is not part of the id and travels alongside it.
type SlotRef struct {
	EntityID int64
	Date     time.Time
	Hour     int
}

// EncodeSlotID builds the virtual slot id for an entity, date and start hour.
// The hour is zero-padded; DecodeSlotID accepts both padded and unpadded form.
func EncodeSlotID(entityID int64, date time.Time, hour int) string {
	return fmt.Sprintf("%d%s%s%s%02d",
		entityID, slotIDSeparator, date.Format(SlotDateFormat), slotIDSeparator, hour)
}

// DecodeSlotID parses a virtual slot id back into its components.
// A malformed id yields ErrInvalidSlotID, never a silent default.
func DecodeSlotID(id string) (SlotRef, error) {
	parts := strings.Split(id, slotIDSeparator)
	if len(parts) != 3 {
		return SlotRef{}, fmt.Errorf("%w: expected 3 fields, got %d in %q", ErrInvalidSlotID, len(parts), id)
	}

	entityID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || entityID <= 0 {
		return SlotRef{}, fmt.Errorf("%w: invalid entity id %q", ErrInvalidSlotID, parts[0])
	}

	if len(parts[1]) != 8 {
		return SlotRef{}, fmt.Errorf("%w: invalid date segment %q", ErrInvalidSlotID, parts[1])
	}
	date, err := time.ParseInLocation(SlotDateFormat, parts[1], time.UTC)
	if err != nil {
		return SlotRef{}, fmt.Errorf("%w: invalid date segment %q", ErrInvalidSlotID, parts[1])
	}

	hour, err := strconv.Atoi(parts[2])
	if err != nil || hour < MinHour || hour > MaxHour {
		return SlotRef{}, fmt.Errorf("%w: invalid hour segment %q", ErrInvalidSlotID, parts[2])
	}

	return SlotRef{EntityID: entityID, Date: date, Hour: hour}, nil
}
