package insights

import (
	"bytes"
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/sandy-the-earth/nfc-backend/internal/models"
)

// DecodeViewEvents reads the stored view-event column. Events are stored in
// append order, which is chronological order; the decode preserves it.
// Missing or invalid data decodes to an empty slice.
func DecodeViewEvents(raw datatypes.JSON) []models.ViewEvent {
	if len(raw) == 0 {
		return nil
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	var events []models.ViewEvent
	if err := json.Unmarshal(trimmed, &events); err != nil {
		return nil
	}
	return events
}

// EncodeViewEvents serializes view events back into the stored column.
func EncodeViewEvents(events []models.ViewEvent) datatypes.JSON {
	if events == nil {
		events = []models.ViewEvent{}
	}
	raw, err := json.Marshal(events)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

// AppendViewEvent decodes, appends and re-encodes in one step. Used by the
// tracking entry point on every public fetch.
func AppendViewEvent(raw datatypes.JSON, event models.ViewEvent) datatypes.JSON {
	events := DecodeViewEvents(raw)
	return EncodeViewEvents(append(events, event))
}
