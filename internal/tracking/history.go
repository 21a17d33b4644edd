package tracking

import (
	"github.com/five82/rastreo/internal/backend"
)

// EntryTimestampLayout formats timestamps of locally recorded queries.
const EntryTimestampLayout = "02/01/2006 15:04"

const entrySeparator = " - Paquete: "

// HistoryEntry is a timestamped record of a past query.
type HistoryEntry struct {
	Timestamp      string
	TrackingNumber string
}

func (e HistoryEntry) String() string {
	return e.Timestamp + entrySeparator + e.TrackingNumber
}

// historyList is kept most recent first.
type historyList []HistoryEntry

func (h historyList) prepend(entry HistoryEntry) historyList {
	out := make(historyList, 0, len(h)+1)
	out = append(out, entry)
	return append(out, h...)
}

// fromRecords converts backend records, which arrive oldest first.
func fromRecords(records []backend.HistoryRecord) historyList {
	out := make(historyList, len(records))
	for i, rec := range records {
		out[len(records)-1-i] = HistoryEntry{Timestamp: rec.Timestamp, TrackingNumber: rec.TrackingNumber}
	}
	return out
}

func (h historyList) clone() []HistoryEntry {
	dup := make([]HistoryEntry, len(h))
	copy(dup, h)
	return dup
}
