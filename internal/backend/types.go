package backend

// TimestampLayout is the backend's format for last_update and timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// StatusUpdate is one element of the /track data array.
type StatusUpdate struct {
	Status     string `json:"status"`
	Location   string `json:"location"`
	LastUpdate string `json:"last_update"`
}

// TrackingResponse mirrors the payload returned by /track/{number}.
type TrackingResponse struct {
	Data []StatusUpdate `json:"data"`
}

// Latest returns the first status update. The backend lists the current
// status first; ok is false when the shipment has no updates yet.
func (r TrackingResponse) Latest() (StatusUpdate, bool) {
	if len(r.Data) == 0 {
		return StatusUpdate{}, false
	}
	return r.Data[0], true
}

// HistoryRecord is a query the backend remembers.
type HistoryRecord struct {
	Timestamp      string `json:"timestamp"`
	TrackingNumber string `json:"tracking_number"`
}

// HistoryResponse mirrors /history. Records are oldest first.
type HistoryResponse struct {
	History []HistoryRecord `json:"history"`
}
