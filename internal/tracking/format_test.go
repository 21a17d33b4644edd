package tracking

import (
	"testing"

	"github.com/five82/rastreo/internal/backend"
)

func TestFormatResult(t *testing.T) {
	tests := []struct {
		name string
		resp backend.TrackingResponse
		want string
	}{
		{
			name: "latest update",
			resp: inTransit,
			want: "Número de rastreo: ABC123\nEstado: In transit\nUbicación: Warehouse A\nÚltima actualización: 2024-01-01 10:00",
		},
		{
			name: "only first update shown",
			resp: backend.TrackingResponse{Data: []backend.StatusUpdate{
				{Status: "Delivered", Location: "Door", LastUpdate: "2024-01-02 12:00"},
				{Status: "In transit", Location: "Warehouse A", LastUpdate: "2024-01-01 10:00"},
			}},
			want: "Número de rastreo: ABC123\nEstado: Delivered\nUbicación: Door\nÚltima actualización: 2024-01-02 12:00",
		},
		{"empty data", backend.TrackingResponse{Data: []backend.StatusUpdate{}}, "Número de rastreo: ABC123\n"},
		{"nil data", backend.TrackingResponse{}, "Número de rastreo: ABC123\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatResult("ABC123", tt.resp); got != tt.want {
				t.Errorf("FormatResult() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHistoryEntryString(t *testing.T) {
	e := HistoryEntry{Timestamp: "05/03/2024 09:01", TrackingNumber: "ABC123"}
	if got := e.String(); got != "05/03/2024 09:01 - Paquete: ABC123" {
		t.Fatalf("String() = %q", got)
	}
}

func TestFromRecordsReverses(t *testing.T) {
	got := fromRecords([]backend.HistoryRecord{
		{Timestamp: "t1", TrackingNumber: "A"},
		{Timestamp: "t2", TrackingNumber: "B"},
		{Timestamp: "t3", TrackingNumber: "A"},
	})
	want := []string{"t3 - Paquete: A", "t2 - Paquete: B", "t1 - Paquete: A"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].String() != want[i] {
			t.Fatalf("entry %d = %q, want %q", i, got[i].String(), want[i])
		}
	}
}

func TestHistoryCloneIsIndependent(t *testing.T) {
	h := historyList{}.prepend(HistoryEntry{Timestamp: "t1", TrackingNumber: "A"})
	dup := h.clone()
	dup[0].TrackingNumber = "changed"
	if h[0].TrackingNumber != "A" {
		t.Fatalf("clone shares storage with history")
	}
}

func TestKindString(t *testing.T) {
	if KindEmptyInput.String() != "empty input" || KindNetworkFailure.String() != "network failure" ||
		KindParseFailure.String() != "parse failure" || Kind(0).String() != "unknown" {
		t.Fatalf("unexpected Kind strings")
	}
}
