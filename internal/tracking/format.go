package tracking

import (
	"strings"

	"github.com/five82/rastreo/internal/backend"
)

// FormatResult renders a tracking response for display. Only the latest
// update is shown; a shipment without updates yields just the header line.
func FormatResult(trackingNumber string, resp backend.TrackingResponse) string {
	var b strings.Builder
	b.WriteString("Número de rastreo: ")
	b.WriteString(trackingNumber)
	b.WriteString("\n")

	latest, ok := resp.Latest()
	if !ok {
		return b.String()
	}
	b.WriteString("Estado: ")
	b.WriteString(latest.Status)
	b.WriteString("\nUbicación: ")
	b.WriteString(latest.Location)
	b.WriteString("\nÚltima actualización: ")
	b.WriteString(latest.LastUpdate)
	return b.String()
}
