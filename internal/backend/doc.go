// Package backend provides an HTTP client for the package-tracking REST API.
//
// # Endpoints
//
// The client supports the two read-only endpoints the tracking backend exposes:
//
//   - GET {base}/track/{number}: status updates for a shipment, current first
//   - GET {base}/history: numbers queried so far, oldest first
//
// The base URL defaults to http://localhost:5000/api. A bare host:port is
// accepted and gets an http:// scheme.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Set Accept: application/json and User-Agent: rastreo/0.1
//   - Carry a fresh X-Request-ID so client and server logs can be joined
//   - Have no timeout unless WithTimeout is given
//
// # Error Handling
//
// Errors wrap one of two sentinels so callers can classify them with errors.Is:
//
//   - ErrUnavailable: connection refused, DNS failure, timeouts, 4xx/5xx statuses
//   - ErrMalformed: body is not JSON, or an expected array or string field is missing
//
// Bodies are inspected with gjson rather than decoded into structs so that a
// missing field is reported as such instead of silently becoming "".
//
// # Usage Example
//
//	client, err := backend.NewClient("http://localhost:5000/api")
//	if err != nil {
//		return err
//	}
//	resp, err := client.FetchTracking(ctx, "ABC123")
//	if errors.Is(err, backend.ErrUnavailable) {
//		// server down
//	}
//	if latest, ok := resp.Latest(); ok {
//		fmt.Println(latest.Status)
//	}
package backend
