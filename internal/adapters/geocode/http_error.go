package geocode

import "fmt"

// httpStatusError reports a non-success response from the geocoding service,
// carrying the status code and a trimmed response body.
type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}
