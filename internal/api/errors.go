package api

import "fmt"

// RemoteError is a non-success status returned by the query endpoint. The
// fetch that hit it contributes zero records; the run continues.
type RemoteError struct {
	Resource string
	Status   int
	Body     string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("query %s: remote returned status %d: %s", e.Resource, e.Status, e.Body)
}

// TransportError is a failure of the network call itself.
type TransportError struct {
	Resource string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("query %s: transport failure: %v", e.Resource, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
