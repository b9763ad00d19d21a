package blog

import "context"

// Gateway is the HTTP chokepoint the services issue backend calls through.
// Implementations normalize every failure into the gateway error taxonomy
// before returning; no raw transport error crosses this boundary.
type Gateway interface {
	// Get issues a GET and decodes the JSON response into out (may be nil).
	Get(ctx context.Context, path string, out any) error

	// Post issues a POST with a JSON body (may be nil) and decodes into out.
	Post(ctx context.Context, path string, body, out any) error

	// Put issues a PUT with a JSON body (may be nil) and decodes into out.
	Put(ctx context.Context, path string, body, out any) error

	// Delete issues a DELETE and decodes the JSON response into out (may be nil).
	Delete(ctx context.Context, path string, out any) error
}
