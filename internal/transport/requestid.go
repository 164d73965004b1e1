package transport

import (
	"context"

	"github.com/google/uuid"
)

// HeaderRequestID carries the request identifier on requests and responses.
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLength = 128

type requestIDKey struct{}

// RequestID returns the caller supplied id when it is usable and a fresh uuid otherwise.
// Usable ids are at most 128 printable ASCII characters.
func RequestID(incoming string) string {
	if incoming == "" || len(incoming) > maxRequestIDLength {
		return uuid.NewString()
	}
	for i := 0; i < len(incoming); i++ {
		if incoming[i] < 0x21 || incoming[i] > 0x7e {
			return uuid.NewString()
		}
	}
	return incoming
}

// WithRequestID stores the request id on ctx.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestIDFrom returns the request id stored on ctx, if any.
func RequestIDFrom(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDKey{}).(string)
	return rid
}
