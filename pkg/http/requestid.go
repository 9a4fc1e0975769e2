package http

import (
	"context"

	"github.com/google/uuid"

	"github.com/milan604/restbase/pkg/logger"
)

// HeaderRequestID is the default correlation header.
const HeaderRequestID = "X-Request-ID"

// RequestIDHook sets header (HeaderRequestID when empty) on requests that
// don't carry one, using the id stored in ctx or a fresh UUID.
func RequestIDHook(header string) RequestHook {
	if header == "" {
		header = HeaderRequestID
	}
	return func(ctx context.Context, req *Request) error {
		if req.Header().Get(header) != "" {
			return nil
		}
		id, ok := logger.RequestIDFrom(ctx)
		if !ok {
			id = uuid.New().String()
		}
		req.Header().Set(header, id)
		return nil
	}
}
