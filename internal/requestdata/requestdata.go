package requestdata

import (
	"context"
)

type contextKey struct{}

var requestDataKey contextKey

// RequestData carries the authenticated caller's identity through the
// request context. OwnerID is the stable integer id the identity provider
// assigned to the shop owner.
type RequestData struct {
	RequestID string
	OwnerID   uint
	Email     string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}
