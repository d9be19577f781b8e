// ABOUTME: Request ID propagation through context
// ABOUTME: Lets outbound fetch logs carry the ID of the API request that caused them

package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the response header carrying the request ID
const Header = "X-Request-ID"

type key struct{}

// New returns a fresh request ID
func New() string {
	return uuid.New().String()
}

// With stores id in ctx
func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, key{}, id)
}

// From returns the request ID stored in ctx, or "" when there is none
func From(ctx context.Context) string {
	id, _ := ctx.Value(key{}).(string)
	return id
}
