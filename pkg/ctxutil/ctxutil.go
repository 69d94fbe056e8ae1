package ctxutil

import "context"

type ctxKey string

const (
	accessTokenKey ctxKey = "access_token"
	actorIDKey     ctxKey = "actor_id"
	requestIDKey   ctxKey = "request_id"
)

// WithAccessToken stores the bearer token the REST client attaches as the
// Authorization header.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey, token)
}

// AccessTokenFromCtx extracts the bearer token from the context.
// Returns an empty string and false if absent.
func AccessTokenFromCtx(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(accessTokenKey).(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// WithActorID stores the acting user's id in the context.
func WithActorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, actorIDKey, id)
}

// ActorIDFromCtx extracts the acting user's id from the context.
// Returns an empty string and false if absent.
func ActorIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(actorIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
