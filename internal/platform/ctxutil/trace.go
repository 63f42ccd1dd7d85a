package ctxutil

import "context"

type traceDataKey struct{}

type TraceData struct {
	TraceID   string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

type authDataKey struct{}

// AuthData is the caller identity resolved from a session token.
type AuthData struct {
	UserID string
	Role   string
}

func (a *AuthData) IsEducator() bool {
	return a != nil && a.Role == "educator"
}

func WithAuthData(ctx context.Context, ad *AuthData) context.Context {
	return context.WithValue(ctx, authDataKey{}, ad)
}

func GetAuthData(ctx context.Context) *AuthData {
	if ad, ok := ctx.Value(authDataKey{}).(*AuthData); ok {
		return ad
	}
	return nil
}

// UserIDOr returns the authenticated user id, or def when the request is anonymous.
func UserIDOr(ctx context.Context, def string) string {
	if ad := GetAuthData(ctx); ad != nil && ad.UserID != "" {
		return ad.UserID
	}
	return def
}

// Default returns ctx, or context.Background() when ctx is nil.
func Default(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
