package logs

import "context"

// Session identifies one run session across log records.
type Session string

type sessionKeyType struct{}

var SessionKey sessionKeyType

func WithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}
