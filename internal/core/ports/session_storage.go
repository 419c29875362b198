package ports

import (
	"context"
)

// SessionRecord is the raw durable form of a session: exactly two keys, the
// token string and the serialized user record. Missing keys are empty.
type SessionRecord struct {
	Token string
	User  string
}

// Empty reports whether neither key is stored.
func (r SessionRecord) Empty() bool {
	return r.Token == "" && r.User == ""
}

// SessionStorage defines durable client storage for the session. Write and
// Clear always act on both keys together.
type SessionStorage interface {
	Read(ctx context.Context) (SessionRecord, error)
	Write(ctx context.Context, rec SessionRecord) error
	Clear(ctx context.Context) error
}
