// Package platform defines the contracts for the hosted backend collaborators
// (document store, identity provider, blob storage) and their Firebase-backed
// implementations. Application code depends on the interfaces only; external
// failures are mapped here into the closed error kinds of errors.go.
package platform

import (
	"context"
	"io"
)

// Document is one record read from a store collection, id plus raw fields.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// BatchDoc is one entry of a batch write.
type BatchDoc struct {
	Collection string
	ID         string
	Record     interface{}
}

// SnapshotFunc receives the full contents of a collection on every
// server-pushed change. The slice replaces any previous snapshot wholesale.
type SnapshotFunc func(docs []Document)

// ErrorFunc receives subscription delivery errors.
type ErrorFunc func(err error)

// DocStore is the document store client surface this application uses.
type DocStore interface {
	// Subscribe establishes a live listener on a collection. The returned
	// stop function tears the listener down; it must be called on shutdown.
	Subscribe(ctx context.Context, collection string, onSnapshot SnapshotFunc, onError ErrorFunc) (stop func(), err error)
	Write(ctx context.Context, collection, id string, record interface{}) error
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, collection, id string) error
	ReadAllOnce(ctx context.Context, collection string) ([]Document, error)
	BatchWrite(ctx context.Context, docs []BatchDoc) error
}

// Session is the externally-owned user session. The application holds a
// reference only; credentials stay with the provider.
type Session struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName,omitempty"`
	PhotoURL      string `json:"photoUrl,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
	IDToken       string `json:"-"`
	RefreshToken  string `json:"-"`
}

// Profile carries the mutable profile fields attached to an account.
type Profile struct {
	DisplayName string
	PhotoURL    string
}

// SessionChangeFunc observes session transitions: a non-nil session after a
// sign-in, nil after a sign-out.
type SessionChangeFunc func(s *Session)

// IdentityProvider is the managed authentication service surface.
type IdentityProvider interface {
	OnSessionChange(cb SessionChangeFunc) (unsubscribe func())
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, s *Session) error
	SendVerificationEmail(ctx context.Context, s *Session) error
	UpdateProfile(ctx context.Context, s *Session, p Profile) error
	// VerifyToken checks a bearer ID token and returns the session it
	// represents. Used by the admin route guard.
	VerifyToken(ctx context.Context, idToken string) (*Session, error)
}

// BlobStorage is the binary blob storage surface.
type BlobStorage interface {
	Upload(ctx context.Context, path string, r io.Reader, contentType string) error
	DownloadURL(ctx context.Context, path string) (string, error)
}
