package identity

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belmobile/belmobile-backend/internal/logger"
	"github.com/belmobile/belmobile-backend/internal/platform/platformtest"
	"github.com/belmobile/belmobile-backend/internal/session"
)

func newService(t *testing.T, provider *platformtest.FakeIdentity) (*Service, *platformtest.FakeBlob) {
	t.Helper()
	blobs := platformtest.NewFakeBlob()
	return NewService(logger.NewTestLogger(t), provider, blobs, nil), blobs
}

func TestLoginVerifiedUser(t *testing.T) {
	provider := platformtest.NewFakeIdentity()
	email := provider.AddUser(&platformtest.FakeUser{UID: "admin", Password: "secret123", Verified: true})
	svc, _ := newService(t, provider)

	sess, err := svc.Login(context.Background(), email, "secret123")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "admin", sess.UID)
	assert.True(t, sess.EmailVerified)
}

func TestLoginWrongPasswordIsGeneric(t *testing.T) {
	provider := platformtest.NewFakeIdentity()
	email := provider.AddUser(&platformtest.FakeUser{UID: "admin", Password: "secret123", Verified: true})
	svc, _ := newService(t, provider)

	sess, err := svc.Login(context.Background(), email, "wrong-pass")
	assert.Nil(t, sess)
	assert.ErrorIs(t, err, ErrInvalidLogin)

	// Unknown account collapses to the same message.
	_, err = svc.Login(context.Background(), "nobody@example.com", "whatever1")
	assert.ErrorIs(t, err, ErrInvalidLogin)
}

func TestLoginUnverifiedResendsAndSignsOut(t *testing.T) {
	provider := platformtest.NewFakeIdentity()
	email := provider.AddUser(&platformtest.FakeUser{UID: "newbie", Password: "secret123", Verified: false})
	svc, _ := newService(t, provider)

	tracker := session.NewTracker(logger.NewTestLogger(t))
	tracker.Watch(provider)
	defer tracker.Stop()

	sess, err := svc.Login(context.Background(), email, "secret123")
	assert.Nil(t, sess)
	assert.ErrorIs(t, err, ErrEmailUnverified)

	require.Len(t, provider.VerificationMails, 1)
	assert.Equal(t, email, provider.VerificationMails[0])
	assert.Contains(t, provider.RevokedUIDs, "newbie")

	// No authenticated state persists afterwards.
	assert.False(t, tracker.IsAdmin())
	assert.Equal(t, session.StateUnauthenticated, tracker.State())
}

func TestRegisterMismatchNeverCallsProvider(t *testing.T) {
	provider := platformtest.NewFakeIdentity()
	svc, _ := newService(t, provider)

	err := svc.Register(context.Background(), RegisterInput{
		Name:            "Sofie",
		Email:           "sofie@example.com",
		Password:        "secret123",
		ConfirmPassword: "different",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Zero(t, provider.SignUpCalls)
}

func TestRegisterShortPasswordNeverCallsProvider(t *testing.T) {
	provider := platformtest.NewFakeIdentity()
	svc, _ := newService(t, provider)

	err := svc.Register(context.Background(), RegisterInput{
		Email:           "sofie@example.com",
		Password:        "12345",
		ConfirmPassword: "12345",
	})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
	assert.Zero(t, provider.SignUpCalls)
}

func TestRegisterFullFlow(t *testing.T) {
	provider := platformtest.NewFakeIdentity()
	svc, blobs := newService(t, provider)

	err := svc.Register(context.Background(), RegisterInput{
		Name:             "Sofie Janssens",
		Email:            "sofie@example.com",
		Password:         "secret123",
		ConfirmPassword:  "secret123",
		Photo:            strings.NewReader("fake-jpeg-bytes"),
		PhotoContentType: "image/jpeg",
	})
	require.NoError(t, err)

	require.Len(t, provider.VerificationMails, 1)
	require.Len(t, provider.RevokedUIDs, 1, "registration must end signed out")

	uid := provider.RevokedUIDs[0]
	data, ok := blobs.Object("profile_photos/" + uid)
	require.True(t, ok, "photo stored keyed by the new uid")
	assert.Equal(t, "fake-jpeg-bytes", string(data))

	profile, ok := provider.UpdatedProfiles[uid]
	require.True(t, ok)
	assert.Equal(t, "Sofie Janssens", profile.DisplayName)
	assert.Equal(t, "https://blob.test/profile_photos/"+uid, profile.PhotoURL)
}

func TestRegisterWithoutPhotoSkipsUpload(t *testing.T) {
	provider := platformtest.NewFakeIdentity()
	svc, _ := newService(t, provider)

	err := svc.Register(context.Background(), RegisterInput{
		Name:            "Jonas",
		Email:           "jonas@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.NoError(t, err)

	uid := provider.RevokedUIDs[0]
	assert.Empty(t, provider.UpdatedProfiles[uid].PhotoURL)
}

func TestRegisterExistingAccount(t *testing.T) {
	provider := platformtest.NewFakeIdentity()
	provider.AddUserWithEmail("sofie@example.com", &platformtest.FakeUser{UID: "u1", Password: "x"})
	svc, _ := newService(t, provider)

	err := svc.Register(context.Background(), RegisterInput{
		Email:           "sofie@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	provider := platformtest.NewFakeIdentity()
	provider.SignOutErr = assert.AnError
	svc, _ := newService(t, provider)

	// Must not panic or surface the revocation error.
	svc.Logout(context.Background(), nil)
}
