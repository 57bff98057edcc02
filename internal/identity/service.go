// Package identity orchestrates the login, registration and logout flows
// against the external identity provider and blob storage.
package identity

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/belmobile/belmobile-backend/internal/platform"
)

var (
	// ErrInvalidLogin is the single generic failure every non-verification
	// login problem collapses to; the specific reason is only logged.
	ErrInvalidLogin = errors.New("password or email incorrect")
	// ErrEmailUnverified means the credentials were right but the address is
	// not verified; the session has already been signed back out.
	ErrEmailUnverified = errors.New("email not verified")
	ErrTooManyAttempts = errors.New("too many failed login attempts, try again later")

	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password should be at least 6 characters")
	ErrAccountExists    = errors.New("user already exists")
)

const minPasswordLen = 6

type Service struct {
	log      *zap.Logger
	provider platform.IdentityProvider
	blobs    platform.BlobStorage
	throttle *Throttle
}

func NewService(log *zap.Logger, provider platform.IdentityProvider, blobs platform.BlobStorage, throttle *Throttle) *Service {
	return &Service{log: log, provider: provider, blobs: blobs, throttle: throttle}
}

// Login signs the user in. An unverified account gets a fresh verification
// mail, is signed straight back out so no authenticated state persists, and
// reports ErrEmailUnverified. Every other provider failure collapses to
// ErrInvalidLogin.
func (s *Service) Login(ctx context.Context, email, password string) (*platform.Session, error) {
	allowed, err := s.throttle.Allow(ctx, email)
	if err != nil {
		s.log.Warn("login throttle unavailable", zap.Error(err))
	} else if !allowed {
		return nil, ErrTooManyAttempts
	}

	sess, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		s.log.Error("sign-in failed", zap.String("email", email), zap.Error(err))
		if terr := s.throttle.RecordFailure(ctx, email); terr != nil {
			s.log.Warn("login throttle record failed", zap.Error(terr))
		}
		return nil, ErrInvalidLogin
	}

	if !sess.EmailVerified {
		// Resend so they hold a live link, then drop the session.
		if err := s.provider.SendVerificationEmail(ctx, sess); err != nil {
			s.log.Error("resend verification failed", zap.String("email", email), zap.Error(err))
		}
		if err := s.provider.SignOut(ctx, sess); err != nil {
			s.log.Error("sign-out after unverified login failed", zap.Error(err))
		}
		return nil, ErrEmailUnverified
	}

	if err := s.throttle.Reset(ctx, email); err != nil {
		s.log.Warn("login throttle reset failed", zap.Error(err))
	}
	return sess, nil
}

// RegisterInput carries the registration form. Photo is optional.
type RegisterInput struct {
	Name             string
	Email            string
	Password         string
	ConfirmPassword  string
	Photo            io.Reader
	PhotoContentType string
}

// Register validates locally, creates the account, optionally uploads the
// profile photo keyed by the new uid, attaches the profile, sends the
// verification mail and signs out. A pre-existing account reports
// ErrAccountExists; any other provider failure surfaces as-is.
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	if in.Password != in.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if len(in.Password) < minPasswordLen {
		return ErrPasswordTooShort
	}

	sess, err := s.provider.SignUp(ctx, in.Email, in.Password)
	if err != nil {
		s.log.Error("sign-up failed", zap.String("email", in.Email), zap.Error(err))
		if platform.IsEmailExists(err) {
			return ErrAccountExists
		}
		return err
	}

	photoURL := ""
	if in.Photo != nil {
		path := "profile_photos/" + sess.UID
		if err := s.blobs.Upload(ctx, path, in.Photo, in.PhotoContentType); err != nil {
			return fmt.Errorf("upload profile photo: %w", err)
		}
		photoURL, err = s.blobs.DownloadURL(ctx, path)
		if err != nil {
			return fmt.Errorf("resolve profile photo url: %w", err)
		}
	}

	if err := s.provider.UpdateProfile(ctx, sess, platform.Profile{
		DisplayName: in.Name,
		PhotoURL:    photoURL,
	}); err != nil {
		return err
	}

	if err := s.provider.SendVerificationEmail(ctx, sess); err != nil {
		return err
	}

	// Sign out immediately to force a fresh login after verification.
	if err := s.provider.SignOut(ctx, sess); err != nil {
		s.log.Error("sign-out after registration failed", zap.Error(err))
	}
	return nil
}

// Logout revokes the session and unconditionally succeeds; revocation
// errors are logged only.
func (s *Service) Logout(ctx context.Context, sess *platform.Session) {
	if err := s.provider.SignOut(ctx, sess); err != nil {
		s.log.Error("sign-out failed", zap.Error(err))
	}
}
