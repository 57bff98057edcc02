package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"firebase.google.com/go/v4/auth"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// FirebaseIdentity implements IdentityProvider on the Firebase Auth Admin SDK
// plus the Identity Toolkit REST API. The Admin SDK carries no password
// grant, so sign-in, sign-up and verification mail go over REST with the
// project's web API key; token verification, profile updates and refresh
// token revocation use the Admin client.
type FirebaseIdentity struct {
	admin   *auth.Client
	apiKey  string
	baseURL string
	httpc   *http.Client

	mu        sync.Mutex
	listeners map[int]SessionChangeFunc
	nextID    int
}

func NewFirebaseIdentity(admin *auth.Client, apiKey string) *FirebaseIdentity {
	return &FirebaseIdentity{
		admin:     admin,
		apiKey:    apiKey,
		baseURL:   identityToolkitURL,
		httpc:     &http.Client{Timeout: 15 * time.Second},
		listeners: make(map[int]SessionChangeFunc),
	}
}

// WithBaseURL points the REST calls at a different endpoint (tests).
func (p *FirebaseIdentity) WithBaseURL(url string) *FirebaseIdentity {
	p.baseURL = strings.TrimRight(url, "/")
	return p
}

func (p *FirebaseIdentity) OnSessionChange(cb SessionChangeFunc) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = cb
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
	}
}

func (p *FirebaseIdentity) notify(s *Session) {
	p.mu.Lock()
	cbs := make([]SessionChangeFunc, 0, len(p.listeners))
	for _, cb := range p.listeners {
		cbs = append(cbs, cb)
	}
	p.mu.Unlock()

	for _, cb := range cbs {
		cb(s)
	}
}

// ResolveInitialSession emits the startup session state (no restored
// session) so trackers can leave loading.
func (p *FirebaseIdentity) ResolveInitialSession() {
	p.notify(nil)
}

type toolkitError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}

type lookupResponse struct {
	Users []struct {
		LocalID       string `json:"localId"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"emailVerified"`
		DisplayName   string `json:"displayName"`
		PhotoURL      string `json:"photoUrl"`
	} `json:"users"`
}

func (p *FirebaseIdentity) post(ctx context.Context, endpoint string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return NewError(KindInternal, "", err)
	}

	url := fmt.Sprintf("%s/%s?key=%s", p.baseURL, endpoint, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return NewError(KindInternal, "", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpc.Do(req)
	if err != nil {
		return NewError(KindUnavailable, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var te toolkitError
		_ = json.NewDecoder(resp.Body).Decode(&te)
		return mapToolkitErr(te.Error.Message, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return NewError(KindInternal, "", err)
		}
	}
	return nil
}

func (p *FirebaseIdentity) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var res signInResponse
	err := p.post(ctx, "accounts:signInWithPassword", map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &res)
	if err != nil {
		return nil, err
	}

	s := &Session{
		UID:          res.LocalID,
		Email:        res.Email,
		DisplayName:  res.DisplayName,
		IDToken:      res.IDToken,
		RefreshToken: res.RefreshToken,
	}

	// Email verification status only comes back from a lookup.
	var lr lookupResponse
	if err := p.post(ctx, "accounts:lookup", map[string]interface{}{"idToken": res.IDToken}, &lr); err != nil {
		return nil, err
	}
	if len(lr.Users) > 0 {
		s.EmailVerified = lr.Users[0].EmailVerified
		s.PhotoURL = lr.Users[0].PhotoURL
		if lr.Users[0].DisplayName != "" {
			s.DisplayName = lr.Users[0].DisplayName
		}
	}

	p.notify(s)
	return s, nil
}

func (p *FirebaseIdentity) SignUp(ctx context.Context, email, password string) (*Session, error) {
	var res signInResponse
	err := p.post(ctx, "accounts:signUp", map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &res)
	if err != nil {
		return nil, err
	}

	s := &Session{
		UID:          res.LocalID,
		Email:        res.Email,
		IDToken:      res.IDToken,
		RefreshToken: res.RefreshToken,
	}
	p.notify(s)
	return s, nil
}

func (p *FirebaseIdentity) SignOut(ctx context.Context, s *Session) error {
	defer p.notify(nil)

	if s == nil || s.UID == "" {
		return nil
	}
	if err := p.admin.RevokeRefreshTokens(ctx, s.UID); err != nil {
		return NewError(KindInternal, "", err)
	}
	return nil
}

func (p *FirebaseIdentity) SendVerificationEmail(ctx context.Context, s *Session) error {
	if s == nil || s.IDToken == "" {
		return NewError(KindInvalidCredential, "", fmt.Errorf("no session token"))
	}
	return p.post(ctx, "accounts:sendOobCode", map[string]interface{}{
		"requestType": "VERIFY_EMAIL",
		"idToken":     s.IDToken,
	}, nil)
}

func (p *FirebaseIdentity) UpdateProfile(ctx context.Context, s *Session, profile Profile) error {
	if s == nil || s.UID == "" {
		return NewError(KindInvalidCredential, "", fmt.Errorf("no session"))
	}

	params := &auth.UserToUpdate{}
	params = params.DisplayName(profile.DisplayName)
	if profile.PhotoURL != "" {
		params = params.PhotoURL(profile.PhotoURL)
	}

	if _, err := p.admin.UpdateUser(ctx, s.UID, params); err != nil {
		return NewError(KindInternal, "", err)
	}

	s.DisplayName = profile.DisplayName
	if profile.PhotoURL != "" {
		s.PhotoURL = profile.PhotoURL
	}
	return nil
}

func (p *FirebaseIdentity) VerifyToken(ctx context.Context, idToken string) (*Session, error) {
	tok, err := p.admin.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, NewError(KindInvalidCredential, "", err)
	}

	s := &Session{UID: tok.UID, IDToken: idToken}
	if email, ok := tok.Claims["email"].(string); ok {
		s.Email = email
	}
	if verified, ok := tok.Claims["email_verified"].(bool); ok {
		s.EmailVerified = verified
	}
	if name, ok := tok.Claims["name"].(string); ok {
		s.DisplayName = name
	}
	return s, nil
}

// mapToolkitErr translates Identity Toolkit error codes into the closed
// kinds. Codes may carry explanatory suffixes ("TOO_MANY_ATTEMPTS_TRY_LATER :
// ..."), so matching is prefix-based.
func mapToolkitErr(code string, httpStatus int) error {
	base := fmt.Errorf("identity toolkit: %s (http %d)", code, httpStatus)
	switch {
	case strings.HasPrefix(code, "EMAIL_EXISTS"):
		return NewError(KindEmailExists, code, base)
	case strings.HasPrefix(code, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(code, "INVALID_PASSWORD"),
		strings.HasPrefix(code, "INVALID_LOGIN_CREDENTIALS"),
		strings.HasPrefix(code, "USER_DISABLED"),
		strings.HasPrefix(code, "INVALID_ID_TOKEN"):
		return NewError(KindInvalidCredential, code, base)
	case strings.HasPrefix(code, "TOO_MANY_ATTEMPTS_TRY_LATER"):
		return NewError(KindUnavailable, code, base)
	default:
		return NewError(KindInternal, code, base)
	}
}
