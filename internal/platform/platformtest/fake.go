// Package platformtest provides in-memory implementations of the platform
// contracts for tests.
package platformtest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/belmobile/belmobile-backend/internal/platform"
)

// FakeDocStore is an in-memory document store that delivers full-collection
// snapshots synchronously after every mutation.
type FakeDocStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]interface{}
	listeners   map[string][]listener

	// WriteErr, when set, fails every write-path call without mutating state.
	WriteErr error
	// ReadErr, when set, fails ReadAllOnce.
	ReadErr error

	WriteCalls int
	BatchCalls int
}

type listener struct {
	onSnapshot platform.SnapshotFunc
	onError    platform.ErrorFunc
	stopped    *bool
}

func NewFakeDocStore() *FakeDocStore {
	return &FakeDocStore{
		collections: make(map[string]map[string]map[string]interface{}),
		listeners:   make(map[string][]listener),
	}
}

func toFields(record interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (f *FakeDocStore) snapshotLocked(collection string) []platform.Document {
	col := f.collections[collection]
	ids := make([]string, 0, len(col))
	for id := range col {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	docs := make([]platform.Document, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, platform.Document{ID: id, Data: col[id]})
	}
	return docs
}

func (f *FakeDocStore) deliverLocked(collection string) {
	docs := f.snapshotLocked(collection)
	for _, l := range f.listeners[collection] {
		if !*l.stopped {
			l.onSnapshot(docs)
		}
	}
}

func (f *FakeDocStore) Subscribe(_ context.Context, collection string, onSnapshot platform.SnapshotFunc, onError platform.ErrorFunc) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stopped := false
	f.listeners[collection] = append(f.listeners[collection], listener{
		onSnapshot: onSnapshot,
		onError:    onError,
		stopped:    &stopped,
	})
	onSnapshot(f.snapshotLocked(collection))

	return func() { stopped = true }, nil
}

// FailSubscription invokes every registered error callback for a collection.
func (f *FakeDocStore) FailSubscription(collection string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.listeners[collection] {
		if !*l.stopped && l.onError != nil {
			l.onError(err)
		}
	}
}

func (f *FakeDocStore) Write(_ context.Context, collection, id string, record interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.WriteCalls++
	if f.WriteErr != nil {
		return f.WriteErr
	}

	fields, err := toFields(record)
	if err != nil {
		return err
	}
	if f.collections[collection] == nil {
		f.collections[collection] = make(map[string]map[string]interface{})
	}
	f.collections[collection][id] = fields
	f.deliverLocked(collection)
	return nil
}

func (f *FakeDocStore) Update(_ context.Context, collection, id string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.WriteCalls++
	if f.WriteErr != nil {
		return f.WriteErr
	}

	doc, ok := f.collections[collection][id]
	if !ok {
		return platform.NewError(platform.KindNotFound, "", fmt.Errorf("%s/%s not found", collection, id))
	}
	for k, v := range fields {
		doc[k] = v
	}
	f.deliverLocked(collection)
	return nil
}

func (f *FakeDocStore) Delete(_ context.Context, collection, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.WriteCalls++
	if f.WriteErr != nil {
		return f.WriteErr
	}

	delete(f.collections[collection], id)
	f.deliverLocked(collection)
	return nil
}

// DeleteExternally removes a document as if another client had, pushing the
// resulting snapshot to all listeners.
func (f *FakeDocStore) DeleteExternally(collection, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.collections[collection], id)
	f.deliverLocked(collection)
}

func (f *FakeDocStore) ReadAllOnce(_ context.Context, collection string) ([]platform.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadErr != nil {
		return nil, f.ReadErr
	}
	return f.snapshotLocked(collection), nil
}

func (f *FakeDocStore) BatchWrite(_ context.Context, docs []platform.BatchDoc) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.BatchCalls++
	if f.WriteErr != nil {
		return f.WriteErr
	}

	touched := make(map[string]bool)
	for _, d := range docs {
		fields, err := toFields(d.Record)
		if err != nil {
			return err
		}
		if f.collections[d.Collection] == nil {
			f.collections[d.Collection] = make(map[string]map[string]interface{})
		}
		f.collections[d.Collection][d.ID] = fields
		touched[d.Collection] = true
	}
	for col := range touched {
		f.deliverLocked(col)
	}
	return nil
}

// Count reports how many documents a collection holds.
func (f *FakeDocStore) Count(collection string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.collections[collection])
}

// FakeUser is an account known to the fake identity provider.
type FakeUser struct {
	UID         string
	Password    string
	Verified    bool
	DisplayName string
	PhotoURL    string
	Disabled    bool
}

// FakeIdentity is an in-memory identity provider.
type FakeIdentity struct {
	mu        sync.Mutex
	users     map[string]*FakeUser // keyed by email
	listeners map[int]platform.SessionChangeFunc
	nextID    int

	SignUpCalls       int
	VerificationMails []string // emails a verification was sent to
	RevokedUIDs       []string
	UpdatedProfiles   map[string]platform.Profile // keyed by uid

	SignOutErr error
}

func NewFakeIdentity(users ...*FakeUser) *FakeIdentity {
	f := &FakeIdentity{
		users:           make(map[string]*FakeUser),
		listeners:       make(map[int]platform.SessionChangeFunc),
		UpdatedProfiles: make(map[string]platform.Profile),
	}
	for _, u := range users {
		f.AddUser(u)
	}
	return f
}

// AddUser registers an account under email "uid@example.com" unless the UID
// already looks like an email.
func (f *FakeIdentity) AddUser(u *FakeUser) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	email := u.UID + "@example.com"
	f.users[email] = u
	return email
}

// AddUserWithEmail registers an account under an explicit email.
func (f *FakeIdentity) AddUserWithEmail(email string, u *FakeUser) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[email] = u
}

func (f *FakeIdentity) OnSessionChange(cb platform.SessionChangeFunc) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = cb
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.listeners, id)
	}
}

// ResolveInitialSession emits the startup session state (no restored
// session).
func (f *FakeIdentity) ResolveInitialSession() {
	f.notify(nil)
}

func (f *FakeIdentity) notify(s *platform.Session) {
	f.mu.Lock()
	cbs := make([]platform.SessionChangeFunc, 0, len(f.listeners))
	for _, cb := range f.listeners {
		cbs = append(cbs, cb)
	}
	f.mu.Unlock()
	for _, cb := range cbs {
		cb(s)
	}
}

func (f *FakeIdentity) sessionFor(email string, u *FakeUser) *platform.Session {
	return &platform.Session{
		UID:           u.UID,
		Email:         email,
		DisplayName:   u.DisplayName,
		PhotoURL:      u.PhotoURL,
		EmailVerified: u.Verified,
		IDToken:       "token-" + u.UID,
		RefreshToken:  "refresh-" + u.UID,
	}
}

func (f *FakeIdentity) SignIn(_ context.Context, email, password string) (*platform.Session, error) {
	f.mu.Lock()
	u, ok := f.users[email]
	f.mu.Unlock()

	if !ok || u.Password != password || u.Disabled {
		return nil, platform.NewError(platform.KindInvalidCredential, "INVALID_LOGIN_CREDENTIALS",
			fmt.Errorf("sign-in rejected for %s", email))
	}

	s := f.sessionFor(email, u)
	f.notify(s)
	return s, nil
}

func (f *FakeIdentity) SignUp(_ context.Context, email, password string) (*platform.Session, error) {
	f.mu.Lock()
	f.SignUpCalls++
	if _, exists := f.users[email]; exists {
		f.mu.Unlock()
		return nil, platform.NewError(platform.KindEmailExists, "EMAIL_EXISTS",
			fmt.Errorf("account exists for %s", email))
	}
	u := &FakeUser{UID: fmt.Sprintf("uid-%d", len(f.users)+1), Password: password}
	f.users[email] = u
	f.mu.Unlock()

	s := f.sessionFor(email, u)
	f.notify(s)
	return s, nil
}

func (f *FakeIdentity) SignOut(_ context.Context, s *platform.Session) error {
	defer f.notify(nil)
	if f.SignOutErr != nil {
		return f.SignOutErr
	}
	if s != nil {
		f.mu.Lock()
		f.RevokedUIDs = append(f.RevokedUIDs, s.UID)
		f.mu.Unlock()
	}
	return nil
}

func (f *FakeIdentity) SendVerificationEmail(_ context.Context, s *platform.Session) error {
	if s == nil {
		return platform.NewError(platform.KindInvalidCredential, "", fmt.Errorf("no session"))
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.VerificationMails = append(f.VerificationMails, s.Email)
	return nil
}

func (f *FakeIdentity) UpdateProfile(_ context.Context, s *platform.Session, p platform.Profile) error {
	if s == nil {
		return platform.NewError(platform.KindInvalidCredential, "", fmt.Errorf("no session"))
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdatedProfiles[s.UID] = p
	for _, u := range f.users {
		if u.UID == s.UID {
			u.DisplayName = p.DisplayName
			if p.PhotoURL != "" {
				u.PhotoURL = p.PhotoURL
			}
		}
	}
	s.DisplayName = p.DisplayName
	if p.PhotoURL != "" {
		s.PhotoURL = p.PhotoURL
	}
	return nil
}

func (f *FakeIdentity) VerifyToken(_ context.Context, idToken string) (*platform.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for email, u := range f.users {
		if idToken == "token-"+u.UID {
			return f.sessionFor(email, u), nil
		}
	}
	return nil, platform.NewError(platform.KindInvalidCredential, "INVALID_ID_TOKEN",
		fmt.Errorf("unknown token"))
}

// FakeBlob is an in-memory blob store.
type FakeBlob struct {
	mu      sync.Mutex
	objects map[string][]byte

	UploadErr error
}

func NewFakeBlob() *FakeBlob {
	return &FakeBlob{objects: make(map[string][]byte)}
}

func (f *FakeBlob) Upload(_ context.Context, path string, r io.Reader, _ string) error {
	if f.UploadErr != nil {
		return f.UploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[path] = data
	return nil
}

func (f *FakeBlob) DownloadURL(_ context.Context, path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[path]; !ok {
		return "", platform.NewError(platform.KindNotFound, "", fmt.Errorf("%s not found", path))
	}
	return "https://blob.test/" + path, nil
}

// Object returns the stored bytes for a path.
func (f *FakeBlob) Object(path string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objects[path]
	return b, ok
}
