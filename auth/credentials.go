package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"bizsite/crypto"
	"bizsite/models"
	"bizsite/storage"
)

// ErrAlreadyExists is returned by Create when an admin record is present.
var ErrAlreadyExists = errors.New("admin account already exists")

// DefaultSessionTTL is how long a login stays valid.
const DefaultSessionTTL = 24 * time.Hour

// CredentialStore manages the single admin record and the session flag.
//
// Operations that need a record report false when there is none, and
// mismatched credentials are a plain false. Errors are reserved for the
// underlying storage failing.
type CredentialStore struct {
	records  storage.Storage
	sessions storage.Storage
	hasher   crypto.PasswordHasher
	now      func() time.Time
	ttl      time.Duration
	logger   *zap.Logger
}

type Option func(*CredentialStore)

// WithSessionStorage keeps the session flag apart from the admin record.
func WithSessionStorage(s storage.Storage) Option {
	return func(c *CredentialStore) { c.sessions = s }
}

func WithHasher(h crypto.PasswordHasher) Option {
	return func(c *CredentialStore) { c.hasher = h }
}

func WithClock(now func() time.Time) Option {
	return func(c *CredentialStore) { c.now = now }
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(c *CredentialStore) { c.ttl = ttl }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *CredentialStore) { c.logger = l }
}

// NewCredentialStore returns a store over records. By default the session
// flag shares the same storage and passwords use SHA256Hasher.
func NewCredentialStore(records storage.Storage, opts ...Option) *CredentialStore {
	c := &CredentialStore{
		records: records,
		hasher:  crypto.SHA256Hasher{},
		now:     time.Now,
		ttl:     DefaultSessionTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sessions == nil {
		c.sessions = records
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// ForSession returns a copy of c whose session flag lives in s.
func (c *CredentialStore) ForSession(s storage.Storage) *CredentialStore {
	cp := *c
	cp.sessions = s
	return &cp
}

// SessionTTL is how long a login stays valid.
func (c *CredentialStore) SessionTTL() time.Duration { return c.ttl }

func (c *CredentialStore) Exists() (bool, error) {
	_, ok, err := c.records.Get(storage.KeyAdminUser)
	if err != nil {
		return false, fmt.Errorf("checking admin record: %w", err)
	}
	return ok, nil
}

// Admin returns the stored record. A record that fails to parse is treated
// as absent.
func (c *CredentialStore) Admin() (models.AdminRecord, bool, error) {
	raw, ok, err := c.records.Get(storage.KeyAdminUser)
	if err != nil {
		return models.AdminRecord{}, false, fmt.Errorf("reading admin record: %w", err)
	}
	if !ok {
		return models.AdminRecord{}, false, nil
	}
	var rec models.AdminRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		c.logger.Warn("Stored admin record is unreadable", zap.Error(err))
		return models.AdminRecord{}, false, nil
	}
	return rec, true, nil
}

func (c *CredentialStore) Create(username, password, email, phone string) error {
	exists, err := c.Exists()
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyExists
	}

	hash, err := c.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	rec := models.AdminRecord{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		Phone:        phone,
		CreatedAt:    c.now().UTC(),
	}
	if err := c.put(rec); err != nil {
		return err
	}
	c.logger.Info("Admin account created", zap.String("username", username))
	return nil
}

// Login starts a session when username and password match. Nothing is
// written on failure.
func (c *CredentialStore) Login(username, password string) (bool, error) {
	rec, ok, err := c.Admin()
	if err != nil || !ok {
		return false, err
	}
	if rec.Username != username || !c.hasher.Verify(password, rec.PasswordHash) {
		return false, nil
	}

	if err := c.sessions.Set(storage.KeyAdminAuthenticated, "true"); err != nil {
		return false, fmt.Errorf("writing session flag: %w", err)
	}
	start := strconv.FormatInt(c.now().UnixMilli(), 10)
	if err := c.sessions.Set(storage.KeyAdminSessionTime, start); err != nil {
		return false, fmt.Errorf("writing session time: %w", err)
	}
	return true, nil
}

// Session reads the session flag without expiring it. ok is false when no
// well-formed flag is stored.
func (c *CredentialStore) Session() (models.SessionFlag, bool, error) {
	flag, ok, err := c.sessions.Get(storage.KeyAdminAuthenticated)
	if err != nil {
		return models.SessionFlag{}, false, fmt.Errorf("reading session flag: %w", err)
	}
	if !ok || flag != "true" {
		return models.SessionFlag{}, false, nil
	}
	raw, ok, err := c.sessions.Get(storage.KeyAdminSessionTime)
	if err != nil {
		return models.SessionFlag{}, false, fmt.Errorf("reading session time: %w", err)
	}
	if !ok {
		return models.SessionFlag{}, false, nil
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return models.SessionFlag{}, false, nil
	}
	return models.SessionFlag{Authenticated: true, SessionStart: time.UnixMilli(ms)}, true, nil
}

// IsAuthenticated reports whether an unexpired session is open. A stale or
// malformed flag is cleared as a side effect.
func (c *CredentialStore) IsAuthenticated() (bool, error) {
	flag, ok, err := c.Session()
	if err != nil {
		return false, err
	}
	if ok && flag.Age(c.now()) < c.ttl {
		return true, nil
	}
	if _, present, _ := c.sessions.Get(storage.KeyAdminAuthenticated); present {
		if ok {
			c.logger.Debug("Admin session expired", zap.Time("started", flag.SessionStart))
		}
		return false, c.Logout()
	}
	return false, nil
}

func (c *CredentialStore) Logout() error {
	if err := c.sessions.Remove(storage.KeyAdminAuthenticated); err != nil {
		return fmt.Errorf("clearing session flag: %w", err)
	}
	if err := c.sessions.Remove(storage.KeyAdminSessionTime); err != nil {
		return fmt.Errorf("clearing session time: %w", err)
	}
	return nil
}

// ResetPassword replaces the password when username matches and
// emailOrPhone equals the stored email or phone exactly.
func (c *CredentialStore) ResetPassword(username, emailOrPhone, newPassword string) (bool, error) {
	rec, ok, err := c.Admin()
	if err != nil || !ok {
		return false, err
	}
	if rec.Username != username {
		return false, nil
	}
	if rec.Email != emailOrPhone && rec.Phone != emailOrPhone {
		return false, nil
	}

	hash, err := c.hasher.Hash(newPassword)
	if err != nil {
		return false, fmt.Errorf("hashing password: %w", err)
	}
	rec.PasswordHash = hash
	if err := c.put(rec); err != nil {
		return false, err
	}
	c.logger.Info("Admin password reset", zap.String("username", username))
	return true, nil
}

// UpdateInfo overwrites the recovery email and phone.
func (c *CredentialStore) UpdateInfo(email, phone string) (bool, error) {
	rec, ok, err := c.Admin()
	if err != nil || !ok {
		return false, err
	}
	rec.Email = email
	rec.Phone = phone
	if err := c.put(rec); err != nil {
		return false, err
	}
	return true, nil
}

func (c *CredentialStore) put(rec models.AdminRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := c.records.Set(storage.KeyAdminUser, string(b)); err != nil {
		return fmt.Errorf("writing admin record: %w", err)
	}
	return nil
}
