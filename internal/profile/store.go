package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nao1215/housepred/internal/model"
)

// ProfileKey is the storage key that holds the serialized profile.
const ProfileKey = "authUser"

// KeyValueStore is the persistent storage the profile lives in.
type KeyValueStore interface {
	// Get returns the value under key; the boolean is false when absent.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set replaces the value under key.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// modTimer is implemented by stores that track write times.
type modTimer interface {
	ModifiedAt(ctx context.Context, key string) (time.Time, bool, error)
}

// Draft holds the editable profile fields before defaults are applied.
type Draft struct {
	Name   string
	Email  string
	Avatar string
}

// DraftFrom returns a Draft pre-filled from an existing profile.
func DraftFrom(p model.UserProfile) Draft {
	return Draft{Name: p.Name, Email: p.Email, Avatar: p.Avatar}
}

// Store reads and writes the user profile.
type Store struct {
	kv     KeyValueStore
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report unreadable profiles.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a Store on top of kv.
func NewStore(kv KeyValueStore, opts ...Option) *Store {
	s := &Store{kv: kv}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Load returns the stored profile. The boolean is false when there is no
// usable profile: the key is absent, the value is not a JSON object, the
// name is empty, or the store could not be read. None of these are errors.
func (s *Store) Load(ctx context.Context) (model.UserProfile, bool) {
	raw, ok, err := s.kv.Get(ctx, ProfileKey)
	if err != nil {
		s.logger.Warn("failed to read profile", "error", err)
		return model.UserProfile{}, false
	}
	if !ok {
		return model.UserProfile{}, false
	}

	var p model.UserProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.logger.Warn("ignoring corrupt profile", "error", err)
		return model.UserProfile{}, false
	}
	if p.Name == "" {
		s.logger.Warn("ignoring profile without name")
		return model.UserProfile{}, false
	}
	return p, true
}

// Save writes the draft as the current profile and returns what was stored.
// A blank name becomes model.DefaultProfileName. The provider of the
// existing profile is kept, or model.ProviderPassword if there is none.
func (s *Store) Save(ctx context.Context, d Draft) (model.UserProfile, error) {
	provider := model.ProviderPassword
	if existing, ok := s.Load(ctx); ok && existing.Provider != "" {
		provider = existing.Provider
	}
	return s.write(ctx, d, provider)
}

// Signup creates a new password-based profile and stores it, replacing
// any existing one.
func (s *Store) Signup(ctx context.Context, name, email string) (model.UserProfile, error) {
	return s.write(ctx, Draft{Name: name, Email: email}, model.ProviderPassword)
}

// Clear removes the stored profile. Load returns false afterwards.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, ProfileKey); err != nil {
		return fmt.Errorf("failed to clear profile: %w", err)
	}
	return nil
}

// Modified reports when the profile was last written. The boolean is false
// when the store does not track write times or no profile is stored.
func (s *Store) Modified(ctx context.Context) (time.Time, bool) {
	mt, ok := s.kv.(modTimer)
	if !ok {
		return time.Time{}, false
	}
	t, ok, err := mt.ModifiedAt(ctx, ProfileKey)
	if err != nil {
		s.logger.Debug("failed to read profile timestamp", "error", err)
		return time.Time{}, false
	}
	return t, ok
}

// View returns the profile together with presentation fields.
func (s *Store) View(ctx context.Context) (*model.ProfileView, bool) {
	p, ok := s.Load(ctx)
	if !ok {
		return nil, false
	}
	view := &model.ProfileView{
		Profile:     p,
		DisplayName: DisplayName(p),
	}
	if t, ok := s.Modified(ctx); ok {
		view.ModifiedAt = t
	}
	return view, true
}

// write applies the defaulting rules and overwrites the stored profile.
func (s *Store) write(ctx context.Context, d Draft, provider string) (model.UserProfile, error) {
	p := model.UserProfile{
		Name:     strings.TrimSpace(d.Name),
		Email:    strings.TrimSpace(d.Email),
		Avatar:   strings.TrimSpace(d.Avatar),
		Provider: provider,
	}
	if p.Name == "" {
		p.Name = model.DefaultProfileName
	}

	data, err := json.Marshal(p)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := s.kv.Set(ctx, ProfileKey, string(data)); err != nil {
		return model.UserProfile{}, fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Debug("profile saved", "provider", p.Provider)
	return p, nil
}

// DisplayName returns the name to show for p. A name that looks like an
// email address is shortened to the part before "@".
func DisplayName(p model.UserProfile) string {
	if local, _, found := strings.Cut(p.Name, "@"); found {
		return local
	}
	return p.Name
}
