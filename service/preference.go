package service

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/telerehab/dashboard-api/model"
	"github.com/telerehab/dashboard-api/util"
)

// Preference keys, mirroring the storage keys the dashboard client uses.
const (
	PrefColorTheme = "colorTheme"
	PrefMode       = "theme"
	PrefLanguage   = "language"
)

// PreferenceStore persists small string-valued settings. Get returns ""
// for keys that were never set.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// redisPreferenceStore keeps preferences in Redis under pref:<key>.
type redisPreferenceStore struct {
	client *redis.Client
}

func (s *redisPreferenceStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, "pref:"+key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (s *redisPreferenceStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, "pref:"+key, value, 0).Err()
}

// memoryPreferenceStore is the fallback when Redis is absent. Lifetime is
// the process lifetime, matching the mock record set.
type memoryPreferenceStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryPreferenceStore returns an empty in-process store.
func NewMemoryPreferenceStore() PreferenceStore {
	return &memoryPreferenceStore{values: make(map[string]string)}
}

func (s *memoryPreferenceStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

func (s *memoryPreferenceStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// NewPreferenceStore picks Redis when a client is available, otherwise the
// in-memory fallback.
func NewPreferenceStore(client *redis.Client) PreferenceStore {
	if client != nil {
		return &redisPreferenceStore{client: client}
	}
	return NewMemoryPreferenceStore()
}

// ThemeManager applies a named color palette and remembers the choice.
type ThemeManager struct {
	store PreferenceStore
}

// NewThemeManager wraps a preference store.
func NewThemeManager(store PreferenceStore) *ThemeManager {
	return &ThemeManager{store: store}
}

// Current reads the persisted palette selection, defaulting to the baseline
// palette when nothing is stored or the stored name is unknown.
func (m *ThemeManager) Current(ctx context.Context) string {
	name, err := m.store.Get(ctx, PrefColorTheme)
	if err != nil || !model.KnownPalette(name) {
		return model.DefaultPalette
	}
	return name
}

// SetCurrent persists and applies the palette. Unrecognized names are
// rejected silently: false, nothing persisted, no error raised.
func (m *ThemeManager) SetCurrent(ctx context.Context, name string) bool {
	if !model.KnownPalette(name) {
		return false
	}
	if err := m.store.Set(ctx, PrefColorTheme, name); err != nil {
		return false
	}
	return true
}

// Apply resolves the palette's style tokens. Idempotent; unknown names fall
// back to the baseline palette so the caller always gets drawable tokens.
func (m *ThemeManager) Apply(name string) map[string]string {
	return model.PaletteByName(name).Tokens
}

// Initialize is the page-mount composition: read the persisted selection
// and resolve its tokens, returning both so the caller can sync its state.
func (m *ThemeManager) Initialize(ctx context.Context) (string, map[string]string) {
	name := m.Current(ctx)
	return name, m.Apply(name)
}

// Mode returns the persisted light/dark mode, defaulting to light.
func (m *ThemeManager) Mode(ctx context.Context) string {
	mode, err := m.store.Get(ctx, PrefMode)
	if err != nil || !model.ValidMode(mode) {
		return model.ModeLight
	}
	return mode
}

// SetMode persists the light/dark mode; unknown values are rejected.
func (m *ThemeManager) SetMode(ctx context.Context, mode string) bool {
	if !model.ValidMode(mode) {
		return false
	}
	return m.store.Set(ctx, PrefMode, mode) == nil
}

// Language returns the persisted UI language, defaulting to English.
func (m *ThemeManager) Language(ctx context.Context) string {
	lang, err := m.store.Get(ctx, PrefLanguage)
	if err != nil || !util.KnownLanguage(lang) {
		return "en"
	}
	return lang
}

// SetLanguage persists the UI language; unknown codes are rejected.
func (m *ThemeManager) SetLanguage(ctx context.Context, lang string) bool {
	if !util.KnownLanguage(lang) {
		return false
	}
	return m.store.Set(ctx, PrefLanguage, lang) == nil
}
