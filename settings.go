package mdpdf

import "context"

// Keys of the persisted settings.
const (
	KeyTheme   = "theme"
	KeyContent = "content"
)

// Store is the per-user key/value persistence the session writes through to.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Settings is the persisted state, loaded once when a session starts.
type Settings struct {
	Theme      ThemeMode
	Content    string
	HasContent bool // false when nothing (or an empty text) was ever saved
}

// LoadSettings reads theme and content from s.
func LoadSettings(ctx context.Context, s Store) (Settings, error) {
	theme, _, err := s.Get(ctx, KeyTheme)
	if err != nil {
		return Settings{}, err
	}
	content, ok, err := s.Get(ctx, KeyContent)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Theme:      themeFromStored(theme),
		Content:    content,
		HasContent: ok && content != "",
	}, nil
}
