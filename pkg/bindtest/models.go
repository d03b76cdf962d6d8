package bindtest

// Settings is a small model used across binding tests.
type Settings struct {
	Volume     float64
	RetryCount int
	Muted      bool
	Nickname   string
}

// Preferences nests Settings behind a pointer so tests can make the path
// unresolvable by clearing it.
type Preferences struct {
	Settings *Settings
	Theme    string
	Tags     []string
	Extra    map[string]any
}

// NewPreferences returns Preferences with every branch populated.
func NewPreferences() *Preferences {
	return &Preferences{
		Settings: &Settings{Volume: 0.5, RetryCount: 3, Nickname: "ada"},
		Theme:    "dark",
		Tags:     []string{"alpha", "beta"},
		Extra:    map[string]any{"zoom": 1.0},
	}
}
