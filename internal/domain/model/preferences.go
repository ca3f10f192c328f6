package model

// Preferences is the only UI state that outlives a page visit.
type Preferences struct {
	DarkMode bool `json:"dark_mode"`
}

func DefaultPreferences() Preferences {
	return Preferences{}
}
