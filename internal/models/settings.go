package models

// UserSettings holds the user's watched currencies and stock symbols.
// Both lists default to empty; a missing or malformed settings file never
// yields a partial result.
type UserSettings struct {
	Currencies []string `json:"user_currencies"`
	Stocks     []string `json:"user_stocks"`
}

// EmptyUserSettings returns settings with both lists empty but non-nil.
func EmptyUserSettings() UserSettings {
	return UserSettings{
		Currencies: []string{},
		Stocks:     []string{},
	}
}
