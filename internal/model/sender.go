package model

// SenderFilter describes one configured invoice sender. Loaded fresh from
// the settings sheet on every run; immutable once loaded.
type SenderFilter struct {
	Email    string
	Company  string
	Keyword  string
	Currency string
	Enabled  bool
}
