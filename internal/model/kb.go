package model

// KBEntry is a single keyword/answer pair of the chatbot knowledge base.
// Entries are loaded from config at startup and never mutated afterwards;
// lookup order follows declaration order.
type KBEntry struct {
	Keyword string `json:"keyword"`
	Answer  string `json:"answer"`
}
