package service

import (
	"strings"

	"github.com/digipratibha/stuportal/internal/model"
)

// KnowledgeBase holds the chatbot's canned answers. It is built once at
// startup from config and is safe for concurrent reads.
type KnowledgeBase struct {
	entries []model.KBEntry
}

func NewKnowledgeBase(entries []model.KBEntry) *KnowledgeBase {
	kept := make([]model.KBEntry, 0, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.Keyword) == "" {
			continue
		}
		kept = append(kept, entry)
	}
	return &KnowledgeBase{entries: kept}
}

// Lookup returns the canned answer of the first entry whose keyword occurs
// in the question, case-insensitively. Declaration order wins.
func (kb *KnowledgeBase) Lookup(question string) (string, bool) {
	lowered := strings.ToLower(question)
	for _, entry := range kb.entries {
		if strings.Contains(lowered, strings.ToLower(entry.Keyword)) {
			return entry.Answer, true
		}
	}
	return "", false
}
