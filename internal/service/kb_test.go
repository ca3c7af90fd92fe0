package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/digipratibha/stuportal/internal/model"
)

func testEntries() []model.KBEntry {
	return []model.KBEntry{
		{Keyword: "admission", Answer: "Admissions open from April to July."},
		{Keyword: "courses", Answer: "We offer B.Tech and MBA."},
		{Keyword: "campus", Answer: "Our campus has modern labs."},
	}
}

func TestKnowledgeBaseLookup(t *testing.T) {
	kb := NewKnowledgeBase(testEntries())

	tests := []struct {
		name     string
		question string
		want     string
		found    bool
	}{
		{
			name:     "keyword inside question",
			question: "When do admissions open?",
			want:     "Admissions open from April to July.",
			found:    true,
		},
		{
			name:     "case insensitive",
			question: "TELL ME ABOUT THE CAMPUS",
			want:     "Our campus has modern labs.",
			found:    true,
		},
		{
			name:     "no match",
			question: "What is the weather?",
			found:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := kb.Lookup(tt.question)
			require.Equal(t, tt.found, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestKnowledgeBaseLookup_DeclarationOrderWins(t *testing.T) {
	kb := NewKnowledgeBase([]model.KBEntry{
		{Keyword: "course", Answer: "first"},
		{Keyword: "courses", Answer: "second"},
	})
	got, ok := kb.Lookup("which courses do you offer")
	require.True(t, ok)
	require.Equal(t, "first", got)
}

func TestNewKnowledgeBase_DropsEmptyKeywords(t *testing.T) {
	kb := NewKnowledgeBase([]model.KBEntry{
		{Keyword: "   ", Answer: "never matched"},
		{Keyword: "contact", Answer: "reach us by mail"},
	})
	_, ok := kb.Lookup("anything at all")
	require.False(t, ok)
	got, ok := kb.Lookup("how do I contact you")
	require.True(t, ok)
	require.Equal(t, "reach us by mail", got)
}
