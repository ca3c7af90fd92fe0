package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/digipratibha/stuportal/internal/ai"
	"github.com/digipratibha/stuportal/internal/gencache"
	"github.com/digipratibha/stuportal/internal/model"
	appErr "github.com/digipratibha/stuportal/internal/pkg/errors"
)

const chatbotFallbackAnswer = "Sorry, I do not have that information."

const (
	careerSystemPrompt  = "You are a helpful career advisor. Output valid JSON only."
	analyzeSystemPrompt = "You are an expert software reviewer. Output valid JSON only."
	chatbotSystemPrompt = "You are a helpful college information assistant."
	summarySystemPrompt = "You write one-paragraph concise analytics insights for admins."
)

// ResourceIndex lists every resource that carries an embedding.
type ResourceIndex interface {
	ListEmbedded(ctx context.Context) ([]model.Resource, error)
}

type UserStats interface {
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since int64) (int64, error)
}

type ProjectStats interface {
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since int64) (int64, error)
}

type FeedbackStats interface {
	Count(ctx context.Context) (int64, error)
}

type CareerProfile struct {
	Skills         []string `json:"skills"`
	Interests      []string `json:"interests"`
	EducationLevel string   `json:"educationLevel"`
}

type DiscoveryOptions struct {
	Timeout       time.Duration
	MaxInputChars int
	CacheSize     int
	CacheTTL      time.Duration
}

// DiscoveryService implements the AI-assisted discovery operations:
// semantic search, career recommendation, chatbot, project analysis and
// the admin analytics summary.
type DiscoveryService struct {
	generator ai.IGenerator
	embedder  ai.IEmbedder
	resources ResourceIndex
	users     UserStats
	projects  ProjectStats
	feedback  FeedbackStats
	kb        *KnowledgeBase
	careers   *gencache.Cache[[]ai.CareerRecommendation]
	opts      DiscoveryOptions
}

func NewDiscoveryService(
	generator ai.IGenerator,
	embedder ai.IEmbedder,
	resources ResourceIndex,
	users UserStats,
	projects ProjectStats,
	feedback FeedbackStats,
	kb *KnowledgeBase,
	opts DiscoveryOptions,
) *DiscoveryService {
	return &DiscoveryService{
		generator: generator,
		embedder:  embedder,
		resources: resources,
		users:     users,
		projects:  projects,
		feedback:  feedback,
		kb:        kb,
		careers:   gencache.New[[]ai.CareerRecommendation](opts.CacheSize, opts.CacheTTL),
		opts:      opts,
	}
}

// SemanticSearch embeds the query and ranks every embedded resource by
// cosine similarity, returning the top five with their scores.
func (s *DiscoveryService) SemanticSearch(ctx context.Context, query string) ([]model.RankedResource, error) {
	query, err := s.cleanInput(query)
	if err != nil {
		return nil, err
	}
	logger := logutil.GetLogger(ctx).With(zap.String("query", query))
	queryEmb, err := s.embed(ctx, query)
	if err != nil {
		logger.Error("failed to embed search query", zap.Error(err))
		return nil, err
	}
	items, err := s.resources.ListEmbedded(ctx)
	if err != nil {
		logger.Error("failed to list embedded resources", zap.Error(err))
		return nil, err
	}
	ranked := ai.RankBySimilarity(queryEmb, items, func(r model.Resource) []float32 {
		return r.Embedding
	}, ai.DefaultTopK)
	results := make([]model.RankedResource, 0, len(ranked))
	for _, entry := range ranked {
		logger.Debug("semantic match", zap.String("resource_id", entry.Item.ID), zap.Float64("score", entry.Score))
		results = append(results, model.RankedResource{Resource: entry.Item, Score: entry.Score})
	}
	return results, nil
}

// CareerRecommendation generates up to five career paths for the profile.
// Results are memoized by the profile fingerprint; concurrent callers with
// an identical profile share a single generation call.
func (s *DiscoveryService) CareerRecommendation(ctx context.Context, profile CareerProfile) ([]ai.CareerRecommendation, error) {
	if strings.TrimSpace(profile.EducationLevel) == "" {
		return nil, appErr.ErrInvalid
	}
	if len(profile.Skills) == 0 && len(profile.Interests) == 0 {
		return nil, appErr.ErrInvalid
	}
	fingerprint := careerFingerprint(profile)
	return s.careers.GetOrGenerate(ctx, fingerprint, func(ctx context.Context) ([]ai.CareerRecommendation, error) {
		prompt := fmt.Sprintf("Given the user's profile:\nSkills: %s\nInterests: %s\nEducation level: %s\nSuggest 5 relevant career paths in JSON with fields: title, description, requiredSkills[], learningPath[] (short, actionable).",
			strings.Join(profile.Skills, ", "),
			strings.Join(profile.Interests, ", "),
			profile.EducationLevel,
		)
		raw, err := s.generate(ctx, ai.GenerateRequest{
			System:      careerSystemPrompt,
			Prompt:      prompt,
			Temperature: 0.7,
		})
		if err != nil {
			logutil.GetLogger(ctx).Error("career generation failed", zap.Error(err))
			return nil, err
		}
		return ai.ParseCareerList(raw), nil
	})
}

// ChatbotAnswer checks the knowledge base first; only unmatched questions
// reach the generative model.
func (s *DiscoveryService) ChatbotAnswer(ctx context.Context, question string) (string, error) {
	question, err := s.cleanInput(question)
	if err != nil {
		return "", err
	}
	if answer, ok := s.kb.Lookup(question); ok {
		return answer, nil
	}
	raw, err := s.generate(ctx, ai.GenerateRequest{
		System:      chatbotSystemPrompt,
		Prompt:      question,
		Temperature: 0.3,
	})
	if err != nil {
		logutil.GetLogger(ctx).Error("chatbot generation failed", zap.Error(err))
		return "", err
	}
	if strings.TrimSpace(raw) == "" {
		return chatbotFallbackAnswer, nil
	}
	return raw, nil
}

// AnalyzeProjectIdea critiques a project idea. Garbled model output
// degrades to the empty triple rather than failing the request.
func (s *DiscoveryService) AnalyzeProjectIdea(ctx context.Context, title, description string) (ai.ProjectAnalysis, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return ai.EmptyProjectAnalysis(), appErr.ErrInvalid
	}
	if s.opts.MaxInputChars > 0 && len(description) > s.opts.MaxInputChars {
		return ai.EmptyProjectAnalysis(), appErr.ErrInvalid
	}
	prompt := fmt.Sprintf("Analyze the following project idea and return JSON with fields strengths[], weaknesses[], suggestions[]:\nTitle: %s\nDescription: %s", title, description)
	raw, err := s.generate(ctx, ai.GenerateRequest{
		System:      analyzeSystemPrompt,
		Prompt:      prompt,
		Temperature: 0.4,
	})
	if err != nil {
		logutil.GetLogger(ctx).Error("project analysis failed", zap.Error(err))
		return ai.EmptyProjectAnalysis(), err
	}
	return ai.ParseProjectAnalysis(raw), nil
}

// AdminSummary turns the platform counts into a one-paragraph plain-text
// insight. Admin-only and low volume, so it is not cached.
func (s *DiscoveryService) AdminSummary(ctx context.Context) (string, error) {
	logger := logutil.GetLogger(ctx)
	weekAgo := time.Now().Add(-7 * 24 * time.Hour).UnixMilli()
	users, err := s.users.Count(ctx)
	if err != nil {
		return "", err
	}
	projects, err := s.projects.Count(ctx)
	if err != nil {
		return "", err
	}
	feedback, err := s.feedback.Count(ctx)
	if err != nil {
		return "", err
	}
	recentUsers, err := s.users.CountSince(ctx, weekAgo)
	if err != nil {
		return "", err
	}
	recentProjects, err := s.projects.CountSince(ctx, weekAgo)
	if err != nil {
		return "", err
	}
	stats := fmt.Sprintf("Users: %d, Projects: %d, Feedback: %d, Last7Days: users=%d, projects=%d",
		users, projects, feedback, recentUsers, recentProjects)
	raw, err := s.generate(ctx, ai.GenerateRequest{
		System:      summarySystemPrompt,
		Prompt:      "Summarize these platform stats in plain English: " + stats,
		Temperature: 0.2,
	})
	if err != nil {
		logger.Error("admin summary generation failed", zap.Error(err))
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

func (s *DiscoveryService) generate(ctx context.Context, req ai.GenerateRequest) (string, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}
	return s.generator.Generate(ctx, req)
}

func (s *DiscoveryService) embed(ctx context.Context, text string) ([]float32, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}
	return s.embedder.Embed(ctx, text)
}

func (s *DiscoveryService) cleanInput(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", appErr.ErrInvalid
	}
	if s.opts.MaxInputChars > 0 && len(trimmed) > s.opts.MaxInputChars {
		return "", appErr.ErrInvalid
	}
	return trimmed, nil
}

// careerFingerprint produces a canonical, order-independent cache key for
// a profile: two semantically identical profiles hash identically no
// matter how their slices are ordered or cased.
func careerFingerprint(profile CareerProfile) string {
	canonical := func(values []string) []string {
		normalized := make([]string, 0, len(values))
		for _, v := range values {
			v = strings.ToLower(strings.TrimSpace(v))
			if v != "" {
				normalized = append(normalized, v)
			}
		}
		sort.Strings(normalized)
		return normalized
	}
	var b strings.Builder
	b.WriteString("skills=")
	b.WriteString(strings.Join(canonical(profile.Skills), ","))
	b.WriteString(";interests=")
	b.WriteString(strings.Join(canonical(profile.Interests), ","))
	b.WriteString(";education=")
	b.WriteString(strings.ToLower(strings.TrimSpace(profile.EducationLevel)))
	hash := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(hash[:])
}
