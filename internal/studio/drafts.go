package studio

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/redwireai/storefront/internal/audit"
	"github.com/redwireai/storefront/internal/content"
	"github.com/redwireai/storefront/internal/llm"
)

// StrategyFallback is shown when the strategy call fails.
const StrategyFallback = "AI insights currently unavailable. Let's proceed with your custom configuration."

// FallbackQuestions are offered when onboarding suggestions cannot be generated.
var FallbackQuestions = []string{
	"What is your name?",
	"How can we help you today?",
	"What is the best way to contact you?",
}

// PostDateLayout is the display date format of blog posts.
const PostDateLayout = "Jan 02, 2006"

type draftResponse struct {
	Title           string   `json:"title"`
	Excerpt         string   `json:"excerpt"`
	Content         string   `json:"content"`
	MetaDescription string   `json:"metaDescription"`
	Keywords        []string `json:"keywords"`
	ReadTime        string   `json:"readTime"`
}

func draftSchema() *llm.Schema {
	s := llm.ObjectSchema([]string{"title", "excerpt", "content", "metaDescription", "readTime"}, map[string]string{
		"content":  "Full article body in Markdown",
		"readTime": `Estimated reading time such as "5 min"`,
	})
	s.Properties["keywords"] = &llm.Schema{Type: "array", Items: &llm.Schema{Type: "string"}}
	s.Required = append(s.Required, "keywords")
	return s
}

// DraftPost writes a blog post about topic and saves it as a draft.
func (s *Studio) DraftPost(ctx context.Context, topic string) (content.BlogPost, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return content.BlogPost{}, ErrEmptyContext
	}
	if err := s.ensureKey(); err != nil {
		return content.BlogPost{}, err
	}

	resp, err := s.client.Complete(ctx, llm.CompletionRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: draftSystemPrompt},
			{Role: llm.RoleUser, Content: draftPrompt(s.state.Settings().SiteName, topic)},
		},
		MaxTokens:   4096,
		Temperature: 0.7,
		Schema:      draftSchema(),
	})
	if err != nil {
		return content.BlogPost{}, s.fail(fmt.Errorf("LLM completion: %w", err), "blog draft failed")
	}
	s.logCost(resp)

	var draft draftResponse
	if err := json.Unmarshal([]byte(cleanJSON(resp.Content)), &draft); err != nil {
		return content.BlogPost{}, fmt.Errorf("parsing draft response: %w", err)
	}
	if strings.TrimSpace(draft.Title) == "" || strings.TrimSpace(draft.Content) == "" {
		return content.BlogPost{}, fmt.Errorf("draft response missing title or content")
	}

	post := content.BlogPost{
		ID:              PostID(draft.Title),
		Title:           strings.TrimSpace(draft.Title),
		Date:            time.Now().Format(PostDateLayout),
		Excerpt:         strings.TrimSpace(draft.Excerpt),
		Content:         draft.Content,
		Status:          content.PostDraft,
		MetaDescription: strings.TrimSpace(draft.MetaDescription),
		Keywords:        draft.Keywords,
		ReadTime:        strings.TrimSpace(draft.ReadTime),
	}
	_, err = s.state.UpdatePosts(func(posts []content.BlogPost) ([]content.BlogPost, error) {
		return append([]content.BlogPost{post}, posts...), nil
	})
	if err != nil {
		return content.BlogPost{}, fmt.Errorf("saving draft: %w", err)
	}

	s.record(ctx, audit.Entry{
		Actor:    audit.ActorAI,
		Action:   audit.ActionBlogDraft,
		Target:   post.ID,
		NewValue: post.Title,
	})
	return post, nil
}

// Strategy returns a short automation strategy for a business. It never
// fails; errors produce StrategyFallback.
func (s *Studio) Strategy(ctx context.Context, businessName, industry string) string {
	resp, err := s.client.Complete(ctx, llm.CompletionRequest{
		Model:       s.model,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: strategyPrompt(businessName, industry)}},
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil || strings.TrimSpace(resp.Content) == "" {
		s.logger.Warn().Err(err).Msg("strategy generation failed")
		if llm.IsCredentialError(err) && s.status != nil {
			s.status.ReportMissing()
		}
		return StrategyFallback
	}
	s.logCost(resp)
	return strings.TrimSpace(resp.Content)
}

// OnboardingQuestions suggests the first questions an agent for product
// should ask new leads. Errors produce FallbackQuestions.
func (s *Studio) OnboardingQuestions(ctx context.Context, product string) []string {
	schema := &llm.Schema{
		Type: "object",
		Properties: map[string]*llm.Schema{
			"questions": {Type: "array", Items: &llm.Schema{Type: "string"}},
		},
	}
	resp, err := s.client.Complete(ctx, llm.CompletionRequest{
		Model:       s.model,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: onboardingPrompt(product)}},
		MaxTokens:   512,
		Temperature: 0.5,
		Schema:      schema,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("onboarding suggestions failed")
		return fallbackQuestions()
	}

	var out struct {
		Questions []string `json:"questions"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(resp.Content)), &out); err != nil || len(out.Questions) == 0 {
		return fallbackQuestions()
	}
	return out.Questions
}

func fallbackQuestions() []string {
	return append([]string(nil), FallbackQuestions...)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// PostID derives a URL-safe post id from a title plus a short random suffix.
func PostID(title string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if len(slug) > 60 {
		slug = strings.TrimRight(slug[:60], "-")
	}
	suffix := uuid.NewString()[:8]
	if slug == "" {
		return "post-" + suffix
	}
	return slug + "-" + suffix
}
