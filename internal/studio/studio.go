// Package studio drives AI generation for the content console: whole-site
// rebrands, single images, blog drafts and onboarding helpers.
package studio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/redwireai/storefront/internal/audit"
	"github.com/redwireai/storefront/internal/content"
	"github.com/redwireai/storefront/internal/llm"
	"github.com/redwireai/storefront/internal/state"
)

var (
	// ErrEmptyContext is returned when a rebrand is requested without a
	// business description.
	ErrEmptyContext = errors.New("business context is empty")
	// ErrEmptyPrompt is returned when an image is requested without a prompt.
	ErrEmptyPrompt = errors.New("image prompt is empty")
)

// brandingFields are the keys the branding call must return, all non-empty.
var brandingFields = []string{
	"siteName", "logoText", "heroHeading", "heroSubheading",
	"productsHeading", "productsSubheading", "howItWorksHeading",
	"howItWorksSubheading", "trustHeading", "pricingHeading",
	"pricingSubheading", "affiliateHeading", "affiliateSubheading",
	"contactHeading", "contactSubheading", "imagePrompt", "trustImagePrompt",
}

// brandingTargets maps branding keys to the settings field they fill.
// logoText and the two image prompts are not copied.
var brandingTargets = map[string]string{
	"siteName":             "siteName",
	"heroHeading":          "heroHeading",
	"heroSubheading":       "heroSubheading",
	"productsHeading":      "productsHeading",
	"productsSubheading":   "productsSubheading",
	"howItWorksHeading":    "howItWorksHeading",
	"howItWorksSubheading": "howItWorksSubheading",
	"trustHeading":         "whyChooseUsHeading",
	"pricingHeading":       "pricingHeading",
	"pricingSubheading":    "pricingSubheading",
	"affiliateHeading":     "affiliateHeading",
	"affiliateSubheading":  "affiliateSubheading",
	"contactHeading":       "contactHeading",
	"contactSubheading":    "contactSubheading",
}

// ImageKind selects the aspect ratio and prompt suffix of a generated image.
type ImageKind string

const (
	ImageHero ImageKind = "hero"
	ImageLogo ImageKind = "logo"
)

// KeyStatus is the credential state the studio consults and updates.
type KeyStatus interface {
	HasKey() bool
	ReportMissing()
}

// Recorder receives audit entries for applied AI edits.
type Recorder interface {
	Record(ctx context.Context, entry audit.Entry)
}

// Options configures a Studio. Zero values are valid.
type Options struct {
	Model      string
	ImageModel string
	Status     KeyStatus
	Audit      Recorder
	Logger     zerolog.Logger
}

// Studio orchestrates generation calls and applies their results to the
// site state.
type Studio struct {
	client     llm.Client
	state      *state.Service
	model      string
	imageModel string
	status     KeyStatus
	audit      Recorder
	logger     zerolog.Logger

	running atomic.Int32
}

// New creates a Studio.
func New(client llm.Client, svc *state.Service, opts Options) *Studio {
	return &Studio{
		client:     client,
		state:      svc,
		model:      opts.Model,
		imageModel: opts.ImageModel,
		status:     opts.Status,
		audit:      opts.Audit,
		logger:     opts.Logger.With().Str("component", "studio").Logger(),
	}
}

// Busy reports whether a rebrand is in flight.
func (s *Studio) Busy() bool { return s.running.Load() > 0 }

// Rebrand generates new site copy and two images from businessContext and
// applies them as one settings transition. Nothing changes unless every
// step succeeds.
func (s *Studio) Rebrand(ctx context.Context, businessContext string) error {
	businessContext = strings.TrimSpace(businessContext)
	if businessContext == "" {
		return ErrEmptyContext
	}
	if err := s.ensureKey(); err != nil {
		return err
	}

	s.running.Add(1)
	defer s.running.Add(-1)

	branding, err := s.generateBranding(ctx, businessContext)
	if err != nil {
		return s.fail(err, "branding generation failed")
	}

	var heroURL, trustURL string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		url, err := s.generateImage(gctx, branding["imagePrompt"], ImageHero)
		heroURL = url
		return err
	})
	g.Go(func() error {
		url, err := s.generateImage(gctx, branding["trustImagePrompt"], ImageHero)
		trustURL = url
		return err
	})
	if err := g.Wait(); err != nil {
		return s.fail(err, "image generation failed")
	}

	var previous content.SiteSettings
	_, err = s.state.UpdateSettings(func(st *content.SiteSettings) error {
		previous = *st
		for key, field := range brandingTargets {
			if err := st.Set(field, branding[key]); err != nil {
				return err
			}
		}
		st.HeroImageURL = heroURL
		st.WhyChooseUsImageURL = trustURL
		return nil
	})
	if err != nil {
		return fmt.Errorf("applying branding: %w", err)
	}

	s.logger.Info().Str("site_name", branding["siteName"]).Msg("rebrand applied")
	s.record(ctx, audit.Entry{
		Actor:         audit.ActorAI,
		Action:        audit.ActionRebrandApply,
		Target:        "settings",
		Field:         "siteName",
		PreviousValue: previous.SiteName,
		NewValue:      branding["siteName"],
	})
	return nil
}

// GenerateImage produces one image and returns it as a data URL. Logos are
// square; everything else is 16:9.
func (s *Studio) GenerateImage(ctx context.Context, prompt string, kind ImageKind) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	if err := s.ensureKey(); err != nil {
		return "", err
	}
	url, err := s.generateImage(ctx, prompt, kind)
	if err != nil {
		return "", s.fail(err, "image generation failed")
	}
	return url, nil
}

func (s *Studio) generateBranding(ctx context.Context, businessContext string) (map[string]string, error) {
	resp, err := s.client.Complete(ctx, llm.CompletionRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: brandingSystemPrompt},
			{Role: llm.RoleUser, Content: brandingPrompt(businessContext)},
		},
		MaxTokens:   2048,
		Temperature: 0.8,
		Schema:      llm.ObjectSchema(brandingFields, brandingDescriptions),
	})
	if err != nil {
		return nil, fmt.Errorf("LLM completion: %w", err)
	}
	s.logCost(resp)

	var branding map[string]string
	if err := json.Unmarshal([]byte(cleanJSON(resp.Content)), &branding); err != nil {
		return nil, fmt.Errorf("parsing branding response: %w", err)
	}
	for _, key := range brandingFields {
		if strings.TrimSpace(branding[key]) == "" {
			return nil, fmt.Errorf("branding response missing %q", key)
		}
		branding[key] = strings.TrimSpace(branding[key])
	}
	return branding, nil
}

func (s *Studio) generateImage(ctx context.Context, prompt string, kind ImageKind) (string, error) {
	suffix, ratio := heroImageSuffix, "16:9"
	if kind == ImageLogo {
		suffix, ratio = logoImageSuffix, "1:1"
	}
	resp, err := s.client.GenerateImage(ctx, llm.ImageRequest{
		Model:       s.imageModel,
		Prompt:      prompt + ". " + suffix,
		AspectRatio: ratio,
	})
	if err != nil {
		return "", err
	}
	return resp.DataURL(), nil
}

// ensureKey refuses to call the provider while the console is waiting for
// the operator to reconnect a credential.
func (s *Studio) ensureKey() error {
	if s.status != nil && !s.status.HasKey() {
		return llm.ErrCredentialMissing
	}
	return nil
}

// fail classifies err, reporting credential problems to the key status.
func (s *Studio) fail(err error, msg string) error {
	if llm.IsCredentialError(err) {
		if s.status != nil {
			s.status.ReportMissing()
		}
		s.logger.Warn().Err(err).Msg("credential missing or rejected")
		return err
	}
	s.logger.Error().Err(err).Msg(msg)
	return err
}

func (s *Studio) record(ctx context.Context, e audit.Entry) {
	if s.audit != nil {
		s.audit.Record(ctx, e)
	}
}

func (s *Studio) logCost(resp *llm.CompletionResponse) {
	s.logger.Debug().
		Str("model", resp.Model).
		Int("input_tokens", resp.InputTokens).
		Int("output_tokens", resp.OutputTokens).
		Float64("cost_usd", llm.EstimateCost(resp.Model, resp.InputTokens, resp.OutputTokens)).
		Msg("completion")
}

// cleanJSON strips a Markdown code fence some models wrap JSON in.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
