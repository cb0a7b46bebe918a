package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/redwireai/storefront/internal/audit"
	"github.com/redwireai/storefront/internal/content"
	"github.com/redwireai/storefront/internal/keystatus"
	"github.com/redwireai/storefront/internal/llm"
	"github.com/redwireai/storefront/internal/studio"
)

// fieldInfo describes one settings input for the console.
type fieldInfo struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Section string `json:"section"`
	Kind    string `json:"kind"`
}

// stateResponse is the JSON response for the state endpoint.
type stateResponse struct {
	Settings  content.SiteSettings `json:"settings"`
	Products  []content.Product    `json:"products"`
	Posts     []content.BlogPost   `json:"posts"`
	Sections  []string             `json:"sections"`
	Fields    []fieldInfo          `json:"fields"`
	KeyStatus keystatus.Status     `json:"keyStatus"`
	Busy      bool                 `json:"busy"`
}

type valueRequest struct {
	Value json.RawMessage `json:"value"`
}

// text returns the value as a string. Numbers and string arrays are
// accepted for product fields; arrays become one item per line.
func (v valueRequest) text() (string, error) {
	if len(v.Value) == 0 {
		return "", errors.New("value is required")
	}
	var s string
	if err := json.Unmarshal(v.Value, &s); err == nil {
		return s, nil
	}
	var n float64
	if err := json.Unmarshal(v.Value, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	}
	var list []string
	if err := json.Unmarshal(v.Value, &list); err == nil {
		return strings.Join(list, "\n"), nil
	}
	return "", errors.New("value must be a string, number or list of strings")
}

type rebrandRequest struct {
	Context string `json:"context"`
}

type rebrandResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

const (
	RebrandOK                = "ok"
	RebrandCredentialMissing = "credential_missing"
	RebrandFailed            = "failed"
)

type imageRequest struct {
	Prompt string `json:"prompt"`
	// Kind is "hero" or "logo".
	Kind studio.ImageKind `json:"kind"`
	// Field is a settings image field. ProductID targets a product instead.
	Field     string              `json:"field,omitempty"`
	ProductID content.ProductType `json:"productId,omitempty"`
}

type imageResponse struct {
	URL string `json:"url"`
}

type credentialRequest struct {
	Key string `json:"key"`
}

type draftRequest struct {
	Topic string `json:"topic"`
}

func (d *Dashboard) handleState(w http.ResponseWriter, r *http.Request) {
	fields := content.Fields()
	infos := make([]fieldInfo, len(fields))
	for i, f := range fields {
		infos[i] = fieldInfo{Key: f.Key, Label: f.Label, Section: f.Section, Kind: string(f.Kind)}
	}

	resp := stateResponse{
		Settings: d.state.Settings(),
		Products: d.state.Products(),
		Posts:    d.state.Posts(),
		Sections: content.Sections,
		Fields:   infos,
	}
	if d.monitor != nil {
		resp.KeyStatus = d.monitor.Snapshot()
	}
	if d.generator != nil {
		resp.Busy = d.generator.Busy()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (d *Dashboard) handleSetSetting(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, "field")

	var req valueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	value, err := req.text()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	prev, err := d.state.SetSetting(field, value)
	if err != nil {
		writeError(w, err)
		return
	}
	d.record(r.Context(), audit.Entry{
		Actor:         audit.ActorAdmin,
		Action:        audit.ActionSettingsUpdate,
		Target:        "settings",
		Field:         field,
		PreviousValue: prev,
		NewValue:      value,
	})
	writeJSON(w, http.StatusOK, d.state.Settings())
}

func (d *Dashboard) handleSetProductField(w http.ResponseWriter, r *http.Request) {
	id := content.ProductType(chi.URLParam(r, "id"))
	field := chi.URLParam(r, "field")

	var req valueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	value, err := req.text()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	before, _ := d.state.Product(id)
	product, err := d.state.SetProductField(id, field, value)
	if err != nil {
		writeError(w, err)
		return
	}
	d.record(r.Context(), audit.Entry{
		Actor:         audit.ActorAdmin,
		Action:        audit.ActionProductUpdate,
		Target:        string(id),
		Field:         field,
		PreviousValue: productField(before, field),
		NewValue:      productField(product, field),
	})
	writeJSON(w, http.StatusOK, product)
}

// productField renders a product field for the audit trail.
func productField(p content.Product, field string) string {
	switch field {
	case "name":
		return p.Name
	case "description":
		return p.Description
	case "imageUrl":
		return p.ImageURL
	case "monthlyPrice":
		return strconv.FormatFloat(p.MonthlyPrice, 'f', -1, 64)
	case "setupFee":
		return strconv.FormatFloat(p.SetupFee, 'f', -1, 64)
	case "features":
		return strings.Join(p.Features, "\n")
	}
	return ""
}

func (d *Dashboard) handleRebrand(w http.ResponseWriter, r *http.Request) {
	var req rebrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, rebrandResponse{Status: RebrandFailed, Error: "invalid request body"})
		return
	}

	err := d.generator.Rebrand(r.Context(), req.Context)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, rebrandResponse{Status: RebrandOK})
	case errors.Is(err, studio.ErrEmptyContext):
		writeJSON(w, http.StatusBadRequest, rebrandResponse{Status: RebrandFailed, Error: err.Error()})
	case llm.IsCredentialError(err):
		writeJSON(w, http.StatusConflict, rebrandResponse{Status: RebrandCredentialMissing})
	default:
		writeJSON(w, http.StatusBadGateway, rebrandResponse{Status: RebrandFailed, Error: "Magic Rebrand failed. Please check your API key."})
	}
}

func (d *Dashboard) handleImage(w http.ResponseWriter, r *http.Request) {
	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.ProductID == "" && req.Field == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "field or productId is required"})
		return
	}
	if req.ProductID != "" && !req.ProductID.Valid() {
		writeError(w, fmt.Errorf("%w: %q", content.ErrUnknownProduct, req.ProductID))
		return
	}
	if req.ProductID == "" && !content.HasField(req.Field) {
		writeError(w, fmt.Errorf("%w: %s", content.ErrUnknownField, req.Field))
		return
	}

	url, err := d.generator.GenerateImage(r.Context(), req.Prompt, req.Kind)
	if err != nil {
		writeGenerationError(w, err)
		return
	}

	entry := audit.Entry{Actor: audit.ActorAI, Action: audit.ActionImageGenerate, NewValue: req.Prompt}
	if req.ProductID != "" {
		if _, err := d.state.SetProductField(req.ProductID, "imageUrl", url); err != nil {
			writeError(w, err)
			return
		}
		entry.Target, entry.Field = string(req.ProductID), "imageUrl"
	} else {
		if _, err := d.state.SetSetting(req.Field, url); err != nil {
			writeError(w, err)
			return
		}
		entry.Target, entry.Field = "settings", req.Field
	}
	d.record(r.Context(), entry)
	writeJSON(w, http.StatusOK, imageResponse{URL: url})
}

func (d *Dashboard) handleCredentialStatus(w http.ResponseWriter, r *http.Request) {
	if d.monitor == nil {
		writeJSON(w, http.StatusOK, keystatus.Status{})
		return
	}
	writeJSON(w, http.StatusOK, d.monitor.Snapshot())
}

func (d *Dashboard) handleConnectCredential(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	key := strings.TrimSpace(req.Key)
	if key == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "key is required"})
		return
	}
	if d.creds != nil {
		d.creds.Connect(d.provider, key)
	}
	if d.monitor != nil {
		d.monitor.Connect()
	}
	d.logger.Info().Str("provider", d.provider).Msg("credential connected from console")
	d.handleCredentialStatus(w, r)
}

func (d *Dashboard) handleListPosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, d.state.Posts())
}

func (d *Dashboard) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var post content.BlogPost
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	post.Title = strings.TrimSpace(post.Title)
	if post.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}
	if post.ID == "" {
		post.ID = studio.PostID(post.Title)
	}
	if post.Date == "" {
		post.Date = time.Now().Format(studio.PostDateLayout)
	}
	if post.Status == "" {
		post.Status = content.PostDraft
	}
	if post.Status != content.PostDraft && post.Status != content.PostPublished {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status must be draft or published"})
		return
	}

	_, err := d.state.UpdatePosts(func(posts []content.BlogPost) ([]content.BlogPost, error) {
		if _, exists := content.FindPost(posts, post.ID); exists {
			return nil, errPostExists
		}
		return append([]content.BlogPost{post}, posts...), nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	d.record(r.Context(), audit.Entry{
		Actor:    audit.ActorAdmin,
		Action:   audit.ActionBlogCreate,
		Target:   post.ID,
		NewValue: post.Title,
	})
	writeJSON(w, http.StatusCreated, post)
}

var (
	errPostExists   = errors.New("post already exists")
	errPostNotFound = errors.New("post not found")
)

func (d *Dashboard) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var post content.BlogPost
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if post.Status != "" && post.Status != content.PostDraft && post.Status != content.PostPublished {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status must be draft or published"})
		return
	}
	post.ID = id

	var previous content.BlogPost
	_, err := d.state.UpdatePosts(func(posts []content.BlogPost) ([]content.BlogPost, error) {
		for i := range posts {
			if posts[i].ID != id {
				continue
			}
			previous = posts[i]
			if post.Status == "" {
				post.Status = previous.Status
			}
			if post.Date == "" {
				post.Date = previous.Date
			}
			posts[i] = post
			return posts, nil
		}
		return nil, errPostNotFound
	})
	if err != nil {
		writeError(w, err)
		return
	}
	d.record(r.Context(), audit.Entry{
		Actor:         audit.ActorAdmin,
		Action:        audit.ActionBlogUpdate,
		Target:        id,
		Field:         "status",
		PreviousValue: string(previous.Status),
		NewValue:      string(post.Status),
	})
	writeJSON(w, http.StatusOK, post)
}

func (d *Dashboard) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var removed content.BlogPost
	_, err := d.state.UpdatePosts(func(posts []content.BlogPost) ([]content.BlogPost, error) {
		for i := range posts {
			if posts[i].ID == id {
				removed = posts[i]
				return append(posts[:i], posts[i+1:]...), nil
			}
		}
		return nil, errPostNotFound
	})
	if err != nil {
		writeError(w, err)
		return
	}
	d.record(r.Context(), audit.Entry{
		Actor:         audit.ActorAdmin,
		Action:        audit.ActionBlogDelete,
		Target:        id,
		PreviousValue: removed.Title,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (d *Dashboard) handleDraftPost(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	post, err := d.generator.DraftPost(r.Context(), req.Topic)
	if err != nil {
		writeGenerationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// writeError maps domain errors to status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, content.ErrUnknownField), errors.Is(err, content.ErrUnknownProduct),
		errors.Is(err, errPostNotFound):
		status = http.StatusNotFound
	case errors.Is(err, content.ErrInvalidValue), errors.Is(err, studio.ErrEmptyContext),
		errors.Is(err, studio.ErrEmptyPrompt):
		status = http.StatusBadRequest
	case errors.Is(err, errPostExists):
		status = http.StatusConflict
	case llm.IsCredentialError(err):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "credential_missing"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeGenerationError reports failures of the upstream model as 502.
func writeGenerationError(w http.ResponseWriter, err error) {
	if errors.Is(err, studio.ErrEmptyContext) || errors.Is(err, studio.ErrEmptyPrompt) || llm.IsCredentialError(err) {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
