package llm

import "encoding/json"

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest contains the parameters for an LLM completion request.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
	JSONMode    bool
	// Schema constrains the JSON output. Setting it implies JSONMode.
	Schema *Schema
}

// CompletionResponse contains the result of an LLM completion request.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}

// Schema is the subset of JSON Schema both providers accept for structured
// output. Type names are lowercase JSON Schema types.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// ObjectSchema builds an object schema where every listed property is a
// required string.
func ObjectSchema(required []string, descriptions map[string]string) *Schema {
	s := &Schema{Type: "object", Properties: make(map[string]*Schema, len(required))}
	for _, name := range required {
		s.Properties[name] = &Schema{Type: "string", Description: descriptions[name]}
	}
	s.Required = append([]string(nil), required...)
	return s
}

// JSON returns the encoded schema.
func (s *Schema) JSON() json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

// ImageRequest asks for one generated image.
type ImageRequest struct {
	Model  string
	Prompt string
	// AspectRatio is "1:1" or "16:9".
	AspectRatio string
}

// ImageResponse carries one generated image.
type ImageResponse struct {
	// Data is the base64-encoded image payload.
	Data     string
	MIMEType string
	Model    string
}

// DataURL renders the image as an inline data URL.
func (r *ImageResponse) DataURL() string {
	mime := r.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + r.Data
}
