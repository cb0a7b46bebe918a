// Package audit records every edit made to the site, by the operator or by
// AI generation, so the console can show who changed what.
package audit

import "time"

// ActorType identifies who performed an action.
type ActorType string

const (
	ActorAdmin  ActorType = "admin"
	ActorAI     ActorType = "ai"
	ActorSystem ActorType = "system"
)

// Action describes what was done.
type Action string

const (
	ActionSettingsUpdate Action = "settings.update"
	ActionProductUpdate  Action = "product.update"
	ActionRebrandApply   Action = "rebrand.apply"
	ActionImageGenerate  Action = "image.generate"
	ActionBlogCreate     Action = "blog.create"
	ActionBlogUpdate     Action = "blog.update"
	ActionBlogDelete     Action = "blog.delete"
	ActionBlogDraft      Action = "blog.draft"
	ActionSettingsImport Action = "settings.import"
)

// Entry is a single audit trail record.
type Entry struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Actor         ActorType `json:"actor"`
	Action        Action    `json:"action"`
	Target        string    `json:"target"`
	Field         string    `json:"field,omitempty"`
	PreviousValue string    `json:"previousValue,omitempty"`
	NewValue      string    `json:"newValue,omitempty"`
}
