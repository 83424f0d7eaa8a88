// Package plans exposes the pricing-plan catalog. Plans are read-only to
// this service; their textual fields feed comparison prompts.
package plans

import "context"

// Plan is one mobile pricing plan.
type Plan struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         int      `json:"price"`
	Description   string   `json:"description,omitempty"`
	DataAllowance string   `json:"dataAllowance,omitempty"`
	VoiceMinutes  string   `json:"voiceMinutes,omitempty"`
	SMS           string   `json:"sms,omitempty"`
	Features      []string `json:"features,omitempty"`
}

// Catalog lists the available plans.
type Catalog interface {
	List(ctx context.Context) ([]Plan, error)
	Close() error
}
