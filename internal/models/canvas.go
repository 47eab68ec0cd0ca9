// internal/models/canvas.go
package models

import (
	"time"

	"business-canvas/pkg/registry"
)

// CanvasBlock is one of the nine sections of a business model canvas.
type CanvasBlock struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Content     []string `json:"content" yaml:"content"`
	Placeholder string   `json:"placeholder" yaml:"placeholder"`
}

// BusinessCanvas is a generated canvas together with its bookkeeping fields.
type BusinessCanvas struct {
	ID                    string      `json:"id" yaml:"id"`
	Name                  string      `json:"name" yaml:"name"`
	KeyPartners           CanvasBlock `json:"key_partners" yaml:"key_partners"`
	KeyActivities         CanvasBlock `json:"key_activities" yaml:"key_activities"`
	KeyResources          CanvasBlock `json:"key_resources" yaml:"key_resources"`
	ValuePropositions     CanvasBlock `json:"value_propositions" yaml:"value_propositions"`
	CustomerRelationships CanvasBlock `json:"customer_relationships" yaml:"customer_relationships"`
	Channels              CanvasBlock `json:"channels" yaml:"channels"`
	CustomerSegments      CanvasBlock `json:"customer_segments" yaml:"customer_segments"`
	CostStructure         CanvasBlock `json:"cost_structure" yaml:"cost_structure"`
	RevenueStreams        CanvasBlock `json:"revenue_streams" yaml:"revenue_streams"`
	CreatedAt             time.Time   `json:"created_at" yaml:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at" yaml:"updated_at"`
}

// NewBlock builds the block registered under field. An empty content list is
// replaced by the block's fallback text.
func NewBlock(field string, content []string) CanvasBlock {
	def := registry.MustLookup(field)
	if len(content) == 0 && def.Fallback != "" {
		content = []string{def.Fallback}
	}
	return CanvasBlock{
		ID:          def.ID,
		Title:       def.Title,
		Content:     append([]string(nil), content...),
		Placeholder: def.Placeholder,
	}
}

// Clone returns a copy of the block that shares no memory with b.
func (b CanvasBlock) Clone() CanvasBlock {
	b.Content = append([]string(nil), b.Content...)
	return b
}

// Block returns a pointer to the block stored under field, or nil.
func (c *BusinessCanvas) Block(field string) *CanvasBlock {
	switch field {
	case registry.FieldKeyPartners:
		return &c.KeyPartners
	case registry.FieldKeyActivities:
		return &c.KeyActivities
	case registry.FieldKeyResources:
		return &c.KeyResources
	case registry.FieldValuePropositions:
		return &c.ValuePropositions
	case registry.FieldCustomerRelationships:
		return &c.CustomerRelationships
	case registry.FieldChannels:
		return &c.Channels
	case registry.FieldCustomerSegments:
		return &c.CustomerSegments
	case registry.FieldCostStructure:
		return &c.CostStructure
	case registry.FieldRevenueStreams:
		return &c.RevenueStreams
	}
	return nil
}

// Clone deep-copies the canvas.
func (c *BusinessCanvas) Clone() *BusinessCanvas {
	if c == nil {
		return nil
	}
	out := *c
	for _, def := range registry.Blocks() {
		*out.Block(def.Field) = c.Block(def.Field).Clone()
	}
	return &out
}
