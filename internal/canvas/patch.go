// internal/canvas/patch.go
package canvas

import (
	"business-canvas/internal/models"
	"business-canvas/pkg/registry"
)

// Patch is the allow-listed subset of an update body.
type Patch struct {
	Name   *string
	Blocks map[string][]string
}

// NewPatch picks name and the nine block fields out of a body that already
// passed updateSchema. Every other key, including id and the timestamps, is dropped.
func NewPatch(body map[string]interface{}) Patch {
	p := Patch{Blocks: make(map[string][]string)}

	if name, ok := body["name"].(string); ok {
		p.Name = &name
	}

	for _, def := range registry.Blocks() {
		block, ok := body[def.Field].(map[string]interface{})
		if !ok {
			continue
		}
		items, ok := block["content"].([]interface{})
		if !ok {
			continue
		}
		content := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				content = append(content, s)
			}
		}
		p.Blocks[def.Field] = content
	}
	return p
}

func (p Patch) Empty() bool {
	return p.Name == nil && len(p.Blocks) == 0
}

// Apply overwrites the patched fields. Block identity, title and placeholder
// always come from the registry.
func (p Patch) Apply(c *models.BusinessCanvas) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	for field, content := range p.Blocks {
		if target := c.Block(field); target != nil {
			*target = models.NewBlock(field, content)
		}
	}
}
