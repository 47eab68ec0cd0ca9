// pkg/registry/schema.go
package registry

// BlockCatalog is the published description of the nine canvas blocks.
type BlockCatalog struct {
	Version string            `json:"version" yaml:"version"`
	Blocks  []BlockDefinition `json:"blocks" yaml:"blocks"`
}

// BlockDefinition carries the fixed identity of one canvas block.
// Fallback is empty for blocks that are always seeded with baseline content.
type BlockDefinition struct {
	Field       string `json:"field" yaml:"field"`
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Placeholder string `json:"placeholder" yaml:"placeholder"`
	Fallback    string `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}
