// Package inference turns a free-form business description into a populated
// business model canvas using fixed keyword tables.
package inference

import (
	"strings"

	"business-canvas/internal/models"
	"business-canvas/pkg/registry"
)

type Engine struct {
	config *Config
}

func NewEngine(config *Config) *Engine {
	defaults := LoadConfig()
	if config == nil {
		config = defaults
	}
	if config.Now == nil {
		config.Now = defaults.Now
	}
	if config.NewID == nil {
		config.NewID = defaults.NewID
	}
	return &Engine{config: config}
}

var defaultEngine = NewEngine(nil)

// Generate builds a canvas for prompt using the wall clock and random UUIDs.
func Generate(prompt string) *models.BusinessCanvas {
	return defaultEngine.Generate(prompt)
}

// Generation is a built canvas plus the block fields a keyword rule
// contributed to, in registry order.
type Generation struct {
	Canvas  *models.BusinessCanvas
	Matched []string
}

// Generate never fails: blocks without a keyword match get their fallback text.
func (e *Engine) Generate(prompt string) *models.BusinessCanvas {
	return e.Build(prompt).Canvas
}

func (e *Engine) Build(prompt string) Generation {
	blocks := Infer(prompt)
	now := e.config.Now()

	canvas := &models.BusinessCanvas{
		ID:        e.config.NewID(),
		Name:      "Canvas " + now.Format(nameLayout),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	for _, def := range registry.Blocks() {
		*canvas.Block(def.Field) = models.NewBlock(def.Field, blocks[def.Field])
	}
	return Generation{Canvas: canvas, Matched: matched(blocks)}
}

// baselineLen counts the entries a block always carries regardless of the prompt.
var baselineLen = map[string]int{
	registry.FieldKeyResources:          len(keyResourceBaseline),
	registry.FieldCustomerRelationships: len(customerRelationshipBaseline),
	registry.FieldCostStructure:         len(costStructureBaseline),
}

func matched(blocks map[string][]string) []string {
	var out []string
	for _, def := range registry.Blocks() {
		if len(blocks[def.Field]) > baselineLen[def.Field] {
			out = append(out, def.Field)
		}
	}
	return out
}

// Infer returns the raw inferred content per block field, before fallbacks are
// applied. Blocks with no match map to an empty slice.
func Infer(prompt string) map[string][]string {
	lower := lowerPrompt(prompt)

	channels := match(lower, channelRules...)
	keyResources := match(lower, keyResourceRules...)
	keyResources = append(append([]string(nil), keyResourceBaseline...), keyResources...)

	return map[string][]string{
		registry.FieldValuePropositions:     valuePropositions(lower),
		registry.FieldCustomerSegments:      customerSegments(prompt, lower),
		registry.FieldChannels:              channels,
		registry.FieldRevenueStreams:        match(lower, revenueStreamRules...),
		registry.FieldKeyActivities:         match(lower, keyActivityRules...),
		registry.FieldKeyResources:          keyResources,
		registry.FieldKeyPartners:           keyPartners(lower, channels),
		registry.FieldCustomerRelationships: seeded(customerRelationshipBaseline, lower, customerRelationshipRules...),
		registry.FieldCostStructure:         costStructure(lower, keyResources),
	}
}

// dottedCapitalI lowers to i plus a combining dot, so "İ" never matches a plain "i" keyword.
var dottedCapitalI = strings.NewReplacer("\u0130", "i\u0307")

func lowerPrompt(prompt string) string {
	return strings.ToLower(dottedCapitalI.Replace(prompt))
}

func valuePropositions(lower string) []string {
	if !containsAny(lower, offeringKeywords) {
		return nil
	}
	return match(lower, valuePropositionRules...)
}

// The age-range pattern runs on the original prompt, keyword groups on the lowered one.
func customerSegments(prompt, lower string) []string {
	var out []string
	for _, age := range ageRangePattern.FindAllString(prompt, -1) {
		out = append(out, age+ageRangeSuffix)
	}
	return append(out, match(lower, customerSegmentRules...)...)
}

// channels must already be computed.
func keyPartners(lower string, channels []string) []string {
	out := match(lower, integrationPartnerRule)
	if len(channels) > 0 {
		out = append(out, marketingPartner)
	}
	return append(out, match(lower, paymentPartnerRule)...)
}

// keyResources must already be computed.
func costStructure(lower string, keyResources []string) []string {
	out := seeded(costStructureBaseline, lower, costStructureRules...)
	for _, r := range keyResources {
		if r == aiModelResource {
			out = append(out, aiTrainingCost)
			break
		}
	}
	return out
}

func seeded(baseline []string, lower string, rules ...keywordRule) []string {
	out := append([]string(nil), baseline...)
	return append(out, match(lower, rules...)...)
}

func match(lower string, rules ...keywordRule) []string {
	var out []string
	for _, r := range rules {
		if containsAny(lower, r.keywords) {
			out = append(out, r.outputs...)
		}
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
