// pkg/registry/registry.go
package registry

// Block field names as they appear in the canvas JSON document.
const (
	FieldKeyPartners           = "key_partners"
	FieldKeyActivities         = "key_activities"
	FieldKeyResources          = "key_resources"
	FieldValuePropositions     = "value_propositions"
	FieldCustomerRelationships = "customer_relationships"
	FieldChannels              = "channels"
	FieldCustomerSegments      = "customer_segments"
	FieldCostStructure         = "cost_structure"
	FieldRevenueStreams        = "revenue_streams"
)

const catalogVersion = "1.0.0"

var blocks = []BlockDefinition{
	{
		Field:       FieldKeyPartners,
		ID:          "key-partners",
		Title:       "핵심 파트너",
		Placeholder: "• 핵심 공급업체\n• 핵심 자원 제공자\n• 전략적 제휴",
		Fallback:    "전략적 파트너십 구축 필요",
	},
	{
		Field:       FieldKeyActivities,
		ID:          "key-activities",
		Title:       "핵심 활동",
		Placeholder: "• 생산\n• 문제 해결\n• 플랫폼/네트워크",
		Fallback:    "핵심 활동 정의 필요",
	},
	{
		Field:       FieldKeyResources,
		ID:          "key-resources",
		Title:       "핵심 자원",
		Placeholder: "• 물리적 자원\n• 지적 자산\n• 인적 자원\n• 재무 자원",
	},
	{
		Field:       FieldValuePropositions,
		ID:          "value-propositions",
		Title:       "가치 제안",
		Placeholder: "• 고객이 얻는 가치\n• 해결하는 문제\n• 충족하는 니즈",
		Fallback:    "고객 가치 제안 정의 필요",
	},
	{
		Field:       FieldCustomerRelationships,
		ID:          "customer-relationships",
		Title:       "고객 관계",
		Placeholder: "• 개인 지원\n• 셀프 서비스\n• 자동화 서비스\n• 커뮤니티",
	},
	{
		Field:       FieldChannels,
		ID:          "channels",
		Title:       "채널",
		Placeholder: "• 인지 단계\n• 평가 단계\n• 구매 단계\n• 전달 단계\n• 사후 판매",
		Fallback:    "유통 채널 정의 필요",
	},
	{
		Field:       FieldCustomerSegments,
		ID:          "customer-segments",
		Title:       "고객 세그먼트",
		Placeholder: "• 대중 시장\n• 틈새 시장\n• 세분화된 시장\n• 다각화된 시장",
		Fallback:    "타겟 고객 정의 필요",
	},
	{
		Field:       FieldCostStructure,
		ID:          "cost-structure",
		Title:       "비용 구조",
		Placeholder: "• 고정 비용\n• 변동 비용\n• 규모의 경제\n• 범위의 경제",
	},
	{
		Field:       FieldRevenueStreams,
		ID:          "revenue-streams",
		Title:       "수익원",
		Placeholder: "• 자산 판매\n• 사용료\n• 구독료\n• 라이선스",
		Fallback:    "수익 모델 정의 필요",
	},
}

var byField = func() map[string]BlockDefinition {
	m := make(map[string]BlockDefinition, len(blocks))
	for _, b := range blocks {
		m[b.Field] = b
	}
	return m
}()

// Blocks returns the nine block definitions in canonical canvas order.
func Blocks() []BlockDefinition {
	out := make([]BlockDefinition, len(blocks))
	copy(out, blocks)
	return out
}

// Lookup finds a block definition by its JSON field name.
func Lookup(field string) (BlockDefinition, bool) {
	b, ok := byField[field]
	return b, ok
}

// MustLookup is Lookup for the package's own field constants.
func MustLookup(field string) BlockDefinition {
	b, ok := byField[field]
	if !ok {
		panic("registry: unknown block field " + field)
	}
	return b
}

// IsBlockField reports whether field names one of the nine blocks.
func IsBlockField(field string) bool {
	_, ok := byField[field]
	return ok
}

// Catalog returns the versioned block catalog.
func Catalog() *BlockCatalog {
	return &BlockCatalog{
		Version: catalogVersion,
		Blocks:  Blocks(),
	}
}
