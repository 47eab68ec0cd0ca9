// internal/inference/rules.go
package inference

import "regexp"

// keywordRule contributes its outputs when any keyword occurs in the lowered prompt.
type keywordRule struct {
	keywords []string
	outputs  []string
}

var (
	// Value propositions are only derived for app/service/platform prompts.
	offeringKeywords = []string{"앱", "app", "서비스", "service", "플랫폼", "platform"}

	valuePropositionRules = []keywordRule{
		{keywords: []string{"맞춤", "개인", "personal", "custom"}, outputs: []string{"개인 맞춤형 서비스 제공"}},
		{keywords: []string{"편리", "간편", "convenient", "easy"}, outputs: []string{"사용자 편의성 극대화"}},
		{keywords: []string{"저렴", "무료", "free", "cheap"}, outputs: []string{"비용 효율적인 솔루션"}},
		{keywords: []string{"빠른", "fast", "quick", "신속"}, outputs: []string{"신속한 서비스 제공"}},
	}

	ageRangePattern = regexp.MustCompile(`\p{Nd}+[-~]\p{Nd}+대`)
	ageRangeSuffix  = " 타겟 고객"

	customerSegmentRules = []keywordRule{
		{keywords: []string{"기업", "b2b", "business", "회사"}, outputs: []string{"B2B 기업 고객"}},
		{keywords: []string{"개인", "b2c", "consumer", "일반"}, outputs: []string{"B2C 개인 고객"}},
		{keywords: []string{"학생", "student"}, outputs: []string{"학생 및 교육 기관"}},
	}

	channelRules = []keywordRule{
		{keywords: []string{"앱", "app", "모바일", "mobile"}, outputs: []string{"모바일 앱 스토어", "앱 내 마케팅"}},
		{keywords: []string{"온라인", "online", "웹", "web"}, outputs: []string{"웹사이트", "SNS 마케팅"}},
		{keywords: []string{"오프라인", "offline", "매장", "store"}, outputs: []string{"오프라인 매장"}},
	}

	revenueStreamRules = []keywordRule{
		{keywords: []string{"구독", "subscription", "월정액"}, outputs: []string{"월 구독료", "프리미엄 기능 요금"}},
		{keywords: []string{"광고", "ad", "advertisement"}, outputs: []string{"광고 수익"}},
		{keywords: []string{"판매", "sale", "sell"}, outputs: []string{"제품/서비스 판매"}},
		{keywords: []string{"수수료", "commission", "fee"}, outputs: []string{"중개 수수료"}},
	}

	keyActivityRules = []keywordRule{
		{keywords: []string{"개발", "develop", "앱", "app", "플랫폼"}, outputs: []string{"플랫폼 개발 및 유지보수", "사용자 경험 최적화"}},
		{keywords: []string{"데이터", "data", "분석", "analysis"}, outputs: []string{"데이터 수집 및 분석"}},
		{keywords: []string{"마케팅", "marketing"}, outputs: []string{"마케팅 및 고객 획득"}},
		{keywords: []string{"콘텐츠", "content"}, outputs: []string{"콘텐츠 제작 및 관리"}},
	}

	keyResourceBaseline = []string{"개발팀", "기술 인프라"}
	aiModelResource     = "AI/ML 모델"

	keyResourceRules = []keywordRule{
		{keywords: []string{"ai", "인공지능", "machine learning", "ml"}, outputs: []string{aiModelResource}},
		{keywords: []string{"데이터", "data"}, outputs: []string{"사용자 데이터베이스"}},
		{keywords: []string{"콘텐츠", "content"}, outputs: []string{"콘텐츠 라이브러리"}},
	}

	integrationPartnerRule = keywordRule{keywords: []string{"api", "연동", "integration"}, outputs: []string{"외부 API 제공업체"}}
	marketingPartner       = "마케팅 파트너"
	paymentPartnerRule     = keywordRule{keywords: []string{"결제", "payment"}, outputs: []string{"결제 서비스 제공업체"}}

	customerRelationshipBaseline = []string{"자동화된 서비스"}

	customerRelationshipRules = []keywordRule{
		{keywords: []string{"커뮤니티", "community"}, outputs: []string{"커뮤니티 지원"}},
		{keywords: []string{"premium", "프리미엄", "vip"}, outputs: []string{"프리미엄 고객 전담 지원"}},
		{keywords: []string{"개인", "personal"}, outputs: []string{"개인화된 서비스"}},
	}

	costStructureBaseline = []string{"개발 및 유지보수 비용", "마케팅 비용"}
	aiTrainingCost        = "AI 모델 훈련 비용"

	costStructureRules = []keywordRule{
		{keywords: []string{"서버", "server", "클라우드", "cloud"}, outputs: []string{"서버 및 인프라 비용"}},
	}
)
