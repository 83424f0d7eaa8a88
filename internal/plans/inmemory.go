package plans

import "context"

// InMemoryCatalog serves a fixed plan set for local/dev use.
type InMemoryCatalog struct {
	plans []Plan
}

func NewInMemoryCatalog(seed []Plan) *InMemoryCatalog {
	if seed == nil {
		seed = SeedPlans()
	}
	return &InMemoryCatalog{plans: seed}
}

func (c *InMemoryCatalog) List(_ context.Context) ([]Plan, error) {
	out := make([]Plan, len(c.plans))
	copy(out, c.plans)
	return out, nil
}

func (c *InMemoryCatalog) Close() error { return nil }

// SeedPlans is the default catalog used when no database is configured and
// to seed an empty plans table.
func SeedPlans() []Plan {
	return []Plan{
		{
			ID:            "5g-premier",
			Name:          "5G 프리미어 에센셜",
			Price:         85000,
			Description:   "무제한 데이터와 프리미엄 혜택",
			DataAllowance: "무제한",
			VoiceMinutes:  "집/이동전화 무제한",
			SMS:           "기본제공",
			Features:      []string{"U+ 모바일tv", "테더링 66GB", "멤버십 VIP"},
		},
		{
			ID:            "5g-standard",
			Name:          "5G 스탠다드",
			Price:         75000,
			Description:   "넉넉한 데이터의 표준 요금제",
			DataAllowance: "150GB",
			VoiceMinutes:  "집/이동전화 무제한",
			SMS:           "기본제공",
			Features:      []string{"테더링 30GB", "속도제한 5Mbps"},
		},
		{
			ID:            "5g-light",
			Name:          "5G 라이트+",
			Price:         55000,
			Description:   "가볍게 쓰는 5G 입문 요금제",
			DataAllowance: "12GB",
			VoiceMinutes:  "집/이동전화 무제한",
			SMS:           "기본제공",
			Features:      []string{"속도제한 1Mbps"},
		},
		{
			ID:            "youth-special",
			Name:          "유쓰 5G 스페셜",
			Price:         59000,
			Description:   "만 29세 이하 전용 청년 요금제",
			DataAllowance: "110GB",
			VoiceMinutes:  "집/이동전화 무제한",
			SMS:           "기본제공",
			Features:      []string{"청년 데이터 2배", "테더링 40GB"},
		},
	}
}
