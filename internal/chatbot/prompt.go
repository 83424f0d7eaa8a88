package chatbot

import (
	"fmt"
	"strings"

	"github.com/UNOA-Project/UNOA-Back/internal/plans"
)

const chatSystemPrompt = "당신은 UNOA의 통신 요금제 상담 챗봇입니다. " +
	"사용자의 질문에 친절하고 간결하게, 한국어로 답변하세요. " +
	"요금제 추천은 사용자가 말한 사용 패턴에 근거해야 합니다."

// BuildComparePrompt renders the comparison instruction for two plans. Pure
// function of the plan fields; identical plans always yield an identical
// prompt.
func BuildComparePrompt(a, b plans.Plan) string {
	var sb strings.Builder
	sb.WriteString("당신은 통신 요금제 비교 전문가입니다. 아래 두 요금제를 비교해 주세요.\n\n")
	writePlanSection(&sb, 1, a)
	writePlanSection(&sb, 2, b)
	sb.WriteString("가격, 데이터 제공량, 통화, 부가 혜택을 기준으로 차이를 설명하고, ")
	sb.WriteString("어떤 사용자에게 어떤 요금제가 적합한지 3~4문장으로 요약해 주세요.")
	return sb.String()
}

func writePlanSection(sb *strings.Builder, idx int, p plans.Plan) {
	fmt.Fprintf(sb, "[요금제 %d] %s\n", idx, p.Name)
	fmt.Fprintf(sb, "- 월 요금: %d원\n", p.Price)
	if p.DataAllowance != "" {
		fmt.Fprintf(sb, "- 데이터: %s\n", p.DataAllowance)
	}
	if p.VoiceMinutes != "" {
		fmt.Fprintf(sb, "- 음성통화: %s\n", p.VoiceMinutes)
	}
	if p.SMS != "" {
		fmt.Fprintf(sb, "- 문자: %s\n", p.SMS)
	}
	if p.Description != "" {
		fmt.Fprintf(sb, "- 설명: %s\n", p.Description)
	}
	if len(p.Features) > 0 {
		fmt.Fprintf(sb, "- 혜택: %s\n", strings.Join(p.Features, ", "))
	}
	sb.WriteString("\n")
}
