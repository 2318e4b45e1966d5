package triage

import (
	"fmt"

	domainllm "github.com/mediverse/backend/internal/domain/llm"
	"github.com/mediverse/backend/internal/domain/triage"
)

// Greeting 会话开场白，固定询问主诉
const Greeting = "Hello! I'm MediVerse's AI Health Assistant. I'm here to help assess your symptoms and guide you to the right care. Let's start by understanding your health concern. What health issue or symptom are you experiencing today?"

// RepromptMessage 模型回复无法解析时的追问
const RepromptMessage = "I apologize, but I'm having trouble processing that. Could you please rephrase your response?"

// UnavailableMessage 模型不可用时的回复
const UnavailableMessage = "I apologize, but I encountered an error. Please try again."

const notCollected = "Not collected"

// 模型未给出措辞时按阶段使用的固定问题
const (
	issueQuestion    = "What health issue or symptom are you experiencing?"
	painQuestion     = "On a scale of 1 to 10, how would you rate your pain or discomfort? (1 being very mild and 10 being extremely severe)"
	durationQuestion = "How long have you been experiencing this? When did it start?"
)

// questionFor 阶段对应的固定问题
func questionFor(stage triage.Stage) string {
	switch stage {
	case triage.StageNeedIssue:
		return issueQuestion
	case triage.StageNeedPain:
		return painQuestion
	case triage.StageNeedDuration:
		return durationQuestion
	}
	return ""
}

const systemPrompt = `You are a professional medical triage assistant for MediVerse Healthcare. Your role is to:
1. Ask questions to understand the patient's health issue
2. Assess the pain level on a scale of 1 to 10
3. Determine how long the issue has been occurring
4. Recommend appropriate medical care based on the collected information

You must ask questions ONE AT A TIME in a conversational, empathetic manner. Follow this sequence:
- First: Ask "What health issue or symptom are you experiencing?" (question_type: "issue")
- Second: After getting the issue, ask "On a scale of 1 to 10, how would you rate your pain or discomfort? (1 being very mild and 10 being extremely severe)" (question_type: "pain_rating")
- Third: After getting pain rating, ask "How long have you been experiencing this? When did it start?" (question_type: "duration")
- Finally: Once all three are collected, provide a recommendation with doctor suggestion

IMPORTANT: Always respond in JSON format with the following structure:
{
    "type": "question" | "recommendation",
    "message": "Your message to the patient",
    "question_type": "issue" | "pain_rating" | "duration" | null,
    "collected_info": {
        "issue": "description or null",
        "pain_rating": "number between 1-10 or null",
        "duration": "description or null"
    },
    "is_complete": false
}

Rules:
- Extract information from user responses and update collected_info accordingly
- For pain_rating, extract the number (1-10) from the user's response. If they say a range, use the higher number. If they use words like "mild" (1-3), "moderate" (4-6), "severe" (7-9), "extreme" (10), convert to appropriate number.
- Only move to the next question after receiving an answer
- When all three pieces of information are collected, set "is_complete": true and "type": "recommendation"
- Be empathetic and professional in your communication`

func orNotCollected(s string) string {
	if s == "" {
		return notCollected
	}
	return s
}

// recap 当前已收集信息的文字摘要，附加在系统提示之后
func recap(info triage.CollectedInfo) string {
	return fmt.Sprintf("\n\nCurrent collected information:\n- Issue: %s\n- Pain Rating (1-10): %s\n- Duration: %s",
		orNotCollected(info.IssueText()),
		orNotCollected(info.PainRatingText()),
		orNotCollected(info.DurationText()),
	)
}

// buildMessages 组装一轮对话的模型输入
// 历史中的开场白不发送给模型
func buildMessages(history []triage.Message, userMessage string, info triage.CollectedInfo) []domainllm.Message {
	messages := make([]domainllm.Message, 0, len(history)+2)
	messages = append(messages, domainllm.Message{Role: domainllm.RoleSystem, Content: systemPrompt + recap(info)})

	for i, m := range history {
		if i == 0 && m.Sender == triage.SenderBot {
			continue
		}
		switch m.Sender {
		case triage.SenderUser:
			messages = append(messages, domainllm.Message{Role: domainllm.RoleUser, Content: m.Content})
		case triage.SenderBot:
			messages = append(messages, domainllm.Message{Role: domainllm.RoleAssistant, Content: m.Content})
		}
	}

	messages = append(messages, domainllm.Message{Role: domainllm.RoleUser, Content: userMessage})
	return messages
}
