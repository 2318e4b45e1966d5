package triage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mediverse/backend/internal/domain/doctor"
)

// ReplyType 助手回复类型
type ReplyType string

const (
	ReplyQuestion       ReplyType = "question"
	ReplyRecommendation ReplyType = "recommendation"
)

// AgentReply 助手回复
// 模型输出只用于措辞；完成判定与推荐由状态机决定
type AgentReply struct {
	Type              ReplyType      `json:"type"`
	Message           string         `json:"message"`
	QuestionType      string         `json:"question_type"`
	CollectedInfo     CollectedInfo  `json:"collected_info"`
	IsComplete        bool           `json:"is_complete"`
	RecommendedDoctor *doctor.Doctor `json:"recommended_doctor,omitempty"`
}

// ParseAgentReply 按固定结构解析模型输出
//
// 缺失或 null 的字段取默认值；collected_info 中的数字转成十进制字符串，
// 空串和字面量 "null" 视为未提取。只有整体不是 JSON 对象时返回 ErrMalformedReply。
func ParseAgentReply(raw string) (AgentReply, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &fields); err != nil {
		return AgentReply{}, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if fields == nil {
		return AgentReply{}, fmt.Errorf("%w: null document", ErrMalformedReply)
	}

	reply := AgentReply{Type: ReplyQuestion}

	if t := scalarString(fields["type"]); t != nil && ReplyType(*t) == ReplyRecommendation {
		reply.Type = ReplyRecommendation
	}
	if m := scalarString(fields["message"]); m != nil {
		reply.Message = *m
	}
	if q := scalarString(fields["question_type"]); q != nil {
		switch *q {
		case QuestionIssue, QuestionPainRating, QuestionDuration:
			reply.QuestionType = *q
		}
	}

	var info map[string]json.RawMessage
	if rawInfo, ok := fields["collected_info"]; ok {
		// 非对象的 collected_info 按未提取处理
		_ = json.Unmarshal(rawInfo, &info)
	}
	reply.CollectedInfo = CollectedInfo{
		Issue:      scalarString(info["issue"]),
		PainRating: scalarString(info["pain_rating"]),
		Duration:   scalarString(info["duration"]),
	}

	if rawComplete, ok := fields["is_complete"]; ok {
		var complete bool
		if json.Unmarshal(rawComplete, &complete) == nil {
			reply.IsComplete = complete
		}
	}

	return reply, nil
}

// scalarString 将 JSON 字符串或数字规范成字符串，其余情况返回 nil
func scalarString(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	var s string
	switch {
	case raw[0] == '"':
		if json.Unmarshal(raw, &s) != nil {
			return nil
		}
	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		var n json.Number
		if json.Unmarshal(raw, &n) != nil {
			return nil
		}
		s = n.String()
	default:
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	return &s
}
