package triage

import (
	"testing"
	"time"

	"github.com/mediverse/backend/internal/domain/doctor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageOf(t *testing.T) {
	tests := []struct {
		name     string
		info     CollectedInfo
		expected Stage
		question string
	}{
		{"全部为空", CollectedInfo{}, StageNeedIssue, QuestionIssue},
		{"只有主诉", CollectedInfo{Issue: StringPtr("headache")}, StageNeedPain, QuestionPainRating},
		{"缺少持续时间", CollectedInfo{Issue: StringPtr("headache"), PainRating: StringPtr("6")}, StageNeedDuration, QuestionDuration},
		{"全部收集", CollectedInfo{Issue: StringPtr("headache"), PainRating: StringPtr("6"), Duration: StringPtr("2 days")}, StageDone, ""},
		{"空串视为未收集", CollectedInfo{Issue: StringPtr(""), PainRating: StringPtr("6")}, StageNeedIssue, QuestionIssue},
		{"顺序固定：缺主诉优先", CollectedInfo{Duration: StringPtr("2 days")}, StageNeedIssue, QuestionIssue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage := StageOf(tt.info)
			assert.Equal(t, tt.expected, stage)
			assert.Equal(t, tt.question, stage.QuestionType())
			assert.Equal(t, tt.expected == StageDone, tt.info.IsComplete())
		})
	}
}

func TestCollectedInfo_Merge(t *testing.T) {
	current := CollectedInfo{Issue: StringPtr("chest pain")}

	t.Run("不覆盖为 nil、空串或 null", func(t *testing.T) {
		merged := current.Merge(CollectedInfo{Issue: StringPtr("null"), PainRating: StringPtr(""), Duration: nil})
		assert.Equal(t, "chest pain", merged.IssueText())
		assert.Nil(t, merged.PainRating)
		assert.Nil(t, merged.Duration)
	})

	t.Run("写入新值", func(t *testing.T) {
		merged := current.Merge(CollectedInfo{PainRating: StringPtr("8")})
		assert.Equal(t, "chest pain", merged.IssueText())
		assert.Equal(t, "8", merged.PainRatingText())
	})

	t.Run("不修改原值", func(t *testing.T) {
		_ = current.Merge(CollectedInfo{Issue: StringPtr("headache")})
		assert.Equal(t, "chest pain", current.IssueText())
	})
}

func TestSession_Append(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	s := &Session{SessionID: "s1", Status: StatusActive, Messages: []Message{{ID: 1, Sender: SenderBot, Content: "hi"}}}

	msg := s.Append(SenderUser, "I have a headache", nil, now)
	assert.Equal(t, 2, msg.ID)
	assert.Equal(t, StatusActive, s.Status)

	// metadata 整体覆盖，包括空值
	s.CollectedInfo = CollectedInfo{Issue: StringPtr("old")}
	info := CollectedInfo{PainRating: StringPtr("4")}
	s.Append(SenderBot, "How long?", &MessageMetadata{QuestionType: QuestionDuration, CollectedInfo: &info}, now)
	assert.Nil(t, s.CollectedInfo.Issue)
	assert.Equal(t, "4", s.CollectedInfo.PainRatingText())
	assert.Equal(t, StatusActive, s.Status)

	s.Append(SenderBot, "done", &MessageMetadata{IsComplete: true}, now)
	assert.Equal(t, StatusCompleted, s.Status)
	assert.Len(t, s.Messages, 4)
	assert.Equal(t, 4, s.Messages[3].ID)
}

func TestSession_Helpers(t *testing.T) {
	uid := "P001"
	doc := &doctor.Doctor{Name: "Dr. Chen"}
	s := &Session{
		UserID: &uid,
		Messages: []Message{
			{Sender: SenderBot, Content: "greeting"},
			{Sender: SenderUser, Content: "my chest hurts"},
			{Sender: SenderBot, Content: "rate it", Metadata: &MessageMetadata{QuestionType: QuestionPainRating}},
			{Sender: SenderBot, Content: "see doctor", Metadata: &MessageMetadata{RecommendedDoctor: doc}},
		},
	}

	assert.True(t, s.BelongsTo("P001"))
	assert.True(t, s.BelongsTo(""))
	assert.False(t, s.BelongsTo("P002"))
	assert.Equal(t, "my chest hurts", s.FirstUserMessage())
	assert.Same(t, doc, s.RecommendedDoctor())
	require.NotNil(t, s.LastBotMetadata())
	assert.Same(t, doc, s.LastBotMetadata().RecommendedDoctor)
}

func TestParseAgentReply(t *testing.T) {
	t.Run("完整回复", func(t *testing.T) {
		reply, err := ParseAgentReply(`{"type":"question","message":"How long?","question_type":"duration","collected_info":{"issue":"headache","pain_rating":7,"duration":null},"is_complete":false}`)
		require.NoError(t, err)
		assert.Equal(t, ReplyQuestion, reply.Type)
		assert.Equal(t, "How long?", reply.Message)
		assert.Equal(t, QuestionDuration, reply.QuestionType)
		assert.Equal(t, "headache", reply.CollectedInfo.IssueText())
		assert.Equal(t, "7", reply.CollectedInfo.PainRatingText())
		assert.Nil(t, reply.CollectedInfo.Duration)
	})

	t.Run("缺失字段取默认值", func(t *testing.T) {
		reply, err := ParseAgentReply(`{"message":"Tell me more","type":"chitchat","question_type":"mood","collected_info":"n/a","is_complete":"yes"}`)
		require.NoError(t, err)
		assert.Equal(t, ReplyQuestion, reply.Type)
		assert.Empty(t, reply.QuestionType)
		assert.Equal(t, CollectedInfo{}, reply.CollectedInfo)
		assert.False(t, reply.IsComplete)
	})

	t.Run("null 字面量视为未提取", func(t *testing.T) {
		reply, err := ParseAgentReply(`{"message":"ok","collected_info":{"issue":"null","pain_rating":" ","duration":"NULL"}}`)
		require.NoError(t, err)
		assert.Equal(t, CollectedInfo{}, reply.CollectedInfo)
	})

	t.Run("缺少 message 仍保留提取结果", func(t *testing.T) {
		reply, err := ParseAgentReply(`{"type":"question","collected_info":{"issue":"chest pain","pain_rating":"8","duration":"2 days"},"is_complete":true}`)
		require.NoError(t, err)
		assert.Empty(t, reply.Message)
		assert.Equal(t, "chest pain", reply.CollectedInfo.IssueText())
		assert.Equal(t, "8", reply.CollectedInfo.PainRatingText())
		assert.Equal(t, "2 days", reply.CollectedInfo.DurationText())
	})

	for name, raw := range map[string]string{
		"非 JSON": "Sure! What's bothering you?",
		"数组":     `["message"]`,
		"null":   "null",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAgentReply(raw)
			assert.ErrorIs(t, err, ErrMalformedReply)
		})
	}
}
