package triage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mediverse/backend/internal/domain/doctor"
	"github.com/mediverse/backend/internal/domain/events"
	domainllm "github.com/mediverse/backend/internal/domain/llm"
	"github.com/mediverse/backend/internal/domain/triage"
	"github.com/mediverse/backend/internal/infrastructure/config"
	"github.com/mediverse/backend/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTextGenerator 模拟 TextGenerator
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Complete(ctx context.Context, messages []domainllm.Message, mode domainllm.Mode) (string, error) {
	args := m.Called(ctx, messages, mode)
	return args.String(0), args.Error(1)
}

type staticDirectory struct {
	dir *doctor.Directory
}

func (s staticDirectory) Directory() *doctor.Directory { return s.dir }

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func testDirectory() *doctor.Directory {
	return &doctor.Directory{Doctors: []doctor.Doctor{
		{ID: "D001", Name: "Dr. Sharma", Specialty: "General Physician", Qualifications: "MBBS", Experience: "8 years", Rating: 4.5},
		{
			ID: "D002", Name: "Dr. Heart", Specialty: "Cardiologist", Qualifications: "MD, DM Cardiology", Experience: "15 years", Rating: 4.9,
			AvailableSlots: []doctor.Slot{
				{Date: "2030-01-10", Time: "10:00 AM", Available: true},
				{Date: "2030-01-10", Time: "11:00 AM", Available: false},
				{Date: "2030-01-11", Time: "09:30 AM", Available: true},
			},
		},
	}}
}

type fixture struct {
	svc       *Service
	llm       *MockTextGenerator
	publisher *recordingPublisher
	store     *storage.ConversationStore
}

func setupService(t *testing.T, dir *doctor.Directory) *fixture {
	t.Helper()
	js, err := storage.NewJSONStore(&config.StorageConfig{DataDir: t.TempDir()})
	require.NoError(t, err)

	f := &fixture{
		llm:       new(MockTextGenerator),
		publisher: &recordingPublisher{},
		store:     storage.NewConversationStore(js),
	}
	f.svc = NewService(f.store, staticDirectory{dir: dir}, f.llm, f.publisher, nil)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func (f *fixture) reply(raw string) {
	f.llm.On("Complete", mock.Anything, mock.Anything, domainllm.ModeJSON).Return(raw, nil).Once()
}

func populated(info triage.CollectedInfo) int {
	n := 0
	for _, v := range []string{info.IssueText(), info.PainRatingText(), info.DurationText()} {
		if v != "" {
			n++
		}
	}
	return n
}

func TestService_Start(t *testing.T) {
	f := setupService(t, testDirectory())
	user := "P001"

	session, err := f.svc.Start(context.Background(), &user)
	require.NoError(t, err)

	stored, err := f.svc.Get(session.SessionID)
	require.NoError(t, err)
	require.Len(t, stored.Messages, 1)
	assert.Equal(t, 1, stored.Messages[0].ID)
	assert.Equal(t, triage.SenderBot, stored.Messages[0].Sender)
	assert.Equal(t, Greeting, stored.Messages[0].Content)
	assert.Equal(t, triage.QuestionIssue, stored.Messages[0].Metadata.QuestionType)
	assert.Equal(t, triage.StatusActive, stored.Status)
	assert.Equal(t, triage.StageNeedIssue, stored.Stage())
	assert.Equal(t, "P001", *stored.UserID)
}

func TestService_SendMessage_FullConversation(t *testing.T) {
	f := setupService(t, testDirectory())
	session, err := f.svc.Start(context.Background(), nil)
	require.NoError(t, err)

	// 模型在第一轮错误地声称已完成，不应被采信
	f.reply(`{"type":"recommendation","message":"How bad is the pain?","question_type":"pain_rating","collected_info":{"issue":"chest pain","pain_rating":null,"duration":null},"is_complete":true}`)
	f.reply(`{"type":"question","message":"How long has this been going on?","collected_info":{"issue":"null","pain_rating":8,"duration":""},"is_complete":false}`)
	f.reply(`{"type":"question","message":"Thank you.","collected_info":{"duration":"2 days"},"is_complete":false}`)

	inputs := []string{"I have chest pain", "about 8", "two days"}
	completions := 0
	last := 0
	var result *SendMessageResultDTO
	for i, text := range inputs {
		result, err = f.svc.SendMessage(context.Background(), &SendMessageDTO{SessionID: session.SessionID, Message: text})
		require.NoError(t, err)

		n := populated(result.CollectedInfo)
		assert.GreaterOrEqual(t, n, last, "turn %d lost a collected field", i+1)
		last = n
		if result.Response.IsComplete {
			completions++
			assert.Equal(t, len(inputs)-1, i, "completion must happen on the final turn")
		}
	}
	assert.Equal(t, 1, completions)

	assert.Equal(t, triage.ReplyRecommendation, result.Response.Type)
	require.NotNil(t, result.RecommendedDoctor)
	assert.Equal(t, "Dr. Heart", result.RecommendedDoctor.Name)
	assert.True(t, strings.HasPrefix(result.Response.Message, "Based on your symptoms, I recommend consulting with Dr. Heart, a Cardiologist."))
	assert.Contains(t, result.Response.Message, "- 2030-01-10 at 10:00 AM\n")
	assert.NotContains(t, result.Response.Message, "11:00 AM")
	assert.Equal(t, "chest pain", result.CollectedInfo.IssueText())
	assert.Equal(t, "8", result.CollectedInfo.PainRatingText())
	assert.Equal(t, "2 days", result.CollectedInfo.DurationText())

	stored, err := f.svc.Get(session.SessionID)
	require.NoError(t, err)
	assert.Len(t, stored.Messages, 7)
	assert.Equal(t, triage.StatusCompleted, stored.Status)
	assert.Equal(t, 7, stored.Messages[6].ID)
	assert.Equal(t, triage.SenderUser, stored.Messages[5].Sender)

	require.Equal(t, 1, f.publisher.count())
	evt, ok := f.publisher.events[0].(*events.TriageCompletedEvent)
	require.True(t, ok)
	assert.Equal(t, "D002", evt.DoctorID)
	assert.Equal(t, "8", evt.PainRating)
	f.llm.AssertExpectations(t)
}

func TestService_SendMessage_MalformedReply(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture)
	}{
		{"not json", func(f *fixture) { f.reply("Sure, tell me more") }},
		{"json array", func(f *fixture) { f.reply(`["pain_rating"]`) }},
		{"client rejected json", func(f *fixture) {
			f.llm.On("Complete", mock.Anything, mock.Anything, domainllm.ModeJSON).
				Return("", domainllm.ErrMalformedResponse).Once()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupService(t, testDirectory())
			session, err := f.svc.Start(context.Background(), nil)
			require.NoError(t, err)
			_, err = f.svc.AddMessage(session.SessionID, triage.SenderBot, "noted", &triage.MessageMetadata{
				CollectedInfo: &triage.CollectedInfo{Issue: triage.StringPtr("rash")},
			})
			require.NoError(t, err)
			tt.setup(f)

			result, err := f.svc.SendMessage(context.Background(), &SendMessageDTO{SessionID: session.SessionID, Message: "???"})
			require.NoError(t, err)
			assert.Equal(t, RepromptMessage, result.Response.Message)
			assert.Equal(t, "rash", result.CollectedInfo.IssueText())
			assert.Equal(t, triage.QuestionPainRating, result.Response.QuestionType)
			assert.False(t, result.Response.IsComplete)

			stored, err := f.svc.Get(session.SessionID)
			require.NoError(t, err)
			assert.Len(t, stored.Messages, 4)
		})
	}
}

func TestService_SendMessage_ServiceUnavailable(t *testing.T) {
	f := setupService(t, testDirectory())
	session, err := f.svc.Start(context.Background(), nil)
	require.NoError(t, err)
	f.llm.On("Complete", mock.Anything, mock.Anything, domainllm.ModeJSON).
		Return("", fmt.Errorf("%w: timeout", domainllm.ErrNotResponding)).Once()

	result, err := f.svc.SendMessage(context.Background(), &SendMessageDTO{SessionID: session.SessionID, Message: "headache"})
	require.NoError(t, err)
	assert.Equal(t, UnavailableMessage, result.Response.Message)

	stored, err := f.svc.Get(session.SessionID)
	require.NoError(t, err)
	assert.Len(t, stored.Messages, 1)
}

func TestService_SendMessage_Errors(t *testing.T) {
	f := setupService(t, testDirectory())

	_, err := f.svc.SendMessage(context.Background(), &SendMessageDTO{SessionID: "missing", Message: "hi"})
	assert.ErrorIs(t, err, triage.ErrSessionNotFound)

	_, err = f.svc.SendMessage(context.Background(), &SendMessageDTO{SessionID: "missing", Message: "   "})
	assert.ErrorIs(t, err, triage.ErrEmptyMessage)

	assert.Empty(t, f.svc.List(""))
	f.llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_EmptyDirectoryRecommendation(t *testing.T) {
	f := setupService(t, &doctor.Directory{})
	f.reply(`{"type":"recommendation","message":"ok","collected_info":{"issue":"stomach ache","pain_rating":"3","duration":"1 week"}}`)

	out := f.svc.Process(context.Background(), nil, "stomach ache, 3, a week", triage.CollectedInfo{})

	assert.True(t, out.Reply.IsComplete)
	assert.Equal(t, triage.ReplyRecommendation, out.Reply.Type)
	assert.Equal(t, doctor.GenericRecommendation, out.Reply.Message)
	assert.Nil(t, out.Reply.RecommendedDoctor)
}

func TestService_ProcessFallsBackToFirstDoctor(t *testing.T) {
	f := setupService(t, &doctor.Directory{Doctors: []doctor.Doctor{{Name: "Dr. Only", Specialty: "Dermatologist"}}})
	f.reply(`{"message":"ok","collected_info":{"duration":"2 days"}}`)

	current := triage.CollectedInfo{Issue: triage.StringPtr("chest pain"), PainRating: triage.StringPtr("8")}
	out := f.svc.Process(context.Background(), nil, "2 days", current)

	require.NotNil(t, out.Reply.RecommendedDoctor)
	assert.Equal(t, "Dr. Only", out.Reply.RecommendedDoctor.Name)
}

func TestService_ProcessReplyWithoutMessage(t *testing.T) {
	t.Run("全部字段已提取时给出推荐", func(t *testing.T) {
		f := setupService(t, testDirectory())
		f.reply(`{"type":"question","collected_info":{"issue":"chest pain","pain_rating":"8","duration":"2 days"},"is_complete":true}`)

		out := f.svc.Process(context.Background(), nil, "chest pain, 8, two days", triage.CollectedInfo{})

		assert.Equal(t, "chest pain", out.CollectedInfo.IssueText())
		assert.Equal(t, "8", out.CollectedInfo.PainRatingText())
		assert.Equal(t, "2 days", out.CollectedInfo.DurationText())
		assert.True(t, out.Reply.IsComplete)
		assert.Equal(t, triage.ReplyRecommendation, out.Reply.Type)
		require.NotNil(t, out.Reply.RecommendedDoctor)
		assert.Equal(t, "Dr. Heart", out.Reply.RecommendedDoctor.Name)
		assert.False(t, out.Degraded)
	})

	t.Run("未完成时按阶段追问", func(t *testing.T) {
		f := setupService(t, testDirectory())
		f.reply(`{"type":"question","collected_info":{"issue":"rash"}}`)

		out := f.svc.Process(context.Background(), nil, "I have a rash", triage.CollectedInfo{})

		assert.Equal(t, "rash", out.CollectedInfo.IssueText())
		assert.Equal(t, triage.QuestionPainRating, out.Reply.QuestionType)
		assert.Equal(t, painQuestion, out.Reply.Message)
		assert.False(t, out.Reply.IsComplete)
	})
}

func TestService_AddMessage(t *testing.T) {
	f := setupService(t, testDirectory())
	session, err := f.svc.Start(context.Background(), nil)
	require.NoError(t, err)

	full := triage.CollectedInfo{
		Issue:      triage.StringPtr("migraine"),
		PainRating: triage.StringPtr("6"),
	}
	_, err = f.svc.AddMessage(session.SessionID, triage.SenderBot, "q", &triage.MessageMetadata{CollectedInfo: &full})
	require.NoError(t, err)

	// AddMessage 记录的是已决议状态：整体覆盖
	partial := triage.CollectedInfo{Issue: triage.StringPtr("migraine")}
	msg, err := f.svc.AddMessage(session.SessionID, triage.SenderBot, "q2", &triage.MessageMetadata{CollectedInfo: &partial})
	require.NoError(t, err)
	assert.Equal(t, 3, msg.ID)

	stored, err := f.svc.Get(session.SessionID)
	require.NoError(t, err)
	assert.Nil(t, stored.CollectedInfo.PainRating)

	// Process 的合并不会清空已收集字段
	merged := full.Merge(partial)
	assert.Equal(t, "6", merged.PainRatingText())

	_, err = f.svc.AddMessage("missing", triage.SenderUser, "hello", nil)
	assert.ErrorIs(t, err, triage.ErrSessionNotFound)
}

func TestService_Delete(t *testing.T) {
	f := setupService(t, testDirectory())
	session, err := f.svc.Start(context.Background(), nil)
	require.NoError(t, err)

	ok, err := f.svc.Delete(session.SessionID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.Delete(session.SessionID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_SessionSummaries(t *testing.T) {
	f := setupService(t, testDirectory())
	user := "P001"
	other := "P002"
	long := strings.Repeat("a", 60)
	heart := testDirectory().Doctors[1]

	sessions := []*triage.Session{
		{
			SessionID: "older", UserID: &user, CreatedAt: fixedNow.Add(-time.Hour), Status: triage.StatusCompleted,
			CollectedInfo: triage.CollectedInfo{Issue: triage.StringPtr("chest pain")},
			Messages: []triage.Message{
				{ID: 1, Sender: triage.SenderBot, Content: Greeting},
				{ID: 2, Sender: triage.SenderUser, Content: "chest pain"},
				{ID: 3, Sender: triage.SenderBot, Content: "rec", Metadata: &triage.MessageMetadata{
					CollectedInfo:     &triage.CollectedInfo{PainRating: triage.StringPtr("5")},
					RecommendedDoctor: &heart,
				}},
			},
		},
		{
			SessionID: "newer", UserID: &user, CreatedAt: fixedNow, Status: triage.StatusActive,
			Messages: []triage.Message{
				{ID: 1, Sender: triage.SenderBot, Content: Greeting},
				{ID: 2, Sender: triage.SenderUser, Content: long},
				{ID: 3, Sender: triage.SenderBot, Content: "how bad?", Metadata: &triage.MessageMetadata{
					CollectedInfo: &triage.CollectedInfo{PainRating: triage.StringPtr("severe")},
				}},
			},
		},
		{SessionID: "someone-else", UserID: &other, CreatedAt: fixedNow, Status: triage.StatusActive},
	}
	for _, s := range sessions {
		require.NoError(t, f.store.Create(s))
	}

	got := f.svc.SessionSummaries(user)
	require.Len(t, got, 2)

	assert.Equal(t, "newer", got[0].SessionID)
	require.NotNil(t, got[0].Symptom)
	assert.Equal(t, strings.Repeat("a", 50)+"...", *got[0].Symptom)
	assert.Nil(t, got[0].TriageLevel)
	assert.Nil(t, got[0].RecommendedDoctor)

	assert.Equal(t, "older", got[1].SessionID)
	assert.Equal(t, "chest pain", *got[1].Symptom)
	require.NotNil(t, got[1].TriageLevel)
	assert.Equal(t, "medium", *got[1].TriageLevel)
	assert.Equal(t, "Dr. Heart", *got[1].RecommendedDoctor)

	assert.Len(t, f.svc.SessionSummaries(""), 3)
}

func TestTriageLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "low"},
		{"3", "low"},
		{"4", "medium"},
		{"6", "medium"},
		{"7", "high"},
		{"10", "high"},
	}
	for _, tt := range tests {
		got := triageLevel(tt.in)
		require.NotNil(t, got, tt.in)
		assert.Equal(t, tt.want, *got, tt.in)
	}
	assert.Nil(t, triageLevel("7.5"))
	assert.Nil(t, triageLevel(""))
}

func TestBuildMessages(t *testing.T) {
	history := []triage.Message{
		{ID: 1, Sender: triage.SenderBot, Content: Greeting},
		{ID: 2, Sender: triage.SenderUser, Content: "headache"},
		{ID: 3, Sender: triage.SenderBot, Content: "How bad?"},
	}
	info := triage.CollectedInfo{Issue: triage.StringPtr("headache")}

	msgs := buildMessages(history, "about 4", info)

	require.Len(t, msgs, 4)
	assert.Equal(t, domainllm.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "- Issue: headache\n- Pain Rating (1-10): Not collected\n- Duration: Not collected")
	assert.Equal(t, domainllm.Message{Role: domainllm.RoleUser, Content: "headache"}, msgs[1])
	assert.Equal(t, domainllm.Message{Role: domainllm.RoleAssistant, Content: "How bad?"}, msgs[2])
	assert.Equal(t, domainllm.Message{Role: domainllm.RoleUser, Content: "about 4"}, msgs[3])
}
