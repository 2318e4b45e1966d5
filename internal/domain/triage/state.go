package triage

// Stage 分诊状态机阶段，完全由 CollectedInfo 推导
type Stage string

const (
	StageNeedIssue    Stage = "need_issue"
	StageNeedPain     Stage = "need_pain"
	StageNeedDuration Stage = "need_duration"
	StageDone         Stage = "done"
)

// 问题类型，与模型回复的 question_type 对应
const (
	QuestionIssue      = "issue"
	QuestionPainRating = "pain_rating"
	QuestionDuration   = "duration"
)

// StageOf 按固定顺序找到第一个未收集的字段
func StageOf(info CollectedInfo) Stage {
	switch {
	case !usable(info.Issue):
		return StageNeedIssue
	case !usable(info.PainRating):
		return StageNeedPain
	case !usable(info.Duration):
		return StageNeedDuration
	default:
		return StageDone
	}
}

// QuestionType 当前阶段应提出的问题类型，done 阶段为空
func (s Stage) QuestionType() string {
	switch s {
	case StageNeedIssue:
		return QuestionIssue
	case StageNeedPain:
		return QuestionPainRating
	case StageNeedDuration:
		return QuestionDuration
	default:
		return ""
	}
}

// Done 是否已完成信息收集
func (s Stage) Done() bool {
	return s == StageDone
}
