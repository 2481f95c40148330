package service

import (
	"interview_prep_backend/internal/model"
	"interview_prep_backend/pkg/monitoring"
)

type InterviewService struct {
	Scorer      ResponseScorer
	DefaultRole string
}

func NewInterviewService(scorer ResponseScorer, defaultRole string) *InterviewService {
	if defaultRole == "" {
		defaultRole = DefaultRole
	}
	return &InterviewService{
		Scorer:      scorer,
		DefaultRole: defaultRole,
	}
}

// StartInterview 按会话中选择的岗位生成题目
func (s *InterviewService) StartInterview(state *model.SessionState) []string {
	role := state.SelectedRole
	if role == "" {
		role = s.DefaultRole
	}
	state.Advance(model.StageInterviewStarted)
	return GenerateQuestions(role)
}

// SubmitResponses 原样保存回答，不校验数量和内容
func (s *InterviewService) SubmitResponses(state *model.SessionState, responses []model.InterviewResponse) {
	if responses == nil {
		responses = []model.InterviewResponse{}
	}
	state.InterviewResults = responses
	state.Advance(model.StageInterviewSubmitted)
	monitoring.InterviewSubmissionCounter.Inc()
	monitoring.InterviewScoreHistogram.Observe(float64(s.Scorer.Score(responses)))
}

// Results 每次都根据会话中的回答重新计算
func (s *InterviewService) Results(state *model.SessionState) *model.ScoreResult {
	details := state.InterviewResults
	if details == nil {
		details = []model.InterviewResponse{}
	}
	score := s.Scorer.Score(details)
	state.Advance(model.StageResultsViewed)

	return &model.ScoreResult{
		Percentage: score,
		Details:    details,
	}
}
