package service

import (
	"interview_prep_backend/internal/model"
	"strings"
)

// ResponseScorer 面试回答评分
type ResponseScorer interface {
	Score(responses []model.InterviewResponse) int
}

// WordCountScorer 按回答词数打分：超过 Threshold 个词得 LongPoints，否则得 ShortPoints。
// 总分是逐题相加，不做归一化
type WordCountScorer struct {
	Threshold   int
	LongPoints  int
	ShortPoints int
}

func NewWordCountScorer() *WordCountScorer {
	return &WordCountScorer{
		Threshold:   15,
		LongPoints:  10,
		ShortPoints: 5,
	}
}

func (s *WordCountScorer) Score(responses []model.InterviewResponse) int {
	total := 0
	for _, r := range responses {
		total += s.ScoreAnswer(r.Answer)
	}
	return total
}

func (s *WordCountScorer) ScoreAnswer(answer string) int {
	if len(strings.Fields(answer)) > s.Threshold {
		return s.LongPoints
	}
	return s.ShortPoints
}
