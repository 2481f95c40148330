package model

// InterviewResponse 面试中的一问一答，answer 缺失时按空字符串处理
type InterviewResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Suggestion struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// AnalysisResult 简历分析结果
type AnalysisResult struct {
	Score       int          `json:"score"`
	Suggestions []Suggestion `json:"suggestions"`
}

// ScoreResult 结果页展示数据。Percentage 是各题得分之和，并未归一化到 0-100
type ScoreResult struct {
	Percentage int                 `json:"percentage"`
	Details    []InterviewResponse `json:"details"`
}
