package service

import (
	"context"
	"fmt"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/pkg/logger"
	"interview_prep_backend/pkg/monitoring"
	"io"

	"go.uber.org/zap"
)

// ResumeAnalyzer 简历分析
type ResumeAnalyzer interface {
	Analyze(jobRole string) *model.AnalysisResult
}

const mockResumeScore = 82

// MockResumeAnalyzer 不解析简历内容，总是返回固定分数和两条建议
type MockResumeAnalyzer struct{}

func (MockResumeAnalyzer) Analyze(jobRole string) *model.AnalysisResult {
	return &model.AnalysisResult{
		Score: mockResumeScore,
		Suggestions: []model.Suggestion{
			{Type: "Action", Text: "Use more power verbs like 'Executed' or 'Streamlined'."},
			{Type: "Keywords", Text: "Add skills specific to " + jobRole},
		},
	}
}

// ResumeUpload 上传的简历文件
type ResumeUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Reader      io.Reader
}

type ResumeService struct {
	Storage  *StorageService
	Analyzer ResumeAnalyzer
}

func NewResumeService(storage *StorageService, analyzer ResumeAnalyzer) *ResumeService {
	return &ResumeService{
		Storage:  storage,
		Analyzer: analyzer,
	}
}

// Submit 保存简历（如果有）并记录岗位和难度到会话
func (s *ResumeService) Submit(ctx context.Context, state *model.SessionState, upload *ResumeUpload, jobRole, level string) (*model.AnalysisResult, error) {
	if upload != nil && upload.Filename != "" {
		filename := util.ResumeFilename(state.UserName, upload.Filename)
		if _, err := s.Storage.Upload(ctx, filename, upload.Reader, upload.Size, upload.ContentType); err != nil {
			logger.Log.Error("store resume failed",
				zap.String("user", state.UserName),
				zap.String("file", filename),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: %v", util.ErrResumeStorage, err)
		}
		state.ResumeFile = filename
	}

	state.SelectedRole = jobRole
	state.Difficulty = level
	state.Advance(model.StageResumeSubmitted)

	result := s.Analyzer.Analyze(jobRole)
	monitoring.ResumeAnalysisCounter.Inc()
	return result, nil
}
