package controller

import (
	"errors"
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ResumeController struct {
	ResumeService  *service.ResumeService
	Sessions       *service.SessionManager
	MaxUploadBytes int64
}

func NewResumeController(resumeService *service.ResumeService, sessions *service.SessionManager, maxUploadMB int64) *ResumeController {
	return &ResumeController{
		ResumeService:  resumeService,
		Sessions:       sessions,
		MaxUploadBytes: maxUploadMB << 20,
	}
}

type AnalyzeResumeRequest struct {
	JobRole string `form:"job_role"`
	Level   string `form:"level"`
}

// AnalyzeResume godoc
// @Summary 简历 ATS 检查
// @Description 保存上传的简历（可选），记录岗位和难度，返回固定的分析结果
// @Accept multipart/form-data
// @Produce html
// @Param resume formData file false "简历文件"
// @Param job_role formData string false "岗位"
// @Param level formData string false "难度"
// @Router /analyze_resume [post]
func (c *ResumeController) AnalyzeResume(ctx *gin.Context) {
	state := util.GetSessionFromContext(ctx)

	if c.MaxUploadBytes > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.MaxUploadBytes)
	}

	var req AnalyzeResumeRequest
	if err := ctx.ShouldBind(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			logger.Log.Info("resume rejected", zap.Int64("limit", maxErr.Limit), zap.Error(util.ErrUploadTooLarge))
			renderError(ctx, http.StatusBadRequest, "The uploaded resume is too large.")
			return
		}
		renderError(ctx, http.StatusBadRequest, "The submitted form could not be read.")
		return
	}

	upload, closeUpload, err := openUpload(ctx)
	if err != nil {
		logger.Log.Error("open uploaded resume failed", zap.Error(err))
		renderError(ctx, http.StatusBadRequest, "The uploaded resume could not be read.")
		return
	}
	defer closeUpload()

	result, err := c.ResumeService.Submit(ctx.Request.Context(), state, upload, req.JobRole, req.Level)
	if err != nil {
		renderError(ctx, http.StatusInternalServerError, "Resume intake failed, please try again.")
		return
	}

	if !saveSession(ctx, c.Sessions, state) {
		return
	}

	ctx.HTML(http.StatusOK, "ats_checker.html", gin.H{
		"Title":       "ATS Checker",
		"UserName":    state.UserName,
		"Role":        state.SelectedRole,
		"Level":       state.Difficulty,
		"Score":       result.Score,
		"Suggestions": result.Suggestions,
	})
}

// openUpload 没有上传文件时返回 nil
func openUpload(ctx *gin.Context) (*service.ResumeUpload, func(), error) {
	noop := func() {}

	header, err := ctx.FormFile("resume")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, err
	}
	if header.Filename == "" {
		return nil, noop, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, noop, err
	}

	return &service.ResumeUpload{
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      file,
	}, func() { file.Close() }, nil
}
