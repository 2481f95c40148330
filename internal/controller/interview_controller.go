package controller

import (
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type InterviewController struct {
	InterviewService *service.InterviewService
	Sessions         *service.SessionManager
}

func NewInterviewController(interviewService *service.InterviewService, sessions *service.SessionManager) *InterviewController {
	return &InterviewController{
		InterviewService: interviewService,
		Sessions:         sessions,
	}
}

// SubmitInterviewRequest 缺少 answer 字段的条目按空回答处理
type SubmitInterviewRequest struct {
	Responses []model.InterviewResponse `json:"responses"`
}

// InterviewRoom godoc
// @Summary 面试页
// @Produce html
// @Router /interview [get]
func (c *InterviewController) InterviewRoom(ctx *gin.Context) {
	state := util.GetSessionFromContext(ctx)
	questions := c.InterviewService.StartInterview(state)

	if !saveSession(ctx, c.Sessions, state) {
		return
	}

	role := state.SelectedRole
	if role == "" {
		role = c.InterviewService.DefaultRole
	}
	ctx.HTML(http.StatusOK, "interview.html", gin.H{
		"Title":      "Interview",
		"UserName":   state.UserName,
		"Role":       role,
		"Difficulty": state.Difficulty,
		"Questions":  questions,
	})
}

// SubmitInterview godoc
// @Summary 提交全部回答
// @Accept json
// @Produce json
// @Param body body SubmitInterviewRequest true "回答列表"
// @Success 200 {object} object "{status: success, redirect: /results}"
// @Failure 400 {object} util.Response "请求体不是合法 JSON"
// @Router /submit_interview [post]
func (c *InterviewController) SubmitInterview(ctx *gin.Context) {
	state := util.GetSessionFromContext(ctx)

	var req SubmitInterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "invalid interview submission: "+err.Error())
		return
	}

	c.InterviewService.SubmitResponses(state, req.Responses)

	if err := c.Sessions.Save(ctx.Request.Context(), util.GetSessionIDFromContext(ctx), state); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"redirect": util.ResultsPath,
	})
}

// Results godoc
// @Summary 面试结果
// @Produce html
// @Router /results [get]
func (c *InterviewController) Results(ctx *gin.Context) {
	state := util.GetSessionFromContext(ctx)
	result := c.InterviewService.Results(state)

	if !saveSession(ctx, c.Sessions, state) {
		return
	}

	ctx.HTML(http.StatusOK, "results.html", gin.H{
		"Title":      "Results",
		"UserName":   state.UserName,
		"Percentage": result.Percentage,
		"Details":    result.Details,
	})
}
