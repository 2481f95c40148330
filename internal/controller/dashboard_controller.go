package controller

import (
	"interview_prep_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	interviewDomains = []string{"Software Engineering", "Data Science", "Product Management", "Design", "Marketing"}
	difficultyLevels = []string{"Beginner", "Intermediate", "Advanced"}
)

type DashboardController struct{}

func NewDashboardController() *DashboardController {
	return &DashboardController{}
}

// @Summary 欢迎页
// @Produce html
// @Router /dashboard [get]
func (c *DashboardController) Dashboard(ctx *gin.Context) {
	state := util.GetSessionFromContext(ctx)
	ctx.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Title":    "Dashboard",
		"UserName": state.UserName,
		"Stage":    state.Stage.String(),
		"Domains":  interviewDomains,
	})
}

// @Summary 面试设置页
// @Produce html
// @Param domain path string true "领域"
// @Router /setup/{domain} [get]
func (c *DashboardController) Setup(ctx *gin.Context) {
	state := util.GetSessionFromContext(ctx)
	ctx.HTML(http.StatusOK, "setup.html", gin.H{
		"Title":    "Setup",
		"UserName": state.UserName,
		"Domain":   ctx.Param("domain"),
		"Levels":   difficultyLevels,
	})
}
