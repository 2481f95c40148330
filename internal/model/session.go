package model

// Stage 会话在面试流程中的阶段，只能前进
type Stage int

const (
	StageLoggedOut Stage = iota
	StageLoggedIn
	StageResumeSubmitted
	StageInterviewStarted
	StageInterviewSubmitted
	StageResultsViewed
)

var stageNames = map[Stage]string{
	StageLoggedOut:          "logged_out",
	StageLoggedIn:           "logged_in",
	StageResumeSubmitted:    "resume_submitted",
	StageInterviewStarted:   "interview_started",
	StageInterviewSubmitted: "interview_submitted",
	StageResultsViewed:      "results_viewed",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// SessionState 单个浏览器会话的临时状态，存放在会话存储中，不落库
type SessionState struct {
	UserID           uint                `json:"user_id"`
	UserName         string              `json:"user_name"`
	Email            string              `json:"email"`
	SelectedRole     string              `json:"selected_role,omitempty"`
	Difficulty       string              `json:"difficulty,omitempty"`
	ResumeFile       string              `json:"resume_file,omitempty"`
	Stage            Stage               `json:"stage"`
	InterviewResults []InterviewResponse `json:"interview_results,omitempty"`
}

func NewSessionState(user *User) *SessionState {
	return &SessionState{
		UserID:   user.ID,
		UserName: user.FullName,
		Email:    user.Email,
		Stage:    StageLoggedIn,
	}
}

func (s *SessionState) Authenticated() bool {
	return s != nil && s.UserName != ""
}

// Advance 推进阶段，不会回退
func (s *SessionState) Advance(to Stage) {
	if to > s.Stage {
		s.Stage = to
	}
}
