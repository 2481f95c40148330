package service

import "fmt"

const DefaultRole = "Professional"

const QuestionCount = 10

var behavioralQuestions = [...]string{
	"What is your biggest strength?",
	"Tell me about a time you failed.",
	"How do you handle pressure?",
	"Why should we hire you?",
	"Where do you see yourself in 3 years?",
	"What is your work ethic?",
	"How do you learn new tools?",
	"Describe a team conflict.",
	"Do you have questions for us?",
}

// GenerateQuestions 返回固定的 10 道面试题，第一题包含岗位名称
func GenerateQuestions(role string) []string {
	questions := make([]string, 0, QuestionCount)
	questions = append(questions, fmt.Sprintf("Describe your journey as a %s.", role))
	questions = append(questions, behavioralQuestions[:]...)
	return questions
}
