package service

import (
	"fmt"
	"strings"
)

const interviewerSystemPrompt = "You are an interviewer AI for a Fullstack / Software Engineer role. Reply with a single JSON object and nothing else."

const (
	temperatureQuestions = 0.3
	temperatureScoring   = 0.2
)

func questionsPrompt(candidateContext string, count int) string {
	return fmt.Sprintf(`Given the candidate's context (resume or background), generate %d interview questions for a Fullstack / Software Engineer role.
Return output in JSON form, exactly as:

{
  "questions": [
    { "qid": "q1", "question": "What is closure in JS?", "timeLimit": 120 }
  ]
}

Candidate context:
%s
`, count, candidateContext)
}

func scoringPrompt(question, answer string) string {
	return fmt.Sprintf(`You are an expert interviewer grader.
Given a question and candidate answer, return JSON:

{
  "score": <0-100>,
  "summary": "short summary",
  "breakdown": [
    { "criterion": "Relevance", "awarded": <number>, "max": <number> },
    { "criterion": "Examples", "awarded": <number>, "max": <number> }
  ]
}

Question: %s
Answer: %s
`, question, answer)
}

func summaryPrompt(answers []AnsweredQuestion) string {
	lines := make([]string, 0, len(answers))
	for _, a := range answers {
		score := "unscored"
		if a.Score != nil {
			score = fmt.Sprintf("%d", *a.Score)
		}
		lines = append(lines, fmt.Sprintf("Q: %s\nA: %s\nScore: %s", a.Question, a.AnswerText, score))
	}
	return fmt.Sprintf(`You are an expert interviewer. Summarize the candidate's performance.
Return JSON:

{
  "totalScore": <0-100>,
  "summary": "Short summary of strengths and weaknesses"
}

Answers:
%s
`, strings.Join(lines, "\n\n"))
}
