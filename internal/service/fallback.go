package service

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/fadilmartias/ai-interviewer/internal/model"
)

const (
	criterionRelevance = "Relevance"
	criterionDepth     = "Examples / Depth"
	relevanceMax       = 60
	depthMax           = 40
)

var canonicalQuestions = []GeneratedQuestion{
	{QID: "q1", Question: "What is a closure in JavaScript and give an example?", TimeLimitSeconds: 120},
	{QID: "q2", Question: "Explain event loop and microtasks in Node.js.", TimeLimitSeconds: 150},
	{QID: "q3", Question: "Describe how you would optimize a slow React component.", TimeLimitSeconds: 120},
	{QID: "q4", Question: "Explain REST vs GraphQL; when to choose which?", TimeLimitSeconds: 150},
	{QID: "q5", Question: "How would you design a system to handle 10k req/s?", TimeLimitSeconds: 180},
	{QID: "q6", Question: "Describe how you test an API endpoint (unit/integration/e2e).", TimeLimitSeconds: 120},
}

// Matched case-insensitively as substrings; stems like "optimi" cover
// optimize and optimise.
var scoringKeywords = []string{
	"example", "closure", "scope", "event loop", "react",
	"optimi", "scalab", "graphql", "rest", "test",
}

func fallbackQuestions(count int) []GeneratedQuestion {
	if count < 0 {
		count = 0
	}
	if count > len(canonicalQuestions) {
		count = len(canonicalQuestions)
	}
	out := make([]GeneratedQuestion, count)
	copy(out, canonicalQuestions[:count])
	return out
}

func fallbackScore(answer string) Evaluation {
	score := utf8.RuneCountInString(strings.TrimSpace(answer)) / 2
	if score > 100 {
		score = 100
	}
	lower := strings.ToLower(answer)
	for _, k := range scoringKeywords {
		if strings.Contains(lower, k) {
			score = min(100, score+5)
		}
	}
	return Evaluation{
		Score:     score,
		Summary:   answerBand(score),
		Breakdown: splitBreakdown(score),
	}
}

// splitBreakdown divides score 60/40 so that the awarded values always add up
// to score.
func splitBreakdown(score int) []model.RubricItem {
	relevance := (score*6 + 5) / 10
	return []model.RubricItem{
		{Criterion: criterionRelevance, Awarded: relevance, Max: relevanceMax},
		{Criterion: criterionDepth, Awarded: score - relevance, Max: depthMax},
	}
}

func answerBand(score int) string {
	switch {
	case score > 70:
		return "Good answer with solid points."
	case score > 40:
		return "Partial understanding; add examples."
	default:
		return "Needs improvement; lacks key points."
	}
}

func summaryBand(score int) string {
	switch {
	case score > 75:
		return "Candidate shows strong fundamentals and communication."
	case score > 50:
		return "Candidate has decent fundamentals but needs improvement."
	default:
		return "Candidate needs significant improvement."
	}
}

// MeanScore is the rounded mean of the scores with absent entries counted as
// zero. An empty list yields 0.
func MeanScore(scores []*int) int {
	total := 0
	for _, s := range scores {
		if s != nil {
			total += *s
		}
	}
	return int(math.Round(float64(total) / float64(max(1, len(scores)))))
}

func fallbackSummary(answers []AnsweredQuestion) Summary {
	scores := make([]*int, len(answers))
	for i := range answers {
		scores[i] = answers[i].Score
	}
	total := MeanScore(scores)
	return Summary{TotalScore: total, Text: summaryBand(total)}
}
