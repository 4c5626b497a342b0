package config

import (
	"sync"

	"github.com/spf13/viper"
)

const MaxQuestionCount = 6

type InterviewConfig struct {
	QuestionCount    int
	DefaultTimeLimit int
	HireThreshold    int
}

var (
	interviewConfig *InterviewConfig
	interviewOnce   sync.Once
)

func LoadInterviewConfig() *InterviewConfig {
	interviewOnce.Do(func() {
		interviewConfig = NewInterviewConfig(settings())
	})
	return interviewConfig
}

func NewInterviewConfig(v *viper.Viper) *InterviewConfig {
	cfg := &InterviewConfig{
		QuestionCount:    v.GetInt("INTERVIEW_QUESTION_COUNT"),
		DefaultTimeLimit: v.GetInt("INTERVIEW_DEFAULT_TIME_LIMIT"),
		HireThreshold:    v.GetInt("INTERVIEW_HIRE_THRESHOLD"),
	}
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = MaxQuestionCount
	}
	if cfg.DefaultTimeLimit <= 0 {
		cfg.DefaultTimeLimit = 120
	}
	return cfg
}
