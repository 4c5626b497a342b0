package service

import (
	"regexp"
	"strings"
)

var (
	emailPattern      = regexp.MustCompile(`(?i)[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)
	phonePattern      = regexp.MustCompile(`\+?\d[\d\-\s]{6,}\d`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	contactLine       = regexp.MustCompile(`(?i)email|phone|@`)
)

type ParsedResume struct {
	Name    string   `json:"name,omitempty"`
	Email   string   `json:"email,omitempty"`
	Phone   string   `json:"phone,omitempty"`
	Missing []string `json:"missing"`
}

// ParseResume pulls contact details out of plain resume text. The name is the
// first non-contact line when it is at most four words long.
func ParseResume(text string) ParsedResume {
	if strings.TrimSpace(text) == "" {
		return ParsedResume{Missing: []string{"name", "email"}}
	}

	var parsed ParsedResume
	parsed.Email = emailPattern.FindString(text)
	if phone := phonePattern.FindString(text); phone != "" {
		parsed.Phone = strings.TrimSpace(whitespacePattern.ReplaceAllString(phone, " "))
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= 1 || contactLine.MatchString(line) {
			continue
		}
		if len(strings.Split(line, " ")) <= 4 {
			parsed.Name = line
		}
		break
	}

	parsed.Missing = []string{}
	if parsed.Name == "" {
		parsed.Missing = append(parsed.Missing, "name")
	}
	if parsed.Email == "" {
		parsed.Missing = append(parsed.Missing, "email")
	}
	if parsed.Phone == "" {
		parsed.Missing = append(parsed.Missing, "phone")
	}
	return parsed
}
