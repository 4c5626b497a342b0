package service

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

var (
	questionsReplySchema = mustSchema(`{
		"type": "object",
		"required": ["questions"],
		"properties": {
			"questions": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["question"],
					"properties": {
						"qid": {"type": ["string", "number"]},
						"question": {"type": "string", "minLength": 1},
						"timeLimit": {"type": "number"}
					}
				}
			}
		}
	}`)

	scoreReplySchema = mustSchema(`{
		"type": "object",
		"required": ["score"],
		"properties": {
			"score": {"type": "number"},
			"summary": {"type": "string"},
			"breakdown": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["criterion", "awarded", "max"],
					"properties": {
						"criterion": {"type": "string"},
						"awarded": {"type": "number"},
						"max": {"type": "number"}
					}
				}
			}
		}
	}`)

	summaryReplySchema = mustSchema(`{
		"type": "object",
		"required": ["totalScore"],
		"properties": {
			"totalScore": {"type": "number"},
			"summary": {"type": "string"}
		}
	}`)
)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("invalid reply schema: %v", err))
	}
	return schema
}

// cleanJSONBlock strips markdown code fences and any prose around the outermost
// JSON object.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```JSON")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}
	return text
}

// decodeReply checks that raw holds one JSON object satisfying schema and
// returns it ready for gjson lookups.
func decodeReply(raw string, schema *gojsonschema.Schema) (gjson.Result, error) {
	cleaned := cleanJSONBlock(raw)
	if cleaned == "" || !gjson.Valid(cleaned) {
		return gjson.Result{}, fmt.Errorf("reply is not valid JSON")
	}
	parsed := gjson.Parse(cleaned)
	if !parsed.IsObject() {
		return gjson.Result{}, fmt.Errorf("reply is not a JSON object")
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(cleaned))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("validate reply: %w", err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return gjson.Result{}, fmt.Errorf("reply violates schema: %s", strings.Join(problems, "; "))
	}
	return parsed, nil
}
