package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: `{"score": 1}`, want: `{"score": 1}`},
		{name: "json fence", in: "```json\n{\"score\": 1}\n```", want: `{"score": 1}`},
		{name: "bare fence", in: "```\n{\"score\": 1}\n```", want: `{"score": 1}`},
		{name: "prose around", in: "Here you go: {\"score\": 1} hope it helps", want: `{"score": 1}`},
		{name: "no object", in: "nope", want: "nope"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cleanJSONBlock(tc.in))
		})
	}
}

func TestDecodeReply(t *testing.T) {
	parsed, err := decodeReply(`{"score": 42, "summary": "ok"}`, scoreReplySchema)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.Get("score").Int())

	_, err = decodeReply(`not json`, scoreReplySchema)
	assert.Error(t, err)

	_, err = decodeReply(`[1, 2]`, scoreReplySchema)
	assert.Error(t, err)

	_, err = decodeReply(`{"summary": "missing score"}`, scoreReplySchema)
	assert.ErrorContains(t, err, "score")

	_, err = decodeReply(`{"score": "high"}`, scoreReplySchema)
	assert.Error(t, err)

	_, err = decodeReply(`{"questions": [{"qid": "q1"}]}`, questionsReplySchema)
	assert.Error(t, err)

	_, err = decodeReply(`{"questions": [{"qid": 1, "question": "Why?"}]}`, questionsReplySchema)
	assert.NoError(t, err)

	_, err = decodeReply(`{"summary": "no total"}`, summaryReplySchema)
	assert.Error(t, err)
}
