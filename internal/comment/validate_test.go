package comment

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeCandidate(t *testing.T, body string) Candidate {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var c Candidate
	require.NoError(t, dec.Decode(&c))
	return c
}

func TestValidate(t *testing.T) {
	got, err := Validate(decodeCandidate(t, `{"author":"joe","text":"we like to boogie","postId":1}`))
	require.NoError(t, err)
	assert.Equal(t, NewComment{Text: "we like to boogie", Author: "joe", PostID: 1}, got)
}

func TestValidateIntegralNumberForms(t *testing.T) {
	for _, postID := range []string{"1.0", "1e0", "10E-1"} {
		t.Run(postID, func(t *testing.T) {
			got, err := Validate(decodeCandidate(t, `{"author":"joe","text":"t","postId":`+postID+`}`))
			require.NoError(t, err)
			assert.Equal(t, int64(1), got.PostID)
		})
	}
}

func TestValidateReplyTo(t *testing.T) {
	got, err := Validate(decodeCandidate(t, `{"author":"charlie","text":"great comment barry!","postId":1,"replyToId":"abc"}`))
	require.NoError(t, err)
	assert.Equal(t, "abc", got.ReplyToID)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no author", `{"text":"hello","postId":1}`},
		{"no text", `{"author":"jim","postId":1}`},
		{"no postId", `{"author":"sarah","text":"hello"}`},
		{"string postId", `{"author":"joe","text":"we like to boogie","postId":"hi"}`},
		{"numeric string postId", `{"author":"joe","text":"hi","postId":"1"}`},
		{"fractional postId", `{"author":"joe","text":"hi","postId":1.5}`},
		{"huge postId", `{"author":"joe","text":"hi","postId":1e300}`},
		{"numeric text", `{"author":"joe","text":5,"postId":1}`},
		{"null author", `{"author":null,"text":"hi","postId":1}`},
		{"numeric replyToId", `{"author":"joe","text":"hi","postId":1,"replyToId":3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(decodeCandidate(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidCommentBody)
		})
	}
}

func TestValidateAcceptsEmptyText(t *testing.T) {
	_, err := Validate(Candidate{Text: "", Author: "", PostID: json.Number("3")})
	assert.NoError(t, err)
}

func TestValidateAcceptsGoNumbers(t *testing.T) {
	got, err := Validate(Candidate{Text: "t", Author: "a", PostID: float64(2)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.PostID)
}

func TestValidateText(t *testing.T) {
	text, err := ValidateText("new text")
	require.NoError(t, err)
	assert.Equal(t, "new text", text)

	_, err = ValidateText(nil)
	assert.ErrorIs(t, err, ErrInvalidCommentBody)

	_, err = ValidateText(json.Number("4"))
	assert.ErrorIs(t, err, ErrInvalidCommentBody)
}
