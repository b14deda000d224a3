package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerValueUnmarshal(t *testing.T) {
	var v AnswerValue

	require.NoError(t, json.Unmarshal([]byte(`"free text"`), &v))
	assert.False(t, v.IsBool())
	assert.Equal(t, "free text", v.Render())

	require.NoError(t, json.Unmarshal([]byte(`true`), &v))
	assert.True(t, v.IsBool())
	assert.Equal(t, "Yes", v.Render())

	require.NoError(t, json.Unmarshal([]byte(`false`), &v))
	assert.Equal(t, "No", v.Render())

	assert.Error(t, json.Unmarshal([]byte(`42`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"text":"nested"}`), &v))
}

func TestAnswerValueMarshalPreservesShape(t *testing.T) {
	out, err := json.Marshal(StringAnswer("some text"))
	require.NoError(t, err)
	assert.JSONEq(t, `"some text"`, string(out))

	out, err = json.Marshal(BoolAnswer(false))
	require.NoError(t, err)
	assert.JSONEq(t, `false`, string(out))
}

func TestAnswerValueIsZero(t *testing.T) {
	assert.True(t, AnswerValue{}.IsZero())
	assert.True(t, StringAnswer("").IsZero())

	// A false boolean is a real answer, not an absent one.
	assert.False(t, BoolAnswer(false).IsZero())
	assert.False(t, StringAnswer("x").IsZero())
}

func TestUpsertAnswerKeepsID(t *testing.T) {
	s := &RefinementSession{
		Questions: []Question{{ID: "q1"}, {ID: "q2"}},
	}

	s.UpsertAnswer(Answer{ID: "a1", QuestionID: "q1", Response: StringAnswer("first")})
	s.UpsertAnswer(Answer{ID: "a2", QuestionID: "q2", Response: StringAnswer("other")})
	s.UpsertAnswer(Answer{ID: "a3", QuestionID: "q1", Response: StringAnswer("second")})

	require.Len(t, s.Answers, 2)

	got, ok := s.AnswerFor("q1")
	require.True(t, ok)
	assert.Equal(t, "a1", got.ID)
	assert.Equal(t, "second", got.Response.Render())
}
