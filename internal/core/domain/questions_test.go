package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionCatalogOrder(t *testing.T) {
	require.Len(t, Questions, 4)
	assert.Equal(t, "q1", Questions[0].Key)
	assert.Equal(t, "q4", Questions[3].Key)

	next, ok := NextQuestion("q1")
	require.True(t, ok)
	assert.Equal(t, "q2", next.Key)

	_, ok = NextQuestion("q4")
	assert.False(t, ok)

	_, ok = NextQuestion("nope")
	assert.False(t, ok)
}

func TestValidChoice(t *testing.T) {
	q, ok := QuestionByKey("q4")
	require.True(t, ok)
	assert.True(t, q.ValidChoice("4a"))
	assert.True(t, q.ValidChoice("4b"))
	assert.False(t, q.ValidChoice("APPROVE"))
	assert.False(t, q.ValidChoice(""))
}

func TestBallotComplete(t *testing.T) {
	b := &BallotRecord{VoterID: 1}
	assert.False(t, b.Complete())

	for _, q := range Questions[:3] {
		b.Answers = append(b.Answers, Answer{Question: q.Key, Choice: q.Choices[0]})
	}
	assert.False(t, b.Complete())

	b.Answers = append(b.Answers, Answer{Question: "q4", Choice: "4a"})
	assert.True(t, b.Complete())

	choice, ok := b.Choice("q4")
	require.True(t, ok)
	assert.Equal(t, "4a", choice)
}
