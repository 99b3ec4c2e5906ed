package trivia

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickQuizQuestionNeverReturnsPrevious(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	candidates := makeQuestions(12)
	previous := []int{1, 3, 5, 7, 9, 11}

	for i := 0; i < 500; i++ {
		q, ok := PickQuizQuestion(candidates, previous, rng.IntN)
		require.True(t, ok)
		assert.NotContains(t, previous, q.ID)
	}
}

func TestPickQuizQuestionExhausted(t *testing.T) {
	candidates := makeQuestions(3)

	_, ok := PickQuizQuestion(candidates, []int{1, 2, 3}, rand.IntN)
	assert.False(t, ok)

	_, ok = PickQuizQuestion(nil, nil, rand.IntN)
	assert.False(t, ok)
}

func TestPickQuizQuestionIgnoresUnknownPrevious(t *testing.T) {
	candidates := makeQuestions(1)

	q, ok := PickQuizQuestion(candidates, []int{42, 99}, rand.IntN)
	require.True(t, ok)
	assert.Equal(t, 1, q.ID)
}

func TestPickQuizQuestionIsUniform(t *testing.T) {
	const (
		n     = 5
		draws = 50000
	)
	rng := rand.New(rand.NewPCG(7, 11))
	candidates := makeQuestions(n)

	counts := map[int]int{}
	for i := 0; i < draws; i++ {
		q, ok := PickQuizQuestion(candidates, nil, rng.IntN)
		require.True(t, ok)
		counts[q.ID]++
	}

	require.Len(t, counts, n)
	expected := float64(draws) / n
	for id, c := range counts {
		assert.InDelta(t, expected, float64(c), expected*0.05, "question %d drawn %d times", id, c)
	}
}
