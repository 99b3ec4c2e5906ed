package trivia

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeQuestions(n int) []Question {
	out := make([]Question, n)
	for i := range out {
		out[i] = Question{ID: i + 1, Category: i%6 + 1, Difficulty: 1}
	}
	return out
}

func TestPaginateSizes(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 19, 20, 23, 57} {
		items := makeQuestions(n)
		for page := 1; page <= 8; page++ {
			want := min(QuestionsPerPage, max(0, n-QuestionsPerPage*(page-1)))
			assert.Len(t, Paginate(page, items), want, "n=%d page=%d", n, page)
		}
	}
}

func TestPaginateReconstructsInput(t *testing.T) {
	items := makeQuestions(23)
	pages := int(math.Ceil(float64(len(items)) / QuestionsPerPage))

	var joined []Question
	for p := 1; p <= pages; p++ {
		joined = append(joined, Paginate(p, items)...)
	}
	assert.Equal(t, items, joined)
}

func TestPaginateEdgePages(t *testing.T) {
	items := makeQuestions(15)

	assert.Empty(t, Paginate(0, items))
	assert.Empty(t, Paginate(-3, items))
	assert.Empty(t, Paginate(1000, items))
	assert.Empty(t, Paginate(math.MaxInt, items))
	assert.Equal(t, 11, Paginate(2, items)[0].ID)
}

func TestPaginateDoesNotMutateInput(t *testing.T) {
	items := makeQuestions(12)
	page := Paginate(1, items)
	page = append(page, Question{ID: 99})

	assert.Len(t, page, 11)
	assert.Equal(t, 11, items[10].ID)
}
