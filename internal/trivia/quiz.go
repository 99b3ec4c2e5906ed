package trivia

// PickQuizQuestion draws uniformly among candidates whose id is not in
// previous. intn must return a value in [0, n). It reports false once every
// candidate has been seen.
func PickQuizQuestion(candidates []Question, previous []int, intn func(n int) int) (Question, bool) {
	seen := make(map[int]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}

	remaining := make([]Question, 0, len(candidates))
	for _, q := range candidates {
		if _, ok := seen[q.ID]; !ok {
			remaining = append(remaining, q)
		}
	}
	if len(remaining) == 0 {
		return Question{}, false
	}
	return remaining[intn(len(remaining))], true
}
