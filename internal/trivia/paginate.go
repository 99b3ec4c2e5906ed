package trivia

// Paginate returns the 1-based page of items, QuestionsPerPage at a time.
// Pages past the end, and page numbers below 1, are empty. The returned slice
// shares its backing array with items.
func Paginate(page int, items []Question) []Question {
	if page < 1 || page-1 > len(items)/QuestionsPerPage {
		return []Question{}
	}
	start := (page - 1) * QuestionsPerPage
	if start >= len(items) {
		return []Question{}
	}
	end := min(start+QuestionsPerPage, len(items))
	return items[start:end:end]
}
