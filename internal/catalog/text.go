package catalog

// EmbeddingText is the text every index embedding is computed from.
// Anything that writes vectors for items (index rebuilds, the indexer,
// newly created questions) must use it so cached vectors stay valid.
func EmbeddingText(item Item) string {
	return item.Title + " " + item.Topic + " " + item.Difficulty
}

// QueryText is the query used when looking for items similar to item.
func QueryText(item Item) string {
	return item.Title + " " + item.Content
}
