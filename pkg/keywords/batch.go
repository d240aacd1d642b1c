package keywords

// PlanBatches splits keywords into contiguous chunks of at most size
// elements, preserving order. Only the final chunk may be shorter. An empty
// input yields no batches.
func PlanBatches(keywords []string, size int) [][]string {
	if len(keywords) == 0 {
		return nil
	}
	if size < 1 {
		size = 1
	}

	batches := make([][]string, 0, (len(keywords)+size-1)/size)
	for start := 0; start < len(keywords); start += size {
		end := start + size
		if end > len(keywords) {
			end = len(keywords)
		}
		batches = append(batches, keywords[start:end])
	}
	return batches
}
