package translate

// ComposeBatches greedily groups units into batches bounded by cumulative
// character length. A unit whose own length exceeds maxChars is still
// emitted as its own one-unit batch; nothing is truncated or dropped.
// Concatenating all batches reproduces the input exactly, in order.
func ComposeBatches(units []Unit, maxChars int) []Batch {
	var batches []Batch
	var current []Unit
	length := 0

	for _, u := range units {
		size := len(u.Text)
		if len(current) > 0 && length+size > maxChars {
			batches = append(batches, Batch{Units: current, Length: length})
			current = nil
			length = 0
		}
		current = append(current, u)
		length += size
	}

	if len(current) > 0 {
		batches = append(batches, Batch{Units: current, Length: length})
	}

	return batches
}
