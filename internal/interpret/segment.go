package interpret

// block is one contiguous span of the raw report corresponding to a single
// candidate finding, as isolated by the segmenter.
type block struct {
	// title is the normalized header title. Empty when the header carried
	// only a number; the interpreter substitutes a placeholder name later.
	title string
	// body runs from the end of the block's header match to the start of
	// the next header match (or end of text), untouched.
	body string
}

// segment splits raw report text into ordered per-finding blocks. Each
// dialect is tried against the entire text; the first dialect producing at
// least one header match wins and its matches alone define the blocks. When
// no dialect matches, ok is false and the caller falls back to unstructured
// interpretation.
func segment(text string, dialects []Dialect) (blocks []block, dialect string, ok bool) {
	for _, d := range dialects {
		matches := d.Header.FindAllStringSubmatchIndex(text, -1)
		if len(matches) == 0 {
			continue
		}
		blocks = make([]block, 0, len(matches))
		for i, m := range matches {
			end := len(text)
			if i+1 < len(matches) {
				end = matches[i+1][0]
			}
			blocks = append(blocks, block{
				title: Normalize(groupText(text, m, 2)),
				body:  text[m[1]:end],
			})
		}
		return blocks, d.Name, true
	}
	return nil, "", false
}

// groupText returns the text of capture group n from a SubmatchIndex result,
// or "" when the group did not participate in the match.
func groupText(text string, m []int, n int) string {
	lo, hi := m[2*n], m[2*n+1]
	if lo < 0 || hi < 0 {
		return ""
	}
	return text[lo:hi]
}
