package syncer

// ColumnIndex maps header names to 0-based column positions. It is built
// once per run from the header row and never modified afterwards.
type ColumnIndex struct {
	byName map[string]int
}

// NewColumnIndex builds the lookup from a header row. When a name repeats,
// the rightmost column wins.
func NewColumnIndex(header []string) ColumnIndex {
	byName := make(map[string]int, len(header))
	for i, name := range header {
		byName[name] = i
	}
	return ColumnIndex{byName: byName}
}

// Index returns the position of the named column.
func (c ColumnIndex) Index(name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	idx, ok := c.byName[name]
	return idx, ok
}

// IndexOr returns the position of the named column, or fallback if the header lacks it.
func (c ColumnIndex) IndexOr(name string, fallback int) int {
	if idx, ok := c.Index(name); ok {
		return idx
	}
	return fallback
}

// Len is the number of distinct column names.
func (c ColumnIndex) Len() int {
	return len(c.byName)
}
