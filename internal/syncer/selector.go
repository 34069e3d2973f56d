package syncer

// DoneMarker is the status value that marks a row as already synced.
const DoneMarker = "Done"

// IsPending reports whether a row still needs extraction: it has a
// description and its status cell is not DoneMarker. A negative statusCol
// means the sheet has no status column; such rows are always pending.
func IsPending(row []string, descCol, statusCol int) bool {
	if cell(row, descCol) == "" {
		return false
	}
	return cell(row, statusCol) != DoneMarker
}

// cell returns row[idx], or "" when idx is out of range.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
