package tetris

// ClearLines checks each of the locked piece's rows, in the piece's cell
// order, and clears every complete one. Each clear compacts the rows above
// immediately and is scored on its own, so a row that drops into a checked
// position afterwards is only cleared if a later cell names that row again.
// onClear, if not nil, runs after each row is cleared and compacted.
// It returns the cleared rows in the order they were cleared.
func ClearLines(b *Board, locked Shape, stats *Stats, onClear func(row int)) []int {
	var cleared []int
	for _, c := range locked {
		if !b.RowIsComplete(c.Row) {
			continue
		}
		b.ClearRow(c.Row)
		b.ShiftRowsDown(c.Row)
		stats.addLine()
		cleared = append(cleared, c.Row)
		if onClear != nil {
			onClear(c.Row)
		}
	}
	return cleared
}
