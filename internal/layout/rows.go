package layout

// RowSlots converts a grid plan into per-row slot counts.
//
// With padding every row holds exactly plan.Cols slots and the surplus is
// later filled with filler panes, so the realized grid is perfectly
// rectangular. Without padding rows fill row-major and only the final row
// may be short (a ragged grid).
func RowSlots(plan Plan, count int, padded bool) []int {
	rows := make([]int, plan.Rows)
	if padded {
		for i := range rows {
			rows[i] = plan.Cols
		}
		return rows
	}

	remaining := count
	for i := range rows {
		n := plan.Cols
		if remaining < n {
			n = remaining
		}
		rows[i] = n
		remaining -= n
	}
	return rows
}
