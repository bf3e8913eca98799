package layout

import "testing"

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func TestRowSlotsPadded(t *testing.T) {
	for count := 1; count <= 32; count++ {
		for cols := 1; cols <= count; cols++ {
			rows := (count + cols - 1) / cols
			plan := Plan{Cols: cols, Rows: rows}

			slots := RowSlots(plan, count, true)
			if len(slots) != rows {
				t.Fatalf("count=%d plan=%dx%d: got %d rows", count, cols, rows, len(slots))
			}
			if sum(slots) != plan.Slots() {
				t.Errorf("count=%d plan=%dx%d: padded sum %d != %d", count, cols, rows, sum(slots), plan.Slots())
			}
			for i, n := range slots {
				if n != cols {
					t.Errorf("count=%d plan=%dx%d: padded row %d has %d slots", count, cols, rows, i, n)
				}
			}
		}
	}
}

func TestRowSlotsRagged(t *testing.T) {
	for count := 1; count <= 32; count++ {
		for cols := 1; cols <= count; cols++ {
			rows := (count + cols - 1) / cols
			plan := Plan{Cols: cols, Rows: rows}

			slots := RowSlots(plan, count, false)
			if sum(slots) != count {
				t.Errorf("count=%d plan=%dx%d: ragged sum %d != count", count, cols, rows, sum(slots))
			}
			for i, n := range slots[:len(slots)-1] {
				if n != cols {
					t.Errorf("count=%d plan=%dx%d: non-final row %d short (%d slots)", count, cols, rows, i, n)
				}
			}
			last := slots[len(slots)-1]
			if last < 1 || last > cols {
				t.Errorf("count=%d plan=%dx%d: final row has %d slots", count, cols, rows, last)
			}
		}
	}
}
