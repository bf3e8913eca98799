package layout

import (
	"testing"
)

func geomForAspect(aspect float64) Geometry {
	return Geometry{Cols: int(aspect * 40), Rows: 40}
}

func TestPlanGridInvariants(t *testing.T) {
	subs := []SubMode{Square, Wide, Tall, AutoAspect, AutoGeometry}
	th := DefaultThresholds()

	for count := 1; count <= 32; count++ {
		for _, sub := range subs {
			for aspect := 0.2; aspect <= 6.0; aspect += 0.2 {
				for _, padded := range []bool{true, false} {
					plan := PlanGrid(count, sub, geomForAspect(aspect), th, padded)

					if plan.Cols < 1 || plan.Rows < 1 {
						t.Fatalf("count=%d sub=%d aspect=%.1f: degenerate plan %+v", count, sub, aspect, plan)
					}
					if plan.Slots() < count {
						t.Errorf("count=%d sub=%d aspect=%.1f: %dx%d holds only %d slots",
							count, sub, aspect, plan.Cols, plan.Rows, plan.Slots())
					}
					if plan.Cols > count || plan.Rows > count {
						t.Errorf("count=%d sub=%d aspect=%.1f: axis exceeds count in %dx%d",
							count, sub, aspect, plan.Cols, plan.Rows)
					}
					if plan.Slots()-count >= plan.Cols {
						t.Errorf("count=%d sub=%d aspect=%.1f: %dx%d wastes a whole row",
							count, sub, aspect, plan.Cols, plan.Rows)
					}
				}
			}
		}
	}
}

func TestPlanGridDeterministic(t *testing.T) {
	th := DefaultThresholds()
	for count := 1; count <= 32; count++ {
		for aspect := 0.2; aspect <= 6.0; aspect += 0.4 {
			geom := geomForAspect(aspect)
			a := PlanGrid(count, AutoGeometry, geom, th, true)
			b := PlanGrid(count, AutoGeometry, geom, th, true)
			if a != b {
				t.Fatalf("count=%d aspect=%.1f: %+v != %+v", count, aspect, a, b)
			}
		}
	}
}

func TestPlanGridExamples(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name   string
		count  int
		sub    SubMode
		geom   Geometry
		padded bool
		want   Plan
	}{
		{"four panes square on wide terminal", 4, Square, Geometry{Cols: 160, Rows: 40}, true, Plan{Cols: 2, Rows: 2}},
		{"single pane", 1, AutoGeometry, Geometry{Cols: 80, Rows: 24}, true, Plan{Cols: 1, Rows: 1}},
		{"narrow stack short-circuit", 3, AutoGeometry, Geometry{Cols: 36, Rows: 40}, true, Plan{Cols: 1, Rows: 3}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PlanGrid(tc.count, tc.sub, tc.geom, th, tc.padded)
			if got != tc.want {
				t.Errorf("PlanGrid(%d) = %dx%d, want %dx%d", tc.count, got.Cols, got.Rows, tc.want.Cols, tc.want.Rows)
			}
		})
	}
}

func TestStackGuardRequiresThreePanes(t *testing.T) {
	th := DefaultThresholds()
	// aspect exactly at stack-max but only two panes: the guard must not
	// fire, so the plan comes from ratio scoring instead.
	geom := Geometry{Cols: 38, Rows: 40} // aspect 0.95
	_, stacked := Classify(2, geom.Aspect(), th)
	if stacked {
		t.Fatal("stack guard fired for count=2")
	}

	_, stacked = Classify(3, geom.Aspect(), th)
	if !stacked {
		t.Fatal("stack guard did not fire for count=3 at aspect 0.95")
	}
}

func TestClassify(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		name   string
		count  int
		aspect float64
		want   SubMode
	}{
		{"very wide", 4, 3.0, Wide},
		{"wide boundary", 4, 2.40, Wide},
		{"square band", 4, 1.8, Square},
		{"tall boundary", 4, 1.25, Tall},
		{"narrow but few panes", 2, 0.5, Tall},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, stacked := Classify(tc.count, tc.aspect, th)
			if stacked {
				t.Fatalf("unexpected stack for count=%d aspect=%.2f", tc.count, tc.aspect)
			}
			if got != tc.want {
				t.Errorf("Classify(%d, %.2f) = %d, want %d", tc.count, tc.aspect, got, tc.want)
			}
		})
	}
}

func TestThresholdsValidate(t *testing.T) {
	if err := DefaultThresholds().Validate(); err != nil {
		t.Errorf("default thresholds invalid: %v", err)
	}
	bad := Thresholds{StackMax: 1.5, TallMax: 1.0, WideMin: 2.4}
	if err := bad.Validate(); err == nil {
		t.Error("out-of-order thresholds accepted")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"vertical", Mode{Linear: true, Direction: Vertical}, false},
		{"horizontal", Mode{Linear: true, Direction: Horizontal}, false},
		{"square", Mode{Sub: Square}, false},
		{"wide", Mode{Sub: Wide}, false},
		{"tall", Mode{Sub: Tall}, false},
		{"aspect", Mode{Sub: AutoAspect}, false},
		{"auto", Mode{Sub: AutoGeometry}, false},
		{"", Mode{Sub: AutoGeometry}, false},
		{"diagonal", Mode{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseMode(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Errorf("ParseMode(%q) expected error", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMode(%q): %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseMode(%q) = %+v, want %+v", tc.input, got, tc.want)
			}
		})
	}
}
