package preproc

import "testing"

func TestSplitSegments(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		seconds float64
		want    int
	}{
		{"empty", 0, 1.5, 1},
		{"shorter than one", 1000, 1.5, 1},
		{"exact", 24000, 1.5, 1},
		{"three seconds", 48000, 1.5, 2},
		{"ragged tail", 30000, 1.5, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]float64, tt.n)
			for i := range in {
				in[i] = 1
			}
			segs := SplitSegments(in, 16000, tt.seconds)
			if len(segs) != tt.want {
				t.Fatalf("segments = %d, want %d", len(segs), tt.want)
			}
			for i, s := range segs {
				if len(s) != 24000 {
					t.Errorf("segment %d len = %d, want 24000", i, len(s))
				}
			}
		})
	}
}

func TestSplitSegments_PadsTail(t *testing.T) {
	in := []float64{1, 2, 3, 4, 5}
	segs := SplitSegments(in, 2, 1.5) // 3-sample segments
	if len(segs) != 2 {
		t.Fatalf("segments = %d, want 2", len(segs))
	}
	if segs[1][0] != 4 || segs[1][1] != 5 || segs[1][2] != 0 {
		t.Errorf("tail = %v, want [4 5 0]", segs[1])
	}
	segs[0][0] = 42
	if in[0] == 42 {
		t.Error("segment shares the input backing array")
	}
}

func TestFixedWindows(t *testing.T) {
	for _, n := range []int{0, 1, 15999, 16000, 16001, 40000} {
		w := FixedWindows(make([]float64, n), 16000, 1.0)
		if len(w) == 0 {
			t.Fatalf("n=%d: no windows", n)
		}
		want := max(1, (n+15999)/16000)
		if len(w) != want {
			t.Errorf("n=%d: windows = %d, want %d", n, len(w), want)
		}
		for i, win := range w {
			if len(win) != 16000 {
				t.Errorf("n=%d: window %d len = %d", n, i, len(win))
			}
		}
	}
}

func TestRollingWindows(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"empty", 0, 1},
		{"short", 8000, 1},
		{"exactly one window", 16000, 1},
		{"segment of 1.5s", 24000, 2},
		{"two seconds", 32000, 3},
		{"just over one window", 16001, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := RollingWindows(make([]float64, tt.n), 16000, 1.0, 0.5)
			if len(w) != tt.want {
				t.Fatalf("windows = %d, want %d", len(w), tt.want)
			}
			for i, win := range w {
				if len(win) != 16000 {
					t.Errorf("window %d len = %d, want 16000", i, len(win))
				}
			}
		})
	}
}

func TestRollingWindows_Offsets(t *testing.T) {
	in := []float64{0, 1, 2, 3, 4, 5, 6}
	w := RollingWindows(in, 1, 4, 2)
	// starts at 0, 2, 4 (4+4 >= 7 stops)
	want := [][]float64{{0, 1, 2, 3}, {2, 3, 4, 5}, {4, 5, 6, 0}}
	if len(w) != len(want) {
		t.Fatalf("windows = %d, want %d", len(w), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if w[i][j] != want[i][j] {
				t.Errorf("window %d = %v, want %v", i, w[i], want[i])
				break
			}
		}
	}
}

func TestSamples(t *testing.T) {
	if got := Samples(1.5, 16000); got != 24000 {
		t.Errorf("Samples(1.5, 16000) = %d", got)
	}
	if got := Samples(0.00001, 16000); got != 1 {
		t.Errorf("Samples(tiny) = %d, want 1", got)
	}
}
