package booking

import "testing"

func TestNextStudioNumber(t *testing.T) {
	tests := []struct {
		name      string
		allocated []int
		want      int
	}{
		{name: "empty location", allocated: nil, want: 1},
		{name: "no gaps", allocated: []int{1, 2, 3}, want: 4},
		{name: "gap in middle", allocated: []int{1, 2, 4}, want: 3},
		{name: "gap at start", allocated: []int{2, 3}, want: 1},
		{name: "single high number", allocated: []int{7}, want: 1},
		{name: "multiple gaps takes first", allocated: []int{1, 3, 5}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextStudioNumber(tt.allocated); got != tt.want {
				t.Errorf("nextStudioNumber(%v) = %d, want %d", tt.allocated, got, tt.want)
			}
		})
	}
}

func TestFallbackStudioNumber(t *testing.T) {
	tests := []struct {
		name      string
		allocated []int
		want      int
	}{
		{name: "empty location", allocated: nil, want: 1},
		{name: "dense", allocated: []int{1, 2, 3}, want: 4},
		{name: "sparse", allocated: []int{1, 2, 9}, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fallbackStudioNumber(tt.allocated); got != tt.want {
				t.Errorf("fallbackStudioNumber(%v) = %d, want %d", tt.allocated, got, tt.want)
			}
		})
	}
}
