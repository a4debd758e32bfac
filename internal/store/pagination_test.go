package store

import "testing"

func TestPaginationParams_Validate(t *testing.T) {
	tests := []struct {
		name       string
		in         PaginationParams
		wantLimit  int
		wantOffset int
	}{
		{"defaults applied", PaginationParams{}, 20, 0},
		{"negative limit corrected", PaginationParams{Limit: -5}, 20, 0},
		{"limit capped", PaginationParams{Limit: 5000}, 100, 0},
		{"negative offset corrected", PaginationParams{Limit: 7, Offset: -3}, 7, 0},
		{"valid passes through", PaginationParams{Limit: 7, Offset: 6}, 7, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Validate()
			if p.Limit != tt.wantLimit {
				t.Errorf("Limit: got %d, want %d", p.Limit, tt.wantLimit)
			}
			if p.Offset != tt.wantOffset {
				t.Errorf("Offset: got %d, want %d", p.Offset, tt.wantOffset)
			}
		})
	}
}
