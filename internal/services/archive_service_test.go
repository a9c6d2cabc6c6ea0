package services

import "testing"

func TestEffectiveLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"unset defaults", 0, DefaultHistoryLimit},
		{"negative defaults", -5, DefaultHistoryLimit},
		{"small passes through", 1, 1},
		{"default passes through", 20, 20},
		{"at cap", 100, 100},
		{"above cap clamps", 101, MaxHistoryLimit},
		{"far above cap clamps", 500, MaxHistoryLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := HistoryFilter{Limit: tt.limit}
			if got := f.EffectiveLimit(); got != tt.want {
				t.Errorf("EffectiveLimit() = %d, want %d", got, tt.want)
			}
		})
	}
}
