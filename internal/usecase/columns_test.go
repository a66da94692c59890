package usecase

import "testing"

func TestResolveColumn(t *testing.T) {
	tests := []struct {
		name     string
		columns  []string
		synonyms []string
		fallback string
		want     string
	}{
		{
			name:     "matches by substring case-insensitively",
			columns:  []string{"id", "Energy_KCAL", "sodium_mg"},
			synonyms: []string{"ener", "kal"},
			fallback: "energy_kcal",
			want:     "Energy_KCAL",
		},
		{
			name:     "first match in column order wins",
			columns:  []string{"kalori_total", "energi"},
			synonyms: []string{"ener", "kal"},
			fallback: "energy_kcal",
			want:     "kalori_total",
		},
		{
			name:     "falls back when nothing matches",
			columns:  []string{"id", "weight"},
			synonyms: []string{"sod", "garam"},
			fallback: "sodium_mg",
			want:     "sodium_mg",
		},
		{
			name:     "localized synonym matches",
			columns:  []string{"Nama Produk", "Garam (mg)"},
			synonyms: []string{"sod", "garam"},
			fallback: "sodium_mg",
			want:     "Garam (mg)",
		},
		{
			name:     "empty synonym never matches",
			columns:  []string{"anything"},
			synonyms: []string{""},
			fallback: "fallback",
			want:     "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveColumn(tt.columns, tt.synonyms, tt.fallback)
			if got != tt.want {
				t.Errorf("ResolveColumn() = %q, want %q", got, tt.want)
			}
		})
	}
}
