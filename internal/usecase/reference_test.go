package usecase

import (
	"testing"

	"github.com/noodlewise/backend/internal/domain"
)

func TestParseLimits(t *testing.T) {
	table := &domain.Table{
		Columns: []string{"Parameter", "Kelompok", "Batas_Harian_Dewasa"},
		Rows: []map[string]string{
			{"Parameter": "Kalori Laki-laki", "Kelompok": "dewasa", "Batas_Harian_Dewasa": "2500"},
			{"Parameter": "Garam", "Kelompok": "dewasa", "Batas_Harian_Dewasa": "2000"},
			{"Parameter": "Broken", "Kelompok": "dewasa", "Batas_Harian_Dewasa": "n/a"},
		},
	}
	limits := ParseLimits(table)
	if len(limits) != 2 {
		t.Fatalf("limits = %d, want 2 (unparsable row dropped)", len(limits))
	}
	if limits[1].Parameter != "Garam" || limits[1].DailyLimit != 2000 {
		t.Errorf("limits[1] = %+v, want Garam/2000", limits[1])
	}
}

func TestParseProfiles(t *testing.T) {
	table := &domain.Table{
		Columns: []string{"Name", "Weight_kg", "Height_cm", "Age", "Gender", "Goal", "Preference"},
		Rows: []map[string]string{
			{"Name": "Budi", "Weight_kg": "70", "Height_cm": "175", "Age": "25", "Gender": "Male", "Goal": "Bulking", "Preference": "Animal"},
			{"Name": "", "Weight_kg": "60", "Height_cm": "160", "Age": "30", "Gender": "female", "Goal": "cutting", "Preference": "plant"},
		},
	}
	profiles := ParseProfiles(table)
	if len(profiles) != 1 {
		t.Fatalf("profiles = %d, want 1 (nameless row dropped)", len(profiles))
	}
	p := profiles[0]
	if p.Name != "Budi" || p.WeightKg != 70 || p.Gender != "male" || p.Goal != "bulking" || p.Preference != "animal" {
		t.Errorf("profile = %+v, want normalized lowercase fields", p)
	}
}

func TestParseSideDishes(t *testing.T) {
	table := &domain.Table{
		Columns: []string{"Nama", "Kategori", "Harga", "Kalori", "Protein_g"},
		Rows: []map[string]string{
			{"Nama": "Telur Rebus", "Kategori": "Animal", "Harga": "Rp2.000", "Kalori": "78", "Protein_g": "6.3"},
			{"Nama": "Gratis", "Kategori": "extra", "Harga": "0", "Kalori": "10", "Protein_g": "1"},
		},
	}
	sides := ParseSideDishes(table)
	if len(sides) != 1 {
		t.Fatalf("sides = %d, want 1 (zero-price row dropped)", len(sides))
	}
	s := sides[0]
	if s.Name != "Telur Rebus" || s.Category != "animal" || s.Price != 2000 || s.Protein != 6.3 {
		t.Errorf("side = %+v", s)
	}
}
