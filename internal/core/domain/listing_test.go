package domain

import "testing"

func TestRecalculateRating(t *testing.T) {
	cases := []struct {
		name    string
		ratings []float64
		want    float64
		count   int
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{4}, 4, 1},
		{"rounds to one decimal", []float64{5, 4}, 4.5, 2},
		{"rounds up", []float64{5, 5, 4}, 4.7, 3},
		{"rounds down", []float64{4, 4, 5}, 4.3, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reviews := make([]Review, len(tc.ratings))
			for i, r := range tc.ratings {
				reviews[i] = Review{Rating: r, Name: "x"}
			}
			avg, count := RecalculateRating(reviews)
			if avg != tc.want || count != tc.count {
				t.Fatalf("got (%v, %d), want (%v, %d)", avg, count, tc.want, tc.count)
			}
		})
	}
}

func TestListingPublic(t *testing.T) {
	l := Listing{
		ID:           1,
		Name:         "Sarah Johnson",
		Email:        "sarah@example.com",
		Phone:        "+2348012345678",
		Whatsapp:     "+2348012345678",
		PasswordHash: "hash",
		Rating:       4.9,
	}

	p := l.Public()
	if p.Email != "" || p.Phone != "" || p.Whatsapp != "" || p.PasswordHash != "" {
		t.Fatalf("private fields survived Public(): %+v", p)
	}
	if p.Name != "Sarah Johnson" || p.Rating != 4.9 {
		t.Fatalf("public fields lost: %+v", p)
	}
	if l.Email == "" {
		t.Fatalf("Public() mutated the receiver")
	}
}

func TestInitialsOf(t *testing.T) {
	cases := map[string]string{
		"Sarah Johnson":       "SJ",
		"David Rodriguez Jr.": "DR",
		"admin":               "AD",
		"x":                   "X",
		"":                    "SC",
		"  spaced   name  ":   "SN",
	}
	for name, want := range cases {
		if got := InitialsOf(name); got != want {
			t.Fatalf("InitialsOf(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestValidState(t *testing.T) {
	if len(States) != 37 {
		t.Fatalf("expected 37 states, got %d", len(States))
	}
	if !ValidState("Lagos") || !ValidState("FCT - Abuja") {
		t.Fatalf("known states rejected")
	}
	if ValidState("lagos") || ValidState("Atlantis") {
		t.Fatalf("unknown states accepted")
	}
}
