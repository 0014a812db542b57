package classify

import "testing"

func TestExperienceYears(t *testing.T) {
	cases := []struct {
		text string
		want *int
	}{
		{"5+ years of experience required", ip(5)},
		{"10 years experience in SaaS finance", ip(10)},
		{"minimum of 3 years in a leadership role", ip(3)},
		{"minimum 8 yrs", ip(8)},
		{"at least 12 years leading distributed teams", ip(12)},
		{"7 years of relevant work", ip(7)},
		{"15 yrs of professional accounting", ip(15)},
		{"We value experience and judgment", nil},
		{"", nil},
	}

	for _, tc := range cases {
		got := ExperienceYears(tc.text)
		if (got == nil) != (tc.want == nil) {
			t.Fatalf("ExperienceYears(%q) = %v, want %v", tc.text, got, tc.want)
		}
		if got != nil && *got != *tc.want {
			t.Fatalf("ExperienceYears(%q) = %d, want %d", tc.text, *got, *tc.want)
		}
	}
}

func TestExperienceYearsSanityWindow(t *testing.T) {
	// Implausible counts are rejected rather than returned.
	if got := ExperienceYears("100 years of experience"); got != nil {
		t.Fatalf("ExperienceYears(100 years) = %d, want nil", *got)
	}
	if got := ExperienceYears("0 years of experience"); got != nil {
		t.Fatalf("ExperienceYears(0 years) = %d, want nil", *got)
	}
}

func ip(v int) *int { return &v }
