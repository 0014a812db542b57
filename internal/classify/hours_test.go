package classify

import "testing"

func fp(v float64) *float64 {
	return &v
}

func TestHours(t *testing.T) {
	cases := []struct {
		text string
		min  float64
		max  float64
		ok   bool
	}{
		{"10-20 hours per week", 10, 20, true},
		{"10 to 20 hrs/week", 10, 20, true},
		{"15 hrs/week", 15, 15, true},
		{"20 hours a week", 20, 20, true},
		{"part-time (10 hours)", 10, 10, true},
		{"up to 25 hours", 25, 25, true},
		{"approximately 15 hours", 15, 15, true},
		{"15-20 hrs", 15, 20, true},
		{"10 hrs", 10, 10, true},
		{"120 hrs", 0, 0, false},
		{"no commitment mentioned", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tc := range cases {
		min, max := Hours(tc.text)
		if !tc.ok {
			if min != nil || max != nil {
				t.Fatalf("Hours(%q) = (%v, %v), want absent", tc.text, min, max)
			}
			continue
		}
		if min == nil || max == nil {
			t.Fatalf("Hours(%q) = (%v, %v), want (%v, %v)", tc.text, min, max, tc.min, tc.max)
		}
		if *min != tc.min || *max != tc.max {
			t.Fatalf("Hours(%q) = (%v, %v), want (%v, %v)", tc.text, *min, *max, tc.min, tc.max)
		}
	}
}

func TestHoursSingleNumberSanityWindow(t *testing.T) {
	// 120 fails the 1-50 window for single numbers; the scan keeps going
	// and finds nothing else.
	if min, max := Hours("commit 120 hrs up front"); min != nil || max != nil {
		t.Fatalf("Hours() = (%v, %v), want absent", min, max)
	}
	// An explicit range is taken at face value.
	min, max := Hours("100-200 hours per week")
	if min == nil || max == nil || *min != 100 || *max != 200 {
		t.Fatalf("Hours() = (%v, %v), want (100, 200)", min, max)
	}
}

func TestHoursBucket(t *testing.T) {
	cases := []struct {
		min  *float64
		max  *float64
		want string
	}{
		{nil, nil, BucketNotSpecified},
		{fp(1), fp(10), Bucket1To10},
		{fp(10), fp(10), Bucket1To10},
		{fp(10), fp(20), Bucket10To20},
		{fp(15), nil, Bucket10To20},
		{fp(20), fp(40), Bucket20To30},
		{fp(35), fp(40), Bucket30To40},
		{fp(45), fp(50), Bucket30To40},
	}

	for _, tc := range cases {
		got := HoursBucket(tc.min, tc.max)
		if got != tc.want {
			t.Fatalf("HoursBucket(%v, %v) = %q, want %q", tc.min, tc.max, got, tc.want)
		}
	}
}
