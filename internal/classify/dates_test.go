package classify

import (
	"testing"
	"time"
)

func TestPostedDateRelative(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)

	cases := []struct {
		text string
		want time.Time
	}{
		{"Just posted", now},
		{"Posted today", now},
		{"yesterday", now.AddDate(0, 0, -1)},
		{"3 days ago", now.AddDate(0, 0, -3)},
		{"2 weeks ago", now.AddDate(0, 0, -14)},
		{"Posted 5 hours ago", now},
	}

	for _, tc := range cases {
		got := PostedDate(tc.text, now)
		if got == nil {
			t.Fatalf("PostedDate(%q) = nil, want %v", tc.text, tc.want)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("PostedDate(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestPostedDateAbsolute(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	for _, text := range []string{"2024-01-15", "01/15/2024", "1/15/2024", "January 15, 2024", "Jan 15, 2024"} {
		got := PostedDate(text, now)
		if got == nil {
			t.Fatalf("PostedDate(%q) = nil, want %v", text, want)
		}
		if !got.Equal(want) {
			t.Fatalf("PostedDate(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestPostedDateUnparseable(t *testing.T) {
	now := time.Now()
	for _, text := range []string{"", "whenever suits", "Q4 2024"} {
		if got := PostedDate(text, now); got != nil {
			t.Fatalf("PostedDate(%q) = %v, want nil", text, got)
		}
	}
}
