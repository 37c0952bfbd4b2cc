package dates

import (
	"testing"

	"cloud.google.com/go/civil"
)

// Wednesday 2025-08-20 anchors the relative-date tests.
var wednesday = civil.Date{Year: 2025, Month: 8, Day: 20}

func TestResolveContext(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		today  civil.Date
		want   civil.Date
		wantOK bool
	}{
		{"yesterday", "kemarin sore", wednesday, civil.Date{Year: 2025, Month: 8, Day: 19}, true},
		{"tomorrow", "besok", wednesday, civil.Date{Year: 2025, Month: 8, Day: 21}, true},
		{"day after tomorrow", "lusa", wednesday, civil.Date{Year: 2025, Month: 8, Day: 22}, true},
		{"n days ago", "3 hari yang lalu", wednesday, civil.Date{Year: 2025, Month: 8, Day: 17}, true},
		{"n days ago english", "2 days ago", wednesday, civil.Date{Year: 2025, Month: 8, Day: 18}, true},
		{"last week english", "last week", wednesday, civil.Date{Year: 2025, Month: 8, Day: 13}, true},
		{"minggu lalu reads as last sunday", "minggu lalu", wednesday, civil.Date{Year: 2025, Month: 8, Day: 17}, true},
		{"last monday", "senin lalu", wednesday, civil.Date{Year: 2025, Month: 8, Day: 18}, true},
		{"last monday on a monday", "senin lalu", civil.Date{Year: 2025, Month: 8, Day: 18}, civil.Date{Year: 2025, Month: 8, Day: 11}, true},
		{"bare weekday means most recent", "senin", wednesday, civil.Date{Year: 2025, Month: 8, Day: 18}, true},
		{"bare weekday today", "rabu", wednesday, wednesday, true},
		{"next thursday", "kamis depan", wednesday, civil.Date{Year: 2025, Month: 8, Day: 21}, true},
		{"next wednesday skips today", "rabu depan", wednesday, civil.Date{Year: 2025, Month: 8, Day: 27}, true},
		{"no cue", "tadi pagi", wednesday, civil.Date{}, false},
		{"empty", "", wednesday, civil.Date{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveContext(tt.phrase, tt.today)
			if ok != tt.wantOK {
				t.Fatalf("ResolveContext(%q) ok = %v, want %v", tt.phrase, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ResolveContext(%q) = %v, want %v", tt.phrase, got, tt.want)
			}
		})
	}
}

func TestFromText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want civil.Date
	}{
		{"relative yesterday", "beli kopi kemarin", civil.Date{Year: 2025, Month: 8, Day: 19}},
		{"relative today", "hari ini", wednesday},
		{"n days without yang", "5 hari lalu", civil.Date{Year: 2025, Month: 8, Day: 15}},
		{"slash literal", "12/08/2025", civil.Date{Year: 2025, Month: 8, Day: 12}},
		{"dot literal", "31.12.2024", civil.Date{Year: 2024, Month: 12, Day: 31}},
		{"iso literal", "2025-08-12", civil.Date{Year: 2025, Month: 8, Day: 12}},
		{"impossible literal falls back to today", "32/13/2025", wednesday},
		{"plain words fall back to today", "beli kopi", wednesday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromText(tt.text, wednesday); got != tt.want {
				t.Errorf("FromText(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestRelative(t *testing.T) {
	if got := Relative("makan siang kemarin", wednesday); got != (civil.Date{Year: 2025, Month: 8, Day: 19}) {
		t.Errorf("Relative(kemarin) = %v", got)
	}
	if got := Relative("bayar kos besok", wednesday); got != (civil.Date{Year: 2025, Month: 8, Day: 21}) {
		t.Errorf("Relative(besok) = %v", got)
	}
	if got := Relative("makan siang", wednesday); got != wednesday {
		t.Errorf("Relative(no cue) = %v, want today", got)
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		date civil.Date
		want string
	}{
		{civil.Date{Year: 2025, Month: 8, Day: 20}, "20/08/2025"},
		{civil.Date{Year: 2024, Month: 12, Day: 1}, "01/12/2024"},
		{civil.Date{Year: 2025, Month: 1, Day: 5}, "05/01/2025"},
	}
	for _, tt := range tests {
		if got := Display(tt.date); got != tt.want {
			t.Errorf("Display(%v) = %q, want %q", tt.date, got, tt.want)
		}
	}
}
