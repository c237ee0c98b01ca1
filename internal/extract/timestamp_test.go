package extract

import (
	"testing"
	"time"
)

func TestResolveTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     time.Time
		resolved bool
	}{
		{
			name:     "epoch milliseconds",
			raw:      "1706347200000",
			want:     time.UnixMilli(1706347200000),
			resolved: true,
		},
		{
			name:     "dashed datetime",
			raw:      "2024-01-27 10:00:00",
			want:     time.Date(2024, 1, 27, 10, 0, 0, 0, time.UTC),
			resolved: true,
		},
		{
			name:     "readable date with meridiem",
			raw:      "27 Jan 2024 10:00:00 AM",
			want:     time.Date(2024, 1, 27, 10, 0, 0, 0, time.UTC),
			resolved: true,
		},
		{
			name:     "readable date afternoon",
			raw:      "3 Feb 2024 2:15:09 PM",
			want:     time.Date(2024, 2, 3, 14, 15, 9, 0, time.UTC),
			resolved: true,
		},
		{
			name:     "short digit string is not epoch",
			raw:      "1706347200",
			resolved: false,
		},
		{
			name:     "garbage falls back",
			raw:      "not-a-date",
			resolved: false,
		},
		{
			name:     "empty falls back",
			raw:      "",
			resolved: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, resolved := ResolveTimestamp(tt.raw)
			if resolved != tt.resolved {
				t.Fatalf("ResolveTimestamp(%q) resolved = %v, want %v", tt.raw, resolved, tt.resolved)
			}
			if resolved && !got.Equal(tt.want) {
				t.Errorf("ResolveTimestamp(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			if !resolved && got.IsZero() {
				t.Errorf("ResolveTimestamp(%q) fallback must still return a usable time", tt.raw)
			}
		})
	}
}

func TestResolveTimestampFallbackUsesClock(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	restore := now
	now = func() time.Time { return fixed }
	defer func() { now = restore }()

	got, resolved := ResolveTimestamp("nonsense")
	if resolved {
		t.Fatal("resolved = true for nonsense input")
	}
	if !got.Equal(fixed) {
		t.Errorf("fallback = %v, want %v", got, fixed)
	}
}
