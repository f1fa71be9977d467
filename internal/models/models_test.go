package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func intPtr(v int) *int { return &v }

func TestComputeRankChange(t *testing.T) {
	tests := []struct {
		name     string
		previous *int
		current  int
		want     *int
	}{
		{"rose from 7 to 2", intPtr(7), 2, intPtr(-5)},
		{"fell from 1 to 4", intPtr(1), 4, intPtr(3)},
		{"unchanged", intPtr(3), 3, intPtr(0)},
		{"new entry", nil, 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeRankChange(tt.previous, tt.current)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ComputeRankChange() = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("ComputeRankChange() = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func TestIsTargetReached(t *testing.T) {
	price := decimal.RequireFromString("19900")

	tests := []struct {
		name   string
		target decimal.NullDecimal
		want   bool
	}{
		{"no target", decimal.NullDecimal{}, false},
		{"target above price", decimal.NewNullDecimal(decimal.RequireFromString("20000")), true},
		{"target equal to price", decimal.NewNullDecimal(decimal.RequireFromString("19900.00")), true},
		{"target below price", decimal.NewNullDecimal(decimal.RequireFromString("15000")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTargetReached(price, tt.target); got != tt.want {
				t.Errorf("IsTargetReached() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlexibleIDUnmarshal(t *testing.T) {
	tests := []struct {
		input   string
		want    FlexibleID
		wantErr bool
	}{
		{`42`, 42, false},
		{`"42"`, 42, false},
		{`" 7 "`, 7, false},
		{`null`, 0, false},
		{`"abc"`, 0, true},
		{`-3`, 0, true},
		{`1.5`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var id FlexibleID
			err := json.Unmarshal([]byte(tt.input), &id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && id != tt.want {
				t.Errorf("Unmarshal(%s) = %d, want %d", tt.input, id, tt.want)
			}
		})
	}
}

func TestParseMarketPosition(t *testing.T) {
	if mp, ok := ParseMarketPosition(" Strong "); !ok || mp != MarketPositionStrong {
		t.Errorf("ParseMarketPosition(Strong) = %q, %v", mp, ok)
	}
	if _, ok := ParseMarketPosition("dominant"); ok {
		t.Error("unknown position should not parse")
	}
}

func TestNormalizeCollectionStatus(t *testing.T) {
	tests := map[string]CollectionStatus{
		"SUCCESS":  CollectionSuccess,
		"partial":  CollectionPartial,
		"error":    CollectionFailed,
		"":         CollectionFailed,
		"complete": CollectionFailed,
	}
	for in, want := range tests {
		if got := NormalizeCollectionStatus(in); got != want {
			t.Errorf("NormalizeCollectionStatus(%q) = %s, want %s", in, got, want)
		}
	}
}
