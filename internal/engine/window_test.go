package engine

import (
	"errors"
	"testing"

	"advisorbook/internal/domain"
)

// windowRecords has known ask prices per timestamp so window averages
// can be checked by hand:
//
//	t1: ETH ask 1.0, ETH bid 0.9
//	t2: ETH ask 2.0, BTC ask 5.0
//	t3: ETH ask 3.0, ETH ask 4.0
//	t4: DOGE bid 0.1
//	t5: ETH ask 6.0
func windowRecords() []domain.OrderRecord {
	return []domain.OrderRecord{
		rec("t1", "ETH/BTC", domain.SideAsk, 1.0, 10),
		rec("t1", "ETH/BTC", domain.SideBid, 0.9, 20),
		rec("t2", "ETH/BTC", domain.SideAsk, 2.0, 5),
		rec("t2", "BTC/USDT", domain.SideAsk, 5.0, 1),
		rec("t3", "ETH/BTC", domain.SideAsk, 3.0, 7),
		rec("t3", "ETH/BTC", domain.SideAsk, 4.0, 3),
		rec("t4", "DOGE/BTC", domain.SideBid, 0.1, 100),
		rec("t5", "ETH/BTC", domain.SideAsk, 6.0, 2),
	}
}

func TestExistsInWindow(t *testing.T) {
	b := newTestBook(t, windowRecords())

	tests := []struct {
		name        string
		product     string
		currentTime string
		window      int
		side        domain.Side
		want        bool
	}{
		{"current timestamp only", "ETH/BTC", "t3", 0, domain.SideAsk, true},
		{"product absent at current, present one back", "BTC/USDT", "t3", 0, domain.SideAsk, false},
		{"one timestamp back", "BTC/USDT", "t3", 1, domain.SideAsk, true},
		{"side filter", "ETH/BTC", "t3", 0, domain.SideBid, false},
		{"bid two back", "ETH/BTC", "t3", 2, domain.SideBid, true},
		{"missing current time never activates", "ETH/BTC", "t9", 50, domain.SideAsk, false},
		{"unknown side matches nothing", "ETH/BTC", "t3", 5, domain.SideUnknown, false},
		{"later timestamps excluded", "ETH/BTC", "t4", 0, domain.SideAsk, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.ExistsInWindow(tt.product, tt.currentTime, tt.window, tt.side)
			if got != tt.want {
				t.Errorf("ExistsInWindow(%q, %q, %d, %v) = %v, want %v",
					tt.product, tt.currentTime, tt.window, tt.side, got, tt.want)
			}
		})
	}
}

func TestAverageInWindow(t *testing.T) {
	b := newTestBook(t, windowRecords())

	tests := []struct {
		name        string
		currentTime string
		window      int
		want        float64
	}{
		{"window 0 covers current timestamp", "t3", 0, 3.5},    // (3+4)/2
		{"window 1 adds one prior timestamp", "t3", 1, 3.0},    // (2+3+4)/3
		{"window 2 adds two prior timestamps", "t3", 2, 2.5},   // (1+2+3+4)/4
		{"window larger than history clamps", "t3", 10, 2.5},   // scan hits the start
		{"empty prior timestamp passes through", "t5", 1, 6.0}, // t4 has no ETH asks
		{"full span from the last timestamp", "t5", 10, 3.2},   // (1+2+3+4+6)/5
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.AverageInWindow("ETH/BTC", tt.currentTime, tt.window, domain.SideAsk)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("AverageInWindow = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAverageInWindow_NoData(t *testing.T) {
	b := newTestBook(t, windowRecords())

	// Product absent in the window.
	_, err := b.AverageInWindow("DOGE/BTC", "t3", 1, domain.SideBid)
	if !errors.Is(err, domain.ErrNoData) {
		t.Errorf("expected ErrNoData for absent product, got %v", err)
	}

	// Current time missing from the dataset: scan never activates.
	_, err = b.AverageInWindow("ETH/BTC", "t9", 10, domain.SideAsk)
	if !errors.Is(err, domain.ErrNoData) {
		t.Errorf("expected ErrNoData for missing current time, got %v", err)
	}
}

func TestWindow_ExistsMatchesAverage(t *testing.T) {
	b := newTestBook(t, windowRecords())

	products := []string{"ETH/BTC", "BTC/USDT", "DOGE/BTC", "XRP/BTC"}
	times := []string{"t1", "t2", "t3", "t4", "t5", "t9"}
	sides := []domain.Side{domain.SideAsk, domain.SideBid}

	for _, product := range products {
		for _, ts := range times {
			for _, side := range sides {
				for window := 0; window <= 5; window++ {
					exists := b.ExistsInWindow(product, ts, window, side)
					_, err := b.AverageInWindow(product, ts, window, side)
					if exists && err != nil {
						t.Errorf("exists but average failed: %s %s %v w=%d: %v",
							product, ts, side, window, err)
					}
					if !exists && !errors.Is(err, domain.ErrNoData) {
						t.Errorf("not exists but average = %v: %s %s %v w=%d",
							err, product, ts, side, window)
					}
				}
			}
		}
	}
}
