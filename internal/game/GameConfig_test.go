package game

import (
	"errors"
	"math"
	"testing"
)

func TestRandRangeDegenerateBounds(t *testing.T) {
	for _, k := range []int{-1, 0, 7, 200} {
		for i := 0; i < 100; i++ {
			if got := randRange(k, k); got != k {
				t.Fatalf("randRange(%d, %d) = %d", k, k, got)
			}
		}
	}
}

func TestRandRangeInclusive(t *testing.T) {
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		got := randRange(2, 4)
		if got < 2 || got > 4 {
			t.Fatalf("randRange(2, 4) = %d, out of bounds", got)
		}
		seen[got] = true
	}
	if !seen[2] || !seen[4] {
		t.Errorf("bounds not both reachable: %v", seen)
	}
}

func TestNewGameConfigurationValidates(t *testing.T) {
	if _, err := NewGameConfiguration([]int{1, 2, 3}); !errors.Is(err, ErrBadConfiguration) {
		t.Errorf("short array err = %v, want ErrBadConfiguration", err)
	}
	if _, err := NewGameConfiguration([]int{10, 2, -1, -1, 1, 10, 0, 0, 200, 300}); !errors.Is(err, ErrBadConfiguration) {
		t.Errorf("min above max err = %v, want ErrBadConfiguration", err)
	}
	cfg, err := NewGameConfiguration([]int{2, 10, -1, -1, 1, 10, 0, 0, 200, 300})
	if err != nil {
		t.Fatalf("valid values rejected: %v", err)
	}
	if cfg.Get(FoodMax) != 10 {
		t.Errorf("Get(FoodMax) = %d, want 10", cfg.Get(FoodMax))
	}
}

func TestPresets(t *testing.T) {
	if len(PresetNames) != 5 {
		t.Fatalf("preset count = %d, want 5", len(PresetNames))
	}
	if _, err := Preset(len(PresetNames)); !errors.Is(err, ErrBadConfiguration) {
		t.Errorf("out-of-range preset err = %v", err)
	}
	def := DefaultConfiguration()
	medium, err := Preset(DefaultPreset)
	if err != nil {
		t.Fatal(err)
	}
	if def.Values() != medium.Values() {
		t.Error("default configuration differs from the default preset")
	}
}

// "Piece of cake": food never expires and bombs never spawn.
func TestPieceOfCakePreset(t *testing.T) {
	cfg, err := Preset(0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		if d := cfg.FoodDuration(); d != -1 {
			t.Fatalf("FoodDuration() = %d, want -1", d)
		}
	}
	for count := 0; count < 5; count++ {
		for i := 0; i < 100; i++ {
			if cfg.PutBomb(count) {
				t.Fatalf("PutBomb(%d) = true with bomb max 0", count)
			}
		}
	}
}

func TestPutItemNeverSpawnsAtMax(t *testing.T) {
	for i := 0; i < 100; i++ {
		if putItem(10, 2, 10) {
			t.Fatal("putItem spawned at max count")
		}
		if putItem(12, 2, 10) {
			t.Fatal("putItem spawned above max count")
		}
	}
}

func TestPutItemBelowMinIsNearCertain(t *testing.T) {
	// distance = hypot(2-0, 10-0)/1.25/8 > 1, so the draw always wins.
	for i := 0; i < 100; i++ {
		if !putItem(0, 2, 10) {
			t.Fatal("putItem refused to spawn below min")
		}
	}
}

func TestSpeedIgnoresLength(t *testing.T) {
	cfg := DefaultConfiguration()
	if got, want := cfg.Speed(1, 1), 2.5; math.Abs(got-want) > 1e-9 {
		t.Errorf("Speed(1, _) = %v, want %v", got, want)
	}
	if got, want := cfg.Speed(16, 1), 5.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("Speed(16, _) = %v, want %v", got, want)
	}
	if cfg.Speed(100, 1) != cfg.Speed(100, 500) {
		t.Error("Speed depends on snake length")
	}
}
