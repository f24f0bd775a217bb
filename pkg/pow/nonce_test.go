package pow

import (
	"math/rand/v2"
	"sync"
	"testing"
	"time"
)

func TestSource_Timestamp(t *testing.T) {
	fixed := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	s := NewSource(func() time.Time { return fixed }, nil, nil)

	if got := s.Timestamp(); got != 1700000000000 {
		t.Errorf("Timestamp() = %d, want %d", got, int64(1700000000000))
	}
}

func TestSource_TimestampZoneIndependent(t *testing.T) {
	fixed := time.UnixMilli(1700000000123)
	clock := func() time.Time { return fixed }

	utc := NewSource(clock, nil, time.UTC)
	vienna := NewSource(clock, nil, LoadZone(DefaultZone))
	tokyo := NewSource(clock, nil, time.FixedZone("JST", 9*60*60))

	if utc.Timestamp() != vienna.Timestamp() || utc.Timestamp() != tokyo.Timestamp() {
		t.Errorf("Timestamp() differs across zones: %d %d %d",
			utc.Timestamp(), vienna.Timestamp(), tokyo.Timestamp())
	}
	if tokyo.Now().Location() != tokyo.Location() {
		t.Error("Now() should be in the source zone")
	}
}

func TestSource_RandomAlpha(t *testing.T) {
	s := NewSource(nil, nil, nil)

	for _, n := range []int{1, NonceLength, 64} {
		got := s.RandomAlpha(n)
		if len(got) != n {
			t.Errorf("RandomAlpha(%d) length = %d", n, len(got))
		}
		for _, c := range got {
			if c < 'a' || c > 'z' {
				t.Errorf("RandomAlpha(%d) = %q contains %q", n, got, c)
			}
		}
	}

	if got := s.RandomAlpha(0); got != "" {
		t.Errorf("RandomAlpha(0) = %q, want empty", got)
	}
	if got := s.RandomAlpha(-3); got != "" {
		t.Errorf("RandomAlpha(-3) = %q, want empty", got)
	}
}

func TestSource_RandomAlphaSeeded(t *testing.T) {
	a := NewSource(nil, rand.New(rand.NewPCG(7, 11)), nil)
	b := NewSource(nil, rand.New(rand.NewPCG(7, 11)), nil)

	for i := 0; i < 10; i++ {
		if x, y := a.RandomAlpha(NonceLength), b.RandomAlpha(NonceLength); x != y {
			t.Fatalf("seeded sources diverged: %q != %q", x, y)
		}
	}
}

func TestSource_RandomAlphaCoversAlphabet(t *testing.T) {
	s := NewSource(nil, rand.New(rand.NewPCG(1, 2)), nil)

	seen := make(map[rune]int)
	for _, c := range s.RandomAlpha(26 * 400) {
		seen[c]++
	}
	if len(seen) != 26 {
		t.Errorf("saw %d distinct letters, want 26", len(seen))
	}
}

func TestSource_Concurrent(t *testing.T) {
	s := NewSource(nil, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if len(s.RandomAlpha(NonceLength)) != NonceLength {
					t.Error("RandomAlpha() returned wrong length")
				}
			}
		}()
	}
	wg.Wait()
}

func TestLoadZone_Fallback(t *testing.T) {
	if loc := LoadZone("Not/AZone"); loc != time.UTC {
		t.Errorf("LoadZone() = %v, want UTC", loc)
	}
}
