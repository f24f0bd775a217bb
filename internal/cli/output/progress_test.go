package output

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, "bench", 4)

	bar.Increment()
	bar.Increment()
	if !strings.Contains(buf.String(), " 50% (2/4)") {
		t.Errorf("output = %q", buf.String())
	}

	bar.Increment()
	bar.Increment()
	bar.Increment()
	if strings.Contains(buf.String(), "(5/4)") {
		t.Errorf("progress should be capped at the total: %q", buf.String())
	}

	bar.Finish()
	out := buf.String()
	if !strings.HasSuffix(out, "100% (4/4)\n") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, strings.Repeat("█", 30)) {
		t.Error("finished bar should be full")
	}
}

func TestProgressBar_UnknownTotal(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, "trials", 0)
	bar.Increment()

	if buf.String() != "\rtrials 1" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestProgressBar_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, "bench", 100)

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bar.Increment()
		}()
	}
	wg.Wait()

	if !strings.HasSuffix(buf.String(), "100% (100/100)") {
		t.Errorf("output should end at 100/100: %q", buf.String()[max(0, buf.Len()-80):])
	}
}
