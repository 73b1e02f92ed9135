package analysis

import (
	"sync"

	"github.com/san-kum/harmonia/internal/driver"
)

// AnalyzeAll analyzes every coefficient of the capture concurrently. The
// coefficient count is taken from the first frame.
func AnalyzeAll(frames []driver.Frame, sampleRate float64) []Report {
	if len(frames) == 0 {
		return []Report{}
	}
	n := len(frames[0].Amplitudes)
	reports := make([]Report, n)

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			reports[idx] = Analyze(Series(frames, idx), sampleRate)
		}(i)
	}
	wg.Wait()
	return reports
}
