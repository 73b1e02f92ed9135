// Package analysis inspects captured amplitude timelines.
//
// A coefficient's wave runs at speed*frequency radians per second, so its
// spectrum should peak near [ExpectedHz]. [Analyze] measures the actual peak
// with an FFT of the captured series:
//
//	series := analysis.Series(frames, 3)
//	r := analysis.Analyze(series, fps)
//	fmt.Println(r.DominantHz, analysis.ExpectedHz(p[3], speed))
package analysis
