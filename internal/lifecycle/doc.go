// Package lifecycle sequences the show: one-shot scene construction once the
// configuration is available, a timed audio fade-out ahead of the end time,
// and a single exit request.
//
//	Building ──snapshot ready──▶ Running ──t > end-FadeLead──▶ Quitting ──t > end──▶ Terminated
//
// Transitions are monotonic; no state is revisited and every effect is
// emitted at most once.
package lifecycle
