// Package driver orchestrates one show.
//
// A [Driver] owns the clock, the lifecycle machine and read-only references
// to the loaded configuration. Each call to [Driver.Tick] is one frame:
//
//  1. advance the [Clock]
//  2. poll the configuration [Source] once (never blocking)
//  3. step the lifecycle and hand its effects to the boundaries
//  4. while animating, build a [Frame] from scratch and submit it
//
// The render and audio sides are external collaborators reached through the
// [Renderer] and [Audio] interfaces; they must not mutate what they receive.
//
// # Thread Safety
//
// A Driver is NOT safe for concurrent use. It is driven by one frame loop.
package driver
