// Package scheduler contains the firing side of remindd: a background
// Engine polling the reminder store once per second and deciding which
// reminders become due at the current wall-clock minute, and a Notifier
// carrying each firing across a FIFO queue to the presentation context.
//
// The Engine ticks well below minute granularity so a
// reminder pops within a second of its minute boundary; a per-minute
// dedup set keeps each reminder at most-once per calendar minute. Minutes
// missed while the process is suspended are not backfilled; the loop
// only ever compares against the current minute.
package scheduler
