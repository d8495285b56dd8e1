// Package dedupe provides the first tier of clipboard deduplication: a
// last-content guard that drops repeated change events for the same copy.
package dedupe
