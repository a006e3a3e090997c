// SPDX-License-Identifier: MIT

// Package utils collects the small helpers the search tool leans on:
// recursive map merging, path expansion, scoped working-directory and
// search-path changes, human-readable durations and timestamps, quoted
// joins, and a writer that flushes after every write.
//
// None of these helpers keep global state except InDirectory, which changes
// the process working directory for the duration of a callback and is
// therefore not safe to call from concurrent goroutines.
package utils
