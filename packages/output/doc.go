// Package output renders request results, benchmark summaries and history
// listings for the console.
package output
