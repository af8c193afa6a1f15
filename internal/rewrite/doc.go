// Package rewrite edits the modifier list of a declaration: plain insertion
// and removal with trivia bookkeeping, accessibility changes and whole-list
// reordering. Every function returns a new declaration; the input is never
// touched.
package rewrite
