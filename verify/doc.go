// Package verify checks a live server against the cursor contract the
// paginator relies on: an unbounded walk runs until the page cap, and a walk
// bounded by min_id or since_id from the middle of that result returns a
// strict non-empty subset in fewer pages.
package verify
