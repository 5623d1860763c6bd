// Package mastodon binds the notifications endpoint of a Mastodon server to
// the paging engine.
package mastodon
