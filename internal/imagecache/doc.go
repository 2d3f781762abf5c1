// Package imagecache persists downloaded cover images keyed by the canonical
// link of the page they were resolved from. Entries are written once per link
// and never refreshed; Clear is the only eviction.
package imagecache
