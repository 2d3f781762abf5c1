// Package scraper resolves a catalog link into its cover image.
//
// Resolution runs in fixed steps: accept only links under the configured
// prefix, fetch the page, locate the poster <source> element through an
// Extractor, pick one URL from its srcset, normalize it against the site
// origin, and download the image bytes. Every step fails with its own error
// marker from the services package and nothing is retried. The returned image
// is keyed by the input link, not by the image URL.
package scraper
