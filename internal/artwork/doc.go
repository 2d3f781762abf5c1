// Package artwork serves cover images cache-aside: a cached image is returned
// without network activity, a miss is resolved remotely, persisted, and then
// returned. Store access and the remote fetch never overlap, so catalog
// commands keep running while a fetch is in flight. The catalog and the image
// cache lock independently, so a catalog read may interleave with a cache
// write.
//
// Concurrent first-time requests for the same link each fetch independently
// unless single-flight is enabled, in which case later arrivals wait for the
// in-flight fetch and share its result. A caller whose context ends stops
// waiting, but the shared fetch continues for the others.
package artwork
