// Package preflight provides readiness checks for the filesystem paths and
// the remote site that Shelf depends on.
//
// These checks run in two contexts:
//   - The daemon reports LocalChecks in its status payload.
//   - The CLI "shelf status" command runs RunAll, which additionally probes
//     the remote site over the network.
package preflight
