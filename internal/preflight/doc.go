// Package preflight provides readiness checks for the filesystem paths and
// network endpoints that tsvoice depends on.
//
// These checks run in two contexts:
//   - The daemon logs RunAll results at startup so a misconfigured install
//     is visible before the first session attempt.
//   - The CLI "tsvoice status" command uses individual check functions
//     (CheckServer, CheckDirectoryAccess) to display readiness.
//
// Checks never gate startup -- the daemon serves its RPC surface even when
// every check fails.
package preflight
