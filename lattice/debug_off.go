//go:build !debug

package lattice

// Debug enables precondition assertions. Build with -tags debug to turn it on.
const Debug = false
