// Package core contains execution plumbing shared by the flow packages: the
// worker loop that drains a job channel, worker sizing defaults, and worker
// limits carried through a context. It holds no scheduling policy of its own;
// package pool and the Process in package flow build on it.
package core
