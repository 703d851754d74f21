// Package versionstore persists the per-application run counter.
//
// The whole VersionLog is loaded at the start of every Bump and rewritten in
// full afterwards. Bump is a plain read-modify-write: two callers that load
// the same prior value both return prior+1 and the last Save wins. No file
// locking is performed.
package versionstore
