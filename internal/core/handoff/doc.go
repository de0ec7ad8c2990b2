// Package handoff carries analysis artifacts from the pass that produces them
// to the pass that encodes them.
//
// An Artifact is a procedure body with its borrow-checker facts. Its data is
// only meaningful while the session scope it was produced in is active, and
// the Artifact records that scope as its marker. A Stash cannot hold values
// whose validity depends on a caller's scope, so Store removes the marker and
// Retrieve attaches a new one taken from the caller's witness. The pair is the
// only place where a marker is erased or restored.
//
// # Contract
//
// Every Store and Retrieve takes a witness, a *domain.Scope the caller
// currently holds. The Stash does not and cannot verify that the witness is
// the right one. Callers must guarantee:
//
//   - At Store, the witness is the scope that bounds the artifact's data.
//   - At Retrieve, the witness is the store witness or a scope nested within
//     it (witness.Within(storeWitness)), and it is still active.
//
// Presenting an unrelated or expired witness yields an artifact whose marker
// claims a validity it does not have. Nothing downstream detects this.
//
// # Ownership
//
// A Stash is owned by exactly one worker and is not safe for concurrent use.
// A key stored in one Stash is invisible to every other Stash, so the code that
// stores a key must retrieve it through the same Stash.
//
// # Violations
//
// Storing a key twice, retrieving a key that is not stored, and calling either
// operation without a witness are pipeline-ordering bugs. They panic with a
// *Violation naming the key and the worker.
package handoff
