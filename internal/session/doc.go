// Package session loads and validates the session file: the explicit
// declaration of every layer the pipeline needs, the elevation model,
// and the scratch workspace.
//
// The session file replaces the ambient map-session lookup of the
// desktop workflow this tool descends from. Instead of fishing layers
// out of "the current document" by hardcoded display name, every run
// names its inputs in one YAML file passed via --session, so a run is
// fully reproducible from its command line.
//
// The scratch workspace is cleared at the start and end of every run so
// no residue from a prior invocation can contaminate results.
package session
