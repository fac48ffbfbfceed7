package graft

// Version is the library version, surfaced by the CLI and the HTTP health
// endpoint.
const Version = "0.1.0"
