/*
Package observability provides Prometheus instrumentation for workflow execution.

It exposes collectors for runnable run counts and durations, wired through the
core run hooks so every execution is recorded without instrumenting individual
runnables.
*/
package observability
