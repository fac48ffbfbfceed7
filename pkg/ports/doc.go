/*
Package ports defines the driven ports (interfaces) for the graft engine.

These interfaces decouple the workflow core from external implementations,
allowing pipelines to run against any solving backend and any result cache.

# Key Interfaces

  - Sampler: The solving capability, producing candidate solutions for a model.
  - SampleStore: Persists best-known sample sets between pipeline runs.
*/
package ports
