/*
Package flow provides small reusable runnables for assembling pipelines:
function-backed stages, the identity decomposer/composer pair, fixed state
patches, and a store-backed checkpoint stage.

These are the glue pieces between problem decomposition, solving, and
recomposition; the heavy lifting stays in the samplers a pipeline wraps.
*/
package flow
