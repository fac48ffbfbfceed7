/*
Package bqm implements the binary quadratic model: an optimization problem over
spin (-1/+1) or binary (0/1) variables with linear and pairwise quadratic biases.

It is the problem definition consumed by the workflow engine. The engine itself
only threads models and sample sets through pipeline states; scoring a candidate
assignment (its "energy") lives here.

# Key Entities

  - Model: The problem definition (vartype, linear biases, quadratic couplings, offset).
  - SampleSet: An immutable collection of scored candidate assignments.
  - Doc: The serializable document form of a Model, loadable from YAML.
*/
package bqm
