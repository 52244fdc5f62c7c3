/*
Package polyopt is a polynomial approximation engine for multivariate objectives.
It samples an objective on a tensor-product grid of Chebyshev or Legendre nodes, solves
the least-squares system for the orthogonal-basis coefficients in the requested numeric
precision (float64, arbitrary precision floats or exact rationals) and expands the result
into a monomial polynomial that can be handed to a polynomial-system solver.

The entry point is the pipeline package; the other packages expose each stage on its own.
*/
package polyopt
