// SPDX-License-Identifier: MIT

// Package consistency scores how consistent each member of a dynamic group of
// entities is with the rest of the group.
//
// An evaluation projects every tracked entity through a filter.Filter,
// measures pairwise dissimilarity with a metric.Metric and turns the result
// into a Markov transition matrix: rows normalized by their 1-norm, a small
// self-loop ε on the diagonal. The dominant stationary distribution π of that
// chain is read as inconsistency, since entities far from the group absorb
// more of the random walk; (1 − π_i)/‖π‖₁ is the matching consistency.
//
// Two solvers are available:
//   - Exact: Jacobi eigendecomposition of the symmetric matrix similar to the
//     transition matrix. Deterministic, O(n³).
//   - Iterative: k left power iterations from a random start. O(n²·k).
//
// Engine is safe for concurrent use. Add, Remove and the queries may run in
// parallel with each other and with Evaluate; at most one Evaluate runs at a
// time. Unknown entities report DefaultScore.
//
// Example:
//
//	eng, err := consistency.New(filter.NewBeliefs[*agent.Agent](), metric.NCD{})
//	if err != nil {
//		return err
//	}
//	eng.Add(agents...)
//	if err := eng.Evaluate(ctx); err != nil {
//		return err
//	}
//	for a, c := range eng.Consistencies() {
//		fmt.Println(a.Name(), c)
//	}
package consistency
