// SPDX-License-Identifier: MIT

// Package consistency is the root of a library and CLI that quantify how
// consistent each member of a dynamic group of agents is with the rest of
// the group.
//
// Pairwise dissimilarity between the agents' observable state becomes a
// Markov transition matrix; its dominant stationary distribution is read as
// per-agent inconsistency, its complement as consistency.
//
// Packages:
//
//	matrix/       dense row-major matrix, vector kernels, Jacobi eigensolver
//	filter/       literals, representations and the Filter contract (all, beliefs, plans)
//	metric/       the Metric contract: discrete, symmetric and weighted difference, Levenshtein, NCD
//	consistency/  transition builder, exact and iterative solvers, the thread-safe Engine
//	agent/        a concrete thread-safe agent with beliefs and plans
//	config/       YAML engine config, slog setup, file watching
//	population/   schema-validated YAML populations of agents
//	report/       table, JSON and Prometheus output
//	cmd/consistency  the command-line front end
//
// Quick start:
//
//	eng, _ := consistency.New(filter.NewBeliefs[*agent.Agent](), metric.SymmetricDifference{})
//	eng.Add(alice, bob, carol)
//	_ = eng.Evaluate(ctx)
//	fmt.Println(eng.Consistency(carol))
package consistency
