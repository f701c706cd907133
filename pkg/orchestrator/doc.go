// Package orchestrator wires the registry, intent resolver, generator,
// validator, refiner and best-practice knowledge base behind one type with
// dependency injection friendly options, for consumers that prefer a single
// entry point.
package orchestrator
