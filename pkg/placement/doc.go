// Package placement implements the procedural component placement engine.
//
// # Overview
//
// Given a board area and per-category component budgets, the engine decides
// where each component goes so that the result looks like an organically
// designed PCB rather than a uniform random scatter. The pipeline is:
//
//  1. A layered coherent-noise field assigns a suitability density to every
//     point on the board ([NewField]).
//  2. A radial vignette attenuates density toward the board edges
//     ([NewVignette]), biasing clusters toward the center.
//  3. A sampler draws candidate positions per size category, largest
//     category first, reject-sampling against the shaped density so that
//     high-density regions collect proportionally more components
//     ([Generate]).
//  4. A collision resolver rejects candidates that violate pairwise spacing
//     or board-edge clearance ([Resolver]).
//  5. An assembler orders accepted placements deterministically and assigns
//     reference designators ([Assemble]).
//
// # Determinism
//
// Every random draw flows from explicit seeded sources; there is no package
// or global random state. The same resolved [Config] and seed produce
// byte-identical placement sequences across runs and processes, which is
// what lets cluster array jobs map sample IDs to reproducible boards.
//
// # Under-fill
//
// Spacing constraints can make a requested count geometrically impossible.
// The sampler retries each component slot up to a budget and then skips the
// slot, so results may be shorter than requested. This is recorded in
// [Result.Shortfall] and is not an error; the returned sequence is
// authoritative.
package placement
