// Package netgraph supplies network distances to the secondary-benefit
// allocator.
//
// The allocator only ever consumes the DistanceMatrix interface, so tests
// inject hand-built tables and never touch a real solver. The reference
// solver builds an undirected weighted graph from the non-connector build
// links (lvlath core.Graph, link lengths scaled to integer milli-units) and
// runs Dijkstra from every node a project touches. The resulting matrix is
// computed once per run, up front, and treated as read-only afterwards.
//
// NetworkBuffer realizes the "links within distance D of a feature set,
// excluding a feature set" query over the same matrix: candidate donors are
// links with at least one endpoint within D network distance of a project
// link's endpoints. This is a network-distance buffer, not a straight-line
// one, so the candidate set already reflects actual reachability.
package netgraph
