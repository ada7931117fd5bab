// Package allocate apportions secondary (spillover) delay benefit among
// competing projects.
//
// Every link whose delay changed because demand shifted is a "donor": its
// secondary benefit is a pool to be claimed by the projects that caused the
// shift. For each project, for each of its links, the allocator finds donor
// links within a network-distance buffer and emits one AllocationRow per
// (project link, donor link) pair carrying the claimant's induced-VMT
// magnitude and a distance-decay weight.
//
// A single normalization pass then distributes each donor's pool across all
// claiming rows: relative induced-VMT share times relative proximity share,
// re-normalized so the shares of a donor sum to one. This is a bipartite
// weighted apportionment; no donor benefit leaks and none is double counted.
//
// The two nested loops (projects, then project links) check the context and
// log progress at consistent granularity. Cancellation aborts the whole run;
// nothing is persisted here.
package allocate
