// Package widget holds the static, per-type knowledge dashgrid needs about
// widgets: the fixed component vocabulary, the mapping from raw analysis
// tags to components, type profiles for the generators and the size
// [Policy] that enforces per-category bounds.
//
// # Components and Categories
//
// Every widget resolves to one of twenty [Component] names. Components are
// grouped into categories that drive sizing:
//
//   - [CategoryCard]: KPI, metric, score, comparison and single-status cards.
//     These are the "small cards" and carry a maximum width.
//   - [CategoryBarChart]: bar and column charts, which need the most room.
//   - [CategoryChart]: line, area, pie, gauge and heatmap charts.
//   - [CategoryList]: tables and lists.
//   - [CategoryOther]: everything else.
//
// # Size Policy
//
// The same [Policy] is applied at two pipeline stages, once per coordinate
// space. In the analysis space it caps oversized small cards; in the display
// space it raises widths and heights to category floors and advertises a
// maximum width for small cards. Keeping both rules behind one type keeps the
// two spaces from drifting apart.
//
// # Profiles
//
// A [Profile] describes how generators may use a type: its minimum footprint,
// skeleton mode and whether it may be chosen at random. [DefaultProfiles]
// returns a fresh table on each call so callers can modify it freely.
package widget
