// Package analysis converts the output of the upstream vision-analysis
// service into a display-grid layout.
//
// The analysis service describes widgets on its own grid (20 columns by 30
// rows unless the result declares otherwise). [Decode] validates that
// document structurally; [Converter.Convert] then runs the placement
// pipeline:
//
//  1. Size policy in the analysis space (oversized small cards are reset).
//  2. Five-card row balancing.
//  3. Horizontal rescale to the 12-column display grid.
//  4. Size policy in the display space (category floors, advertised maxW).
//  5. First-fit overlap resolution.
//
// Structural problems such as a missing coordinate or a value outside the
// declared grid are returned as errors before any placement work starts.
// Steps 1, 2 and 4 never fail; what they change is logged and returned on
// the layout as corrections.
package analysis
