package widget

import (
	"slices"

	"github.com/matzehuels/dashgrid/pkg/errors"
)

// Profile is the static generator policy for one widget type. Sizes are in
// display-grid units.
type Profile struct {
	Category     Category `json:"category" toml:"category" yaml:"category"`
	MinCols      int      `json:"minCols" toml:"min_cols" yaml:"min_cols"`
	MinRows      int      `json:"minRows" toml:"min_rows" yaml:"min_rows"`
	MaxCols      int      `json:"maxCols,omitempty" toml:"max_cols" yaml:"max_cols"`
	SkeletonMode string   `json:"skeletonMode,omitempty" toml:"skeleton_mode" yaml:"skeleton_mode"`

	// AvailableInRandom excludes the type from random selection when set to
	// false. Unset means available.
	AvailableInRandom *bool `json:"availableInRandom,omitempty" toml:"available_in_random" yaml:"available_in_random"`
}

// Available reports whether the profile may be picked by a generator.
func (p Profile) Available() bool {
	return p.AvailableInRandom == nil || *p.AvailableInRandom
}

// Validate checks that the profile describes a usable footprint.
func (p Profile) Validate(name string) error {
	if p.MinCols < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "profile %q: min_cols must be >= 1, got %d", name, p.MinCols)
	}
	if p.MinRows < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "profile %q: min_rows must be >= 1, got %d", name, p.MinRows)
	}
	if p.MaxCols != 0 && p.MaxCols < p.MinCols {
		return errors.New(errors.ErrCodeInvalidConfig, "profile %q: max_cols %d below min_cols %d", name, p.MaxCols, p.MinCols)
	}
	return nil
}

// Profiles maps a type name to its profile. Names are usually components but
// any string is accepted; generators emit the name as the item component.
type Profiles map[string]Profile

// Names returns the profile names in sorted order, which is the order
// generators draw from.
func (ps Profiles) Names() []string {
	names := make([]string, 0, len(ps))
	for name := range ps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// AvailableNames returns the sorted names of profiles open to random
// selection.
func (ps Profiles) AvailableNames() []string {
	var names []string
	for _, name := range ps.Names() {
		if ps[name].Available() {
			names = append(names, name)
		}
	}
	return names
}

// Validate checks every profile.
func (ps Profiles) Validate() error {
	for _, name := range ps.Names() {
		if err := ps[name].Validate(name); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a copy that can be modified without affecting ps.
func (ps Profiles) Clone() Profiles {
	out := make(Profiles, len(ps))
	for name, p := range ps {
		if p.AvailableInRandom != nil {
			v := *p.AvailableInRandom
			p.AvailableInRandom = &v
		}
		out[name] = p
	}
	return out
}

func unavailable() *bool {
	v := false
	return &v
}

// DefaultProfiles returns the built-in profile table. Each call allocates a
// new map.
func DefaultProfiles() Profiles {
	card := func(skeleton string) Profile {
		return Profile{Category: CategoryCard, MinCols: 3, MinRows: 3, MaxCols: 3, SkeletonMode: skeleton}
	}
	return Profiles{
		string(SimpleKPI):            card("kpi"),
		string(SimpleMetricCard):     card("metric"),
		string(SimpleScoreCard):      card("metric"),
		string(SimpleComparisonCard): card("metric"),
		string(SimpleStatusCard):     card("status"),
		string(SimpleLineChart):      {Category: CategoryChart, MinCols: 6, MinRows: 6, SkeletonMode: "chart"},
		string(SimpleAreaChart):      {Category: CategoryChart, MinCols: 6, MinRows: 6, SkeletonMode: "chart"},
		string(SimpleBarChart):       {Category: CategoryBarChart, MinCols: 6, MinRows: 6, SkeletonMode: "chart"},
		string(SimplePieChart):       {Category: CategoryChart, MinCols: 4, MinRows: 6, SkeletonMode: "chart"},
		string(SimpleGaugeChart):     {Category: CategoryChart, MinCols: 3, MinRows: 6, SkeletonMode: "chart"},
		string(SimpleHeatmap):        {Category: CategoryChart, MinCols: 6, MinRows: 6, SkeletonMode: "chart", AvailableInRandom: unavailable()},
		string(SimpleProgressBar):    {Category: CategoryOther, MinCols: 4, MinRows: 3, SkeletonMode: "progress"},
		string(SimpleTimelineCard):   {Category: CategoryOther, MinCols: 4, MinRows: 6, SkeletonMode: "list"},
		string(SimpleCategoryCards):  {Category: CategoryOther, MinCols: 6, MinRows: 4, SkeletonMode: "metric"},
		string(SimpleTable):          {Category: CategoryList, MinCols: 6, MinRows: 6, SkeletonMode: "table"},
		string(SimpleBadgeList):      {Category: CategoryList, MinCols: 4, MinRows: 5, SkeletonMode: "list"},
		string(SimpleAgentList):      {Category: CategoryList, MinCols: 4, MinRows: 6, SkeletonMode: "list", AvailableInRandom: unavailable()},
		string(SimpleStatusList):     {Category: CategoryList, MinCols: 4, MinRows: 6, SkeletonMode: "list"},
		string(SimplePriorityList):   {Category: CategoryList, MinCols: 4, MinRows: 6, SkeletonMode: "list"},
		string(SimpleRecentList):     {Category: CategoryList, MinCols: 4, MinRows: 6, SkeletonMode: "list"},
	}
}
