package widget

import (
	"slices"
	"strings"
)

// Component is a canonical widget name understood by the renderer.
type Component string

// The component vocabulary.
const (
	SimpleKPI            Component = "SimpleKPI"
	SimpleMetricCard     Component = "SimpleMetricCard"
	SimpleScoreCard      Component = "SimpleScoreCard"
	SimpleComparisonCard Component = "SimpleComparisonCard"
	SimpleLineChart      Component = "SimpleLineChart"
	SimpleAreaChart      Component = "SimpleAreaChart"
	SimpleBarChart       Component = "SimpleBarChart"
	SimplePieChart       Component = "SimplePieChart"
	SimpleGaugeChart     Component = "SimpleGaugeChart"
	SimpleStatusCard     Component = "SimpleStatusCard"
	SimpleProgressBar    Component = "SimpleProgressBar"
	SimpleBadgeList      Component = "SimpleBadgeList"
	SimpleHeatmap        Component = "SimpleHeatmap"
	SimpleTimelineCard   Component = "SimpleTimelineCard"
	SimpleTable          Component = "SimpleTable"
	SimpleCategoryCards  Component = "SimpleCategoryCards"
	SimpleAgentList      Component = "SimpleAgentList"
	SimpleStatusList     Component = "SimpleStatusList"
	SimplePriorityList   Component = "SimplePriorityList"
	SimpleRecentList     Component = "SimpleRecentList"
)

// DefaultComponent is used for raw types that have no mapping.
const DefaultComponent = SimpleMetricCard

// Category groups components that share sizing rules.
type Category string

// Component categories.
const (
	CategoryCard     Category = "metric-card"
	CategoryBarChart Category = "bar-chart"
	CategoryChart    Category = "chart"
	CategoryList     Category = "list"
	CategoryOther    Category = "other"
)

var categories = map[Component]Category{
	SimpleKPI:            CategoryCard,
	SimpleMetricCard:     CategoryCard,
	SimpleScoreCard:      CategoryCard,
	SimpleComparisonCard: CategoryCard,
	SimpleStatusCard:     CategoryCard,
	SimpleLineChart:      CategoryChart,
	SimpleAreaChart:      CategoryChart,
	SimplePieChart:       CategoryChart,
	SimpleGaugeChart:     CategoryChart,
	SimpleHeatmap:        CategoryChart,
	SimpleBarChart:       CategoryBarChart,
	SimpleTable:          CategoryList,
	SimpleBadgeList:      CategoryList,
	SimpleAgentList:      CategoryList,
	SimpleStatusList:     CategoryList,
	SimplePriorityList:   CategoryList,
	SimpleRecentList:     CategoryList,
	SimpleProgressBar:    CategoryOther,
	SimpleTimelineCard:   CategoryOther,
	SimpleCategoryCards:  CategoryOther,
}

// Components returns the full vocabulary sorted by name.
func Components() []Component {
	out := make([]Component, 0, len(categories))
	for c := range categories {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Known reports whether c is part of the vocabulary.
func (c Component) Known() bool {
	_, ok := categories[c]
	return ok
}

// Category returns the sizing category of c. Unknown names are
// [CategoryOther].
func (c Component) Category() Category {
	if cat, ok := categories[c]; ok {
		return cat
	}
	return CategoryOther
}

// IsSmallCard reports whether c is a width-capped card.
func (c Component) IsSmallCard() bool {
	return c.Category() == CategoryCard
}

// rawTypes maps normalized analysis tags to components.
var rawTypes = map[string]Component{
	"kpi":            SimpleKPI,
	"metric":         SimpleMetricCard,
	"metric_card":    SimpleMetricCard,
	"number":         SimpleMetricCard,
	"stat":           SimpleMetricCard,
	"score":          SimpleScoreCard,
	"score_card":     SimpleScoreCard,
	"rating":         SimpleScoreCard,
	"comparison":     SimpleComparisonCard,
	"compare":        SimpleComparisonCard,
	"delta":          SimpleComparisonCard,
	"status":         SimpleStatusCard,
	"status_card":    SimpleStatusCard,
	"health":         SimpleStatusCard,
	"line":           SimpleLineChart,
	"line_chart":     SimpleLineChart,
	"trend":          SimpleLineChart,
	"sparkline":      SimpleLineChart,
	"area":           SimpleAreaChart,
	"area_chart":     SimpleAreaChart,
	"bar":            SimpleBarChart,
	"bar_chart":      SimpleBarChart,
	"column":         SimpleBarChart,
	"column_chart":   SimpleBarChart,
	"histogram":      SimpleBarChart,
	"pie":            SimplePieChart,
	"pie_chart":      SimplePieChart,
	"donut":          SimplePieChart,
	"doughnut":       SimplePieChart,
	"gauge":          SimpleGaugeChart,
	"gauge_chart":    SimpleGaugeChart,
	"meter":          SimpleGaugeChart,
	"progress":       SimpleProgressBar,
	"progress_bar":   SimpleProgressBar,
	"badges":         SimpleBadgeList,
	"badge_list":     SimpleBadgeList,
	"tags":           SimpleBadgeList,
	"heatmap":        SimpleHeatmap,
	"timeline":       SimpleTimelineCard,
	"table":          SimpleTable,
	"data_table":     SimpleTable,
	"categories":     SimpleCategoryCards,
	"category_cards": SimpleCategoryCards,
	"agents":         SimpleAgentList,
	"agent_list":     SimpleAgentList,
	"status_list":    SimpleStatusList,
	"priority":       SimplePriorityList,
	"priority_list":  SimplePriorityList,
	"recent":         SimpleRecentList,
	"recent_list":    SimpleRecentList,
	"activity":       SimpleRecentList,
	"activity_feed":  SimpleRecentList,
	"list":           SimpleRecentList,
}

// FromRawType maps an analysis tag such as "kpi", "Bar Chart" or
// "line-chart" to a component. Canonical component names are accepted
// case-insensitively. Anything else maps to [DefaultComponent].
func FromRawType(raw string) Component {
	c, _ := LookupRawType(raw)
	return c
}

// LookupRawType is like [FromRawType] but also reports whether raw had an
// explicit mapping.
func LookupRawType(raw string) (Component, bool) {
	key := normalizeRaw(raw)
	if c, ok := rawTypes[key]; ok {
		return c, true
	}
	for c := range categories {
		if strings.EqualFold(string(c), raw) {
			return c, true
		}
	}
	return DefaultComponent, false
}

func normalizeRaw(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}
