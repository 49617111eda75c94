package research

import "time"

// Depth settings controlling how many sub-queries a research run performs.
const (
	DepthQuick    = "quick"
	DepthStandard = "standard"
	DepthDeep     = "deep"
)

// depthQueryCount maps a depth setting to the number of search queries.
var depthQueryCount = map[string]int{
	DepthQuick:    3,
	DepthStandard: 5,
	DepthDeep:     8,
}

// QueryCount returns the number of search queries implied by depth.
// Unrecognized depths use the standard count.
func QueryCount(depth string) int {
	if n, ok := depthQueryCount[depth]; ok {
		return n
	}
	return depthQueryCount[DepthStandard]
}

// NormalizeDepth maps unknown or empty depth values to the standard depth.
func NormalizeDepth(depth string) string {
	if _, ok := depthQueryCount[depth]; ok {
		return depth
	}
	return DepthStandard
}

// Confidence levels for findings.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// ResearchPlan breaks a research question into searchable sub-questions.
// SearchQueries is order-correlated with SubQuestions: query i answers
// sub-question i.
type ResearchPlan struct {
	MainObjective   string   `json:"main_objective"`
	SubQuestions    []string `json:"sub_questions"`
	SearchQueries   []string `json:"search_queries"`
	ExpectedSources []string `json:"expected_sources"`
}

// SearchResult represents a single web search result
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// SearchOutcome is the per-query result of the search stage. A failed
// search carries Error and no results. Outcomes are never dropped here;
// the engine filters empty ones before extraction.
type SearchOutcome struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Error   string         `json:"error,omitempty"`
}

// Finding is a single extracted claim with a confidence label.
type Finding struct {
	Finding    string `json:"finding"`
	Confidence string `json:"confidence"`
}

// KeyInsight is one insight of a report with its explanation.
type KeyInsight struct {
	Insight     string `json:"insight"`
	Explanation string `json:"explanation"`
}

// Report is the synthesized output of a research run.
type Report struct {
	ExecutiveSummary string       `json:"executive_summary"`
	KeyInsights      []KeyInsight `json:"key_insights"`
	Conclusions      []string     `json:"conclusions"`
	Limitations      []string     `json:"limitations"`
	Recommendations  []string     `json:"recommendations"`
}

// ResearchRecord is the unit of history: one completed research run.
// ID is derived from the creation timestamp; collisions at sub-second
// granularity are acceptable since nothing looks records up by ID.
type ResearchRecord struct {
	ID              string       `json:"id"`
	Query           string       `json:"query"`
	Depth           string       `json:"depth"`
	Plan            ResearchPlan `json:"plan"`
	SourcesSearched int          `json:"sources_searched"`
	Findings        []Finding    `json:"findings"`
	Report          Report       `json:"report"`
	Timestamp       time.Time    `json:"timestamp"`
	DemoMode        bool         `json:"demo_mode"`
}
