package research

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// ErrEmptyQuery is returned when a research run is requested without a
// query. It is the only error the engine surfaces; every internal failure
// degrades to fallback output instead.
var ErrEmptyQuery = errors.New("query is required")

// Stage temperatures, matching the intent of each completion call.
const (
	planTemperature       = 0.7
	extractTemperature    = 0.3
	synthesizeTemperature = 0.5
)

// Engine runs the four-stage research pipeline: plan, parallel search,
// extract findings, synthesize report. A nil LLM or Search provider
// disables the corresponding live path for the lifetime of the engine;
// the decision is made once at startup from credential presence.
type Engine struct {
	LLM     Completer
	Search  Searcher
	History *History
	Logger  *slog.Logger
}

func NewEngine(llm Completer, search Searcher, history *History) *Engine {
	if history == nil {
		history = NewHistory()
	}
	return &Engine{
		LLM:     llm,
		Search:  search,
		History: history,
		Logger:  slog.Default(),
	}
}

// Research executes one full pipeline run and appends the result to the
// history. Runs are independent: nothing is cached or reused across calls.
func (e *Engine) Research(ctx context.Context, query, depth string) (*ResearchRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	depth = NormalizeDepth(depth)

	e.Logger.Info("Starting research", "query", query, "depth", depth)

	plan := e.plan(ctx, query, depth)
	outcomes := e.searchAll(ctx, plan.SearchQueries)

	sourcesSearched := 0
	usable := make([]SearchOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Error == "" {
			sourcesSearched++
		}
		if len(o.Results) > 0 {
			usable = append(usable, o)
		}
	}

	findings := e.extract(ctx, query, usable)
	report := e.synthesize(ctx, query, findings, depth)

	record := ResearchRecord{
		ID:              time.Now().Format("20060102_150405"),
		Query:           query,
		Depth:           depth,
		Plan:            plan,
		SourcesSearched: sourcesSearched,
		Findings:        findings,
		Report:          report,
		Timestamp:       time.Now(),
		DemoMode:        e.LLM == nil,
	}

	e.History.Append(record)
	e.Logger.Info("Research complete", "id", record.ID, "sources", sourcesSearched, "findings", len(findings))
	return &record, nil
}

// completeJSON issues a single completion request and decodes the response
// into v. Any provider failure or undecodable response is returned as an
// error; callers fall back, never retry.
func (e *Engine) completeJSON(ctx context.Context, prompt string, temperature float64, v interface{}) error {
	content, err := e.LLM.Complete(ctx, prompt, temperature)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(content), v); err != nil {
		return fmt.Errorf("malformed completion payload: %w", err)
	}
	return nil
}

// plan asks the AI provider to break the query into sub-questions and
// search queries. Any failure yields the deterministic fallback plan.
func (e *Engine) plan(ctx context.Context, query, depth string) ResearchPlan {
	if e.LLM == nil {
		return fallbackPlan(query, depth)
	}

	prompt := fmt.Sprintf(`You are a research planning agent. Given this research question, create a comprehensive research plan.

Research Question: %s
Depth: %s (quick=3 searches, standard=5 searches, deep=8 searches)

Return a JSON object with:
1. "main_objective": Clear statement of what we're trying to learn
2. "sub_questions": List of specific questions to answer
3. "search_queries": List of optimized search queries to find answers
4. "expected_sources": Types of sources we should look for

Return ONLY valid JSON, no markdown.`, query, depth)

	var plan ResearchPlan
	if err := e.completeJSON(ctx, prompt, planTemperature, &plan); err != nil {
		e.Logger.Warn("Plan stage falling back", "error", err)
		return fallbackPlan(query, depth)
	}
	if len(plan.SearchQueries) == 0 {
		e.Logger.Warn("Plan stage falling back", "error", "plan has no search queries")
		return fallbackPlan(query, depth)
	}
	return plan
}

// searchAll fans out one search per query concurrently and joins them all.
// Per-query failures become errored outcomes; one bad sub-query never
// fails the run. The returned slice preserves input query order.
func (e *Engine) searchAll(ctx context.Context, queries []string) []SearchOutcome {
	if e.Search == nil {
		return fallbackSearch(queries)
	}

	outcomes := make([]SearchOutcome, len(queries))
	var wg sync.WaitGroup

	for i, q := range queries {
		wg.Add(1)
		go func(i int, query string) {
			defer wg.Done()

			results, err := e.Search.Search(ctx, query)
			if err != nil {
				e.Logger.Warn("Search failed", "query", query, "error", err)
				outcomes[i] = SearchOutcome{Query: query, Error: err.Error()}
				return
			}
			outcomes[i] = SearchOutcome{Query: query, Results: results}
		}(i, q)
	}
	wg.Wait()

	return outcomes
}

// extract pulls 2-3 findings per outcome, sequentially. An outcome whose
// completion fails contributes nothing; if no outcome yields findings the
// full fallback set is returned, never a partial mix.
func (e *Engine) extract(ctx context.Context, originalQuery string, outcomes []SearchOutcome) []Finding {
	if e.LLM == nil {
		return fallbackFindings(originalQuery)
	}

	var findings []Finding
	for _, outcome := range outcomes {
		if len(outcome.Results) == 0 {
			continue
		}

		var sources strings.Builder
		for _, r := range outcome.Results {
			title := r.Title
			if title == "" {
				title = "Untitled"
			}
			snippet := r.Snippet
			if snippet == "" {
				snippet = "No description"
			}
			fmt.Fprintf(&sources, "- %s: %s\n", title, snippet)
		}

		prompt := fmt.Sprintf(`Analyze these search results for the query "%s"
in the context of researching: "%s"

Sources:
%s
Extract 2-3 key findings. Return as JSON array of objects with "finding" and "confidence" (high/medium/low) keys.`,
			outcome.Query, originalQuery, sources.String())

		var extracted []Finding
		if err := e.completeJSON(ctx, prompt, extractTemperature, &extracted); err != nil {
			e.Logger.Warn("Skipping outcome in extraction", "query", outcome.Query, "error", err)
			continue
		}
		findings = append(findings, extracted...)
	}

	if len(findings) == 0 {
		return fallbackFindings(originalQuery)
	}
	return findings
}

// synthesize turns the findings into a structured report. Any failure
// yields the deterministic fallback report.
func (e *Engine) synthesize(ctx context.Context, query string, findings []Finding, depth string) Report {
	if e.LLM == nil {
		return fallbackReport(query, findings)
	}

	var bullets strings.Builder
	for _, f := range findings {
		confidence := f.Confidence
		if confidence == "" {
			confidence = ConfidenceMedium
		}
		fmt.Fprintf(&bullets, "- [%s] %s\n", confidence, f.Finding)
	}

	prompt := fmt.Sprintf(`You are a research analyst synthesizing findings into a comprehensive report.

Original Research Question: %s
Research Depth: %s

Key Findings:
%s
Create a research report with:
1. "executive_summary": 2-3 sentence overview
2. "key_insights": List of 3-5 main insights with explanations
3. "conclusions": What we can confidently conclude
4. "limitations": What we couldn't determine or needs more research
5. "recommendations": Suggested next steps or actions

Return as JSON.`, query, depth, bullets.String())

	var report Report
	if err := e.completeJSON(ctx, prompt, synthesizeTemperature, &report); err != nil {
		e.Logger.Warn("Synthesis falling back", "error", err)
		return fallbackReport(query, findings)
	}
	return report
}
