package server

import (
	"context"

	"github.com/mikeboe/research-agent/pkg/config"
	"github.com/mikeboe/research-agent/pkg/research"
)

// historyLimit caps how many records the history endpoint returns.
const historyLimit = 10

type Service struct {
	Engine *research.Engine
	Cfg    *config.Config
}

func NewService(engine *research.Engine, cfg *config.Config) *Service {
	return &Service{
		Engine: engine,
		Cfg:    cfg,
	}
}

// ResearchRequest is the JSON body for POST /api/research.
type ResearchRequest struct {
	Query string `json:"query"`
	Depth string `json:"depth"`
}

// RunResearch executes one research run. It blocks until the pipeline
// completes; the only possible error is an empty query.
func (s *Service) RunResearch(ctx context.Context, req ResearchRequest) (*research.ResearchRecord, error) {
	return s.Engine.Research(ctx, req.Query, req.Depth)
}

// History returns the most recent records, insertion order, most recent last.
func (s *Service) History() []research.ResearchRecord {
	records := s.Engine.History.Recent(historyLimit)
	if records == nil {
		records = []research.ResearchRecord{}
	}
	return records
}

// Features reports which pipeline capabilities are backed by a live provider.
type Features struct {
	AIPlanning bool `json:"ai_planning"`
	WebSearch  bool `json:"web_search"`
	Synthesis  bool `json:"synthesis"`
}

// Status is the payload of GET /api/status.
type Status struct {
	Status   string   `json:"status"`
	DemoMode bool     `json:"demo_mode"`
	Features Features `json:"features"`
}

func (s *Service) Status() Status {
	return Status{
		Status:   "operational",
		DemoMode: !s.Cfg.AIEnabled(),
		Features: Features{
			AIPlanning: s.Cfg.AIEnabled(),
			WebSearch:  s.Cfg.SearchEnabled(),
			Synthesis:  s.Cfg.AIEnabled(),
		},
	}
}
