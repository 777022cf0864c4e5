package intelligence

import (
	"context"

	"github.com/alexanderramin/thea/internal/domain"
	"github.com/alexanderramin/thea/internal/llm"
	"github.com/alexanderramin/thea/internal/planner"
	"github.com/alexanderramin/thea/internal/scheduler"
)

// PlanAdjustService asks a language model to rewrite the rest of the day
// after an incident. It satisfies planner.PlanStrategy; every failure is
// returned so the orchestrator can fall back to the local plan.
type PlanAdjustService struct {
	client llm.LLMClient
	newID  scheduler.IDSource
}

// NewPlanAdjustService creates a PlanAdjustService backed by an LLM client.
func NewPlanAdjustService(client llm.LLMClient, newID scheduler.IDSource) *PlanAdjustService {
	if newID == nil {
		newID = scheduler.NewID
	}
	return &PlanAdjustService{client: client, newID: newID}
}

func (s *PlanAdjustService) Available(ctx context.Context) bool {
	return s.client != nil && s.client.Available(ctx)
}

func (s *PlanAdjustService) Adjust(ctx context.Context, req planner.PlanRequest) ([]domain.PlanItem, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskPlanAdjust,
		SystemPrompt: planAdjustSystemPrompt(req),
		UserPrompt:   planAdjustUserPrompt(req),
	})
	if err != nil {
		return nil, err
	}
	return NormalizePlan(resp.Text, req.Now, s.newID)
}

var _ planner.PlanStrategy = (*PlanAdjustService)(nil)
