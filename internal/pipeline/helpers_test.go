package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/llm/llmtest"
	"github.com/jonathan/candidate-screener/internal/types"
)

const (
	parseReply      = `{"name": "Ada Lovelace", "email": "ada@example.com", "summary": "Backend engineer", "skills": [{"name": "Python", "category": "language", "proficiency": "expert"}], "total_experience_years": 5}`
	skillsReply     = `{"overall_score": 80, "matched_required_skills": ["Python"], "missing_required_skills": ["Flask"], "reasoning": "Strong Python"}`
	experienceReply = `{"overall_score": 80, "relevant_experience_years": 5, "seniority_match": true, "reasoning": "Fits"}`
	cultureReply    = `{"overall_score": 60, "communication_score": 70, "reasoning": "Collaborative"}`
)

func validParams(name string) types.CandidateParams {
	return types.CandidateParams{
		CandidateName:      name,
		CandidateEmail:     strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		ResumeText:         name + "\nExpert in Python with 5 years experience. Built Django services on AWS.",
		JobTitle:           "Backend Engineer",
		JobDescription:     "We build APIs in Python and Flask.",
		RequiredSkills:     []string{"Python", "Flask"},
		PreferredSkills:    []string{"AWS"},
		RequiredExperience: 3,
		SeniorityLevel:     types.SeniorityMid,
	}
}

// happyRoutes answers every stage successfully; overrides replace individual stages
func happyRoutes(overrides llmtest.Routes) llmtest.Routes {
	routes := llmtest.Routes{
		llmtest.RouteParser:      llmtest.Reply(parseReply),
		llmtest.RouteSkills:      llmtest.Reply(skillsReply),
		llmtest.RouteExperience:  llmtest.Reply(experienceReply),
		llmtest.RouteCulturalFit: llmtest.Reply(cultureReply),
	}
	for k, v := range overrides {
		routes[k] = v
	}
	return routes
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.StageTimeout = 2 * time.Second
	cfg.CandidateTimeout = 5 * time.Second
	cfg.RetryInitialInterval = time.Millisecond
	return cfg
}

func newTestOrchestrator(t *testing.T, client *llmtest.MockClient, cfg Config, deps ...func(*Deps)) (*Orchestrator, *db.MemoryStore) {
	t.Helper()
	store := db.NewMemoryStore()
	d := Deps{Client: client, Store: store}
	for _, fn := range deps {
		fn(&d)
	}
	o, err := New(d, cfg)
	require.NoError(t, err)
	return o, store
}

// callsFor counts oracle calls whose system prompt contains fragment
func callsFor(client *llmtest.MockClient, fragment string) int {
	n := 0
	for _, c := range client.Calls() {
		if strings.Contains(c.SystemPrompt, fragment) {
			n++
		}
	}
	return n
}

// failingStore rejects every write
type failingStore struct {
	*db.MemoryStore
	err error
}

func (s failingStore) Save(context.Context, *db.Record) (uuid.UUID, error) {
	return uuid.Nil, s.err
}

// trackingStore records how many re-evaluations are between Load and Update at once
type trackingStore struct {
	*db.MemoryStore
	mu        sync.Mutex
	active    int
	maxActive int
}

func (s *trackingStore) Load(ctx context.Context, id uuid.UUID) (*db.Record, error) {
	s.mu.Lock()
	s.active++
	if s.active > s.maxActive {
		s.maxActive = s.active
	}
	s.mu.Unlock()
	return s.MemoryStore.Load(ctx, id)
}

func (s *trackingStore) Update(ctx context.Context, id uuid.UUID, upd db.RecordUpdate) error {
	time.Sleep(5 * time.Millisecond)
	s.mu.Lock()
	s.active--
	s.mu.Unlock()
	return s.MemoryStore.Update(ctx, id, upd)
}
