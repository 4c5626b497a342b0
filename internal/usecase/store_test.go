package usecase_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/fadilmartias/ai-interviewer/internal/errs"
	"github.com/fadilmartias/ai-interviewer/internal/model"
	"github.com/fadilmartias/ai-interviewer/internal/repository"
	"github.com/fadilmartias/ai-interviewer/internal/service"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// memStore keeps rows in memory and applies the same version checks as the
// gorm repositories.
type memStore struct {
	mu         sync.Mutex
	candidates map[uuid.UUID]model.Candidate
	sessions   map[uuid.UUID]model.InterviewSession
	saves      int
}

var (
	_ repository.InterviewRepository = (*memStore)(nil)
	_ repository.CandidateRepository = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		candidates: make(map[uuid.UUID]model.Candidate),
		sessions:   make(map[uuid.UUID]model.InterviewSession),
	}
}

func cloneSession(s model.InterviewSession) model.InterviewSession {
	out := s
	out.Slots = make(datatypes.JSONSlice[model.QuestionSlot], len(s.Slots))
	copy(out.Slots, s.Slots)
	return out
}

func (m *memStore) addCandidate(c model.Candidate) model.Candidate {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = model.CandidateApplied
	}
	c.Version = 1
	m.candidates[c.ID] = c
	return c
}

func (m *memStore) addSession(s model.InterviewSession) model.InterviewSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.Version = 1
	m.sessions[s.ID] = cloneSession(s)
	return s
}

func (m *memStore) candidate(id uuid.UUID) model.Candidate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.candidates[id]
}

func (m *memStore) session(id uuid.UUID) model.InterviewSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneSession(m.sessions[id])
}

func (m *memStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *memStore) Create(_ context.Context, c *model.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.candidates {
		if existing.Email == c.Email {
			return errs.Conflict("candidate", c.Email, "candidate with this email already exists")
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Version = 1
	m.candidates[c.ID] = *c
	return nil
}

func (m *memStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	return m.FindCandidate(ctx, id)
}

func (m *memStore) matching(filter repository.CandidateFilter) []model.Candidate {
	var out []model.Candidate
	for _, c := range m.candidates {
		if filter.Status == "" || string(c.Status) == filter.Status {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.Compare(out[i].Email, out[j].Email) < 0 })
	return out
}

func (m *memStore) List(_ context.Context, filter repository.CandidateFilter) ([]model.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.matching(filter)
	if filter.Offset >= len(all) {
		return []model.Candidate{}, nil
	}
	end := len(all)
	if filter.Limit > 0 {
		end = min(end, filter.Offset+filter.Limit)
	}
	return all[filter.Offset:end], nil
}

func (m *memStore) Count(_ context.Context, filter repository.CandidateFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.matching(filter))), nil
}

func (m *memStore) FindCandidate(_ context.Context, id uuid.UUID) (*model.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.candidates[id]
	if !ok {
		return nil, errs.NotFound("candidate", id.String())
	}
	return &c, nil
}

func (m *memStore) FindSession(_ context.Context, id uuid.UUID) (*model.InterviewSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, errs.NotFound("session", id.String())
	}
	out := cloneSession(s)
	return &out, nil
}

func (m *memStore) ListSessions(_ context.Context, candidateID uuid.UUID) ([]model.InterviewSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.InterviewSession{}
	for _, s := range m.sessions {
		if s.CandidateID == candidateID {
			out = append(out, cloneSession(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Attempt < out[j].Attempt })
	return out, nil
}

func (m *memStore) StartSession(_ context.Context, c *model.Candidate, s *model.InterviewSession, abandoned []*model.InterviewSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, old := range abandoned {
		if err := m.checkSession(old); err != nil {
			return err
		}
	}
	if err := m.checkCandidate(c); err != nil {
		return err
	}
	for _, old := range abandoned {
		m.putSession(old)
	}
	s.Version = 1
	m.sessions[s.ID] = cloneSession(*s)
	m.putCandidate(c)
	m.saves++
	return nil
}

func (m *memStore) SaveSession(_ context.Context, s *model.InterviewSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkSession(s); err != nil {
		return err
	}
	m.putSession(s)
	m.saves++
	return nil
}

func (m *memStore) FinishSession(_ context.Context, c *model.Candidate, s *model.InterviewSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkSession(s); err != nil {
		return err
	}
	if err := m.checkCandidate(c); err != nil {
		return err
	}
	m.putSession(s)
	m.putCandidate(c)
	m.saves++
	return nil
}

func (m *memStore) checkSession(s *model.InterviewSession) error {
	stored, ok := m.sessions[s.ID]
	if !ok || stored.Version != s.Version {
		return errs.Conflict("session", s.ID.String(), "session was modified concurrently")
	}
	return nil
}

func (m *memStore) checkCandidate(c *model.Candidate) error {
	stored, ok := m.candidates[c.ID]
	if !ok || stored.Version != c.Version {
		return errs.Conflict("candidate", c.ID.String(), "candidate was modified concurrently")
	}
	return nil
}

func (m *memStore) putSession(s *model.InterviewSession) {
	s.Version++
	m.sessions[s.ID] = cloneSession(*s)
}

func (m *memStore) putCandidate(c *model.Candidate) {
	c.Version++
	m.candidates[c.ID] = *c
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []service.InterviewFinishedEvent
	err    error
}

func (p *recordingPublisher) PublishInterviewFinished(_ context.Context, evt service.InterviewFinishedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) Close() error {
	return nil
}

func (p *recordingPublisher) published() []service.InterviewFinishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]service.InterviewFinishedEvent(nil), p.events...)
}
