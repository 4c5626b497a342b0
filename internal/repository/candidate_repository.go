package repository

import (
	"context"

	"github.com/fadilmartias/ai-interviewer/internal/errs"
	"github.com/fadilmartias/ai-interviewer/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=./candidate_repository.go -package=repomocks -destination=./mocks/candidate_repository.mock.go CandidateRepository

type CandidateFilter struct {
	Status string
	Offset int
	Limit  int
}

type CandidateRepository interface {
	Create(ctx context.Context, c *model.Candidate) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Candidate, error)
	List(ctx context.Context, filter CandidateFilter) ([]model.Candidate, error)
	Count(ctx context.Context, filter CandidateFilter) (int64, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(ctx context.Context, c *model.Candidate) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if isUniqueViolation(err) {
		return errs.Conflict("candidate", c.Email, "candidate with this email already exists")
	}
	if err != nil {
		return errs.Persistence("create candidate", err)
	}
	return nil
}

func (r *candidateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	return findCandidate(ctx, r.db, id)
}

func (r *candidateRepository) List(ctx context.Context, filter CandidateFilter) ([]model.Candidate, error) {
	var candidates []model.Candidate
	q := r.filtered(ctx, filter).Order("created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := q.Find(&candidates).Error; err != nil {
		return nil, errs.Persistence("list candidates", err)
	}
	return candidates, nil
}

func (r *candidateRepository) Count(ctx context.Context, filter CandidateFilter) (int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return 0, errs.Persistence("count candidates", err)
	}
	return total, nil
}

func (r *candidateRepository) filtered(ctx context.Context, filter CandidateFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Candidate{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	return q
}

func findCandidate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.Candidate, error) {
	var c model.Candidate
	err := db.WithContext(ctx).First(&c, "id = ?", id).Error
	if isNotFound(err) {
		return nil, errs.NotFound("candidate", id.String())
	}
	if err != nil {
		return nil, errs.Persistence("find candidate", err)
	}
	return &c, nil
}

// updateCandidate writes every column of c guarded by its version. Zero rows
// affected means another writer got there first.
func updateCandidate(ctx context.Context, db *gorm.DB, c *model.Candidate) error {
	prev := c.Version
	c.Version = prev + 1
	res := db.WithContext(ctx).Model(c).
		Where("version = ?", prev).
		Select("*").Omit("id", "created_at").
		Updates(c)
	if res.Error != nil {
		c.Version = prev
		return errs.Persistence("update candidate", res.Error)
	}
	if res.RowsAffected == 0 {
		c.Version = prev
		return errs.Conflict("candidate", c.ID.String(), "candidate was modified concurrently")
	}
	return nil
}
