// Package catalog builds the public browse views: paginated approved
// classes and aggregated instructor summaries.
package catalog

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Tahsin0604/harmony-academy-server/internal/models"
)

// DefaultPageSize matches the card grid of the web client.
const DefaultPageSize = 6

// ClassesProcessing is what the classes field of an instructor summary
// holds while the instructor has no approved classes yet. Existing
// clients branch on this literal, so it is part of the contract.
const ClassesProcessing = "processing"

type ClassStore interface {
	ListApproved(ctx context.Context, skip, limit int64) ([]models.ClassOffering, error)
	CountApproved(ctx context.Context) (int64, error)
}

type InstructorStore interface {
	InstructorsWithApprovedClasses(ctx context.Context) ([]models.InstructorWithClasses, error)
	InstructorWithApprovedClassesByID(ctx context.Context, id primitive.ObjectID) (models.InstructorWithClasses, error)
	CountByRole(ctx context.Context, role models.UserRole) (int64, error)
}

// InstructorSummary is the joined instructor view. Classes holds
// either the approved offerings or the ClassesProcessing placeholder.
type InstructorSummary struct {
	ID            primitive.ObjectID `json:"id"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	Image         string             `json:"image"`
	Gender        string             `json:"gender"`
	TotalClasses  int64              `json:"totalClasses"`
	TotalStudents int64              `json:"totalStudents"`
	Classes       interface{}        `json:"classes"`
}

type Engine struct {
	classes     ClassStore
	instructors InstructorStore
}

func NewEngine(classes ClassStore, instructors InstructorStore) *Engine {
	return &Engine{classes: classes, instructors: instructors}
}

func normalizePage(page, limit int64) (int64, int64) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}
	return page, limit
}

// ApprovedClasses returns one page of approved classes sorted by
// EnrolledStudents descending.
func (e *Engine) ApprovedClasses(ctx context.Context, page, limit int64) ([]models.ClassOffering, error) {
	page, limit = normalizePage(page, limit)
	return e.classes.ListApproved(ctx, page*limit, limit)
}

func (e *Engine) CountApprovedClasses(ctx context.Context) (int64, error) {
	return e.classes.CountApproved(ctx)
}

// summarize is the two-branch aggregation: instructors with approved
// classes get real totals, the rest get zeros and the processing
// placeholder instead of an empty list.
func summarize(in models.InstructorWithClasses) InstructorSummary {
	s := InstructorSummary{
		ID:     in.ID,
		Name:   in.Name,
		Email:  in.Email,
		Image:  in.Image,
		Gender: in.Gender,
	}
	if len(in.Classes) == 0 {
		s.Classes = ClassesProcessing
		return s
	}

	s.TotalClasses = int64(len(in.Classes))
	for _, c := range in.Classes {
		s.TotalStudents += c.EnrolledStudents
	}
	s.Classes = in.Classes
	return s
}

// Instructors returns one page of instructor summaries ordered by
// totalStudents descending with ties broken by name ascending.
func (e *Engine) Instructors(ctx context.Context, page, limit int64) ([]InstructorSummary, error) {
	page, limit = normalizePage(page, limit)

	joined, err := e.instructors.InstructorsWithApprovedClasses(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]InstructorSummary, 0, len(joined))
	for _, in := range joined {
		summaries = append(summaries, summarize(in))
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].TotalStudents != summaries[j].TotalStudents {
			return summaries[i].TotalStudents > summaries[j].TotalStudents
		}
		return summaries[i].Name < summaries[j].Name
	})

	start := page * limit
	if start >= int64(len(summaries)) {
		return []InstructorSummary{}, nil
	}
	end := start + limit
	if end > int64(len(summaries)) {
		end = int64(len(summaries))
	}
	return summaries[start:end], nil
}

// InstructorByID returns the summary for one instructor.
func (e *Engine) InstructorByID(ctx context.Context, id primitive.ObjectID) (InstructorSummary, error) {
	joined, err := e.instructors.InstructorWithApprovedClassesByID(ctx, id)
	if err != nil {
		return InstructorSummary{}, err
	}
	return summarize(joined), nil
}

func (e *Engine) CountInstructors(ctx context.Context) (int64, error) {
	return e.instructors.CountByRole(ctx, models.RoleInstructor)
}
