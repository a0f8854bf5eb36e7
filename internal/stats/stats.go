// Package stats computes the role-scoped dashboard summaries. All
// methods are pure read-side counts; an instructor with no approved
// classes gets explicit zeros, never an aggregation error.
package stats

import (
	"context"

	"github.com/Tahsin0604/harmony-academy-server/internal/models"
)

type ClassStore interface {
	CountByInstructor(ctx context.Context, email string) (int64, error)
	CountByStatus(ctx context.Context, email string, status models.ClassStatus) (int64, error)
	SumEnrolled(ctx context.Context, email string) (int64, error)
}

type SelectionStore interface {
	CountByStudent(ctx context.Context, email string) (int64, error)
}

type EnrollmentStore interface {
	CountByStudent(ctx context.Context, email string) (int64, error)
}

type UserStore interface {
	CountByRole(ctx context.Context, role models.UserRole) (int64, error)
}

type StudentStats struct {
	SelectedClasses int64 `json:"selectedClasses"`
	EnrolledClasses int64 `json:"enrolledClasses"`
}

type InstructorStats struct {
	TotalClasses    int64 `json:"totalClasses"`
	ApprovedClasses int64 `json:"approvedClasses"`
	DeniedClasses   int64 `json:"deniedClasses"`
	PendingClasses  int64 `json:"pendingClasses"`
	TotalStudents   int64 `json:"totalStudents"`
}

type AdminStats struct {
	InstructorStats
	Instructors int64 `json:"instructors"`
}

type Aggregator struct {
	classes     ClassStore
	selections  SelectionStore
	enrollments EnrollmentStore
	users       UserStore
}

func NewAggregator(classes ClassStore, selections SelectionStore, enrollments EnrollmentStore, users UserStore) *Aggregator {
	return &Aggregator{
		classes:     classes,
		selections:  selections,
		enrollments: enrollments,
		users:       users,
	}
}

func (a *Aggregator) Student(ctx context.Context, email string) (StudentStats, error) {
	var s StudentStats
	var err error

	if s.SelectedClasses, err = a.selections.CountByStudent(ctx, email); err != nil {
		return StudentStats{}, err
	}
	if s.EnrolledClasses, err = a.enrollments.CountByStudent(ctx, email); err != nil {
		return StudentStats{}, err
	}
	return s, nil
}

func (a *Aggregator) classStats(ctx context.Context, email string) (InstructorStats, error) {
	var s InstructorStats
	var err error

	if s.TotalClasses, err = a.classes.CountByInstructor(ctx, email); err != nil {
		return InstructorStats{}, err
	}
	if s.ApprovedClasses, err = a.classes.CountByStatus(ctx, email, models.ClassApproved); err != nil {
		return InstructorStats{}, err
	}
	if s.DeniedClasses, err = a.classes.CountByStatus(ctx, email, models.ClassDenied); err != nil {
		return InstructorStats{}, err
	}
	if s.PendingClasses, err = a.classes.CountByStatus(ctx, email, models.ClassPending); err != nil {
		return InstructorStats{}, err
	}
	if s.TotalStudents, err = a.classes.SumEnrolled(ctx, email); err != nil {
		return InstructorStats{}, err
	}
	return s, nil
}

// Instructor summarizes one instructor's own classes.
func (a *Aggregator) Instructor(ctx context.Context, email string) (InstructorStats, error) {
	return a.classStats(ctx, email)
}

// Admin summarizes the whole platform.
func (a *Aggregator) Admin(ctx context.Context) (AdminStats, error) {
	classStats, err := a.classStats(ctx, "")
	if err != nil {
		return AdminStats{}, err
	}

	instructors, err := a.users.CountByRole(ctx, models.RoleInstructor)
	if err != nil {
		return AdminStats{}, err
	}

	return AdminStats{InstructorStats: classStats, Instructors: instructors}, nil
}
