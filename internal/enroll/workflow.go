// Package enroll implements the selection/enrollment lifecycle: a
// (class, student) pair moves NONE -> SELECTED -> ENROLLED, with a
// class-level seat-exhaustion state that marks pending selections as
// "Filled Up" without deleting them.
package enroll

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Tahsin0604/harmony-academy-server/internal/models"
	"github.com/Tahsin0604/harmony-academy-server/internal/repository"
)

var (
	// ErrAlreadySelected is returned when the pair already has an
	// active selection.
	ErrAlreadySelected = errors.New("class already selected")
	// ErrAlreadyEnrolled is returned when the pair already has a paid
	// enrollment; such classes may not be re-selected.
	ErrAlreadyEnrolled = errors.New("class already enrolled")
)

type SelectionStore interface {
	Insert(ctx context.Context, s models.SelectedClass) (models.SelectedClass, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.SelectedClass, error)
	ExistsByPair(ctx context.Context, classID primitive.ObjectID, email string) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	MarkFilledUp(ctx context.Context, id primitive.ObjectID) error
	ListByStudent(ctx context.Context, email string) ([]models.SelectedClass, error)
}

type EnrollmentStore interface {
	Insert(ctx context.Context, e models.EnrolledClass) (models.EnrolledClass, error)
	ExistsByPair(ctx context.Context, classID primitive.ObjectID, email string) (bool, error)
	ListByStudent(ctx context.Context, email string, ascending bool) ([]models.EnrolledClass, error)
}

type ClassStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.ClassOffering, error)
	ConsumeSeat(ctx context.Context, id primitive.ObjectID) error
}

// TxnRunner executes fn atomically: if fn returns an error, every
// store write made through its context is rolled back.
type TxnRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Outcome reports the three store operations performed by a completed
// enrollment, mirroring what clients of the previous backend expect.
type Outcome struct {
	Inserted models.EnrolledClass `json:"inserted"`
	Deleted  bool                 `json:"deleted"`
	Updated  bool                 `json:"updated"`
}

type Workflow struct {
	selections  SelectionStore
	enrollments EnrollmentStore
	classes     ClassStore
	txn         TxnRunner
	log         zerolog.Logger
}

func NewWorkflow(selections SelectionStore, enrollments EnrollmentStore, classes ClassStore, txn TxnRunner, log zerolog.Logger) *Workflow {
	return &Workflow{
		selections:  selections,
		enrollments: enrollments,
		classes:     classes,
		txn:         txn,
		log:         log,
	}
}

// Select records a student's interest in a class. No seat check
// happens here; seats are consumed at payment time only.
func (w *Workflow) Select(ctx context.Context, classID primitive.ObjectID, email string) (models.SelectedClass, error) {
	enrolled, err := w.enrollments.ExistsByPair(ctx, classID, email)
	if err != nil {
		return models.SelectedClass{}, err
	}
	if enrolled {
		return models.SelectedClass{}, ErrAlreadyEnrolled
	}

	selected, err := w.selections.ExistsByPair(ctx, classID, email)
	if err != nil {
		return models.SelectedClass{}, err
	}
	if selected {
		return models.SelectedClass{}, ErrAlreadySelected
	}

	class, err := w.classes.FindByID(ctx, classID)
	if err != nil {
		return models.SelectedClass{}, err
	}

	s, err := w.selections.Insert(ctx, models.SelectedClass{
		ClassID:        class.ID,
		StudentEmail:   email,
		ClassName:      class.ClassName,
		Image:          class.Image,
		InstructorName: class.InstructorName,
		Price:          class.Price,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		// Lost a concurrent race; same answer as the existence check.
		return models.SelectedClass{}, ErrAlreadySelected
	}
	if err != nil {
		return models.SelectedClass{}, err
	}
	return s, nil
}

// Unselect removes a selection. Seats were never reserved, so there is
// nothing to give back.
func (w *Workflow) Unselect(ctx context.Context, selectionID primitive.ObjectID) error {
	return w.selections.Delete(ctx, selectionID)
}

func (w *Workflow) Selection(ctx context.Context, selectionID primitive.ObjectID) (models.SelectedClass, error) {
	return w.selections.FindByID(ctx, selectionID)
}

func (w *Workflow) Selections(ctx context.Context, email string) ([]models.SelectedClass, error) {
	return w.selections.ListByStudent(ctx, email)
}

// Enrollments lists a student's paid history. sortType "asc" orders
// oldest first; anything else is newest first.
func (w *Workflow) Enrollments(ctx context.Context, email, sortType string) ([]models.EnrolledClass, error) {
	ascending := strings.EqualFold(sortType, "asc")
	return w.enrollments.ListByStudent(ctx, email, ascending)
}

// CheckSeats reports whether the class behind a selection still has
// seats. When it does not, the selection is marked "Filled Up" in the
// same transaction as the read, so two concurrent checks cannot
// disagree about the last seat.
func (w *Workflow) CheckSeats(ctx context.Context, selectionID primitive.ObjectID) (available bool, err error) {
	err = w.txn.WithTransaction(ctx, func(ctx context.Context) error {
		sel, err := w.selections.FindByID(ctx, selectionID)
		if err != nil {
			return err
		}
		class, err := w.classes.FindByID(ctx, sel.ClassID)
		if err != nil {
			return err
		}
		if class.AvailableSeats < 1 {
			available = false
			return w.selections.MarkFilledUp(ctx, selectionID)
		}
		available = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return available, nil
}

// Complete turns a paid selection into an enrollment. The insert, the
// selection delete and the seat adjustment run in one transaction: a
// failure at any step leaves no orphan enrollment and no lost seat.
func (w *Workflow) Complete(ctx context.Context, selectionID primitive.ObjectID, record models.EnrolledClass) (Outcome, error) {
	var out Outcome
	err := w.txn.WithTransaction(ctx, func(ctx context.Context) error {
		inserted, err := w.enrollments.Insert(ctx, record)
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyEnrolled
		}
		if err != nil {
			return err
		}
		out.Inserted = inserted

		if err := w.selections.Delete(ctx, selectionID); err != nil {
			return err
		}
		out.Deleted = true

		if err := w.classes.ConsumeSeat(ctx, record.ClassID); err != nil {
			return err
		}
		out.Updated = true
		return nil
	})
	if err != nil {
		w.log.Warn().Err(err).
			Str("selection", selectionID.Hex()).
			Str("class", record.ClassID.Hex()).
			Str("student", record.StudentEmail).
			Msg("enrollment aborted")
		return Outcome{}, err
	}
	return out, nil
}
