package catalog

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Tahsin0604/harmony-academy-server/internal/models"
	"github.com/Tahsin0604/harmony-academy-server/internal/repository"
)

type fakeClassStore struct {
	approved []models.ClassOffering
}

func (f *fakeClassStore) ListApproved(_ context.Context, skip, limit int64) ([]models.ClassOffering, error) {
	sorted := append([]models.ClassOffering(nil), f.approved...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EnrolledStudents > sorted[j].EnrolledStudents
	})
	if skip >= int64(len(sorted)) {
		return nil, nil
	}
	end := skip + limit
	if end > int64(len(sorted)) {
		end = int64(len(sorted))
	}
	return sorted[skip:end], nil
}

func (f *fakeClassStore) CountApproved(_ context.Context) (int64, error) {
	return int64(len(f.approved)), nil
}

type fakeInstructorStore struct {
	instructors []models.InstructorWithClasses
}

func (f *fakeInstructorStore) InstructorsWithApprovedClasses(_ context.Context) ([]models.InstructorWithClasses, error) {
	return f.instructors, nil
}

func (f *fakeInstructorStore) InstructorWithApprovedClassesByID(_ context.Context, id primitive.ObjectID) (models.InstructorWithClasses, error) {
	for _, in := range f.instructors {
		if in.ID == id {
			return in, nil
		}
	}
	return models.InstructorWithClasses{}, repository.ErrNotFound
}

func (f *fakeInstructorStore) CountByRole(_ context.Context, _ models.UserRole) (int64, error) {
	return int64(len(f.instructors)), nil
}

func approvedClasses(n int) []models.ClassOffering {
	classes := make([]models.ClassOffering, n)
	for i := range classes {
		classes[i] = models.ClassOffering{
			ID:               primitive.NewObjectID(),
			Status:           models.ClassApproved,
			EnrolledStudents: int64(i),
		}
	}
	return classes
}

func instructor(name string, enrolled ...int64) models.InstructorWithClasses {
	in := models.InstructorWithClasses{}
	in.ID = primitive.NewObjectID()
	in.Name = name
	in.Email = name + "@x.com"
	for _, e := range enrolled {
		in.Classes = append(in.Classes, models.ClassOffering{EnrolledStudents: e})
	}
	return in
}

func TestApprovedClassesDefaults(t *testing.T) {
	engine := NewEngine(&fakeClassStore{approved: approvedClasses(10)}, &fakeInstructorStore{})

	// Out-of-range paging inputs fall back to page 0, limit 6.
	page, err := engine.ApprovedClasses(context.Background(), -1, 0)
	require.NoError(t, err)
	require.Len(t, page, DefaultPageSize)

	for i := 1; i < len(page); i++ {
		assert.GreaterOrEqual(t, page[i-1].EnrolledStudents, page[i].EnrolledStudents)
	}
}

func TestApprovedClassesPagesDoNotOverlap(t *testing.T) {
	engine := NewEngine(&fakeClassStore{approved: approvedClasses(10)}, &fakeInstructorStore{})
	ctx := context.Background()

	first, err := engine.ApprovedClasses(ctx, 0, 6)
	require.NoError(t, err)
	second, err := engine.ApprovedClasses(ctx, 1, 6)
	require.NoError(t, err)

	require.Len(t, first, 6)
	require.Len(t, second, 4)

	seen := map[primitive.ObjectID]bool{}
	for _, c := range first {
		seen[c.ID] = true
	}
	for _, c := range second {
		assert.False(t, seen[c.ID], "page 1 must not repeat page 0")
	}
}

func TestInstructorSortTieBrokenByName(t *testing.T) {
	zed := instructor("Zed", 4, 6)
	amy := instructor("Amy", 10)
	bob := instructor("Bob", 25)

	engine := NewEngine(&fakeClassStore{}, &fakeInstructorStore{
		instructors: []models.InstructorWithClasses{zed, amy, bob},
	})

	got, err := engine.Instructors(context.Background(), 0, 6)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Bob", got[0].Name)
	// Amy and Zed both total 10 students; the tie breaks on name.
	assert.Equal(t, "Amy", got[1].Name)
	assert.Equal(t, "Zed", got[2].Name)
}

func TestInstructorWithoutClassesGetsPlaceholder(t *testing.T) {
	newcomer := instructor("Noor")
	veteran := instructor("Vera", 3)

	engine := NewEngine(&fakeClassStore{}, &fakeInstructorStore{
		instructors: []models.InstructorWithClasses{newcomer, veteran},
	})

	got, err := engine.Instructors(context.Background(), 0, 6)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Vera", got[0].Name)
	assert.Equal(t, int64(1), got[0].TotalClasses)
	assert.Equal(t, int64(3), got[0].TotalStudents)

	assert.Equal(t, "Noor", got[1].Name)
	assert.Equal(t, int64(0), got[1].TotalClasses)
	assert.Equal(t, int64(0), got[1].TotalStudents)
	assert.Equal(t, ClassesProcessing, got[1].Classes)
}

func TestInstructorByID(t *testing.T) {
	amy := instructor("Amy", 2, 3)
	engine := NewEngine(&fakeClassStore{}, &fakeInstructorStore{
		instructors: []models.InstructorWithClasses{amy},
	})

	got, err := engine.InstructorByID(context.Background(), amy.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.TotalClasses)
	assert.Equal(t, int64(5), got.TotalStudents)

	_, err = engine.InstructorByID(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
