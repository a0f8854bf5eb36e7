package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tahsin0604/harmony-academy-server/internal/models"
)

// fakeClassStore serves counts keyed by status, optionally scoped to a
// single instructor email; an unknown email simply counts nothing,
// mirroring how filters behave against the real collection.
type fakeClassStore struct {
	classes []models.ClassOffering
}

func (f *fakeClassStore) CountByInstructor(_ context.Context, email string) (int64, error) {
	var n int64
	for _, c := range f.classes {
		if email == "" || c.InstructorEmail == email {
			n++
		}
	}
	return n, nil
}

func (f *fakeClassStore) CountByStatus(_ context.Context, email string, status models.ClassStatus) (int64, error) {
	var n int64
	for _, c := range f.classes {
		if (email == "" || c.InstructorEmail == email) && c.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeClassStore) SumEnrolled(_ context.Context, email string) (int64, error) {
	var total int64
	for _, c := range f.classes {
		if (email == "" || c.InstructorEmail == email) && c.Status == models.ClassApproved {
			total += c.EnrolledStudents
		}
	}
	return total, nil
}

type fakeCounter struct{ n int64 }

func (f *fakeCounter) CountByStudent(context.Context, string) (int64, error) { return f.n, nil }

type fakeUserStore struct{ instructors int64 }

func (f *fakeUserStore) CountByRole(context.Context, models.UserRole) (int64, error) {
	return f.instructors, nil
}

func TestStudentStats(t *testing.T) {
	agg := NewAggregator(&fakeClassStore{}, &fakeCounter{n: 3}, &fakeCounter{n: 2}, &fakeUserStore{})

	got, err := agg.Student(context.Background(), "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.SelectedClasses)
	assert.Equal(t, int64(2), got.EnrolledClasses)
}

func TestInstructorStats(t *testing.T) {
	classes := &fakeClassStore{classes: []models.ClassOffering{
		{InstructorEmail: "amy@x.com", Status: models.ClassApproved, EnrolledStudents: 12},
		{InstructorEmail: "amy@x.com", Status: models.ClassApproved, EnrolledStudents: 8},
		{InstructorEmail: "amy@x.com", Status: models.ClassPending},
		{InstructorEmail: "amy@x.com", Status: models.ClassDenied},
		{InstructorEmail: "zed@x.com", Status: models.ClassApproved, EnrolledStudents: 99},
	}}
	agg := NewAggregator(classes, &fakeCounter{}, &fakeCounter{}, &fakeUserStore{})

	got, err := agg.Instructor(context.Background(), "amy@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.TotalClasses)
	assert.Equal(t, int64(2), got.ApprovedClasses)
	assert.Equal(t, int64(1), got.DeniedClasses)
	assert.Equal(t, int64(1), got.PendingClasses)
	assert.Equal(t, int64(20), got.TotalStudents)
}

func TestInstructorStatsZeroApprovedClasses(t *testing.T) {
	// Only pending classes: the student total must be a defined zero,
	// not an aggregation failure.
	classes := &fakeClassStore{classes: []models.ClassOffering{
		{InstructorEmail: "new@x.com", Status: models.ClassPending},
	}}
	agg := NewAggregator(classes, &fakeCounter{}, &fakeCounter{}, &fakeUserStore{})

	got, err := agg.Instructor(context.Background(), "new@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalClasses)
	assert.Equal(t, int64(0), got.ApprovedClasses)
	assert.Equal(t, int64(0), got.TotalStudents)
}

func TestAdminStats(t *testing.T) {
	classes := &fakeClassStore{classes: []models.ClassOffering{
		{InstructorEmail: "amy@x.com", Status: models.ClassApproved, EnrolledStudents: 5},
		{InstructorEmail: "zed@x.com", Status: models.ClassApproved, EnrolledStudents: 7},
		{InstructorEmail: "zed@x.com", Status: models.ClassPending},
	}}
	agg := NewAggregator(classes, &fakeCounter{}, &fakeCounter{}, &fakeUserStore{instructors: 2})

	got, err := agg.Admin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.TotalClasses)
	assert.Equal(t, int64(2), got.ApprovedClasses)
	assert.Equal(t, int64(12), got.TotalStudents)
	assert.Equal(t, int64(2), got.Instructors)
}
