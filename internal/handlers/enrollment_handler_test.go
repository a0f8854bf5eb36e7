package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Tahsin0604/harmony-academy-server/internal/auth"
	"github.com/Tahsin0604/harmony-academy-server/internal/enroll"
	"github.com/Tahsin0604/harmony-academy-server/internal/models"
)

type stubEnrollments struct {
	byStudent map[string][]models.EnrolledClass
}

func (s *stubEnrollments) Insert(_ context.Context, e models.EnrolledClass) (models.EnrolledClass, error) {
	return e, nil
}

func (s *stubEnrollments) ExistsByPair(context.Context, primitive.ObjectID, string) (bool, error) {
	return false, nil
}

func (s *stubEnrollments) ListByStudent(_ context.Context, email string, _ bool) ([]models.EnrolledClass, error) {
	return s.byStudent[email], nil
}

func authedRequest(t *testing.T, method, target, email string) *http.Request {
	t.Helper()
	tokens := auth.NewTokenService("test-secret")
	token, err := tokens.IssueToken(email)
	require.NoError(t, err)
	claims, err := tokens.VerifyToken(token)
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(auth.ContextWithClaims(req.Context(), claims))
}

func TestGetEnrolledClassesIdentityMismatch(t *testing.T) {
	workflow := enroll.NewWorkflow(nil, &stubEnrollments{}, nil, nil, zerolog.Nop())
	h := NewEnrollmentHandler(workflow, zerolog.Nop())

	// Alice's token asking for Bob's history must never return data.
	req := authedRequest(t, http.MethodGet, "/enrolledClasses?email=bob@x.com", "alice@x.com")
	rec := httptest.NewRecorder()
	h.GetEnrolledClasses(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":true`)
	assert.NotContains(t, rec.Body.String(), "bob@x.com")
}

func TestGetEnrolledClassesWithoutClaims(t *testing.T) {
	h := NewEnrollmentHandler(enroll.NewWorkflow(nil, &stubEnrollments{}, nil, nil, zerolog.Nop()), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/enrolledClasses?email=alice@x.com", nil)
	rec := httptest.NewRecorder()
	h.GetEnrolledClasses(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetEnrolledClassesOwnData(t *testing.T) {
	enrollments := &stubEnrollments{byStudent: map[string][]models.EnrolledClass{
		"alice@x.com": {{StudentEmail: "alice@x.com", ClassName: "Violin Basics"}},
	}}
	workflow := enroll.NewWorkflow(nil, enrollments, nil, nil, zerolog.Nop())
	h := NewEnrollmentHandler(workflow, zerolog.Nop())

	req := authedRequest(t, http.MethodGet, "/enrolledClasses?email=alice@x.com", "alice@x.com")
	rec := httptest.NewRecorder()
	h.GetEnrolledClasses(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Violin Basics")
}

func TestCompletePaymentRejectsBadIDs(t *testing.T) {
	h := NewEnrollmentHandler(enroll.NewWorkflow(nil, &stubEnrollments{}, nil, nil, zerolog.Nop()), zerolog.Nop())

	req := authedRequest(t, http.MethodPost, "/payment?email=alice@x.com", "alice@x.com")
	rec := httptest.NewRecorder()
	h.CompletePayment(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
