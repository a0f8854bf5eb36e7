package handlers

import (
	"net/http"

	"github.com/Tahsin0604/harmony-academy-server/internal/repository"
)

type ReviewHandler struct {
	reviews *repository.ReviewRepo
}

func NewReviewHandler(reviews *repository.ReviewRepo) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch reviews")
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}
