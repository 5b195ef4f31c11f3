package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Djolex15/stripy-sub000/internal/domain"
)

type ReviewUC struct {
	Reviews domain.ReviewRepo
}

type AddReviewRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Name      string `json:"name" validate:"required,max=140"`
	Email     string `json:"email" validate:"omitempty,email"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"required,max=2000"`
	Language  string `json:"language" validate:"omitempty,oneof=en sr"`
}

func (uc *ReviewUC) Add(ctx context.Context, req AddReviewRequest) (*domain.Review, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if domain.FindProduct(req.ProductID) == nil {
		return nil, ErrUnknownProduct
	}
	lang := req.Language
	if lang == "" {
		lang = "en"
	}
	rev := &domain.Review{
		ID:        uuid.New(),
		ProductID: req.ProductID,
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
		Language:  lang,
	}
	if err := uc.Reviews.Save(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

// ListByProduct degrades to an empty slice on storage errors; the product
// page renders without reviews rather than failing.
func (uc *ReviewUC) ListByProduct(ctx context.Context, productID string) []domain.Review {
	list, err := uc.Reviews.ListByProduct(ctx, productID)
	if err != nil {
		log.Error().Err(err).Str("product_id", productID).Msg("list reviews")
		return []domain.Review{}
	}
	return list
}
