package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foodiez/directory/internal/domain"
	"github.com/foodiez/directory/internal/events"
	"github.com/foodiez/directory/internal/repository"
	apperrors "github.com/foodiez/directory/pkg/util/errorutil"
)

const reviewListLimit = 50

// ReviewService lets authenticated users post reviews.
type ReviewService struct {
	reviews    repository.ReviewRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewReviewService builds the service.
func NewReviewService(reviews repository.ReviewRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewService{reviews: reviews, dispatcher: dispatcher, logger: logger}
}

// Post stores a review written by authorID.
func (s *ReviewService) Post(ctx context.Context, authorID, title, description string) (*domain.Review, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewMalformedInput("title")
	}
	review := &domain.Review{Title: title, Description: strings.TrimSpace(description), AuthorID: authorID}
	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("author", nil)
		}
		return nil, storeUnavailable(err)
	}

	if s.dispatcher != nil {
		event := events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventReviewPosted,
			SubjectID: review.ID,
			Actor:     events.Actor{Type: domain.SubjectTypeUser, ID: authorID},
			Timestamp: time.Now().UTC(),
			Payload:   events.ReviewPostedPayload{Title: review.Title},
		}
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
		}
	}
	return review, nil
}

// List returns recent reviews with their authors populated.
func (s *ReviewService) List(ctx context.Context) ([]domain.Review, error) {
	items, err := s.reviews.ListWithAuthors(ctx, reviewListLimit)
	if err != nil {
		return nil, storeUnavailable(err)
	}
	return items, nil
}
