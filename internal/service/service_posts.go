package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/internal/store"
	"github.com/MKhiriev/postdesk/models"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100

	// MaxPage keeps (Page-1)*PerPage within int for every allowed PerPage.
	MaxPage = math.MaxInt / MaxPerPage
)

type postService struct {
	repository store.PostRepository
	logger     *logger.Logger
}

func NewPostService(repository store.PostRepository, logger *logger.Logger) PostService {
	return &postService{
		repository: repository,
		logger:     logger,
	}
}

// NormalizePage clamps page into [1, MaxPage] and per-page into
// [1, MaxPerPage], using DefaultPerPage when it is unset.
func NormalizePage(page models.PostPage) models.PostPage {
	switch {
	case page.Page < 1:
		page.Page = 1
	case page.Page > MaxPage:
		page.Page = MaxPage
	}
	switch {
	case page.PerPage < 1:
		page.PerPage = DefaultPerPage
	case page.PerPage > MaxPerPage:
		page.PerPage = MaxPerPage
	}
	return page
}

// List returns one page of the user's posts, newest first, with the total
// count.
func (p *postService) List(ctx context.Context, page models.PostPage) (models.PostList, error) {
	if page.UserID == "" {
		return models.PostList{}, ErrInvalidDataProvided
	}
	page = NormalizePage(page)

	total, err := p.repository.Count(ctx, page.UserID)
	if err != nil {
		return models.PostList{}, fmt.Errorf("%w: %w", ErrPostsUnavailable, err)
	}

	posts, err := p.repository.List(ctx, page)
	if err != nil {
		return models.PostList{}, fmt.Errorf("%w: %w", ErrPostsUnavailable, err)
	}

	return models.PostList{
		Posts:   posts,
		Total:   total,
		Page:    page.Page,
		PerPage: page.PerPage,
	}, nil
}

// Delete removes the post after checking that userID owns it.
func (p *postService) Delete(ctx context.Context, userID, postID string) error {
	log := logger.FromContext(ctx)

	if userID == "" || postID == "" {
		return ErrPostNotFound
	}

	if _, err := p.repository.Get(ctx, userID, postID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info().Str("func", "postService.Delete").Str("post_id", postID).Msg("post missing or not owned")
			return ErrPostNotFound
		}
		return fmt.Errorf("%w: %w", ErrPostsUnavailable, err)
	}

	if err := p.repository.Delete(ctx, userID, postID); err != nil {
		// removed concurrently between the check and the delete
		if errors.Is(err, store.ErrNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("%w: %w", ErrPostsUnavailable, err)
	}

	return nil
}
