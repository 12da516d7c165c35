package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/models"
)

type postRepository struct {
	*DB
	logger *logger.Logger
}

// NewPostRepository returns a [PostRepository] backed by db.
func NewPostRepository(db *DB, log *logger.Logger) PostRepository {
	return &postRepository{DB: db, logger: log}
}

func (r *postRepository) List(ctx context.Context, page models.PostPage) ([]models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.listPosts(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "postRepository.List").Msg("error selecting posts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.translate(err))
	}
	defer rows.Close()

	posts := make([]models.Post, 0, page.PerPage)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			log.Err(err).Str("func", "postRepository.List").Msg("error scanning post")
			return nil, err
		}
		posts = append(posts, post)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return posts, nil
}

func (r *postRepository) Count(ctx context.Context, userID string) (int, error) {
	query, args, err := r.builder.countPosts(userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int
	if err = r.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "postRepository.Count").Msg("error counting posts")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, r.translate(err))
	}

	return total, nil
}

func (r *postRepository) Get(ctx context.Context, userID, postID string) (models.Post, error) {
	query, args, err := r.builder.selectPost(userID, postID)
	if err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	post, err := scanPost(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.Post{}, r.lookupError(ctx, "postRepository.Get", err)
	}

	return post, nil
}

func (r *postRepository) Delete(ctx context.Context, userID, postID string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.deletePost(userID, postID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		return r.lookupError(ctx, "postRepository.Delete", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	log.Info().Str("func", "postRepository.Delete").Str("post_id", postID).Msg("post deleted")
	return nil
}

// lookupError folds "no rows" and malformed ids into ErrNotFound; a post id
// that is not a uuid can never match a row.
func (r *postRepository) lookupError(ctx context.Context, fn string, err error) error {
	err = r.translate(err)
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) {
		return ErrNotFound
	}
	logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error querying post")
	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (models.Post, error) {
	var (
		post     models.Post
		status   string
		keywords sql.NullString
	)
	if err := row.Scan(&post.ID, &post.UserID, &post.Title, &post.Content, &status, &keywords, &post.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, err
		}
		return models.Post{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	post.Status = models.PostStatus(status)

	post.Keywords = []string{}
	if keywords.Valid && keywords.String != "" {
		if err := json.Unmarshal([]byte(keywords.String), &post.Keywords); err != nil {
			return models.Post{}, fmt.Errorf("%w: keywords: %w", ErrScanningRow, err)
		}
	}

	return post, nil
}
