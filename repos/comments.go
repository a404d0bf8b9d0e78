package repos

import (
	"context"
	"errors"

	"github.com/skifte/skifte-server/models"
	"github.com/skifte/skifte-server/storage"
)

type CommentRepo struct {
	store storage.Store
}

func NewCommentRepo(store storage.Store) *CommentRepo {
	return &CommentRepo{store: store}
}

func (r *CommentRepo) Add(ctx context.Context, comment models.Comment) error {
	comments, rev, err := r.list(ctx, comment.EstateId)
	if err != nil {
		return err
	}

	comments = append(comments, comment)
	return r.store.Put(ctx, commentsKey(comment.EstateId), comments, rev)
}

// List returns comments in insertion order, optionally filtered to one task.
func (r *CommentRepo) List(ctx context.Context, estateId string, taskId *string) ([]models.Comment, error) {
	comments, _, err := r.list(ctx, estateId)
	if err != nil {
		return nil, err
	}

	if taskId == nil {
		return comments, nil
	}

	filtered := make([]models.Comment, 0)
	for _, comment := range comments {
		if comment.TaskId != nil && *comment.TaskId == *taskId {
			filtered = append(filtered, comment)
		}
	}
	return filtered, nil
}

func (r *CommentRepo) list(ctx context.Context, estateId string) ([]models.Comment, int64, error) {
	comments := make([]models.Comment, 0)
	rev, err := r.store.Get(ctx, commentsKey(estateId), &comments)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return comments, storage.AnyRevision, nil
		}
		return nil, 0, err
	}
	return comments, rev, nil
}
