package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derrickgr2-cpu/familyconnest/internal/models"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrReplyNotFound = errors.New("reply not found")
)

type ForumRepository struct {
	pool *pgxpool.Pool
}

func NewForumRepository(pool *pgxpool.Pool) *ForumRepository {
	return &ForumRepository{pool: pool}
}

const postSelect = `
	SELECT p.id, p.title, p.content, p.author_id, u.name, p.created_at, p.updated_at
	FROM forum_posts p JOIN users u ON u.id = p.author_id`

const replySelect = `
	SELECT r.id, r.post_id, r.content, r.author_id, u.name, r.created_at
	FROM forum_replies r JOIN users u ON u.id = r.author_id`

func (r *ForumRepository) CreatePost(ctx context.Context, post models.ForumPost) (models.ForumPost, error) {
	const query = `
		INSERT INTO forum_posts (id, title, content, author_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	if _, err := r.pool.Exec(ctx, query, post.ID, post.Title, post.Content, post.AuthorID); err != nil {
		return models.ForumPost{}, err
	}
	return r.GetPost(ctx, post.ID)
}

// ListPosts returns posts newest first, each with its replies oldest first.
func (r *ForumRepository) ListPosts(ctx context.Context) ([]models.ForumPost, error) {
	rows, err := r.pool.Query(ctx, postSelect+` ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.ForumPost{}
	index := make(map[string]int)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		post.Replies = []models.Reply{}
		index[post.ID] = len(posts)
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return posts, nil
	}

	replies, err := r.listReplies(ctx, replySelect+` ORDER BY r.created_at, r.id`)
	if err != nil {
		return nil, err
	}
	for _, reply := range replies {
		if i, ok := index[reply.PostID]; ok {
			posts[i].Replies = append(posts[i].Replies, reply)
		}
	}
	return posts, nil
}

func (r *ForumRepository) GetPost(ctx context.Context, id string) (models.ForumPost, error) {
	post, err := scanPost(r.pool.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return models.ForumPost{}, err
	}
	replies, err := r.listReplies(ctx, replySelect+` WHERE r.post_id = $1 ORDER BY r.created_at, r.id`, id)
	if err != nil {
		return models.ForumPost{}, err
	}
	post.Replies = replies
	return post, nil
}

func (r *ForumRepository) UpdatePost(ctx context.Context, id string, title string, content string) (models.ForumPost, error) {
	const query = `UPDATE forum_posts SET title = $2, content = $3, updated_at = NOW() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, title, content)
	if err != nil {
		return models.ForumPost{}, err
	}
	if cmd.RowsAffected() == 0 {
		return models.ForumPost{}, ErrPostNotFound
	}
	return r.GetPost(ctx, id)
}

// DeletePost removes the post; replies cascade.
func (r *ForumRepository) DeletePost(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM forum_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *ForumRepository) CreateReply(ctx context.Context, reply models.Reply) (models.Reply, error) {
	const query = `
		INSERT INTO forum_replies (id, post_id, content, author_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	if _, err := r.pool.Exec(ctx, query, reply.ID, reply.PostID, reply.Content, reply.AuthorID); err != nil {
		return models.Reply{}, err
	}
	return r.GetReply(ctx, reply.PostID, reply.ID)
}

func (r *ForumRepository) GetReply(ctx context.Context, postID string, replyID string) (models.Reply, error) {
	replies, err := r.listReplies(ctx, replySelect+` WHERE r.post_id = $1 AND r.id = $2`, postID, replyID)
	if err != nil {
		return models.Reply{}, err
	}
	if len(replies) == 0 {
		return models.Reply{}, ErrReplyNotFound
	}
	return replies[0], nil
}

func (r *ForumRepository) DeleteReply(ctx context.Context, postID string, replyID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM forum_replies WHERE id = $1 AND post_id = $2`, replyID, postID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrReplyNotFound
	}
	return nil
}

func (r *ForumRepository) listReplies(ctx context.Context, query string, args ...any) ([]models.Reply, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	replies := []models.Reply{}
	for rows.Next() {
		var reply models.Reply
		if err := rows.Scan(
			&reply.ID,
			&reply.PostID,
			&reply.Content,
			&reply.AuthorID,
			&reply.AuthorName,
			&reply.CreatedAt,
		); err != nil {
			return nil, err
		}
		replies = append(replies, reply)
	}
	return replies, rows.Err()
}

func scanPost(row rowScanner) (models.ForumPost, error) {
	var post models.ForumPost
	if err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.AuthorID,
		&post.AuthorName,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ForumPost{}, ErrPostNotFound
		}
		return models.ForumPost{}, err
	}
	return post, nil
}
