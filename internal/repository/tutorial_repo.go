package repository

import (
	"context"

	"github.com/Smilemka07/QuickLeap/internal/models"
)

type TutorialRepository struct {
	db DBTX
}

func NewTutorialRepository(db DBTX) *TutorialRepository {
	return &TutorialRepository{db: db}
}

func (r *TutorialRepository) Create(ctx context.Context, tutorial *models.Tutorial) error {
	query := `
		INSERT INTO tutorials (creator_id, title, description, content_type, video_url, notes, thumbnail)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return r.db.QueryRow(
		ctx,
		query,
		tutorial.CreatorID,
		tutorial.Title,
		tutorial.Description,
		tutorial.ContentType,
		tutorial.VideoURL,
		tutorial.Notes,
		tutorial.Thumbnail,
	).Scan(&tutorial.ID, &tutorial.CreatedAt)
}

func (r *TutorialRepository) GetByID(ctx context.Context, id int64) (*models.Tutorial, error) {
	query := `
		SELECT id, creator_id, title, description, content_type, video_url, notes, thumbnail, created_at
		FROM tutorials
		WHERE id = $1
	`

	var tutorial models.Tutorial
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tutorial.ID,
		&tutorial.CreatorID,
		&tutorial.Title,
		&tutorial.Description,
		&tutorial.ContentType,
		&tutorial.VideoURL,
		&tutorial.Notes,
		&tutorial.Thumbnail,
		&tutorial.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &tutorial, nil
}

func (r *TutorialRepository) ListByCreator(
	ctx context.Context,
	creatorID int64,
) ([]models.Tutorial, error) {
	query := `
		SELECT id, creator_id, title, description, content_type, video_url, notes, thumbnail, created_at
		FROM tutorials
		WHERE creator_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tutorials := make([]models.Tutorial, 0)
	for rows.Next() {
		var tutorial models.Tutorial
		if err := rows.Scan(
			&tutorial.ID,
			&tutorial.CreatorID,
			&tutorial.Title,
			&tutorial.Description,
			&tutorial.ContentType,
			&tutorial.VideoURL,
			&tutorial.Notes,
			&tutorial.Thumbnail,
			&tutorial.CreatedAt,
		); err != nil {
			return nil, err
		}
		tutorials = append(tutorials, tutorial)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tutorials, nil
}

// LogWatch records that a user viewed a tutorial. Repeat views keep the
// first watch row.
func (r *TutorialRepository) LogWatch(ctx context.Context, watcherID int64, tutorialID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO tutorial_views (watcher_id, tutorial_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, watcherID, tutorialID)
	return err
}

// ListWatched returns each tutorial the user has viewed with its most recent
// watch time, one row per tutorial.
func (r *TutorialRepository) ListWatched(
	ctx context.Context,
	watcherID int64,
) ([]models.WatchedTutorial, error) {
	query := `
		SELECT DISTINCT ON (t.id)
			t.id, t.creator_id, t.title, t.description, t.content_type,
			t.video_url, t.notes, t.thumbnail, t.created_at,
			tv.watched_at
		FROM tutorials t
		JOIN tutorial_views tv ON t.id = tv.tutorial_id
		WHERE tv.watcher_id = $1
		ORDER BY t.id, tv.watched_at DESC
	`

	rows, err := r.db.Query(ctx, query, watcherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	watched := make([]models.WatchedTutorial, 0)
	for rows.Next() {
		var item models.WatchedTutorial
		if err := rows.Scan(
			&item.ID,
			&item.CreatorID,
			&item.Title,
			&item.Description,
			&item.ContentType,
			&item.VideoURL,
			&item.Notes,
			&item.Thumbnail,
			&item.CreatedAt,
			&item.WatchedAt,
		); err != nil {
			return nil, err
		}
		watched = append(watched, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return watched, nil
}

func (r *TutorialRepository) SearchByTitleOrDescription(
	ctx context.Context,
	term string,
	limit int,
) ([]models.Tutorial, error) {
	query := `
		SELECT id, creator_id, title, description, content_type, video_url, notes, thumbnail, created_at
		FROM tutorials
		WHERE LOWER(title) LIKE $1
		   OR LOWER(description) LIKE $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, "%"+term+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tutorials := make([]models.Tutorial, 0)
	for rows.Next() {
		var tutorial models.Tutorial
		if err := rows.Scan(
			&tutorial.ID,
			&tutorial.CreatorID,
			&tutorial.Title,
			&tutorial.Description,
			&tutorial.ContentType,
			&tutorial.VideoURL,
			&tutorial.Notes,
			&tutorial.Thumbnail,
			&tutorial.CreatedAt,
		); err != nil {
			return nil, err
		}
		tutorials = append(tutorials, tutorial)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tutorials, nil
}
