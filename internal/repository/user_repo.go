package repository

import (
	"context"

	"github.com/Smilemka07/QuickLeap/internal/models"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (user_name, email, password_hash, role, bio, skills, profile_photo)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return r.db.QueryRow(
		ctx,
		query,
		user.UserName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Bio,
		user.Skills,
		user.ProfilePhoto,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, user_name, email, password_hash, role, bio, skills, profile_photo, created_at
		FROM users
		WHERE email = $1
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.UserName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Bio,
		&user.Skills,
		&user.ProfilePhoto,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, user_name, email, password_hash, role, bio, skills, profile_photo, created_at
		FROM users
		WHERE id = $1
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.UserName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Bio,
		&user.Skills,
		&user.ProfilePhoto,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) SearchByNameOrSkill(
	ctx context.Context,
	term string,
	limit int,
) ([]models.PublicProfile, error) {
	query := `
		SELECT id, user_name, role, bio, skills, profile_photo
		FROM users
		WHERE LOWER(user_name) LIKE $1
		   OR LOWER(ARRAY_TO_STRING(skills, ',')) LIKE $1
		ORDER BY user_name ASC, id ASC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, "%"+term+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]models.PublicProfile, 0)
	for rows.Next() {
		var profile models.PublicProfile
		if err := rows.Scan(
			&profile.ID,
			&profile.UserName,
			&profile.Role,
			&profile.Bio,
			&profile.Skills,
			&profile.ProfilePhoto,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}
