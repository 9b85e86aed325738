package users

import (
	"context"
	"fmt"
	"strings"

	apperrors "codeberg.org/interprep/server/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new user repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// creates a local account with an empty profile
func (r *Repository) Create(ctx context.Context, username, email, passwordHash string) (*User, error) {
	var id int64

	err := r.db.QueryRow(ctx, queryCreate, username, email, passwordHash).Scan(&id)
	if err != nil {
		return nil, uniqueErr(err)
	}

	return r.FindByID(ctx, id)
}

func (r *Repository) FindByID(ctx context.Context, userID int64) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryFindByID, userID))
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryFindByUsername, username))
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryFindByEmail, email))
}

// finds a user by OAuth provider or creates a new one
func (r *Repository) FindOrCreateByProvider(
	ctx context.Context,
	provider, providerID, email, name string,
) (*User, error) {
	username := provider + "_" + providerID

	if _, err := r.db.Exec(ctx, queryFindOrCreateByProvider, username, email, provider, providerID, name); err != nil {
		return nil, uniqueErr(err)
	}

	return scanUser(r.db.QueryRow(ctx, queryFindByProvider, provider, providerID))
}

// records a successful login
func (r *Repository) TouchLastLogin(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, queryTouchLastLogin, userID)
	return err
}

// applies the non-nil fields of req; passwordHash replaces the stored hash when non-nil
func (r *Repository) UpdateProfile(
	ctx context.Context,
	userID int64,
	req UpdateProfileRequest,
	passwordHash *string,
) (*User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}

	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	tag, err := tx.Exec(ctx, queryUpdateAccount, req.Email, passwordHash, userID)
	if err != nil {
		return nil, uniqueErr(err)
	}

	if tag.RowsAffected() == 0 {
		return nil, ErrUserNotFound
	}

	_, err = tx.Exec(ctx, queryUpsertProfile,
		userID,
		req.FullName,
		req.Bio,
		nullableJSON(req.Preferences),
		nullableJSON(req.Settings),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return r.FindByID(ctx, userID)
}

func (r *Repository) Stats(ctx context.Context, userID int64) (*Stats, error) {
	var s Stats

	err := r.db.QueryRow(ctx, queryStats, userID).Scan(
		&s.Submissions.Total,
		&s.Submissions.Correct,
		&s.Submissions.Incorrect,
		&s.Submissions.Pending,
		&s.FavoritesCount,
		&s.PracticeCount,
		&s.CompletedCount,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var (
		u       User
		p       Profile
		prefs   []byte
		setting []byte
	)

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Provider,
		&u.IsActive,
		&u.CreatedAt,
		&u.LastLogin,
		&p.FullName,
		&p.Bio,
		&prefs,
		&setting,
	)

	if apperrors.IsNoRows(err) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, err
	}

	p.Preferences = prefs
	p.Settings = setting
	u.Profile = &p

	return &u, nil
}

// maps unique violations on username/email to sentinels
func uniqueErr(err error) error {
	constraint, ok := apperrors.UniqueConstraint(err)
	if !ok {
		return err
	}

	switch {
	case strings.Contains(constraint, "username"):
		return ErrUsernameTaken
	case strings.Contains(constraint, "email"):
		return ErrEmailTaken
	}

	return err
}

// nil or empty raw JSON means "leave unchanged"
func nullableJSON(raw []byte) *string {
	if len(raw) == 0 {
		return nil
	}

	s := string(raw)

	return &s
}
