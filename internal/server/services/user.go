// Package services contains the server-side business logic: accounts and
// tokens in UserService, the meal log in MealService. Every mutation that can
// carry an image goes through attach.Orchestrator.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/foodlog/internal/attach"
	"github.com/dmitrijs2005/foodlog/internal/common"
	"github.com/dmitrijs2005/foodlog/internal/cryptox"
	"github.com/dmitrijs2005/foodlog/internal/dbx"
	"github.com/dmitrijs2005/foodlog/internal/logging"
	"github.com/dmitrijs2005/foodlog/internal/objectstore"
	"github.com/dmitrijs2005/foodlog/internal/server/auth"
	"github.com/dmitrijs2005/foodlog/internal/server/config"
	"github.com/dmitrijs2005/foodlog/internal/server/models"
	"github.com/dmitrijs2005/foodlog/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ProfileImagesNamespace prefixes avatars replaced through UpdateProfile.
// Avatars uploaded at registration live under the user's id instead.
const ProfileImagesNamespace = "profile-images"

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Gender   string
}

// ProfileInput is the editable part of a profile.
type ProfileInput struct {
	FullName string
	Email    string
	Gender   string
}

// UserResult is a persisted user plus the upload warning, if the avatar
// could not be stored.
type UserResult struct {
	User    *models.User
	Warning error
}

// UserService provides account, token and profile operations.
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	linker                       *attach.Orchestrator
	bucket                       string
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	logger                       logging.Logger
}

// NewUserService constructs a UserService from the server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, linker *attach.Orchestrator, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		linker:                       linker,
		bucket:                       cfg.UsersBucket,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		logger:                       logger.With("module", "users"),
	}
}

// Register creates an account. The optional avatar is stored under
// {userID}/; under the degrade policy a failed avatar upload never fails
// the registration.
func (s *UserService) Register(ctx context.Context, in RegisterInput, avatar *attach.File) (*UserResult, error) {
	in, err := normalizeRegister(in)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	if _, err := repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: hash,
		Gender:       in.Gender,
	}

	res, err := s.linker.Link(ctx, attach.Request{
		Bucket:    s.bucket,
		Namespace: user.ID,
		File:      avatar,
	}, func(ctx context.Context, ref *objectstore.Ref) error {
		user.SetImageRef(ref)
		return repo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return &UserResult{User: user, Warning: res.Warning}, nil
}

// Login verifies the credentials and returns a new TokenPair. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if err := cryptox.CheckPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	return s.generateTokenPair(ctx, user.ID, s.db)
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.repomanager.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, tx)
		return genErr
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *UserService) GetProfile(ctx context.Context, id auth.Identity) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id.UserID)
}

// UpdateProfile edits the caller's profile and optionally replaces the
// avatar. On failure the stored profile is unchanged.
func (s *UserService) UpdateProfile(ctx context.Context, id auth.Identity, in ProfileInput, avatar *attach.File) (*UserResult, error) {
	in, err := normalizeProfile(in)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	current, err := repo.GetByID(ctx, id.UserID)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.FullName, updated.Email, updated.Gender = in.FullName, in.Email, in.Gender

	res, err := s.linker.Link(ctx, attach.Request{
		Bucket:    s.bucket,
		Namespace: ProfileImagesNamespace,
		Existing:  current.ImageRef(),
		File:      avatar,
	}, func(ctx context.Context, ref *objectstore.Ref) error {
		updated.SetImageRef(ref)
		return repo.UpdateProfile(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}

	return &UserResult{User: &updated, Warning: res.Warning}, nil
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
