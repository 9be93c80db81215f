package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/foodlog/internal/attach"
	"github.com/dmitrijs2005/foodlog/internal/logging"
	"github.com/dmitrijs2005/foodlog/internal/objectstore"
	"github.com/dmitrijs2005/foodlog/internal/server/auth"
	"github.com/dmitrijs2005/foodlog/internal/server/models"
	"github.com/dmitrijs2005/foodlog/internal/server/repositories/repomanager"
)

// FoodImagesNamespace prefixes every meal photo.
const FoodImagesNamespace = "food-images"

// MealInput carries the editable meal fields. An empty Date means today.
type MealInput struct {
	Name     string
	Category string
	Date     string
}

// MealResult is a persisted meal plus the upload warning, if any.
type MealResult struct {
	Meal    *models.Meal
	Warning error
}

// MealService manages the meal log of authenticated users.
type MealService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	linker      *attach.Orchestrator
	bucket      string
	now         func() time.Time
	logger      logging.Logger
}

// NewMealService constructs a MealService storing photos in bucket.
func NewMealService(db *sql.DB, m repomanager.RepositoryManager, linker *attach.Orchestrator, bucket string, logger logging.Logger) *MealService {
	return &MealService{
		db:          db,
		repomanager: m,
		linker:      linker,
		bucket:      bucket,
		now:         time.Now,
		logger:      logger.With("module", "meals"),
	}
}

func (s *MealService) Create(ctx context.Context, id auth.Identity, in MealInput, photo *attach.File) (*MealResult, error) {
	in, err := normalizeMeal(in, s.now())
	if err != nil {
		return nil, err
	}

	meal := &models.Meal{
		UserID:   id.UserID,
		Name:     in.Name,
		Category: in.Category,
		Date:     in.Date,
	}

	repo := s.repomanager.Meals(s.db)
	res, err := s.linker.Link(ctx, attach.Request{
		Bucket:    s.bucket,
		Namespace: FoodImagesNamespace,
		File:      photo,
	}, func(ctx context.Context, ref *objectstore.Ref) error {
		meal.SetImageRef(ref)
		return repo.Create(ctx, meal)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "meal created", "meal_id", meal.ID, "user_id", id.UserID)
	return &MealResult{Meal: meal, Warning: res.Warning}, nil
}

// Update rewrites the meal's fields and, when photo is set, replaces its
// image. A meal owned by another user is reported as not found.
func (s *MealService) Update(ctx context.Context, id auth.Identity, mealID string, in MealInput, photo *attach.File) (*MealResult, error) {
	in, err := normalizeMeal(in, s.now())
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Meals(s.db)
	current, err := repo.GetByID(ctx, id.UserID, mealID)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Name, updated.Category, updated.Date = in.Name, in.Category, in.Date

	res, err := s.linker.Link(ctx, attach.Request{
		Bucket:    s.bucket,
		Namespace: FoodImagesNamespace,
		Existing:  current.ImageRef(),
		File:      photo,
	}, func(ctx context.Context, ref *objectstore.Ref) error {
		updated.SetImageRef(ref)
		return repo.Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}

	return &MealResult{Meal: &updated, Warning: res.Warning}, nil
}

func (s *MealService) Get(ctx context.Context, id auth.Identity, mealID string) (*models.Meal, error) {
	return s.repomanager.Meals(s.db).GetByID(ctx, id.UserID, mealID)
}

func (s *MealService) List(ctx context.Context, id auth.Identity, filter models.MealFilter) ([]*models.Meal, error) {
	filter, err := validateFilter(filter)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Meals(s.db).List(ctx, id.UserID, filter)
}

// Delete removes the meal's image on a best-effort basis, then the record.
// Only the record deletion decides the outcome.
func (s *MealService) Delete(ctx context.Context, id auth.Identity, mealID string) error {
	repo := s.repomanager.Meals(s.db)
	meal, err := repo.GetByID(ctx, id.UserID, mealID)
	if err != nil {
		return err
	}

	s.linker.Release(ctx, s.bucket, meal.ImageRef())

	if err := repo.Delete(ctx, id.UserID, mealID); err != nil {
		return err
	}
	s.logger.Info(ctx, "meal deleted", "meal_id", mealID, "user_id", id.UserID)
	return nil
}
