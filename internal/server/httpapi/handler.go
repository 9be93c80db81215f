// Package httpapi is the JSON/multipart HTTP transport of the foodlog
// server, built on gin.
package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/foodlog/internal/attach"
	"github.com/dmitrijs2005/foodlog/internal/common"
	"github.com/dmitrijs2005/foodlog/internal/logging"
	"github.com/dmitrijs2005/foodlog/internal/server/auth"
	"github.com/dmitrijs2005/foodlog/internal/server/models"
	"github.com/dmitrijs2005/foodlog/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errBadForm = fmt.Errorf("%w: malformed form", common.ErrorValidation)

// UserService is the account side of the API.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput, avatar *attach.File) (*services.UserResult, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	GetProfile(ctx context.Context, id auth.Identity) (*models.User, error)
	UpdateProfile(ctx context.Context, id auth.Identity, in services.ProfileInput, avatar *attach.File) (*services.UserResult, error)
}

// MealService is the meal log side of the API.
type MealService interface {
	Create(ctx context.Context, id auth.Identity, in services.MealInput, photo *attach.File) (*services.MealResult, error)
	Update(ctx context.Context, id auth.Identity, mealID string, in services.MealInput, photo *attach.File) (*services.MealResult, error)
	Get(ctx context.Context, id auth.Identity, mealID string) (*models.Meal, error)
	List(ctx context.Context, id auth.Identity, filter models.MealFilter) ([]*models.Meal, error)
	Delete(ctx context.Context, id auth.Identity, mealID string) error
}

// Handler implements the HTTP endpoints on top of the services.
type Handler struct {
	users  UserService
	meals  MealService
	logger logging.Logger
}

// NewHandler constructs a Handler.
func NewHandler(us UserService, ms MealService, l logging.Logger) *Handler {
	return &Handler{users: us, meals: ms, logger: l.With("module", "http")}
}

func (h *Handler) register(c *gin.Context) {
	image, err := readImage(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	res, err := h.users.Register(c.Request.Context(), services.RegisterInput{
		FullName: c.PostForm("fullname"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		Gender:   c.PostForm("gender"),
	}, image)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, userEnvelope{User: toUser(res.User), Warning: warningText(res.Warning)})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, fmt.Errorf("%w: email and password are required", common.ErrorValidation))
		return
	}

	pair, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTokens(pair))
}

func (h *Handler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, fmt.Errorf("%w: refresh_token is required", common.ErrorValidation))
		return
	}

	pair, err := h.users.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTokens(pair))
}

func (h *Handler) getProfile(c *gin.Context) {
	user, err := h.users.GetProfile(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toUser(user))
}

func (h *Handler) updateProfile(c *gin.Context) {
	image, err := readImage(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	res, err := h.users.UpdateProfile(c.Request.Context(), identity(c), services.ProfileInput{
		FullName: c.PostForm("fullname"),
		Email:    c.PostForm("email"),
		Gender:   c.PostForm("gender"),
	}, image)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, userEnvelope{User: toUser(res.User), Warning: warningText(res.Warning)})
}

func (h *Handler) listMeals(c *gin.Context) {
	meals, err := h.meals.List(c.Request.Context(), identity(c), models.MealFilter{
		Query: c.Query("q"),
		From:  c.Query("from"),
		To:    c.Query("to"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]mealResponse, 0, len(meals))
	for _, m := range meals {
		out = append(out, toMeal(m))
	}
	c.JSON(http.StatusOK, out)
}

func mealInput(c *gin.Context) services.MealInput {
	return services.MealInput{
		Name:     c.PostForm("name"),
		Category: c.PostForm("category"),
		Date:     c.PostForm("date"),
	}
}

func (h *Handler) createMeal(c *gin.Context) {
	image, err := readImage(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	res, err := h.meals.Create(c.Request.Context(), identity(c), mealInput(c), image)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, mealEnvelope{Meal: toMeal(res.Meal), Warning: warningText(res.Warning)})
}

// mealID rejects ids that cannot exist before they reach the record store.
func (h *Handler) mealID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		h.fail(c, common.ErrorNotFound)
		return "", false
	}
	return id, true
}

func (h *Handler) getMeal(c *gin.Context) {
	id, ok := h.mealID(c)
	if !ok {
		return
	}
	meal, err := h.meals.Get(c.Request.Context(), identity(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toMeal(meal))
}

func (h *Handler) updateMeal(c *gin.Context) {
	id, ok := h.mealID(c)
	if !ok {
		return
	}
	image, err := readImage(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	res, err := h.meals.Update(c.Request.Context(), identity(c), id, mealInput(c), image)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mealEnvelope{Meal: toMeal(res.Meal), Warning: warningText(res.Warning)})
}

func (h *Handler) deleteMeal(c *gin.Context) {
	id, ok := h.mealID(c)
	if !ok {
		return
	}
	if err := h.meals.Delete(c.Request.Context(), identity(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
