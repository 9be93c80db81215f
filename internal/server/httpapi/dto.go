package httpapi

import (
	"time"

	"github.com/dmitrijs2005/foodlog/internal/server/models"
	"github.com/dmitrijs2005/foodlog/internal/server/services"
)

type errorResponse struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type userResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullname"`
	Email     string    `json:"email"`
	Gender    string    `json:"gender"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type mealResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Date      string    `json:"date"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// userEnvelope and mealEnvelope answer mutations; Warning is set when the
// record was saved but its image was not.
type userEnvelope struct {
	User    userResponse `json:"user"`
	Warning string       `json:"warning,omitempty"`
}

type mealEnvelope struct {
	Meal    mealResponse `json:"meal"`
	Warning string       `json:"warning,omitempty"`
}

func toUser(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Gender:    u.Gender,
		ImageURL:  u.ImageURL,
		CreatedAt: u.CreatedAt,
	}
}

func toMeal(m *models.Meal) mealResponse {
	return mealResponse{
		ID:        m.ID,
		Name:      m.Name,
		Category:  m.Category,
		Date:      m.Date,
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toTokens(p *services.TokenPair) tokenResponse {
	return tokenResponse{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken}
}
