package client

import "time"

type User struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullname"`
	Email     string    `json:"email"`
	Gender    string    `json:"gender"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Meal struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Date      string    `json:"date"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	FullName string
	Email    string
	Password string
	Gender   string
}

type ProfileRequest struct {
	FullName string
	Email    string
	Gender   string
}

type MealRequest struct {
	Name     string
	Category string
	Date     string
}

type tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type errorBody struct {
	Error string `json:"error"`
}

type userEnvelope struct {
	User    User   `json:"user"`
	Warning string `json:"warning,omitempty"`
}

type mealEnvelope struct {
	Meal    Meal   `json:"meal"`
	Warning string `json:"warning,omitempty"`
}
