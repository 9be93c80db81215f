package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/foodlog/internal/common"
	"github.com/dmitrijs2005/foodlog/internal/server/models"
)

const (
	maxMealNameLength = 200
	minPasswordLength = 6
	// bcrypt ignores input past 72 bytes and newer versions reject it.
	maxPasswordBytes = 72
)

var (
	mealCategories = []string{models.CategoryBreakfast, models.CategoryLunch, models.CategoryDinner, models.CategorySnack}
	genders        = []string{models.GenderMale, models.GenderFemale, models.GenderOther}
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, fmt.Sprintf(format, args...))
}

// canonical returns the allowed value matching v case-insensitively.
func canonical(v string, allowed []string) (string, bool) {
	v = strings.TrimSpace(v)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a, true
		}
	}
	return "", false
}

func validateDate(field, v string) error {
	if _, err := time.Parse(common.DateLayout, v); err != nil {
		return invalid("%s must be a date in YYYY-MM-DD format", field)
	}
	return nil
}

// normalizeMeal trims and canonicalizes in. An empty date means today.
func normalizeMeal(in MealInput, now time.Time) (MealInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, invalid("meal name is required")
	}
	if utf8.RuneCountInString(in.Name) > maxMealNameLength {
		return in, invalid("meal name must be at most %d characters", maxMealNameLength)
	}

	category, ok := canonical(in.Category, mealCategories)
	if !ok {
		return in, invalid("category must be one of %s", strings.Join(mealCategories, ", "))
	}
	in.Category = category

	in.Date = strings.TrimSpace(in.Date)
	if in.Date == "" {
		in.Date = now.Format(common.DateLayout)
	}
	if err := validateDate("date", in.Date); err != nil {
		return in, err
	}
	return in, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", invalid("a valid email is required")
	}
	return email, nil
}

func normalizeProfile(in ProfileInput) (ProfileInput, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	if in.FullName == "" {
		return in, invalid("full name is required")
	}

	email, err := normalizeEmail(in.Email)
	if err != nil {
		return in, err
	}
	in.Email = email

	gender, ok := canonical(in.Gender, genders)
	if !ok {
		return in, invalid("gender must be one of %s", strings.Join(genders, ", "))
	}
	in.Gender = gender
	return in, nil
}

func normalizeRegister(in RegisterInput) (RegisterInput, error) {
	p, err := normalizeProfile(ProfileInput{FullName: in.FullName, Email: in.Email, Gender: in.Gender})
	if err != nil {
		return in, err
	}
	in.FullName, in.Email, in.Gender = p.FullName, p.Email, p.Gender

	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return in, invalid("password must be at least %d characters", minPasswordLength)
	}
	if len(in.Password) > maxPasswordBytes {
		return in, invalid("password must be at most %d bytes", maxPasswordBytes)
	}
	return in, nil
}

func validateFilter(f models.MealFilter) (models.MealFilter, error) {
	f.Query = strings.TrimSpace(f.Query)
	if f.From != "" {
		if err := validateDate("from", f.From); err != nil {
			return f, err
		}
	}
	if f.To != "" {
		if err := validateDate("to", f.To); err != nil {
			return f, err
		}
	}
	return f, nil
}
