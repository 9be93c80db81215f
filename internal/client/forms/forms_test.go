package forms

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/foodlog/internal/attach"
	"github.com/dmitrijs2005/foodlog/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMealAPI struct {
	block   chan struct{}
	started chan struct{}
	err     error
	warning string

	created []client.MealRequest
	updated []string
	images  []*client.Image
}

func (f *fakeMealAPI) wait() {
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeMealAPI) CreateMeal(_ context.Context, r client.MealRequest, photo *client.Image) (*client.Meal, string, error) {
	f.wait()
	f.created = append(f.created, r)
	f.images = append(f.images, photo)
	if f.err != nil {
		return nil, "", f.err
	}
	m := &client.Meal{ID: "m1", Name: r.Name, Category: r.Category, Date: r.Date}
	if photo != nil && f.warning == "" {
		m.ImageURL = "http://cdn/food-images/1.jpg"
	}
	return m, f.warning, nil
}

func (f *fakeMealAPI) UpdateMeal(_ context.Context, id string, r client.MealRequest, photo *client.Image) (*client.Meal, string, error) {
	f.wait()
	f.updated = append(f.updated, id)
	f.images = append(f.images, photo)
	if f.err != nil {
		return nil, "", f.err
	}
	return &client.Meal{ID: id, Name: r.Name, Category: r.Category, Date: r.Date, ImageURL: "http://cdn/food-images/2.jpg"}, f.warning, nil
}

func jpeg() *client.Image {
	return &client.Image{Name: "plate.jpg", MediaType: "image/jpeg", Data: []byte("x")}
}

func TestMealForm_CreateThenEdit(t *testing.T) {
	api := &fakeMealAPI{}
	f := NewMealForm(api, nil)
	f.Name, f.Category = "Soup", "Dinner"
	require.NoError(t, f.SelectImage(jpeg()))
	assert.Equal(t, "file://plate.jpg", f.Preview())

	meal, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "m1", meal.ID)
	assert.Equal(t, "http://cdn/food-images/1.jpg", f.Preview())
	require.Len(t, api.created, 1)

	// the staged image is consumed by a successful save
	f.Name = "Tomato soup"
	_, err = f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, api.updated)
	assert.Nil(t, api.images[1])
}

func TestMealForm_RejectsBadImageLocally(t *testing.T) {
	f := NewMealForm(&fakeMealAPI{}, nil)
	require.NoError(t, f.SelectImage(jpeg()))

	err := f.SelectImage(&client.Image{Name: "menu.pdf", MediaType: "application/pdf", Data: []byte("%PDF")})
	require.ErrorIs(t, err, attach.ErrUnsupportedMediaType)
	assert.Equal(t, "file://plate.jpg", f.Preview())
	assert.ErrorIs(t, f.LastError(), attach.ErrUnsupportedMediaType)

	err = f.SelectImage(&client.Image{Name: "big.png", MediaType: "image/png", Data: make([]byte, attach.MaxFileSize+1)})
	require.ErrorIs(t, err, attach.ErrPayloadTooLarge)
}

func TestMealForm_FailureLeavesStateUnchanged(t *testing.T) {
	saved := &client.Meal{ID: "m9", Name: "Toast", Category: "Breakfast", Date: "2024-03-01", ImageURL: "http://cdn/old.jpg"}
	api := &fakeMealAPI{err: errors.New("saving record failed")}
	f := NewMealForm(api, saved)
	f.Name = "Bagel"
	require.NoError(t, f.SelectImage(jpeg()))

	_, err := f.Submit(context.Background())
	require.Error(t, err)

	assert.Same(t, saved, f.Saved)
	assert.Equal(t, "file://plate.jpg", f.Preview())
	assert.EqualError(t, f.LastError(), "saving record failed")
	assert.False(t, f.Busy())

	// retry sends the same staged image
	api.err = nil
	_, err = f.Submit(context.Background())
	require.NoError(t, err)
	assert.Same(t, api.images[0], api.images[1])
	assert.NoError(t, f.LastError())
}

func TestMealForm_SecondSubmitWhileBusy(t *testing.T) {
	api := &fakeMealAPI{block: make(chan struct{}), started: make(chan struct{})}
	f := NewMealForm(api, nil)
	f.Name, f.Category = "Soup", "Dinner"

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()
	<-api.started

	assert.True(t, f.Busy())
	_, err := f.Submit(context.Background())
	require.ErrorIs(t, err, ErrBusy)

	close(api.block)
	require.NoError(t, <-done)
	assert.False(t, f.Busy())
	assert.Len(t, api.created, 1)
}

func TestMealForm_Warning(t *testing.T) {
	api := &fakeMealAPI{warning: "image upload failed, saved without the new image"}
	f := NewMealForm(api, nil)
	f.Name, f.Category = "Soup", "Dinner"
	require.NoError(t, f.SelectImage(jpeg()))

	_, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, f.Warning())
	assert.Empty(t, f.Preview())
}

type fakeProfileAPI struct {
	err error
}

func (f *fakeProfileAPI) UpdateProfile(_ context.Context, r client.ProfileRequest, avatar *client.Image) (*client.User, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	u := &client.User{ID: "u1", FullName: r.FullName, Email: r.Email, Gender: r.Gender}
	if avatar != nil {
		u.ImageURL = "http://cdn/profile-images/1.jpg"
	}
	return u, "", nil
}

func TestProfileForm(t *testing.T) {
	user := &client.User{ID: "u1", FullName: "Ann", Email: "ann@example.com", Gender: "Female", ImageURL: "http://cdn/old.jpg"}
	api := &fakeProfileAPI{err: errors.New("unauthorized")}
	f := NewProfileForm(api, user)
	assert.Equal(t, "http://cdn/old.jpg", f.Preview())

	f.FullName = "Anna"
	require.NoError(t, f.SelectImage(jpeg()))
	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Same(t, user, f.Saved)

	api.err = nil
	got, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.FullName)
	assert.Equal(t, "http://cdn/profile-images/1.jpg", f.Preview())
}
