package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/dmitrijs2005/foodlog/internal/attach"
	"github.com/dmitrijs2005/foodlog/internal/logging"
	"github.com/dmitrijs2005/foodlog/internal/objectstore/memstore"
	"github.com/dmitrijs2005/foodlog/internal/server/config"
	"github.com/dmitrijs2005/foodlog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/foodlog/internal/server/repositories/repotest"
	"github.com/dmitrijs2005/foodlog/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router http.Handler
	store  *memstore.Store
	cfg    *config.Config
}

func newTestEnv(t *testing.T, policy attach.Policy) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.LoadDefaults()

	db := repotest.OpenSQLite(t)
	rm := &repomanager.SQLiteRepositoryManager{}
	store := memstore.New()
	start := time.UnixMilli(1709251200000)
	linker := attach.New(store,
		attach.WithPolicy(policy),
		attach.WithClock(attach.NewClock(func() time.Time { return start })),
		attach.WithLogger(logging.Nop{}),
	)

	h := NewHandler(
		services.NewUserService(db, rm, linker, cfg, logging.Nop{}),
		services.NewMealService(db, rm, linker, cfg.MealsBucket, logging.Nop{}),
		logging.Nop{},
	)
	return &testEnv{
		router: NewRouter(h, RouterOptions{Secret: []byte(cfg.SecretKey), DB: db}),
		store:  store,
		cfg:    cfg,
	}
}

type upload struct {
	name      string
	mediaType string
	data      []byte
}

func jpegUpload() *upload {
	return &upload{name: "plate.jpg", mediaType: "image/jpeg", data: []byte("jpeg-bytes")}
}

func multipartBody(t *testing.T, fields map[string]string, file *upload) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="`+ImageField+`"; filename="`+file.name+`"`)
		h.Set("Content-Type", file.mediaType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

// performRequest runs one request against the router with an optional
// bearer token.
func performRequest(r http.Handler, method, path string, body io.Reader, token, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) form(t *testing.T, method, path, token string, fields map[string]string, file *upload) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := multipartBody(t, fields, file)
	return performRequest(e.router, method, path, body, token, ct)
}

func (e *testEnv) json(t *testing.T, method, path, token string, v any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if v != nil {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	return performRequest(e.router, method, path, body, token, "application/json")
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// signup registers a user and logs in, returning the access token.
func (e *testEnv) signup(t *testing.T, email string) string {
	t.Helper()
	rec := e.form(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"fullname": "Test User",
		"email":    email,
		"password": "secret1",
		"gender":   "Other",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.json(t, http.MethodPost, "/api/auth/login", "", loginRequest{Email: email, Password: "secret1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[tokenResponse](t, rec).AccessToken
}
