package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"coursehub/internal/api/controllers"
	"coursehub/internal/config"
	"coursehub/internal/gateway"
	"coursehub/internal/metrics"
	"coursehub/internal/models/db_models"
	"coursehub/internal/queue"
	"coursehub/internal/repositories"
	"coursehub/internal/services"
	"coursehub/internal/testutil"
	"coursehub/pkg/middleware"
	"coursehub/pkg/utils"
)

const testSecret = "router-test-secret"

type stubGateway struct{}

func (stubGateway) CreatePrice(_ context.Context, payment *db_models.Payment) (gateway.PriceHandle, error) {
	amount, err := gateway.ResolvePrice(payment)
	if err != nil {
		return gateway.PriceHandle{}, err
	}
	return gateway.PriceHandle{Provider: "stub", PriceID: "price_" + payment.ID.String(), Amount: amount, Currency: "usd"}, nil
}

func (stubGateway) CreateCheckoutURL(_ context.Context, handle gateway.PriceHandle) (string, error) {
	return "https://checkout.test/" + handle.PriceID, nil
}

type recordingPublisher struct {
	mu   sync.Mutex
	jobs []queue.Job
}

func (p *recordingPublisher) Enqueue(_ context.Context, job queue.Job) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, job)
	return nil
}

type harness struct {
	t         *testing.T
	db        *gorm.DB
	router    *gin.Engine
	publisher *recordingPublisher
}

func newHarness(t *testing.T) *harness {
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	logger := zerolog.Nop()
	cfg := &config.Config{JWTSecret: testSecret, JWTTTL: time.Hour, AllowedOrigins: "*", PaymentRateLimit: 10}
	reg := metrics.NewRegistry()
	m := metrics.New(reg)
	publisher := &recordingPublisher{}

	userRepo := repositories.NewUserRepository(db)
	courseRepo := repositories.NewCourseRepository(db)
	lessonRepo := repositories.NewLessonRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	subRepo := repositories.NewSubscriptionRepository(db)

	subscriptions := services.NewSubscriptionService(subRepo, courseRepo, logger)

	router := NewRouter(RouterParams{
		Config:     cfg,
		Logger:     logger,
		Metrics:    m,
		Registry:   reg,
		UserFinder: userRepo,
		Limiter:    middleware.NewRateLimiter(nil, logger),
		Accounts:   controllers.NewAccountController(services.NewAccountService(userRepo, services.AuthConfigFrom(cfg), logger)),
		Users:      controllers.NewUserController(services.NewUserService(userRepo, paymentRepo, logger)),
		Courses:    controllers.NewCourseController(services.NewCourseService(courseRepo, subRepo, logger), subscriptions),
		Lessons:    controllers.NewLessonController(services.NewLessonService(lessonRepo, courseRepo, publisher, logger)),
		Payments:   controllers.NewPaymentController(services.NewPaymentService(paymentRepo, courseRepo, lessonRepo, stubGateway{}, m, logger)),
		Health:     controllers.NewHealthController(db),
	})

	return &harness{t: t, db: db, router: router, publisher: publisher}
}

func (h *harness) token(user *db_models.User) string {
	token, err := utils.CreateToken([]byte(testSecret), user.ID, string(user.Role), time.Hour)
	require.NoError(h.t, err)
	return token
}

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	TraceID string          `json:"trace_id"`
	Data    json.RawMessage `json:"data"`
}

func (h *harness) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(h.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestRegisterAndLogin(t *testing.T) {
	h := newHarness(t)

	w, env := h.do(http.MethodPost, "/accounts/register", "", map[string]any{
		"display_name": "Grace",
		"email":        "grace@example.com",
		"password":     "hopper-1906",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "success", env.Status)
	assert.NotEmpty(t, env.TraceID)

	w, _ = h.do(http.MethodPost, "/accounts/register", "", map[string]any{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = h.do(http.MethodPost, "/accounts/login", "", map[string]any{
		"email":    "grace@example.com",
		"password": "hopper-1906",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)

	w, _ = h.do(http.MethodGet, "/subscriptions", login.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = h.do(http.MethodPost, "/accounts/login", "", map[string]any{
		"email":    "grace@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCourseRoutes(t *testing.T) {
	h := newHarness(t)
	member := testutil.CreateUser(t, h.db, db_models.RoleMember)
	other := testutil.CreateUser(t, h.db, db_models.RoleMember)
	mod := testutil.CreateUser(t, h.db, db_models.RoleModerator)

	payload := map[string]any{"name": "Go in practice", "price": 100, "owner": other.ID}

	w, _ := h.do(http.MethodPost, "/courses", "", payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := h.do(http.MethodPost, "/courses", h.token(mod), payload)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, env.Message, "cannot create")

	w, env = h.do(http.MethodPost, "/courses", h.token(member), payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var course struct {
		ID    uuid.UUID `json:"id"`
		Owner uuid.UUID `json:"owner"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &course))
	assert.Equal(t, member.ID, course.Owner)

	w, env = h.do(http.MethodGet, "/courses", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"page":1,"page_size":10,"total":0}`, string(env.Data))

	w, _ = h.do(http.MethodGet, "/courses/"+course.ID.String(), h.token(other), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = h.do(http.MethodGet, "/courses/not-a-uuid", h.token(member), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = h.do(http.MethodPatch, "/courses/"+course.ID.String(), h.token(mod), map[string]any{"price": 90})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = h.do(http.MethodPut, "/courses/"+course.ID.String(), h.token(member), map[string]any{"name": "missing price"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = h.do(http.MethodGet, "/courses?page=0", h.token(member), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = h.do(http.MethodPost, "/courses/"+course.ID.String()+"/subscription", h.token(other), nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	w, _ = h.do(http.MethodDelete, "/courses/"+course.ID.String()+"/subscription", h.token(other), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = h.do(http.MethodDelete, "/courses/"+course.ID.String(), h.token(mod), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = h.do(http.MethodDelete, "/courses/"+course.ID.String(), h.token(member), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLessonCreateSchedulesNotification(t *testing.T) {
	h := newHarness(t)
	member := testutil.CreateUser(t, h.db, db_models.RoleMember)
	course := testutil.CreateCourse(t, h.db, member, 100)

	w, _ := h.do(http.MethodPost, "/lessons", h.token(member), map[string]any{
		"course": course.ID,
		"name":   "Goroutines",
		"price":  10,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, h.publisher.jobs, 1)
	assert.Equal(t, course.ID, h.publisher.jobs[0].CourseID)

	w, env := h.do(http.MethodGet, "/lessons?course="+course.ID.String(), h.token(member), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "Goroutines")
}

func TestPaymentRoutes(t *testing.T) {
	h := newHarness(t)
	seller := testutil.CreateUser(t, h.db, db_models.RoleMember)
	buyer := testutil.CreateUser(t, h.db, db_models.RoleMember)
	course := testutil.CreateCourse(t, h.db, seller, 100)
	lesson := testutil.CreateLesson(t, h.db, course, seller, 15)

	w, env := h.do(http.MethodPost, "/payments", h.token(buyer), map[string]any{"course": course.ID, "lesson": lesson.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "exactly one of course or lesson")

	w, _ = h.do(http.MethodPost, "/payments", h.token(buyer), map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = h.do(http.MethodPost, "/payments", h.token(buyer), map[string]any{"course": course.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var payment struct {
		ID          uuid.UUID `json:"id"`
		Price       int64     `json:"price"`
		Amount      int64     `json:"amount"`
		CheckoutURL string    `json:"checkout_url"`
		Owner       uuid.UUID `json:"owner"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payment))
	assert.EqualValues(t, 100, payment.Price)
	assert.EqualValues(t, 100, payment.Amount)
	assert.True(t, strings.HasPrefix(payment.CheckoutURL, "https://checkout.test/"))
	assert.Equal(t, buyer.ID, payment.Owner)

	w, env = h.do(http.MethodGet, "/users/"+buyer.ID.String(), h.token(buyer), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), payment.ID.String())

	w, env = h.do(http.MethodGet, "/users/"+buyer.ID.String(), h.token(seller), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, string(env.Data), "email")

	w, _ = h.do(http.MethodGet, "/payments?ordering=amount", h.token(buyer), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = h.do(http.MethodGet, "/payments?payment_method=transfer&ordering=-paid_at", h.token(buyer), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), payment.ID.String())

	w, env = h.do(http.MethodGet, "/payments", h.token(buyer), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), payment.ID.String())

	w, env = h.do(http.MethodGet, "/payments?payment_method=cash", h.token(buyer), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, string(env.Data), payment.ID.String())
}

func TestHealthAndMetrics(t *testing.T) {
	h := newHarness(t)

	w, _ := h.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = h.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "coursehub_http_requests_total")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
