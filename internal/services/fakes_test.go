package services

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"coursehub/internal/access"
	"coursehub/internal/gateway"
	"coursehub/internal/metrics"
	"coursehub/internal/models/db_models"
	"coursehub/internal/queue"
	"coursehub/internal/repositories"
	"coursehub/internal/testutil"
	"coursehub/pkg/utils"
)

var firstPage = utils.Pagination{Page: 1, PageSize: utils.DefaultPageSize}

type fakeGateway struct {
	createPriceFunc       func(ctx context.Context, payment *db_models.Payment) (gateway.PriceHandle, error)
	createCheckoutURLFunc func(ctx context.Context, handle gateway.PriceHandle) (string, error)
}

func (f *fakeGateway) CreatePrice(ctx context.Context, payment *db_models.Payment) (gateway.PriceHandle, error) {
	if f.createPriceFunc != nil {
		return f.createPriceFunc(ctx, payment)
	}
	price, err := gateway.ResolvePrice(payment)
	if err != nil {
		return gateway.PriceHandle{}, err
	}
	return gateway.PriceHandle{Provider: "fake", PriceID: "price_fake", Amount: price, Currency: "usd"}, nil
}

func (f *fakeGateway) CreateCheckoutURL(ctx context.Context, handle gateway.PriceHandle) (string, error) {
	if f.createCheckoutURLFunc != nil {
		return f.createCheckoutURLFunc(ctx, handle)
	}
	return "https://pay.example.com/" + handle.PriceID, nil
}

type sentMail struct {
	Subject    string
	Body       string
	Recipients []string
}

type fakeMailer struct {
	mu       sync.Mutex
	sent     []sentMail
	sendFunc func(recipients []string) error
}

func (f *fakeMailer) Send(_ context.Context, subject, body string, recipients []string) error {
	if f.sendFunc != nil {
		if err := f.sendFunc(recipients); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{Subject: subject, Body: body, Recipients: recipients})
	return nil
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []queue.Job
	err  error
}

func (f *fakePublisher) Enqueue(_ context.Context, job queue.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

type fixture struct {
	db        *gorm.DB
	courses   repositories.CourseRepository
	lessons   repositories.LessonRepository
	payments  repositories.PaymentRepository
	subs      repositories.SubscriptionRepository
	users     repositories.UserRepository
	metrics   *metrics.Metrics
	publisher *fakePublisher
	gateway   *fakeGateway
	mailer    *fakeMailer
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	return &fixture{
		db:        db,
		courses:   repositories.NewCourseRepository(db),
		lessons:   repositories.NewLessonRepository(db),
		payments:  repositories.NewPaymentRepository(db),
		subs:      repositories.NewSubscriptionRepository(db),
		users:     repositories.NewUserRepository(db),
		metrics:   metrics.NewNop(),
		publisher: &fakePublisher{},
		gateway:   &fakeGateway{},
		mailer:    &fakeMailer{},
	}
}

func (f *fixture) courseService() CourseServiceInterface {
	return NewCourseService(f.courses, f.subs, zerolog.Nop())
}

func (f *fixture) lessonService() LessonServiceInterface {
	return NewLessonService(f.lessons, f.courses, f.publisher, zerolog.Nop())
}

func (f *fixture) paymentService() PaymentService {
	return NewPaymentService(f.payments, f.courses, f.lessons, f.gateway, f.metrics, zerolog.Nop())
}

func (f *fixture) notifier() ISubscriptionNotifier {
	return NewSubscriptionNotifier(f.courses, f.subs, f.mailer, f.metrics, zerolog.Nop())
}

func (f *fixture) user(t *testing.T, role db_models.UserRole) (*db_models.User, access.Actor) {
	u := testutil.CreateUser(t, f.db, role)
	return u, access.ForUser(u)
}

func int64Ptr(v int64) *int64 { return &v }
