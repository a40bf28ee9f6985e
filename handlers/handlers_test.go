package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webcraft/models"
	"webcraft/services/notification"
	"webcraft/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeService struct {
	delivery models.Delivery
	err      error
	links    map[string]string

	contacts []models.ContactMessage
	bookings []models.ConsultationRequest
	projects []models.ProjectRequest
	signups  []models.NewsletterSignup
}

func (f *fakeService) SendContactMessage(_ context.Context, m models.ContactMessage) (models.Delivery, error) {
	f.contacts = append(f.contacts, m)
	return f.delivery, f.err
}

func (f *fakeService) BookConsultation(_ context.Context, r models.ConsultationRequest) (models.Delivery, error) {
	f.bookings = append(f.bookings, r)
	return f.delivery, f.err
}

func (f *fakeService) SubmitProject(_ context.Context, p models.ProjectRequest) (models.Delivery, error) {
	f.projects = append(f.projects, p)
	return f.delivery, f.err
}

func (f *fakeService) Subscribe(_ context.Context, n models.NewsletterSignup) (models.Delivery, error) {
	f.signups = append(f.signups, n)
	return f.delivery, f.err
}

func (f *fakeService) MeetLink(_ context.Context, id string) (string, error) {
	if link, ok := f.links[id]; ok {
		return link, nil
	}
	return "", notification.ErrNotFound
}

func (f *fakeService) SendReminder(context.Context, models.ConsultationReminder) error { return nil }

func newRouter(svc notification.NotificationService) *gin.Engine {
	r := gin.New()
	r.Use(utils.ErrorHandler())
	consultation := NewConsultationHandler(svc)
	r.POST("/api/contact", NewContactHandler(svc).Submit)
	r.POST("/api/consultation", consultation.Book)
	r.GET("/api/consultation/:id", consultation.Get)
	r.POST("/api/project", NewProjectHandler(svc).Submit)
	r.POST("/api/newsletter", NewNewsletterHandler(svc).Subscribe)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return w, out
}

func validConsultation() models.ConsultationRequest {
	return models.ConsultationRequest{
		Name:  "Jane",
		Email: "jane@acme.com",
		Phone: "555-1234",
		Date:  "2030-03-04T00:00:00Z",
		Time:  "10:00 AM",
	}
}

func validProject() models.ProjectRequest {
	return models.ProjectRequest{
		ProjectType:  models.ProjectWebsite,
		BusinessInfo: models.BusinessInfo{Name: "Acme", Industry: "Retail", Size: "1-10"},
		Requirements: models.Requirements{Design: "minimal", Timeline: "1-2", Budget: "5k-10k"},
		Technical:    models.Technical{Hosting: "vercel", Domain: "have"},
		Consultation: models.ConsultationDetails{
			Name: "Jane", Email: "jane@acme.com", Date: "2030-03-04T00:00:00Z", Time: "10:00 AM",
		},
	}
}

func TestContactSubmit(t *testing.T) {
	svc := &fakeService{}
	w, body := do(t, newRouter(svc), http.MethodPost, "/api/contact", models.ContactMessage{
		Name: "Jane", Email: "jane@acme.com", Service: "SEO", Message: "Hi",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body["message"])
	assert.NotContains(t, body, "meetLink")
	require.Len(t, svc.contacts, 1)
	assert.Equal(t, "SEO", svc.contacts[0].Service)
}

func TestContactValidationNeverReachesService(t *testing.T) {
	svc := &fakeService{}
	w, body := do(t, newRouter(svc), http.MethodPost, "/api/contact", models.ContactMessage{
		Name: "Jane", Email: "not-an-email", Service: "SEO", Message: "Hi",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid email address", body["message"])
	assert.Equal(t, map[string]any{"email": "Invalid email address"}, body["errors"])
	assert.Empty(t, svc.contacts)
}

func TestMalformedBody(t *testing.T) {
	svc := &fakeService{}
	w, body := do(t, newRouter(svc), http.MethodPost, "/api/newsletter", "{")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgInvalidBody, body["message"])
	assert.Empty(t, svc.signups)
}

func TestConsultationBookReturnsMeetLink(t *testing.T) {
	svc := &fakeService{delivery: models.Delivery{BookingID: "b1", MeetLink: "https://meet.example/abc"}}
	w, body := do(t, newRouter(svc), http.MethodPost, "/api/consultation", validConsultation())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://meet.example/abc", body["meetLink"])
	assert.Equal(t, "b1", body["bookingId"])
	require.Len(t, svc.bookings, 1)
}

func TestConsultationBookWithoutMeetLink(t *testing.T) {
	svc := &fakeService{delivery: models.Delivery{BookingID: "b1"}}
	w, body := do(t, newRouter(svc), http.MethodPost, "/api/consultation", validConsultation())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, body, "meetLink")
}

func TestConsultationBookErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"bad schedule", fmt.Errorf("%w: slot", notification.ErrInvalidSchedule), http.StatusBadRequest},
		{"delivery failed", fmt.Errorf("consultation: %w", notification.ErrDeliveryFailed), http.StatusInternalServerError},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			w, body := do(t, newRouter(svc), http.MethodPost, "/api/consultation", validConsultation())
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestConsultationBookRequiresSlot(t *testing.T) {
	svc := &fakeService{}
	req := validConsultation()
	req.Time = ""
	w, body := do(t, newRouter(svc), http.MethodPost, "/api/consultation", req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please select a time slot", body["message"])
	assert.Empty(t, svc.bookings)
}

func TestPartialDeliveryIsReportedAsSuccess(t *testing.T) {
	svc := &fakeService{delivery: models.Delivery{Partial: true, Failures: []string{"admin"}}}
	w, _ := do(t, newRouter(svc), http.MethodPost, "/api/project", validProject())

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.projects, 1)
}

func TestConsultationGet(t *testing.T) {
	svc := &fakeService{links: map[string]string{"b1": "https://meet.example/abc"}}
	r := newRouter(svc)

	w, body := do(t, r, http.MethodGet, "/api/consultation/b1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://meet.example/abc", body["meetLink"])

	w, _ = do(t, r, http.MethodGet, "/api/consultation/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectSubmitValidation(t *testing.T) {
	svc := &fakeService{}
	req := validProject()
	req.ProjectType = "spaceship"
	req.Technical.Hosting = ""

	w, body := do(t, newRouter(svc), http.MethodPost, "/api/project", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "projectType")
	assert.Contains(t, errs, "technical.hosting")
	assert.Empty(t, svc.projects)
}

func TestNewsletterAlreadySubscribed(t *testing.T) {
	svc := &fakeService{delivery: models.Delivery{AlreadySubscribed: true}}
	w, body := do(t, newRouter(svc), http.MethodPost, "/api/newsletter", models.NewsletterSignup{Email: "jane@acme.com"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body["message"], "already subscribed")
}

func TestHealthHandler(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	monitor := utils.NewHealthMonitor(client)
	monitor.Check(context.Background())

	r := gin.New()
	r.GET("/health", HealthHandler(monitor))
	w, body := do(t, r, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["redis"])

	checkedAt, err := time.Parse(time.RFC3339Nano, body["checkedAt"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), checkedAt, time.Minute)
}
