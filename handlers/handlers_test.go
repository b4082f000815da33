package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"skillforge/ai"
	"skillforge/database"
	"skillforge/handlers"
	"skillforge/middleware"
	"skillforge/models"
	"skillforge/routes"
)

const testSecret = "test-secret"

type sentEmail struct {
	ToName  string
	ToEmail string
	Subject string
	HTML    string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (f *fakeSender) Send(toName, toEmail, subject, htmlContent string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{toName, toEmail, subject, htmlContent})
	return nil
}

func (f *fakeSender) all() []sentEmail {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentEmail, len(f.sent))
	copy(out, f.sent)
	return out
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeGenerator struct {
	response string
	err      error

	mu         sync.Mutex
	lastPrompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.lastPrompt = prompt
	f.mu.Unlock()
	return f.response, f.err
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestApp(t *testing.T, db *gorm.DB, mail *fakeSender, gen ai.Generator) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": "Something went wrong"})
		},
	})

	auth := middleware.Protected(testSecret)
	routes.UserRoutes(app, auth, &handlers.AuthHandler{DB: db, Mail: mail, JWTSecret: testSecret})
	routes.SkillRoutes(app, auth, &handlers.SkillHandler{DB: db}, &handlers.ReviewHandler{DB: db})
	routes.BookingRoutes(app, auth, &handlers.BookingHandler{DB: db, Mail: mail})
	routes.AIRoutes(app, auth, &handlers.AIHandler{Keywords: &ai.KeywordService{Gen: gen}})
	return app
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Name: name, Email: strings.ToLower(email), Password: string(hash)}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
