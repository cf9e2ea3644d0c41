package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/domain"
	"studybuddy/internal/dto"
	"studybuddy/internal/handler"
	"studybuddy/internal/middleware"
)

const testSessionID = "01HZY3V8Q4J2K6M8N0P2R4T6W8"

// --- Manual Mocks ---

type MockSessionService struct {
	CreateFunc  func(ctx context.Context, subject, grade string) (domain.QuizSession, error)
	GetFunc     func(ctx context.Context, id string) (domain.QuizSession, error)
	StartFunc   func(ctx context.Context, id string, opts domain.StartOptions) (domain.QuizSession, error)
	AnswerFunc  func(ctx context.Context, id string, optionIndex int) (domain.QuizSession, error)
	RetryFunc   func(ctx context.Context, id string) (domain.QuizSession, error)
	AbandonFunc func(ctx context.Context, id string) error
}

func (m *MockSessionService) Create(ctx context.Context, subject, grade string) (domain.QuizSession, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, subject, grade)
	}
	panic("MockSessionService.CreateFunc not implemented")
}
func (m *MockSessionService) Get(ctx context.Context, id string) (domain.QuizSession, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	panic("MockSessionService.GetFunc not implemented")
}
func (m *MockSessionService) Start(ctx context.Context, id string, opts domain.StartOptions) (domain.QuizSession, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, id, opts)
	}
	panic("MockSessionService.StartFunc not implemented")
}
func (m *MockSessionService) Answer(ctx context.Context, id string, optionIndex int) (domain.QuizSession, error) {
	if m.AnswerFunc != nil {
		return m.AnswerFunc(ctx, id, optionIndex)
	}
	panic("MockSessionService.AnswerFunc not implemented")
}
func (m *MockSessionService) Retry(ctx context.Context, id string) (domain.QuizSession, error) {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, id)
	}
	panic("MockSessionService.RetryFunc not implemented")
}
func (m *MockSessionService) Abandon(ctx context.Context, id string) error {
	if m.AbandonFunc != nil {
		return m.AbandonFunc(ctx, id)
	}
	panic("MockSessionService.AbandonFunc not implemented")
}

type MockProgressService struct {
	HistoryFunc      func(ctx context.Context, subject string, limit int) ([]domain.ProgressRecord, error)
	DeleteRecordFunc func(ctx context.Context, id string) error
	StreakFunc       func(ctx context.Context) (domain.StudyStreak, error)
	ResetStreakFunc  func(ctx context.Context) error
}

func (m *MockProgressService) RecordCompletion(ctx context.Context, record *domain.ProgressRecord) (domain.StudyStreak, error) {
	panic("MockProgressService.RecordCompletion not expected in handler tests")
}
func (m *MockProgressService) History(ctx context.Context, subject string, limit int) ([]domain.ProgressRecord, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, subject, limit)
	}
	panic("MockProgressService.HistoryFunc not implemented")
}
func (m *MockProgressService) DeleteRecord(ctx context.Context, id string) error {
	if m.DeleteRecordFunc != nil {
		return m.DeleteRecordFunc(ctx, id)
	}
	panic("MockProgressService.DeleteRecordFunc not implemented")
}
func (m *MockProgressService) Streak(ctx context.Context) (domain.StudyStreak, error) {
	if m.StreakFunc != nil {
		return m.StreakFunc(ctx)
	}
	panic("MockProgressService.StreakFunc not implemented")
}
func (m *MockProgressService) ResetStreak(ctx context.Context) error {
	if m.ResetStreakFunc != nil {
		return m.ResetStreakFunc(ctx)
	}
	panic("MockProgressService.ResetStreakFunc not implemented")
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(ctx context.Context) error { return p.err }

type stubCache struct {
	domain.Cache
	pingErr error
}

func (c stubCache) Ping(ctx context.Context) error { return c.pingErr }

func setupApp(sessions domain.SessionService, progress domain.ProgressService, db handler.Pinger, cache domain.Cache) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.RegisterRoutes(app,
		handler.NewSessionHandler(sessions),
		handler.NewProgressHandler(progress),
		handler.NewHealthHandler(db, cache))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func readySession() domain.QuizSession {
	s := domain.NewQuizSession(testSessionID, "Math", "5")
	s.State = domain.StateReady
	s.Options = domain.StartOptions{Difficulty: "easy"}
	s.QuestionSet = &domain.QuestionSet{
		Questions: []domain.Question{
			{Text: "2+2?", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: 1, Explanation: "four"},
		},
		Topics:           []string{"Arithmetic"},
		ImprovementAreas: []domain.ImprovementArea{{Topic: "Arithmetic", Description: "Review arithmetic"}},
	}
	return s.Snapshot()
}

func TestCreateSession(t *testing.T) {
	sessions := &MockSessionService{
		CreateFunc: func(ctx context.Context, subject, grade string) (domain.QuizSession, error) {
			assert.Equal(t, "Math", subject)
			assert.Equal(t, "5", grade)
			return domain.NewQuizSession(testSessionID, subject, grade).Snapshot(), nil
		},
	}
	app := setupApp(sessions, &MockProgressService{}, stubPinger{}, stubCache{})

	resp, body := doJSON(t, app, http.MethodPost, "/api/sessions", dto.CreateSessionRequest{Subject: "Math", Grade: "5"})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var got dto.SessionResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, testSessionID, got.ID)
	assert.Equal(t, "not_started", got.State)
}

func TestCreateSession_ValidationError(t *testing.T) {
	app := setupApp(&MockSessionService{}, &MockProgressService{}, stubPinger{}, stubCache{})

	resp, body := doJSON(t, app, http.MethodPost, "/api/sessions", dto.CreateSessionRequest{Subject: ""})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var got middleware.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "VALIDATION_ERROR", got.Code)
	assert.Len(t, got.Errors, 2)
}

func TestGetSession_HidesSolutions(t *testing.T) {
	sessions := &MockSessionService{
		GetFunc: func(ctx context.Context, id string) (domain.QuizSession, error) {
			return readySession(), nil
		},
	}
	app := setupApp(sessions, &MockProgressService{}, stubPinger{}, stubCache{})

	resp, body := doJSON(t, app, http.MethodGet, "/api/sessions/"+testSessionID, nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(body), "correct_answer")
	assert.NotContains(t, string(body), "four")
	assert.Contains(t, string(body), `"state":"ready"`)
}

func TestGetSession_InvalidID(t *testing.T) {
	app := setupApp(&MockSessionService{}, &MockProgressService{}, stubPinger{}, stubCache{})

	resp, _ := doJSON(t, app, http.MethodGet, "/api/sessions/not-an-id", nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSessionErrorsMapToStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "not found", err: domain.NewSessionNotFoundError(testSessionID), wantStatus: http.StatusNotFound, wantCode: "SESSION_NOT_FOUND"},
		{name: "invalid state", err: domain.NewInvalidStateError("retry", domain.StateReady), wantStatus: http.StatusConflict, wantCode: "INVALID_STATE"},
		{name: "retry exhausted", err: domain.NewRetryExhaustedError(3), wantStatus: http.StatusConflict, wantCode: "RETRY_EXHAUSTED"},
		{name: "busy", err: domain.NewSessionBusyError(testSessionID), wantStatus: http.StatusConflict, wantCode: "SESSION_BUSY"},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &MockSessionService{
				RetryFunc: func(ctx context.Context, id string) (domain.QuizSession, error) {
					return domain.QuizSession{}, tt.err
				},
			}
			app := setupApp(sessions, &MockProgressService{}, stubPinger{}, stubCache{})

			resp, body := doJSON(t, app, http.MethodPost, "/api/sessions/"+testSessionID+"/retry", nil)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			var got middleware.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}
}

func TestStartSession(t *testing.T) {
	sessions := &MockSessionService{
		StartFunc: func(ctx context.Context, id string, opts domain.StartOptions) (domain.QuizSession, error) {
			assert.Equal(t, testSessionID, id)
			assert.Equal(t, domain.StartOptions{Difficulty: "easy", SourceText: "Cells divide."}, opts)
			return readySession(), nil
		},
	}
	app := setupApp(sessions, &MockProgressService{}, stubPinger{}, stubCache{})

	resp, body := doJSON(t, app, http.MethodPost, "/api/sessions/"+testSessionID+"/start",
		dto.StartSessionRequest{Difficulty: "easy", SourceText: "Cells divide."})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got dto.SessionResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 1, got.TotalQuestions)
}

func TestStartSession_ErroredIsNotAnHTTPError(t *testing.T) {
	sessions := &MockSessionService{
		StartFunc: func(ctx context.Context, id string, opts domain.StartOptions) (domain.QuizSession, error) {
			s := domain.NewQuizSession(id, "Math", "5")
			s.State = domain.StateErrored
			s.RetryCount = 1
			s.ErrorMessage = "Server error: 500: model not loaded"
			return s.Snapshot(), nil
		},
	}
	app := setupApp(sessions, &MockProgressService{}, stubPinger{}, stubCache{})

	resp, body := doJSON(t, app, http.MethodPost, "/api/sessions/"+testSessionID+"/start", dto.StartSessionRequest{Difficulty: "hard"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got dto.SessionResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "errored", got.State)
	assert.Equal(t, "Server error: 500: model not loaded", got.ErrorMessage)
	assert.True(t, got.CanRetry)
}

func TestSubmitAnswer(t *testing.T) {
	sessions := &MockSessionService{
		AnswerFunc: func(ctx context.Context, id string, optionIndex int) (domain.QuizSession, error) {
			if optionIndex > 3 {
				return domain.QuizSession{}, domain.NewInvalidAnswerError("option index 7 out of range")
			}
			s := readySession()
			s.State = domain.StateAnswering
			s.Answers = []domain.AnswerRecord{{QuestionIndex: 0, SelectedOption: optionIndex, Correct: optionIndex == 1}}
			s.CurrentIndex = 1
			return s, nil
		},
	}
	app := setupApp(sessions, &MockProgressService{}, stubPinger{}, stubCache{})
	path := "/api/sessions/" + testSessionID + "/answers"

	resp, body := doJSON(t, app, http.MethodPost, path, map[string]int{"option_index": 1})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got dto.SessionResponse
	require.NoError(t, json.Unmarshal(body, &got))
	require.NotNil(t, got.Questions[0].Correct)
	assert.True(t, *got.Questions[0].Correct)
	assert.Equal(t, "four", got.Questions[0].Explanation)

	resp, _ = doJSON(t, app, http.MethodPost, path, map[string]int{"option_index": 7})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, path, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAbandonSession(t *testing.T) {
	var abandoned string
	sessions := &MockSessionService{
		AbandonFunc: func(ctx context.Context, id string) error {
			abandoned = id
			return nil
		},
	}
	app := setupApp(sessions, &MockProgressService{}, stubPinger{}, stubCache{})

	resp, _ := doJSON(t, app, http.MethodDelete, "/api/sessions/"+testSessionID, nil)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, testSessionID, abandoned)
}

func TestGetFeedbackHistory(t *testing.T) {
	at := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	progress := &MockProgressService{
		HistoryFunc: func(ctx context.Context, subject string, limit int) ([]domain.ProgressRecord, error) {
			assert.Equal(t, "Math", subject)
			assert.Equal(t, 10, limit)
			return []domain.ProgressRecord{{ID: "r1", Subject: "Math", Score: 0.75, CompletedAt: at}}, nil
		},
	}
	app := setupApp(&MockSessionService{}, progress, stubPinger{}, stubCache{})

	resp, body := doJSON(t, app, http.MethodGet, "/api/feedback-history?subject=Math&limit=10", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got dto.FeedbackHistoryResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, 0.75, got.Records[0].Score)
	assert.Equal(t, []string{}, got.Records[0].Topics)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/feedback-history?limit=1000", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/feedback-history?limit=ten", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var verr middleware.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(body, &verr))
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "limit", verr.Errors[0].Field)
}

func TestDeleteFeedbackRecord_NotFound(t *testing.T) {
	progress := &MockProgressService{
		DeleteRecordFunc: func(ctx context.Context, id string) error {
			return domain.NewNotFoundError("Feedback record not found with ID: " + id)
		},
	}
	app := setupApp(&MockSessionService{}, progress, stubPinger{}, stubCache{})

	resp, _ := doJSON(t, app, http.MethodDelete, "/api/feedback-history/"+testSessionID, nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStreakEndpoints(t *testing.T) {
	reset := false
	progress := &MockProgressService{
		StreakFunc: func(ctx context.Context) (domain.StudyStreak, error) {
			return domain.StudyStreak{Count: 3, LastStudyAt: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)}, nil
		},
		ResetStreakFunc: func(ctx context.Context) error {
			reset = true
			return nil
		},
	}
	app := setupApp(&MockSessionService{}, progress, stubPinger{}, stubCache{})

	resp, body := doJSON(t, app, http.MethodGet, "/api/progress/streak", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got dto.StreakResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 3, got.Count)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/progress/streak", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.True(t, reset)
}

func TestHealth(t *testing.T) {
	app := setupApp(&MockSessionService{}, &MockProgressService{}, stubPinger{}, stubCache{})
	resp, _ := doJSON(t, app, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	app = setupApp(&MockSessionService{}, &MockProgressService{}, stubPinger{}, stubCache{pingErr: errors.New("redis down")})
	resp, body := doJSON(t, app, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	var got dto.HealthResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "unavailable", got.Cache)
	assert.Equal(t, "ok", got.Database)
}
