package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"civic-board/pkg/logger"
	"civic-board/services/poll/internal/entity"
	"civic-board/services/poll/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPollUseCase is a mock implementation of PollUseCase
type MockPollUseCase struct {
	mock.Mock
}

func (m *MockPollUseCase) CreatePoll(postID, userID, question string, options []string, closesAt *time.Time, allowsMultiple bool) (*entity.Poll, error) {
	args := m.Called(postID, userID, question, options, closesAt, allowsMultiple)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Poll), args.Error(1)
}

func (m *MockPollUseCase) UpdatePoll(pollID, userID, question string, options []string, closesAt *time.Time, allowsMultiple bool) (*entity.Poll, error) {
	args := m.Called(pollID, userID, question, options, closesAt, allowsMultiple)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Poll), args.Error(1)
}

func (m *MockPollUseCase) DeletePoll(pollID, userID string) error {
	args := m.Called(pollID, userID)
	return args.Error(0)
}

func (m *MockPollUseCase) GetPoll(postID, userID string) (*entity.PollView, error) {
	args := m.Called(postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PollView), args.Error(1)
}

func (m *MockPollUseCase) CastBallot(userID, pollID string, optionIDs []string) (*entity.PollView, error) {
	args := m.Called(userID, pollID, optionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PollView), args.Error(1)
}

var _ usecase.PollUseCase = (*MockPollUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestCreatePoll_Success(t *testing.T) {
	mockUseCase := new(MockPollUseCase)
	logger := logger.New()
	handler := NewPollHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/posts/:post_id/poll", func(c *gin.Context) {
		c.Set("user_id", "author-1")
		handler.CreatePoll(c)
	})

	mockPoll := &entity.Poll{
		ID:       "poll-1",
		PostID:   "post-1",
		Question: "Which plan?",
		Options: []entity.PollOption{
			{ID: "opt-a", Text: "A"},
			{ID: "opt-b", Text: "B"},
		},
	}
	mockUseCase.On("CreatePoll", "post-1", "author-1", "Which plan?", []string{"A", "B"}, (*time.Time)(nil), false).
		Return(mockPoll, nil)

	body := `{"question":"Which plan?","options":["A","B"]}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-1/poll", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "poll-1", response["id"])

	mockUseCase.AssertExpectations(t)
}

func TestCreatePoll_MissingBody(t *testing.T) {
	mockUseCase := new(MockPollUseCase)
	logger := logger.New()
	handler := NewPollHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/posts/:post_id/poll", handler.CreatePoll)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-1/poll", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCreatePoll_AlreadyExists(t *testing.T) {
	mockUseCase := new(MockPollUseCase)
	logger := logger.New()
	handler := NewPollHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/posts/:post_id/poll", handler.CreatePoll)

	mockUseCase.On("CreatePoll", "post-1", "", "Which plan?", []string{"A"}, (*time.Time)(nil), false).
		Return(nil, entity.ErrPollExists)

	body := `{"question":"Which plan?","options":["A"]}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-1/poll", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCreatePoll_PostNotFound(t *testing.T) {
	mockUseCase := new(MockPollUseCase)
	logger := logger.New()
	handler := NewPollHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/posts/:post_id/poll", handler.CreatePoll)

	mockUseCase.On("CreatePoll", "missing", "", "Which plan?", []string{"A"}, (*time.Time)(nil), false).
		Return(nil, entity.ErrPostNotFound)

	body := `{"question":"Which plan?","options":["A"]}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/missing/poll", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestUpdatePoll_Forbidden(t *testing.T) {
	mockUseCase := new(MockPollUseCase)
	logger := logger.New()
	handler := NewPollHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.PUT("/polls/:poll_id", func(c *gin.Context) {
		c.Set("user_id", "other-user")
		handler.UpdatePoll(c)
	})

	mockUseCase.On("UpdatePoll", "poll-1", "other-user", "New?", []string{"X"}, (*time.Time)(nil), false).
		Return(nil, entity.ErrForbidden)

	body := `{"question":"New?","options":["X"]}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/polls/poll-1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestDeletePoll_Success(t *testing.T) {
	mockUseCase := new(MockPollUseCase)
	logger := logger.New()
	handler := NewPollHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.DELETE("/polls/:poll_id", func(c *gin.Context) {
		c.Set("user_id", "author-1")
		handler.DeletePoll(c)
	})

	mockUseCase.On("DeletePoll", "poll-1", "author-1").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/polls/poll-1", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestDeletePoll_NotFound(t *testing.T) {
	mockUseCase := new(MockPollUseCase)
	logger := logger.New()
	handler := NewPollHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.DELETE("/polls/:poll_id", handler.DeletePoll)

	mockUseCase.On("DeletePoll", "missing", "").Return(entity.ErrPollNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/polls/missing", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetPoll_Success(t *testing.T) {
	mockUseCase := new(MockPollUseCase)
	logger := logger.New()
	handler := NewPollHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/posts/:post_id/poll", handler.GetPoll)

	mockView := &entity.PollView{
		PollID:   "poll-1",
		PostID:   "post-1",
		Question: "Which plan?",
		Options: []entity.OptionView{
			{ID: "opt-a", Text: "A", Tally: 3},
			{ID: "opt-b", Text: "B", Tally: 1},
		},
	}
	mockUseCase.On("GetPoll", "post-1", "").Return(mockView, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-1/poll", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "poll-1", response["poll_id"])
	options := response["options"].([]interface{})
	assert.Equal(t, 2, len(options))

	mockUseCase.AssertExpectations(t)
}

func TestGetPoll_NotFound(t *testing.T) {
	mockUseCase := new(MockPollUseCase)
	logger := logger.New()
	handler := NewPollHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/posts/:post_id/poll", handler.GetPoll)

	mockUseCase.On("GetPoll", "post-1", "").Return(nil, entity.ErrPollNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-1/poll", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCastBallot_Success(t *testing.T) {
	mockUseCase := new(MockPollUseCase)
	logger := logger.New()
	handler := NewPollHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/polls/:poll_id/ballots", func(c *gin.Context) {
		c.Set("user_id", "voter-1")
		handler.CastBallot(c)
	})

	mockView := &entity.PollView{
		PollID: "poll-1",
		Options: []entity.OptionView{
			{ID: "opt-a", Text: "A", Tally: 1, Selected: true},
		},
	}
	mockUseCase.On("CastBallot", "voter-1", "poll-1", []string{"opt-a"}).Return(mockView, nil)

	body := `{"option_ids":["opt-a"]}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/polls/poll-1/ballots", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	options := response["options"].([]interface{})
	selected := options[0].(map[string]interface{})["selected"]
	assert.Equal(t, true, selected)

	mockUseCase.AssertExpectations(t)
}

func TestCastBallot_Closed(t *testing.T) {
	mockUseCase := new(MockPollUseCase)
	logger := logger.New()
	handler := NewPollHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/polls/:poll_id/ballots", handler.CastBallot)

	mockUseCase.On("CastBallot", "", "poll-1", []string{"opt-a"}).Return(nil, entity.ErrPollClosed)

	body := `{"option_ids":["opt-a"]}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/polls/poll-1/ballots", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCastBallot_MultipleNotAllowed(t *testing.T) {
	mockUseCase := new(MockPollUseCase)
	logger := logger.New()
	handler := NewPollHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/polls/:poll_id/ballots", handler.CastBallot)

	mockUseCase.On("CastBallot", "", "poll-1", []string{"opt-a", "opt-b"}).
		Return(nil, entity.ErrMultipleNotAllowed)

	body := `{"option_ids":["opt-a","opt-b"]}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/polls/poll-1/ballots", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCastBallot_InvalidOption(t *testing.T) {
	mockUseCase := new(MockPollUseCase)
	logger := logger.New()
	handler := NewPollHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/polls/:poll_id/ballots", handler.CastBallot)

	mockUseCase.On("CastBallot", "", "poll-1", []string{"foreign-opt"}).
		Return(nil, entity.ErrInvalidOption)

	body := `{"option_ids":["foreign-opt"]}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/polls/poll-1/ballots", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCastBallot_MissingBody(t *testing.T) {
	mockUseCase := new(MockPollUseCase)
	logger := logger.New()
	handler := NewPollHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/polls/:poll_id/ballots", handler.CastBallot)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/polls/poll-1/ballots", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestNewPollHandler(t *testing.T) {
	mockUseCase := new(MockPollUseCase)
	logger := logger.New()
	handler := NewPollHandler(mockUseCase, logger)

	assert.NotNil(t, handler)
}
