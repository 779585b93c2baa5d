package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/fitness-challenge-api/internal/database"
	"github.com/yukikurage/fitness-challenge-api/internal/models"
	"github.com/yukikurage/fitness-challenge-api/internal/repository"
	"github.com/yukikurage/fitness-challenge-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type completionTestEnv struct {
	db      *gorm.DB
	handler *CompletionHandler
}

func setupCompletionTestEnv(t *testing.T) completionTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.FitnessChallenge{},
		&models.UserCompletion{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	completionRepo := repository.NewCompletionRepository(db)
	completionService := services.NewCompletionService(completionRepo)
	handler := NewCompletionHandler(completionService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	gin.SetMode(gin.TestMode)

	return completionTestEnv{db: db, handler: handler}
}

func (env completionTestEnv) seedCompletions(t *testing.T, n int) {
	t.Helper()

	user := &models.User{Username: "u", Email: "u@example.com", PasswordHash: "x"}
	require.NoError(t, env.db.Create(user).Error)

	for i := 0; i < n; i++ {
		challenge := &models.FitnessChallenge{
			Challenge:   fmt.Sprintf("Challenge %d", i),
			Skillpoints: 10,
			CreatorID:   user.ID,
		}
		require.NoError(t, env.db.Create(challenge).Error)

		completion := &models.UserCompletion{
			ChallengeID: challenge.ID,
			UserID:      user.ID,
			Completed:   true,
			ReviewAmt:   3,
			Notes:       "Done",
		}
		require.NoError(t, env.db.Create(completion).Error)
	}
}

func TestCompletionHandler_List_Paginated(t *testing.T) {
	env := setupCompletionTestEnv(t)
	env.seedCompletions(t, 25)

	r := gin.New()
	r.GET("/api/completions", env.handler.ListCompletions)

	req := httptest.NewRequest(http.MethodGet, "/api/completions?page=2&limit=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Completions []map[string]interface{} `json:"completions"`
		Pagination  struct {
			Page  int   `json:"page"`
			Limit int   `json:"limit"`
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Completions, 10)
	require.Equal(t, 2, response.Pagination.Page)
	require.Equal(t, int64(25), response.Pagination.Total)
}

func TestCompletionHandler_Update(t *testing.T) {
	env := setupCompletionTestEnv(t)
	env.seedCompletions(t, 1)

	r := gin.New()
	r.PUT("/api/completions/:complete_id", env.handler.UpdateCompletion)

	body, _ := json.Marshal(map[string]interface{}{
		"review_amt": 5,
		"notes":      "Even better the second time",
	})
	req := httptest.NewRequest(http.MethodPut, "/api/completions/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)

	var completion models.UserCompletion
	require.NoError(t, env.db.First(&completion, 1).Error)
	require.Equal(t, 5, completion.ReviewAmt)
	require.Equal(t, "Even better the second time", completion.Notes)
}

func TestCompletionHandler_Update_InvalidReview(t *testing.T) {
	env := setupCompletionTestEnv(t)
	env.seedCompletions(t, 1)

	r := gin.New()
	r.PUT("/api/completions/:complete_id", env.handler.UpdateCompletion)

	body, _ := json.Marshal(map[string]interface{}{
		"review_amt": 9,
		"notes":      "Too many stars",
	})
	req := httptest.NewRequest(http.MethodPut, "/api/completions/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompletionHandler_Delete_NotFound(t *testing.T) {
	env := setupCompletionTestEnv(t)

	r := gin.New()
	r.DELETE("/api/completions/:complete_id", env.handler.DeleteCompletion)

	req := httptest.NewRequest(http.MethodDelete, "/api/completions/9999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}
