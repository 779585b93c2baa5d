package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/fitness-challenge-api/internal/database"
	"github.com/yukikurage/fitness-challenge-api/internal/dto"
	"github.com/yukikurage/fitness-challenge-api/internal/models"
	"github.com/yukikurage/fitness-challenge-api/internal/repository"
	"github.com/yukikurage/fitness-challenge-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ChallengeHandlerTestSuite defines the test suite for ChallengeHandler
type ChallengeHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *ChallengeHandler
}

// SetupTest runs before each test
func (suite *ChallengeHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database. TranslateError maps the unique
	// index violation on completions to gorm.ErrDuplicatedKey, the same
	// way the MySQL driver does in production.
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.FitnessChallenge{},
		&models.UserCompletion{},
		&models.Spell{},
		&models.UserSpell{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	challengeRepo := repository.NewChallengeRepository(suite.db)
	completionRepo := repository.NewCompletionRepository(suite.db)
	challengeService := services.NewChallengeService(challengeRepo, completionRepo)

	// Create handler (without AI service for tests)
	suite.handler = NewChallengeHandler(challengeService, nil)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ChallengeHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *ChallengeHandlerTestSuite) createTestUser(email string, skillpoints int) *models.User {
	user := &models.User{
		Username:     email,
		Email:        email,
		PasswordHash: "hashedpassword",
		Skillpoints:  skillpoints,
	}
	suite.db.Create(user)
	return user
}

func (suite *ChallengeHandlerTestSuite) createTestChallenge(text string, skillpoints int, creatorID uint64) *models.FitnessChallenge {
	challenge := &models.FitnessChallenge{
		Challenge:   text,
		Skillpoints: skillpoints,
		CreatorID:   creatorID,
	}
	suite.db.Create(challenge)
	return challenge
}

func (suite *ChallengeHandlerTestSuite) setActiveSpell(userID, spellID uint64, uses int) {
	err := suite.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"active_spell_id":   spellID,
			"active_spell_uses": uses,
		}).Error
	suite.Require().NoError(err)
}

func (suite *ChallengeHandlerTestSuite) reloadUser(userID uint64) models.User {
	var user models.User
	err := suite.db.First(&user, userID).Error
	suite.Require().NoError(err)
	return user
}

// Helper function to create authenticated context
func (suite *ChallengeHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("user_id", userID)

	return c, w
}

// completeChallenge invokes the completion handler for the given challenge.
func (suite *ChallengeHandlerTestSuite) completeChallenge(userID, challengeID uint64, payload map[string]interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	suite.Require().NoError(err)

	url := fmt.Sprintf("/api/challenges/%d/completions", challengeID)
	c, w := suite.createAuthContext("POST", url, body, userID)
	c.Params = gin.Params{{Key: "challenge_id", Value: fmt.Sprintf("%d", challengeID)}}

	suite.handler.CompleteChallenge(c)
	return w
}

// TestCompleteChallenge_Success tests completing a challenge without a spell
func (suite *ChallengeHandlerTestSuite) TestCompleteChallenge_Success() {
	creator := suite.createTestUser("creator@example.com", 0)
	user := suite.createTestUser("user@example.com", 0)
	challenge := suite.createTestChallenge("Run 5km", 20, creator.ID)

	w := suite.completeChallenge(user.ID, challenge.ID, map[string]interface{}{
		"completed":  true,
		"review_amt": 4,
		"notes":      "Felt great, legs are sore",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.CompletionResultDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 20, response.Earned)
	assert.Equal(suite.T(), 20, response.Skillpoints)
	assert.Equal(suite.T(), challenge.ID, response.Completion.ChallengeID)
	assert.True(suite.T(), response.Completion.Completed)

	updated := suite.reloadUser(user.ID)
	assert.Equal(suite.T(), 20, updated.Skillpoints)
}

// TestCompleteChallenge_Duplicate tests that a challenge can only be completed once
func (suite *ChallengeHandlerTestSuite) TestCompleteChallenge_Duplicate() {
	user := suite.createTestUser("user@example.com", 0)
	challenge := suite.createTestChallenge("Run 5km", 20, user.ID)

	payload := map[string]interface{}{
		"completed":  true,
		"review_amt": 5,
		"notes":      "Done",
	}

	first := suite.completeChallenge(user.ID, challenge.ID, payload)
	assert.Equal(suite.T(), http.StatusCreated, first.Code)

	second := suite.completeChallenge(user.ID, challenge.ID, payload)
	assert.Equal(suite.T(), http.StatusConflict, second.Code)

	// Only the first completion awarded points
	updated := suite.reloadUser(user.ID)
	assert.Equal(suite.T(), 20, updated.Skillpoints)
}

// TestCompleteChallenge_SpellBonus tests the active spell multiplier
func (suite *ChallengeHandlerTestSuite) TestCompleteChallenge_SpellBonus() {
	user := suite.createTestUser("user@example.com", 100)
	challenge := suite.createTestChallenge("Swim 1km", 50, user.ID)
	suite.setActiveSpell(user.ID, 5, 1)

	w := suite.completeChallenge(user.ID, challenge.ID, map[string]interface{}{
		"completed":  true,
		"review_amt": 5,
		"notes":      "Tough swim",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	// floor(50 * 1.2) = 60
	var response dto.CompletionResultDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 60, response.Earned)
	assert.Equal(suite.T(), 160, response.Skillpoints)

	// The last use drained the spell and cleared the reference
	updated := suite.reloadUser(user.ID)
	assert.Equal(suite.T(), 0, updated.ActiveSpellUses)
	assert.Nil(suite.T(), updated.ActiveSpellID)
}

// TestCompleteChallenge_SpellUsesDrain tests that the bonus stops after the uses run out
func (suite *ChallengeHandlerTestSuite) TestCompleteChallenge_SpellUsesDrain() {
	user := suite.createTestUser("user@example.com", 0)
	suite.setActiveSpell(user.ID, 5, 3)

	expected := []int{12, 12, 12, 10}
	total := 0
	for i, want := range expected {
		challenge := suite.createTestChallenge(fmt.Sprintf("Challenge %d", i), 10, user.ID)

		w := suite.completeChallenge(user.ID, challenge.ID, map[string]interface{}{
			"completed":  true,
			"review_amt": 3,
			"notes":      "Done",
		})
		assert.Equal(suite.T(), http.StatusCreated, w.Code)

		var response dto.CompletionResultDTO
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(suite.T(), err)
		assert.Equal(suite.T(), want, response.Earned)
		total += want
	}

	updated := suite.reloadUser(user.ID)
	assert.Equal(suite.T(), total, updated.Skillpoints)
	assert.Equal(suite.T(), 0, updated.ActiveSpellUses)
	assert.Nil(suite.T(), updated.ActiveSpellID)
}

// TestCompleteChallenge_NotCompleted tests the consolation award
func (suite *ChallengeHandlerTestSuite) TestCompleteChallenge_NotCompleted() {
	user := suite.createTestUser("user@example.com", 0)
	challenge := suite.createTestChallenge("Climb a mountain", 100, user.ID)
	suite.setActiveSpell(user.ID, 5, 2)

	w := suite.completeChallenge(user.ID, challenge.ID, map[string]interface{}{
		"completed":  false,
		"review_amt": 2,
		"notes":      "Gave up halfway",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.CompletionResultDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 5, response.Earned)
	assert.Equal(suite.T(), 5, response.Skillpoints)

	// An attempt does not burn a spell use
	updated := suite.reloadUser(user.ID)
	assert.Equal(suite.T(), 2, updated.ActiveSpellUses)
	assert.NotNil(suite.T(), updated.ActiveSpellID)
}

// TestCompleteChallenge_InvalidReviewAmount tests review validation
func (suite *ChallengeHandlerTestSuite) TestCompleteChallenge_InvalidReviewAmount() {
	user := suite.createTestUser("user@example.com", 0)
	challenge := suite.createTestChallenge("Run 5km", 20, user.ID)

	for _, amt := range []int{0, 6, -1} {
		w := suite.completeChallenge(user.ID, challenge.ID, map[string]interface{}{
			"completed":  true,
			"review_amt": amt,
			"notes":      "Done",
		})
		assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	}

	// No completion was recorded
	var count int64
	suite.db.Model(&models.UserCompletion{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestCompleteChallenge_EmptyNotes tests notes validation
func (suite *ChallengeHandlerTestSuite) TestCompleteChallenge_EmptyNotes() {
	user := suite.createTestUser("user@example.com", 0)
	challenge := suite.createTestChallenge("Run 5km", 20, user.ID)

	w := suite.completeChallenge(user.ID, challenge.ID, map[string]interface{}{
		"completed":  true,
		"review_amt": 4,
		"notes":      "   ",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCompleteChallenge_ChallengeNotFound tests completing a non-existent challenge
func (suite *ChallengeHandlerTestSuite) TestCompleteChallenge_ChallengeNotFound() {
	user := suite.createTestUser("user@example.com", 0)

	w := suite.completeChallenge(user.ID, 9999, map[string]interface{}{
		"completed":  true,
		"review_amt": 4,
		"notes":      "Done",
	})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestListActiveChallenges_ExcludesCompleted tests the active challenge feed
func (suite *ChallengeHandlerTestSuite) TestListActiveChallenges_ExcludesCompleted() {
	user := suite.createTestUser("user@example.com", 0)
	done := suite.createTestChallenge("Done already", 10, user.ID)
	open := suite.createTestChallenge("Still open", 10, user.ID)

	w := suite.completeChallenge(user.ID, done.ID, map[string]interface{}{
		"completed":  true,
		"review_amt": 3,
		"notes":      "Done",
	})
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	c, w := suite.createAuthContext("GET", "/api/challenges", nil, user.ID)
	suite.handler.ListActiveChallenges(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []dto.ChallengeDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response, 1)
	assert.Equal(suite.T(), open.ID, response[0].ID)
}

// TestGetCompletedCount tests the completed challenge counter
func (suite *ChallengeHandlerTestSuite) TestGetCompletedCount() {
	user := suite.createTestUser("user@example.com", 0)
	first := suite.createTestChallenge("First", 10, user.ID)
	second := suite.createTestChallenge("Second", 10, user.ID)
	failed := suite.createTestChallenge("Failed", 10, user.ID)

	for _, challenge := range []*models.FitnessChallenge{first, second} {
		w := suite.completeChallenge(user.ID, challenge.ID, map[string]interface{}{
			"completed":  true,
			"review_amt": 3,
			"notes":      "Done",
		})
		assert.Equal(suite.T(), http.StatusCreated, w.Code)
	}

	// An unfinished attempt does not count
	w := suite.completeChallenge(user.ID, failed.ID, map[string]interface{}{
		"completed":  false,
		"review_amt": 1,
		"notes":      "Too hard",
	})
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	c, w := suite.createAuthContext("GET", "/api/challenges/completed/count", nil, user.ID)
	suite.handler.GetCompletedCount(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]int64
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), response["completedChallenges"])
}

// TestCreateChallenge_Success tests successful challenge creation
func (suite *ChallengeHandlerTestSuite) TestCreateChallenge_Success() {
	user := suite.createTestUser("user@example.com", 0)

	requestBody := map[string]interface{}{
		"challenge":   "Do 50 push-ups",
		"skillpoints": 30,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/challenges", body, user.ID)
	suite.handler.CreateChallenge(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.ChallengeDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Do 50 push-ups", response.Challenge)
	assert.Equal(suite.T(), 30, response.Skillpoints)
	assert.Equal(suite.T(), user.ID, response.CreatorID)
}

// TestCreateChallenge_InvalidRequest tests challenge creation with missing fields
func (suite *ChallengeHandlerTestSuite) TestCreateChallenge_InvalidRequest() {
	user := suite.createTestUser("user@example.com", 0)

	requestBody := map[string]interface{}{
		"challenge": "No points attached",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/challenges", body, user.ID)
	suite.handler.CreateChallenge(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestUpdateChallenge_NotCreator tests updating a challenge by a non-creator
func (suite *ChallengeHandlerTestSuite) TestUpdateChallenge_NotCreator() {
	creator := suite.createTestUser("creator@example.com", 0)
	other := suite.createTestUser("other@example.com", 0)
	challenge := suite.createTestChallenge("Original", 10, creator.ID)

	requestBody := map[string]interface{}{
		"challenge":   "Hijacked",
		"skillpoints": 99,
	}
	body, _ := json.Marshal(requestBody)

	url := fmt.Sprintf("/api/challenges/%d", challenge.ID)
	c, w := suite.createAuthContext("PUT", url, body, other.ID)
	c.Params = gin.Params{{Key: "challenge_id", Value: fmt.Sprintf("%d", challenge.ID)}}

	suite.handler.UpdateChallenge(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestDeleteChallenge_Success tests successful challenge deletion
func (suite *ChallengeHandlerTestSuite) TestDeleteChallenge_Success() {
	user := suite.createTestUser("user@example.com", 0)
	challenge := suite.createTestChallenge("To delete", 10, user.ID)

	url := fmt.Sprintf("/api/challenges/%d", challenge.ID)
	c, w := suite.createAuthContext("DELETE", url, nil, user.ID)
	c.Params = gin.Params{{Key: "challenge_id", Value: fmt.Sprintf("%d", challenge.ID)}}

	suite.handler.DeleteChallenge(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.FitnessChallenge{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestListChallengesByCreator tests listing a user's own challenges
func (suite *ChallengeHandlerTestSuite) TestListChallengesByCreator() {
	creator := suite.createTestUser("creator@example.com", 0)
	other := suite.createTestUser("other@example.com", 0)
	suite.createTestChallenge("Mine", 10, creator.ID)
	suite.createTestChallenge("Also mine", 10, creator.ID)
	suite.createTestChallenge("Not mine", 10, other.ID)

	url := fmt.Sprintf("/api/users/%d/challenges", creator.ID)
	c, w := suite.createAuthContext("GET", url, nil, creator.ID)
	c.Params = gin.Params{{Key: "user_id", Value: fmt.Sprintf("%d", creator.ID)}}

	suite.handler.ListChallengesByCreator(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []dto.ChallengeDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response, 2)
}

// TestGetChallenge_NotFound tests retrieving a non-existent challenge
func (suite *ChallengeHandlerTestSuite) TestGetChallenge_NotFound() {
	user := suite.createTestUser("user@example.com", 0)

	c, w := suite.createAuthContext("GET", "/api/challenges/9999", nil, user.ID)
	c.Params = gin.Params{{Key: "challenge_id", Value: "9999"}}

	suite.handler.GetChallenge(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestSuite runs the test suite
func TestChallengeHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ChallengeHandlerTestSuite))
}
