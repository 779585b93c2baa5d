package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/fitness-challenge-api/internal/database"
	apierrors "github.com/yukikurage/fitness-challenge-api/internal/errors"
	"github.com/yukikurage/fitness-challenge-api/internal/models"
)

// RequireChallengeCreator lets a request through only when the caller
// created the challenge named in the URL. The loaded challenge is stored in
// the context so handlers do not have to fetch it again.
func RequireChallengeCreator() gin.HandlerFunc {
	return func(c *gin.Context) {
		challengeIDStr := c.Param("challenge_id")
		challengeID, err := strconv.ParseUint(challengeIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid challenge ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var challenge models.FitnessChallenge
		if err := database.GetDB().First(&challenge, challengeID).Error; err != nil {
			apierrors.NotFound(c, "Challenge not found")
			c.Abort()
			return
		}

		if challenge.CreatorID != userID {
			apierrors.Forbidden(c, "You are not the creator of this challenge")
			c.Abort()
			return
		}

		c.Set("challenge", challenge)
		c.Next()
	}
}
