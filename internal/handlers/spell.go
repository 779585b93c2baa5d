package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/fitness-challenge-api/internal/dto"
	apierrors "github.com/yukikurage/fitness-challenge-api/internal/errors"
	"github.com/yukikurage/fitness-challenge-api/internal/middleware"
	"github.com/yukikurage/fitness-challenge-api/internal/services"
)

// SpellHandler coordinates spell shop HTTP handlers.
type SpellHandler struct {
	spellService *services.SpellService
}

// NewSpellHandler creates a new SpellHandler.
func NewSpellHandler(spellService *services.SpellService) *SpellHandler {
	return &SpellHandler{
		spellService: spellService,
	}
}

// ListSpells returns the shop catalogue.
func (h *SpellHandler) ListSpells(c *gin.Context) {
	spells, err := h.spellService.ListSpells()
	if err != nil {
		respondSpellError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSpellDTOs(spells))
}

// SearchSpells returns spells costing at most the max query parameter.
func (h *SpellHandler) SearchSpells(c *gin.Context) {
	max := parseUintQuery(c, "max", 1000)

	spells, err := h.spellService.SearchSpells(max)
	if err != nil {
		respondSpellError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSpellDTOs(spells))
}

// GetSpell returns a spell by ID.
func (h *SpellHandler) GetSpell(c *gin.Context) {
	spellID, ok := parseIDParam(c, "spell_id")
	if !ok {
		return
	}

	spell, err := h.spellService.GetSpell(spellID)
	if err != nil {
		respondSpellError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSpellDTO(*spell))
}

// CreateSpell adds a spell to the catalogue.
func (h *SpellHandler) CreateSpell(c *gin.Context) {
	type SpellRequest struct {
		Name               string `json:"name" binding:"required"`
		SkillpointRequired int    `json:"skillpoint_required" binding:"required"`
	}

	var req SpellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Spell name or skillpoint requirement missing")
		return
	}

	spell, err := h.spellService.CreateSpell(services.SpellInput{
		Name:               req.Name,
		SkillpointRequired: req.SkillpointRequired,
	})
	if err != nil {
		respondSpellError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSpellDTO(*spell))
}

// UpdateSpell edits a catalogue entry.
func (h *SpellHandler) UpdateSpell(c *gin.Context) {
	spellID, ok := parseIDParam(c, "spell_id")
	if !ok {
		return
	}

	type SpellRequest struct {
		Name               string `json:"name" binding:"required"`
		SkillpointRequired int    `json:"skillpoint_required" binding:"required"`
	}

	var req SpellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Spell name or skillpoint requirement missing")
		return
	}

	spell, err := h.spellService.UpdateSpell(spellID, services.SpellInput{
		Name:               req.Name,
		SkillpointRequired: req.SkillpointRequired,
	})
	if err != nil {
		respondSpellError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSpellDTO(*spell))
}

// DeleteSpell removes a catalogue entry.
func (h *SpellHandler) DeleteSpell(c *gin.Context) {
	spellID, ok := parseIDParam(c, "spell_id")
	if !ok {
		return
	}

	if err := h.spellService.DeleteSpell(spellID); err != nil {
		respondSpellError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// BuySpell purchases a spell for the caller.
func (h *SpellHandler) BuySpell(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type BuyRequest struct {
		SpellID uint64 `json:"spell_id" binding:"required"`
	}

	var req BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "spell_id required")
		return
	}

	spell, err := h.spellService.BuySpell(userID, req.SpellID)
	if err != nil {
		respondSpellError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Spell purchased",
		"spell":   dto.ToSpellDTO(*spell),
	})
}

// ActivateSpell makes an owned spell active with a fresh use counter.
func (h *SpellHandler) ActivateSpell(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ActivateRequest struct {
		SpellID uint64 `json:"spell_id" binding:"required"`
	}

	var req ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "spell_id required")
		return
	}

	spell, err := h.spellService.ActivateSpell(userID, req.SpellID)
	if err != nil {
		respondSpellError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Spell activated",
		"spell":   dto.ToSpellDTO(*spell),
	})
}

func respondSpellError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSpellNotFound):
		apierrors.NotFound(c, "Spell not found")
	case errors.Is(err, services.ErrSpellNotOwned):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrSpellAlreadyOwned):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotEnoughPoints):
		apierrors.InsufficientPoints(c, err.Error())
	case errors.Is(err, services.ErrSpellNameRequired),
		errors.Is(err, services.ErrSpellCostNegative):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
