package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/talksapp/talks/config"
	"github.com/talksapp/talks/models"
	"github.com/talksapp/talks/utils"
)

// PerksController handles the daily perk claim and perk balance endpoints.
type PerksController struct {
	db *gorm.DB
}

var errAlreadyClaimed = errors.New("perks already claimed today")

// NewPerksController creates a new controller instance.
func NewPerksController(db *gorm.DB) *PerksController {
	return &PerksController{db: db}
}

// DailyClaim awards the daily perk reward and updates the login streak. The
// user row is locked for the duration of the transaction so concurrent
// claims cannot double-award.
func (p *PerksController) DailyClaim(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrowStart := todayStart.Add(24 * time.Hour)

	var existing models.PerkClaim
	if err := p.db.Where("user_id = ? AND claim_date >= ? AND claim_date < ?", userID, todayStart, tomorrowStart).First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusBadRequest, 40036, "perks already claimed today")
		return
	}

	cfg := config.Get()
	reward := cfg.PerkRewardPoints
	var streak int

	err := p.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			return err
		}

		var lastClaim models.PerkClaim
		err := tx.Where("user_id = ?", userID).Order("claim_date DESC").First(&lastClaim).Error

		streak = 1
		if err == nil {
			if isSameDay(lastClaim.ClaimDate, todayStart) {
				return errAlreadyClaimed
			}
			if isYesterday(lastClaim.ClaimDate, todayStart) {
				streak = lastClaim.StreakAchieved + 1
			}
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		record := models.PerkClaim{
			UserID:         userID,
			ClaimDate:      now,
			PerksAwarded:   reward,
			StreakAchieved: streak,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		user.Perks += reward
		user.LoginStreak = streak
		user.LastClaimAt = &record.ClaimDate

		return tx.Save(&user).Error
	})

	if err != nil {
		if errors.Is(err, errAlreadyClaimed) {
			utils.Error(ctx, http.StatusBadRequest, 40036, err.Error())
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50036, "failed to record perk claim")
		return
	}

	utils.Success(ctx, gin.H{
		"message":       "perks claimed",
		"perks_awarded": reward,
		"login_streak":  streak,
	})
}

// PerksStatus returns the user's perk balance, streak and last claim time.
func (p *PerksController) PerksStatus(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := p.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50037, "failed to load user")
		return
	}

	utils.Success(ctx, gin.H{
		"perks":         user.Perks,
		"login_streak":  user.LoginStreak,
		"last_claim_at": user.LastClaimAt,
	})
}

func isSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func isYesterday(last, today time.Time) bool {
	yesterday := today.Add(-24 * time.Hour)
	return last.Year() == yesterday.Year() && last.YearDay() == yesterday.YearDay()
}
