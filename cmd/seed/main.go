package main

import (
	"context"
	"fmt"
	"time"

	"civic-board/pkg/cache"
	"civic-board/pkg/config"
	"civic-board/pkg/database"
	"civic-board/pkg/logger"
	"civic-board/pkg/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (continuing without cache warmup)", err)
		redisClient = nil
	}

	if err := seedDatabase(db, redisClient, log); err != nil {
		log.Error("Seeding failed: %v", err)
		panic(err)
	}

	log.Info("Seeding complete")
}

func seedDatabase(db *gorm.DB, redisClient *redis.Client, log *logger.Logger) error {
	password, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	users := []models.User{
		{Email: "mina@example.com", Nickname: "mina", Password: string(password), Role: models.RoleMember, IsActive: true},
		{Email: "jun@example.com", Nickname: "jun", Password: string(password), Role: models.RoleMember, IsActive: true},
		{Email: "sora@example.com", Nickname: "sora", Password: string(password), Role: models.RoleModerator, IsActive: true},
	}
	for i := range users {
		if err := db.Where("email = ?", users[i].Email).FirstOrCreate(&users[i]).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", users[i].Email, err)
		}
	}
	log.Info("Seeded %d users", len(users))

	post := models.Post{
		AuthorID: users[0].ID,
		Title:    "Should the youth housing subsidy cover shared flats?",
		Content:  "The current rules exclude shared tenancy agreements entirely.",
	}
	if err := db.Where("title = ?", post.Title).FirstOrCreate(&post).Error; err != nil {
		return fmt.Errorf("failed to seed post: %w", err)
	}

	reply := models.Reply{
		PostID:   post.ID,
		AuthorID: users[1].ID,
		Content:  "Shared flats are most of what's affordable, so yes.",
	}
	if err := db.Where("post_id = ? AND author_id = ?", post.ID, reply.AuthorID).FirstOrCreate(&reply).Error; err != nil {
		return fmt.Errorf("failed to seed reply: %w", err)
	}

	policies := []models.Policy{
		{ID: "R2024001", Name: "Youth Housing Subsidy", Summary: "Monthly rent support for residents under 34.", Region: "Seoul"},
		{ID: "R2024002", Name: "First Job Incentive", Summary: "Wage top-up for first-time employees.", Region: "Busan"},
	}
	for i := range policies {
		if err := db.FirstOrCreate(&policies[i], "id = ?", policies[i].ID).Error; err != nil {
			return fmt.Errorf("failed to seed policy %s: %w", policies[i].ID, err)
		}
	}
	log.Info("Seeded %d policies", len(policies))

	closesAt := time.Now().AddDate(0, 1, 0)
	poll := models.Poll{
		PostID:   post.ID,
		Question: "Extend the subsidy to shared flats?",
		ClosesAt: &closesAt,
	}
	if err := db.Where("post_id = ?", post.ID).FirstOrCreate(&poll).Error; err != nil {
		return fmt.Errorf("failed to seed poll: %w", err)
	}

	var optionCount int64
	if err := db.Model(&models.PollOption{}).Where("poll_id = ?", poll.ID).Count(&optionCount).Error; err != nil {
		return err
	}
	if optionCount == 0 {
		options := []models.PollOption{
			{PollID: poll.ID, Text: "Yes, all shared tenancies"},
			{PollID: poll.ID, Text: "Only registered shared housing"},
			{PollID: poll.ID, Text: "No, keep the current rules"},
		}
		for i := range options {
			if err := db.Create(&options[i]).Error; err != nil {
				return fmt.Errorf("failed to seed poll option: %w", err)
			}
		}

		// One demo ballot; the tally moves in the same transaction.
		err = db.Transaction(func(tx *gorm.DB) error {
			ballot := models.Ballot{UserID: users[1].ID, PollID: poll.ID, OptionID: options[0].ID}
			if err := tx.Create(&ballot).Error; err != nil {
				return err
			}
			return tx.Model(&models.PollOption{}).
				Where("id = ?", options[0].ID).
				UpdateColumn("tally", gorm.Expr("tally + 1")).Error
		})
		if err != nil {
			return fmt.Errorf("failed to seed ballot: %w", err)
		}
	}

	likes := []models.PostLike{
		{UserID: users[1].ID, PostID: post.ID},
		{UserID: users[2].ID, PostID: post.ID},
	}
	for i := range likes {
		if err := db.Where("user_id = ? AND post_id = ?", likes[i].UserID, likes[i].PostID).FirstOrCreate(&likes[i]).Error; err != nil {
			return fmt.Errorf("failed to seed post like: %w", err)
		}
	}

	if redisClient != nil {
		warmLikeCounters(db, redisClient, log, post.ID, reply.ID, policies)
	}

	return nil
}

// warmLikeCounters puts committed counts into Redis so the first reads after
// seeding don't fall back to the database.
func warmLikeCounters(db *gorm.DB, redisClient *redis.Client, log *logger.Logger, postID, replyID string, policies []models.Policy) {
	ctx := context.Background()

	var count int64
	if err := db.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&count).Error; err == nil {
		redisClient.Set(ctx, fmt.Sprintf("post:likes:%s", postID), count, 0)
	}
	if err := db.Model(&models.ReplyLike{}).Where("reply_id = ?", replyID).Count(&count).Error; err == nil {
		redisClient.Set(ctx, fmt.Sprintf("reply:likes:%s", replyID), count, 0)
	}
	for _, policy := range policies {
		if err := db.Model(&models.PolicyLike{}).Where("policy_id = ?", policy.ID).Count(&count).Error; err == nil {
			redisClient.Set(ctx, fmt.Sprintf("policy:likes:%s", policy.ID), count, 0)
		}
	}

	log.Info("Warmed like counters in Redis")
}
