package main

import (
	"github.com/talksapp/talks/config"
	"github.com/talksapp/talks/models"
	"github.com/talksapp/talks/routes"
	"github.com/talksapp/talks/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.PostLike{},
		&models.CommentLike{},
		&models.Hashtag{},
		&models.HashtagPost{},
		&models.Report{},
		&models.EmailVerification{},
		&models.ContactMessage{},
		&models.PerkClaim{},
		&models.PageView{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
