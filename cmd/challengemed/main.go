package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"challengeme/config"
	database "challengeme/db"
	"challengeme/events"
	"challengeme/interceptor"
	natsClient "challengeme/nats"
	"challengeme/pkg/clock"
	"challengeme/pkg/jwt"
	"challengeme/rpc"
	"challengeme/service/comments"
	"challengeme/service/follows"
	"challengeme/service/leaderboard"
	"challengeme/service/likes"
	"challengeme/service/notifications"
	"challengeme/service/posts"
	"challengeme/service/users"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}

	// Load database configuration
	dbCfg, err := config.LoadDatabaseConfig("")
	if err != nil {
		log.Fatalf("Failed to load database config: %v", err)
	}

	// Create database connection
	dbConn, err := database.NewConnection(database.Config{
		Host:         dbCfg.Host,
		Port:         dbCfg.Port,
		User:         dbCfg.User,
		Password:     dbCfg.Password,
		DBName:       dbCfg.DBName,
		SSLMode:      dbCfg.SSLMode,
		MaxOpenConns: dbCfg.MaxOpenConns,
		MaxIdleConns: dbCfg.MaxIdleConns,
		MaxLifetime:  dbCfg.MaxLifetime,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbConn.Close()
	log.Println("Database connected successfully")

	// Initialize Redis client
	redisCfg := config.LoadRedisConfig()
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
		PoolSize: redisCfg.PoolSize,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Redis connected successfully")

	// Initialize NATS client
	natsCfg := config.LoadNATSConfig("challengemed")
	nats, err := natsClient.NewClient(natsClient.Config{
		URL:           natsCfg.URL,
		MaxReconnects: natsCfg.MaxReconnects,
		ReconnectWait: natsCfg.ReconnectWait,
		ClientID:      natsCfg.ClientID,
	})
	if err != nil {
		log.Fatalf("Failed to initialize NATS client: %v", err)
	}
	defer nats.Close()
	log.Println("NATS client initialized successfully")

	// Auth
	authCfg := config.LoadAuthConfig()
	jwtManager := jwt.NewManager(authCfg.JWTSecret)
	authenticator := interceptor.NewAuthenticator(jwtManager, []string{
		events.RPCAuthRegister,
		events.RPCAuthLogin,
		events.RPCLeaderboardTop,
	})

	// Repositories
	userRepo := users.NewRepository(dbConn.DB)
	postRepo := posts.NewRepository(dbConn.DB)
	likeRepo := likes.NewRepository(dbConn.DB)
	commentRepo := comments.NewRepository(dbConn.DB)
	followRepo := follows.NewRepository(dbConn.DB)
	leaderboardRepo := leaderboard.NewRepository(redisClient)
	notificationRepo := notifications.NewRepository(dbConn.DB, redisClient)

	// Handlers
	userHandler := users.NewHandler(userRepo, jwtManager, authCfg.AccessExpiry, authCfg.RefreshExpiry)
	postHandler := posts.NewHandler(postRepo, nats)
	likeHandler := likes.NewHandler(likeRepo, nats)
	commentHandler := comments.NewHandler(commentRepo, postRepo, nats)
	followHandler := follows.NewHandler(followRepo, nats)
	leaderboardHandler := leaderboard.NewHandler(leaderboardRepo, clock.System())
	notificationHandler := notifications.NewHandler(notificationRepo)

	// Event subscribers
	leaderboardSub := leaderboard.NewSubscriber(nats, leaderboardRepo, ctx)
	if err := leaderboardSub.Start(); err != nil {
		log.Fatalf("Failed to start leaderboard subscriber: %v", err)
	}
	notificationSub := notifications.NewSubscriber(nats, notificationRepo, ctx)
	if err := notificationSub.Start(); err != nil {
		log.Fatalf("Failed to start notification subscriber: %v", err)
	}

	// Request-reply endpoints
	server := rpc.NewServer(nats, authenticator, "challengeme-workers")
	endpoints := map[string]rpc.HandlerFunc{
		events.RPCAuthRegister:    userHandler.Register,
		events.RPCAuthLogin:       userHandler.Login,
		events.RPCUserGet:         userHandler.GetUser,
		events.RPCUserUpdate:      userHandler.UpdateUser,
		events.RPCPostCreate:      postHandler.CreatePost,
		events.RPCPostHome:        postHandler.HomePosts,
		events.RPCLikeCreate:      likeHandler.CreateLike,
		events.RPCLikeDelete:      likeHandler.DeleteLike,
		events.RPCCommentCreate:   commentHandler.CreateComment,
		events.RPCCommentList:     commentHandler.ListComments,
		events.RPCFollowCreate:    followHandler.Follow,
		events.RPCFollowDelete:    followHandler.Unfollow,
		events.RPCFollowFollowers: followHandler.Followers,
		events.RPCLeaderboardTop:  leaderboardHandler.Top,
		events.RPCNotifList:       notificationHandler.List,
		events.RPCNotifMarkRead:   notificationHandler.MarkRead,
	}
	for subject, handler := range endpoints {
		if err := server.Handle(subject, handler); err != nil {
			log.Fatalf("Failed to register handler for %s: %v", subject, err)
		}
	}

	log.Printf("ChallengeMe backend started")
	log.Printf("Serving %d request-reply subjects", len(endpoints))

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down ChallengeMe backend...")
	nats.Close()
	dbConn.Close()
	log.Println("ChallengeMe backend stopped cleanly")
}
