package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/beka-birhanu/drivom-api/api"
	api_i "github.com/beka-birhanu/drivom-api/api/i"
	"github.com/beka-birhanu/drivom-api/api/identity"
	levelapi "github.com/beka-birhanu/drivom-api/api/level"
	"github.com/beka-birhanu/drivom-api/api/play"
	"github.com/beka-birhanu/drivom-api/config"
	"github.com/beka-birhanu/drivom-api/game/maze"
	"github.com/beka-birhanu/drivom-api/game/sim"
	"github.com/beka-birhanu/drivom-api/game/vehicle"
	"github.com/beka-birhanu/drivom-api/infrastruture/kinematic"
	"github.com/beka-birhanu/drivom-api/infrastruture/leaderboard"
	logger "github.com/beka-birhanu/drivom-api/infrastruture/log"
	"github.com/beka-birhanu/drivom-api/infrastruture/repo"
	"github.com/beka-birhanu/drivom-api/infrastruture/token"
	"github.com/beka-birhanu/drivom-api/service"
	"github.com/beka-birhanu/drivom-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient     *mongo.Client
	redisClient     *redis.Client
	userRepo        i.UserRepo
	bestTimes       i.Leaderboard
	jwtTokenizer    i.Tokenizer
	authService     i.Authenticator
	levelService    i.LevelProvider
	sessionManager  i.SessionManager
	authController  api_i.Controller
	levelController api_i.Controller
	playController  api_i.Controller
	router          *api.Router
	appLogger       i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initUserRepo(client *mongo.Client) {
	userRepo = repo.NewUserRepo(client, config.Envs.DBName, "users")
	appLogger.Info("User repository initialized")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initLeaderboard(client *redis.Client) {
	var err error
	bestTimes, err = leaderboard.NewRedisLeaderboard(client, "leaderboard:best_time")
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating leaderboard: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Leaderboard initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	authLogger, err := logger.New("AUTH", config.ColorPurple, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth logger: %v", err))
		os.Exit(1)
	}

	authService, err = service.NewAuthService(userRepo, jwtTokenizer, authLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initLevelService() {
	levelLogger, err := logger.New("LEVEL", config.ColorBlue, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating level logger: %v", err))
		os.Exit(1)
	}

	levelService, err = service.NewLevelService(levelLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating level service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Level service initialized")
}

func initSessionManager() {
	sessionLogger, err := logger.New("SESSION-MANAGER", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager logger: %v", err))
		os.Exit(1)
	}

	sessionManager, err = service.NewPlaySessionManager(&service.SessionManagerConfig{
		Levels:      levelService,
		NewEngine:   func() (sim.Engine, error) { return kinematic.New(), nil },
		Controller:  vehicle.NewController(nil),
		UserRepo:    userRepo,
		Leaderboard: bestTimes,
		Logger:      sessionLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Session manager initialized")
}

func initControllers() {
	authController = identity.NewIdentityServer(authService)
	levelController = levelapi.NewLevelServer(levelService, bestTimes, userRepo)

	playLogger, err := logger.New("PLAY", config.ColorYellow, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating play logger: %v", err))
		os.Exit(1)
	}
	playController = play.NewPlayServer(sessionManager, playLogger)

	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, levelController, playController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

// serve wires every dependency and runs the HTTP server until it fails.
func serve(ctx context.Context, _ *cli.Command) error {
	gin.SetMode(config.Envs.GinMode)

	connectCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	initMongo(connectCtx)
	defer func() {
		_ = mongoClient.Disconnect(connectCtx)
	}()

	initUserRepo(mongoClient)
	initRedis(connectCtx)
	defer func() {
		_ = redisClient.Close()
	}()

	initLeaderboard(redisClient)
	initJWTTokenizer()
	initAuthService()
	initLevelService()
	initSessionManager()
	initControllers()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
	return nil
}

// preview generates a maze and prints it, useful for eyeballing seeds
// without starting the server.
func preview(_ context.Context, cmd *cli.Command) error {
	seed := cmd.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	grid, err := maze.Generate(cmd.Int("width"), cmd.Int("height"), rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}

	fmt.Printf("seed %d\n%s", seed, grid.String())
	return nil
}

func main() {
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	cmd := &cli.Command{
		Name:  "drivom-api",
		Usage: "authoritative maze driving game server",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP and websocket API server",
				Action: serve,
			},
			{
				Name:  "preview",
				Usage: "generate a maze and print it",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "seed", Usage: "generation seed, 0 picks one"},
					&cli.IntFlag{Name: "width", Value: 21, Usage: "maze width in cells"},
					&cli.IntFlag{Name: "height", Value: 21, Usage: "maze height in cells"},
				},
				Action: preview,
			},
		},
		DefaultCommand: "serve",
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		appLogger.Error(fmt.Sprintf("%v", err))
		os.Exit(1)
	}
}
