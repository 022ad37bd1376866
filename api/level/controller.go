package level

import (
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/drivom-api/service/i"
	"github.com/gin-gonic/gin"
)

const defaultLeaderboardSize = 10

// LevelServer handles HTTP requests for level generation and the
// leaderboard.
type LevelServer struct {
	levels      i.LevelProvider
	leaderboard i.Leaderboard
	userRepo    i.UserRepo
}

// NewLevelServer creates a new LevelServer.
func NewLevelServer(levels i.LevelProvider, leaderboard i.Leaderboard, userRepo i.UserRepo) *LevelServer {
	return &LevelServer{
		levels:      levels,
		leaderboard: leaderboard,
		userRepo:    userRepo,
	}
}

// RegisterPublic registers public routes.
func (c *LevelServer) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/leaderboard", c.topTimes)
}

// RegisterProtected registers privileged routes.
func (c *LevelServer) RegisterProtected(route *gin.RouterGroup) {
	levels := route.Group("/levels")
	{
		levels.POST("", c.createLevel)
		levels.GET("/:seed", c.getLevel)
	}
}

// createLevel generates a level from the requested seed and dimensions.
func (c *LevelServer) createLevel(ctx *gin.Context) {
	var request CreateRequest

	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seed := request.Seed
	if seed == 0 {
		seed = rand.New(rand.NewSource(time.Now().UnixNano())).Int63()
	}

	lvl, err := c.levels.Build(seed, request.Width, request.Height, request.Stations)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, NewLevelResponse(lvl))
}

// getLevel rebuilds the default-sized level for a seed.
func (c *LevelServer) getLevel(ctx *gin.Context) {
	seed, err := strconv.ParseInt(ctx.Param("seed"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid seed"})
		return
	}

	lvl, err := c.levels.Build(seed, 0, 0, 0)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, NewLevelResponse(lvl))
}

// topTimes returns the best completion times, best first.
func (c *LevelServer) topTimes(ctx *gin.Context) {
	n := int64(defaultLeaderboardSize)
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		n = parsed
	}

	entries, err := c.leaderboard.Top(ctx.Request.Context(), n)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ranks := make([]RankResponse, 0, len(entries))
	for idx, entry := range entries {
		rank := RankResponse{
			Rank:     idx + 1,
			PlayerID: entry.PlayerID.String(),
			TimeMs:   entry.TimeMs,
		}
		// Usernames are decoration here, a missing user does not fail
		// the whole board.
		if user, err := c.userRepo.ByID(entry.PlayerID); err == nil {
			rank.Username = user.Username
		}
		ranks = append(ranks, rank)
	}

	ctx.JSON(http.StatusOK, ranks)
}
