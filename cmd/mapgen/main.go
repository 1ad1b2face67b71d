package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/gookit/color"

	"starmap-server/internal/galaxy"
	"starmap-server/internal/game"
	"starmap-server/internal/rng"
	"starmap-server/internal/shared/config"
	"starmap-server/internal/shared/database"
	"starmap-server/internal/shared/logger"
	"starmap-server/internal/shared/redis"
	"starmap-server/internal/starmap"
)

var (
	styleHeader = color.Style{color.OpBold}
	styleGood   = color.Style{color.FgGreen}
	styleWarn   = color.Style{color.FgYellow}
)

func main() {
	seedFlag := flag.String("seed", "", "generation seed (integer or text, empty = 0)")
	sizeFlag := flag.Int("size", 0, "sector grid dimension (1-9, 0 = configured default)")
	minFlag := flag.Int("min", -1, "minimum stars per sector (0-9, -1 = configured default)")
	maxFlag := flag.Int("max", -1, "maximum stars per sector (0-9, -1 = configured default)")
	nameFlag := flag.String("name", "New Galaxy", "saved game name")
	saveFlag := flag.Bool("save", false, "persist the generated map")
	loadFlag := flag.String("load", "", "load a saved game by id instead of generating")
	listFlag := flag.Bool("list", false, "list saved games")
	flag.Parse()

	if err := config.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize configuration:", err)
		os.Exit(1)
	}
	logger.Init()

	ctx := context.Background()

	switch {
	case *listFlag:
		svc := connectService()
		listGames(ctx, svc)
	case *loadFlag != "":
		svc := connectService()
		loadGame(ctx, svc, *loadFlag)
	default:
		cfg := galaxy.DefaultConfig()
		if *seedFlag != "" {
			cfg.Seed = rng.HashSeed(*seedFlag)
		}
		if *sizeFlag != 0 {
			cfg.MapSize = *sizeFlag
		}
		if *minFlag >= 0 {
			cfg.DensityMin = *minFlag
		}
		if *maxFlag >= 0 {
			cfg.DensityMax = *maxFlag
		}

		if *saveFlag {
			svc := connectService()
			gm, result, err := svc.CreateGame(ctx, *nameFlag, cfg)
			if err != nil {
				fail("Failed to create game", err)
			}
			printSummary(cfg, result)
			styleGood.Printf("Saved as game %s\n", gm.ID)
		} else {
			result, err := galaxy.Generate(cfg)
			if err != nil {
				fail("Generation failed", err)
			}
			printSummary(cfg, result)
		}
	}
}

func connectService() *game.Service {
	db, err := database.Connect()
	if err != nil {
		fail("Failed to connect to database", err)
	}

	if err := db.RunMigrations(); err != nil {
		fail("Failed to run migrations", err)
	}

	redisClient, err := redis.Connect()
	if err != nil {
		slog.Warn("Redis unavailable, continuing without snapshot cache", "error", err)
		redisClient = nil
	}

	log := slog.Default()
	repo := game.NewRepository(db, log)
	cache := game.NewSnapshotCache(redisClient, config.GlobalConfig.Redis.CacheTTL, log)
	return game.NewService(repo, db, cache, log)
}

func listGames(ctx context.Context, svc *game.Service) {
	games, err := svc.ListGames(ctx)
	if err != nil {
		fail("Failed to list games", err)
	}

	if len(games) == 0 {
		fmt.Println("No saved games.")
		return
	}

	for _, gm := range games {
		fmt.Printf("%s  %-20s seed=%-12d size=%d stars=%s created=%s\n",
			gm.ID, gm.Name, gm.Seed, gm.MapSize,
			humanize.Comma(int64(gm.StarCount)),
			humanize.Time(gm.CreatedAt))
	}
}

func loadGame(ctx context.Context, svc *game.Service, id string) {
	gameID, err := uuid.Parse(id)
	if err != nil {
		fail("Invalid game id", err)
	}

	loaded, err := svc.LoadGame(ctx, gameID)
	if err != nil {
		fail("Failed to load game", err)
	}

	styleHeader.Printf("%s (seed %d)\n", loaded.Game.Name, loaded.Game.Seed)
	printModel(loaded.Model, loaded.Starts)
}

func printSummary(cfg galaxy.Config, result *galaxy.Result) {
	styleHeader.Printf("Galaxy seed=%d size=%dx%d density=[%d,%d]\n",
		cfg.Seed, cfg.MapSize, cfg.MapSize, cfg.DensityMin, cfg.DensityMax)

	for _, report := range result.Reports {
		if report.Exhausted() {
			styleWarn.Printf("sector (%d,%d): placed %d of %d requested\n",
				report.Row, report.Col, report.Placed, report.Requested)
		}
	}

	printModel(result.Model, result.Starts)
}

func printModel(model *starmap.Model, starts []starmap.PlayerStart) {
	size := model.MapSize()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			fmt.Printf(" %2d", len(model.SectorAt(row, col).StarIDs))
		}
		fmt.Println()
	}

	fmt.Printf("stars: %s  wormholes: %s\n",
		humanize.Comma(int64(model.StarCount())),
		humanize.Comma(int64(len(model.Wormholes()))))

	if model.Connected() {
		styleGood.Println("map is fully connected")
	} else {
		styleWarn.Printf("map has %d connected components\n", model.ComponentCount())
	}

	for _, start := range starts {
		star, _ := model.StarByID(start.StarID)
		fmt.Printf("start: sector (%d,%d) star %d %q\n",
			start.SectorRow, start.SectorCol, start.StarID, star.Name)
	}
}

func fail(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
