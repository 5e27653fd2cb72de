// Package main runs the gymstats MCP server over stdio (for local assistant use).
// The same MCP server is also mounted on the main backend at /mcp over HTTP,
// so you can use either: stdio (this cmd) or the backend URL (no extra deploy).
package main

import (
	"context"
	"flag"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/config"
	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/gymstats/durations"
	"github.com/2beens/gymlog/internal/gymstats/exercises"
	gymstatsmcp "github.com/2beens/gymlog/internal/gymstats/mcp"
	"github.com/2beens/gymlog/internal/gymstats/sets"
	"github.com/2beens/gymlog/internal/gymstats/stats"
	"github.com/2beens/gymlog/internal/gymstats/workouts"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout carries the MCP protocol
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.MCPOwnerID <= 0 {
		log.Fatal("mcp_owner_id must be set")
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		TracingEnabled: false,
		AppName:        "gymstats-mcp",
		MaxConns:       4,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	statsCache := stats.NewCache(cfg.StatsCacheSizeBytes, cfg.StatsCacheTTLSeconds)
	setsRepo := sets.NewRepo(dbPool)
	service := gymstatsmcp.NewContextService(gymstatsmcp.Deps{
		Schema:     gymstatsmcp.NewPoolSchemaRepo(dbPool),
		Exercises:  exercises.NewService(exercises.NewRepo(dbPool), statsCache),
		Workouts:   workouts.NewService(workouts.NewRepo(dbPool), setsRepo, statsCache),
		Sets:       sets.NewService(setsRepo, nil, statsCache),
		Recomputer: durations.NewRecomputer(durations.NewRepo(dbPool), nil),
		Analyzer:   stats.NewAnalyzer(stats.NewRepo(dbPool), statsCache),
		Anomaly:    durations.AnomalyPolicy(cfg.DurationsAnomalyPolicy),
	}, cfg.MCPOwnerID)

	server := gymstatsmcp.NewServer(service)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Error(err)
	}
}
