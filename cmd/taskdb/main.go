package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"time"

	"taskManagement/internal/auth"
	"taskManagement/internal/config"
	"taskManagement/internal/db"
	"taskManagement/models"
	"taskManagement/repository"
)

func main() {
	rollback := flag.Bool("rollback", false, "revert the most recently applied migration")
	seed := flag.Bool("seed", false, "insert a demo user with sample tasks")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.Printf("Configuration loaded: %v", cfg)

	// Open DB; pending migrations are applied here.
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Printf("close db: %v", err)
		}
	}()

	if *rollback {
		if err := db.RollbackLast(d); err != nil {
			log.Fatalf("rollback: %v", err)
		}
	}

	v, err := db.AppliedVersion(d)
	if err != nil {
		log.Fatalf("schema version: %v", err)
	}
	log.Printf("Schema at version %03d", v)

	if *seed {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := seedDemoData(ctx, d, cfg); err != nil {
			log.Fatalf("seed: %v", err)
		}
		log.Printf("Seeded demo data")
	}
}

var sampleTasks = []repository.CreateTaskParams{
	{Title: "Write project README", Priority: models.TaskPriorityLow},
	{Title: "Set up CI pipeline", Description: "build, vet, test", Status: models.TaskStatusInProgress},
	{Title: "Fix login redirect", Priority: models.TaskPriorityUrgent, Status: models.TaskStatusInProgress},
	{Title: "Review schema indexes", Priority: models.TaskPriorityHigh},
	{Title: "Archive old branches", Status: models.TaskStatusDone},
}

// seedDemoData inserts a demo user owning a handful of tasks across the
// status and priority sets. Re-running against an already seeded database is
// a no-op.
func seedDemoData(ctx context.Context, d *sql.DB, cfg *config.Config) error {
	users := repository.NewUserRepository(d)
	tasks := repository.NewTaskRepository(d)

	hash, err := auth.HashPassword(cfg.Seed.Password)
	if err != nil {
		return err
	}
	email := "demo@example.com"
	u, err := users.Create(ctx, "demo", hash, &email)
	if errors.Is(err, repository.ErrDuplicateUsername) {
		log.Printf("demo user already present, skipping")
		return nil
	}
	if err != nil {
		return err
	}

	due := time.Now().AddDate(0, 0, 7).UTC().Format("2006-01-02")
	for i, p := range sampleTasks {
		p.UserID = u.ID
		if i%2 == 0 {
			p.DueDate = &due
		}
		if _, err := tasks.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
