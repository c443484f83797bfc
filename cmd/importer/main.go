// Bulk listing importer: validates and submits a directory of homestay draft
// JSON files through the same assembler and platform client the wizard uses.
// Useful when a host migrates an existing portfolio onto the platform.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"homestay_wizard/internal/adapters/observability"
	"homestay_wizard/internal/adapters/platform"
	"homestay_wizard/internal/app"
	"homestay_wizard/internal/domain"
	"homestay_wizard/internal/shared"
	mysqlrepo "homestay_wizard/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("dir", cfg.ImportDir).
		Str("base", cfg.PlatformBase).
		Int("workers", cfg.ImportWorkers).
		Msg("importer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	audit := mysqlrepo.New(db)

	client, err := platform.New(cfg.PlatformBase, cfg.PlatformKey, cfg.PlatformRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize platform client")
	}

	files, err := draftFiles(cfg.ImportDir)
	if err != nil {
		log.Fatal().Err(err).Msg("list draft files failed")
	}
	if len(files) == 0 {
		log.Warn().Str("dir", cfg.ImportDir).Msg("no draft files found")
		return
	}

	sem := semaphore.NewWeighted(int64(cfg.ImportWorkers))
	var wg sync.WaitGroup

	for _, f := range files {
		f := f

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer sem.Release(1)

			if err := importDraft(ctx, client, audit, path); err != nil {
				log.Warn().Str("file", path).Err(err).Msg("import failed")
				return
			}
			log.Info().Str("file", path).Msg("import ok")
		}(f)
	}

	wg.Wait()
	log.Info().Msg("import completed")
}

func draftFiles(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}

func importDraft(ctx context.Context, client *platform.Client, audit domain.SubmissionLog, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var draft domain.HomestayDraft
	if err := json.Unmarshal(b, &draft); err != nil {
		return err
	}

	app.ReconcileDraft(&draft)
	if err := app.ValidateForm(&draft); err != nil {
		return err
	}
	if err := app.ValidateStep(&draft, domain.StepRoomNaming); err != nil {
		return err
	}

	env, err := client.CreateHomestay(ctx, app.AssemblePayload(draft))

	rec := domain.SubmissionRecord{
		SessionID: "import:" + filepath.Base(path),
		Mode:      domain.ModeCreate,
		Success:   err == nil && env.Success,
		CreatedAt: time.Now().UTC(),
	}
	switch {
	case err != nil:
		msg := err.Error()
		rec.Message = &msg
	case env.Message != "":
		rec.Message = &env.Message
	}
	if aerr := audit.Record(ctx, rec); aerr != nil {
		log.Warn().Err(aerr).Str("file", path).Msg("audit write failed")
	}

	if err != nil {
		return err
	}
	if !env.Success {
		return &rejectionError{msg: env.Message}
	}
	return nil
}

type rejectionError struct{ msg string }

func (e *rejectionError) Error() string {
	if e.msg == "" {
		return "platform rejected the listing"
	}
	return e.msg
}
