package dao

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err == nil {
		err = pool.Client.Ping()
	}
	if err != nil {
		log.Printf("docker unavailable, database tests will be skipped: %v", err)
		os.Exit(m.Run())
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=festijeux",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=festijeux_test",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("pool.RunWithOptions -> %v", err)
	}
	_ = resource.Expire(120)

	dsn := fmt.Sprintf(
		"postgres://festijeux:secret@%s/festijeux_test?sslmode=disable",
		resource.GetHostPort("5432/tcp"),
	)

	pool.MaxWait = time.Minute
	err = pool.Retry(func() error {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			return err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}

		if err = sqlDB.Ping(); err != nil {
			return err
		}

		testDB = db
		return nil
	})
	if err != nil {
		log.Fatalf("pool.Retry -> %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Printf("pool.Purge -> %v", err)
	}

	os.Exit(code)
}

// freshDB hands out a clean schema or skips the test when no database runs.
func freshDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testDB == nil {
		t.Skip("database not available")
	}

	if err := ResetTables(testDB); err != nil {
		t.Fatalf("ResetTables -> %v", err)
	}

	return testDB
}
