package helper_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ghaniswara/people-swipe/internal"
	"github.com/ghaniswara/people-swipe/internal/config"
	"github.com/ghaniswara/people-swipe/internal/datastore/postgres"
	"github.com/ghaniswara/people-swipe/internal/entity"
	"github.com/go-faker/faker/v4"
	"github.com/go-redis/redis"
	"github.com/ory/dockertest"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	postgresUser     = "swipe"
	postgresPassword = "swipe"
	postgresDB       = "swipe_test"
)

// ErrDockerUnavailable is returned by SetupTestServer when no Docker daemon
// answers; suites treat it as a skip.
var ErrDockerUnavailable = errors.New("docker is not available")

// TestServerResources holds resources needed for test server setup
type TestServerResources struct {
	Pool          *dockertest.Pool
	DBResource    *dockertest.Resource
	RedisResource *dockertest.Resource
	ORM           *gorm.DB
	Redis         *redis.Client
	Server        *httptest.Server
}

// SetupTestServer starts postgres and redis containers, applies migrations
// and serves the API from an in-process httptest server.
func SetupTestServer(ctx context.Context) (*TestServerResources, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDockerUnavailable, err)
	}
	if err := pool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDockerUnavailable, err)
	}

	resources := &TestServerResources{Pool: pool}

	resources.DBResource, err = pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "14",
		Env: []string{
			"POSTGRES_USER=" + postgresUser,
			"POSTGRES_PASSWORD=" + postgresPassword,
			"POSTGRES_DB=" + postgresDB,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not start postgres: %w", err)
	}

	resources.RedisResource, err = pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7",
	})
	if err != nil {
		resources.CleanupTestServer()
		return nil, fmt.Errorf("could not start redis: %w", err)
	}

	pool.MaxWait = 120 * time.Second

	if err := pool.Retry(func() error {
		resources.ORM, err = connectToPostgres(resources.DBResource)
		return err
	}); err != nil {
		resources.CleanupTestServer()
		return nil, fmt.Errorf("could not connect to postgres: %w", err)
	}

	fmt.Println("ℹ️ Database Connected")

	if err := pool.Retry(func() error {
		resources.Redis, err = connectToRedis(resources.RedisResource)
		return err
	}); err != nil {
		resources.CleanupTestServer()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	fmt.Println("ℹ️ Redis Connected")

	if err := postgres.Migrate(resources.ORM); err != nil {
		resources.CleanupTestServer()
		return nil, err
	}

	cfg := &config.Config{
		Key: map[string]string{
			"PORT":                 "0",
			"CORS_ALLOWED_ORIGINS": "*",
		},
		Env: "TEST",
	}

	server := internal.NewServer(io.Discard, cfg, resources.ORM, resources.Redis)
	resources.Server = httptest.NewServer(server.Handler())

	return resources, nil
}

// CleanupTestServer stops the server and purges Docker resources
func (resources *TestServerResources) CleanupTestServer() {
	if resources == nil {
		return
	}

	if resources.Server != nil {
		resources.Server.Close()
	}

	if resources.Pool == nil {
		return
	}

	if resources.DBResource != nil {
		if err := resources.Pool.Purge(resources.DBResource); err != nil {
			log.Printf("Could not purge PostgreSQL: %s", err)
		}
	}

	if resources.RedisResource != nil {
		if err := resources.Pool.Purge(resources.RedisResource); err != nil {
			log.Printf("Could not purge Redis: %s", err)
		}
	}
}

// ResetData empties every table, restarting ids at 1, and flushes redis.
func (resources *TestServerResources) ResetData(t *testing.T) {
	t.Helper()

	err := resources.ORM.Exec("TRUNCATE TABLE likes, dislikes, pictures, people RESTART IDENTITY CASCADE").Error
	if err != nil {
		t.Fatalf("Failed to truncate tables: %s", err)
	}

	if err := resources.Redis.FlushDB().Err(); err != nil {
		t.Fatalf("Failed to flush redis: %s", err)
	}
}

// RunSuite is the shared TestMain body: it skips the whole package when
// Docker is unavailable.
func RunSuite(m *testing.M, setup func(*TestServerResources)) {
	resources, err := SetupTestServer(context.Background())
	var code int

	switch {
	case errors.Is(err, ErrDockerUnavailable):
		log.Printf("Skipping integration tests: %s", err)
	case err != nil:
		log.Printf("Failed to set up test server: %s", err)
		code = 1
	default:
		setup(resources)
		code = m.Run()
	}

	resources.CleanupTestServer()
	os.Exit(code)
}

func connectToPostgres(dbResource *dockertest.Resource) (*gorm.DB, error) {
	hostPort := strings.Split(dbResource.GetHostPort("5432/tcp"), ":")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		hostPort[0],
		hostPort[1],
		postgresUser,
		postgresPassword,
		postgresDB)

	gormDB, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	return gormDB, sqlDB.Ping()
}

func connectToRedis(redisResource *dockertest.Resource) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisResource.GetHostPort("6379/tcp"),
		Password: "", // no password set
		DB:       0,  // use default DB
	})
	err := redisClient.Ping().Err()

	return redisClient, err
}

// CreatePerson stores one person; lat/lng may be nil.
func CreatePerson(t *testing.T, db *gorm.DB, name string, lat, lng *float64, pictures ...entity.Picture) entity.Person {
	t.Helper()

	person := entity.Person{
		Name:     name,
		Age:      25,
		Lat:      lat,
		Lng:      lng,
		Pictures: pictures,
	}

	if err := db.Create(&person).Error; err != nil {
		t.Fatalf("Failed to create person: %s", err)
	}

	return person
}

func PopulatePeople(db *gorm.DB, count int) (people []entity.Person, err error) {
	for i := 0; i < count; i++ {
		person := entity.Person{
			Name: faker.FirstNameFemale(),
			Age:  20 + i%16,
			Pictures: []entity.Picture{
				{URL: faker.URL(), SortOrder: 0},
			},
		}
		if err := db.Create(&person).Error; err != nil {
			return people, err
		}
		people = append(people, person)
	}
	return people, nil
}

// Request sends a request to the test server with an optional device id
// header and decodes the JSON response into out when out is not nil.
func Request(t *testing.T, resources *TestServerResources, method, path, deviceID string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %s", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, resources.Server.URL+path, reader)
	if err != nil {
		t.Fatalf("Failed to create request: %s", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if deviceID != "" {
		req.Header.Set("X-Device-Id", deviceID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to send request: %s", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.Unmarshal(bodyBytes, out); err != nil {
			t.Fatalf("Failed to decode response %s: %s", bodyBytes, err)
		}
	}

	return resp.StatusCode
}

func Count(t *testing.T, db *gorm.DB, model any, where string, args ...any) int64 {
	t.Helper()

	var count int64
	if err := db.Model(model).Where(where, args...).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count rows: %s", err)
	}
	return count
}
