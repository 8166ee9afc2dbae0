package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/collabhub/internal/app/system/indexes"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoURIEnv names an externally managed MongoDB for tests. When unset a
// mongo:7 container is started with testcontainers.
const MongoURIEnv = "COLLABHUB_TEST_MONGO_URI"

// MongoImage is the container image used when MongoURIEnv is unset.
const MongoImage = "mongo:7"

var (
	sharedClient     *mongo.Client
	sharedClientOnce sync.Once
	sharedClientErr  error
)

// TestContext returns a context with a deadline suitable for one test.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// SetupTestDB returns a fresh, uniquely named database on a shared client.
// The database is dropped when the test finishes. The test is skipped when
// no MongoDB is reachable (no env URI and no Docker).
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping MongoDB-backed test in short mode")
	}

	sharedClientOnce.Do(func() {
		sharedClient, sharedClientErr = connect()
	})
	if sharedClientErr != nil {
		t.Skipf("MongoDB unavailable: %v", sharedClientErr)
	}

	name := "collabhub_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	db := sharedClient.Database(name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
	})
	return db
}

// SetupIndexedDB is SetupTestDB with the production indexes applied, for
// tests that rely on unique constraints.
func SetupIndexedDB(t *testing.T) *mongo.Database {
	t.Helper()
	db := SetupTestDB(t)
	ctx, cancel := TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	return db
}

func connect() (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	uri := strings.TrimSpace(os.Getenv(MongoURIEnv))
	if uri == "" {
		var err error
		uri, err = startContainer(ctx)
		if err != nil {
			return nil, err
		}
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", uri, err)
	}

	// The container may accept TCP before mongod is ready to serve.
	var pingErr error
	for i := 0; i < 10; i++ {
		if pingErr = client.Ping(ctx, readpref.Primary()); pingErr == nil {
			return client, nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	_ = client.Disconnect(context.Background())
	return nil, fmt.Errorf("ping: %w", pingErr)
}

// startContainer launches a throwaway MongoDB. The container lives for the
// rest of the test binary and is reaped by testcontainers' ryuk.
func startContainer(ctx context.Context) (uri string, err error) {
	// GenericContainer panics when no Docker provider can be found.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("docker unavailable: %v", r)
		}
	}()

	req := testcontainers.ContainerRequest{
		Image:        MongoImage,
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start %s: %w", MongoImage, err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		return "", fmt.Errorf("container port: %w", err)
	}
	return fmt.Sprintf("mongodb://%s:%s/?directConnection=true", host, port.Port()), nil
}
