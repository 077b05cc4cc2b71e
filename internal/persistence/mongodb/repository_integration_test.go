//go:build integration

package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	mongocontainer "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elorback/boilerplate-project-exercisetracker/internal/domain"
)

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()

	container, err := mongocontainer.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	require.NoError(t, client.Ping(ctx, nil))

	repo := NewRepository(client.Database("exercise_tracker_test"))

	user, err := repo.InsertUser(ctx, "fcc_test")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "fcc_test", user.Username)

	fetched, err := repo.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	require.Equal(t, user.ID, fetched.ID)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	date := time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC)
	exercise, err := repo.InsertExercise(ctx, domain.Exercise{
		UserID:      user.ID,
		Description: "test run",
		Duration:    30,
		Date:        date,
	})
	require.NoError(t, err)
	require.NotEmpty(t, exercise.ID)

	// First append creates the log document, second increments it.
	entry := domain.LogEntry{Description: "test run", Duration: 30, Date: domain.FormatDate(date)}
	require.NoError(t, repo.AppendLogEntry(ctx, user.ID, entry))
	require.NoError(t, repo.AppendLogEntry(ctx, user.ID, domain.LogEntry{
		Description: "cooldown",
		Duration:    5,
		Date:        domain.FormatDate(date.AddDate(0, 0, 1)),
	}))

	record, err := repo.GetLog(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, record)
	require.Equal(t, user.ID, record.UserID)
	require.Equal(t, 2, record.Count)
	require.Len(t, record.Entries, 2)
	require.Equal(t, "test run", record.Entries[0].Description)
	require.Equal(t, "Sun Jan 15 2023", record.Entries[0].Date)
	require.Equal(t, "cooldown", record.Entries[1].Description)
}

func TestRepositoryMissingRecords(t *testing.T) {
	ctx := context.Background()

	container, err := mongocontainer.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	repo := NewRepository(client.Database("exercise_tracker_test"))

	// Malformed ids are indistinguishable from unknown ones.
	user, err := repo.GetUser(ctx, "not-a-hex-id")
	require.NoError(t, err)
	require.Nil(t, user)

	user, err = repo.GetUser(ctx, "64f000000000000000000000")
	require.NoError(t, err)
	require.Nil(t, user)

	record, err := repo.GetLog(ctx, "64f000000000000000000000")
	require.NoError(t, err)
	require.Nil(t, record)
}
