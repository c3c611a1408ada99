package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/isdelr/chat-relay-be/internal/models"
	"github.com/stretchr/testify/require"
)

func TestMessageService_AppendAssignsIDAndTimestamp(t *testing.T) {
	t.Parallel()
	svc := NewMessageService(newTestDB(t))

	msg, err := svc.Append(models.Message{Author: "user", Body: "hello"})
	require.NoError(t, err)
	require.Greater(t, msg.ID, int64(0))
	require.False(t, msg.Timestamp.IsZero())

	// IDs increase in append order.
	next, err := svc.Append(models.Message{Author: "bot", Body: "hi"})
	require.NoError(t, err)
	require.Greater(t, next.ID, msg.ID)
}

func TestMessageService_AppendKeepsCallerTimestamp(t *testing.T) {
	t.Parallel()
	svc := NewMessageService(newTestDB(t))

	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	msg, err := svc.Append(models.Message{Author: "user", Body: "old", Timestamp: ts})
	require.NoError(t, err)
	require.True(t, msg.Timestamp.Equal(ts))
}

func TestMessageService_GetPageOrderingAndBounds(t *testing.T) {
	t.Parallel()
	svc := NewMessageService(newTestDB(t))

	for i := 0; i < 25; i++ {
		_, err := svc.Append(models.Message{Author: "user", Body: fmt.Sprintf("msg-%02d", i)})
		require.NoError(t, err)
	}

	// Most recent first, never more than the page size.
	page1, err := svc.GetPage(1, 10)
	require.NoError(t, err)
	require.Len(t, page1, 10)
	require.Equal(t, "msg-24", page1[0].Body)
	require.Equal(t, "msg-15", page1[9].Body)

	page3, err := svc.GetPage(3, 10)
	require.NoError(t, err)
	require.Len(t, page3, 5)
	require.Equal(t, "msg-00", page3[4].Body)

	// Past the end of the log: empty, not an error.
	page4, err := svc.GetPage(4, 10)
	require.NoError(t, err)
	require.Empty(t, page4)
}

func TestMessageService_GetPageDefaults(t *testing.T) {
	t.Parallel()
	svc := NewMessageService(newTestDB(t))

	for i := 0; i < 12; i++ {
		_, err := svc.Append(models.Message{Author: "user", Body: "x"})
		require.NoError(t, err)
	}

	// Out-of-range page and limit fall back to 1 and 10.
	msgs, err := svc.GetPage(0, -3)
	require.NoError(t, err)
	require.Len(t, msgs, 10)
}

func TestMessageService_AppendThenPageIncludesMessage(t *testing.T) {
	t.Parallel()
	svc := NewMessageService(newTestDB(t))

	appended, err := svc.Append(models.Message{Author: "user", Body: "just in"})
	require.NoError(t, err)

	msgs, err := svc.GetPage(1, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, appended.ID, msgs[0].ID)
}

func TestMessageService_SearchCaseInsensitive(t *testing.T) {
	t.Parallel()
	svc := NewMessageService(newTestDB(t))

	for _, body := range []string{"Hello World", "goodbye", "say HELLO again", "hellish"} {
		_, err := svc.Append(models.Message{Author: "user", Body: body})
		require.NoError(t, err)
	}

	msgs, err := svc.Search("hello")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	// Most recent first.
	require.Equal(t, "say HELLO again", msgs[0].Body)
	require.Equal(t, "Hello World", msgs[1].Body)

	none, err := svc.Search("absent")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestMessageService_DeleteOlderThan(t *testing.T) {
	t.Parallel()
	svc := NewMessageService(newTestDB(t))

	old := time.Now().UTC().Add(-48 * time.Hour)
	_, err := svc.Append(models.Message{Author: "user", Body: "stale", Timestamp: old})
	require.NoError(t, err)
	_, err = svc.Append(models.Message{Author: "user", Body: "fresh"})
	require.NoError(t, err)

	deleted, err := svc.DeleteOlderThan(time.Now().UTC().Add(-24 * time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)

	remaining, err := svc.GetPage(1, 10)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, "fresh", remaining[0].Body)
}
