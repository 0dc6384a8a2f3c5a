package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pethive/pethive/app/models"
	"github.com/pethive/pethive/pkg/testkit"
)

func setupChat(t *testing.T) *ChatService {
	t.Helper()
	testkit.SetupDB(t, &models.User{}, &models.Message{})
	return NewChatService()
}

func TestPostAndListMessages(t *testing.T) {
	svc := setupChat(t)

	first, err := svc.Post(1, "hello, is my order shipped?")
	require.NoError(t, err)
	assert.False(t, first.IsAdmin)

	_, err = svc.Post(2, "different customer")
	require.NoError(t, err)

	mine, err := svc.MyMessages(1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)
}

func TestEditOwnMessageOnly(t *testing.T) {
	svc := setupChat(t)

	msg, err := svc.Post(1, "typoo")
	require.NoError(t, err)

	edited, err := svc.Edit(1, msg.ID, "typo fixed")
	require.NoError(t, err)
	assert.Equal(t, "typo fixed", edited.Content)

	_, err = svc.Edit(2, msg.ID, "hijacked")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteOwnMessageOnly(t *testing.T) {
	svc := setupChat(t)

	msg, err := svc.Post(1, "delete me")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(2, msg.ID), ErrForbidden)
	require.NoError(t, svc.Delete(1, msg.ID))

	mine, err := svc.MyMessages(1)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestClearMine(t *testing.T) {
	svc := setupChat(t)

	_, err := svc.Post(1, "one")
	require.NoError(t, err)
	_, err = svc.Post(1, "two")
	require.NoError(t, err)
	_, err = svc.Post(2, "keep me")
	require.NoError(t, err)

	require.NoError(t, svc.ClearMine(1))

	mine, err := svc.MyMessages(1)
	require.NoError(t, err)
	assert.Empty(t, mine)

	others, err := svc.MyMessages(2)
	require.NoError(t, err)
	assert.Len(t, others, 1)
}

func TestAdminModeration(t *testing.T) {
	svc := setupChat(t)

	customer, err := svc.Post(1, "help")
	require.NoError(t, err)

	reply, err := svc.PostAsAdmin(1, "on it")
	require.NoError(t, err)
	assert.True(t, reply.IsAdmin)

	all, err := svc.AllMessages()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.AdminDelete(customer.ID))
	assert.ErrorIs(t, svc.AdminDelete(customer.ID), ErrNotFound)

	require.NoError(t, svc.ClearAll())
	all, err = svc.AllMessages()
	require.NoError(t, err)
	assert.Empty(t, all)
}
