package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNotificationQueues(t *testing.T) {
	queues := GetNotificationQueues()

	require.Len(t, queues, 2)

	assert.Equal(t, "notification.trial.upcoming", queues[0].QueueName)
	assert.Equal(t, "trial.upcoming", queues[0].RoutingKey)
	assert.Equal(t, "notification.trial.final", queues[1].QueueName)
	assert.Equal(t, "trial.final", queues[1].RoutingKey)

	// Проверка уникальности QueueName
	seen := map[string]bool{}
	for _, q := range queues {
		assert.Falsef(t, seen[q.QueueName], "duplicate queue name: %s", q.QueueName)
		seen[q.QueueName] = true
	}
}
