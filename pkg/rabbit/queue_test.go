package rabbit

import (
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"
)

func stubDial(t *testing.T, failures int) *int {
	t.Helper()

	calls := 0
	orig := dialConfig
	dialConfig = func(string, amqp.Config) (*amqp.Connection, error) {
		calls++
		if calls <= failures {
			return nil, errors.New("connection refused")
		}
		return &amqp.Connection{}, nil
	}
	t.Cleanup(func() { dialConfig = orig })
	return &calls
}

func TestDial_RetriesUntilConnected(t *testing.T) {
	calls := stubDial(t, 2)

	conn, err := Dial("amqp://localhost", "test", retry.Strategy{Attempts: 5, Delay: time.Millisecond, Backoff: 1})
	require.NoError(t, err)
	assert.NotNil(t, conn)
	assert.Equal(t, 3, *calls)
}

func TestDial_GivesUpAfterAttempts(t *testing.T) {
	calls := stubDial(t, 10)

	conn, err := Dial("amqp://localhost", "test", retry.Strategy{Attempts: 2, Delay: time.Millisecond, Backoff: 1})
	require.Error(t, err)
	assert.Nil(t, conn)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 2, *calls)
}
