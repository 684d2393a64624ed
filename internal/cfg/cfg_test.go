package cfg

import (
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredDB(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_USER", "catalog")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "catalog")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredDB(t)
	t.Setenv("KAFKA_BROKERS", "")

	c, err := Load(logger.Nop{})
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Http.Port)
	assert.Equal(t, "localhost", c.Db.Host)
	assert.Equal(t, int32(10), c.Db.MaxConns)
	assert.Equal(t, 12, c.Paging.DefaultSize)
	assert.Equal(t, 1000, c.Paging.MaxSize)
	assert.Equal(t, 5*time.Minute, c.Outbox.StuckAfter)
	assert.False(t, c.Kafka.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredDB(t)
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("OUTBOX_BATCH_SIZE", "50")
	t.Setenv("PAGE_MAX_SIZE", "200")
	t.Setenv("HTTP_READ_TIMEOUT", "2s")

	c, err := Load(logger.Nop{})
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, c.Kafka.Brokers)
	assert.True(t, c.Kafka.Enabled())
	assert.Equal(t, 50, c.Outbox.BatchSize)
	assert.Equal(t, 200, c.Paging.MaxSize)
	assert.Equal(t, 2*time.Second, c.Http.ReadTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"missing user":       {"POSTGRES_USER": ""},
		"bad batch size":     {"OUTBOX_BATCH_SIZE": "0"},
		"bad duration":       {"OUTBOX_POLL_TIMEOUT": "soon"},
		"default above max":  {"PAGE_DEFAULT_SIZE": "50", "PAGE_MAX_SIZE": "10"},
		"partitions not int": {"KAFKA_PARTITIONS": "three"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			setRequiredDB(t)
			for k, v := range env {
				t.Setenv(k, v)
			}

			_, err := Load(logger.Nop{})
			require.Error(t, err)
		})
	}
}
