package queue

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursehub/internal/metrics"
)

func TestNewKafkaQueue_RequiresBrokersAndTopic(t *testing.T) {
	_, err := NewKafkaQueue(KafkaConfig{Topic: "t"}, zerolog.Nop(), metrics.NewNop())
	require.Error(t, err)

	_, err = NewKafkaQueue(KafkaConfig{Brokers: []string{"localhost:9092"}}, zerolog.Nop(), metrics.NewNop())
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	id := uuid.New()

	job, err := decode([]byte(`{"course_id":"` + id.String() + `"}`))
	require.NoError(t, err)
	assert.Equal(t, JobNotifySubscribers, job.Name)
	assert.Equal(t, id, job.CourseID)

	_, err = decode([]byte(`not json`))
	require.Error(t, err)
}
