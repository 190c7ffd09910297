package config

// QueueConfig holds RabbitMQ settings for seat assignment events. An empty
// URL disables publishing.
type QueueConfig struct {
	URL             string
	Queue           string
	ConsumerEnabled bool
	LogPath         string // audit file appended to by the consumer
}

func LoadQueueConfig() QueueConfig {
	return QueueConfig{
		URL:             envStr("RABBITMQ_URL", ""),
		Queue:           envStr("QUEUE_NAME", "seat.assignments"),
		ConsumerEnabled: envBool("QUEUE_CONSUMER_ENABLED", false),
		LogPath:         envStr("QUEUE_LOG_PATH", "logs/seat_assignments.log"),
	}
}
