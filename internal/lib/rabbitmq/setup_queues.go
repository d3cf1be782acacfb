package rabbitmq

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди воркера-отправителя писем:
// предупреждение за сутки и последнее письмо в день окончания пробного периода.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notification.trial.upcoming", RoutingKey: "trial.upcoming"},
		{QueueName: "notification.trial.final", RoutingKey: "trial.final"},
	}
}
