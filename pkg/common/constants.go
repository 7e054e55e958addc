package common

const (
	RedisStreamRiskAnalysis = "risk.analysis.execution"

	RedisStreamGroup    = "analyzer-group"
	RedisStreamConsumer = "analyzer-consumer"
)
