package health

import (
	"context"
	"time"
)

type EntityType string

const (
	EntityGenerator EntityType = "ai_generator"
	EntityStore     EntityType = "store"
	EntityValkey    EntityType = "valkey"
)

type Status string

const (
	StatusOk       Status = "OK"
	StatusError    Status = "ERROR"
	StatusDisabled Status = "DISABLED"
	StatusUnknown  Status = "UNKNOWN"
)

type HealthRecord struct {
	EntityType  EntityType `json:"entity_type"`
	Status      Status     `json:"status"`
	LastMessage string     `json:"last_message"`
	LastChecked time.Time  `json:"last_checked"`
	LastSuccess *time.Time `json:"last_success,omitempty"`
}

type IHealthUsecase interface {
	CheckAll(ctx context.Context) []HealthRecord
	GetStatus(ctx context.Context) []HealthRecord
	ReportFailure(entityType EntityType, message string)
	ReportSuccess(entityType EntityType)
	StartPeriodicChecks(ctx context.Context)
}
