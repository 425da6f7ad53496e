package services

import "context"

// HealthSource — проверка здоровья бэкенда.
type HealthSource interface {
	Health(ctx context.Context) (map[string]interface{}, error)
}

// StatusService агрегирует состояние самой админки и бэкенда.
type StatusService struct {
	api HealthSource
}

// NewStatusService создаёт StatusService поверх клиента бэкенда.
func NewStatusService(api HealthSource) *StatusService {
	return &StatusService{api: api}
}

// Status — сводка здоровья для GET /health.
type Status struct {
	Status  string                 `json:"status"`
	Backend map[string]interface{} `json:"backend,omitempty"`
	Error   string                 `json:"backend_error,omitempty"`
}

// Check опрашивает бэкенд. Недоступный бэкенд не роняет ответ:
// админка жива, деградация видна в полях backend/backend_error.
func (s *StatusService) Check(ctx context.Context) *Status {
	status := &Status{Status: "ok"}

	backendStatus, err := s.api.Health(ctx)
	if err != nil {
		status.Status = "degraded"
		status.Error = err.Error()
		return status
	}
	status.Backend = backendStatus
	return status
}
