package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GrantPayload is the body every delegated-permission invocation carries:
// the record that was just created and the principal(s) that must be able
// to read it.
type GrantPayload struct {
	RecordID   string   `json:"record_id"`
	Principals []string `json:"principals"`
}

// Executor invokes remote functions that grant principals read access to a
// record after the fact. Execution is asynchronous and at-least-once on the
// remote side; from the caller's perspective it is fire-and-forget, so a
// failed grant never blocks or fails the primary write.
type Executor interface {
	Execute(functionID string, payload GrantPayload)
}

// HTTPExecutor implements Executor against the remote function service's
// HTTP endpoint.
type HTTPExecutor struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *zap.Logger
}

// NewHTTPExecutor creates a new HTTPExecutor
func NewHTTPExecutor(endpoint, apiKey string, logger *zap.Logger) *HTTPExecutor {
	return &HTTPExecutor{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
	}
}

// Execute dispatches the invocation in the background and returns
// immediately. Failures are logged with the invocation id and otherwise
// invisible to the caller: the receiver simply cannot read the record until
// a later grant succeeds.
func (e *HTTPExecutor) Execute(functionID string, payload GrantPayload) {
	invocationID := uuid.NewString()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := e.post(ctx, functionID, invocationID, payload); err != nil {
			e.logger.Warn("permission delegation failed",
				zap.String("function_id", functionID),
				zap.String("invocation_id", invocationID),
				zap.String("record_id", payload.RecordID),
				zap.Error(err))
		}
	}()
}

func (e *HTTPExecutor) post(ctx context.Context, functionID, invocationID string, payload GrantPayload) error {
	body, err := json.Marshal(map[string]any{
		"invocation_id": invocationID,
		"async":         true,
		"payload":       payload,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/v1/functions/%s/executions", e.endpoint, functionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("X-API-Key", e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("executor returned status %d", resp.StatusCode)
	}
	return nil
}
