package backend

import (
	"context"

	"github.com/jonathan/ats-ui/internal/types"
)

// Health checks the backend. A reachable backend that reports a status other
// than UP is returned without error.
func (c *Client) Health(ctx context.Context) (*types.HealthStatus, error) {
	var status types.HealthStatus
	if err := c.doJSON(ctx, c.get("health", "/api/health"), "", &status); err != nil {
		return nil, err
	}
	return &status, nil
}
