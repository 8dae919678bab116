package tadata

import (
	"time"

	"github.com/tadata-org/tadata-sdk-go/internal/api"
)

// DeployResult reports a successful deployment.
type DeployResult struct {
	// ID identifies the deployment.
	ID string

	// CreatedAt is when the deployment service recorded the deployment.
	CreatedAt time.Time

	// Name is the deployment name, when one was sent or assigned.
	Name string

	// Status is the deployment's lifecycle state as reported by the service.
	Status string

	// MCPServerID identifies the MCP server backing this deployment.
	MCPServerID string

	// SpecHash is the service's content hash of the deployed spec.
	SpecHash string

	// Updated is true when the call updated an existing deployment rather
	// than creating a new one.
	Updated bool
}

func resultFromDeployment(d *api.Deployment) *DeployResult {
	return &DeployResult{
		ID:          d.ID,
		CreatedAt:   d.CreatedAt,
		Name:        d.Name,
		Status:      d.Status,
		MCPServerID: d.MCPServerID,
		SpecHash:    d.SpecHash,
		Updated:     d.Updated,
	}
}
