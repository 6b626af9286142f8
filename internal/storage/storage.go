package storage

import (
	"context"

	"trustdeploy/internal/model"
)

// Storage is a journal of completed deployments.
type Storage interface {
	PutDeployment(ctx context.Context, record model.DeploymentRecord) error
}

// Multi writes a record to every journal in order, stopping at the first error.
type Multi []Storage

func (m Multi) PutDeployment(ctx context.Context, record model.DeploymentRecord) error {
	for _, s := range m {
		if err := s.PutDeployment(ctx, record); err != nil {
			return err
		}
	}
	return nil
}
