package queries

import (
	"paperdesk/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

func toKernelID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toOptionalKernelID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}

	converted, err := toKernelID(*id)
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
