// Package accesslevel exposes the access level catalog.
package accesslevel

import (
	"context"

	"tgorders/domain/accesslevel"
	"tgorders/domain/shared"
)

type AccessLevelResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func ToResponses(levels []accesslevel.AccessLevel) []AccessLevelResponse {
	responses := make([]AccessLevelResponse, len(levels))
	for i, l := range levels {
		responses[i] = AccessLevelResponse{ID: l.ID(), Name: string(l.Name())}
	}
	return responses
}

type ApplicationService struct {
	uow    accesslevel.UnitOfWork
	policy accesslevel.AccessPolicy
}

func NewApplicationService(uow accesslevel.UnitOfWork, policy accesslevel.AccessPolicy) *ApplicationService {
	return &ApplicationService{uow: uow, policy: policy}
}

func (s *ApplicationService) GetAccessLevels(ctx context.Context) ([]AccessLevelResponse, error) {
	if !s.policy.ReadAccessLevels() {
		return nil, shared.NewAccessDeniedError("access_level", "read access levels")
	}
	levels, err := s.uow.AccessLevelReader().AllAccessLevels(ctx)
	if err != nil {
		return nil, err
	}
	return ToResponses(levels), nil
}

func (s *ApplicationService) GetUserAccessLevels(ctx context.Context, userID int64) ([]AccessLevelResponse, error) {
	if !s.policy.ReadAccessLevels() {
		return nil, shared.NewAccessDeniedError("access_level", "read access levels")
	}
	levels, err := s.uow.AccessLevelReader().UserAccessLevels(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToResponses(levels), nil
}
