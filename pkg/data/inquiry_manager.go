package data

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"homescout/client-app/pkg/api"
	"homescout/client-app/pkg/log"
	"homescout/client-app/pkg/model"
)

// InquiryOperations defines the interface for submitting enquiries.
type InquiryOperations interface {
	InquirySend(ctx context.Context, inquiry model.Inquiry) (string, error)
}

// InquiryManager submits contact/enquiry forms to the backend.
type InquiryManager struct {
	api    api.InquiryService
	logger *log.Logger
}

// NewInquiryManager creates a new InquiryManager instance.
func NewInquiryManager(apiClient api.InquiryService, logger *log.Logger) (*InquiryManager, error) {
	if apiClient == nil {
		return nil, fmt.Errorf("api client not initialized")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}
	return &InquiryManager{api: apiClient, logger: logger}, nil
}

// InquirySend submits an enquiry and returns its client reference id.
func (im *InquiryManager) InquirySend(ctx context.Context, inquiry model.Inquiry) (string, error) {
	if inquiry.Reference == "" {
		inquiry.Reference = uuid.NewString()
	}

	if err := im.api.InquiryCreate(ctx, inquiry); err != nil {
		im.logger.Error(ctx, "Failed to submit inquiry", log.Fields{"reference": inquiry.Reference, "error": err})
		return "", fmt.Errorf("failed to submit inquiry: %w", err)
	}

	im.logger.Info(ctx, "Inquiry submitted", log.Fields{"reference": inquiry.Reference, "propertyID": inquiry.PropertyID})
	return inquiry.Reference, nil
}
