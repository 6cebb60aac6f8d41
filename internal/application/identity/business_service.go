package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/domain/identity"
	"github.com/invoicing/backend/internal/domain/shared"
	"github.com/invoicing/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// BusinessService handles business registration and profile operations
type BusinessService struct {
	businessRepo identity.BusinessRepository
	userRepo     identity.UserRepository
	events       shared.EventPublisher
}

// NewBusinessService creates a new BusinessService
func NewBusinessService(businessRepo identity.BusinessRepository, userRepo identity.UserRepository) *BusinessService {
	return &BusinessService{
		businessRepo: businessRepo,
		userRepo:     userRepo,
	}
}

// WithEvents attaches an event publisher and returns the service
func (s *BusinessService) WithEvents(events shared.EventPublisher) *BusinessService {
	s.events = events
	return s
}

// Register creates a new business together with its first user
func (s *BusinessService) Register(ctx context.Context, req RegisterBusinessRequest) (*RegisterBusinessResponse, error) {
	if existing, err := s.businessRepo.FindByTaxID(ctx, req.TaxID); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A business with this tax ID is already registered")
	}

	if existing, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email is already registered")
	}

	business, err := identity.NewBusiness(req.BusinessName, req.TaxID, identity.BusinessType(req.BusinessType))
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(business.ID, req.Email, req.Password, req.DisplayName)
	if err != nil {
		return nil, err
	}

	if err := s.businessRepo.Save(ctx, business); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, business)
	shared.PublishEvents(ctx, s.events, user)

	logger.L(ctx).Info("business registered",
		zap.String("business_id", business.ID.String()),
		zap.String("tax_id", business.TaxID),
		zap.String("type", string(business.Type)))

	return &RegisterBusinessResponse{
		Business: ToBusinessResponse(business),
		User:     ToUserInfo(user),
	}, nil
}

// Get retrieves the business profile
func (s *BusinessService) Get(ctx context.Context, businessID uuid.UUID) (*BusinessResponse, error) {
	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	response := ToBusinessResponse(business)
	return &response, nil
}

// Update updates the business profile
func (s *BusinessService) Update(ctx context.Context, businessID uuid.UUID, req UpdateBusinessRequest) (*BusinessResponse, error) {
	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if err := business.Update(req.Name, req.Email, req.Phone, req.Address); err != nil {
		return nil, err
	}

	if err := s.businessRepo.Save(ctx, business); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, business)

	response := ToBusinessResponse(business)
	return &response, nil
}

// UpdateNumbering configures the document numbering of a business.
// The prefix and starting number only affect documents issued afterwards.
func (s *BusinessService) UpdateNumbering(ctx context.Context, businessID uuid.UUID, req UpdateNumberingRequest) (*BusinessResponse, error) {
	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if err := business.SetNumbering(req.InvoiceNumberPrefix, req.StartingInvoiceNumber); err != nil {
		return nil, err
	}

	if err := s.businessRepo.Save(ctx, business); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("business numbering updated",
		zap.String("business_id", businessID.String()),
		zap.String("prefix", business.InvoiceNumberPrefix),
		zap.Int64("starting_number", business.StartingInvoiceNumber))

	response := ToBusinessResponse(business)
	return &response, nil
}
