package service

import (
	"blooddonation/internal/entity"
	"blooddonation/internal/model"
	"blooddonation/internal/payment"
	"context"
	"errors"
	"strings"
	"time"
)

// PaymentService creates charge intents and keeps the payment ledger.
type PaymentService struct {
	repo   model.Repository
	guard  *Guard
	bridge *payment.Bridge
}

func NewPaymentService(repo model.Repository, guard *Guard, bridge *payment.Bridge) *PaymentService {
	return &PaymentService{repo: repo, guard: guard, bridge: bridge}
}

// CreateIntent asks the processor for a card intent worth price major units.
func (s *PaymentService) CreateIntent(ctx context.Context, price *float64) (*entity.PaymentIntentResponse, error) {
	intent, err := s.bridge.CreateIntent(ctx, price)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidAmount) {
			return nil, newError(KindInvalid, CodeInvalidAmount, err.Error(), err)
		}
		return nil, newError(KindProcessor, "", "payment processor failure", err)
	}
	return &entity.PaymentIntentResponse{
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     intent.Currency,
	}, nil
}

// Record appends a completed checkout for the caller to the ledger.
func (s *PaymentService) Record(ctx context.Context, actorEmail string, req entity.PaymentCreateRequest) (*entity.DbPayment, error) {
	actor, err := s.guard.Authorize(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, invalid(CodeInvalidAmount, "amount must be positive")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = actor.Name
	}
	record := &entity.DbPayment{
		Email:         actor.Email,
		Name:          name,
		Amount:        req.Amount,
		TransactionID: strings.TrimSpace(req.TransactionID),
	}
	if req.Date != nil {
		record.Date = req.Date.UTC()
	} else {
		record.Date = time.Now().UTC()
	}
	if err := s.repo.CreatePayment(ctx, record); err != nil {
		return nil, fromStore(err, "payment")
	}
	return record, nil
}

// ListByEmail pages through one payer's history. Payers see their own, admins see anyone's.
func (s *PaymentService) ListByEmail(ctx context.Context, actorEmail, email string, params entity.BaseParams) (*entity.PaymentListResponse, error) {
	if !sameEmail(actorEmail, email) {
		if _, err := s.guard.Authorize(ctx, actorEmail, entity.RoleAdmin); err != nil {
			return nil, err
		}
	}
	return s.list(ctx, entity.PaymentQuery{BaseParams: params, Email: email})
}

// ListAll pages through the whole ledger.
func (s *PaymentService) ListAll(ctx context.Context, params entity.BaseParams) (*entity.PaymentListResponse, error) {
	return s.list(ctx, entity.PaymentQuery{BaseParams: params})
}

func (s *PaymentService) list(ctx context.Context, query entity.PaymentQuery) (*entity.PaymentListResponse, error) {
	query.Normalize()
	payments, meta, err := s.repo.ListPayments(ctx, &query)
	if err != nil {
		return nil, fromStore(err, "payment")
	}
	return &entity.PaymentListResponse{Payments: payments, Meta: meta}, nil
}
