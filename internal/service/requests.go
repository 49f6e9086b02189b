package service

import (
	"blooddonation/internal/entity"
	"blooddonation/internal/model"
	"context"
	"strings"
)

// RequestService owns donation requests and their status lifecycle.
type RequestService struct {
	repo  model.Repository
	guard *Guard
}

func NewRequestService(repo model.Repository, guard *Guard) *RequestService {
	return &RequestService{repo: repo, guard: guard}
}

// Create posts a request on behalf of the calling account, starting at pending.
func (s *RequestService) Create(ctx context.Context, actorEmail string, req entity.RequestCreateRequest) (*entity.DbDonationRequest, error) {
	actor, err := s.guard.Authorize(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	if actor.IsBlocked() {
		return nil, newError(KindForbidden, CodeAccountBlocked, "blocked accounts cannot post requests", nil)
	}

	requester := strings.TrimSpace(req.RequesterName)
	if requester == "" {
		requester = actor.Name
	}
	record := &entity.DbDonationRequest{
		RecipientEmail: actor.Email,
		RequesterName:  requester,
		RecipientName:  strings.TrimSpace(req.RecipientName),
		BloodGroup:     strings.TrimSpace(req.BloodGroup),
		District:       strings.TrimSpace(req.District),
		Upazila:        strings.TrimSpace(req.Upazila),
		Hospital:       strings.TrimSpace(req.Hospital),
		Address:        strings.TrimSpace(req.Address),
		DonationDate:   strings.TrimSpace(req.DonationDate),
		DonationTime:   strings.TrimSpace(req.DonationTime),
		Message:        strings.TrimSpace(req.Message),
		Status:         entity.DonationPending,
	}
	if err := s.repo.CreateRequest(ctx, record); err != nil {
		return nil, fromStore(err, "request")
	}
	return record, nil
}

// Get returns one request.
func (s *RequestService) Get(ctx context.Context, id string) (*entity.DbDonationRequest, error) {
	record, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return nil, fromStore(err, "request")
	}
	return record, nil
}

// ListPending pages through requests still waiting for a donor.
func (s *RequestService) ListPending(ctx context.Context, params entity.BaseParams) (*entity.RequestListResponse, error) {
	return s.list(ctx, entity.RequestQuery{BaseParams: params, Status: entity.DonationPending})
}

// ListByRecipient pages through the requests posted for one recipient.
func (s *RequestService) ListByRecipient(ctx context.Context, email string, query entity.RequestQuery) (*entity.RequestListResponse, error) {
	query.RecipientEmail = email
	return s.list(ctx, query)
}

// ListAll pages through every request, optionally filtered by status.
func (s *RequestService) ListAll(ctx context.Context, query entity.RequestQuery) (*entity.RequestListResponse, error) {
	query.RecipientEmail = ""
	return s.list(ctx, query)
}

func (s *RequestService) list(ctx context.Context, query entity.RequestQuery) (*entity.RequestListResponse, error) {
	if query.Status != "" {
		status, ok := entity.ParseDonationStatus(string(query.Status))
		if !ok {
			return nil, invalid(CodeInvalidStatus, "unknown donation status")
		}
		query.Status = status
	}
	query.Normalize()
	records, meta, err := s.repo.ListRequests(ctx, &query)
	if err != nil {
		return nil, fromStore(err, "request")
	}
	return &entity.RequestListResponse{Requests: records, Meta: meta}, nil
}

// Recent returns the three newest requests of a recipient.
func (s *RequestService) Recent(ctx context.Context, email string) ([]entity.DbDonationRequest, error) {
	records, err := s.repo.RecentRequests(ctx, email, 3)
	if err != nil {
		return nil, fromStore(err, "request")
	}
	return records, nil
}

// PendingCount counts requests still waiting for a donor.
func (s *RequestService) PendingCount(ctx context.Context) (int64, error) {
	count, err := s.repo.CountRequests(ctx, entity.DonationPending)
	if err != nil {
		return 0, fromStore(err, "request")
	}
	return count, nil
}

// UpdateContent patches the descriptive fields. Status is not touched here.
func (s *RequestService) UpdateContent(ctx context.Context, actorEmail, id string, req entity.RequestUpdateRequest) (*entity.DbDonationRequest, error) {
	actor, record, err := s.load(ctx, actorEmail, id)
	if err != nil {
		return nil, err
	}
	if !s.ownsOrAdmin(actor, record) {
		return nil, forbidden("only the recipient can edit this request")
	}

	updates := entity.RequestUpdates{
		RequesterName: trimmed(req.RequesterName),
		RecipientName: trimmed(req.RecipientName),
		BloodGroup:    trimmed(req.BloodGroup),
		District:      trimmed(req.District),
		Upazila:       trimmed(req.Upazila),
		Hospital:      trimmed(req.Hospital),
		Address:       trimmed(req.Address),
		DonationDate:  trimmed(req.DonationDate),
		DonationTime:  trimmed(req.DonationTime),
		Message:       trimmed(req.Message),
	}
	if updates.IsEmpty() {
		return record, nil
	}
	if err := s.repo.UpdateRequest(ctx, id, updates); err != nil {
		return nil, fromStore(err, "request")
	}
	return s.Get(ctx, id)
}

// Delete removes a request. Only the recipient or an admin may do it.
func (s *RequestService) Delete(ctx context.Context, actorEmail, id string) error {
	actor, record, err := s.load(ctx, actorEmail, id)
	if err != nil {
		return err
	}
	if !s.ownsOrAdmin(actor, record) {
		return forbidden("only the recipient can delete this request")
	}
	if err := s.repo.DeleteRequest(ctx, id); err != nil {
		return fromStore(err, "request")
	}
	return nil
}

// SetStatus moves a request through pending, inprogress, done and cancelled.
//
// The recipient, volunteers and admins may apply any legal transition. Any
// other active account may only take a pending request to inprogress, which
// records it as the donor. Re-applying the current status changes nothing.
func (s *RequestService) SetStatus(ctx context.Context, actorEmail, id, raw string) (*entity.DbDonationRequest, error) {
	next, ok := entity.ParseDonationStatus(raw)
	if !ok {
		return nil, invalid(CodeInvalidStatus, "unknown donation status")
	}
	actor, record, err := s.load(ctx, actorEmail, id)
	if err != nil {
		return nil, err
	}

	current := record.Status
	privileged := s.ownsOrAdmin(actor, record) || actor.Role == entity.RoleVolunteer
	isDonor := record.DonorEmail != "" && sameEmail(record.DonorEmail, actor.Email)
	claim := !privileged && current == entity.DonationPending && next == entity.DonationInProgress

	if current == next {
		if privileged || isDonor {
			return record, nil
		}
		return nil, forbidden("not allowed to change this request")
	}
	if !current.CanTransition(next) {
		return nil, conflict(CodeInvalidTransition, "cannot move request from "+string(current)+" to "+string(next))
	}
	if !privileged && !claim {
		return nil, forbidden("not allowed to change this request")
	}

	updates := entity.RequestUpdates{Status: &next}
	if claim {
		if actor.IsBlocked() {
			return nil, newError(KindForbidden, CodeAccountBlocked, "blocked accounts cannot donate", nil)
		}
		donorName, donorEmail := actor.Name, actor.Email
		updates.DonorName = &donorName
		updates.DonorEmail = &donorEmail
	}
	if err := s.repo.TransitionRequest(ctx, id, current, updates); err != nil {
		return nil, fromStore(err, "request")
	}
	return s.Get(ctx, id)
}

func (s *RequestService) load(ctx context.Context, actorEmail, id string) (*entity.DbUser, *entity.DbDonationRequest, error) {
	actor, err := s.guard.Authorize(ctx, actorEmail)
	if err != nil {
		return nil, nil, err
	}
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return actor, record, nil
}

func (s *RequestService) ownsOrAdmin(actor *entity.DbUser, record *entity.DbDonationRequest) bool {
	return sameEmail(actor.Email, record.RecipientEmail) || actor.Role == entity.RoleAdmin
}
