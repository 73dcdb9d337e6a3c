package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"asset-desk/internal/dto"
	"asset-desk/internal/entities"
	"asset-desk/internal/events"
	"asset-desk/internal/repositories"
	"asset-desk/internal/workflow"
	"asset-desk/pkg/constants"
	apperrors "asset-desk/pkg/errors"
	"asset-desk/pkg/metrics"
	"asset-desk/pkg/types"
	"asset-desk/pkg/utils"
)

type RequestServiceInterface interface {
	GetRequests(ctx context.Context, session types.Session, query dto.RequestListQuery) ([]entities.AssetRequest, error)
	FindRequest(ctx context.Context, session types.Session, id uint64) (*entities.AssetRequest, error)
	CreateRequest(ctx context.Context, session types.Session, payload dto.CreateRequestDTO) (*entities.AssetRequest, error)
	UpdateRequest(ctx context.Context, session types.Session, id uint64, payload dto.UpdateRequestDTO) (*entities.AssetRequest, error)
	Decide(ctx context.Context, session types.Session, id uint64, payload dto.DecisionDTO) (*entities.AssetRequest, error)
	GetHistory(ctx context.Context, session types.Session, id uint64) ([]entities.RequestHistory, error)
}

type RequestService struct {
	txManager   repositories.TxManagerInterface
	requestRepo repositories.RequestRepositoryInterface
	assetRepo   repositories.AssetRepositoryInterface
	historyRepo repositories.RequestHistoryRepositoryInterface
	publisher   EventPublisher
	metrics     *metrics.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

func NewRequestService(
	txManager repositories.TxManagerInterface,
	requestRepo repositories.RequestRepositoryInterface,
	assetRepo repositories.AssetRepositoryInterface,
	historyRepo repositories.RequestHistoryRepositoryInterface,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		txManager:   txManager,
		requestRepo: requestRepo,
		assetRepo:   assetRepo,
		historyRepo: historyRepo,
		publisher:   publisher,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// decisionOutcome - результат решения внутри транзакции.
type decisionOutcome struct {
	request     entities.AssetRequest
	oldStatus   string
	assetStatus string
}

// GetRequests - сотрудник видит только свои заявки.
func (s *RequestService) GetRequests(ctx context.Context, session types.Session, query dto.RequestListQuery) ([]entities.AssetRequest, error) {
	filter := workflow.RequestFilter{
		Status:     workflow.NormalizeStatus(query.Status),
		IssueType:  strings.ToUpper(strings.TrimSpace(query.IssueType)),
		EmployeeID: query.EmployeeID,
	}
	if !session.IsAdmin() {
		filter.EmployeeID = session.UserID
	}
	return s.requestRepo.GetAll(ctx, filter)
}

func (s *RequestService) FindRequest(ctx context.Context, session types.Session, id uint64) (*entities.AssetRequest, error) {
	req, err := s.requestRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if !session.CanAccessEmployee(req.EmployeeID) {
		return nil, apperrors.ErrForbidden
	}
	return req, nil
}

// CreateRequest - статус всегда PENDING, сотрудник берётся из сессии.
func (s *RequestService) CreateRequest(ctx context.Context, session types.Session, payload dto.CreateRequestDTO) (*entities.AssetRequest, error) {
	issueType := strings.ToUpper(strings.TrimSpace(payload.IssueType))
	description := strings.TrimSpace(payload.Description)
	switch {
	case !constants.IsKnownIssueType(issueType):
		return nil, apperrors.NewInvalidInputError("issueType must be one of REQUEST, HARDWARE, SOFTWARE, OTHER")
	case payload.AssetID == 0:
		return nil, apperrors.NewInvalidInputError("assetId is required")
	case description == "":
		return nil, apperrors.NewInvalidInputError("description is required")
	}

	logger := s.logger.With(zap.Uint64("employeeID", session.UserID), zap.Uint64("assetID", payload.AssetID))

	var created *entities.AssetRequest
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		asset, err := s.assetRepo.FindByID(ctx, tx, payload.AssetID)
		if err != nil {
			return err
		}

		if issueType == constants.IssueTypeRequest {
			blocking, err := s.requestRepo.GetBlocking(ctx, tx, asset.ID)
			if err != nil {
				return err
			}
			if !workflow.IsRequestable(*asset, workflow.BlockedAssetIDs(blocking)) {
				return fmt.Errorf("asset %d is not available for request: %w", asset.ID, apperrors.ErrConflict)
			}
		} else if !asset.AssignedToID.Valid || asset.AssignedToID.Uint64 != session.UserID {
			return apperrors.NewInvalidInputError("service requests can only be raised for assets assigned to you")
		}

		id, err := s.requestRepo.Create(ctx, tx, entities.AssetRequest{
			IssueType:    issueType,
			EmployeeID:   session.UserID,
			EmployeeName: session.Name,
			AssetID:      asset.ID,
			AssetName:    asset.Name,
			Description:  description,
			RequestDate:  utils.Today(s.now()),
		})
		if err != nil {
			return err
		}
		created, err = s.requestRepo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		logger.Warn("Не удалось создать заявку", zap.Error(err))
		return nil, err
	}

	logger.Info("Заявка создана", zap.Uint64("requestID", created.ID), zap.String("issueType", issueType))
	s.publisher.Publish(ctx, events.RequestCreatedEvent{
		RequestID:  created.ID,
		EmployeeID: created.EmployeeID,
		AssetID:    created.AssetID,
		IssueType:  created.IssueType,
	})
	return created, nil
}

// Decide - смена статуса заявки и проекция статуса актива в одной транзакции.
func (s *RequestService) Decide(ctx context.Context, session types.Session, id uint64, payload dto.DecisionDTO) (*entities.AssetRequest, error) {
	if !session.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	next := workflow.NormalizeStatus(payload.Status)
	if err := workflow.ValidateDecision(next, payload.Confirm); err != nil {
		s.recordFailure(err)
		return nil, err
	}

	var outcome *decisionOutcome
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		outcome, err = s.decideInTx(ctx, tx, session, id, next)
		return err
	})
	if err != nil {
		s.recordFailure(err)
		s.logger.Warn("Решение по заявке не применено",
			zap.Uint64("requestID", id), zap.String("status", next), zap.Error(err))
		return nil, err
	}

	s.publishDecision(ctx, session, outcome)
	return &outcome.request, nil
}

// UpdateRequest - смена статуса идёт через те же правила, что и Decide:
// APPROVED и REJECTED требуют payload.Confirm, любой статус для завершённой
// заявки даёт ErrInvalidTransition. Описание меняется только у незавершённой.
func (s *RequestService) UpdateRequest(ctx context.Context, session types.Session, id uint64, payload dto.UpdateRequestDTO) (*entities.AssetRequest, error) {
	if payload.ID != 0 && payload.ID != id {
		return nil, apperrors.NewInvalidInputError("body id %d does not match path id %d", payload.ID, id)
	}

	var next string
	if payload.Status.Valid && strings.TrimSpace(payload.Status.String) != "" {
		next = workflow.NormalizeStatus(payload.Status.String)
	}
	var description string
	if payload.Description.Valid {
		description = strings.TrimSpace(payload.Description.String)
		if description == "" {
			return nil, apperrors.NewInvalidInputError("description must not be blank")
		}
	}

	var outcome *decisionOutcome
	var updated *entities.AssetRequest
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.requestRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if !session.CanAccessEmployee(current.EmployeeID) {
			return apperrors.ErrForbidden
		}

		if description != "" && description != current.Description {
			if err := workflow.CheckEditable(current.EffectiveStatus()); err != nil {
				return err
			}
			if err := s.requestRepo.UpdateDescription(ctx, tx, id, description); err != nil {
				return err
			}
		}

		currentStatus := current.EffectiveStatus()
		terminal := constants.IsFinalRequestStatus(currentStatus)
		if next != "" && (next != currentStatus || terminal) {
			if !session.IsAdmin() {
				return apperrors.ErrForbidden
			}
			if terminal {
				return fmt.Errorf("request %d is %s: %w", id, currentStatus, apperrors.ErrInvalidTransition)
			}
			if err := workflow.ValidateDecision(next, payload.Confirm); err != nil {
				return err
			}
			outcome, err = s.decideInTx(ctx, tx, session, id, next)
			if err != nil {
				return err
			}
		}

		updated, err = s.requestRepo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		if next != "" {
			s.recordFailure(err)
		}
		return nil, err
	}

	if outcome != nil {
		s.publishDecision(ctx, session, outcome)
	}
	return updated, nil
}

func (s *RequestService) GetHistory(ctx context.Context, session types.Session, id uint64) ([]entities.RequestHistory, error) {
	if _, err := s.FindRequest(ctx, session, id); err != nil {
		return nil, err
	}
	return s.historyRepo.GetByRequestID(ctx, id)
}

// decideInTx блокирует заявку, проверяет переход, пишет статус,
// проецирует статус актива и добавляет запись в историю.
func (s *RequestService) decideInTx(ctx context.Context, tx pgx.Tx, session types.Session, id uint64, next string) (*decisionOutcome, error) {
	req, err := s.requestRepo.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := req.EffectiveStatus()
	decided, err := workflow.Apply(*req, next)
	if err != nil {
		return nil, err
	}
	if err := s.requestRepo.UpdateStatus(ctx, tx, id, next); err != nil {
		return nil, err
	}

	outcome := &decisionOutcome{request: decided, oldStatus: oldStatus}
	if workflow.Projects(decided) {
		asset, err := s.assetRepo.FindByIDForUpdate(ctx, tx, decided.AssetID)
		if err != nil {
			return nil, err
		}
		projected, changed := workflow.ProjectAsset(*asset, decided, next, utils.Today(s.now()))
		if changed {
			if err := s.assetRepo.Update(ctx, tx, projected); err != nil {
				return nil, err
			}
			outcome.assetStatus = projected.Status
		}
	}

	history := entities.RequestHistory{
		RequestID: id,
		ActorID:   session.UserID,
		ActorName: session.Name,
		OldStatus: oldStatus,
		NewStatus: next,
	}
	if outcome.assetStatus != "" {
		history.AssetStatus = null.StringFrom(outcome.assetStatus)
	}
	if err := s.historyRepo.Create(ctx, tx, history); err != nil {
		return nil, err
	}
	return outcome, nil
}

func (s *RequestService) publishDecision(ctx context.Context, session types.Session, outcome *decisionOutcome) {
	s.logger.Info("Решение по заявке применено",
		zap.Uint64("requestID", outcome.request.ID),
		zap.String("from", outcome.oldStatus),
		zap.String("to", outcome.request.EffectiveStatus()),
	)
	s.publisher.Publish(ctx, events.RequestDecidedEvent{
		RequestID:   outcome.request.ID,
		EmployeeID:  outcome.request.EmployeeID,
		AssetID:     outcome.request.AssetID,
		ActorID:     session.UserID,
		OldStatus:   outcome.oldStatus,
		NewStatus:   outcome.request.EffectiveStatus(),
		AssetStatus: outcome.assetStatus,
	})
}

func (s *RequestService) recordFailure(err error) {
	reason := "error"
	switch {
	case errors.Is(err, apperrors.ErrConfirmationRequired):
		reason = "confirmation_required"
	case errors.Is(err, apperrors.ErrInvalidTransition):
		reason = "invalid_transition"
	case errors.Is(err, apperrors.ErrNotFound):
		reason = "not_found"
	case errors.Is(err, apperrors.ErrValidation):
		reason = "validation"
	case errors.Is(err, apperrors.ErrForbidden):
		reason = "forbidden"
	}
	s.metrics.DecisionFailures.WithLabelValues(reason).Inc()
}
