package service

import (
	"context"
	"fmt"
	"time"

	"github.com/oraclehub-commits/brain-hub/internal/constant"
	"github.com/oraclehub-commits/brain-hub/internal/dto"
	"github.com/oraclehub-commits/brain-hub/internal/entity"
	"github.com/oraclehub-commits/brain-hub/internal/pkg/logger"
	"github.com/oraclehub-commits/brain-hub/internal/repository/memory"
	"github.com/oraclehub-commits/brain-hub/internal/repository/specification"
	"github.com/oraclehub-commits/brain-hub/internal/repository/unitofwork"
	"github.com/oraclehub-commits/brain-hub/pkg/chatbot"
	"github.com/oraclehub-commits/brain-hub/pkg/oracle/dejavu"
	oraclememory "github.com/oraclehub-commits/brain-hub/pkg/oracle/memory"
	"github.com/oraclehub-commits/brain-hub/pkg/oracle/prompt"
	"github.com/oraclehub-commits/brain-hub/pkg/oracle/tier"
	"github.com/oraclehub-commits/brain-hub/pkg/oracle/whisper"

	"github.com/google/uuid"
)

const (
	titleMaxRunes       = 50
	freeMaxOutputTokens = 1024
	proMaxOutputTokens  = 4096

	defaultSessionPageSize = 20
	maxSessionPageSize     = 100
)

// IOracleService defines the oracle advisor service interface
type IOracleService interface {
	Consult(ctx context.Context, userId uuid.UUID, request *dto.ConsultRequest) (*dto.ConsultResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.GetAllSessionsResponse, error)
	GetSessionHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetSessionHistoryResponse, error)
	ArchiveSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
}

type oracleService struct {
	uowFactory    unitofwork.RepositoryFactory
	generator     chatbot.Generator
	profileCache  *memory.ProfileCache
	whisperEngine *whisper.Engine
	sysLogger     logger.ILogger
	freeModel     string
	proModel      string
}

func NewOracleService(
	uowFactory unitofwork.RepositoryFactory,
	generator chatbot.Generator,
	profileCache *memory.ProfileCache,
	whisperEngine *whisper.Engine,
	sysLogger logger.ILogger,
	freeModel string,
	proModel string,
) IOracleService {
	return &oracleService{
		uowFactory:    uowFactory,
		generator:     generator,
		profileCache:  profileCache,
		whisperEngine: whisperEngine,
		sysLogger:     sysLogger,
		freeModel:     freeModel,
		proModel:      proModel,
	}
}

// Consult runs one advisor turn: resolve tier, window the history, compose
// the instruction, generate, decorate the reply (deja-vu notice, whisper
// postscript), then append both turn messages in a single session update.
func (s *oracleService) Consult(ctx context.Context, userId uuid.UUID, request *dto.ConsultRequest) (*dto.ConsultResponse, error) {
	if userId == uuid.Nil {
		return nil, ErrUnauthorized
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	subscription, err := uow.SubscriptionRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	isPro := tier.IsPro(subscription, now)

	session, err := s.loadOrCreateSession(ctx, uow, userId, request, now)
	if err != nil {
		return nil, err
	}

	history := oraclememory.Filter(session.Messages, isPro, now)
	s.sysLogger.Info("oracle", "memory window resolved", map[string]interface{}{
		"user_id":  userId,
		"is_pro":   isPro,
		"in_scope": len(history),
		"total":    len(session.Messages),
	})

	profile, err := s.loadProfile(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	instruction := prompt.NewComposer(isPro, profile).Build()

	histories := make([]*chatbot.ChatHistory, 0, len(history))
	for _, msg := range history {
		histories = append(histories, &chatbot.ChatHistory{
			Chat: msg.Content,
			Role: msg.Role,
		})
	}

	model, maxTokens := s.modelFor(subscription, isPro)
	reply, err := s.generator.Generate(ctx, &chatbot.GenerateRequest{
		Model:             model,
		SystemInstruction: instruction,
		Histories:         histories,
		Message:           request.Message,
		MaxOutputTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	finalReply := reply
	dejaVuFound := false
	if !isPro {
		match, err := s.detectDejaVu(ctx, uow, userId, request.Message, now)
		if err != nil {
			// Detection is best effort, the turn must not fail on it.
			s.sysLogger.Warn("oracle", "deja vu scan failed", map[string]interface{}{
				"user_id": userId,
				"error":   err.Error(),
			})
		} else if match != nil {
			finalReply += dejavu.Notice(match.MatchedDate)
			dejaVuFound = true
			s.sysLogger.Info("oracle", "deja vu detected", map[string]interface{}{
				"user_id":      userId,
				"matched_date": match.MatchedDate,
			})
		}
	}

	finalReply += s.whisperPostscript(session.Messages, request.Message)

	if err := s.appendTurn(ctx, uow, session, request.Message, finalReply); err != nil {
		// Favor responsiveness over durability: the generated reply is
		// still returned even when the save failed.
		s.sysLogger.Warn("oracle", "failed to persist consult turn", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}

	return &dto.ConsultResponse{
		SessionId: session.Id,
		Response:  finalReply,
		DejaVu:    dejaVuFound,
	}, nil
}

// loadOrCreateSession fetches the requested session when it exists and
// belongs to the caller. A missing or foreign session id silently starts a
// fresh conversation instead of erroring.
func (s *oracleService) loadOrCreateSession(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	userId uuid.UUID,
	request *dto.ConsultRequest,
	now time.Time,
) (*entity.OracleSession, error) {
	if request.SessionId != nil {
		session, err := uow.OracleSessionRepository().FindOne(ctx,
			specification.ByID{ID: *request.SessionId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if session != nil {
			return session, nil
		}
	}

	session := &entity.OracleSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     deriveTitle(request.Message),
		Messages:  []entity.ChatMessage{},
		CreatedAt: now,
	}
	if err := uow.OracleSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// appendTurn appends the user and assistant messages and persists the
// session in one row update, so a turn is recorded either whole or not at
// all.
func (s *oracleService) appendTurn(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *entity.OracleSession,
	userMessage string,
	assistantMessage string,
) error {
	now := time.Now()
	session.Messages = append(session.Messages,
		entity.ChatMessage{
			Role:      constant.ChatMessageRoleUser,
			Content:   userMessage,
			Timestamp: now,
		},
		entity.ChatMessage{
			Role:      constant.ChatMessageRoleModel,
			Content:   assistantMessage,
			Timestamp: now,
		},
	)
	session.UpdatedAt = &now
	return uow.OracleSessionRepository().Update(ctx, session)
}

// detectDejaVu collects user messages from sessions that fell out of the
// FREE window (created over 3 days ago, newest first) and matches them
// against the current message.
func (s *oracleService) detectDejaVu(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	userId uuid.UUID,
	message string,
	now time.Time,
) (*dejavu.Match, error) {
	cutoff := now.AddDate(0, 0, -oraclememory.FreeWindowDays)

	pastSessions, err := uow.OracleSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.CreatedBefore{Time: cutoff},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	candidates := make([]dejavu.Candidate, 0)
	for _, past := range pastSessions {
		for _, msg := range past.Messages {
			if msg.Role != constant.ChatMessageRoleUser {
				continue
			}
			candidates = append(candidates, dejavu.Candidate{
				Content:     msg.Content,
				SessionDate: past.CreatedAt,
			})
		}
	}

	return dejavu.Detect(message, candidates), nil
}

func (s *oracleService) whisperPostscript(messages []entity.ChatMessage, currentMessage string) string {
	userMessages := make([]string, 0, len(messages)+1)
	for _, msg := range messages {
		if msg.Role == constant.ChatMessageRoleUser {
			userMessages = append(userMessages, msg.Content)
		}
	}
	userMessages = append(userMessages, currentMessage)

	w := s.whisperEngine.Generate(userMessages)
	if w.Text == "" {
		return ""
	}
	return "\n\n---\n\n💭 軍師の独り言: " + w.Text
}

// loadProfile serves the archetype diagnosis through the in-process
// cache. Profiles are write-once so a hit can never be stale.
func (s *oracleService) loadProfile(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.ArchetypeProfile, error) {
	if profile, found := s.profileCache.Get(userId.String()); found {
		return profile, nil
	}

	profile, err := uow.ArchetypeRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		s.profileCache.Save(userId.String(), profile)
	}
	return profile, nil
}

// modelFor maps the subscription to a generation model and output budget.
// ENTERPRISE rides the PRO model even though its memory behavior is not
// PRO-gated.
func (s *oracleService) modelFor(subscription *entity.Subscription, isPro bool) (string, int) {
	if isPro {
		return s.proModel, proMaxOutputTokens
	}
	if subscription != nil && subscription.Tier == entity.TierEnterprise {
		return s.proModel, proMaxOutputTokens
	}
	return s.freeModel, freeMaxOutputTokens
}

func deriveTitle(message string) string {
	runes := []rune(message)
	if len(runes) <= titleMaxRunes {
		return message
	}
	return string(runes[:titleMaxRunes]) + "..."
}

// GetAllSessions lists a page of the caller's non-archived sessions,
// most recently active first.
func (s *oracleService) GetAllSessions(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.GetAllSessionsResponse, error) {
	if userId == uuid.Nil {
		return nil, ErrUnauthorized
	}

	if limit < 1 || limit > maxSessionPageSize {
		limit = defaultSessionPageSize
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.OracleSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.NotArchived{},
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetAllSessionsResponse, 0, len(sessions))
	for _, session := range sessions {
		response = append(response, &dto.GetAllSessionsResponse{
			Id:        session.Id,
			Title:     session.Title,
			CreatedAt: session.CreatedAt,
			UpdatedAt: session.UpdatedAt,
		})
	}
	return response, nil
}

func (s *oracleService) GetSessionHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetSessionHistoryResponse, error) {
	if userId == uuid.Nil {
		return nil, ErrUnauthorized
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.OracleSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	response := make([]*dto.GetSessionHistoryResponse, 0, len(session.Messages))
	for _, msg := range session.Messages {
		response = append(response, &dto.GetSessionHistoryResponse{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
		})
	}
	return response, nil
}

// ArchiveSession hides a session from the picker. Rows are never deleted.
// Ownership check and flag write run in one transaction so a concurrent
// turn cannot interleave between them.
func (s *oracleService) ArchiveSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	if userId == uuid.Nil {
		return ErrUnauthorized
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	session, err := uow.OracleSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		uow.Rollback()
		return err
	}
	if session == nil {
		uow.Rollback()
		return ErrSessionNotFound
	}

	session.Archived = true
	now := time.Now()
	session.UpdatedAt = &now
	if err := uow.OracleSessionRepository().Update(ctx, session); err != nil {
		uow.Rollback()
		return err
	}
	return uow.Commit()
}
