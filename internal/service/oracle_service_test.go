package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/oraclehub-commits/brain-hub/internal/dto"
	"github.com/oraclehub-commits/brain-hub/internal/entity"
	"github.com/oraclehub-commits/brain-hub/internal/repository/contract"
	"github.com/oraclehub-commits/brain-hub/internal/repository/memory"
	"github.com/oraclehub-commits/brain-hub/internal/repository/specification"
	"github.com/oraclehub-commits/brain-hub/internal/repository/unitofwork"
	"github.com/oraclehub-commits/brain-hub/pkg/chatbot"
	"github.com/oraclehub-commits/brain-hub/pkg/oracle/topics"
	"github.com/oraclehub-commits/brain-hub/pkg/oracle/whisper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeSessionRepo struct {
	sessions  map[uuid.UUID]*entity.OracleSession
	updateErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.OracleSession)}
}

func clone(s *entity.OracleSession) *entity.OracleSession {
	cp := *s
	cp.Messages = append([]entity.ChatMessage{}, s.Messages...)
	return &cp
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.OracleSession) error {
	r.sessions[session.Id] = clone(session)
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.OracleSession) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.sessions[session.Id] = clone(session)
	return nil
}

type sessionFilter struct {
	id            *uuid.UUID
	userId        *uuid.UUID
	createdBefore *time.Time
	notArchived   bool
	orderDesc     bool
	orderField    string
	limit         int
	offset        int
}

func parseSpecs(specs []specification.Specification) sessionFilter {
	var f sessionFilter
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			id := v.ID
			f.id = &id
		case specification.UserOwnedBy:
			userId := v.UserID
			f.userId = &userId
		case specification.CreatedBefore:
			t := v.Time
			f.createdBefore = &t
		case specification.NotArchived:
			f.notArchived = true
		case specification.OrderBy:
			f.orderDesc = v.Desc
			f.orderField = v.Field
		case specification.Pagination:
			f.limit = v.Limit
			f.offset = v.Offset
		}
	}
	return f
}

func (f sessionFilter) matches(s *entity.OracleSession) bool {
	if f.id != nil && s.Id != *f.id {
		return false
	}
	if f.userId != nil && s.UserId != *f.userId {
		return false
	}
	if f.createdBefore != nil && !s.CreatedAt.Before(*f.createdBefore) {
		return false
	}
	if f.notArchived && s.Archived {
		return false
	}
	return true
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OracleSession, error) {
	f := parseSpecs(specs)
	for _, s := range r.sessions {
		if f.matches(s) {
			return clone(s), nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OracleSession, error) {
	f := parseSpecs(specs)
	out := make([]*entity.OracleSession, 0)
	for _, s := range r.sessions {
		if f.matches(s) {
			out = append(out, clone(s))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if f.orderDesc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if f.offset > 0 {
		if f.offset >= len(out) {
			return nil, nil
		}
		out = out[f.offset:]
	}
	if f.limit > 0 && len(out) > f.limit {
		out = out[:f.limit]
	}
	return out, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeSubscriptionRepo struct {
	subscription *entity.Subscription
}

func (r *fakeSubscriptionRepo) Create(ctx context.Context, sub *entity.Subscription) error { return nil }
func (r *fakeSubscriptionRepo) Update(ctx context.Context, sub *entity.Subscription) error { return nil }
func (r *fakeSubscriptionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error) {
	return r.subscription, nil
}

type fakeArchetypeRepo struct {
	profile *entity.ArchetypeProfile
}

func (r *fakeArchetypeRepo) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.ArchetypeProfile, error) {
	return r.profile, nil
}

type fakeUow struct {
	sessionRepo      *fakeSessionRepo
	subscriptionRepo *fakeSubscriptionRepo
	archetypeRepo    *fakeArchetypeRepo

	began      int
	committed  int
	rolledBack int
}

func (u *fakeUow) Begin(ctx context.Context) error { u.began++; return nil }
func (u *fakeUow) Commit() error                   { u.committed++; return nil }
func (u *fakeUow) Rollback() error                 { u.rolledBack++; return nil }
func (u *fakeUow) OracleSessionRepository() contract.OracleSessionRepository {
	return u.sessionRepo
}
func (u *fakeUow) SubscriptionRepository() contract.SubscriptionRepository {
	return u.subscriptionRepo
}
func (u *fakeUow) ArchetypeRepository() contract.ArchetypeRepository {
	return u.archetypeRepo
}

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeGenerator struct {
	reply       string
	err         error
	lastRequest *chatbot.GenerateRequest
}

func (g *fakeGenerator) Generate(ctx context.Context, request *chatbot.GenerateRequest) (string, error) {
	g.lastRequest = request
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fixture struct {
	service   IOracleService
	uow       *fakeUow
	generator *fakeGenerator
	userId    uuid.UUID
}

func newFixture() *fixture {
	uow := &fakeUow{
		sessionRepo:      newFakeSessionRepo(),
		subscriptionRepo: &fakeSubscriptionRepo{},
		archetypeRepo:    &fakeArchetypeRepo{},
	}
	generator := &fakeGenerator{reply: "まずは現状を整理しましょう。"}
	svc := NewOracleService(
		&fakeFactory{uow: uow},
		generator,
		memory.NewProfileCache(),
		whisper.NewEngine(topics.NewJapaneseBusinessExtractor()),
		nopLogger{},
		"gemini-2.0-flash-lite",
		"gemini-2.0-pro",
	)
	return &fixture{
		service:   svc,
		uow:       uow,
		generator: generator,
		userId:    uuid.New(),
	}
}

func (f *fixture) addSession(userId uuid.UUID, createdAt time.Time, messages ...entity.ChatMessage) uuid.UUID {
	session := &entity.OracleSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     "past session",
		Messages:  messages,
		CreatedAt: createdAt,
	}
	f.uow.sessionRepo.sessions[session.Id] = session
	return session.Id
}

// --- tests ---

func TestConsultCreatesSessionAndAppendsTurn(t *testing.T) {
	f := newFixture()

	res, err := f.service.Consult(context.Background(), f.userId, &dto.ConsultRequest{
		Message: "売上を伸ばしたい",
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Contains(t, res.Response, f.generator.reply)

	stored := f.uow.sessionRepo.sessions[res.SessionId]
	require.NotNil(t, stored)
	// Exactly two entries per turn: user + assistant
	require.Len(t, stored.Messages, 2)
	assert.Equal(t, "user", stored.Messages[0].Role)
	assert.Equal(t, "売上を伸ばしたい", stored.Messages[0].Content)
	assert.Equal(t, "model", stored.Messages[1].Role)
	assert.Equal(t, res.Response, stored.Messages[1].Content)
	assert.WithinDuration(t, time.Now(), stored.Messages[0].Timestamp, 5*time.Second)
	assert.WithinDuration(t, time.Now(), stored.Messages[1].Timestamp, 5*time.Second)
	assert.Equal(t, "売上を伸ばしたい", stored.Title)
}

func TestConsultTitleTruncation(t *testing.T) {
	f := newFixture()

	long := strings.Repeat("あ", 60)
	res, err := f.service.Consult(context.Background(), f.userId, &dto.ConsultRequest{
		Message: long,
	})
	require.NoError(t, err)

	stored := f.uow.sessionRepo.sessions[res.SessionId]
	assert.Equal(t, strings.Repeat("あ", 50)+"...", stored.Title)
}

func TestConsultFreeDejaVu(t *testing.T) {
	f := newFixture()

	old := time.Now().AddDate(0, 0, -10)
	f.addSession(f.userId, old, entity.ChatMessage{
		Role:      "user",
		Content:   "SNS 投稿 を 頑張りたい",
		Timestamp: old,
	})

	res, err := f.service.Consult(context.Background(), f.userId, &dto.ConsultRequest{
		Message: "SNS投稿を増やしたい",
	})
	require.NoError(t, err)

	assert.True(t, res.DejaVu)
	assert.Contains(t, res.Response, "既視感")

	// The notice is part of the persisted assistant message too
	stored := f.uow.sessionRepo.sessions[res.SessionId]
	require.Len(t, stored.Messages, 2)
	assert.Contains(t, stored.Messages[1].Content, "既視感")
}

func TestConsultProSkipsDejaVu(t *testing.T) {
	f := newFixture()
	f.uow.subscriptionRepo.subscription = &entity.Subscription{
		UserId: f.userId,
		Tier:   entity.TierPro,
	}

	old := time.Now().AddDate(0, 0, -10)
	f.addSession(f.userId, old, entity.ChatMessage{
		Role:      "user",
		Content:   "SNS 投稿 を 頑張りたい",
		Timestamp: old,
	})

	res, err := f.service.Consult(context.Background(), f.userId, &dto.ConsultRequest{
		Message: "SNS投稿を増やしたい",
	})
	require.NoError(t, err)

	assert.False(t, res.DejaVu)
	assert.NotContains(t, res.Response, "既視感")
	assert.Equal(t, "gemini-2.0-pro", f.generator.lastRequest.Model)
}

func TestConsultMemoryWindowByTier(t *testing.T) {
	now := time.Now()
	messages := make([]entity.ChatMessage, 0, 8)
	for i := 0; i < 8; i++ {
		role := "user"
		if i%2 == 1 {
			role = "model"
		}
		messages = append(messages, entity.ChatMessage{
			Role:      role,
			Content:   fmt.Sprintf("m%d", i),
			Timestamp: now.Add(-time.Duration(8-i) * time.Hour),
		})
	}

	t.Run("free sees at most five messages", func(t *testing.T) {
		f := newFixture()
		sessionId := f.addSession(f.userId, now.Add(-8*time.Hour), messages...)

		_, err := f.service.Consult(context.Background(), f.userId, &dto.ConsultRequest{
			Message:   "続きを相談したい",
			SessionId: &sessionId,
		})
		require.NoError(t, err)
		assert.Len(t, f.generator.lastRequest.Histories, 5)
		assert.Equal(t, "gemini-2.0-flash-lite", f.generator.lastRequest.Model)
	})

	t.Run("pro sees everything", func(t *testing.T) {
		f := newFixture()
		f.uow.subscriptionRepo.subscription = &entity.Subscription{
			UserId: f.userId,
			Tier:   entity.TierPro,
		}
		sessionId := f.addSession(f.userId, now.Add(-8*time.Hour), messages...)

		_, err := f.service.Consult(context.Background(), f.userId, &dto.ConsultRequest{
			Message:   "続きを相談したい",
			SessionId: &sessionId,
		})
		require.NoError(t, err)
		assert.Len(t, f.generator.lastRequest.Histories, 8)
	})

	t.Run("expired pro behaves as free", func(t *testing.T) {
		f := newFixture()
		expired := now.Add(-time.Hour)
		f.uow.subscriptionRepo.subscription = &entity.Subscription{
			UserId:       f.userId,
			Tier:         entity.TierPro,
			ProExpiresAt: &expired,
		}
		sessionId := f.addSession(f.userId, now.Add(-8*time.Hour), messages...)

		_, err := f.service.Consult(context.Background(), f.userId, &dto.ConsultRequest{
			Message:   "続きを相談したい",
			SessionId: &sessionId,
		})
		require.NoError(t, err)
		assert.Len(t, f.generator.lastRequest.Histories, 5)
		assert.Equal(t, "gemini-2.0-flash-lite", f.generator.lastRequest.Model)
	})
}

func TestConsultGenerationFailureDiscardsTurn(t *testing.T) {
	f := newFixture()
	f.generator.err = errors.New("quota exceeded")

	sessionId := f.addSession(f.userId, time.Now().Add(-time.Hour), entity.ChatMessage{
		Role:      "user",
		Content:   "前回の相談",
		Timestamp: time.Now().Add(-time.Hour),
	})

	_, err := f.service.Consult(context.Background(), f.userId, &dto.ConsultRequest{
		Message:   "続きです",
		SessionId: &sessionId,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)

	// Turn discarded entirely, no half-recorded message pair
	stored := f.uow.sessionRepo.sessions[sessionId]
	assert.Len(t, stored.Messages, 1)
}

func TestConsultPersistFailureStillReturnsReply(t *testing.T) {
	f := newFixture()
	f.uow.sessionRepo.updateErr = errors.New("connection reset")

	res, err := f.service.Consult(context.Background(), f.userId, &dto.ConsultRequest{
		Message: "売上を伸ばしたい",
	})
	require.NoError(t, err)
	assert.Contains(t, res.Response, f.generator.reply)
}

func TestConsultForeignSessionStartsNew(t *testing.T) {
	f := newFixture()

	otherUser := uuid.New()
	foreignId := f.addSession(otherUser, time.Now().Add(-time.Hour), entity.ChatMessage{
		Role:      "user",
		Content:   "他人の相談",
		Timestamp: time.Now().Add(-time.Hour),
	})

	res, err := f.service.Consult(context.Background(), f.userId, &dto.ConsultRequest{
		Message:   "新しい相談",
		SessionId: &foreignId,
	})
	require.NoError(t, err)

	assert.NotEqual(t, foreignId, res.SessionId)
	// The foreign session stays untouched
	assert.Len(t, f.uow.sessionRepo.sessions[foreignId].Messages, 1)
	assert.Len(t, f.uow.sessionRepo.sessions[res.SessionId].Messages, 2)
}

func TestConsultArchetypeInstruction(t *testing.T) {
	f := newFixture()
	f.uow.subscriptionRepo.subscription = &entity.Subscription{
		UserId: f.userId,
		Tier:   entity.TierPro,
	}
	f.uow.archetypeRepo.profile = &entity.ArchetypeProfile{
		Type:     "賢者",
		Shadow:   "考えすぎて行動が止まる",
		Solution: "小さく試して検証する",
	}

	_, err := f.service.Consult(context.Background(), f.userId, &dto.ConsultRequest{
		Message: "相談です",
	})
	require.NoError(t, err)

	assert.Contains(t, f.generator.lastRequest.SystemInstruction, "考えすぎて行動が止まる")
	assert.Contains(t, f.generator.lastRequest.SystemInstruction, "小さく試して検証する")
}

func TestConsultUnauthorized(t *testing.T) {
	f := newFixture()

	_, err := f.service.Consult(context.Background(), uuid.Nil, &dto.ConsultRequest{Message: "x"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetSessionHistory(t *testing.T) {
	f := newFixture()

	ts := time.Now().Add(-time.Hour)
	sessionId := f.addSession(f.userId, ts,
		entity.ChatMessage{Role: "user", Content: "質問", Timestamp: ts},
		entity.ChatMessage{Role: "model", Content: "回答", Timestamp: ts},
	)

	history, err := f.service.GetSessionHistory(context.Background(), f.userId, sessionId)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "質問", history[0].Content)

	// Another user's session reads as not found
	_, err = f.service.GetSessionHistory(context.Background(), uuid.New(), sessionId)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestArchiveSessionHidesFromListing(t *testing.T) {
	f := newFixture()

	ts := time.Now().Add(-time.Hour)
	keepId := f.addSession(f.userId, ts)
	archiveId := f.addSession(f.userId, ts.Add(time.Minute))

	require.NoError(t, f.service.ArchiveSession(context.Background(), f.userId, archiveId))
	assert.True(t, f.uow.sessionRepo.sessions[archiveId].Archived)

	// The archive write runs transactionally
	assert.Equal(t, 1, f.uow.began)
	assert.Equal(t, 1, f.uow.committed)

	sessions, err := f.service.GetAllSessions(context.Background(), f.userId, 0, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, keepId, sessions[0].Id)

	// Archiving someone else's session is rejected and rolled back
	err = f.service.ArchiveSession(context.Background(), uuid.New(), keepId)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 1, f.uow.rolledBack)
}

func TestGetAllSessionsPagination(t *testing.T) {
	f := newFixture()

	base := time.Now().Add(-time.Hour)
	oldest := f.addSession(f.userId, base)
	middle := f.addSession(f.userId, base.Add(time.Minute))
	newest := f.addSession(f.userId, base.Add(2*time.Minute))

	page, err := f.service.GetAllSessions(context.Background(), f.userId, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, newest, page[0].Id)
	assert.Equal(t, middle, page[1].Id)

	page, err = f.service.GetAllSessions(context.Background(), f.userId, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, oldest, page[0].Id)

	// Out-of-range limits fall back to the default page size
	page, err = f.service.GetAllSessions(context.Background(), f.userId, -1, 0)
	require.NoError(t, err)
	assert.Len(t, page, 3)
}
