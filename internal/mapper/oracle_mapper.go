package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/oraclehub-commits/brain-hub/internal/constant"
	"github.com/oraclehub-commits/brain-hub/internal/entity"
	"github.com/oraclehub-commits/brain-hub/internal/model"

	"gorm.io/datatypes"
)

type OracleMapper struct{}

func NewOracleMapper() *OracleMapper {
	return &OracleMapper{}
}

// messageRecord is the wire shape of one entry inside the JSONB messages
// column. Kept separate from entity.ChatMessage so the stored format is
// validated at this boundary instead of leaking loosely typed data deeper.
type messageRecord struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

func (m *OracleMapper) SessionToEntity(s *model.OracleSession) (*entity.OracleSession, error) {
	if s == nil {
		return nil, nil
	}

	messages, err := m.decodeMessages(s.Messages)
	if err != nil {
		return nil, fmt.Errorf("session %s has unreadable message log: %w", s.Id, err)
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.OracleSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		Messages:  messages,
		Archived:  s.Archived,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
	}, nil
}

func (m *OracleMapper) SessionToModel(s *entity.OracleSession) (*model.OracleSession, error) {
	if s == nil {
		return nil, nil
	}

	raw, err := m.encodeMessages(s.Messages)
	if err != nil {
		return nil, err
	}

	out := &model.OracleSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		Messages:  raw,
		Archived:  s.Archived,
		CreatedAt: s.CreatedAt,
	}
	if s.UpdatedAt != nil {
		out.UpdatedAt = *s.UpdatedAt
	}
	return out, nil
}

// decodeMessages validates each stored record. Records without a known
// role or without content are dropped, unparseable timestamps are coerced
// to the zero time so a single bad record cannot break conversation replay.
func (m *OracleMapper) decodeMessages(raw datatypes.JSON) ([]entity.ChatMessage, error) {
	if len(raw) == 0 {
		return []entity.ChatMessage{}, nil
	}

	var records []messageRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}

	messages := make([]entity.ChatMessage, 0, len(records))
	for _, r := range records {
		if r.Role != constant.ChatMessageRoleUser && r.Role != constant.ChatMessageRoleModel {
			continue
		}
		if r.Content == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, r.Timestamp)
		if err != nil {
			ts = time.Time{}
		}
		messages = append(messages, entity.ChatMessage{
			Role:      r.Role,
			Content:   r.Content,
			Timestamp: ts,
		})
	}
	return messages, nil
}

func (m *OracleMapper) encodeMessages(messages []entity.ChatMessage) (datatypes.JSON, error) {
	records := make([]messageRecord, 0, len(messages))
	for _, msg := range messages {
		records = append(records, messageRecord{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp.Format(time.RFC3339),
		})
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
