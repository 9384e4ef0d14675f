package studio

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/cumbersomeamir/lumina-spaces/internal/genai"
)

// Status is the session's visualization state. Synthesis and edits always
// resolve back to READY; IDLE is both the initial and the reset state.
type Status string

const (
	StatusIdle       Status = "IDLE"
	StatusReady      Status = "READY"
	StatusGenerating Status = "GENERATING"
	StatusEditing    Status = "EDITING"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Session is the aggregate root: one uploaded room, its current rendering,
// and the conversation around it. Epoch increments on every reset so results
// of calls issued before the reset can be recognized and dropped.
type Session struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	SessionID string `gorm:"type:varchar(26);uniqueIndex;not null" json:"session_id"`

	Status         Status  `gorm:"type:varchar(16);not null" json:"status"`
	StyleID        *string `gorm:"type:varchar(32)" json:"style_id"`
	OriginalImage  string  `gorm:"type:longtext" json:"original_image"`
	GeneratedImage string  `gorm:"type:longtext" json:"generated_image"`
	Epoch          uint64  `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Session) TableName() string { return "studio_sessions" }

// Message is one conversational turn. Rows are append-only; a session reset
// deletes them wholesale.
type Message struct {
	ID        uint64     `gorm:"primaryKey;autoIncrement" json:"-"`
	MessageID string     `gorm:"type:varchar(36);uniqueIndex;not null" json:"message_id"`
	SessionID string     `gorm:"type:varchar(26);index;not null" json:"session_id"`
	Role      string     `gorm:"type:varchar(16);not null" json:"role"`
	Text      string     `gorm:"type:text;not null" json:"text"`
	Sources   SourceList `gorm:"type:text" json:"sources"`
	CreatedAt time.Time  `json:"created_at"`
}

func (Message) TableName() string { return "studio_messages" }

// SourceList stores grounding citations as a JSON text column.
type SourceList []genai.Source

func (s SourceList) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *SourceList) Scan(v any) error {
	if v == nil {
		*s = nil
		return nil
	}
	var raw []byte
	switch t := v.(type) {
	case []byte:
		raw = t
	case string:
		raw = []byte(t)
	default:
		return errors.New("studio: unsupported source list column type")
	}
	if len(raw) == 0 {
		*s = nil
		return nil
	}
	return json.Unmarshal(raw, s)
}
