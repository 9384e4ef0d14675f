package studio

import (
	"context"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) CreateSession(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *Repo) GetSessionBySessionID(ctx context.Context, sessionID string) (*Session, error) {
	var s Session
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSessionFields applies one atomic read-modify-write against a session
// row identified by its public id.
func (r *Repo) UpdateSessionFields(ctx context.Context, sessionID string, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&Session{}).
		Where("session_id = ?", sessionID).
		Updates(fields).Error
}

// ResetSession clears the aggregate back to a fresh state and bumps the
// epoch so in-flight results issued before the reset are discarded.
func (r *Repo) ResetSession(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&Message{}).Error; err != nil {
			return err
		}
		return tx.Model(&Session{}).
			Where("session_id = ?", sessionID).
			Updates(map[string]any{
				"status":          StatusIdle,
				"style_id":        nil,
				"original_image":  "",
				"generated_image": "",
				"epoch":           gorm.Expr("epoch + 1"),
			}).Error
	})
}

func (r *Repo) InsertMessage(ctx context.Context, m *Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// ListMessages returns messages in ASC id order (oldest -> newest).
func (r *Repo) ListMessages(ctx context.Context, sessionID string, limit int, afterID uint64) ([]Message, error) {
	q := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Limit(limit)

	if afterID > 0 {
		q = q.Where("id > ?", afterID)
	}

	var msgs []Message
	if err := q.Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// ListRecentMessagesBefore returns up to limit messages older than beforeID
// in DESC id order (newest -> oldest). Used to build the advice history
// window without the in-flight message.
func (r *Repo) ListRecentMessagesBefore(ctx context.Context, sessionID string, limit int, beforeID uint64) ([]Message, error) {
	if limit <= 0 {
		limit = 20
	}
	var msgs []Message
	if err := r.db.WithContext(ctx).
		Where("session_id = ? AND id < ?", sessionID, beforeID).
		Order("id DESC").
		Limit(limit).
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// Job CRUD
func (r *Repo) CreateJob(ctx context.Context, job *GenerationJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *Repo) GetJobByID(ctx context.Context, id string) (*GenerationJob, error) {
	var j GenerationJob
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *Repo) UpdateJobStatusRunning(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&GenerationJob{}).
		Where("id = ? AND status = ?", id, JobQueued).
		Update("status", JobRunning).Error
}

func (r *Repo) MarkJobSucceeded(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&GenerationJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": JobSucceeded,
			"error":  nil,
		}).Error
}

func (r *Repo) MarkJobFailed(ctx context.Context, id string, errMsg string) error {
	return r.db.WithContext(ctx).Model(&GenerationJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": JobFailed,
			"error":  errMsg,
		}).Error
}
