package studio

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cumbersomeamir/lumina-spaces/internal/common"
	"github.com/cumbersomeamir/lumina-spaces/internal/genai"
)

const (
	editAcknowledgement = "I've updated the design based on your request. How does it look?"
	chatApology         = "I'm having trouble connecting to my design database right now. Please try again in a moment."

	// Messages at or above this length are always treated as advice
	// questions, whatever verbs they contain.
	maxEditRequestLen = 100
)

// Short keyword-bearing messages are edit directives; everything else goes
// to the advice call. Substring match, not word match.
var editKeywords = []string{"make", "change", "remove", "add", "put", "filter"}

func isEditDirective(text string) bool {
	if len(text) >= maxEditRequestLen {
		return false
	}
	lower := strings.ToLower(text)
	for _, k := range editKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

var (
	ErrNoOriginalImage = errors.New("studio: session has no uploaded image")
	ErrUnknownStyle    = errors.New("studio: unknown style id")
	ErrInvalidImage    = errors.New("studio: invalid image data url")
)

type Service struct {
	repo          *Repo
	gen           genai.Generator
	historyWindow int
	log           *zap.SugaredLogger
}

func NewService(repo *Repo, gen genai.Generator, historyWindow int, log *zap.SugaredLogger) *Service {
	if historyWindow <= 0 || historyWindow > 100 {
		historyWindow = 20
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{repo: repo, gen: gen, historyWindow: historyWindow, log: log}
}

func (s *Service) CreateSession(ctx context.Context) (*Session, error) {
	sid, err := common.NewULID()
	if err != nil {
		return nil, err
	}
	sess := &Session{
		SessionID: sid,
		Status:    StatusIdle,
	}
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	return s.repo.GetSessionBySessionID(ctx, sessionID)
}

// UploadImage stores the room photo and moves the session to READY. The
// upload either lands fully or leaves the session untouched.
func (s *Service) UploadImage(ctx context.Context, sessionID, imageDataURL string) (*Session, error) {
	if !strings.HasPrefix(imageDataURL, "data:") || !strings.Contains(imageDataURL, ",") {
		return nil, ErrInvalidImage
	}
	if _, err := s.repo.GetSessionBySessionID(ctx, sessionID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateSessionFields(ctx, sessionID, map[string]any{
		"original_image": imageDataURL,
		"status":         StatusReady,
	}); err != nil {
		return nil, err
	}
	return s.repo.GetSessionBySessionID(ctx, sessionID)
}

// ApplyStyle runs one style synthesis: READY -> GENERATING -> READY. On
// failure the original image survives so the user can retry; the error
// propagates so the caller can surface a blocking notification. A result
// arriving after a reset is dropped without touching the fresh session.
func (s *Service) ApplyStyle(ctx context.Context, sessionID, styleID string) (*Session, error) {
	sess, err := s.repo.GetSessionBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.OriginalImage == "" {
		return nil, ErrNoOriginalImage
	}
	style, ok := StyleByID(styleID)
	if !ok {
		return nil, ErrUnknownStyle
	}

	epoch := sess.Epoch
	if err := s.repo.UpdateSessionFields(ctx, sessionID, map[string]any{
		"style_id": style.ID,
		"status":   StatusGenerating,
	}); err != nil {
		return nil, err
	}

	img, genErr := s.gen.GenerateImage(ctx, sess.OriginalImage, style.Prompt)

	cur, err := s.repo.GetSessionBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cur.Epoch != epoch {
		s.log.Infow("discarding stale synthesis result", "session_id", sessionID)
		return cur, nil
	}

	if genErr != nil {
		s.log.Warnw("style synthesis failed", "session_id", sessionID, "style_id", style.ID, "err", genErr)
		_ = s.repo.UpdateSessionFields(ctx, sessionID, map[string]any{"status": StatusReady})
		return nil, genErr
	}

	if err := s.repo.UpdateSessionFields(ctx, sessionID, map[string]any{
		"generated_image": img,
		"status":          StatusReady,
	}); err != nil {
		return nil, err
	}
	return s.repo.GetSessionBySessionID(ctx, sessionID)
}

// SendMessage is the chat dispatcher. The user's message is appended before
// the outcome is known, so the transcript keeps the question even when the
// answer fails. The returned message is the model's turn, or nil when the
// session was reset while the call was in flight.
func (s *Service) SendMessage(ctx context.Context, sessionID, text string) (*Message, error) {
	sess, err := s.repo.GetSessionBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	epoch := sess.Epoch

	userMsg := &Message{
		MessageID: uuid.NewString(),
		SessionID: sessionID,
		Role:      RoleUser,
		Text:      text,
	}
	if err := s.repo.InsertMessage(ctx, userMsg); err != nil {
		return nil, err
	}

	if isEditDirective(text) && sess.GeneratedImage != "" {
		return s.dispatchEdit(ctx, sess, epoch, text)
	}
	return s.dispatchAdvice(ctx, sess, epoch, userMsg, text)
}

func (s *Service) dispatchEdit(ctx context.Context, sess *Session, epoch uint64, text string) (*Message, error) {
	if err := s.repo.UpdateSessionFields(ctx, sess.SessionID, map[string]any{
		"status": StatusEditing,
	}); err != nil {
		return nil, err
	}

	img, editErr := s.gen.EditImage(ctx, sess.GeneratedImage, text)

	cur, err := s.repo.GetSessionBySessionID(ctx, sess.SessionID)
	if err != nil {
		return nil, err
	}
	if cur.Epoch != epoch {
		s.log.Infow("discarding stale edit result", "session_id", sess.SessionID)
		return nil, nil
	}

	if editErr != nil {
		s.log.Warnw("image edit failed", "session_id", sess.SessionID, "err", editErr)
		_ = s.repo.UpdateSessionFields(ctx, sess.SessionID, map[string]any{"status": StatusReady})
		return s.appendModelMessage(ctx, sess.SessionID, chatApology, nil)
	}

	if err := s.repo.UpdateSessionFields(ctx, sess.SessionID, map[string]any{
		"generated_image": img,
		"status":          StatusReady,
	}); err != nil {
		return nil, err
	}
	return s.appendModelMessage(ctx, sess.SessionID, editAcknowledgement, nil)
}

func (s *Service) dispatchAdvice(ctx context.Context, sess *Session, epoch uint64, userMsg *Message, text string) (*Message, error) {
	// history window excludes the message being dispatched
	recentDesc, err := s.repo.ListRecentMessagesBefore(ctx, sess.SessionID, s.historyWindow, userMsg.ID)
	if err != nil {
		return nil, err
	}
	history := make([]genai.Turn, 0, len(recentDesc))
	for i := len(recentDesc) - 1; i >= 0; i-- {
		m := recentDesc[i]
		history = append(history, genai.Turn{Role: m.Role, Text: m.Text})
	}

	reply, sources, advErr := s.gen.Advise(ctx, text, history)

	cur, err := s.repo.GetSessionBySessionID(ctx, sess.SessionID)
	if err != nil {
		return nil, err
	}
	if cur.Epoch != epoch {
		s.log.Infow("discarding stale advice result", "session_id", sess.SessionID)
		return nil, nil
	}

	if advErr != nil {
		s.log.Warnw("advice call failed", "session_id", sess.SessionID, "err", advErr)
		return s.appendModelMessage(ctx, sess.SessionID, chatApology, nil)
	}
	return s.appendModelMessage(ctx, sess.SessionID, reply, sources)
}

func (s *Service) appendModelMessage(ctx context.Context, sessionID, text string, sources []genai.Source) (*Message, error) {
	m := &Message{
		MessageID: uuid.NewString(),
		SessionID: sessionID,
		Role:      RoleModel,
		Text:      text,
		Sources:   sources,
	}
	if err := s.repo.InsertMessage(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) ListMessages(ctx context.Context, sessionID string, limit int, afterID uint64) ([]Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if _, err := s.repo.GetSessionBySessionID(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.repo.ListMessages(ctx, sessionID, limit, afterID)
}

// Reset returns the session to the state of a freshly created one.
func (s *Service) Reset(ctx context.Context, sessionID string) (*Session, error) {
	if _, err := s.repo.GetSessionBySessionID(ctx, sessionID); err != nil {
		return nil, err
	}
	if err := s.repo.ResetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.repo.GetSessionBySessionID(ctx, sessionID)
}

// CreateGenerationJob validates the request and enqueues nothing itself;
// the caller publishes the returned job id.
func (s *Service) CreateGenerationJob(ctx context.Context, sessionID, styleID string) (*GenerationJob, error) {
	sess, err := s.repo.GetSessionBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.OriginalImage == "" {
		return nil, ErrNoOriginalImage
	}
	if _, ok := StyleByID(styleID); !ok {
		return nil, ErrUnknownStyle
	}

	id, err := common.NewULID()
	if err != nil {
		return nil, err
	}
	job := &GenerationJob{
		ID:        id,
		SessionID: sessionID,
		StyleID:   styleID,
		Status:    JobQueued,
	}
	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *Service) GetJob(ctx context.Context, jobID string) (*GenerationJob, error) {
	return s.repo.GetJobByID(ctx, jobID)
}

// RunGenerationJob is the worker entry point for one queued job.
func (s *Service) RunGenerationJob(ctx context.Context, jobID string) error {
	_ = s.repo.UpdateJobStatusRunning(ctx, jobID)

	j, err := s.repo.GetJobByID(ctx, jobID)
	if err != nil {
		return err
	}

	if _, err := s.ApplyStyle(ctx, j.SessionID, j.StyleID); err != nil {
		_ = s.repo.MarkJobFailed(ctx, jobID, err.Error())
		return err
	}
	return s.repo.MarkJobSucceeded(ctx, jobID)
}
