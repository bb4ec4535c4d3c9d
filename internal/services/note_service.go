package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/Nanif/budget-api/internal/errors"
	"github.com/Nanif/budget-api/internal/models"
	"github.com/Nanif/budget-api/internal/query"
)

// noteService handles note business logic.
type noteService struct {
	db *gorm.DB
}

// NewNoteService creates a new NoteServicer.
func NewNoteService(db *gorm.DB) NoteServicer {
	return &noteService{db: db}
}

// CreateNote creates a new note.
func (s *noteService) CreateNote(userID, title, content string, isPinned bool) (*models.Note, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Title is required")
	}

	note := &models.Note{
		UserID:   userID,
		Title:    title,
		Content:  content,
		IsPinned: isPinned,
	}

	if err := s.db.Create(note).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return note, nil
}

// GetUserNotes returns a filtered, paginated list of notes, pinned first
// and then most recently updated.
func (s *noteService) GetUserNotes(userID string, filter NoteFilter) (*query.PageResponse[models.Note], error) {
	page := filter.Page.OrDefaults()
	scope := query.Params{
		UserID:        userID,
		Search:        filter.Search,
		SearchColumns: []string{"title", "content"},
		Order:         "is_pinned DESC, updated_at DESC",
	}.Scope()

	var totalItems int64
	if err := s.db.Model(&models.Note{}).Scopes(scope).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var notes []models.Note
	if err := s.db.Scopes(scope, query.Paginate(page)).Find(&notes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := query.NewPageResponse(notes, page, totalItems)
	return &result, nil
}

// GetNoteByID retrieves a note by ID for a specific user.
func (s *noteService) GetNoteByID(userID, noteID string) (*models.Note, error) {
	var note models.Note
	if err := s.db.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &note, nil
}

// UpdateNote updates the supplied fields of a note.
func (s *noteService) UpdateNote(userID, noteID, title string, content *string, isPinned *bool) (*models.Note, error) {
	note, err := s.GetNoteByID(userID, noteID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if title != "" {
		updates["title"] = title
	}
	if content != nil {
		updates["content"] = *content
	}
	if isPinned != nil {
		updates["is_pinned"] = *isPinned
	}

	if len(updates) == 0 {
		return note, nil
	}

	if err := s.db.Model(note).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return note, nil
}

// DeleteNote removes a note.
func (s *noteService) DeleteNote(userID, noteID string) error {
	note, err := s.GetNoteByID(userID, noteID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(note).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
