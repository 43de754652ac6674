package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/coverpoint/clubhouse/internal/models"
	"github.com/coverpoint/clubhouse/internal/uploads"
	"github.com/coverpoint/clubhouse/internal/utils"
	"github.com/google/uuid"
)

// CreateTestAccount builds an account with a real password hash.
func CreateTestAccount(name, username, phone, email, password string, role models.Role, status models.ApprovalStatus) (*models.Account, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.Account{
		ID:           uuid.New(),
		Name:         name,
		Username:     username,
		Phone:        phone,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       status,
	}, nil
}

// CreateTestMatch builds an upcoming match.
func CreateTestMatch(team1, team2 string) *models.Match {
	return &models.Match{
		ID:          uuid.New(),
		Team1:       team1,
		Team2:       team2,
		Venue:       "Club Ground",
		MatchType:   "T20",
		ScheduledAt: time.Now().Add(48 * time.Hour),
		Status:      models.MatchUpcoming,
	}
}

// CreateTestGalleryItem builds a gallery item owned by username.
func CreateTestGalleryItem(owner, category string) *models.GalleryItem {
	id := uuid.New()
	return &models.GalleryItem{
		ID:            id,
		OwnerUsername: owner,
		ImageURL:      fmt.Sprintf("https://images.example.com/%s.jpg", id),
		PublicID:      fmt.Sprintf("test/%s", id),
		Category:      category,
		Title:         "test photo",
	}
}

// RecordingMailer captures outgoing reset codes instead of sending.
type RecordingMailer struct {
	mu    sync.Mutex
	Sent  []SentMail
	Fail  bool
	Error error
}

type SentMail struct {
	To   string
	Code string
}

func (m *RecordingMailer) SendResetCode(to, code string) error {
	if m.Fail {
		if m.Error != nil {
			return m.Error
		}
		return fmt.Errorf("smtp unavailable")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentMail{To: to, Code: code})
	return nil
}

// LastCode returns the most recently sent code, or "".
func (m *RecordingMailer) LastCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return ""
	}
	return m.Sent[len(m.Sent)-1].Code
}

// FakeUploader stands in for the image host.
type FakeUploader struct {
	mu        sync.Mutex
	Uploaded  int
	Destroyed []string
	Fail      bool
}

func (u *FakeUploader) Upload(_ context.Context, file io.Reader, folder string) (*uploads.UploadResult, error) {
	if u.Fail {
		return nil, fmt.Errorf("image host unavailable")
	}
	// Drain the reader like a real upload would.
	if file != nil {
		_, _ = io.Copy(io.Discard, file)
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Uploaded++
	publicID := fmt.Sprintf("%s/fake-%d", folder, u.Uploaded)
	return &uploads.UploadResult{
		SecureURL: fmt.Sprintf("https://images.example.com/%s.jpg", publicID),
		PublicID:  publicID,
	}, nil
}

func (u *FakeUploader) Destroy(_ context.Context, publicID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Destroyed = append(u.Destroyed, publicID)
	return nil
}
