package service_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/coverpoint/clubhouse/internal/apperrors"
	"github.com/coverpoint/clubhouse/internal/models"
	"github.com/coverpoint/clubhouse/internal/repository"
	"github.com/coverpoint/clubhouse/internal/service"
	"github.com/coverpoint/clubhouse/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGalleryEnv(t *testing.T) (*service.GalleryService, *testutil.FakeUploader, *testutil.TestDatabase) {
	db := testutil.SetupTestDatabase(t)
	t.Cleanup(func() { db.Teardown(t) })

	uploader := &testutil.FakeUploader{}
	svc := service.NewGalleryService(repository.NewGalleryRepository(db.DB), uploader)
	return svc, uploader, db
}

func TestUpload_PersistsSecureURL(t *testing.T) {
	svc, uploader, _ := newGalleryEnv(t)

	item, err := svc.Upload(context.Background(), "alex-kumar", strings.NewReader("fake image bytes"), "training", "Net session")
	require.NoError(t, err)

	assert.Equal(t, 1, uploader.Uploaded)
	assert.Equal(t, "alex-kumar", item.OwnerUsername)
	assert.Contains(t, item.ImageURL, "https://")
	assert.NotEmpty(t, item.PublicID)
	assert.EqualValues(t, 0, item.LikeCount)

	items, err := svc.List("training")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ImageURL, items[0].ImageURL)
}

func TestUpload_UpstreamFailure(t *testing.T) {
	svc, uploader, _ := newGalleryEnv(t)
	uploader.Fail = true

	_, err := svc.Upload(context.Background(), "alex-kumar", strings.NewReader("x"), "", "")
	assert.ErrorIs(t, err, apperrors.ErrUpstream)

	// Nothing persisted on a failed upload
	items, err := svc.List("")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestList_CategoryFilter(t *testing.T) {
	svc, _, db := newGalleryEnv(t)

	require.NoError(t, db.DB.Create(testutil.CreateTestGalleryItem("alex-kumar", "training")).Error)
	require.NoError(t, db.DB.Create(testutil.CreateTestGalleryItem("alex-kumar", "matchday")).Error)

	all, err := svc.List("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	training, err := svc.List("training")
	require.NoError(t, err)
	assert.Len(t, training, 1)
}

func TestDelete_OwnerAndAdminOnly(t *testing.T) {
	svc, uploader, db := newGalleryEnv(t)

	item := testutil.CreateTestGalleryItem("alex-kumar", "training")
	require.NoError(t, db.DB.Create(item).Error)

	// A stranger cannot delete
	err := svc.Delete(context.Background(), item.ID, "someone-else", false)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// The owner can; the hosted asset is removed too
	require.NoError(t, svc.Delete(context.Background(), item.ID, "alex-kumar", false))
	assert.Equal(t, []string{item.PublicID}, uploader.Destroyed)

	// Gone now
	err = svc.Delete(context.Background(), item.ID, "alex-kumar", false)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDelete_AdminOverride(t *testing.T) {
	svc, _, db := newGalleryEnv(t)

	item := testutil.CreateTestGalleryItem("alex-kumar", "training")
	require.NoError(t, db.DB.Create(item).Error)

	require.NoError(t, svc.Delete(context.Background(), item.ID, "club-admin", true))
}

func TestLike_UnknownItem(t *testing.T) {
	svc, _, _ := newGalleryEnv(t)
	assert.ErrorIs(t, svc.Like(uuid.New()), apperrors.ErrNotFound)
}

func TestLike_ConcurrentIncrementsConverge(t *testing.T) {
	svc, _, db := newGalleryEnv(t)

	item := testutil.CreateTestGalleryItem("alex-kumar", "training")
	require.NoError(t, db.DB.Create(item).Error)

	const likers = 25
	var wg sync.WaitGroup
	errs := make(chan error, likers)

	for i := 0; i < likers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.Like(item.ID)
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		}
	}
	require.Equal(t, likers, succeeded)

	var stored models.GalleryItem
	require.NoError(t, db.DB.First(&stored, "id = ?", item.ID).Error)
	assert.EqualValues(t, likers, stored.LikeCount, "no like may be lost")
}
