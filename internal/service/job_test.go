package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobpulse/jobs-api/internal/data"
	"github.com/jobpulse/jobs-api/internal/domain/model"
	apperrors "github.com/jobpulse/jobs-api/internal/errors"
	"github.com/jobpulse/jobs-api/internal/mocks"
)

func strPtr(s string) *string { return &s }

func newTestJobService(repo *mocks.MockJobRepository) *JobService {
	return NewJobService(JobServiceOptions{Repo: repo})
}

func validCreateRequest() *model.CreateJobRequest {
	return &model.CreateJobRequest{
		ExternalID: "ext-123",
		Platform:   model.PlatformLinkedIn,
		URL:        "https://www.linkedin.com/jobs/view/123",
		Title:      "Backend Engineer",
		Company:    "Acme",
		Location:   "Sydney",
	}
}

func storedJob() *model.Job {
	return &model.Job{
		ID:         42,
		ExternalID: "ext-123",
		Platform:   model.PlatformLinkedIn,
		URL:        "https://www.linkedin.com/jobs/view/123",
		Title:      "Backend Engineer",
		Company:    "Acme",
		Location:   "Sydney",
		IsActive:   true,
		ScrapedAt:  time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestJobService_Create_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	req := validCreateRequest()
	created := storedJob()
	mockRepo.EXPECT().Create(ctx, req).Return(created, nil)

	got, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestJobService_Create_AcceptsSubdomainURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	req := validCreateRequest()
	req.URL = "https://au.linkedin.com/jobs/view/123"
	mockRepo.EXPECT().Create(ctx, req).Return(storedJob(), nil)

	_, err := svc.Create(ctx, req)
	require.NoError(t, err)
}

func TestJobService_Create_RejectsMismatchedDomain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	req := validCreateRequest()
	req.Platform = model.PlatformSeek

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "does not match platform 'seek'")
}

func TestJobService_Create_RejectsURLWithoutHostname(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	req := validCreateRequest()
	req.URL = "not-a-url"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "url", apperrors.GetField(err))
}

func TestJobService_Create_RejectsUnknownPlatform(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	req := validCreateRequest()
	req.Platform = model.Platform("glassdoor")

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "Invalid platform 'glassdoor'")
}

func TestJobService_Create_RejectsFuturePostedDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	tomorrow := model.Today()
	tomorrow.Time = tomorrow.Time.AddDate(0, 0, 1)
	req := validCreateRequest()
	req.PostedDate = &tomorrow

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "posted_date cannot be in the future.", err.Error())
}

func TestJobService_Create_DuplicateMapsToConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	req := validCreateRequest()
	mockRepo.EXPECT().Create(ctx, req).Return(nil, data.ErrJobExists)

	_, err := svc.Create(ctx, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "A job with this external_id already exists for the selected platform.", err.Error())
}

func TestJobService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	mockRepo.EXPECT().GetByID(ctx, int64(999)).Return(nil, data.ErrJobNotFound)

	_, err := svc.Get(ctx, 999)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "Job 999 not found.", err.Error())
}

func TestJobService_GetByExternalID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	job := storedJob()
	mockRepo.EXPECT().GetByExternalID(ctx, "ext-123", model.PlatformLinkedIn).Return(job, nil)

	got, err := svc.GetByExternalID(ctx, "ext-123", model.PlatformLinkedIn)
	require.NoError(t, err)
	assert.Equal(t, job, got)

	_, err = svc.GetByExternalID(ctx, "ext-123", model.Platform("bogus"))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestJobService_List_RejectsUnknownPlatformFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	bad := model.Platform("monster")
	_, err := svc.List(context.Background(), model.JobsListOptions{Limit: 10, Platform: &bad, IsActive: true})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "Invalid platform 'monster'")
}

func TestJobService_List_WrapsRepositoryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	opts := model.JobsListOptions{Skip: 0, Limit: 10, IsActive: true}
	mockRepo.EXPECT().List(ctx, opts).Return(nil, errors.New("connection refused"))

	_, err := svc.List(ctx, opts)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "Failed to list jobs.")
}

func TestJobService_Update_RejectsExternalIDChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	mockRepo.EXPECT().GetByID(ctx, int64(42)).Return(storedJob(), nil)

	_, err := svc.Update(ctx, 42, model.UpdateJobRequest{ExternalID: strPtr("other-id")})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "external_id cannot be changed after creation.", err.Error())
}

func TestJobService_Update_RejectsPlatformChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	mockRepo.EXPECT().GetByID(ctx, int64(42)).Return(storedJob(), nil)

	seek := model.PlatformSeek
	_, err := svc.Update(ctx, 42, model.UpdateJobRequest{Platform: &seek})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "platform cannot be changed after creation.", err.Error())
}

func TestJobService_Update_SameProvenanceValuesAreStripped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	existing := storedJob()
	mockRepo.EXPECT().GetByID(ctx, int64(42)).Return(existing, nil)
	// Echoing the stored values back is tolerated but leaves nothing to
	// persist, so no repository update happens.
	linkedin := model.PlatformLinkedIn
	got, err := svc.Update(ctx, 42, model.UpdateJobRequest{
		ExternalID: strPtr("ext-123"),
		Platform:   &linkedin,
	})
	require.NoError(t, err)
	assert.Equal(t, existing, got)
}

func TestJobService_Update_EmptyRequestReturnsExisting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	existing := storedJob()
	mockRepo.EXPECT().GetByID(ctx, int64(42)).Return(existing, nil)

	got, err := svc.Update(ctx, 42, model.UpdateJobRequest{})
	require.NoError(t, err)
	assert.Equal(t, existing, got)
}

func TestJobService_Update_ChecksURLAgainstStoredPlatform(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	mockRepo.EXPECT().GetByID(ctx, int64(42)).Return(storedJob(), nil)

	_, err := svc.Update(ctx, 42, model.UpdateJobRequest{URL: strPtr("https://www.seek.com.au/job/5")})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "does not match platform 'linkedin'")
}

func TestJobService_Update_DescriptionMustGrow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	existing := storedJob()
	existing.DescriptionFull = strPtr("a long full description")
	mockRepo.EXPECT().GetByID(ctx, int64(42)).Return(existing, nil).Times(2)

	// Shorter replacement is rejected.
	_, err := svc.Update(ctx, 42, model.UpdateJobRequest{DescriptionFull: strPtr("short")})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "description_full updates must be longer than the existing value.", err.Error())

	// Equal length counts as no growth.
	_, err = svc.Update(ctx, 42, model.UpdateJobRequest{DescriptionFull: strPtr("a long full descriptioN")})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestJobService_Update_DescriptionGrowsFromAbsent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	existing := storedJob()
	require.Nil(t, existing.DescriptionShort)
	mockRepo.EXPECT().GetByID(ctx, int64(42)).Return(existing, nil)

	req := model.UpdateJobRequest{DescriptionShort: strPtr("x")}
	updated := storedJob()
	updated.DescriptionShort = req.DescriptionShort
	mockRepo.EXPECT().Update(ctx, int64(42), req).Return(updated, nil)

	got, err := svc.Update(ctx, 42, req)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestJobService_Update_DuplicateMapsToConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	mockRepo.EXPECT().GetByID(ctx, int64(42)).Return(storedJob(), nil)
	req := model.UpdateJobRequest{Title: strPtr("Senior Backend Engineer")}
	mockRepo.EXPECT().Update(ctx, int64(42), req).Return(nil, data.ErrJobExists)

	_, err := svc.Update(ctx, 42, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "Cannot update job because external_id/platform must remain unique.", err.Error())
}

func TestJobService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	mockRepo.EXPECT().GetByID(ctx, int64(7)).Return(nil, data.ErrJobNotFound)

	_, err := svc.Update(ctx, 7, model.UpdateJobRequest{Title: strPtr("t")})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestJobService_Delete_SoftDeletes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	mockRepo.EXPECT().GetByID(ctx, int64(42)).Return(storedJob(), nil)
	mockRepo.EXPECT().
		Update(ctx, int64(42), gomock.AssignableToTypeOf(model.UpdateJobRequest{})).
		DoAndReturn(func(_ context.Context, _ int64, req model.UpdateJobRequest) (*model.Job, error) {
			require.NotNil(t, req.IsActive)
			assert.False(t, *req.IsActive)
			deactivated := storedJob()
			deactivated.IsActive = false
			return deactivated, nil
		})

	require.NoError(t, svc.Delete(ctx, 42))
}

func TestJobService_Delete_AlreadyInactiveIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	inactive := storedJob()
	inactive.IsActive = false
	mockRepo.EXPECT().GetByID(ctx, int64(42)).Return(inactive, nil)
	// No repository update expected.

	require.NoError(t, svc.Delete(ctx, 42))
}

func TestJobService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := mocks.NewMockJobRepository(ctrl)
	svc := newTestJobService(mockRepo)

	mockRepo.EXPECT().GetByID(ctx, int64(404)).Return(nil, data.ErrJobNotFound)

	err := svc.Delete(ctx, 404)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "Job 404 not found.", err.Error())
}
