package usecase_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"agent-portal-service/src/internal/model"
	"agent-portal-service/src/internal/usecase"
	"agent-portal-service/src/pkg/guard"
	"agent-portal-service/src/pkg/log"
	"agent-portal-service/src/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBulkOrderBackend struct {
	mock.Mock
}

func (m *MockBulkOrderBackend) PasteOrders(ctx context.Context, token, agentID, network, textData string) (int, []model.RowError, error) {
	args := m.Called(ctx, token, agentID, network, textData)
	var rowErrors []model.RowError
	if args.Get(1) != nil {
		rowErrors = args.Get(1).([]model.RowError)
	}
	return args.Int(0), rowErrors, args.Error(2)
}

func (m *MockBulkOrderBackend) UploadSimplified(ctx context.Context, token, agentID, network, fileName string, file io.Reader, size int64, onProgress func(percent int)) (int, []model.RowError, error) {
	args := m.Called(ctx, token, agentID, network, fileName, file, size, onProgress)
	var rowErrors []model.RowError
	if args.Get(1) != nil {
		rowErrors = args.Get(1).([]model.RowError)
	}
	return args.Int(0), rowErrors, args.Error(2)
}

type bulkFixture struct {
	useCase *usecase.BulkUseCase
	backend *MockBulkOrderBackend
}

func newBulkFixture(t *testing.T) *bulkFixture {
	t.Helper()
	v := viper.New()
	log.InitLogger(v)

	mr := miniredis.RunT(t)
	f := &bulkFixture{backend: new(MockBulkOrderBackend)}
	f.useCase = usecase.NewBulkUseCase(
		log.GetLogger(),
		validator.New(),
		f.backend,
		v,
		redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		guard.New(),
	)
	return f
}

func TestAllowedUploadType(t *testing.T) {
	tests := []struct {
		contentType string
		expected    bool
	}{
		{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", true},
		{"application/vnd.ms-excel", true},
		{"text/csv", true},
		{"text/csv; charset=utf-8", true},
		{"TEXT/CSV", true},
		{"application/pdf", false},
		{"image/png", false},
		{"", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, usecase.AllowedUploadType(tc.contentType), tc.contentType)
	}
}

func uploadRequest(jobID string) *model.UploadOrdersRequest {
	return &model.UploadOrdersRequest{
		UserID:      "user-1",
		Network:     "mtn",
		JobID:       jobID,
		FileName:    "orders.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}
}

// The job id is minted by the client before the upload starts, so the progress
// counter must be readable under that id while the transfer is still running.
func TestUploadProgressReadableMidTransfer(t *testing.T) {
	f := newBulkFixture(t)
	jobID := uuid.NewString()

	var midTransfer utils.Result
	f.backend.On("UploadSimplified", mock.Anything, "token", "user-1", "mtn", "orders.xlsx", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			onProgress := args.Get(7).(func(percent int))
			onProgress(42)
			midTransfer = f.useCase.UploadProgress(context.Background(), jobID)
		}).
		Return(25, nil, nil)

	result := f.useCase.UploadOrders(context.Background(), "token", uploadRequest(jobID), strings.NewReader("rows"), 4)
	require.NoError(t, result.Error)

	require.NoError(t, midTransfer.Error)
	mid, ok := midTransfer.Data.(*model.UploadProgressResponse)
	require.True(t, ok)
	assert.Equal(t, jobID, mid.JobID)
	assert.Equal(t, 42, mid.Percent)
	assert.False(t, mid.Done)

	response, ok := result.Data.(*model.BulkSubmitResponse)
	require.True(t, ok)
	assert.Equal(t, jobID, response.JobID)
	assert.Equal(t, 25, response.Accepted)

	after := f.useCase.UploadProgress(context.Background(), jobID)
	require.NoError(t, after.Error)
	final, ok := after.Data.(*model.UploadProgressResponse)
	require.True(t, ok)
	assert.Equal(t, 100, final.Percent)
	assert.True(t, final.Done)
}

func TestUploadFailureMarksJobDoneAtLastPercent(t *testing.T) {
	f := newBulkFixture(t)
	jobID := uuid.NewString()

	f.backend.On("UploadSimplified", mock.Anything, "token", "user-1", "mtn", "orders.xlsx", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(7).(func(percent int))(60)
		}).
		Return(0, nil, errors.New("connection reset"))

	result := f.useCase.UploadOrders(context.Background(), "token", uploadRequest(jobID), strings.NewReader("rows"), 4)
	require.Error(t, result.Error)

	progress := f.useCase.UploadProgress(context.Background(), jobID)
	require.NoError(t, progress.Error)
	response, ok := progress.Data.(*model.UploadProgressResponse)
	require.True(t, ok)
	assert.Equal(t, 60, response.Percent)
	assert.True(t, response.Done)
}

func TestUploadRejectsMissingJobID(t *testing.T) {
	f := newBulkFixture(t)

	request := uploadRequest("")
	result := f.useCase.UploadOrders(context.Background(), "token", request, strings.NewReader("rows"), 4)

	require.Error(t, result.Error)
	f.backend.AssertNotCalled(t, "UploadSimplified",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadRejectsNonSpreadsheetFile(t *testing.T) {
	f := newBulkFixture(t)

	request := uploadRequest(uuid.NewString())
	request.ContentType = "application/pdf"
	result := f.useCase.UploadOrders(context.Background(), "token", request, strings.NewReader("rows"), 4)

	require.Error(t, result.Error)
	f.backend.AssertNotCalled(t, "UploadSimplified",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
