package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/secureshare/internal/metrics"
	storageDomain "github.com/allisson/secureshare/internal/storage/domain"
	storageService "github.com/allisson/secureshare/internal/storage/service"
)

// mockStorageMetrics is a mock implementation of metrics.StorageMetrics for testing.
type mockStorageMetrics struct {
	mock.Mock
}

func (m *mockStorageMetrics) RecordOperation(ctx context.Context, operation, status string) {
	m.Called(ctx, operation, status)
}

func (m *mockStorageMetrics) RecordDuration(
	ctx context.Context,
	operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, operation, duration, status)
}

func (m *mockStorageMetrics) RecordBytesWritten(ctx context.Context, size int64) {
	m.Called(ctx, size)
}

var _ metrics.StorageMetrics = (*mockStorageMetrics)(nil)

// mockStoreUseCase is a mock implementation of StoreUseCase for testing the decorator.
type mockStoreUseCase struct {
	mock.Mock
}

func (m *mockStoreUseCase) Save(
	ctx context.Context,
	ownerID int64,
	plaintext []byte,
) (*storageDomain.StoredObject, error) {
	args := m.Called(ctx, ownerID, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storageDomain.StoredObject), args.Error(1)
}

func (m *mockStoreUseCase) SaveAsync(
	ctx context.Context,
	ownerID int64,
	plaintext []byte,
) (*storageService.SaveHandle, error) {
	args := m.Called(ctx, ownerID, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storageService.SaveHandle), args.Error(1)
}

func (m *mockStoreUseCase) Read(ctx context.Context, ownerID int64, reference string) ([]byte, error) {
	args := m.Called(ctx, ownerID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockStoreUseCase) Delete(ctx context.Context, ownerID int64, reference string) (bool, error) {
	args := m.Called(ctx, ownerID, reference)
	return args.Bool(0), args.Error(1)
}

func (m *mockStoreUseCase) List(ctx context.Context, ownerID int64) ([]string, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockStoreUseCase) Exists(ctx context.Context, ownerID int64, reference string) (bool, error) {
	args := m.Called(ctx, ownerID, reference)
	return args.Bool(0), args.Error(1)
}

func (m *mockStoreUseCase) TotalWrites() uint64 {
	args := m.Called()
	return args.Get(0).(uint64)
}

var _ StoreUseCase = (*mockStoreUseCase)(nil)

func TestNewStoreUseCaseWithMetrics(t *testing.T) {
	t.Parallel()

	decorator := NewStoreUseCaseWithMetrics(&mockStoreUseCase{}, &mockStorageMetrics{})

	assert.NotNil(t, decorator)
	assert.Implements(t, (*StoreUseCase)(nil), decorator)
}

func TestMetricsDecorator_Save(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetricsAndBytes", func(t *testing.T) {
		t.Parallel()
		next := &mockStoreUseCase{}
		m := &mockStorageMetrics{}

		obj := &storageDomain.StoredObject{OwnerID: 7, Reference: uuid.NewString(), Size: 5}
		next.On("Save", ctx, int64(7), []byte("hello")).Return(obj, nil).Once()
		m.On("RecordOperation", ctx, "save", "success").Return().Once()
		m.On("RecordDuration", ctx, "save", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()
		m.On("RecordBytesWritten", ctx, int64(5)).Return().Once()

		decorator := NewStoreUseCaseWithMetrics(next, m)
		got, err := decorator.Save(ctx, 7, []byte("hello"))

		require.NoError(t, err)
		assert.Equal(t, obj, got)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetricsWithoutBytes", func(t *testing.T) {
		t.Parallel()
		next := &mockStoreUseCase{}
		m := &mockStorageMetrics{}

		next.On("Save", ctx, int64(7), []byte("hello")).
			Return(nil, storageDomain.ErrObjectTooLarge).
			Once()
		m.On("RecordOperation", ctx, "save", "error").Return().Once()
		m.On("RecordDuration", ctx, "save", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		decorator := NewStoreUseCaseWithMetrics(next, m)
		got, err := decorator.Save(ctx, 7, []byte("hello"))

		require.Error(t, err)
		assert.Nil(t, got)
		m.AssertNotCalled(t, "RecordBytesWritten", mock.Anything, mock.Anything)
		m.AssertExpectations(t)
	})
}

func TestMetricsDecorator_SaveAsync(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success_RecordsBytesWhenHandleResolves", func(t *testing.T) {
		t.Parallel()
		next := &mockStoreUseCase{}
		m := &mockStorageMetrics{}

		obj := &storageDomain.StoredObject{OwnerID: 7, Reference: uuid.NewString(), Size: 5}
		handle := storageService.ResolvedSaveHandle(obj, nil)
		next.On("SaveAsync", ctx, int64(7), []byte("hello")).Return(handle, nil).Once()
		m.On("RecordOperation", ctx, "save_async", "success").Return().Once()
		m.On("RecordDuration", ctx, "save_async", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		recorded := make(chan struct{})
		m.On("RecordBytesWritten", mock.Anything, int64(5)).
			Run(func(mock.Arguments) { close(recorded) }).
			Return().
			Once()

		decorator := NewStoreUseCaseWithMetrics(next, m)
		got, err := decorator.SaveAsync(ctx, 7, []byte("hello"))

		require.NoError(t, err)
		assert.Same(t, handle, got)

		select {
		case <-recorded:
		case <-time.After(time.Second):
			t.Fatal("async save bytes were never recorded")
		}
		m.AssertExpectations(t)
	})

	t.Run("FailedSave_RecordsNoBytes", func(t *testing.T) {
		t.Parallel()
		next := &mockStoreUseCase{}
		m := &mockStorageMetrics{}

		handle := storageService.ResolvedSaveHandle(nil, storageDomain.ErrObjectTooLarge)
		next.On("SaveAsync", ctx, int64(7), []byte("hello")).Return(handle, nil).Once()
		m.On("RecordOperation", ctx, "save_async", "success").Return().Once()
		m.On("RecordDuration", ctx, "save_async", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		decorator := NewStoreUseCaseWithMetrics(next, m)
		got, err := decorator.SaveAsync(ctx, 7, []byte("hello"))

		require.NoError(t, err)
		_, waitErr := got.Wait(ctx)
		require.ErrorIs(t, waitErr, storageDomain.ErrObjectTooLarge)
		m.AssertNotCalled(t, "RecordBytesWritten", mock.Anything, mock.Anything)
	})

	t.Run("SchedulingError_RecordsErrorMetrics", func(t *testing.T) {
		t.Parallel()
		next := &mockStoreUseCase{}
		m := &mockStorageMetrics{}

		next.On("SaveAsync", ctx, int64(7), []byte("hello")).
			Return(nil, storageDomain.ErrStoreClosed).
			Once()
		m.On("RecordOperation", ctx, "save_async", "error").Return().Once()
		m.On("RecordDuration", ctx, "save_async", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		decorator := NewStoreUseCaseWithMetrics(next, m)
		got, err := decorator.SaveAsync(ctx, 7, []byte("hello"))

		require.ErrorIs(t, err, storageDomain.ErrStoreClosed)
		assert.Nil(t, got)
		m.AssertNotCalled(t, "RecordBytesWritten", mock.Anything, mock.Anything)
	})
}

func TestMetricsDecorator_Read(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reference := uuid.NewString()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		t.Parallel()
		next := &mockStoreUseCase{}
		m := &mockStorageMetrics{}

		next.On("Read", ctx, int64(7), reference).Return([]byte("hello"), nil).Once()
		m.On("RecordOperation", ctx, "read", "success").Return().Once()
		m.On("RecordDuration", ctx, "read", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		decorator := NewStoreUseCaseWithMetrics(next, m)
		plaintext, err := decorator.Read(ctx, 7, reference)

		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), plaintext)
		m.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		t.Parallel()
		next := &mockStoreUseCase{}
		m := &mockStorageMetrics{}

		next.On("Read", ctx, int64(7), reference).
			Return(nil, storageDomain.ErrObjectNotFound).
			Once()
		m.On("RecordOperation", ctx, "read", "error").Return().Once()
		m.On("RecordDuration", ctx, "read", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		decorator := NewStoreUseCaseWithMetrics(next, m)
		plaintext, err := decorator.Read(ctx, 7, reference)

		require.Error(t, err)
		assert.Nil(t, plaintext)
		m.AssertExpectations(t)
	})
}

func TestMetricsDecorator_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reference := uuid.NewString()

	next := &mockStoreUseCase{}
	m := &mockStorageMetrics{}

	next.On("Delete", ctx, int64(7), reference).Return(true, nil).Once()
	m.On("RecordOperation", ctx, "delete", "success").Return().Once()
	m.On("RecordDuration", ctx, "delete", mock.AnythingOfType("time.Duration"), "success").
		Return().
		Once()

	decorator := NewStoreUseCaseWithMetrics(next, m)
	removed, err := decorator.Delete(ctx, 7, reference)

	require.NoError(t, err)
	assert.True(t, removed)
	m.AssertExpectations(t)
}

func TestMetricsDecorator_List(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	next := &mockStoreUseCase{}
	m := &mockStorageMetrics{}

	refs := []string{uuid.NewString()}
	next.On("List", ctx, int64(7)).Return(refs, nil).Once()
	m.On("RecordOperation", ctx, "list", "success").Return().Once()
	m.On("RecordDuration", ctx, "list", mock.AnythingOfType("time.Duration"), "success").
		Return().
		Once()

	decorator := NewStoreUseCaseWithMetrics(next, m)
	got, err := decorator.List(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, refs, got)
	m.AssertExpectations(t)
}

func TestMetricsDecorator_Exists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reference := uuid.NewString()

	next := &mockStoreUseCase{}
	m := &mockStorageMetrics{}

	next.On("Exists", ctx, int64(7), reference).Return(true, nil).Once()
	m.On("RecordOperation", ctx, "exists", "success").Return().Once()
	m.On("RecordDuration", ctx, "exists", mock.AnythingOfType("time.Duration"), "success").
		Return().
		Once()

	decorator := NewStoreUseCaseWithMetrics(next, m)
	found, err := decorator.Exists(ctx, 7, reference)

	require.NoError(t, err)
	assert.True(t, found)
	m.AssertExpectations(t)
}

func TestMetricsDecorator_TotalWrites(t *testing.T) {
	t.Parallel()

	next := &mockStoreUseCase{}
	m := &mockStorageMetrics{}

	next.On("TotalWrites").Return(uint64(9)).Once()

	decorator := NewStoreUseCaseWithMetrics(next, m)
	assert.Equal(t, uint64(9), decorator.TotalWrites())
	m.AssertNotCalled(t, "RecordOperation", mock.Anything, mock.Anything, mock.Anything)
}
