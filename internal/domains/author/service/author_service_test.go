package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/domains/author/model"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	args := m.Called(ctx, a)
	if v := args.Get(0); v != nil {
		return v.(*model.Author), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.Author), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetAll(ctx context.Context, f model.AuthorFilter) ([]model.Author, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.Author), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) Update(ctx context.Context, a *model.Author, currentVersion int) (*model.Author, error) {
	args := m.Called(ctx, a, currentVersion)
	if v := args.Get(0); v != nil {
		return v.(*model.Author), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	svc := NewAuthorService(repo)

	id := uuid.New()
	repo.On("Create", ctx, mock.MatchedBy(func(a *model.Author) bool {
		return a.FirstName == "Jane" &&
			a.FamilyName == "Austen" &&
			a.DateOfBirth != nil && a.DateOfBirth.Equal(time.Date(1775, 12, 16, 0, 0, 0, 0, time.UTC)) &&
			a.DateOfDeath == nil
	})).Return(&model.Author{ID: id, FirstName: "Jane", FamilyName: "Austen"}, nil)

	created, err := svc.Create(ctx, &model.CreateAuthorRequest{
		FirstName:   " Jane ",
		FamilyName:  "Austen",
		DateOfBirth: "1775-12-16",
	})

	require.NoError(t, err)
	assert.Equal(t, id, created.ID)
	repo.AssertExpectations(t)
}

func TestCreate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		req  model.CreateAuthorRequest
	}{
		{"missing first name", model.CreateAuthorRequest{FamilyName: "Austen"}},
		{"missing family name", model.CreateAuthorRequest{FirstName: "Jane"}},
		{"blank family name", model.CreateAuthorRequest{FirstName: "Jane", FamilyName: "   "}},
		{"bad date", model.CreateAuthorRequest{FirstName: "Jane", FamilyName: "Austen", DateOfBirth: "16/12/1775"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepo)
			svc := NewAuthorService(repo)

			_, err := svc.Create(context.Background(), &tt.req)

			assert.ErrorIs(t, err, model.ErrValidation)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestGetByID_NilID(t *testing.T) {
	svc := NewAuthorService(new(mockRepo))

	_, err := svc.GetByID(context.Background(), uuid.Nil)

	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestList_NormalizesFilter(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	svc := NewAuthorService(repo)

	want := model.AuthorFilter{Search: "aus", SortBy: "family_name", Order: "ASC", Limit: model.MaxLimit, Offset: 0}
	repo.On("GetAll", ctx, want).Return([]model.Author{{FirstName: "Jane", FamilyName: "Austen"}}, int64(1), nil)

	authors, total, err := svc.List(ctx, model.AuthorFilter{Search: "  aus ", Limit: 500, Offset: -3, Order: "sideways"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, authors, 1)
	repo.AssertExpectations(t)
}

func TestList_RejectsUnknownSort(t *testing.T) {
	repo := new(mockRepo)
	svc := NewAuthorService(repo)

	_, _, err := svc.List(context.Background(), model.AuthorFilter{SortBy: "password"})

	assert.ErrorIs(t, err, model.ErrInvalidSort)
	repo.AssertNotCalled(t, "GetAll", mock.Anything, mock.Anything)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	birth := time.Date(1775, 12, 16, 0, 0, 0, 0, time.UTC)

	current := &model.Author{ID: id, FirstName: "Jane", FamilyName: "Austin", DateOfBirth: &birth, Version: 2}

	t.Run("applies partial update", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewAuthorService(repo)

		repo.On("GetByID", ctx, id).Return(current, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(a *model.Author) bool {
			return a.FamilyName == "Austen" && a.FirstName == "Jane" &&
				a.DateOfBirth == nil && a.DateOfDeath != nil
		}), 2).Return(&model.Author{ID: id, FirstName: "Jane", FamilyName: "Austen", Version: 3}, nil)

		got, err := svc.Update(ctx, id, &model.UpdateAuthorRequest{
			FamilyName:  strPtr("Austen"),
			DateOfBirth: strPtr(""),
			DateOfDeath: strPtr("1817-07-18"),
			Version:     2,
		})

		require.NoError(t, err)
		assert.Equal(t, 3, got.Version)
		assert.Equal(t, "Austin", current.FamilyName, "current entity must not be mutated")
		repo.AssertExpectations(t)
	})

	t.Run("stale version", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewAuthorService(repo)
		repo.On("GetByID", ctx, id).Return(current, nil)

		_, err := svc.Update(ctx, id, &model.UpdateAuthorRequest{FamilyName: strPtr("Austen"), Version: 1})

		assert.ErrorIs(t, err, model.ErrVersionMismatch)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewAuthorService(repo)

		_, err := svc.Update(ctx, id, &model.UpdateAuthorRequest{FirstName: strPtr(""), Version: 2})

		assert.ErrorIs(t, err, model.ErrValidation)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewAuthorService(repo)
		repo.On("GetByID", ctx, id).Return(nil, model.ErrAuthorNotFound)

		_, err := svc.Update(ctx, id, &model.UpdateAuthorRequest{Version: 0})

		assert.ErrorIs(t, err, model.ErrAuthorNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := new(mockRepo)
	svc := NewAuthorService(repo)
	repo.On("Delete", ctx, id).Return(nil)

	require.NoError(t, svc.Delete(ctx, id))
	assert.ErrorIs(t, svc.Delete(ctx, uuid.Nil), model.ErrAuthorNotFound)
	repo.AssertExpectations(t)
}
