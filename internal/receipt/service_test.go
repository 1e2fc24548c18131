package receipt_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rfletch/opex/internal/receipt"
)

func TestService_Add(t *testing.T) {
	type testCase struct {
		name      string
		params    receipt.AddParams
		setupMock func(m *receipt.MockRepository)
		check     func(t *testing.T, r *receipt.Receipt)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: receipt.AddParams{
				Vendor:        "Office Depot",
				Amount:        42.50,
				Category:      "Office Supplies",
				Description:   "Printer paper",
				PaymentMethod: "Credit",
				Date:          "2024-03-10",
			},
			setupMock: func(m *receipt.MockRepository) {
				m.EXPECT().CreateReceipt(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, r *receipt.Receipt) {
				assert.Len(t, r.ID, 8)
				assert.Equal(t, "2024-03-10", r.Date)
				assert.Equal(t, 42.50, r.Amount)
				assert.False(t, r.CreatedAt.IsZero())
			},
		},
		{
			name: "DateDefaultsToToday",
			params: receipt.AddParams{
				Vendor: "Cafe",
				Amount: 8.75,
			},
			setupMock: func(m *receipt.MockRepository) {
				m.EXPECT().CreateReceipt(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, r *receipt.Receipt) {
				assert.Equal(t, time.Now().Format(time.DateOnly), r.Date)
			},
		},
		{
			name: "RepoError",
			params: receipt.AddParams{
				Vendor: "Cafe",
			},
			setupMock: func(m *receipt.MockRepository) {
				m.EXPECT().CreateReceipt(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := receipt.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := receipt.NewService(repo)
			got, err := svc.Add(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)

			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestService_Add_FreshIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := receipt.NewMockRepository(ctrl)
	repo.EXPECT().CreateReceipt(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	svc := receipt.NewService(repo)

	a, err := svc.Add(context.Background(), receipt.AddParams{Vendor: "A"})
	require.NoError(t, err)

	b, err := svc.Add(context.Background(), receipt.AddParams{Vendor: "B"})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := receipt.NewMockRepository(ctrl)
	repo.EXPECT().DeleteReceipt(gomock.Any(), "nonexistent").Return(receipt.ErrNotFound)

	svc := receipt.NewService(repo)

	err := svc.Delete(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, receipt.ErrNotFound)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	category := "Travel"
	filter := receipt.ListFilter{Category: &category}

	repo := receipt.NewMockRepository(ctrl)
	repo.EXPECT().ListReceipts(gomock.Any(), filter).Return([]*receipt.Receipt{
		{ID: "aaaaaaaa", Category: "Travel"},
	}, nil)

	svc := receipt.NewService(repo)

	got, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
