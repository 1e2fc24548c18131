package report_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rfletch/opex/internal/receipt"
	"github.com/rfletch/opex/internal/report"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name        string
		params      report.CreateParams
		setupMocks  func(repo *report.MockRepository, receipts *report.MockReceiptSource)
		wantTotal   float64
		wantIDs     []string
		wantMissing []string
		wantErr     bool
	}

	tests := []testCase{
		{
			name: "TotalIsSumOfReferencedReceipts",
			params: report.CreateParams{
				Title:        "January travel",
				EmployeeName: "Dana",
				Department:   "Ops",
				PeriodStart:  "2024-01-01",
				PeriodEnd:    "2024-01-31",
				ReceiptIDs:   []string{"aaaaaaaa", "bbbbbbbb"},
			},
			setupMocks: func(repo *report.MockRepository, receipts *report.MockReceiptSource) {
				receipts.EXPECT().Get(gomock.Any(), "aaaaaaaa").Return(&receipt.Receipt{ID: "aaaaaaaa", Amount: 10}, nil)
				receipts.EXPECT().Get(gomock.Any(), "bbbbbbbb").Return(&receipt.Receipt{ID: "bbbbbbbb", Amount: 20}, nil)
				repo.EXPECT().CreateReport(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantTotal: 30,
			wantIDs:   []string{"aaaaaaaa", "bbbbbbbb"},
		},
		{
			name: "UnknownIDsDroppedNotStored",
			params: report.CreateParams{
				Title:      "Partial",
				ReceiptIDs: []string{"aaaaaaaa", "missing1", "bbbbbbbb"},
			},
			setupMocks: func(repo *report.MockRepository, receipts *report.MockReceiptSource) {
				receipts.EXPECT().Get(gomock.Any(), "aaaaaaaa").Return(&receipt.Receipt{ID: "aaaaaaaa", Amount: 10}, nil)
				receipts.EXPECT().Get(gomock.Any(), "missing1").Return(nil, receipt.ErrNotFound)
				receipts.EXPECT().Get(gomock.Any(), "bbbbbbbb").Return(&receipt.Receipt{ID: "bbbbbbbb", Amount: 20}, nil)
				repo.EXPECT().CreateReport(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantTotal:   30,
			wantIDs:     []string{"aaaaaaaa", "bbbbbbbb"},
			wantMissing: []string{"missing1"},
		},
		{
			name: "DuplicateIDsCountedPerOccurrence",
			params: report.CreateParams{
				Title:      "Doubled",
				ReceiptIDs: []string{"aaaaaaaa", "aaaaaaaa"},
			},
			setupMocks: func(repo *report.MockRepository, receipts *report.MockReceiptSource) {
				receipts.EXPECT().Get(gomock.Any(), "aaaaaaaa").Return(&receipt.Receipt{ID: "aaaaaaaa", Amount: 10}, nil).Times(2)
				repo.EXPECT().CreateReport(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantTotal: 20,
			wantIDs:   []string{"aaaaaaaa", "aaaaaaaa"},
		},
		{
			name: "ReceiptLookupFailure",
			params: report.CreateParams{
				ReceiptIDs: []string{"aaaaaaaa"},
			},
			setupMocks: func(repo *report.MockRepository, receipts *report.MockReceiptSource) {
				receipts.EXPECT().Get(gomock.Any(), "aaaaaaaa").Return(nil, errors.New("corrupt data"))
			},
			wantErr: true,
		},
		{
			name: "RepoError",
			params: report.CreateParams{
				ReceiptIDs: nil,
			},
			setupMocks: func(repo *report.MockRepository, receipts *report.MockReceiptSource) {
				repo.EXPECT().CreateReport(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := report.NewMockRepository(ctrl)
			receipts := report.NewMockReceiptSource(ctrl)
			tt.setupMocks(repo, receipts)

			svc := report.NewService(repo, receipts)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got.Report)

			assert.Len(t, got.Report.ID, 8)
			assert.Equal(t, report.StatusDraft, got.Report.Status)
			assert.Equal(t, tt.wantTotal, got.Report.TotalAmount)
			assert.Equal(t, tt.wantIDs, got.Report.ReceiptIDs)
			assert.Equal(t, tt.wantMissing, got.MissingReceiptIDs)
			assert.False(t, got.Report.CreatedAt.IsZero())
			assert.Nil(t, got.Report.SubmittedAt)
		})
	}
}

func TestService_Submit_StampsSubmittedAt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().
		UpdateStatus(gomock.Any(), "r1r1r1r1", report.StatusSubmitted, gomock.Not(gomock.Nil())).
		Return(nil)

	svc := report.NewService(repo, report.NewMockReceiptSource(ctrl))

	require.NoError(t, svc.Submit(context.Background(), "r1r1r1r1"))
}

func TestService_TerminalTransitions(t *testing.T) {
	type testCase struct {
		name       string
		call       func(svc *report.Service, ctx context.Context) error
		wantStatus report.Status
	}

	tests := []testCase{
		{
			name:       "Approve",
			call:       func(svc *report.Service, ctx context.Context) error { return svc.Approve(ctx, "r1r1r1r1") },
			wantStatus: report.StatusApproved,
		},
		{
			name:       "Reject",
			call:       func(svc *report.Service, ctx context.Context) error { return svc.Reject(ctx, "r1r1r1r1") },
			wantStatus: report.StatusRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := report.NewMockRepository(ctrl)
			repo.EXPECT().
				UpdateStatus(gomock.Any(), "r1r1r1r1", tt.wantStatus, gomock.Nil()).
				Return(nil)

			svc := report.NewService(repo, report.NewMockReceiptSource(ctrl))

			require.NoError(t, tt.call(svc, context.Background()))
		})
	}
}

func TestService_Submit_MissingReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().
		UpdateStatus(gomock.Any(), "nonexistent", report.StatusSubmitted, gomock.Any()).
		Return(report.ErrNotFound)

	svc := report.NewService(repo, report.NewMockReceiptSource(ctrl))

	err := svc.Submit(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, report.ErrNotFound)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	status := report.StatusSubmitted
	filter := report.ListFilter{Status: &status}

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().ListReports(gomock.Any(), filter).Return([]*report.ExpenseReport{
		{ID: "r1r1r1r1", Status: report.StatusSubmitted},
	}, nil)

	svc := report.NewService(repo, report.NewMockReceiptSource(ctrl))

	got, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
