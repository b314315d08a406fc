package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"github.com/rafaelleal24/smartpantry/internal/core/port/mock"
	"github.com/rafaelleal24/smartpantry/internal/core/serviceerrors"
	"go.uber.org/mock/gomock"
)

func TestAccessGuard_AssertOwnership(t *testing.T) {
	guard := NewAccessGuard(nil)
	product := newTestProduct(productID, ownerID, day(1), domain.ExpiryStatusYellow)

	if err := guard.AssertOwnership(product, ownerID); err != nil {
		t.Fatalf("expected owner to pass, got %v", err)
	}

	err := guard.AssertOwnership(product, strangerID)
	if !serviceerrors.IsOfKind(err, serviceerrors.KindUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestAccessGuard_FindOwned(t *testing.T) {
	tests := []struct {
		name     string
		id       domain.ID
		caller   domain.ID
		setup    func(repo *mock.MockProductPort)
		wantKind *serviceerrors.ErrorKind
		wantErr  bool
	}{
		{
			name:   "owner",
			id:     productID,
			caller: ownerID,
			setup: func(repo *mock.MockProductPort) {
				repo.EXPECT().GetByID(gomock.Any(), productID).
					Return(newTestProduct(productID, ownerID, day(1), domain.ExpiryStatusYellow), nil)
			},
		},
		{
			name:   "stranger",
			id:     productID,
			caller: strangerID,
			setup: func(repo *mock.MockProductPort) {
				repo.EXPECT().GetByID(gomock.Any(), productID).
					Return(newTestProduct(productID, ownerID, day(1), domain.ExpiryStatusYellow), nil)
			},
			wantKind: ptr(serviceerrors.KindUnauthorized),
		},
		{
			name:   "missing",
			id:     productID,
			caller: ownerID,
			setup: func(repo *mock.MockProductPort) {
				repo.EXPECT().GetByID(gomock.Any(), productID).
					Return(nil, serviceerrors.NewNotFoundError("no documents"))
			},
			wantKind: ptr(serviceerrors.KindNotFound),
		},
		{
			name:     "malformed id",
			id:       "xyz",
			caller:   ownerID,
			setup:    func(repo *mock.MockProductPort) {},
			wantKind: ptr(serviceerrors.KindNotFound),
		},
		{
			name:   "store failure propagates",
			id:     productID,
			caller: ownerID,
			setup: func(repo *mock.MockProductPort) {
				repo.EXPECT().GetByID(gomock.Any(), productID).
					Return(nil, errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock.NewMockProductPort(ctrl)
			tt.setup(repo)
			guard := NewAccessGuard(repo)

			product, err := guard.FindOwned(context.Background(), tt.id, tt.caller)

			switch {
			case tt.wantKind != nil:
				if !serviceerrors.IsOfKind(err, *tt.wantKind) {
					t.Fatalf("expected %s error, got %v", tt.wantKind, err)
				}
			case tt.wantErr:
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
					t.Fatal("store failure must not read as not found")
				}
			default:
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if product.ID != tt.id {
					t.Fatalf("expected product %s, got %s", tt.id, product.ID)
				}
			}
		})
	}
}
