package impl

import (
	"context"
	"testing"

	"lumera/internal/domain/entity"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/domain/repository"
	mockRepo "lumera/internal/mocks/repository"
	"lumera/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestCouponService(t *testing.T) (usecase.CouponUsecase, *mockRepo.MockCouponRepository) {
	coupons := mockRepo.NewMockCouponRepository(t)
	svc := NewCouponService(coupons, newDiscardLogger())
	svc.(*couponService).now = fixedClock

	return svc, coupons
}

func TestCouponService_Create(t *testing.T) {
	svc, coupons := createTestCouponService(t)
	coupons.On("Create", mock.Anything, mock.AnythingOfType("*entity.Coupon")).Return(nil)

	coupon, err := svc.Create(context.Background(), &usecase.CreateCouponInput{
		Code:  " diwali25 ",
		Type:  "percentage",
		Value: 25,
	})

	require.NoError(t, err)
	assert.Equal(t, "DIWALI25", coupon.Code)
	assert.True(t, coupon.Active)
	assert.Equal(t, testNow, coupon.CreatedAt)
}

func TestCouponService_Create_Invalid(t *testing.T) {
	svc, _ := createTestCouponService(t)
	negative := -1

	_, err := svc.Create(context.Background(), &usecase.CreateCouponInput{
		Type:       "bogo",
		Value:      0,
		UsageLimit: &negative,
	})

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, map[string]string{
		"code":       "required",
		"type":       "oneof percentage fixed",
		"value":      "gt 0",
		"usageLimit": "gte 0",
	}, validationErr.Fields)
}

func TestCouponService_Create_PercentageOver100(t *testing.T) {
	svc, _ := createTestCouponService(t)

	_, err := svc.Create(context.Background(), &usecase.CreateCouponInput{Code: "ALL", Type: "percentage", Value: 120})

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "lte 100", validationErr.Fields["value"])
}

func TestCouponService_Create_DuplicateCode(t *testing.T) {
	svc, coupons := createTestCouponService(t)
	coupons.On("Create", mock.Anything, mock.Anything).Return(repository.ErrCouponCodeExists)

	_, err := svc.Create(context.Background(), &usecase.CreateCouponInput{Code: "LUMERA10", Type: "fixed", Value: 100})

	assert.ErrorIs(t, err, domainerrors.ErrCouponCodeTaken)
}

func TestCouponService_Update_PatchesFields(t *testing.T) {
	svc, coupons := createTestCouponService(t)
	limit := 5
	stored := percentCoupon("FIRST20", 20)
	stored.UsageLimit = &limit
	stored.ExpiresAt = &testNow

	coupons.On("FindByID", mock.Anything, stored.ID).Return(stored, nil)
	coupons.On("Update", mock.Anything, stored).Return(nil)

	active := false
	coupon, err := svc.Update(context.Background(), stored.ID, &usecase.UpdateCouponInput{
		Active:     &active,
		ClearLimit: true,
	})

	require.NoError(t, err)
	assert.False(t, coupon.Active)
	assert.Nil(t, coupon.UsageLimit)
	assert.NotNil(t, coupon.ExpiresAt)
	assert.Equal(t, int64(20), coupon.Value)
}

func TestCouponService_Validate(t *testing.T) {
	svc, coupons := createTestCouponService(t)
	coupons.On("FindByCode", mock.Anything, "LUMERA10").Return(percentCoupon("LUMERA10", 10), nil)

	result, err := svc.Validate(context.Background(), "lumera10", 850)

	require.NoError(t, err)
	assert.Equal(t, &usecase.CouponValidation{
		Code:     "LUMERA10",
		Type:     entity.CouponTypePercentage,
		Value:    10,
		Discount: 85,
	}, result)
}

func TestCouponService_Validate_Rejections(t *testing.T) {
	svc, coupons := createTestCouponService(t)
	inactive := percentCoupon("PAUSED", 10)
	inactive.Active = false
	coupons.On("FindByCode", mock.Anything, "PAUSED").Return(inactive, nil)
	coupons.On("FindByCode", mock.Anything, "NOPE").Return(nil, repository.ErrCouponNotFound)

	_, err := svc.Validate(context.Background(), "", 850)
	assert.ErrorIs(t, err, domainerrors.ErrCouponNotFound)

	_, err = svc.Validate(context.Background(), "nope", 850)
	assert.ErrorIs(t, err, domainerrors.ErrCouponNotFound)

	_, err = svc.Validate(context.Background(), "paused", 850)
	assert.ErrorIs(t, err, domainerrors.ErrCouponInactive)
}
