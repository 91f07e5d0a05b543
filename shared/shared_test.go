package shared_test

import (
	"context"
	"errors"
	"hotelpms/shared"
	cacheMocks "hotelpms/shared/cache/mocks"
	"hotelpms/shared/constant"
	"hotelpms/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		input    string
		expected *bool
	}{
		{input: "", expected: nil},
		{input: "true", expected: &yes},
		{input: "1", expected: &yes},
		{input: "FALSE", expected: &no},
		{input: "f", expected: &no},
		{input: "refund", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	two := 2

	assert.Nil(t, shared.ConvertStringToInt(""))
	assert.Nil(t, shared.ConvertStringToInt("two"))
	assert.Equal(t, &two, shared.ConvertStringToInt(" 2 "))
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "no data", total: 0, limit: 10, expected: 1},
		{name: "no limit", total: 25, limit: 0, expected: 1},
		{name: "negative limit", total: 25, limit: -1, expected: 1},
		{name: "exact", total: 30, limit: 10, expected: 3},
		{name: "remainder", total: 31, limit: 10, expected: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type roomUpdate struct {
		RoomType string   `db:"room_type"`
		Price    *float64 `db:"price_per_night"`
		Capacity int      `db:"capacity"`
		Note     string
	}

	price := 2500.0

	fields := shared.TransformFields(roomUpdate{RoomType: "Deluxe", Price: &price, Note: "ignored"}, "frontdesk-1")

	assert.Equal(t, "Deluxe", fields["room_type"])
	assert.Equal(t, 2500.0, fields["price_per_night"])
	assert.NotContains(t, fields, "capacity")
	assert.NotContains(t, fields, "Note")
	assert.Equal(t, "frontdesk-1", fields[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, fields[constant.FieldModifiedAt])
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("room-1", "id", "rooms")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(rooms.id = :id)", where)
	assert.Equal(t, "room-1", args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get", shared.BuildCacheKey("room:get"))
	assert.Equal(t, "room:get:abc", shared.BuildCacheKey("room:get", "abc"))
	assert.Equal(t, "room:history:abc:2024", shared.BuildCacheKey("room:history", "abc", "2024"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Value: "Upcoming", Operator: dto.FilterOperatorEq},
		},
	}

	first := shared.BuildCacheKeyWithQuery("booking:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("booking:gets", params, filter)

	params.Page = 2
	third := shared.BuildCacheKeyWithQuery("booking:gets", params, filter)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, third)
	assert.Contains(t, first, "booking:gets:")
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "room:gets*").Return(nil)
	mockCache.EXPECT().Clear(gomock.Any(), "room:count*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), mockCache, "room:gets")
	shared.InvalidateCaches(context.Background(), mockCache, "room:count")
}

func TestUserFromContext(t *testing.T) {
	assert.Equal(t, constant.ContextSystem, shared.UserFromContext(context.Background()))

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-9")
	assert.Equal(t, "user-9", shared.UserFromContext(ctx))
}
