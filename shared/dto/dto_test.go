package dto_test

import (
	"hotelpms/shared/constant"
	"hotelpms/shared/dto"
	"hotelpms/shared/failure"
	"hotelpms/shared/model"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	metadata := dto.Metadata{}
	metadata.FromModel(model.NewMetadata(createdAt, "frontdesk"))

	assert.Equal(t, createdAt.Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, "frontdesk", metadata.CreatedBy)
	assert.Empty(t, metadata.ModifiedAt)
	assert.Empty(t, metadata.ModifiedBy)

	audit := model.NewMetadata(createdAt, "frontdesk")
	audit.ModifiedAt = createdAt.Add(2 * time.Hour)
	audit.ModifiedBy = "manager"

	metadata = dto.Metadata{}
	metadata.FromModel(audit)

	assert.Equal(t, audit.ModifiedAt.Format(constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "manager", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		defaults bool
		expected dto.QueryParams
	}{
		{
			name:     "defaults applied",
			url:      "/api/rooms",
			defaults: true,
			expected: dto.QueryParams{Page: 1, Limit: 10},
		},
		{
			name:     "no defaults",
			url:      "/api/rooms",
			defaults: false,
			expected: dto.QueryParams{},
		},
		{
			name:     "explicit values",
			url:      "/api/bookings?page=3&limit=25&sort_by=checkin_date&sort_dir=desc",
			defaults: true,
			expected: dto.QueryParams{Page: 3, Limit: 25, SortBy: "checkin_date", SortDir: dto.SortDirDesc},
		},
		{
			name:     "sort direction defaults to ascending",
			url:      "/api/bookings?sort_by=checkin_date",
			defaults: true,
			expected: dto.QueryParams{Page: 1, Limit: 10, SortBy: "checkin_date", SortDir: dto.SortDirAsc},
		},
		{
			name:     "invalid numbers ignored",
			url:      "/api/bookings?page=-1&limit=abc&sort_dir=sideways",
			defaults: true,
			expected: dto.QueryParams{Page: 1, Limit: 10},
		},
		{
			name:     "limit capped",
			url:      "/api/cashier/transactions?limit=100000",
			defaults: true,
			expected: dto.QueryParams{Page: 1, Limit: constant.MaxValueLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaults)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_AllowSort(t *testing.T) {
	tests := []struct {
		name        string
		params      dto.QueryParams
		expectedBy  string
		expectedDir string
	}{
		{
			name:        "allowed column is qualified",
			params:      dto.QueryParams{SortBy: "checkin_date", SortDir: dto.SortDirAsc},
			expectedBy:  "bookings.checkin_date",
			expectedDir: dto.SortDirAsc,
		},
		{
			name:        "injection attempt falls back",
			params:      dto.QueryParams{SortBy: "id; DROP TABLE bookings", SortDir: dto.SortDirAsc},
			expectedBy:  "bookings.created_at",
			expectedDir: dto.SortDirAsc,
		},
		{
			name:        "empty sort uses fallback descending",
			params:      dto.QueryParams{},
			expectedBy:  "bookings.created_at",
			expectedDir: dto.SortDirDesc,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.params
			params.AllowSort("bookings", "created_at", "checkin_date", "created_at", "total_amount")

			assert.Equal(t, tt.expectedBy, params.SortBy)
			assert.Equal(t, tt.expectedDir, params.SortDir)
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name     string
		filter   dto.Filter
		where    string
		argName  string
		argValue any
	}{
		{
			name:     "eq with table",
			filter:   dto.Filter{Field: "status", Value: "Upcoming", Operator: dto.FilterOperatorEq, Table: "bookings"},
			where:    "bookings.status = :status",
			argName:  "status",
			argValue: "Upcoming",
		},
		{
			name:     "like lowercases both sides",
			filter:   dto.Filter{Field: "name", Value: "Ravi", Operator: dto.FilterOperatorLike},
			where:    "LOWER(name) LIKE LOWER(:name) ",
			argName:  "name",
			argValue: "%Ravi%",
		},
		{
			name:     "greater eq with arg name",
			filter:   dto.Filter{ArgName: "from", Field: "created_at", Value: "2024-01-01", Operator: dto.FilterOperatorGreaterEq},
			where:    "created_at >= :from",
			argName:  "from",
			argValue: "2024-01-01",
		},
		{
			name:     "less eq",
			filter:   dto.Filter{ArgName: "to", Field: "created_at", Value: "2024-01-31", Operator: dto.FilterOperatorLessEq},
			where:    "created_at <= :to",
			argName:  "to",
			argValue: "2024-01-31",
		},
		{
			name:     "not eq",
			filter:   dto.Filter{Field: "status", Value: "Cancelled", Operator: dto.FilterOperatorNotEq},
			where:    "status != :status",
			argName:  "status",
			argValue: "Cancelled",
		},
		{
			name:   "is null",
			filter: dto.Filter{Field: "food_order_id", Operator: dto.FilterIsNull, Table: "transactions"},
			where:  "transactions.food_order_id IS NULL",
		},
		{
			name:   "plain query",
			filter: dto.Filter{Value: "amount_paid > 0", Operator: dto.FilterPlainQuery},
			where:  "(amount_paid > 0)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.where, where)

			if tt.argName != "" {
				assert.Equal(t, tt.argValue, args[tt.argName])
			}
		})
	}
}

func TestFilter_InOperator(t *testing.T) {
	filter := dto.Filter{Field: "status", Value: []string{"Upcoming", "Checked-in"}, Operator: dto.FilterOperatorIn}

	where, args := filter.GetWhereClause()

	assert.Equal(t, "status IN (:status_0, :status_1) ", where)
	assert.Equal(t, "Upcoming", args["status_0"])
	assert.Equal(t, "Checked-in", args["status_1"])
}

func TestFilter_InOperatorEmpty(t *testing.T) {
	filter := dto.Filter{Field: "room_id", Value: []string{}, Operator: dto.FilterOperatorIn}

	where, args := filter.GetWhereClause()

	assert.Equal(t, "FALSE", where)
	assert.Empty(t, args)
}

func TestFilter_LikeEscapesWildcards(t *testing.T) {
	filter := dto.Filter{Field: "notes", Value: "50%_off", Operator: dto.FilterOperatorLike}

	_, args := filter.GetWhereClause()

	assert.Equal(t, `%50\%\_off%`, args["notes"])
}

func TestFilter_UnknownOperator(t *testing.T) {
	filter := dto.Filter{Field: "status", Value: "x", Operator: "between"}

	where, args := filter.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Value: "Upcoming", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{ArgName: "q_name", Field: "name", Value: "ann", Operator: dto.FilterOperatorLike},
					dto.Filter{ArgName: "q_phone", Field: "phone", Value: "98", Operator: dto.FilterOperatorLike},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(status = :status AND (LOWER(name) LIKE LOWER(:q_name)  OR LOWER(phone) LIKE LOWER(:q_phone) ))", where)
	assert.Len(t, args, 3)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestDateRange_Parse(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr bool
		days    int
	}{
		{name: "both bounds", from: "2024-05-01", to: "2024-05-31", days: 30},
		{name: "single day from only", from: "2024-05-10", days: 0},
		{name: "defaults to today", days: 0},
		{name: "inverted", from: "2024-05-31", to: "2024-05-01", wantErr: true},
		{name: "bad from", from: "05/01/2024", wantErr: true},
		{name: "bad to", from: "2024-05-01", to: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dateRange := dto.DateRange{}
			err := dateRange.Parse(tt.from, tt.to)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.days, int(dateRange.To.Sub(dateRange.From).Hours()/24))
			assert.Equal(t, dateRange.To.AddDate(0, 0, 1), dateRange.EndExclusive())
		})
	}
}

func TestDateRange_FromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/cashier/summary?from=2024-02-01&to=2024-02-29", nil)

	dateRange := dto.DateRange{}

	assert.NoError(t, dateRange.FromRequest(req))
	assert.Equal(t, "2024-02-01_2024-02-29", dateRange.String())
}

func TestFilterGroup_DefaultsAndPlainQuery(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "room_id", Value: "r1", Operator: dto.FilterOperatorEq},
			dto.Filter{
				Operator: dto.FilterPlainQuery,
				Value: dto.PlainQuery{
					SQL:  "checkin_date < :to AND checkout_date > :from",
					Args: map[string]any{"from": "2024-05-01", "to": "2024-05-03"},
				},
			},
			dto.Filter{Field: "ignored", Operator: "unknown"},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(room_id = :room_id AND (checkin_date < :to AND checkout_date > :from))", where)
	assert.Equal(t, "2024-05-03", args["to"])
	assert.Len(t, args, 3)
}
