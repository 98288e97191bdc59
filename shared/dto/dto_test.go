package dto_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"atrium/shared/constant"
	"atrium/shared/dto"
	"atrium/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)

	modelMetadata := model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  constant.ActorSystem,
		ModifiedBy: constant.ActorSystem,
	}

	metadata := &dto.Metadata{}
	metadata.FromModel(modelMetadata)

	expectedCreatedAt := createdAt.Format(constant.DateFormat)
	expectedModifiedAt := modifiedAt.Format(constant.DateFormat)

	if metadata.CreatedAt != expectedCreatedAt {
		t.Errorf("expected CreatedAt to be %s, got %s", expectedCreatedAt, metadata.CreatedAt)
	}

	if metadata.ModifiedAt != expectedModifiedAt {
		t.Errorf("expected ModifiedAt to be %s, got %s", expectedModifiedAt, metadata.ModifiedAt)
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "room_number",
				"sort_dir": "ASC",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    2,
				Limit:   20,
				SortBy:  "room_number",
				SortDir: "ASC",
			},
		},
		{
			name:           "with default request enabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name: "invalid numbers are ignored",
			queryParams: map[string]string{
				"page":  "zero",
				"limit": "-3",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name: "sort direction is normalized",
			queryParams: map[string]string{
				"sort_dir": "desc",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				SortDir: dto.SortDirDesc,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			for key, value := range tt.queryParams {
				values.Set(key, value)
			}

			req := &http.Request{URL: &url.URL{RawQuery: values.Encode()}}

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			if params != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, params)
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    "room_id",
				Operator: dto.FilterOperatorEq,
				Value:    "room-1",
				Table:    "bookings",
			},
			dto.Filter{
				Field:    "status",
				Operator: dto.FilterOperatorIn,
				Value:    []string{"confirmed", "checked-in"},
				Table:    "bookings",
			},
		},
	}

	where, args := group.GetWhereClause()

	if where == "" {
		t.Fatal("expected a non-empty where clause")
	}

	if args["room_id"] != "room-1" {
		t.Errorf("expected room_id arg to be room-1, got %v", args["room_id"])
	}

	if args["status_0"] != "confirmed" || args["status_1"] != "checked-in" {
		t.Errorf("expected expanded IN args, got %v", args)
	}
}

func TestFilter_DateRangeOperators(t *testing.T) {
	in := dto.Filter{
		Field:    "check_in_date",
		ArgName:  "check_out",
		Operator: dto.FilterOperatorLess,
		Value:    "2024-01-14",
		Table:    "bookings",
	}

	where, args := in.GetWhereClause()

	if where != "bookings.check_in_date < :check_out" {
		t.Errorf("unexpected where clause: %s", where)
	}

	if args["check_out"] != "2024-01-14" {
		t.Errorf("expected check_out arg, got %v", args)
	}
}
