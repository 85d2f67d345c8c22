package http

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/internal/usecase"
	"github.com/yuvia/flight-results/test/testutil"
)

func validSearchRequest() SearchRequest {
	return SearchRequest{
		Origin:      "MOW",
		Destination: "LED",
		DepartDate:  "2024-06-01",
		ReturnDate:  "2024-06-05",
		Adults:      1,
	}
}

func fieldsOf(err error) map[string]string {
	if err == nil {
		return nil
	}
	return err.(*ValidationErrors).ToMap()
}

// =====================================================
// SearchRequest Tests
// =====================================================

func TestSearchRequestValidate(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(r *SearchRequest)
		wantFields []string
	}{
		{
			name:   "valid round trip",
			modify: func(r *SearchRequest) {},
		},
		{
			name: "valid one-way without return date",
			modify: func(r *SearchRequest) {
				r.OneWay = true
				r.ReturnDate = ""
			},
		},
		{
			name: "city names instead of codes",
			modify: func(r *SearchRequest) {
				r.Origin, r.OriginCity = "", "Москва"
				r.Destination, r.DestinationCity = "", "Казань"
			},
		},
		{
			name:       "missing origin and city",
			modify:     func(r *SearchRequest) { r.Origin = "" },
			wantFields: []string{"origin"},
		},
		{
			name:       "origin not a code",
			modify:     func(r *SearchRequest) { r.Origin = "MOSCOW" },
			wantFields: []string{"origin"},
		},
		{
			name:       "same origin and destination",
			modify:     func(r *SearchRequest) { r.Destination = "mow" },
			wantFields: []string{"destination"},
		},
		{
			name:       "missing depart date",
			modify:     func(r *SearchRequest) { r.DepartDate = "" },
			wantFields: []string{"departDate"},
		},
		{
			name:       "bad depart date format",
			modify:     func(r *SearchRequest) { r.DepartDate = "01.06.2024" },
			wantFields: []string{"departDate"},
		},
		{
			name:       "impossible return date",
			modify:     func(r *SearchRequest) { r.ReturnDate = "2024-02-30" },
			wantFields: []string{"returnDate"},
		},
		{
			name:       "return date required for round trip",
			modify:     func(r *SearchRequest) { r.ReturnDate = "" },
			wantFields: []string{"returnDate"},
		},
		{
			name:       "negative passengers",
			modify:     func(r *SearchRequest) { r.Children = -1 },
			wantFields: []string{"passengers"},
		},
		{
			name:       "too many passengers",
			modify:     func(r *SearchRequest) { r.Adults, r.Children = 5, 5 },
			wantFields: []string{"passengers"},
		},
		{
			name:       "zero adults count as one for the cap",
			modify:     func(r *SearchRequest) { r.Adults, r.Children = 0, 9 },
			wantFields: []string{"passengers"},
		},
		{
			name:       "infants without adults",
			modify:     func(r *SearchRequest) { r.Adults, r.Infants = 1, 2 },
			wantFields: []string{"infants"},
		},
		{
			name:       "unknown cabin",
			modify:     func(r *SearchRequest) { r.Cabin = "first" },
			wantFields: []string{"cabin"},
		},
		{
			name:       "bad currency",
			modify:     func(r *SearchRequest) { r.Currency = "RUBLES" },
			wantFields: []string{"currency"},
		},
		{
			name: "view errors are prefixed",
			modify: func(r *SearchRequest) {
				r.View = &ViewRequest{Limit: -1, Stops: "2"}
			},
			wantFields: []string{"view.limit", "view.stops"},
		},
		{
			name: "multiple errors",
			modify: func(r *SearchRequest) {
				r.Origin = ""
				r.DepartDate = ""
				r.Cabin = "first"
			},
			wantFields: []string{"origin", "departDate", "cabin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSearchRequest()
			tt.modify(&req)

			err := req.Validate()

			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			fields := fieldsOf(err)
			assert.Len(t, fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, fields, f)
			}
		})
	}
}

func TestSearchRequestValidate_UppercasesCodes(t *testing.T) {
	req := validSearchRequest()
	req.Origin = " mow "
	req.Destination = "led"

	require.NoError(t, req.Validate())

	assert.Equal(t, "MOW", req.Origin)
	assert.Equal(t, "LED", req.Destination)
}

// =====================================================
// ViewRequest Tests
// =====================================================

func TestViewRequestValidate(t *testing.T) {
	tests := []struct {
		name       string
		req        ViewRequest
		wantFields []string
	}{
		{
			name: "empty view is valid",
			req:  ViewRequest{},
		},
		{
			name: "all valid options",
			req: ViewRequest{
				PriceMin:            testutil.FloatPtr(1000),
				PriceMax:            testutil.FloatPtr(20000),
				Stops:               "1",
				Airlines:            []string{"SU", "s7", "UT"},
				OriginAirports:      []string{"SVO", "dme"},
				DestinationAirports: []string{"LED"},
				MaxDurationHours:    testutil.FloatPtr(6),
				OutboundWindows:     []string{"morning", "DAY"},
				ReturnWindows:       []string{"evening"},
				Triggers:            []string{"no_night_dep", "direct_only", "no_early_dep", "no_overnight"},
				Style:               "calm",
				Sort:                "price_asc",
				Currency:            "usd",
				Limit:               10,
			},
		},
		{
			name:       "negative prices",
			req:        ViewRequest{PriceMin: testutil.FloatPtr(-1), PriceMax: testutil.FloatPtr(-2)},
			wantFields: []string{"priceMin", "priceMax"},
		},
		{
			name:       "min above max",
			req:        ViewRequest{PriceMin: testutil.FloatPtr(500), PriceMax: testutil.FloatPtr(100)},
			wantFields: []string{"priceMin"},
		},
		{
			name:       "unknown stops",
			req:        ViewRequest{Stops: "2"},
			wantFields: []string{"stops"},
		},
		{
			name:       "bad airline codes are indexed",
			req:        ViewRequest{Airlines: []string{"SU", "X", "TOOLONG"}},
			wantFields: []string{"airlines[1]", "airlines[2]"},
		},
		{
			name:       "bad airport codes",
			req:        ViewRequest{OriginAirports: []string{"SV"}, DestinationAirports: []string{"LED", "1ED"}},
			wantFields: []string{"originAirports[0]", "destinationAirports[1]"},
		},
		{
			name:       "non-positive duration cap",
			req:        ViewRequest{MaxDurationHours: testutil.FloatPtr(0)},
			wantFields: []string{"maxDurationHours"},
		},
		{
			name:       "unknown windows",
			req:        ViewRequest{OutboundWindows: []string{"dawn"}, ReturnWindows: []string{"night", "noon"}},
			wantFields: []string{"outboundWindows[0]", "returnWindows[1]"},
		},
		{
			name:       "unknown trigger",
			req:        ViewRequest{Triggers: []string{"no_night_dep", "no_delays"}},
			wantFields: []string{"triggers[1]"},
		},
		{
			name:       "unknown style and sort",
			req:        ViewRequest{Style: "wild", Sort: "random"},
			wantFields: []string{"style", "sort"},
		},
		{
			name:       "bad currency and limit",
			req:        ViewRequest{Currency: "R", Limit: -5},
			wantFields: []string{"currency", "limit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req

			err := req.Validate()

			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			fields := fieldsOf(err)
			assert.Len(t, fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, fields, f)
			}
		})
	}
}

// =====================================================
// AssistantRequest Tests
// =====================================================

func TestAssistantRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"empty text repeats the question", "", false},
		{"normal message", "из Москвы в Сочи", false},
		{"limit counts runes", strings.Repeat("я", maxTextLength), false},
		{"too long", strings.Repeat("a", maxTextLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := AssistantRequest{Text: tt.text}
			err := req.Validate()
			if tt.wantErr {
				assert.Contains(t, fieldsOf(err), "text")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationErrorsError(t *testing.T) {
	errs := &ValidationErrors{}
	errs.Add("field1", "error1")
	errs.Add("field2", "error2")

	errorMsg := errs.Error()
	require.NotEmpty(t, errorMsg)
	// Error() returns the first error's message
	assert.Equal(t, "error1", errorMsg)

	// Test empty errors
	emptyErrs := &ValidationErrors{}
	assert.Equal(t, "validation failed", emptyErrs.Error())
}

// =====================================================
// Converter Tests
// =====================================================

func TestToSearchQuery(t *testing.T) {
	req := &SearchRequest{
		Origin:          " mow",
		OriginCity:      " Москва ",
		Destination:     "led ",
		DepartDate:      "2024-06-01",
		ReturnDate:      "2024-06-05",
		Adults:          2,
		Children:        1,
		Cabin:           "BUSINESS",
		DestinationCity: "",
	}

	q := ToSearchQuery(req, "rub")

	assert.Equal(t, domain.SearchQuery{
		Origin:      "MOW",
		OriginCity:  "Москва",
		Destination: "LED",
		DepartDate:  "2024-06-01",
		ReturnDate:  "2024-06-05",
		Adults:      2,
		Children:    1,
		Cabin:       "business",
		Currency:    "RUB",
	}, q)

	req.Currency = "eur"
	assert.Equal(t, "EUR", ToSearchQuery(req, "rub").Currency)
}

func TestToViewOptions(t *testing.T) {
	t.Run("nil request yields the default view", func(t *testing.T) {
		assert.Equal(t, usecase.DefaultViewOptions(), ToViewOptions(nil))
	})

	t.Run("full request", func(t *testing.T) {
		req := &ViewRequest{
			PriceMax:         testutil.FloatPtr(20000),
			Stops:            "0",
			Airlines:         []string{" su", "", "s7"},
			OriginAirports:   []string{"svo"},
			MaxDurationHours: testutil.FloatPtr(4),
			OutboundWindows:  []string{"Morning", "day"},
			Triggers:         []string{"NO_NIGHT_DEP"},
			Style:            "Calm",
			Sort:             "price_desc",
			Currency:         "usd",
			Limit:            5,
		}

		opts := ToViewOptions(req)

		assert.Equal(t, domain.StyleCalm, opts.Style)
		assert.Equal(t, domain.SortByPriceDesc, opts.Sort)
		assert.Equal(t, "USD", opts.Currency)
		assert.Equal(t, 5, opts.Limit)

		c := opts.Constraints
		assert.Equal(t, domain.StopsDirect, c.Stops)
		assert.Equal(t, []string{"SU", "S7"}, c.Airlines)
		assert.Equal(t, []string{"SVO"}, c.OriginAirports)
		assert.Nil(t, c.DestinationAirports)
		assert.Equal(t, []domain.TimeWindow{domain.WindowMorning, domain.WindowDay}, c.OutboundWindows)
		assert.Nil(t, c.ReturnWindows)
		assert.True(t, c.Triggers.NoNightDeparture)
		assert.False(t, c.Triggers.DirectOnly)
		assert.Equal(t, 20000.0, *c.PriceMax)
		assert.Nil(t, c.PriceMin)
	})

	t.Run("empty sort falls back to the score", func(t *testing.T) {
		opts := ToViewOptions(&ViewRequest{})
		assert.Equal(t, domain.SortByYuviaScore, opts.Sort)
		assert.Equal(t, domain.StyleNone, opts.Style)
		assert.Equal(t, domain.StopsAny, opts.Constraints.Stops)
	})
}

func TestToAssistantDTO(t *testing.T) {
	reply := usecase.Step(usecase.NewConversation(), "Хочу из Москвы в Сочи на выходные")

	dto := ToAssistantDTO(reply)

	assert.Equal(t, usecase.StepSummary, dto.Conversation.Step)
	assert.Contains(t, dto.SearchParams, "to=")
	assert.Empty(t, dto.IdeasParams)
}
