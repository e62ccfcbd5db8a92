package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tourdesk/config"
	kafkaInfra "tourdesk/infras/kafka"
	kafkaMocks "tourdesk/infras/kafka/mocks"
	"tourdesk/infras/otel/mocks"
	s3Mocks "tourdesk/infras/s3/mocks"
	activityMocks "tourdesk/internal/domains/activity/mocks"
	activityDto "tourdesk/internal/domains/activity/model/dto"
	documentMocks "tourdesk/internal/domains/document/mocks"
	"tourdesk/internal/domains/document/model"
	"tourdesk/internal/domains/document/model/dto"
	"tourdesk/internal/domains/document/service"
	pricingDto "tourdesk/internal/domains/pricing/dto"
	pricingMocks "tourdesk/internal/domains/pricing/mocks"
	propertyMocks "tourdesk/internal/domains/property/mocks"
	propertyModel "tourdesk/internal/domains/property/model"
	settingsMocks "tourdesk/internal/domains/settings/mocks"
	settingsModel "tourdesk/internal/domains/settings/model"
	transportMocks "tourdesk/internal/domains/transport/mocks"
	transportDto "tourdesk/internal/domains/transport/model/dto"
	cacheMocks "tourdesk/shared/cache/mocks"
	"tourdesk/shared/constant"
	"tourdesk/shared/failure"
)

var referencePattern = regexp.MustCompile(`^INV-\d{6}-[0-9A-F]{6}$`)

type fixture struct {
	repo       *documentMocks.MockDocument
	properties *propertyMocks.MockPropertyService
	transports *transportMocks.MockTransportService
	activities *activityMocks.MockActivityService
	pricing    *pricingMocks.MockPricing
	settings   *settingsMocks.MockSettingsService
	kafka      *kafkaMocks.MockClient
	s3         *s3Mocks.MockS3
	cfg        *config.Config
}

func setup(t *testing.T) (fixture, service.Document) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f := fixture{
		repo:       documentMocks.NewMockDocument(ctrl),
		properties: propertyMocks.NewMockPropertyService(ctrl),
		transports: transportMocks.NewMockTransportService(ctrl),
		activities: activityMocks.NewMockActivityService(ctrl),
		pricing:    pricingMocks.NewMockPricing(ctrl),
		settings:   settingsMocks.NewMockSettingsService(ctrl),
		kafka:      kafkaMocks.NewMockClient(ctrl),
		s3:         s3Mocks.NewMockS3(ctrl),
		cfg:        cfg,
	}

	return f, service.New(f.repo, f.properties, f.transports, f.activities, f.pricing, f.settings, f.kafka, f.s3, cfg, mockCache, mocks.NewOtel())
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "agent-1")
}

func invoiceRequest() dto.DocumentRequest {
	return dto.DocumentRequest{
		Type:       string(model.TypeInvoice),
		ClientName: "Jane Doe",
		IssueDate:  "2025-01-01",
		CheckIn:    "2025-02-01",
		CheckOut:   "2025-02-04",
		LineItems: []dto.LineItem{
			{ID: "a", Description: "Villa Simulizi (3 nights)", Quantity: 3, UnitPrice: 20000},
			{Description: "Transport: Airport transfer (Van)", Quantity: 1, UnitPrice: 4500},
		},
		Metadata: json.RawMessage(`{"due_date":"2025-01-15"}`),
	}
}

func voucherRequest() dto.DocumentRequest {
	return dto.DocumentRequest{
		Type:       string(model.TypeVoucher),
		ClientName: "Jane Doe",
		CheckIn:    "2025-02-01",
		CheckOut:   "2025-02-04",
		Metadata: json.RawMessage(`{
			"guest": {"name": "Jane Doe"},
			"rooms": [
				{"property_id": "p1", "room_type_id": "rt1", "adults": 2, "quantity": 2, "stay_total": 1},
				{"property_name": "Walk-in lodge", "room_type_name": "Tent", "adults": 1, "stay_total": 900}
			]
		}`),
	}
}

func storedInvoice() model.Document {
	checkIn := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC)

	return model.Document{
		ID:         "doc-1",
		Reference:  "INV-250101-ABC123",
		Type:       model.TypeInvoice,
		ClientName: "Jane Doe",
		Status:     model.StatusDraft,
		IssueDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		CheckIn:    &checkIn,
		CheckOut:   &checkOut,
		Amount:     60000,
		LineItems:  model.LineItems{{ID: "a", Description: "Villa Simulizi (3 nights)", Quantity: 3, UnitPrice: 20000}},
		Body:       []byte(`{"due_date":"2025-01-15"}`),
	}
}

func TestDocumentService_Create(t *testing.T) {
	peak := "Peak"

	tests := []struct {
		name      string
		req       dto.DocumentRequest
		setupMock func(f fixture)
		check     func(t *testing.T, res dto.DocumentResponse)
		wantCode  int
	}{
		{
			name: "invoice gets a reference and the subtotal as amount",
			req:  invoiceRequest(),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, doc model.Document) error {
						assert.Regexp(t, referencePattern, doc.Reference)
						assert.InDelta(t, 64500, doc.Amount, 0.001)
						assert.Equal(t, model.StatusDraft, doc.Status)
						assert.Equal(t, "agent-1", doc.CreatedBy)
						assert.Equal(t, "a", doc.LineItems[0].ID)
						assert.NotEmpty(t, doc.LineItems[1].ID)
						assert.JSONEq(t, `{"due_date":"2025-01-15"}`, string(doc.Body))

						return nil
					})
			},
			check: func(t *testing.T, res dto.DocumentResponse) {
				assert.Regexp(t, referencePattern, res.Reference)
				assert.Equal(t, 3, res.Nights)
				assert.Equal(t, string(model.LayoutTabular), res.Layout)
				assert.Equal(t, "2025-02-01", *res.CheckIn)
			},
		},
		{
			name: "voucher rooms are priced on the seasonal path",
			req:  voucherRequest(),
			setupMock: func(f fixture) {
				f.pricing.EXPECT().Quote(gomock.Any(), pricingDto.QuoteRequest{
					PropertyID: "p1",
					RoomTypeID: "rt1",
					CheckIn:    "2025-02-01",
					CheckOut:   "2025-02-04",
					Adults:     2,
				}).Return(pricingDto.QuoteResponse{
					PropertyName:  "Villa Simulizi",
					RoomTypeName:  "2Bedroom",
					OccupancyType: "DBL",
					Nights:        3,
					Season:        &peak,
					Total:         60000,
				}, nil)

				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, doc model.Document) error {
						body, err := doc.DecodeBody()
						require.NoError(t, err)

						rooms := body.(*model.Reservation).Rooms
						assert.InDelta(t, 120000, rooms[0].StayTotal, 0.001)
						assert.Equal(t, "Peak", rooms[0].Season)
						assert.Equal(t, "Villa Simulizi", rooms[0].PropertyName)
						assert.InDelta(t, 900, rooms[1].StayTotal, 0.001)
						assert.Zero(t, doc.Amount)

						return nil
					})
			},
		},
		{
			name: "room that cannot be quoted keeps the submitted total",
			req:  voucherRequest(),
			setupMock: func(f fixture) {
				f.pricing.EXPECT().Quote(gomock.Any(), gomock.Any()).Return(pricingDto.QuoteResponse{}, failure.NotFound("room type not found"))

				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, doc model.Document) error {
						body, err := doc.DecodeBody()
						require.NoError(t, err)
						assert.InDelta(t, 1, body.(*model.Reservation).Rooms[0].StayTotal, 0.001)

						return nil
					})
			},
		},
		{
			name: "reference collision is retried",
			req:  invoiceRequest(),
			setupMock: func(f fixture) {
				var first string

				gomock.InOrder(
					f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, doc model.Document) error {
							first = doc.Reference

							return &pq.Error{Code: constant.PqErrorCodeUniqueViolation}
						}),
					f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, doc model.Document) error {
							assert.Regexp(t, referencePattern, doc.Reference)
							assert.NotEqual(t, first, doc.Reference)

							return nil
						}),
				)
			},
		},
		{
			name: "missing client name is rejected before saving",
			req: func() dto.DocumentRequest {
				req := invoiceRequest()
				req.ClientName = " "

				return req
			}(),
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "malformed metadata is rejected",
			req: func() dto.DocumentRequest {
				req := invoiceRequest()
				req.Metadata = json.RawMessage(`{"due_date": 7}`)

				return req
			}(),
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "repository error",
			req:  invoiceRequest(),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, svc := setup(t)
			tt.setupMock(f)

			res, err := svc.Create(userContext(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)

			if tt.check != nil {
				tt.check(t, res)
			}
		})
	}
}

func TestDocumentService_CreatePublishesEvent(t *testing.T) {
	f, svc := setup(t)
	f.cfg.Kafka.Topics.DocumentSaved = "document.saved"

	sent := make(chan kafkaInfra.Message, 1)

	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.kafka.EXPECT().SendMessages(gomock.Any(), "document.saved", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafkaInfra.Message) error {
			sent <- messages[0]

			return nil
		})

	res, err := svc.Create(userContext(), invoiceRequest())
	require.NoError(t, err)

	select {
	case msg := <-sent:
		event, ok := msg.Value.(dto.DocumentSavedEvent)
		require.True(t, ok)
		assert.Equal(t, res.ID, msg.Key)
		assert.Equal(t, res.Reference, event.Reference)
		assert.Equal(t, dto.EventActionCreated, event.Action)
		assert.Equal(t, "agent-1", event.SavedBy)
	case <-time.After(time.Second):
		t.Fatal("document event was not published")
	}
}

func TestDocumentService_Update(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.DocumentRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "full payload replaces fields and keeps the reference",
			req: func() dto.DocumentRequest {
				req := invoiceRequest()
				req.Status = model.StatusSent

				return req
			}(),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedInvoice(), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.NotContains(t, fields, model.FieldReference)
						assert.Equal(t, model.StatusSent, fields[model.FieldStatus])
						assert.InDelta(t, 64500, fields[model.FieldAmount], 0.001)
						assert.Equal(t, "agent-1", fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name:      "not found",
			req:       invoiceRequest(),
			setupMock: func(f fixture) { f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Document{}, nil) },
			wantCode:  http.StatusNotFound,
		},
		{
			name: "invalid line item",
			req: func() dto.DocumentRequest {
				req := invoiceRequest()
				req.LineItems[0].Quantity = 0

				return req
			}(),
			setupMock: func(f fixture) { f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedInvoice(), nil) },
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "type change is rejected",
			req: func() dto.DocumentRequest {
				req := invoiceRequest()
				req.Type = string(model.TypeQuotation)
				req.Metadata = json.RawMessage(`{}`)

				return req
			}(),
			setupMock: func(f fixture) { f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedInvoice(), nil) },
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "repository error",
			req:  invoiceRequest(),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedInvoice(), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, svc := setup(t)
			tt.setupMock(f)

			res, err := svc.Update(userContext(), tt.req, "doc-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "INV-250101-ABC123", res.Reference)
			assert.Equal(t, model.StatusSent, res.Status)
		})
	}
}

func TestDocumentService_GetAndDelete(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		f, svc := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedInvoice(), nil)

		res, err := svc.Get(context.Background(), "doc-1")

		require.NoError(t, err)
		assert.Equal(t, "INV-250101-ABC123", res.Reference)
		assert.JSONEq(t, `{"due_date":"2025-01-15"}`, string(res.Body))
	})

	t.Run("get not found", func(t *testing.T) {
		f, svc := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Document{}, nil)

		_, err := svc.Get(context.Background(), "doc-1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("delete", func(t *testing.T) {
		f, svc := setup(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), "doc-1"))
	})

	t.Run("delete not found", func(t *testing.T) {
		f, svc := setup(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(context.Background(), "doc-1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestDocumentService_ComposeLineItem(t *testing.T) {
	existing := []dto.LineItem{
		{ID: "a", Description: "Villa Simulizi (3 nights)", Quantity: 3, UnitPrice: 20000},
		{ID: "b", Description: "Activity: Dhow cruise", Quantity: 1, UnitPrice: 3000},
	}

	tests := []struct {
		name      string
		req       dto.ComposeLineItemRequest
		setupMock func(f fixture)
		wantItems []dto.LineItem
		wantTotal float64
		wantCode  int
	}{
		{
			name: "transport is appended",
			req:  dto.ComposeLineItemRequest{Kind: "transport", SourceID: "t1", LineItems: existing},
			setupMock: func(f fixture) {
				f.transports.EXPECT().Get(gomock.Any(), "t1").
					Return(transportDto.TransportResponse{ID: "t1", Name: "Airport transfer", VehicleType: "Van", PricePerWay: 4500}, nil)
			},
			wantTotal: 67500,
		},
		{
			name: "property replaces the selected item in place",
			req: dto.ComposeLineItemRequest{
				Kind: "property", SourceID: "p2", CheckIn: "2025-02-01", CheckOut: "2025-02-05", ReplaceID: "a", LineItems: existing,
			},
			setupMock: func(f fixture) {
				f.properties.EXPECT().Detail(gomock.Any(), "p2").
					Return(propertyModel.PropertyDetail{Property: propertyModel.Property{ID: "p2", Name: "Peponi", BasePrice: 15000}}, nil)
			},
			wantItems: []dto.LineItem{
				{ID: "a", Description: "Peponi (4 nights)", Quantity: 4, UnitPrice: 15000},
				existing[1],
			},
			wantTotal: 63000,
		},
		{
			name: "unknown item to replace",
			req:  dto.ComposeLineItemRequest{Kind: "transport", SourceID: "t1", ReplaceID: "zzz", LineItems: existing},
			setupMock: func(f fixture) {
				f.transports.EXPECT().Get(gomock.Any(), "t1").Return(transportDto.TransportResponse{ID: "t1"}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "missing catalog record",
			req:  dto.ComposeLineItemRequest{Kind: "activity", SourceID: "x"},
			setupMock: func(f fixture) {
				f.activities.EXPECT().Get(gomock.Any(), "x").Return(activityDto.ActivityResponse{}, failure.NotFound("activity not found"))
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, svc := setup(t)
			tt.setupMock(f)

			res, err := svc.ComposeLineItem(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.wantTotal, res.Subtotal, 0.001)
			assert.InDelta(t, tt.wantTotal, res.Total, 0.001)

			if tt.wantItems != nil {
				assert.Equal(t, tt.wantItems, res.LineItems)
			} else {
				assert.Len(t, res.LineItems, len(existing)+1)
				assert.Equal(t, res.Item, res.LineItems[len(existing)])
			}
		})
	}
}

func TestDocumentService_RenderAndArchive(t *testing.T) {
	t.Run("render", func(t *testing.T) {
		f, svc := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedInvoice(), nil)
		f.settings.EXPECT().Branding(gomock.Any()).Return(settingsModel.Branding{AgencyName: "Simba Safaris", CurrencyLabel: "KES"})

		res, err := svc.Render(context.Background(), "doc-1")

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(res.Content, []byte("%PDF-")))
		assert.Equal(t, "JaneDoe-VillaSimulizi3nights-INV250101ABC123.pdf", res.Filename)
	})

	t.Run("render fails closed", func(t *testing.T) {
		f, svc := setup(t)

		doc := storedInvoice()
		doc.ClientName = ""

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(doc, nil)
		f.settings.EXPECT().Branding(gomock.Any()).Return(settingsModel.Branding{})

		_, err := svc.Render(context.Background(), "doc-1")

		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})

	t.Run("archive uploads under the archive directory", func(t *testing.T) {
		f, svc := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedInvoice(), nil)
		f.settings.EXPECT().Branding(gomock.Any()).Return(settingsModel.Branding{AgencyName: "Simba Safaris"})
		f.s3.EXPECT().UploadFileBytes(gomock.Any(), "", model.ArchiveDirectory, "INV-250101-ABC123.pdf", constant.ContentTypePDF, gomock.Any()).
			Return("https://cdn.example/documents/INV-250101-ABC123.pdf", nil)

		url, err := svc.Archive(context.Background(), "doc-1")

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example/documents/INV-250101-ABC123.pdf", url)
	})

	t.Run("archive upload failure", func(t *testing.T) {
		f, svc := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedInvoice(), nil)
		f.settings.EXPECT().Branding(gomock.Any()).Return(settingsModel.Branding{AgencyName: "Simba Safaris"})
		f.s3.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("s3 down"))

		_, err := svc.Archive(context.Background(), "doc-1")

		assert.Error(t, err)
	})
}
