package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Document=MockDocumentService

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tourdesk/config"
	"tourdesk/infras/kafka"
	"tourdesk/infras/otel"
	"tourdesk/infras/s3"
	activityService "tourdesk/internal/domains/activity/service"
	"tourdesk/internal/domains/document/composer"
	"tourdesk/internal/domains/document/draft"
	"tourdesk/internal/domains/document/model"
	"tourdesk/internal/domains/document/model/dto"
	"tourdesk/internal/domains/document/render"
	"tourdesk/internal/domains/document/repository"
	pricingDto "tourdesk/internal/domains/pricing/dto"
	pricingService "tourdesk/internal/domains/pricing/service"
	propertyService "tourdesk/internal/domains/property/service"
	settingsService "tourdesk/internal/domains/settings/service"
	transportService "tourdesk/internal/domains/transport/service"
	"tourdesk/shared"
	"tourdesk/shared/cache"
	"tourdesk/shared/constant"
	gDto "tourdesk/shared/dto"
	"tourdesk/shared/failure"
	gModel "tourdesk/shared/model"
	"tourdesk/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetDocument    = "document:get"
	cacheGetAllDocument = "document:gets"
	cacheCountDocument  = "document:count"

	referenceDateFormat = "060102"
	referenceSuffixLen  = 6
	referenceAttempts   = 3
)

type Document interface {
	Create(ctx context.Context, req dto.DocumentRequest) (dto.DocumentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDocumentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.DocumentResponse, error)
	Update(ctx context.Context, req dto.DocumentRequest, id string) (dto.DocumentResponse, error)
	Delete(ctx context.Context, id string) error
	ComposeLineItem(ctx context.Context, req dto.ComposeLineItemRequest) (dto.ComposeLineItemResponse, error)
	Render(ctx context.Context, id string) (dto.RenderedDocument, error)
	Archive(ctx context.Context, id string) (string, error)
}

type serviceImpl struct {
	repo       repository.Document
	properties propertyService.Property
	transports transportService.Transport
	activities activityService.Activity
	pricing    pricingService.Pricing
	settings   settingsService.Settings
	kafka      kafka.Client
	s3         s3.S3
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Document,
	properties propertyService.Property,
	transports transportService.Transport,
	activities activityService.Activity,
	pricing pricingService.Pricing,
	settings settingsService.Settings,
	kafka kafka.Client,
	s3 s3.S3,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Document {
	return &serviceImpl{
		repo:       repo,
		properties: properties,
		transports: transports,
		activities: activities,
		pricing:    pricing,
		settings:   settings,
		kafka:      kafka,
		s3:         s3,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.DocumentRequest) (res dto.DocumentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	actions, err := s.actions(ctx, req)
	if err != nil {
		return res, err
	}

	base, err := draft.New(model.Type(req.Type)).Apply(actions...)
	if err != nil {
		return res, err
	}

	var doc model.Document

	for attempt := 1; ; attempt++ {
		d, err := base.Apply(draft.SetReference{Reference: newReference(base.Type(), now)})
		if err != nil {
			return res, err
		}

		doc, err = d.Document(uuid.NewString(), gModel.NewMetadata(user, now))
		if err != nil {
			return res, err
		}

		err = s.repo.Insert(ctx, doc)
		if err == nil {
			break
		}

		if isUniqueViolation(err) && attempt < referenceAttempts {
			log.Warn().Str("reference", doc.Reference).Msg("document reference taken, generating another")

			continue
		}

		log.Error().Err(err).Msg("failed to create document")

		return res, fmt.Errorf("failed to create document: %w", err)
	}

	s.invalidate(ctx, doc.ID)
	s.publish(ctx, doc, dto.EventActionCreated, user)

	res.FromModel(doc)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDocumentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDocument, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for documents")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count documents: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get documents")

		return res, fmt.Errorf("failed to get documents: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save documents to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountDocument, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count documents")

		return res, fmt.Errorf("failed to count documents: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save document count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.DocumentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetDocument, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for document")

		return res, nil
	}

	doc, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(doc)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save document to cache")
		}
	}()

	return res, nil
}

// Update replaces every editable field with the payload. The reference and creation
// metadata are kept; the last write wins.
func (s *serviceImpl) Update(ctx context.Context, req dto.DocumentRequest, id string) (res dto.DocumentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	stored, err := draft.FromDocument(current)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to load stored document")

		return res, fmt.Errorf("failed to load stored document: %w", err)
	}

	actions, err := s.actions(ctx, req)
	if err != nil {
		return res, err
	}

	next, err := stored.Apply(actions...)
	if err != nil {
		return res, err
	}

	metadata := current.Metadata
	metadata.ModifiedAt = timezone.Now()
	metadata.ModifiedBy = user

	doc, err := next.Document(current.ID, metadata)
	if err != nil {
		return res, err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	if err = s.repo.Update(ctx, fields(doc), filter); err != nil {
		log.Error().Err(err).Msg("failed to update document")

		return res, fmt.Errorf("failed to update document: %w", err)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, doc, dto.EventActionUpdated, user)

	res.FromModel(doc)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if document exists")

		return fmt.Errorf("failed to check if document exists: %w", err)
	}

	if !exist {
		return failure.NotFound("document not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete document")

		return fmt.Errorf("failed to delete document: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// ComposeLineItem prices a catalog selection as a line item and applies it to the given
// list, replacing the item named by ReplaceID or appending.
func (s *serviceImpl) ComposeLineItem(ctx context.Context, req dto.ComposeLineItemRequest) (res dto.ComposeLineItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ComposeLineItem")
	defer scope.End()
	defer scope.TraceIfError(&err)

	kind := composer.Kind(req.Kind)

	record, err := s.catalogRecord(ctx, kind, req.SourceID)
	if err != nil {
		return res, err
	}

	item, err := composer.Compose(kind, record, req.Context())
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	items := req.Items()

	if req.ReplaceID == constant.Empty {
		items = append(items, item)
	} else {
		var ok bool
		if items, ok = composer.Replace(items, req.ReplaceID, item); !ok {
			return res, failure.NotFound("line item not found") // nolint:wrapcheck
		}
	}

	res.FromModels(item, items)

	return res, nil
}

// Render produces the PDF of a stored document with the current agency branding.
func (s *serviceImpl) Render(ctx context.Context, id string) (res dto.RenderedDocument, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRenderScopeName, constant.OtelRenderScopeName+".Document")
	defer scope.End()
	defer scope.TraceIfError(&err)

	doc, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	scope.SetAttribute("document.reference", doc.Reference)

	return s.render(ctx, doc)
}

// Archive renders a stored document and uploads it under the archive directory, keyed by
// reference so that every save overwrites the previous copy.
func (s *serviceImpl) Archive(ctx context.Context, id string) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Archive")
	defer scope.End()
	defer scope.TraceIfError(&err)

	doc, err := s.load(ctx, id)
	if err != nil {
		return "", err
	}

	rendered, err := s.render(ctx, doc)
	if err != nil {
		return "", err
	}

	directory := s.cfg.Document.ArchiveDirectory
	if directory == constant.Empty {
		directory = model.ArchiveDirectory
	}

	url, err = s.s3.UploadFileBytes(ctx, constant.Empty, directory, doc.Reference+".pdf", constant.ContentTypePDF, rendered.Content)
	if err != nil {
		log.Error().Err(err).Str("reference", doc.Reference).Msg("failed to archive document")

		return "", fmt.Errorf("failed to archive document: %w", err)
	}

	log.Info().Str("reference", doc.Reference).Str("url", url).Msg("document archived")

	return url, nil
}

func (s *serviceImpl) render(ctx context.Context, doc model.Document) (res dto.RenderedDocument, err error) {
	content, err := render.Bytes(render.Input{
		Document: doc,
		Branding: s.settings.Branding(ctx),
	})
	if err != nil {
		log.Error().Err(err).Str("reference", doc.Reference).Msg("failed to render document")

		return res, err
	}

	res.Filename = render.Filename(doc.ClientName, doc.LineItems.FirstDescription(), doc.Reference)
	res.Content = content

	return res, nil
}

// actions decodes the payload metadata, prices its rooms and hotel options on the seasonal
// path and returns the draft transitions for it.
func (s *serviceImpl) actions(ctx context.Context, req dto.DocumentRequest) ([]draft.Action, error) {
	body, err := req.Body()
	if err != nil {
		return nil, err
	}

	s.price(ctx, req.CheckIn, req.CheckOut, body)

	return req.Actions(body)
}

// price fills stay totals from the catalog. A selection that cannot be quoted keeps the
// values it was submitted with.
func (s *serviceImpl) price(ctx context.Context, checkIn, checkOut string, body model.Body) {
	if checkIn == constant.Empty || checkOut == constant.Empty {
		return
	}

	quote := func(propertyID, roomTypeID string, adults, children int, childAges []int) (pricingDto.QuoteResponse, bool) {
		if propertyID == constant.Empty || roomTypeID == constant.Empty {
			return pricingDto.QuoteResponse{}, false
		}

		res, err := s.pricing.Quote(ctx, pricingDto.QuoteRequest{
			PropertyID: propertyID,
			RoomTypeID: roomTypeID,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Adults:     adults,
			Children:   children,
			ChildAges:  childAges,
		})
		if err != nil {
			log.Warn().Err(err).Str("property", propertyID).Str("roomType", roomTypeID).Msg("failed to quote room, keeping submitted price")

			return res, false
		}

		return res, true
	}

	switch body := body.(type) {
	case *model.Reservation:
		for i := range body.Rooms {
			room := &body.Rooms[i]

			q, ok := quote(room.PropertyID, room.RoomTypeID, room.Adults, room.Children, room.ChildAges)
			if !ok {
				continue
			}

			room.Quantity = max(1, room.Quantity)
			room.StayTotal = q.Total * float64(room.Quantity)
			room.Season = seasonName(q.Season)
			room.PropertyName = fallback(room.PropertyName, q.PropertyName)
			room.RoomTypeName = fallback(room.RoomTypeName, q.RoomTypeName)
			room.OccupancyType = fallback(room.OccupancyType, q.OccupancyType)
		}
	case *model.Quotation:
		for i := range body.HotelOptions {
			option := &body.HotelOptions[i]

			q, ok := quote(option.PropertyID, option.RoomTypeID, option.Adults, option.Children, option.ChildAges)
			if !ok {
				continue
			}

			option.Price = q.Total
			option.Nights = q.Nights
			option.Season = seasonName(q.Season)
			option.PropertyName = fallback(option.PropertyName, q.PropertyName)
			option.RoomTypeName = fallback(option.RoomTypeName, q.RoomTypeName)
			option.OccupancyType = fallback(option.OccupancyType, q.OccupancyType)
		}
	}
}

func (s *serviceImpl) catalogRecord(ctx context.Context, kind composer.Kind, id string) (any, error) {
	switch kind {
	case composer.KindProperty:
		detail, err := s.properties.Detail(ctx, id)
		if err != nil {
			return nil, err
		}

		return detail.Property, nil
	case composer.KindTransport:
		transport, err := s.transports.Get(ctx, id)
		if err != nil {
			return nil, err
		}

		return transport.ToModel(), nil
	case composer.KindActivity:
		activity, err := s.activities.Get(ctx, id)
		if err != nil {
			return nil, err
		}

		return activity.ToModel(), nil
	default:
		return nil, failure.BadRequestFromString(fmt.Sprintf("unknown line item source %q", kind)) //nolint:wrapcheck
	}
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Document, error) {
	doc, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get document")

		return doc, fmt.Errorf("failed to get document: %w", err)
	}

	if doc.ID == constant.Empty {
		return doc, failure.NotFound("document not found") // nolint:wrapcheck
	}

	return doc, nil
}

func (s *serviceImpl) publish(ctx context.Context, doc model.Document, action, user string) {
	topic := s.cfg.Kafka.Topics.DocumentSaved
	if topic == constant.Empty {
		return
	}

	event := dto.DocumentSavedEvent{
		ID:        doc.ID,
		Reference: doc.Reference,
		Type:      string(doc.Type),
		Action:    action,
		SavedBy:   user,
		SavedAt:   doc.ModifiedAt,
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.kafka.SendMessages(c, topic, kafka.Message{Key: doc.ID, Value: event}); err != nil {
			log.Error().Err(err).Str("reference", doc.Reference).Msg("failed to publish document event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDocument, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete document from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDocument)
		shared.InvalidateCaches(c, s.cache, cacheCountDocument)
	}()
}

// newReference builds "{PREFIX}-{YYMMDD}-{XXXXXX}".
func newReference(t model.Type, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:referenceSuffixLen]

	return fmt.Sprintf("%s-%s-%s", t.ReferencePrefix(), now.Format(referenceDateFormat), suffix)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation
}

func fields(doc model.Document) map[string]any {
	return map[string]any{
		model.FieldType:          doc.Type,
		model.FieldClientName:    doc.ClientName,
		model.FieldClientEmail:   doc.ClientEmail,
		model.FieldAmount:        doc.Amount,
		model.FieldStatus:        doc.Status,
		model.FieldIssueDate:     doc.IssueDate,
		model.FieldCheckIn:       doc.CheckIn,
		model.FieldCheckOut:      doc.CheckOut,
		model.FieldLineItems:     doc.LineItems,
		model.FieldMetadata:      doc.Body,
		constant.FieldModifiedAt: doc.ModifiedAt,
		constant.FieldModifiedBy: doc.ModifiedBy,
	}
}

func seasonName(season *string) string {
	if season == nil {
		return constant.Empty
	}

	return *season
}

func fallback(value, other string) string {
	if strings.TrimSpace(value) == constant.Empty {
		return other
	}

	return value
}
