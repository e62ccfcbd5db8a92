package document

import (
	"net/http"
	"time"

	"tourdesk/infras/otel"
	"tourdesk/internal/domains/document/model"
	"tourdesk/internal/domains/document/model/dto"
	"tourdesk/internal/domains/document/service"
	"tourdesk/shared"
	"tourdesk/shared/constant"
	gDto "tourdesk/shared/dto"
	"tourdesk/shared/failure"
	"tourdesk/shared/validator"
	"tourdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryIssuedFrom = "issued_from"
	queryIssuedTo   = "issued_to"
)

type Handler struct {
	service service.Document
	otel    otel.Otel
}

func New(service service.Document, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/documents", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateDocument)
		routerGroup.Get("/", handler.GetDocuments)
		routerGroup.Post("/line-items", handler.ComposeLineItem)
		routerGroup.Get("/{id}", handler.GetDocumentByID)
		routerGroup.Put("/{id}", handler.UpdateDocument)
		routerGroup.Delete("/{id}", handler.DeleteDocument)
		routerGroup.Get("/{id}/pdf", handler.RenderDocument)
	})
}

// CreateDocument creates a quotation, invoice, voucher or booking.
// @Summary Create a document
// @Description The reference is generated and the amount is the line-item subtotal.
// @Tags Document
// @Accept json
// @Produce json
// @Param request body dto.DocumentRequest true "Document"
// @Success 201 {object} response.Data[dto.DocumentResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/documents [post]
// @Security BearerAuth
func (handler *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDocument")
	defer scope.End()

	var req dto.DocumentRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	document, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create document")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Document " + document.Reference + " created by user " + user)

	response.WithJSON(w, http.StatusCreated, document)
}

// GetDocuments lists documents.
// @Summary Get all documents
// @Tags Document
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param type query string false "Filter by document type"
// @Param status query string false "Filter by status"
// @Param client_name query string false "Filter by client name"
// @Param reference query string false "Filter by reference"
// @Param issued_from query string false "Issued on or after (YYYY-MM-DD)"
// @Param issued_to query string false "Issued on or before (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetDocumentsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/documents [get]
func (handler *Handler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDocuments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter, err := filters(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	documents, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get documents")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, documents)
}

func filters(r *http.Request) (gDto.FilterGroup, error) {
	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldClientName, Operator: gDto.FilterOperatorLike, Value: query.Get(model.FieldClientName), Table: model.TableName},
			gDto.Filter{Field: model.FieldReference, Operator: gDto.FilterOperatorLike, Value: query.Get(model.FieldReference), Table: model.TableName},
		},
	}

	for _, field := range []string{model.FieldType, model.FieldStatus} {
		if value := query.Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	bounds := []struct {
		param    string
		operator string
	}{
		{param: queryIssuedFrom, operator: gDto.FilterOperatorGreaterEq},
		{param: queryIssuedTo, operator: gDto.FilterOperatorLessEq},
	}

	for _, bound := range bounds {
		value := query.Get(bound.param)
		if value == constant.Empty {
			continue
		}

		day, err := time.Parse(constant.DayFormat, value)
		if err != nil {
			return gDto.FilterGroup{}, failure.BadRequestFromString(bound.param + " must be a YYYY-MM-DD date")
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  bound.param,
			Field:    model.FieldIssueDate,
			Operator: bound.operator,
			Value:    day,
			Table:    model.TableName,
		})
	}

	return filterGroup, nil
}

// GetDocumentByID returns one document.
// @Summary Get a document by ID
// @Tags Document
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.Data[dto.DocumentResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/documents/{id} [get]
func (handler *Handler) GetDocumentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDocumentByID")
	defer scope.End()

	document, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get document by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, document)
}

// UpdateDocument replaces a document with the full payload. The reference never changes.
// @Summary Update a document
// @Tags Document
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param request body dto.DocumentRequest true "Document"
// @Success 200 {object} response.Data[dto.DocumentResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/documents/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDocument")
	defer scope.End()

	var req dto.DocumentRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	document, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update document")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Document " + document.Reference + " updated by user " + user)

	response.WithJSON(w, http.StatusOK, document)
}

// DeleteDocument deletes a document.
// @Summary Delete a document
// @Tags Document
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/documents/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDocument")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete document")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Document deleted by user " + user)

	response.WithMessage(w, http.StatusOK, "Document deleted successfully")
}

// ComposeLineItem prices a catalog selection as a line item.
// @Summary Compose a line item
// @Description Appends the composed item to line_items, or replaces the item with replace_id.
// @Tags Document
// @Accept json
// @Produce json
// @Param request body dto.ComposeLineItemRequest true "Selection"
// @Success 200 {object} response.Data[dto.ComposeLineItemResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/documents/line-items [post]
// @Security BearerAuth
func (handler *Handler) ComposeLineItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ComposeLineItem")
	defer scope.End()

	var req dto.ComposeLineItemRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	composed, err := handler.service.ComposeLineItem(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to compose line item")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, composed)
}

// RenderDocument streams the PDF of a document.
// @Summary Render a document as PDF
// @Description Shown inline unless download=true, in which case it is sent as an attachment.
// @Tags Document
// @Produce application/pdf
// @Param id path string true "Document ID"
// @Param download query boolean false "Send as attachment"
// @Success 200 {file} file
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/documents/{id}/pdf [get]
func (handler *Handler) RenderDocument(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RenderDocument")
	defer scope.End()

	rendered, err := handler.service.Render(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to render document")

		response.WithError(w, err)

		return
	}

	download := shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamDownload))

	response.WithPDF(w, rendered.Filename, rendered.Content, download != nil && *download)
}
