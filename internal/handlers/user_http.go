package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"runtime/debug"
	"strings"

	"userhub/internal/importer"
	"userhub/internal/middleware"
	"userhub/internal/repository"
	"userhub/internal/service"
	"userhub/internal/uploads"
	"userhub/internal/utils"

	"github.com/rs/zerolog"
)

type UserHTTP struct {
	users    *service.UserService
	importer *importer.Importer
	store    uploads.Store
	maxBytes int64
	log      zerolog.Logger
}

func NewUserHTTP(users *service.UserService, im *importer.Importer, store uploads.Store, maxBytes int64, log zerolog.Logger) *UserHTTP {
	return &UserHTTP{users: users, importer: im, store: store, maxBytes: maxBytes, log: log}
}

var searchFields = []utils.Field{
	{Name: "page", Type: utils.PositiveInt, Required: true},
	{Name: "size", Type: utils.PositiveInt, Required: true, Max: repository.MaxPageSize},
	{Name: "q", Type: utils.String},
	{Name: "sort", Type: utils.String},
	{Name: "user_type", Type: utils.String},
}

// GET /api/users?page=&size=&q=&sort=&user_type=
func (h *UserHTTP) Search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		if errs := utils.ValidateQuery(qv, searchFields); len(errs) > 0 {
			utils.ErrorDetail(w, http.StatusBadRequest, utils.MsgEnterCorrectInput, errs)
			return
		}
		page := utils.QueryInt(qv, "page", 1)
		size := utils.QueryInt(qv, "size", 1)

		res, err := h.users.Search(r.Context(), repository.UserFilter{
			Q:        strings.TrimSpace(qv.Get("q")),
			Sort:     strings.TrimSpace(qv.Get("sort")),
			UserType: qv.Get("user_type"),
			Page:     page,
			Size:     size,
		})
		if err != nil {
			logFrom(r, h.log).Error().Err(err).Msg("user search failed")
			utils.Error(w, http.StatusInternalServerError, utils.MsgSomethingWentWrong)
			return
		}
		utils.OK(w, http.StatusOK, utils.MsgSuccess, res)
	}
}

// GET /api/users/me
func (h *UserHTTP) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := middleware.UserFrom(r.Context())
		if !ok {
			utils.Error(w, http.StatusUnauthorized, utils.MsgUnauthorized)
			return
		}
		u, err := h.users.Get(r.Context(), caller.ID)
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			utils.Error(w, http.StatusNotFound, utils.MsgUserNotExist)
			return
		case err != nil:
			logFrom(r, h.log).Error().Err(err).Str("user_id", caller.ID).Msg("load current user failed")
			utils.Error(w, http.StatusInternalServerError, utils.MsgSomethingWentWrong)
			return
		}
		utils.OK(w, http.StatusOK, utils.MsgSuccess, u.Details())
	}
}

// POST /api/users/bulk-import (multipart, field "file")
func (h *UserHTTP) BulkImport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logFrom(r, h.log)

		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
		if err := r.ParseMultipartForm(h.maxBytes); err != nil {
			utils.Error(w, http.StatusBadRequest, utils.MsgInvalidFile)
			return
		}
		if r.MultipartForm != nil {
			defer func() { _ = r.MultipartForm.RemoveAll() }()
		}
		file, hdr, err := r.FormFile("file")
		if err != nil {
			utils.Error(w, http.StatusBadRequest, utils.MsgInvalidFile)
			return
		}
		defer file.Close()
		if !strings.EqualFold(filepath.Ext(hdr.Filename), ".xlsx") {
			utils.Error(w, http.StatusBadRequest, utils.MsgInvalidFile)
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			h.fail(w, log, err)
			return
		}
		loc, err := h.store.Save(r.Context(), hdr.Filename, bytes.NewReader(data))
		if err != nil {
			if errors.Is(err, uploads.ErrInvalidName) {
				utils.Error(w, http.StatusBadRequest, utils.MsgInvalidFile)
				return
			}
			h.fail(w, log, err)
			return
		}
		log.Debug().Str("location", loc).Int("bytes", len(data)).Msg("upload stored")

		sum, err := h.importer.Import(r.Context(), bytes.NewReader(data))
		var verr *importer.ValidationError
		switch {
		case err == nil:
			log.Info().Str("file", hdr.Filename).Int("inserted", sum.Inserted).Msg("bulk import done")
			utils.OK(w, http.StatusCreated, utils.MsgUsersInserted, nil)
		case errors.Is(err, importer.ErrExtract):
			utils.ErrorDetail(w, http.StatusUnprocessableEntity, utils.MsgDataExtractionFailed, err.Error())
		case errors.Is(err, importer.ErrEmptySheet):
			utils.ErrorDetail(w, http.StatusUnprocessableEntity, utils.MsgNoDataFound, importer.ErrEmptySheet.Error())
		case errors.As(err, &verr):
			utils.ErrorDetail(w, http.StatusUnprocessableEntity, validationMessage(verr), verr.Rows)
		case errors.Is(err, repository.ErrDuplicateEmail):
			utils.Error(w, http.StatusConflict, utils.MsgDuplicateEmail)
		default:
			h.fail(w, log, err)
		}
	}
}

func validationMessage(e *importer.ValidationError) string {
	switch {
	case e.HasShapeErrors():
		return utils.MsgInvalidRowData
	case e.HasMissingFields():
		return utils.MsgMissingFields
	default:
		return utils.MsgDuplicateEmail
	}
}

func (h *UserHTTP) fail(w http.ResponseWriter, log *zerolog.Logger, err error) {
	log.Error().Err(err).Bytes("stack", debug.Stack()).Msg("bulk import failed")
	utils.Error(w, http.StatusInternalServerError, utils.MsgFileProcessingFailed)
}
