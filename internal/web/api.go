package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"clean-energy-predictor/internal/advice"
	"clean-energy-predictor/internal/features"
	"clean-energy-predictor/internal/ml"
	"clean-energy-predictor/internal/present"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

const maxRequestBytes = 1 << 20

var validate *validator.Validate

func init() {
	validate = validator.New()
	// report fields by their JSON names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// PredictRequest is the JSON body of POST /api/predict. Omitted feature
// fields keep their form defaults.
type PredictRequest struct {
	features.FeatureRecord
	Role string `json:"role,omitempty"`
}

// APIError is one entry of an error response.
type APIError struct {
	Code    string                 `json:"code"`
	Field   string                 `json:"field,omitempty"`
	Message string                 `json:"message"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

type errorResponse struct {
	Errors []APIError `json:"errors"`
}

// RoleInfo describes one selectable role.
type RoleInfo struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Advice string `json:"advice"`
}

// HistoryResponse is the body of GET /api/history.
type HistoryResponse struct {
	Count       int              `json:"count"`
	Predictions []present.Result `json:"predictions"`
}

func (s *Server) handlePredictAPI(w http.ResponseWriter, r *http.Request) {
	req := PredictRequest{FeatureRecord: features.Default()}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, APIError{
			Code:    "ERR_INVALID_BODY",
			Message: fmt.Sprintf("invalid request: %v", err),
		})
		return
	}

	if err := validate.StructCtx(r.Context(), &req); err != nil {
		writeErrors(w, http.StatusBadRequest, validationErrors(err)...)
		return
	}

	role := features.DefaultRole
	if req.Role != "" {
		parsed, err := features.ParseRole(req.Role)
		if err != nil {
			writeErrors(w, http.StatusBadRequest, APIError{
				Code:    "ERR_ONEOF",
				Field:   "role",
				Message: "role must be one of: " + strings.Join(roleKeys(), ", "),
				Params:  map[string]interface{}{"options": roleKeys()},
			})
			return
		}
		role = parsed
	}

	res, err := s.predict(req.FeatureRecord, role)
	if err != nil {
		code := "ERR_PREDICTION"
		if ml.IsShapeError(err) {
			code = "ERR_SHAPE"
		}
		writeErrors(w, http.StatusInternalServerError, APIError{Code: code, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRoles(w http.ResponseWriter, r *http.Request) {
	roles := make([]RoleInfo, 0, len(features.Roles))
	for _, role := range features.Roles {
		roles = append(roles, RoleInfo{Key: role.Key(), Label: role.String(), Advice: advice.Advise(role)})
	}
	writeJSON(w, http.StatusOK, roles)
}

func (s *Server) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.predictor.Info())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeErrors(w, http.StatusNotFound, APIError{
			Code:    "ERR_NOT_FOUND",
			Message: "prediction history is disabled",
		})
		return
	}

	limit := s.cfg.HistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeErrors(w, http.StatusBadRequest, APIError{
				Code:    "ERR_GTE",
				Field:   "limit",
				Message: "limit must be a positive integer",
				Params:  map[string]interface{}{"min": "1"},
			})
			return
		}
		limit = min(n, s.cfg.HistoryLimit)
	}

	preds, err := s.history.RecentPredictions(limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to read prediction history")
		writeErrors(w, http.StatusInternalServerError, APIError{Code: "ERR_STORAGE", Message: "failed to read history"})
		return
	}
	if preds == nil {
		preds = []present.Result{}
	}

	writeJSON(w, http.StatusOK, HistoryResponse{Count: len(preds), Predictions: preds})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeErrors(w http.ResponseWriter, status int, errs ...APIError) {
	writeJSON(w, status, errorResponse{Errors: errs})
}

func roleKeys() []string {
	keys := make([]string, 0, len(features.Roles))
	for _, r := range features.Roles {
		keys = append(keys, r.Key())
	}
	return keys
}

func validationErrors(err error) []APIError {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		errs := make([]APIError, 0, len(fieldErrs))
		for _, e := range fieldErrs {
			errs = append(errs, APIError{
				Code:    "ERR_" + strings.ToUpper(e.Tag()),
				Field:   e.Field(),
				Message: getErrorMessage(e),
				Params:  getErrorParams(e),
			})
		}
		return errs
	}

	return []APIError{{
		Code:    "ERR_UNKNOWN",
		Message: err.Error(),
	}}
}

func getErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

func getErrorParams(fe validator.FieldError) map[string]interface{} {
	params := make(map[string]interface{})

	switch fe.Tag() {
	case "gte":
		params["min"] = fe.Param()
	case "lte":
		params["max"] = fe.Param()
	}

	return params
}
