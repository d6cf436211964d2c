/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/masonvector/claim-import-service/internal/system/constants"
	cdscontext "github.com/masonvector/claim-import-service/internal/system/context"
	customerrors "github.com/masonvector/claim-import-service/internal/system/errors"
	"github.com/masonvector/claim-import-service/internal/system/log"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Ok          bool   `json:"ok"`
	Code        string `json:"code"`
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
	TraceID     string `json:"trace_id,omitempty"`
}

// HandleError sends an HTTP error response based on the provided error. Client errors are echoed with
// their status, everything else is logged and reported as a generic internal error.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	traceID := cdscontext.GetTraceID(r.Context())

	var clientError *customerrors.ClientError
	if ok := errors.As(err, &clientError); ok {
		RespondJSON(w, clientError.StatusCode, ErrorResponse{
			Code:        clientError.Code,
			Message:     clientError.Message,
			Description: clientError.Description,
			TraceID:     traceID,
		})
		return
	}

	logger := log.GetLogger().WithContext(r.Context())
	var serverError *customerrors.ServerError
	if ok := errors.As(err, &serverError); ok {
		logger.Error(serverError.Message, log.String("code", serverError.Code),
			log.String("description", serverError.Description), log.Error(serverError.Err))
	} else {
		logger.Error("Unexpected error while serving request", log.Error(err))
	}
	RespondJSON(w, http.StatusInternalServerError, ErrorResponse{
		Code:    "INTERNAL_SERVER_ERROR",
		Message: "Internal server error",
		TraceID: traceID,
	})
}

// RespondJSON writes data as a JSON document with the given status code.
func RespondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", constants.ContentTypeJSON)
	w.WriteHeader(statusCode)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(data)
}

// WantsJSON reports whether the caller asked for a JSON response instead of a redirect.
func WantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), constants.ContentTypeJSON)
}

// RedirectSeeOther answers a form post with a 303 to target.
func RedirectSeeOther(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// EnableCORS adds the CORS headers for the configured origins and short-circuits preflight requests.
func EnableCORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowAll {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else if origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length, "+constants.TraceIDHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
