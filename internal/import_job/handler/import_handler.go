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

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/form"

	"github.com/masonvector/claim-import-service/internal/import_job/model"
	"github.com/masonvector/claim-import-service/internal/import_job/service"
	"github.com/masonvector/claim-import-service/internal/system/config"
	"github.com/masonvector/claim-import-service/internal/system/constants"
	errors2 "github.com/masonvector/claim-import-service/internal/system/errors"
	"github.com/masonvector/claim-import-service/internal/system/log"
	"github.com/masonvector/claim-import-service/internal/system/utils"
)

// multipartMemory is how much of a multipart body is held in memory before spilling to disk.
const multipartMemory = 8 << 20

// ImportHandler serves the import endpoints.
type ImportHandler struct {
	service  service.ImportServiceInterface
	settings config.ImportConfig
	decoder  *form.Decoder
}

// mappingForm is the urlencoded shape of an apply-mapping or ingest post.
type mappingForm struct {
	ID      string            `form:"id" json:"id"`
	Org     string            `form:"org" json:"org"`
	Mapping map[string]string `form:"mapping" json:"mapping"`
}

// IngestResponse is the body of a successful ingest.
type IngestResponse struct {
	Ok      bool                `json:"ok"`
	Results *model.IngestResult `json:"results"`
}

// NewImportHandler builds the handler; settings supply the upload limit and view paths.
func NewImportHandler(svc service.ImportServiceInterface, settings config.ImportConfig) *ImportHandler {
	return &ImportHandler{
		service:  svc,
		settings: settings,
		decoder:  form.NewDecoder(),
	}
}

// SubmitImport handles POST /imports
func (h *ImportHandler) SubmitImport(w http.ResponseWriter, r *http.Request) {

	fileName, content, err := h.readUpload(w, r)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}

	result, err := h.service.Submit(r.Context(), model.SubmitRequest{
		FileName: fileName,
		Content:  content,
		Org:      r.FormValue(constants.FormFieldOrg),
	})
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}

	if utils.WantsJSON(r) {
		utils.RespondJSON(w, http.StatusCreated, result)
		return
	}
	utils.RedirectSeeOther(w, r, h.resultView(result.ImportID))
}

// PreviewImport handles POST /imports/preview
func (h *ImportHandler) PreviewImport(w http.ResponseWriter, r *http.Request) {

	fileName, content, err := h.readUpload(w, r)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}

	var m model.Mapping
	if raw := strings.TrimSpace(r.FormValue(constants.FormFieldMapping)); raw != "" {
		if m, err = decodeMapping(raw); err != nil {
			utils.HandleError(w, r, err)
			return
		}
	}

	result, err := h.service.Preview(r.Context(), model.PreviewRequest{
		FileName: fileName,
		Content:  content,
		Org:      r.FormValue(constants.FormFieldOrg),
		Mapping:  m,
	})
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

// ApplyMapping handles POST /imports/apply-mapping
func (h *ImportHandler) ApplyMapping(w http.ResponseWriter, r *http.Request) {

	req, err := h.readMappingForm(r)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}

	summary, err := h.service.ApplyMapping(r.Context(), req.ID, req.Mapping)
	if err != nil {
		if errors2.HasCode(err, errors2.IMPORT_EXPIRED) && !utils.WantsJSON(r) {
			query := url.Values{}
			query.Set("error", "expired")
			query.Set(constants.FormFieldID, strings.TrimSpace(req.ID))
			utils.RedirectSeeOther(w, r, h.settings.UploadViewPath+"?"+query.Encode())
			return
		}
		utils.HandleError(w, r, err)
		return
	}

	if utils.WantsJSON(r) {
		utils.RespondJSON(w, http.StatusOK, summary)
		return
	}
	utils.RedirectSeeOther(w, r, h.resultView(summary.ImportID))
}

// IngestImport handles POST /imports/ingest
func (h *ImportHandler) IngestImport(w http.ResponseWriter, r *http.Request) {

	req, err := h.readMappingForm(r)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}

	result, err := h.service.Ingest(r.Context(), req.ID, req.Org)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, IngestResponse{Ok: true, Results: result})
}

// GetImport handles GET /imports/{id}
func (h *ImportHandler) GetImport(w http.ResponseWriter, r *http.Request) {

	summary, err := h.service.Get(r.Context(), r.PathValue(constants.FormFieldID))
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, summary)
}

func (h *ImportHandler) resultView(importID string) string {
	return h.settings.ResultViewPath + "?" + url.Values{constants.FormFieldID: {importID}}.Encode()
}

// readUpload returns the name and bytes of the multipart file field, enforcing the upload limit.
func (h *ImportHandler) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {

	if h.settings.MaxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.settings.MaxUploadSize)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return "", nil, h.uploadError(err)
	}

	file, header, err := r.FormFile(constants.FormFieldFile)
	if err != nil {
		return "", nil, h.uploadError(err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", nil, h.uploadError(err)
	}
	log.GetLogger().WithContext(r.Context()).Debug("Received import upload",
		log.String("file_name", header.Filename), log.Int("bytes", len(content)))
	return header.Filename, content, nil
}

func (h *ImportHandler) uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
		return errors2.NewClientErrorWithDescription(errors2.FILE_TOO_LARGE,
			fmt.Sprintf("The upload exceeds the limit of %d bytes.", h.settings.MaxUploadSize),
			http.StatusRequestEntityTooLarge)
	}
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return errors2.NewClientErrorWithDescription(errors2.NO_FILE,
			"Send the file as the 'file' field of a multipart form.", http.StatusBadRequest)
	}
	return errors2.NewClientErrorWithDescription(errors2.BAD_REQUEST, "The upload could not be read.",
		http.StatusBadRequest)
}

// readMappingForm accepts a JSON body, or a form where the mapping is either a JSON object in
// the mapping field or spread over mapping[<header>] fields.
func (h *ImportHandler) readMappingForm(r *http.Request) (mappingForm, error) {

	var req mappingForm
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case constants.ContentTypeJSON:
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			return req, errors2.NewClientErrorWithDescription(errors2.BAD_REQUEST,
				utils.HandleDecodeError(err, "import request"), http.StatusBadRequest)
		}
		return req, nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return req, errors2.NewClientErrorWithDescription(errors2.BAD_REQUEST, "Malformed form body.",
				http.StatusBadRequest)
		}
	default:
		if err := r.ParseForm(); err != nil {
			return req, errors2.NewClientErrorWithDescription(errors2.BAD_REQUEST, "Malformed form body.",
				http.StatusBadRequest)
		}
	}

	values := r.Form
	if raw := strings.TrimSpace(values.Get(constants.FormFieldMapping)); raw != "" {
		m, err := decodeMapping(raw)
		if err != nil {
			return req, err
		}
		req.ID = values.Get(constants.FormFieldID)
		req.Org = values.Get(constants.FormFieldOrg)
		req.Mapping = m
		return req, nil
	}

	if err := h.decoder.Decode(&req, values); err != nil {
		return req, errors2.NewClientErrorWithDescription(errors2.INVALID_MAPPING,
			"The mapping fields could not be read.", http.StatusBadRequest)
	}
	return req, nil
}

func decodeMapping(raw string) (model.Mapping, error) {
	var m model.Mapping
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, errors2.NewClientErrorWithDescription(errors2.INVALID_MAPPING,
			utils.HandleDecodeError(err, constants.FormFieldMapping), http.StatusBadRequest)
	}
	return m, nil
}
