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

package errors

const errorPrefix = "CIS-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "50001",
		Message: "Unable to initialize the database client.",
	}

	EXECUTE_QUERY = ErrorMessage{
		Code:    errorPrefix + "50002",
		Message: "Unable to execute the database query.",
	}

	FETCH_CLAIMANTS = ErrorMessage{
		Code:    errorPrefix + "50003",
		Message: "Error while fetching claimants.",
	}

	CREATE_CLAIMANT = ErrorMessage{
		Code:    errorPrefix + "50004",
		Message: "Error while creating claimant.",
	}

	UPDATE_CLAIMANT = ErrorMessage{
		Code:    errorPrefix + "50005",
		Message: "Error while updating claimant.",
	}

	SAVE_IMPORT_SNAPSHOT = ErrorMessage{
		Code:    errorPrefix + "50006",
		Message: "Error while saving import snapshot.",
	}

	FETCH_IMPORT_SNAPSHOT = ErrorMessage{
		Code:    errorPrefix + "50007",
		Message: "Error while fetching import snapshot.",
	}

	CLEANUP_IMPORT_SNAPSHOTS = ErrorMessage{
		Code:    errorPrefix + "50008",
		Message: "Error while cleaning up expired import snapshots.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "50009",
		Message: "Unable to encode or decode stored document.",
	}

	ACQUIRE_LOCK = ErrorMessage{
		Code:    errorPrefix + "50010",
		Message: "Unable to acquire the import lock.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "10001",
		Message: "Invalid request.",
	}

	NO_FILE = ErrorMessage{
		Code:        errorPrefix + "10002",
		Message:     "No file uploaded.",
		Description: "A CSV or spreadsheet file must be provided in the 'file' field.",
	}

	PARSE_FAILED = ErrorMessage{
		Code:    errorPrefix + "10003",
		Message: "Unable to parse the uploaded file.",
	}

	INVALID_MAPPING = ErrorMessage{
		Code:    errorPrefix + "10004",
		Message: "Invalid column mapping.",
	}

	IMPORT_ID_REQUIRED = ErrorMessage{
		Code:        errorPrefix + "10005",
		Message:     "Import id is required.",
		Description: "The 'id' field must carry the import id returned on submit.",
	}

	IMPORT_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "10006",
		Message: "Import not found.",
	}

	IMPORT_EXPIRED = ErrorMessage{
		Code:        errorPrefix + "10007",
		Message:     "Import expired.",
		Description: "The import snapshot is past its retention window. Upload the file again.",
	}

	IMPORT_INVALID_STATE = ErrorMessage{
		Code:    errorPrefix + "10008",
		Message: "Import is not in a state that allows this operation.",
	}

	FILE_TOO_LARGE = ErrorMessage{
		Code:    errorPrefix + "10009",
		Message: "Uploaded file is too large.",
	}

	INVALID_CLAIMANT = ErrorMessage{
		Code:    errorPrefix + "10010",
		Message: "Row could not be projected onto a claimant.",
	}

	INGEST_IN_PROGRESS = ErrorMessage{
		Code:        errorPrefix + "10011",
		Message:     "Import is already being ingested.",
		Description: "Another ingest of this import is running. Retry once it has finished.",
	}
)
