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

package inference

// Target field names. The order of DefaultFields breaks ties between equally scored candidates.
const (
	FieldID           = "id"
	FieldName         = "name"
	FieldFirstName    = "firstName"
	FieldLastName     = "lastName"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldClaimID      = "claimId"
	FieldExternalID   = "externalId"
	FieldAmount       = "amount"
	FieldAddress      = "address"
	FieldCity         = "city"
	FieldState        = "state"
	FieldZip          = "zip"
	FieldHolder       = "holder"
	FieldPropertyType = "propertyType"
	FieldReportedDate = "reportedDate"
	FieldStatus       = "status"
	FieldDateOfBirth  = "dateOfBirth"
	FieldNotes        = "notes"
)

// TargetField is a claimant field together with the header spellings known to mean it.
type TargetField struct {
	Name     string
	Synonyms []string
}

// DefaultFields is the synonym table used by NewEngine.
var DefaultFields = []TargetField{
	{Name: FieldID, Synonyms: []string{"id", "record id", "claimant id", "uuid"}},
	{Name: FieldName, Synonyms: []string{"name", "full name", "claimant name", "owner name", "customer name",
		"contact name", "display name"}},
	{Name: FieldFirstName, Synonyms: []string{"first name", "given name", "forename", "first"}},
	{Name: FieldLastName, Synonyms: []string{"last name", "surname", "family name", "last"}},
	{Name: FieldEmail, Synonyms: []string{"email", "e mail", "email address", "mail", "contact email"}},
	{Name: FieldPhone, Synonyms: []string{"phone", "phone number", "telephone", "tel", "mobile", "cell",
		"contact number"}},
	{Name: FieldClaimID, Synonyms: []string{"claim id", "claim number", "claim no", "claim ref", "claim reference",
		"case id", "case number"}},
	{Name: FieldExternalID, Synonyms: []string{"external id", "legacy id", "reference id", "ref id", "source id",
		"external reference"}},
	{Name: FieldAmount, Synonyms: []string{"amount", "claim amount", "amount due", "reported amount", "cash value",
		"balance", "value"}},
	{Name: FieldAddress, Synonyms: []string{"address", "street address", "address line 1", "mailing address",
		"street"}},
	{Name: FieldCity, Synonyms: []string{"city", "town"}},
	{Name: FieldState, Synonyms: []string{"state", "province", "region", "state code"}},
	{Name: FieldZip, Synonyms: []string{"zip", "zip code", "postal code", "postcode"}},
	{Name: FieldHolder, Synonyms: []string{"holder", "holder name", "reporting company", "business name", "company"}},
	{Name: FieldPropertyType, Synonyms: []string{"property type", "asset type", "property category"}},
	{Name: FieldReportedDate, Synonyms: []string{"reported date", "date reported", "report date", "reported on"}},
	{Name: FieldStatus, Synonyms: []string{"status", "claim status", "stage"}},
	{Name: FieldDateOfBirth, Synonyms: []string{"date of birth", "dob", "birth date", "birthday"}},
	{Name: FieldNotes, Synonyms: []string{"notes", "note", "comments", "comment", "remarks", "description"}},
}
