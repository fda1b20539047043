package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	"contacts-directory/constant"
	"contacts-directory/model"
	cerr "contacts-directory/utils/errors"
)

func TestContactPatch_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		anyErr  bool
		errCode constant.ErrorType
		check   func(t *testing.T, p model.ContactPatch)
	}{
		{
			name: "success: every editable field accepted",
			body: `{"name":"Ana","surname":"Gomez","company":"Acme","address":"Calle 1","phones":"555-1234","email":"ana@example.com","is_public":true}`,
			check: func(t *testing.T, p model.ContactPatch) {
				if p.Name == nil || *p.Name != "Ana" {
					t.Fatalf("name not decoded: %+v", p)
				}
				if p.IsPublic == nil || !*p.IsPublic {
					t.Fatalf("is_public not decoded: %+v", p)
				}
			},
		},
		{
			name: "success: partial patch leaves the rest nil",
			body: `{"company":"Initech"}`,
			check: func(t *testing.T, p model.ContactPatch) {
				if p.Company == nil || *p.Company != "Initech" {
					t.Fatalf("company not decoded: %+v", p)
				}
				if p.Name != nil || p.Email != nil || p.IsPublic != nil {
					t.Fatalf("unexpected fields decoded: %+v", p)
				}
			},
		},
		{
			name:    "error: owner reassignment rejected",
			body:    `{"name":"Ana","owner_id":99}`,
			wantErr: true,
			errCode: constant.ErrDisallowedField,
		},
		{
			name:    "error: hidden flag is not owner-editable",
			body:    `{"is_hidden":false}`,
			wantErr: true,
			errCode: constant.ErrDisallowedField,
		},
		{
			name:    "error: proxy flag is not owner-editable",
			body:    `{"is_user_proxy":false}`,
			wantErr: true,
			errCode: constant.ErrDisallowedField,
		},
		{
			name:    "error: id cannot travel in a patch",
			body:    `{"id":5}`,
			wantErr: true,
			errCode: constant.ErrDisallowedField,
		},
		{
			// a syntax error is caught by encoding/json before the
			// unmarshaler runs
			name:    "error: malformed json",
			body:    `{"name":`,
			wantErr: true,
			anyErr:  true,
		},
		{
			name:    "error: wrong type for a known field",
			body:    `{"name":123}`,
			wantErr: true,
			errCode: constant.ErrValidation,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var p model.ContactPatch
			err := json.Unmarshal([]byte(tt.body), &p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if tt.anyErr {
					return
				}
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if tt.check != nil {
				tt.check(t, p)
			}
		})
	}
}

func TestContactPatch_Validate(t *testing.T) {
	empty := ""
	name := "Ana"

	tests := []struct {
		name    string
		patch   model.ContactPatch
		wantErr bool
	}{
		{"empty patch is valid", model.ContactPatch{}, false},
		{"changing a required field is valid", model.ContactPatch{Name: &name}, false},
		{"clearing an optional field is valid", model.ContactPatch{Company: &empty}, false},
		{"blank name rejected", model.ContactPatch{Name: &empty}, true},
		{"blank surname rejected", model.ContactPatch{Surname: &empty}, true},
		{"blank email rejected", model.ContactPatch{Email: &empty}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			var ce cerr.CustomError
			if !errors.As(err, &ce) {
				t.Fatalf("error type = %T, want CustomError", err)
			}
			if ce.ErrorCode() != constant.ErrorTypeCode[constant.ErrValidation] {
				t.Fatalf("error code = %s, want validation", ce.ErrorCode())
			}
		})
	}
}

func TestContactFilter_Matches(t *testing.T) {
	truth := true
	falsity := false

	contact := &model.ContactEntity{ID: 10, OwnerID: 2, IsPublic: true, IsHidden: false}

	tests := []struct {
		name   string
		filter model.ContactFilter
		want   bool
	}{
		{"empty filter matches everything", model.ContactFilter{}, true},
		{"id match", model.ContactFilter{ID: 10}, true},
		{"id mismatch", model.ContactFilter{ID: 11}, false},
		{"owner match", model.ContactFilter{OwnerID: 2}, true},
		{"owner mismatch", model.ContactFilter{OwnerID: 3}, false},
		{"public constraint satisfied", model.ContactFilter{IsPublic: &truth}, true},
		{"hidden constraint violated", model.ContactFilter{IsHidden: &truth}, false},
		{"proxy constraint satisfied", model.ContactFilter{IsUserProxy: &falsity}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(contact); got != tt.want {
				t.Fatalf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContactEntity_JSONHidesProxyFlag(t *testing.T) {
	data, err := json.Marshal(&model.ContactEntity{ID: 10, Name: "Ana", IsUserProxy: true})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["is_user_proxy"]; ok {
		t.Fatalf("is_user_proxy leaked into JSON: %s", data)
	}
}
