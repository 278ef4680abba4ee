package user

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

type uniquenessSvcStub struct {
	Service
	taken map[string]struct{}
}

func (svc uniquenessSvcStub) CheckUniqueness(ctx context.Context, email string, exclUsers ...User) error {
	if _, ok := svc.taken[email]; ok {
		return core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	}
	return nil
}

func TestNewUserValidation_passwordPolicy(t *testing.T) {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	commonPasswords = []string{"p@$$w0rd"} // sorted

	svc := uniquenessSvcStub{taken: map[string]struct{}{"taken@test.cd": {}}}

	newUser := func(email, pwd string) NewUser {
		return NewUser{
			Name:            "Hero Kid",
			Email:           email,
			Password:        pwd,
			PasswordConfirm: pwd,
			WhatsappNumber:  "+243811111111",
			Country:         "DR Congo",
			City:            "Lubumbashi",
		}
	}

	tests := []struct {
		name    string
		nu      NewUser
		wantTag string // empty means valid
	}{
		{name: "valid", nu: newUser("hero@test.cd", "LolC@t123")},
		{name: "too short", nu: newUser("hero@test.cd", "L@c1"), wantTag: pwdMinLenTag},
		{name: "whitespace", nu: newUser("hero@test.cd", "L@c 1234"), wantTag: pwdNoSpaceTag},
		{name: "all numeric", nu: newUser("hero@test.cd", "12345678"), wantTag: pwdNotAllNumTag},
		{name: "no complexity", nu: newUser("hero@test.cd", "lol12345"), wantTag: pwdComplexityTag},
		{name: "similar to email", nu: newUser("hero@test.cd", "Hero@test.cd1"), wantTag: pwdAttrSimTag},
		{name: "too common", nu: newUser("hero@test.cd", "P@$$w0rd"), wantTag: pwdNoCommonTag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.nu.Validate(context.Background(), validate, svc)
			if tt.wantTag == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				return
			}
			vErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("Validate() error = %v; want validator.ValidationErrors", err)
			}
			for _, vErr := range vErrs {
				if vErr.Tag() == tt.wantTag {
					return
				}
			}
			t.Errorf("Validate() errors = %v; want tag %s", vErrs, tt.wantTag)
		})
	}

	t.Run("email taken", func(t *testing.T) {
		nu := newUser("taken@test.cd", "LolC@t123")
		err := nu.Validate(context.Background(), validate, svc)
		vErr, ok := err.(*core.ValidationError)
		if !ok {
			t.Fatalf("Validate() error = %v; want *core.ValidationError", err)
		}
		if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "email" {
			t.Errorf("Fields = %v; want email error", vErr.Fields)
		}
	})

	t.Run("email is cleaned and lowered", func(t *testing.T) {
		nu := newUser("  HERO@Test.cd ", "LolC@t123")
		if err := nu.Validate(context.Background(), validate, svc); err != nil {
			t.Fatalf("Validate() unexpected error = %v", err)
		}
		if nu.Email != strings.ToLower(strings.TrimSpace("  HERO@Test.cd ")) {
			t.Errorf("Email = %q; want cleaned and lowered", nu.Email)
		}
	})
}
