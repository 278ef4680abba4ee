package user

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/darasa/core"
)

type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	WhatsappNumber string    `json:"whatsapp_number"`
	Country        string    `json:"country"`
	City           string    `json:"city"`
	IsActive       *bool     `json:"is_active"`
	PasswordHash   []byte    `json:"-"`
	CreatedAt      time.Time `json:"created_at"` // UTC
	UpdatedAt      time.Time `json:"updated_at"` // UTC
	LastLogin      time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) SetActive(active bool) {
	u.IsActive = &active
}

func (u *User) Active() bool {
	return u.IsActive != nil && *u.IsActive
}

// NewUser contains information needed to sign a new User up. The profile
// fields are pass-through account metadata; only presence is enforced.
type NewUser struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	WhatsappNumber  string `json:"whatsapp_number" validate:"required"`
	Country         string `json:"country" validate:"required"`
	City            string `json:"city" validate:"required"`
}

func (nu *NewUser) Validate(ctx context.Context, validate *validator.Validate, svc Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.WhatsappNumber = core.CleanString(nu.WhatsappNumber)
	nu.Country = core.CleanString(nu.Country)
	nu.City = core.CleanString(nu.City)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, nu.Email)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	Name            string `json:"name"`
	WhatsappNumber  string `json:"whatsapp_number"`
	Country         string `json:"country"`
	City            string `json:"city"`
	Password        string `json:"password" validate:"omitempty"`
	PasswordConfirm string `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (uu *UpdateUser) Validate(origUsr User, validate *validator.Validate) error {
	if name := core.CleanString(uu.Name); name != "" {
		uu.Name = name
	} else {
		uu.Name = origUsr.Name
	}
	if num := core.CleanString(uu.WhatsappNumber); num != "" {
		uu.WhatsappNumber = num
	} else {
		uu.WhatsappNumber = origUsr.WhatsappNumber
	}
	if country := core.CleanString(uu.Country); country != "" {
		uu.Country = country
	} else {
		uu.Country = origUsr.Country
	}
	if city := core.CleanString(uu.City); city != "" {
		uu.City = city
	} else {
		uu.City = origUsr.City
	}
	return validate.Struct(uu)
}

type ResetUserPassword struct {
	Token           string `json:"token,omitempty" validate:"required"`
	UID             string `json:"uid,omitempty" validate:"required"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
}

func (rp ResetUserPassword) Validate(validate *validator.Validate) error {
	return validate.Struct(rp)
}

// GetFilter narrows a single-user lookup; set fields are ORed.
type GetFilter struct {
	ID    string
	Email string
}

func (f GetFilter) IsEmpty() bool {
	return f.ID == "" && f.Email == ""
}
