package dto

import (
	"tourdesk/internal/domains/settings/model"
	gDto "tourdesk/shared/dto"
	gModel "tourdesk/shared/model"
	"tourdesk/shared/timezone"
)

type UpsertSettingsRequest struct {
	AgencyName   string `json:"agency_name"   validate:"required,max=150"`
	Logo         string `json:"logo"          validate:"omitempty,mimetypes=image/png image/jpeg image/jpg,maxfilesize=2"`
	RemoveLogo   bool   `json:"remove_logo"`
	PrimaryColor string `json:"primary_color" validate:"omitempty,hexcolor"`
	Email        string `json:"email"         validate:"omitempty,email"`
	Phone        string `json:"phone"         validate:"omitempty,max=40"`
	Address      string `json:"address"       validate:"omitempty,max=500"`
	Website      string `json:"website"       validate:"omitempty,url"`
	TaxNumber    string `json:"tax_number"    validate:"omitempty,max=60"`
	BankDetails  string `json:"bank_details"  validate:"omitempty,max=500"`
	FooterNote   string `json:"footer_note"   validate:"omitempty,max=500"`
	Terms        string `json:"terms"         validate:"omitempty,max=5000"`
}

// ToModel merges the request over current. LogoURL is decided by the caller.
func (r *UpsertSettingsRequest) ToModel(current model.AgencySettings, user, logoURL string) model.AgencySettings {
	metadata := current.Metadata
	if current.ID == "" {
		metadata = gModel.NewMetadata(user, timezone.Now())
	}

	metadata.ModifiedAt = timezone.Now()
	metadata.ModifiedBy = user

	return model.AgencySettings{
		ID:           model.SingletonID,
		AgencyName:   r.AgencyName,
		LogoURL:      logoURL,
		PrimaryColor: r.PrimaryColor,
		Email:        r.Email,
		Phone:        r.Phone,
		Address:      r.Address,
		Website:      r.Website,
		TaxNumber:    r.TaxNumber,
		BankDetails:  r.BankDetails,
		FooterNote:   r.FooterNote,
		Terms:        r.Terms,
		Metadata:     metadata,
	}
}

type SettingsResponse struct {
	AgencyName   string `json:"agency_name"`
	LogoURL      string `json:"logo_url"`
	PrimaryColor string `json:"primary_color"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Website      string `json:"website"`
	TaxNumber    string `json:"tax_number"`
	BankDetails  string `json:"bank_details"`
	FooterNote   string `json:"footer_note"`
	Terms        string `json:"terms"`
	gDto.Metadata
}

func (s *SettingsResponse) FromModel(settings model.AgencySettings) {
	s.AgencyName = settings.AgencyName
	s.LogoURL = settings.LogoURL
	s.PrimaryColor = settings.PrimaryColor
	s.Email = settings.Email
	s.Phone = settings.Phone
	s.Address = settings.Address
	s.Website = settings.Website
	s.TaxNumber = settings.TaxNumber
	s.BankDetails = settings.BankDetails
	s.FooterNote = settings.FooterNote
	s.Terms = settings.Terms
	s.Metadata.FromModel(settings.Metadata)
}
