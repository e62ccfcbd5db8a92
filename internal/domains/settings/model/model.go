package model

import "tourdesk/shared/model"

const (
	TableName  = "agency_settings"
	EntityName = "agency_settings"

	// SingletonID is the primary key of the only settings row.
	SingletonID = "agency"

	FieldID      = "id"
	FieldLogoURL = "logo_url"

	LogoDirectory = "settings"
)

type AgencySettings struct {
	ID           string `db:"id"`
	AgencyName   string `db:"agency_name"`
	LogoURL      string `db:"logo_url"`
	PrimaryColor string `db:"primary_color"`
	Email        string `db:"email"`
	Phone        string `db:"phone"`
	Address      string `db:"address"`
	Website      string `db:"website"`
	TaxNumber    string `db:"tax_number"`
	BankDetails  string `db:"bank_details"`
	FooterNote   string `db:"footer_note"`
	Terms        string `db:"terms"`
	model.Metadata
}

// Branding is the fully hydrated view of the settings that every rendered document reads.
// Blank settings fields are already replaced by configured defaults.
type Branding struct {
	AgencyName    string
	PrimaryColor  string
	Email         string
	Phone         string
	Address       string
	Website       string
	TaxNumber     string
	BankDetails   string
	FooterNote    string
	Terms         string
	CurrencyLabel string
	Logo          []byte
	LogoType      string
}

func (b Branding) HasLogo() bool {
	return len(b.Logo) > 0 && b.LogoType != ""
}
