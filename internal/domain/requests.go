package domain

// Request payloads accepted at the API boundary. The original service
// took untyped JSON objects for several of these; they are tagged and
// validated structs here.

type RegisterReporterRequest struct {
	Alias    string  `json:"alias" validate:"required"`
	Password string  `json:"password" validate:"required,min=6"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
}

type LoginReporterRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type UpdateReporterRequest struct {
	Alias     *string `json:"alias"`
	FirstName *string `json:"f_name"`
	LastName  *string `json:"l_name"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone"`
}

type RegisterOrgRequest struct {
	OrgName         string `json:"org_name" validate:"required"`
	ContactPerson   string `json:"contact_person" validate:"required"`
	ContactEmail    string `json:"contact_email" validate:"required,email"`
	ContactPhone    string `json:"contact_phone" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type LoginOrgRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type LoginAdminRequest struct {
	AdminID  string `json:"admin_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AddAdminRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

type CreateReportRequest struct {
	ReporterID  int64  `json:"reporter_id" validate:"required"`
	CrimeTypeID int64  `json:"crime_type_id" validate:"required"`
	LocationID  int64  `json:"location_id" validate:"required"`
	Description string `json:"description" validate:"required"`
	// Formatted "DD/MM/YYYY HH:MM".
	OccurrenceTime string `json:"occurrence_time" validate:"required"`
}
