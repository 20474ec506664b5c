package domain

import "time"

type Reporter struct {
	ReporterID   int64      `db:"reporter_id" json:"reporter_id"`
	Alias        string     `db:"alias" json:"alias"`
	FirstName    *string    `db:"f_name" json:"f_name"`
	LastName     *string    `db:"l_name" json:"l_name"`
	Email        *string    `db:"email" json:"email"`
	Phone        *string    `db:"phone" json:"phone"`
	PasswordHash string     `db:"password" json:"-"`
	DateJoined   time.Time  `db:"date_joined" json:"date_joined"`
	LastLogin    *time.Time `db:"last_login" json:"last_login"`
}

// ReporterOverview is the admin listing row, a reporter plus their
// filed report count.
type ReporterOverview struct {
	ReporterID int64   `db:"reporter_id" json:"id"`
	Alias      string  `db:"alias" json:"alias"`
	Email      *string `db:"email" json:"email"`
	Phone      *string `db:"phone" json:"phone"`
	Reports    int     `db:"reports" json:"reports"`
}

type Admin struct {
	AdminID      int64      `db:"admin_id" json:"admin_id"`
	PasswordHash string     `db:"password" json:"-"`
	DateCreated  time.Time  `db:"date_created" json:"date_created"`
	LastLogin    *time.Time `db:"last_login" json:"last_login"`
}

type ExternalOrg struct {
	OrgID         int64      `db:"org_id" json:"org_id"`
	OrgName       string     `db:"org_name" json:"org_name"`
	ContactPerson *string    `db:"contact_person" json:"contact_person"`
	ContactEmail  string     `db:"contact_email" json:"contact_email"`
	ContactPhone  *string    `db:"contact_phone" json:"contact_phone"`
	PasswordHash  string     `db:"password" json:"-"`
	DateAdded     time.Time  `db:"date_added" json:"date_added"`
	LastLogin     *time.Time `db:"last_login" json:"last_login"`
}

// Session is a persisted login session. Tokens are opaque and expire
// server-side; the cookie lifetime mirrors ExpiresAt.
type Session struct {
	SessionID int64     `db:"session_id" json:"-"`
	UserType  string    `db:"user_type" json:"user_type"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Token     string    `db:"token" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

const (
	UserTypeReporter = "reporter"
	UserTypeAdmin    = "admin"
	UserTypeOrg      = "external_org"
)

type CrimeType struct {
	CrimeTypeID int64     `db:"crime_type_id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	DateAdded   time.Time `db:"date_added" json:"-"`
}

// Location coordinates are stored as free-form strings; some catalog
// rows carry values that do not parse as numbers and the analytics
// engine skips those.
type Location struct {
	LocationID  int64   `db:"location_id" json:"id"`
	Area        string  `db:"area" json:"area"`
	SubArea     *string `db:"sub_area" json:"sub_area"`
	Latitude    string  `db:"latitude" json:"latitude"`
	Longitude   string  `db:"longitude" json:"longitude"`
	Description *string `db:"description" json:"description"`
}

type Report struct {
	ReportID       int64     `db:"report_id" json:"report_id"`
	ReporterID     int64     `db:"reporter_id" json:"reporter_id"`
	CrimeTypeID    int64     `db:"crime_type_id" json:"crime_type_id"`
	LocationID     int64     `db:"location_id" json:"location_id"`
	Description    string    `db:"description" json:"description"`
	OccurrenceTime time.Time `db:"occurrence_time" json:"occurrence_time"`
	DateReported   time.Time `db:"date_reported" json:"date_reported"`
}

// ReportDetails is a report row joined to its crime type, location and
// reporter, the shape every read path of the engine consumes.
type ReportDetails struct {
	Report
	CrimeTypeName string `db:"crime_type_name" json:"crime_type"`
	Area          string `db:"area" json:"area"`
	ReporterAlias string `db:"reporter_alias" json:"reporter"`
}

type ReportAddon struct {
	AddonID      int64     `db:"addon_id" json:"addon_id"`
	ReportID     int64     `db:"report_id" json:"report_id"`
	FilePath     string    `db:"file_path" json:"file_path"`
	FileType     string    `db:"file_type" json:"file_type"`
	FileSize     *int64    `db:"file_size" json:"file_size"`
	DateUploaded time.Time `db:"date_uploaded" json:"date_uploaded"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
