package domain

import "time"

// InquiryRecordType is the content repository document type for inquiries
const InquiryRecordType = "contact"

// InquiryStatus is the triage status of an inquiry record
type InquiryStatus string

const (
	StatusNew       InquiryStatus = "new"
	StatusContacted InquiryStatus = "contacted"
	StatusClosed    InquiryStatus = "closed"
)

// ContactMethod is how the submitter wants to be reached
type ContactMethod string

const (
	ContactEmail    ContactMethod = "email"
	ContactCall     ContactMethod = "call"
	ContactText     ContactMethod = "text"
	ContactWhatsApp ContactMethod = "whatsapp"
)

var contactMethodLabels = map[ContactMethod]string{
	ContactEmail:    "Email",
	ContactCall:     "Call",
	ContactText:     "Text",
	ContactWhatsApp: "WhatsApp",
}

// Known reports whether m is one of the methods offered by the contact form
func (m ContactMethod) Known() bool {
	_, ok := contactMethodLabels[m]
	return ok
}

// Label returns the form label, or the raw value for unknown methods
func (m ContactMethod) Label() string {
	if l, ok := contactMethodLabels[m]; ok {
		return l
	}
	return string(m)
}

// ShootCategory is the kind of photoshoot requested
type ShootCategory string

const (
	ShootFashion    ShootCategory = "fashion"
	ShootCommercial ShootCategory = "commercial"
	ShootPortrait   ShootCategory = "portrait"
	ShootOther      ShootCategory = "other"
)

var shootCategoryLabels = map[ShootCategory]string{
	ShootFashion:    "Fashion",
	ShootCommercial: "Commercial",
	ShootPortrait:   "Portrait / Portfolio",
	ShootOther:      "Other",
}

func (c ShootCategory) Known() bool {
	_, ok := shootCategoryLabels[c]
	return ok
}

func (c ShootCategory) Label() string {
	if l, ok := shootCategoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// ServicesAnswer is the yes/no answer to "do you need additional services"
type ServicesAnswer string

const (
	ServicesYes ServicesAnswer = "yes"
	ServicesNo  ServicesAnswer = "no"
)

func (a ServicesAnswer) Known() bool {
	return a == ServicesYes || a == ServicesNo
}

func (a ServicesAnswer) Label() string {
	switch a {
	case ServicesYes:
		return "Yes"
	case ServicesNo:
		return "No"
	}
	return string(a)
}

// Inquiry is a contact form submission as entered by the prospective client
type Inquiry struct {
	Name           string
	ContactMethod  ContactMethod
	ContactInfo    string
	PhotoshootType ShootCategory
	Location       string
	NeedServices   ServicesAnswer
	Budget         string
	Message        string
}

// UnknownEnums returns the names of enumerated fields holding values the form does not offer
func (i *Inquiry) UnknownEnums() []string {
	var fields []string
	if !i.ContactMethod.Known() {
		fields = append(fields, "contactMethod")
	}
	if !i.PhotoshootType.Known() {
		fields = append(fields, "photoshootType")
	}
	if !i.NeedServices.Known() {
		fields = append(fields, "needServices")
	}
	return fields
}

// InquiryRecord is a persisted inquiry
type InquiryRecord struct {
	ID          string
	Inquiry     Inquiry
	Status      InquiryStatus
	SubmittedAt time.Time
}

// Fields returns the repository field set for the inquiry, keyed by repository field names
func (r *InquiryRecord) Fields() map[string]any {
	return map[string]any{
		"name":               r.Inquiry.Name,
		"preferredContact":   string(r.Inquiry.ContactMethod),
		"contactInfo":        r.Inquiry.ContactInfo,
		"photoshootType":     string(r.Inquiry.PhotoshootType),
		"location":           r.Inquiry.Location,
		"additionalServices": string(r.Inquiry.NeedServices),
		"budget":             r.Inquiry.Budget,
		"detailedRequest":    r.Inquiry.Message,
		"submittedAt":        FormatTimestamp(r.SubmittedAt),
		"status":             string(r.Status),
	}
}

// TimestampLayout is ISO-8601 in UTC with millisecond precision
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in UTC using TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
